// Package transcript converts between the flat-text conversation format used
// at system boundaries ("User: ..." / "Assistant: ..." marker lines) and the
// structured turn sequence used internally. The flat format is strictly a wire
// and display convention; nothing inside the core operates on it.
package transcript

import (
	"strings"

	"github.com/hupe1980/coursechat/core"
)

const (
	userMarker      = "User: "
	assistantMarker = "Assistant: "
)

// Parse converts a flat transcript into ordered turns. A marker line starts a
// new turn, flushing any turn being accumulated; lines without a marker are
// joined by newline onto the current turn's content. Lines appearing before
// the first marker are collected into an initial user turn instead of being
// dropped. Empty input yields no turns; parsing never fails.
func Parse(history string) []core.Turn {
	if history == "" {
		return nil
	}

	var (
		turns   []core.Turn
		role    core.Role
		content []string
	)

	flush := func() {
		if role != "" && len(content) > 0 {
			turns = append(turns, core.Turn{Role: role, Content: strings.Join(content, "\n")})
		}
		content = nil
	}

	for _, line := range strings.Split(history, "\n") {
		switch {
		case strings.HasPrefix(line, userMarker):
			flush()
			role = core.RoleUser
			content = []string{strings.TrimPrefix(line, userMarker)}
		case strings.HasPrefix(line, assistantMarker):
			flush()
			role = core.RoleAssistant
			content = []string{strings.TrimPrefix(line, assistantMarker)}
		case role != "":
			content = append(content, line)
		case strings.TrimSpace(line) != "":
			// Untagged leading text becomes an initial user turn.
			role = core.RoleUser
			content = []string{line}
		}
	}
	flush()

	return turns
}

// Format renders completed exchanges into the flat transcript format, the
// inverse of Parse for well-formed conversations.
func Format(exchanges []core.Exchange) string {
	if len(exchanges) == 0 {
		return ""
	}
	lines := make([]string, 0, len(exchanges)*2)
	for _, ex := range exchanges {
		lines = append(lines, userMarker+ex.Question, assistantMarker+ex.Answer)
	}
	return strings.Join(lines, "\n")
}

// Turns converts completed exchanges directly into the structured turn
// sequence, one user and one assistant turn per exchange.
func Turns(exchanges []core.Exchange) []core.Turn {
	if len(exchanges) == 0 {
		return nil
	}
	turns := make([]core.Turn, 0, len(exchanges)*2)
	for _, ex := range exchanges {
		turns = append(turns, core.NewUserTurn(ex.Question), core.NewAssistantTurn(ex.Answer))
	}
	return turns
}
