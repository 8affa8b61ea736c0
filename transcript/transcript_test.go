package transcript

import (
	"testing"

	"github.com/hupe1980/coursechat/core"
	"github.com/stretchr/testify/assert"
)

func TestParse_Empty(t *testing.T) {
	assert.Empty(t, Parse(""))
}

func TestParse_Alternating(t *testing.T) {
	turns := Parse("User: A\nAssistant: B\nUser: C\nAssistant: D")

	assert.Len(t, turns, 4)
	assert.Equal(t, []core.Turn{
		{Role: core.RoleUser, Content: "A"},
		{Role: core.RoleAssistant, Content: "B"},
		{Role: core.RoleUser, Content: "C"},
		{Role: core.RoleAssistant, Content: "D"},
	}, turns)
}

func TestParse_MultilineContent(t *testing.T) {
	turns := Parse("User: first line\nsecond line\n\nAssistant: reply")

	assert.Len(t, turns, 2)
	assert.Equal(t, core.RoleUser, turns[0].Role)
	assert.Equal(t, "first line\nsecond line\n", turns[0].Content)
	assert.Equal(t, "reply", turns[1].Content)
}

func TestParse_LeadingUntaggedLines(t *testing.T) {
	turns := Parse("stray context\nUser: question\nAssistant: answer")

	assert.Len(t, turns, 3)
	assert.Equal(t, core.RoleUser, turns[0].Role)
	assert.Equal(t, "stray context", turns[0].Content)
	assert.Equal(t, "question", turns[1].Content)
}

func TestParse_LeadingBlankLinesIgnored(t *testing.T) {
	turns := Parse("\n\nUser: hi")

	assert.Len(t, turns, 1)
	assert.Equal(t, "hi", turns[0].Content)
}

func TestFormat_RoundTrip(t *testing.T) {
	exchanges := []core.Exchange{
		{Question: "What is MCP?", Answer: "A protocol."},
		{Question: "Who teaches it?", Answer: "An instructor."},
	}

	flat := Format(exchanges)
	assert.Equal(t, "User: What is MCP?\nAssistant: A protocol.\nUser: Who teaches it?\nAssistant: An instructor.", flat)

	turns := Parse(flat)
	assert.Len(t, turns, 4)
	assert.Equal(t, "What is MCP?", turns[0].Content)
	assert.Equal(t, "An instructor.", turns[3].Content)
}

func TestFormat_Empty(t *testing.T) {
	assert.Equal(t, "", Format(nil))
}

func TestTurns(t *testing.T) {
	exchanges := []core.Exchange{{Question: "q", Answer: "a"}}

	turns := Turns(exchanges)
	assert.Equal(t, []core.Turn{
		core.NewUserTurn("q"),
		core.NewAssistantTurn("a"),
	}, turns)

	assert.Nil(t, Turns(nil))
}
