package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTurnConstructors(t *testing.T) {
	user := NewUserTurn("hi")
	assert.Equal(t, RoleUser, user.Role)
	assert.Equal(t, "hi", user.Content)
	assert.False(t, user.HasToolCalls())

	calls := []ToolCall{{ID: "c1", Name: "lookup", Arguments: `{"q":"x"}`}}
	assistant := NewToolCallTurn("", calls)
	assert.Equal(t, RoleAssistant, assistant.Role)
	assert.True(t, assistant.HasToolCalls())

	result := NewToolResultTurn("c1", "lookup", "found")
	assert.Equal(t, RoleTool, result.Role)
	assert.Equal(t, "c1", result.ToolCallID)
	assert.Equal(t, "lookup", result.ToolName)
	assert.Equal(t, "found", result.Content)
}

func TestSessionCloneIsolation(t *testing.T) {
	sess := NewSession("s1")
	sess.AddExchange("q", "a")

	cp := sess.Clone()
	cp.AddExchange("q2", "a2")
	cp.Exchanges[0].Answer = "mutated"

	assert.Len(t, sess.Exchanges, 1)
	assert.Equal(t, "a", sess.Exchanges[0].Answer)
}

func TestSearchResultsIsEmpty(t *testing.T) {
	assert.True(t, SearchResults{}.IsEmpty())
	assert.False(t, SearchResults{Documents: []string{"d"}}.IsEmpty())
}
