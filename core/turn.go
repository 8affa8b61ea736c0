package core

// Role identifies the speaker of a Turn.
type Role string

const (
	// RoleSystem marks the instruction turn prepended to every request.
	RoleSystem Role = "system"
	// RoleUser marks turns originating from the end user.
	RoleUser Role = "user"
	// RoleAssistant marks turns produced by the completion service.
	RoleAssistant Role = "assistant"
	// RoleTool marks turns carrying the result of one tool execution.
	RoleTool Role = "tool"
)

// ToolCall is a request, emitted by the completion service, to invoke a named
// tool. Arguments carries the serialized (JSON) argument payload exactly as the
// provider returned it.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments,omitempty"`
}

// Turn is one message in the conversation chain.
//
// Exactly one shape applies per role: assistant turns may carry ToolCalls with
// Content possibly empty, tool turns carry ToolCallID/ToolName referencing the
// call they answer, all other roles carry Content only.
type Turn struct {
	Role       Role       `json:"role"`
	Content    string     `json:"content,omitempty"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	ToolName   string     `json:"tool_name,omitempty"`
}

// NewSystemTurn builds a system instruction turn.
func NewSystemTurn(content string) Turn {
	return Turn{Role: RoleSystem, Content: content}
}

// NewUserTurn builds a user turn.
func NewUserTurn(content string) Turn {
	return Turn{Role: RoleUser, Content: content}
}

// NewAssistantTurn builds a plain assistant turn without tool calls.
func NewAssistantTurn(content string) Turn {
	return Turn{Role: RoleAssistant, Content: content}
}

// NewToolCallTurn builds an assistant turn requesting tool invocations.
func NewToolCallTurn(content string, calls []ToolCall) Turn {
	return Turn{Role: RoleAssistant, Content: content, ToolCalls: calls}
}

// NewToolResultTurn builds a tool turn answering the call identified by callID.
func NewToolResultTurn(callID, toolName, content string) Turn {
	return Turn{Role: RoleTool, Content: content, ToolCallID: callID, ToolName: toolName}
}

// HasToolCalls reports whether the turn requests at least one tool invocation.
func (t Turn) HasToolCalls() bool { return len(t.ToolCalls) > 0 }

// Source is a display-ready citation string attributed to one tool-execution
// hit. It is either plain text or hyperlink markup; this core never inspects
// the contents.
type Source string
