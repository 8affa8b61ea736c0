// Package tool implements the callable-capability subsystem: the Tool
// interface, the two retrieval tools exposed to the completion service and the
// name-keyed Registry that dispatches tool calls, validates arguments and
// accumulates per-query citation sources.
package tool

import (
	"context"
	"fmt"

	"github.com/hupe1980/coursechat/core"
	"github.com/hupe1980/coursechat/internal/util"
)

// Tool defines the interface for capabilities the completion service may
// invoke during a round.
//
// Tool implementations should:
//   - Provide clear, descriptive names and descriptions
//   - Define proper JSON schema for parameters
//   - Return user-presentable text for every outcome, including failures they
//     can express themselves (e.g. "no course found")
//   - Hold no mutable per-query state; citation sources are returned from Call
//     and accumulated by the Registry
type Tool interface {
	// Name returns the unique identifier for this tool (snake_case recommended).
	Name() string

	// Description returns a human-readable description provided to the
	// completion service to help it decide when to use the tool.
	Description() string

	// Parameters returns a JSON schema describing the expected arguments.
	Parameters() map[string]any

	// Call executes the tool with already-validated arguments. It returns the
	// textual result plus any citation sources attributable to this execution.
	Call(ctx context.Context, args map[string]any) (string, []core.Source, error)
}

// ValidationError represents parameter validation errors with detailed information.
type ValidationError = util.ValidationError

// ToolError represents errors that occur during tool execution.
type ToolError struct {
	Tool    string `json:"tool"`    // Name of the tool that failed
	Message string `json:"message"` // Error message
	Code    string `json:"code"`    // Error code for categorization
}

func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// NewToolError creates a new ToolError with the specified details.
func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{Tool: tool, Message: message, Code: code}
}
