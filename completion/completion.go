// Package completion defines the normalized request/response contract toward a
// text-completion service, unified across vendors so the round loop does not
// need per-provider branching. Concrete adapters live in the openai and
// anthropic subpackages.
package completion

import (
	"context"
	"fmt"
	"sync"

	"github.com/hupe1980/coursechat/core"
)

// Finish reasons reported by Response.FinishReason.
const (
	// FinishStop signals a final text answer without tool calls.
	FinishStop = "stop"
	// FinishToolCalls signals the service requests tool invocations.
	FinishToolCalls = "tool_calls"
)

// Definition declaratively exposes a callable tool to the completion service.
// Parameters is a JSON Schema object (draft agnostic, minimal subset expected);
// adapters convert it into their provider's wire format.
type Definition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Request captures a single normalized completion call.
type Request struct {
	SystemPrompt string       `json:"system_prompt,omitempty"`
	Messages     []core.Turn  `json:"messages"`
	Tools        []Definition `json:"tools,omitempty"`
}

// Response is the normalized outcome of one completion call.
type Response struct {
	Content      string          `json:"content,omitempty"`
	ToolCalls    []core.ToolCall `json:"tool_calls,omitempty"`
	FinishReason string          `json:"finish_reason"`
}

// HasToolCalls reports whether the service requested tool invocations.
func (r *Response) HasToolCalls() bool {
	return r.FinishReason == FinishToolCalls && len(r.ToolCalls) > 0
}

// Client is the minimal interface required to drive one request/response
// completion call. Implementations block until the provider answers; failures
// are returned unmodified and are never retried here.
type Client interface {
	Complete(ctx context.Context, req Request) (*Response, error)
}

// scripted pairs one canned response or error with its position in the script.
type scripted struct {
	resp *Response
	err  error
}

// MockClient is a lightweight scripted Client useful for tests & examples.
// Queued responses are served in order; once the script is exhausted the
// default response (or an echoing stop response) is served.
type MockClient struct {
	mu       sync.Mutex
	script   []scripted
	fallback *Response
	requests []Request
}

// NewMockClient constructs an empty MockClient.
func NewMockClient() *MockClient { return &MockClient{} }

// Queue appends a canned response to the script.
func (m *MockClient) Queue(resp *Response) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, scripted{resp: resp})
}

// QueueStop appends a final text answer to the script.
func (m *MockClient) QueueStop(content string) {
	m.Queue(&Response{Content: content, FinishReason: FinishStop})
}

// QueueToolCalls appends a tool-call response to the script.
func (m *MockClient) QueueToolCalls(calls ...core.ToolCall) {
	m.Queue(&Response{ToolCalls: calls, FinishReason: FinishToolCalls})
}

// QueueError appends a failing call to the script.
func (m *MockClient) QueueError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, scripted{err: err})
}

// SetDefault sets the response served once the script is exhausted.
func (m *MockClient) SetDefault(resp *Response) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallback = resp
}

// Requests returns a copy of every request received so far, in order.
func (m *MockClient) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// CallCount returns the number of Complete invocations so far.
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// Complete implements Client by replaying the script.
func (m *MockClient) Complete(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)

	if len(m.script) > 0 {
		next := m.script[0]
		m.script = m.script[1:]
		if next.err != nil {
			return nil, next.err
		}
		cp := *next.resp
		return &cp, nil
	}
	if m.fallback != nil {
		cp := *m.fallback
		return &cp, nil
	}

	var lastUser string
	for _, t := range req.Messages {
		if t.Role == core.RoleUser {
			lastUser = t.Content
		}
	}
	return &Response{
		Content:      fmt.Sprintf("Mock response to: %s", lastUser),
		FinishReason: FinishStop,
	}, nil
}
