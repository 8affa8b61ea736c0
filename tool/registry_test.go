package tool

import (
	"context"
	"errors"
	"testing"

	"github.com/hupe1980/coursechat/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTool is a minimal scriptable Tool for registry tests.
type stubTool struct {
	name    string
	params  map[string]any
	result  string
	sources []core.Source
	err     error
	panics  bool
}

func (s *stubTool) Name() string        { return s.name }
func (s *stubTool) Description() string { return "stub" }
func (s *stubTool) Parameters() map[string]any {
	if s.params != nil {
		return s.params
	}
	return map[string]any{"type": "object", "properties": map[string]any{}}
}

func (s *stubTool) Call(context.Context, map[string]any) (string, []core.Source, error) {
	if s.panics {
		panic("boom")
	}
	return s.result, s.sources, s.err
}

func TestRegistry_RegisterDuplicate(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register(&stubTool{name: "alpha"}))
	err := r.Register(&stubTool{name: "alpha"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "alpha")
}

func TestRegistry_RegisterUnnamed(t *testing.T) {
	r := NewRegistry()
	assert.Error(t, r.Register(&stubTool{}))
}

func TestRegistry_CatalogOrder(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&stubTool{name: "beta"}))
	require.NoError(t, r.Register(&stubTool{name: "alpha"}))

	defs := r.Catalog()
	require.Len(t, defs, 2)
	assert.Equal(t, "beta", defs[0].Name)
	assert.Equal(t, "alpha", defs[1].Name)
}

func TestRegistry_ExecuteUnknown(t *testing.T) {
	r := NewRegistry()

	result := r.Execute(context.Background(), "nope", map[string]any{})
	assert.Equal(t, "Tool 'nope' not found", result)
}

func TestRegistry_ExecuteValidationFailure(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&stubTool{
		name: "strict",
		params: map[string]any{
			"type":       "object",
			"properties": map[string]any{"query": map[string]any{"type": "string"}},
			"required":   []string{"query"},
		},
	}))

	result := r.Execute(context.Background(), "strict", map[string]any{})
	assert.Contains(t, result, "Error executing tool 'strict'")
	assert.Contains(t, result, "query")
}

func TestRegistry_ExecuteToolError(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&stubTool{name: "failing", err: errors.New("backend down")}))

	result := r.Execute(context.Background(), "failing", map[string]any{})
	assert.Contains(t, result, "Error executing tool 'failing'")
	assert.Contains(t, result, "backend down")
}

func TestRegistry_ExecutePanicRecovered(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&stubTool{name: "wild", panics: true}))

	var result string
	assert.NotPanics(t, func() {
		result = r.Execute(context.Background(), "wild", map[string]any{})
	})
	assert.Contains(t, result, "Error executing tool 'wild'")
	assert.Contains(t, result, "panic")
}

func TestRegistry_ExecuteCall(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&stubTool{name: "echo", result: "ok"}))

	result := r.ExecuteCall(context.Background(), core.ToolCall{ID: "c1", Name: "echo", Arguments: `{"x":1}`})
	assert.Equal(t, "ok", result)

	result = r.ExecuteCall(context.Background(), core.ToolCall{ID: "c2", Name: "echo", Arguments: `{not json`})
	assert.Contains(t, result, "Error executing tool 'echo'")
	assert.Contains(t, result, "invalid arguments")
}

func TestRegistry_SourceAccumulation(t *testing.T) {
	r := NewRegistry()
	first := &stubTool{name: "search", result: "hit", sources: []core.Source{"s1"}}
	require.NoError(t, r.Register(first))
	require.NoError(t, r.Register(&stubTool{name: "outline", result: "outline"}))

	r.Execute(context.Background(), "search", map[string]any{})
	assert.Equal(t, []core.Source{"s1"}, r.LastSources())

	// A later call of the same tool replaces its previous sources.
	first.sources = []core.Source{"s2", "s3"}
	r.Execute(context.Background(), "search", map[string]any{})
	assert.Equal(t, []core.Source{"s2", "s3"}, r.LastSources())

	// Tools without sources leave the accumulator untouched.
	r.Execute(context.Background(), "outline", map[string]any{})
	assert.Equal(t, []core.Source{"s2", "s3"}, r.LastSources())

	r.ResetSources()
	assert.Empty(t, r.LastSources())
}
