package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hupe1980/coursechat/completion"
	"github.com/hupe1980/coursechat/core"
	"github.com/hupe1980/coursechat/internal/util"
	"github.com/hupe1980/coursechat/logging"
)

// RegistryOptions configure a Registry.
type RegistryOptions struct {
	// Logger receives tool dispatch events (defaults to NoOpLogger).
	Logger logging.Logger
}

// Registry holds registered tools keyed by name, builds the tool catalog for
// completion requests, dispatches tool calls and accumulates the citation
// sources produced by tool executions within one query.
//
// A Registry serves exactly one top-level query at a time. Independent queries
// running concurrently must each use their own Registry; no internal locking
// is provided for the source accumulator.
type Registry struct {
	tools   map[string]Tool
	order   []string
	sources map[string][]core.Source
	logger  logging.Logger
}

// NewRegistry constructs an empty Registry.
func NewRegistry(optFns ...func(o *RegistryOptions)) *Registry {
	opts := RegistryOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Registry{
		tools:   make(map[string]Tool),
		sources: make(map[string][]core.Source),
		logger:  opts.Logger,
	}
}

// Register stores a tool under its declared name. Registering a second tool
// under an already-taken name is rejected.
func (r *Registry) Register(t Tool) error {
	name := t.Name()
	if name == "" {
		return fmt.Errorf("tool must declare a name")
	}
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("tool %q already registered", name)
	}
	r.tools[name] = t
	r.order = append(r.order, name)
	return nil
}

// Catalog returns the tool definitions for inclusion in completion requests,
// in registration order.
func (r *Registry) Catalog() []completion.Definition {
	defs := make([]completion.Definition, 0, len(r.order))
	for _, name := range r.order {
		t := r.tools[name]
		defs = append(defs, completion.Definition{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Parameters(),
		})
	}
	return defs
}

// Execute looks up and invokes the named tool. It always returns presentable
// text and never an error: an unknown name yields a deterministic "not found"
// string, invalid arguments and tool failures (including panics) yield a short
// error notice. Sources returned by a successful execution replace the sources
// previously recorded for the same tool within this query.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) string {
	t, ok := r.tools[name]
	if !ok {
		r.logger.Warn("tool.execute.not_found", "tool", name)
		return fmt.Sprintf("Tool '%s' not found", name)
	}

	if err := util.ValidateParameters(args, t.Parameters()); err != nil {
		r.logger.Warn("tool.execute.validation_failed", "tool", name, "error", err.Error())
		return errorNotice(name, err)
	}

	start := time.Now()
	result, sources, err := safeCall(ctx, t, args)
	dur := time.Since(start)

	if err != nil {
		r.logger.Error("tool.execute.error", "tool", name, "duration_ms", dur.Milliseconds(), "error", err.Error())
		return errorNotice(name, err)
	}

	if sources != nil {
		r.sources[name] = sources
	}

	r.logger.Info("tool.execute.success", "tool", name, "duration_ms", dur.Milliseconds(), "sources", len(sources))

	return result
}

// ExecuteCall dispatches a ToolCall whose arguments are still JSON-encoded.
// Malformed argument payloads are reported as an error notice, keeping the
// round alive.
func (r *Registry) ExecuteCall(ctx context.Context, call core.ToolCall) string {
	args := map[string]any{}
	if call.Arguments != "" {
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			r.logger.Warn("tool.execute.bad_arguments", "tool", call.Name, "error", err.Error())
			return errorNotice(call.Name, fmt.Errorf("invalid arguments: %w", err))
		}
	}
	return r.Execute(ctx, call.Name, args)
}

// LastSources returns the sources accumulated since the last reset, in tool
// registration order.
func (r *Registry) LastSources() []core.Source {
	var out []core.Source
	for _, name := range r.order {
		out = append(out, r.sources[name]...)
	}
	return out
}

// ResetSources clears the source accumulator. Call once per top-level query,
// before the first round.
func (r *Registry) ResetSources() {
	r.sources = make(map[string][]core.Source)
}

// safeCall invokes the tool converting panics into *ToolError.
func safeCall(ctx context.Context, t Tool, args map[string]any) (result string, sources []core.Source, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = NewToolError(t.Name(), fmt.Sprintf("panic: %v", rec), "PANIC")
		}
	}()
	return t.Call(ctx, args)
}

func errorNotice(name string, err error) string {
	return fmt.Sprintf("Error executing tool '%s': %v", name, err)
}
