// Package flow implements the bounded round loop that mediates between the
// completion service and registered tools: it decides per round whether tools
// run, keeps the message chain structurally valid across rounds, enforces a
// hard round budget and produces the final synthesized answer.
package flow

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hupe1980/coursechat/completion"
	"github.com/hupe1980/coursechat/core"
	"github.com/hupe1980/coursechat/logging"
	"github.com/hupe1980/coursechat/tool"
)

// DefaultMaxRounds is the round budget applied when none is configured.
const DefaultMaxRounds = 2

// fallbackAnswer is returned when the loop terminates without any completion
// response to hand back. Unreachable under normal operation.
const fallbackAnswer = "I was unable to generate an answer to that question."

// DefaultSystemPrompt instructs the completion service on tool usage and
// response style for course-material questions.
const DefaultSystemPrompt = `You are an AI assistant specialized in course materials and educational content with access to tools for searching course content and retrieving course outlines.

Tool Usage:
- Use the search tool only for questions about specific course content or detailed educational materials
- Use the outline tool when users ask for course structure, lesson listings or course overviews
- Synthesize tool results into accurate, fact-based responses
- If a tool yields no results, state this clearly without offering alternatives

Response Protocol:
- General knowledge questions: answer using existing knowledge without searching
- Course-specific questions: use a tool first, then answer
- No meta-commentary: provide direct answers only, without reasoning process or search explanations

All responses must be brief, educational, clear and example-supported where that aids understanding. Provide only the direct answer to what was asked.`

// Options configure a Flow.
type Options struct {
	// SystemPrompt is sent with every completion request.
	SystemPrompt string
	// MaxRounds bounds how many tool-calling rounds may run before the final
	// synthesis call.
	MaxRounds int
	// Logger receives round and completion events (defaults to NoOpLogger).
	Logger logging.Logger
}

// Flow is the round-bounded orchestrator. One Flow is safe for concurrent use
// as long as each concurrent Generate call receives its own tool registry.
type Flow struct {
	client completion.Client
	opts   Options
}

// New constructs a Flow over the given completion client.
func New(client completion.Client, optFns ...func(o *Options)) *Flow {
	opts := Options{
		SystemPrompt: DefaultSystemPrompt,
		MaxRounds:    DefaultMaxRounds,
		Logger:       logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Flow{client: client, opts: opts}
}

// Generate runs the bounded conversation protocol for one query and returns
// the final answer text.
//
// Per round, a completion request carries the system prompt, the accumulated
// message chain and, while the round budget lasts and a registry is supplied,
// the tool catalog. A response without tool calls ends the exchange
// immediately. Requested tool calls execute strictly sequentially in response
// order, each result appended as a tool turn referencing its call id. When the
// budget is exhausted after tool use, one final synthesis request without the
// catalog produces the answer.
//
// Tool failures never abort the exchange; only a failing completion call does,
// and that error is returned unmodified in meaning, without retries. At most
// MaxRounds+1 completion requests are issued.
func (f *Flow) Generate(ctx context.Context, query string, history []core.Turn, registry *tool.Registry) (string, error) {
	queryID := uuid.NewString()
	logger := f.opts.Logger

	messages := make([]core.Turn, 0, len(history)+1)
	messages = append(messages, history...)
	messages = append(messages, core.NewUserTurn(query))

	logger.Info("flow.generate.start", "query_id", queryID, "history_turns", len(history))

	toolsUsed := false
	for round := 0; round < f.opts.MaxRounds; round++ {
		req := completion.Request{SystemPrompt: f.opts.SystemPrompt, Messages: messages}
		if registry != nil {
			req.Tools = registry.Catalog()
		}

		resp, err := f.complete(ctx, logger, queryID, req)
		if err != nil {
			return "", err
		}

		if !resp.HasToolCalls() || registry == nil {
			logger.Info("flow.generate.final", "query_id", queryID, "round", round, "tools_used", toolsUsed)
			return resp.Content, nil
		}

		calls := resp.ToolCalls
		for i := range calls {
			if calls[i].ID == "" {
				calls[i].ID = uuid.NewString()
			}
		}

		messages = append(messages, core.NewToolCallTurn(resp.Content, calls))
		for _, call := range calls {
			result := registry.ExecuteCall(ctx, call)
			messages = append(messages, core.NewToolResultTurn(call.ID, call.Name, result))
		}
		toolsUsed = true

		logger.Info("flow.round.complete", "query_id", queryID, "round", round, "tool_calls", len(calls))
	}

	if toolsUsed {
		resp, err := f.complete(ctx, logger, queryID, completion.Request{
			SystemPrompt: f.opts.SystemPrompt,
			Messages:     messages,
		})
		if err != nil {
			return "", err
		}
		logger.Info("flow.generate.synthesized", "query_id", queryID, "rounds", f.opts.MaxRounds)
		return resp.Content, nil
	}

	logger.Warn("flow.generate.fallback", "query_id", queryID)
	return fallbackAnswer, nil
}

// complete issues one completion call with timing and logging.
func (f *Flow) complete(ctx context.Context, logger logging.Logger, queryID string, req completion.Request) (*completion.Response, error) {
	start := time.Now()
	resp, err := f.client.Complete(ctx, req)
	if err != nil {
		logger.Error("flow.completion.error", "query_id", queryID, "duration_ms", time.Since(start).Milliseconds(), "error", err.Error())
		return nil, err
	}
	logger.Debug(
		"flow.completion.success",
		"query_id", queryID,
		"duration_ms", time.Since(start).Milliseconds(),
		"finish_reason", resp.FinishReason,
		"tool_calls", len(resp.ToolCalls),
	)
	return resp, nil
}
