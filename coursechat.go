// Package coursechat provides a high-level façade over the round-bounded
// tool-calling flow and its collaborators (completion client, retriever,
// session store & logging) enabling rapid construction of course-material
// assistants. Most applications interact with this package by:
//  1. Creating a CourseChat via New() with a completion client and a retriever
//  2. Creating or reusing a session id
//  3. Asking questions via Answer (session-backed) or AnswerWithHistory
//     (caller-supplied flat transcript)
//
// The façade delegates orchestration to flow.Flow while keeping setup and
// usage ergonomics concise. Defaults are safe for local development and
// testing; production deployments typically supply a durable session store and
// a structured logger.
package coursechat

import (
	"context"
	"fmt"

	"github.com/hupe1980/coursechat/completion"
	"github.com/hupe1980/coursechat/core"
	"github.com/hupe1980/coursechat/flow"
	"github.com/hupe1980/coursechat/logging"
	"github.com/hupe1980/coursechat/session"
	"github.com/hupe1980/coursechat/tool"
	"github.com/hupe1980/coursechat/transcript"
)

// Options configure the CourseChat instance.
type Options struct {
	// SystemPrompt overrides the default flow instructions when non-empty.
	SystemPrompt string

	// MaxRounds bounds the number of tool-calling rounds per query.
	MaxRounds int

	// MaxHistory bounds the number of retained exchanges per session.
	MaxHistory int

	// SessionStore (defaults to an in-memory implementation if not provided).
	SessionStore core.SessionStore

	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger
}

// CourseChat is the high-level façade aggregating the flow and its services.
type CourseChat struct {
	opts      Options
	retriever core.Retriever
	flow      *flow.Flow
}

// New creates a new CourseChat instance with optional overrides. Any unset
// service is initialized with an in-memory implementation.
func New(client completion.Client, retriever core.Retriever, optFns ...func(o *Options)) *CourseChat {
	opts := Options{
		MaxRounds:  flow.DefaultMaxRounds,
		MaxHistory: session.DefaultMaxExchanges,
		Logger:     logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.SessionStore == nil {
		opts.SessionStore = session.NewInMemoryStore(func(o *session.Options) {
			o.MaxExchanges = opts.MaxHistory
		})
	}

	f := flow.New(client, func(o *flow.Options) {
		o.MaxRounds = opts.MaxRounds
		o.Logger = opts.Logger
		if opts.SystemPrompt != "" {
			o.SystemPrompt = opts.SystemPrompt
		}
	})

	return &CourseChat{opts: opts, retriever: retriever, flow: f}
}

// CreateSession creates a fresh conversation session and returns its id.
func (c *CourseChat) CreateSession() (string, error) {
	sess, err := c.opts.SessionStore.Create("")
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return sess.ID, nil
}

// Answer runs one query against the session's conversation history, records
// the completed exchange and returns the answer together with the citation
// sources produced by tool executions during the query.
func (c *CourseChat) Answer(ctx context.Context, sessionID, query string) (string, []core.Source, error) {
	sess, err := c.opts.SessionStore.Get(sessionID)
	if err != nil {
		return "", nil, fmt.Errorf("load session: %w", err)
	}

	answer, sources, err := c.generate(ctx, query, transcript.Turns(sess.Exchanges))
	if err != nil {
		return "", nil, err
	}

	if err := c.opts.SessionStore.AppendExchange(sess.ID, query, answer); err != nil {
		return "", nil, fmt.Errorf("record exchange: %w", err)
	}

	return answer, sources, nil
}

// AnswerWithHistory runs one sessionless query against a caller-supplied flat
// transcript ("User: ..." / "Assistant: ..." lines). Nothing is persisted.
func (c *CourseChat) AnswerWithHistory(ctx context.Context, query, history string) (string, []core.Source, error) {
	return c.generate(ctx, query, transcript.Parse(history))
}

// generate builds a per-query registry, runs the flow and reads the sources
// once. A fresh registry per query keeps concurrent queries from sharing the
// source accumulator.
func (c *CourseChat) generate(ctx context.Context, query string, history []core.Turn) (string, []core.Source, error) {
	registry, err := c.newRegistry()
	if err != nil {
		return "", nil, err
	}
	registry.ResetSources()

	answer, err := c.flow.Generate(ctx, query, history, registry)
	if err != nil {
		return "", nil, err
	}

	return answer, registry.LastSources(), nil
}

func (c *CourseChat) newRegistry() (*tool.Registry, error) {
	registry := tool.NewRegistry(func(o *tool.RegistryOptions) {
		o.Logger = c.opts.Logger
	})
	if err := registry.Register(tool.NewContentSearchTool(c.retriever)); err != nil {
		return nil, fmt.Errorf("register search tool: %w", err)
	}
	if err := registry.Register(tool.NewOutlineTool(c.retriever)); err != nil {
		return nil, fmt.Errorf("register outline tool: %w", err)
	}
	return registry, nil
}
