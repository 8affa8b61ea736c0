// Package session provides conversation-history storage: an append-only
// bounded log of question/answer exchanges keyed by session id.
package session

import (
	"sync"

	"github.com/google/uuid"
	"github.com/hupe1980/coursechat/core"
)

// DefaultMaxExchanges bounds how many completed exchanges are retained per
// session before the oldest are evicted.
const DefaultMaxExchanges = 2

// Options configure an InMemoryStore.
type Options struct {
	// MaxExchanges is the per-session history bound; values <= 0 disable
	// eviction.
	MaxExchanges int
}

// InMemoryStore is a volatile SessionStore implementation storing sessions in
// a process local map. It is safe for concurrent access and best suited for
// tests or ephemeral demo servers. Each returned session is cloned to prevent
// external mutation of internal state.
type InMemoryStore struct {
	mu       sync.RWMutex
	opts     Options
	sessions map[string]*core.Session
}

// NewInMemoryStore constructs an empty in-memory session store.
func NewInMemoryStore(optFns ...func(o *Options)) *InMemoryStore {
	opts := Options{MaxExchanges: DefaultMaxExchanges}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &InMemoryStore{opts: opts, sessions: make(map[string]*core.Session)}
}

// Get returns an existing session (clone) or creates a new one lazily.
func (s *InMemoryStore) Get(sessionID string) (*core.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[sessionID]; ok {
		return sess.Clone(), nil
	}
	return s.createLocked(sessionID).Clone(), nil
}

// Create forces the creation (or overwriting) of a session. An empty id is
// replaced by a generated one.
func (s *InMemoryStore) Create(sessionID string) (*core.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createLocked(sessionID).Clone(), nil
}

// AppendExchange records a completed question/answer pair, evicting the oldest
// exchanges beyond the configured bound.
func (s *InMemoryStore) AppendExchange(sessionID, question, answer string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = s.createLocked(sessionID)
	}
	sess.AddExchange(question, answer)
	if max := s.opts.MaxExchanges; max > 0 && len(sess.Exchanges) > max {
		sess.Exchanges = append([]core.Exchange(nil), sess.Exchanges[len(sess.Exchanges)-max:]...)
	}
	return nil
}

// createLocked allocates and stores a new session; caller must already hold
// the write lock.
func (s *InMemoryStore) createLocked(sessionID string) *core.Session {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	sess := core.NewSession(sessionID)
	s.sessions[sessionID] = sess
	return sess
}
