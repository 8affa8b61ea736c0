package core

// Exchange is one completed question/answer pair of a conversation.
type Exchange struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Session is an append-only bounded log of exchanges for one conversation.
// Bounding (eviction of the oldest exchanges) is enforced by the store, not
// by the session value itself.
type Session struct {
	ID        string     `json:"id"`
	Exchanges []Exchange `json:"exchanges"`
}

// NewSession constructs an empty session with the given id.
func NewSession(id string) *Session {
	return &Session{ID: id}
}

// AddExchange appends a completed question/answer pair.
func (s *Session) AddExchange(question, answer string) {
	s.Exchanges = append(s.Exchanges, Exchange{Question: question, Answer: answer})
}

// Clone returns a deep copy so callers can never mutate store-internal state.
func (s *Session) Clone() *Session {
	cp := &Session{ID: s.ID}
	if len(s.Exchanges) > 0 {
		cp.Exchanges = make([]Exchange, len(s.Exchanges))
		copy(cp.Exchanges, s.Exchanges)
	}
	return cp
}

// SessionStore persists sessions keyed by session id.
//
// Implementations must be safe for concurrent use; it is the only piece of
// state shared between independent queries.
type SessionStore interface {
	// Get returns the session for the id, creating an empty one when unknown.
	Get(sessionID string) (*Session, error)

	// Create forces creation of a session. An empty id instructs the store to
	// generate one.
	Create(sessionID string) (*Session, error)

	// AppendExchange records a completed question/answer pair, evicting the
	// oldest exchanges beyond the store's history bound.
	AppendExchange(sessionID, question, answer string) error
}
