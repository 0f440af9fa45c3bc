package session

import "errors"

var (
	// ErrDuplicateConnection means the transport handed out the same
	// connection id twice; a contract breach, never a user error.
	ErrDuplicateConnection = errors.New("connection id already registered")
	ErrNotFound            = errors.New("session not found")
)

// Registry maps connection ids to sessions and keeps the join order so
// room rosters are deterministic. It carries no lock of its own: the
// presence service is the single serialization domain for all access.
type Registry struct {
	byConn map[string]*Session
	order  []string // conn ids, oldest join first
}

func NewRegistry() *Registry {
	return &Registry{byConn: make(map[string]*Session)}
}

// Insert adds a session. The connection id must be unused.
func (r *Registry) Insert(s Session) error {
	if _, ok := r.byConn[s.ConnID]; ok {
		return ErrDuplicateConnection
	}
	r.byConn[s.ConnID] = &s
	r.order = append(r.order, s.ConnID)
	return nil
}

// RemoveByConnection deletes and returns the session for connID.
func (r *Registry) RemoveByConnection(connID string) (Session, error) {
	s, ok := r.byConn[connID]
	if !ok {
		return Session{}, ErrNotFound
	}
	delete(r.byConn, connID)
	for i, id := range r.order {
		if id == connID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return *s, nil
}

// FindByConnection returns a copy of the session for connID.
func (r *Registry) FindByConnection(connID string) (Session, error) {
	s, ok := r.byConn[connID]
	if !ok {
		return Session{}, ErrNotFound
	}
	return *s, nil
}

// ListByRoom returns copies of every session in roomID, in join order.
func (r *Registry) ListByRoom(roomID string) []Session {
	out := make([]Session, 0, 4)
	for _, id := range r.order {
		if s := r.byConn[id]; s.RoomID == roomID {
			out = append(out, *s)
		}
	}
	return out
}

// UsernameTaken reports whether username is already used in roomID.
func (r *Registry) UsernameTaken(roomID, username string) bool {
	for _, s := range r.byConn {
		if s.RoomID == roomID && s.Username == username {
			return true
		}
	}
	return false
}

// SetTyping updates the typing attributes of connID's session and returns
// the updated copy.
func (r *Registry) SetTyping(connID string, typing bool, cursorPosition int) (Session, error) {
	s, ok := r.byConn[connID]
	if !ok {
		return Session{}, ErrNotFound
	}
	s.Typing = typing
	s.CursorPosition = cursorPosition
	return *s, nil
}
