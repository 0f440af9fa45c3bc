package ws

import (
	"sync"

	"github.com/gorilla/websocket"
)

// room is one broadcast group. Connections are keyed by connection id so
// sender exclusion is a map skip.
type room struct {
	mu    sync.RWMutex
	conns map[string]*clientConn
}

func newRoom() *room { return &room{conns: map[string]*clientConn{}} }

func (r *room) add(connID string, c *clientConn) {
	r.mu.Lock()
	r.conns[connID] = c
	r.mu.Unlock()
}

func (r *room) remove(connID string) {
	r.mu.Lock()
	delete(r.conns, connID)
	r.mu.Unlock()
}

func (r *room) broadcastExcept(excludeID string, msg []byte) {
	// Take a quick snapshot of the current connections
	r.mu.RLock()
	ids := make([]string, 0, len(r.conns))
	conns := make([]*clientConn, 0, len(r.conns))
	for id, c := range r.conns {
		if id == excludeID {
			continue
		}
		ids = append(ids, id)
		conns = append(conns, c)
	}
	r.mu.RUnlock()

	// Do the I/O outside the lock
	for i, c := range conns {
		if err := c.write(websocket.TextMessage, msg); err != nil {
			r.remove(ids[i])
			c.rawConn.Close()
		}
	}
}
