package ws

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Hub keeps the live connection index plus per-room broadcast groups. It
// implements presence.Transport; every delivery to a gone target is a
// silent no-op.
type Hub struct {
	conns sync.Map // connID -> *clientConn
	rooms sync.Map // roomID -> *room
}

func NewHub() *Hub { return &Hub{} }

// Register makes a freshly accepted connection addressable.
func (h *Hub) Register(connID string, c *clientConn) {
	h.conns.Store(connID, c)
}

// Unregister drops the connection from the index. Room membership is
// expected to be gone already (disconnect runs before teardown).
func (h *Hub) Unregister(connID string) {
	h.conns.Delete(connID)
}

// EmitTo delivers one event to one connection.
func (h *Hub) EmitTo(connID, event string, body any) {
	v, ok := h.conns.Load(connID)
	if !ok {
		zap.L().Debug("ws.emit_no_target", zap.String("conn", connID), zap.String("event", event))
		return
	}
	if err := v.(*clientConn).writeJSON(reply{Event: event, Body: body}); err != nil {
		zap.L().Debug("ws.emit_failed", zap.String("conn", connID), zap.Error(err))
	}
}

// BroadcastToRoom fans an event out to every member of roomID except
// excludeConnID.
func (h *Hub) BroadcastToRoom(roomID, excludeConnID, event string, body any) {
	v, ok := h.rooms.Load(roomID)
	if !ok {
		return
	}
	msg, err := json.Marshal(reply{Event: event, Body: body})
	if err != nil {
		zap.L().Warn("ws.broadcast_marshal", zap.String("event", event), zap.Error(err))
		return
	}
	v.(*room).broadcastExcept(excludeConnID, msg)
}

func (h *Hub) JoinRoom(roomID, connID string) {
	v, ok := h.conns.Load(connID)
	if !ok {
		return
	}
	r, _ := h.rooms.LoadOrStore(roomID, newRoom())
	r.(*room).add(connID, v.(*clientConn))
}

func (h *Hub) LeaveRoom(roomID, connID string) {
	if v, ok := h.rooms.Load(roomID); ok {
		v.(*room).remove(connID)
	}
}
