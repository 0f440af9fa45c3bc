package presence

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"presencehub/internal/session"
)

// Transport is the boundary contract the broker assumes from the
// connection multiplexer. Delivery to an unknown or dead target is a
// silent no-op, never an error.
type Transport interface {
	EmitTo(connID, event string, body any)
	BroadcastToRoom(roomID, excludeConnID, event string, body any)
	JoinRoom(roomID, connID string)
	LeaveRoom(roomID, connID string)
}

type IPresenceService interface {
	Join(ctx context.Context, connID string, req JoinRequest) error
	Disconnect(connID string)
	SetTyping(connID string, typing bool, cursorPosition int)
	RelayFileStructure(senderID string, payload FileStructureSync)
	RoomUsers(roomID string) []session.Session
}

type presenceService struct {
	transport Transport

	// mu is the single exclusion domain for the registry. Every
	// check-then-act sequence (uniqueness check + insert, lookup +
	// remove) runs as one critical section under it; snapshots for
	// emission are taken before release so no payload can observe a
	// partially updated registry.
	mu       sync.Mutex
	registry *session.Registry
}

func NewPresenceService(reg *session.Registry, t Transport) IPresenceService {
	return &presenceService{
		transport: t,
		registry:  reg,
	}
}

// Join moves a connection from unjoined to joined. On a name collision
// only the requester hears about it and nothing is mutated. On success
// the room is notified first, then the requester gets the roster.
func (svc *presenceService) Join(ctx context.Context, connID string, req JoinRequest) error {
	svc.mu.Lock()

	if svc.registry.UsernameTaken(req.RoomID, req.Username) {
		svc.mu.Unlock()
		zap.L().Debug("presence.join_rejected",
			zap.String("room", req.RoomID),
			zap.String("username", req.Username),
		)
		svc.transport.EmitTo(connID, EventUsernameExists, struct{}{})
		return nil
	}

	user := session.New(connID, req.RoomID, req.Username)
	if err := svc.registry.Insert(user); err != nil {
		svc.mu.Unlock()
		// Duplicate connection id: transport contract breach. Abort
		// without overwriting the existing session.
		return fmt.Errorf("join %q: %w", connID, err)
	}
	svc.transport.JoinRoom(req.RoomID, connID)
	users := svc.registry.ListByRoom(req.RoomID)
	svc.mu.Unlock()

	svc.transport.BroadcastToRoom(req.RoomID, connID, EventUserJoined, UserEvent{User: user})
	svc.transport.EmitTo(connID, EventJoinAccepted, JoinAccepted{User: user, Users: users})

	zap.L().Info("presence.joined",
		zap.String("room", req.RoomID),
		zap.String("username", req.Username),
		zap.String("conn", connID),
	)
	return nil
}

// Disconnect handles the transport's pre-teardown signal. It runs while
// the connection is still in its room group, so the leave broadcast only
// needs the usual sender exclusion. A connection that never joined is a
// no-op.
func (svc *presenceService) Disconnect(connID string) {
	svc.mu.Lock()
	user, err := svc.registry.FindByConnection(connID)
	if err != nil {
		svc.mu.Unlock()
		zap.L().Debug("presence.disconnect_unjoined", zap.String("conn", connID))
		return
	}
	_, _ = svc.registry.RemoveByConnection(connID)
	svc.mu.Unlock()

	svc.transport.BroadcastToRoom(user.RoomID, connID, EventUserDisconnected, UserEvent{User: user})
	svc.transport.LeaveRoom(user.RoomID, connID)

	zap.L().Info("presence.disconnected",
		zap.String("room", user.RoomID),
		zap.String("username", user.Username),
		zap.String("conn", connID),
	)
}

// SetTyping updates the sender's typing attributes and tells the rest of
// the room.
func (svc *presenceService) SetTyping(connID string, typing bool, cursorPosition int) {
	svc.mu.Lock()
	user, err := svc.registry.SetTyping(connID, typing, cursorPosition)
	svc.mu.Unlock()
	if err != nil {
		zap.L().Debug("presence.typing_unjoined", zap.String("conn", connID))
		return
	}

	event := EventTypingPause
	if typing {
		event = EventTypingStart
	}
	svc.transport.BroadcastToRoom(user.RoomID, connID, event, UserEvent{User: user})
}

// RelayFileStructure forwards an opaque editor snapshot to the connection
// named in the payload. The sender must be joined; the target may be any
// live connection (same room or not), and a missing target is a no-op.
func (svc *presenceService) RelayFileStructure(senderID string, payload FileStructureSync) {
	svc.mu.Lock()
	_, err := svc.registry.FindByConnection(senderID)
	svc.mu.Unlock()
	if err != nil {
		zap.L().Debug("presence.relay_unjoined", zap.String("conn", senderID))
		return
	}

	target := payload.SocketID
	payload.SocketID = ""
	svc.transport.EmitTo(target, EventSyncFileStructure, payload)
}

// RoomUsers returns the current roster of roomID in join order. An
// unknown room is simply an empty roster; rooms are never materialized.
func (svc *presenceService) RoomUsers(roomID string) []session.Session {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.registry.ListByRoom(roomID)
}
