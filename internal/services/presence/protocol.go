package presence

import (
	"encoding/json"

	"presencehub/internal/session"
)

// Wire event identifiers, shared by client and broker.
const (
	EventJoinRequest       = "join-request"
	EventJoinAccepted      = "join-accepted"
	EventUsernameExists    = "username-exists"
	EventUserJoined        = "user-joined"
	EventUserDisconnected  = "user-disconnected"
	EventSyncFileStructure = "sync-file-structure"
	EventTypingStart       = "typing-start"
	EventTypingPause       = "typing-pause"
)

// ──────────────────────────── Request / broadcast DTOs ───────────────────────

// JoinRequest is the body for "join-request". Values are forwarded as-is;
// an empty username is a legal name subject only to the uniqueness check.
type JoinRequest struct {
	RoomID   string `json:"roomId"`
	Username string `json:"username"`
}

// JoinAccepted is the reply to a successful join. Users is the full room
// roster in join order, including the new user.
type JoinAccepted struct {
	User  session.Session   `json:"user"`
	Users []session.Session `json:"users"`
}

// UserEvent is the body for "user-joined", "user-disconnected" and the
// typing broadcasts.
type UserEvent struct {
	User session.Session `json:"user"`
}

// FileStructureSync carries an opaque editor snapshot. The three payload
// fields stay raw so they reach the target byte-for-byte; SocketID names
// the destination connection and is stripped before delivery.
type FileStructureSync struct {
	FileStructure json.RawMessage `json:"fileStructure"`
	OpenFiles     json.RawMessage `json:"openFiles"`
	ActiveFile    json.RawMessage `json:"activeFile"`
	SocketID      string          `json:"socketId,omitempty"`
}

// TypingUpdate is the body for "typing-start" / "typing-pause".
type TypingUpdate struct {
	CursorPosition int `json:"cursorPosition"`
}
