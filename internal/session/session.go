package session

// Status is the presence state of a joined user. Only StatusOnline is
// emitted today; the wire value is a plain string so clients can extend it.
type Status string

const StatusOnline Status = "online"

// Session is the registry record for one joined connection. JSON field
// names match the wire protocol, so a Session can be embedded directly in
// broadcast payloads.
type Session struct {
	ConnID         string `json:"socketId"`
	RoomID         string `json:"roomId"`
	Username       string `json:"username"`
	Status         Status `json:"status"`
	CursorPosition int    `json:"cursorPosition"`
	Typing         bool   `json:"typing"`
	CurrentFile    string `json:"currentFile"`
}

// New builds a Session with the default presence attributes.
func New(connID, roomID, username string) Session {
	return Session{
		ConnID:   connID,
		RoomID:   roomID,
		Username: username,
		Status:   StatusOnline,
	}
}
