package ws

import "encoding/json"

// Envelope wraps every inbound WS frame.
type Envelope struct {
	Event string          `json:"event"`          // e.g. "join-request"
	Body  json.RawMessage `json:"body,omitempty"` // arbitrary JSON object
}

// reply is the outbound counterpart; the body is marshalled in place.
type reply struct {
	Event string `json:"event"`
	Body  any    `json:"body,omitempty"`
}

// ErrorBody is returned for failed dispatches.
type ErrorBody struct {
	Error string `json:"error"`
}
