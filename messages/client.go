package messages

import "encoding/json"

// ClientMessage represents a message from frontend client
type ClientMessage struct {
	Type    string          `json:"type"` // "text", "control"
	Payload json.RawMessage `json:"payload"`
}

// TextPayload contains one user utterance
type TextPayload struct {
	Text string `json:"text"`
}

// ControlPayload contains control commands
type ControlPayload struct {
	Action string `json:"action"` // "ping", "restart"
}
