package messages

// Error codes
const (
	ErrCodeInvalidMessage = "INVALID_MESSAGE"
	ErrCodeSessionFailed  = "SESSION_FAILED"
	ErrCodeInconsistent   = "INCONSISTENT_CONFIG"
)

// Message types
const (
	TypeQuestion = "question"
	TypeNote     = "note"
	TypeStatus   = "status"
	TypeError    = "error"
	TypeFinal    = "final"
)

// ServerMessage represents a message sent to frontend client
type ServerMessage struct {
	Type      string      `json:"type"` // "question", "note", "status", "error", "final"
	SessionID string      `json:"sessionId,omitempty"`
	Payload   interface{} `json:"payload"`
}

// TextResponsePayload carries a question or note for the user
type TextResponsePayload struct {
	Text string `json:"text"`
}

// StatusPayload contains status updates
type StatusPayload struct {
	Status  string `json:"status"` // "connected", "restarted", "disconnected"
	Message string `json:"message,omitempty"`
}

// ErrorPayload contains error information
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FinalPayload carries the completed onboarding configuration
type FinalPayload struct {
	Config interface{} `json:"config"`
}

// NewQuestionMessage creates the next-question message
func NewQuestionMessage(sessionID, text string) *ServerMessage {
	return &ServerMessage{
		Type:      TypeQuestion,
		SessionID: sessionID,
		Payload: TextResponsePayload{
			Text: text,
		},
	}
}

// NewNoteMessage creates a side-note message (validation feedback etc.)
func NewNoteMessage(sessionID, text string) *ServerMessage {
	return &ServerMessage{
		Type:      TypeNote,
		SessionID: sessionID,
		Payload: TextResponsePayload{
			Text: text,
		},
	}
}

// NewStatusMessage creates a status message
func NewStatusMessage(sessionID, status, message string) *ServerMessage {
	return &ServerMessage{
		Type:      TypeStatus,
		SessionID: sessionID,
		Payload: StatusPayload{
			Status:  status,
			Message: message,
		},
	}
}

// NewErrorMessage creates an error message
func NewErrorMessage(sessionID, code, message string) *ServerMessage {
	return &ServerMessage{
		Type:      TypeError,
		SessionID: sessionID,
		Payload: ErrorPayload{
			Code:    code,
			Message: message,
		},
	}
}

// NewFinalMessage creates the terminal configuration message
func NewFinalMessage(sessionID string, config interface{}) *ServerMessage {
	return &ServerMessage{
		Type:      TypeFinal,
		SessionID: sessionID,
		Payload: FinalPayload{
			Config: config,
		},
	}
}
