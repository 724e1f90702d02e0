package session

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/seatflow/onboard/messages"
	"github.com/seatflow/onboard/onboarding"
	"github.com/seatflow/onboard/store"
)

const (
	writeBufferSize = 64
	writeTimeout    = 10 * time.Second
	maxMessageSize  = 64 * 1024
)

// ClientSession represents a single user's onboarding conversation over
// one WebSocket connection. One flow at a time; "restart" throws the
// flow away and starts over on the same connection.
type ClientSession struct {
	ID           string
	ClientConn   *websocket.Conn
	CreatedAt    time.Time
	LastActivity time.Time

	flow      *onboarding.Flow
	extractor onboarding.Extractor
	archive   *store.Archive // nil when archiving is disabled

	// Use channels for non-blocking writes
	writeChan chan any

	mu        sync.RWMutex
	closed    bool
	CloseChan chan struct{}
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewClientSession creates a session with a fresh onboarding flow.
func NewClientSession(id string, clientConn *websocket.Conn, ex onboarding.Extractor, archive *store.Archive) *ClientSession {
	ctx, cancel := context.WithCancel(context.Background())

	clientConn.SetReadLimit(maxMessageSize)
	clientConn.EnableWriteCompression(true)

	return &ClientSession{
		ID:           id,
		ClientConn:   clientConn,
		CreatedAt:    time.Now(),
		LastActivity: time.Now(),
		flow:         onboarding.NewFlow(ex),
		extractor:    ex,
		archive:      archive,
		writeChan:    make(chan any, writeBufferSize),
		CloseChan:    make(chan struct{}),
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Start begins the bidirectional message handling.
func (cs *ClientSession) Start() {
	go cs.writePump()
	cs.queueMessage(messages.NewStatusMessage(cs.ID, "connected", "Session established"))
	cs.queueMessage(messages.NewQuestionMessage(cs.ID, cs.flow.Start().Question))
	go cs.handleClientMessages()
}

// writePump handles all outgoing messages in a single goroutine
func (cs *ClientSession) writePump() {
	defer func() {
		// Send close message before exiting
		cs.ClientConn.SetWriteDeadline(time.Now().Add(writeTimeout))
		cs.ClientConn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		)
	}()

	for {
		select {
		case <-cs.CloseChan:
			return
		case msg := <-cs.writeChan:
			cs.ClientConn.SetWriteDeadline(time.Now().Add(writeTimeout))

			if err := cs.ClientConn.WriteJSON(msg); err != nil {
				return
			}
		}
	}
}

// queueMessage adds a message to the write queue (non-blocking)
func (cs *ClientSession) queueMessage(msg any) {
	cs.mu.RLock()
	closed := cs.closed
	cs.mu.RUnlock()
	if closed {
		return
	}
	select {
	case cs.writeChan <- msg:
		cs.mu.Lock()
		cs.LastActivity = time.Now()
		cs.mu.Unlock()
	default:
		// Queue full, drop message (shouldn't happen with proper sizing)
	}
}

func (cs *ClientSession) handleClientMessages() {
	defer cs.Close()

	for {
		select {
		case <-cs.CloseChan:
			return
		default:
			_, message, err := cs.ClientConn.ReadMessage()
			if err != nil {
				return
			}

			cs.mu.Lock()
			cs.LastActivity = time.Now()
			cs.mu.Unlock()

			var clientMsg messages.ClientMessage
			if err := json.Unmarshal(message, &clientMsg); err != nil {
				cs.queueMessage(messages.NewErrorMessage(cs.ID, messages.ErrCodeInvalidMessage, "Invalid message format"))
				continue
			}

			cs.processClientMessage(&clientMsg)
		}
	}
}

func (cs *ClientSession) processClientMessage(msg *messages.ClientMessage) {
	switch msg.Type {
	case "text":
		var payload messages.TextPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			cs.queueMessage(messages.NewErrorMessage(cs.ID, messages.ErrCodeInvalidMessage, "Invalid text payload"))
			return
		}
		cs.handleUserText(payload.Text)

	case "control":
		var payload messages.ControlPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			cs.queueMessage(messages.NewErrorMessage(cs.ID, messages.ErrCodeInvalidMessage, "Invalid control payload"))
			return
		}
		cs.handleControlMessage(&payload)

	default:
		cs.queueMessage(messages.NewErrorMessage(cs.ID, messages.ErrCodeInvalidMessage, "Unknown message type: "+msg.Type))
	}
}

// handleUserText feeds one utterance into the flow and relays the
// resulting turn back to the client.
func (cs *ClientSession) handleUserText(text string) {
	if strings.TrimSpace(text) == "" {
		cs.queueMessage(messages.NewErrorMessage(cs.ID, messages.ErrCodeInvalidMessage, "Empty text"))
		return
	}
	if cs.flow.Final() != nil {
		cs.queueMessage(messages.NewNoteMessage(cs.ID,
			"This onboarding is already complete. Send a restart control to set up another store."))
		return
	}

	turn, err := cs.flow.Advance(cs.ctx, text)
	if err != nil {
		if errors.Is(err, onboarding.ErrInconsistent) {
			log.Printf("❌ [%s] Inconsistent final config: %v", cs.ID[:8], err)
			cs.queueMessage(messages.NewErrorMessage(cs.ID, messages.ErrCodeInconsistent, err.Error()))
			cs.Close()
			return
		}
		cs.queueMessage(messages.NewErrorMessage(cs.ID, messages.ErrCodeSessionFailed, err.Error()))
		return
	}

	if turn.Note != "" {
		cs.queueMessage(messages.NewNoteMessage(cs.ID, turn.Note))
	}
	if turn.Done {
		cs.archiveFinal(turn.Final)
		cs.queueMessage(messages.NewFinalMessage(cs.ID, turn.Final))
		return
	}
	if turn.Question != "" {
		cs.queueMessage(messages.NewQuestionMessage(cs.ID, turn.Question))
	}
}

func (cs *ClientSession) archiveFinal(cfg *onboarding.Config) {
	if cs.archive == nil || cfg == nil {
		return
	}
	id, err := cs.archive.Save(cs.ctx, cs.ID, cfg)
	if err != nil {
		log.Printf("⚠️ [%s] Failed to archive config: %v", cs.ID[:8], err)
		return
	}
	log.Printf("💾 [%s] Archived config #%d for %q", cs.ID[:8], id, cfg.StoreName)
}

func (cs *ClientSession) handleControlMessage(payload *messages.ControlPayload) {
	switch payload.Action {
	case "ping":
		cs.queueMessage(messages.NewStatusMessage(cs.ID, "pong", ""))
	case "restart":
		cs.flow = onboarding.NewFlow(cs.extractor)
		log.Printf("🔄 [%s] Flow restarted", cs.ID[:8])
		cs.queueMessage(messages.NewStatusMessage(cs.ID, "restarted", "Starting over"))
		cs.queueMessage(messages.NewQuestionMessage(cs.ID, cs.flow.Start().Question))
	default:
		cs.queueMessage(messages.NewErrorMessage(cs.ID, messages.ErrCodeInvalidMessage, "Unknown control action: "+payload.Action))
	}
}

// Close terminates the session and cleans up resources
func (cs *ClientSession) Close() error {
	cs.mu.Lock()
	if cs.closed {
		cs.mu.Unlock()
		return nil
	}
	cs.closed = true
	cs.mu.Unlock()

	cs.cancel()

	// Signal close; writePump exits on CloseChan. writeChan is never
	// closed so a reader goroutine mid-queueMessage cannot hit a send on
	// a closed channel.
	close(cs.CloseChan)

	// Close client connection - don't write close message as writePump is stopped
	if cs.ClientConn != nil {
		cs.ClientConn.Close()
	}

	return nil
}

// IsClosed returns whether the session is closed
func (cs *ClientSession) IsClosed() bool {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.closed
}

// lastActivity reads the activity timestamp under the session lock; the
// manager's cleanup ticker runs concurrently with the read loop.
func (cs *ClientSession) lastActivity() time.Time {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.LastActivity
}
