package session

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/seatflow/onboard/config"
	"github.com/seatflow/onboard/extract"
	"github.com/seatflow/onboard/onboarding"
	"github.com/seatflow/onboard/store"
)

// Manager manages all client sessions. One extractor and one archive
// are shared across sessions; each session gets its own flow.
type Manager struct {
	sessions  map[string]*ClientSession
	mu        sync.RWMutex
	redis     *redis.Client
	config    *config.Config
	extractor onboarding.Extractor
	archive   *store.Archive
}

// NewManager creates a session manager with the configured extraction
// backing, the SQLite archive and a Redis connection. Redis and the
// archive are both optional at runtime: if either is unavailable the
// server still answers conversations.
func NewManager(ctx context.Context, cfg *config.Config) (*Manager, error) {
	var extractor onboarding.Extractor
	switch cfg.Extractor {
	case "rules":
		extractor = extract.NewRules()
	default:
		g, err := extract.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.ExtractTimeout)
		if err != nil {
			return nil, fmt.Errorf("failed to create extractor: %w", err)
		}
		extractor = g
	}

	archive, err := store.NewArchive(cfg.DBPath)
	if err != nil {
		log.Printf("⚠️ Config archive unavailable, continuing without it: %v", err)
		archive = nil
	}

	// Try to connect to Redis, but don't fail if unavailable
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		// Redis unavailable, continue without it
		redisClient = nil
	}

	return &Manager{
		sessions:  make(map[string]*ClientSession),
		redis:     redisClient,
		config:    cfg,
		extractor: extractor,
		archive:   archive,
	}, nil
}

// CreateSession creates a new client session
func (sm *Manager) CreateSession(ctx context.Context, clientConn *websocket.Conn) (*ClientSession, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if len(sm.sessions) >= sm.config.MaxSessions {
		return nil, fmt.Errorf("maximum sessions reached")
	}

	sessionID := uuid.New().String()
	session := NewClientSession(sessionID, clientConn, sm.extractor, sm.archive)

	sm.storeSession(ctx, sessionID, session)
	return session, nil
}

// storeSession saves a session to memory and Redis
func (sm *Manager) storeSession(ctx context.Context, sessionID string, session *ClientSession) {
	sm.sessions[sessionID] = session

	if sm.redis != nil {
		sm.redis.HSet(ctx, "session:"+sessionID, map[string]interface{}{
			"created_at":    session.CreatedAt.Format(time.RFC3339),
			"last_activity": session.LastActivity.Format(time.RFC3339),
			"status":        "active",
		})
		sm.redis.SAdd(ctx, "active_sessions", sessionID)
		sm.redis.Expire(ctx, "session:"+sessionID, sm.config.SessionTimeout)
	}
}

// GetSession retrieves a session by ID
func (sm *Manager) GetSession(sessionID string) (*ClientSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.sessions[sessionID]
	return session, exists
}

// RemoveSession cleans up and removes a session
func (sm *Manager) RemoveSession(ctx context.Context, sessionID string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	session, exists := sm.sessions[sessionID]
	if !exists {
		return nil
	}

	session.Close()
	delete(sm.sessions, sessionID)

	if sm.redis != nil {
		sm.redis.Del(ctx, "session:"+sessionID)
		sm.redis.SRem(ctx, "active_sessions", sessionID)
	}

	return nil
}

// GetActiveSessionCount returns current session count
func (sm *Manager) GetActiveSessionCount() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// Archive exposes the configuration archive (nil when disabled).
func (sm *Manager) Archive() *store.Archive {
	return sm.archive
}

// CleanupInactiveSessions removes sessions that have been inactive
func (sm *Manager) CleanupInactiveSessions(ctx context.Context) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	now := time.Now()
	for id, session := range sm.sessions {
		if now.Sub(session.lastActivity()) > sm.config.SessionTimeout {
			session.Close()
			delete(sm.sessions, id)

			if sm.redis != nil {
				sm.redis.Del(ctx, "session:"+id)
				sm.redis.SRem(ctx, "active_sessions", id)
			}
		}
	}
}

// StartCleanupRoutine starts periodic cleanup of inactive sessions
func (sm *Manager) StartCleanupRoutine(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sm.CleanupInactiveSessions(ctx)
		}
	}
}

// Shutdown closes all sessions and shared resources
func (sm *Manager) Shutdown() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	for id, session := range sm.sessions {
		session.Close()
		delete(sm.sessions, id)
	}

	if closer, ok := sm.extractor.(interface{ Close() error }); ok {
		closer.Close()
	}
	if sm.archive != nil {
		sm.archive.Close()
	}
	if sm.redis != nil {
		sm.redis.Close()
	}
}
