package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	_ "github.com/mattn/go-sqlite3"

	"github.com/seatflow/onboard/onboarding"
)

// Archive persists every completed onboarding configuration. It is an
// append-only record: operators can replay what a session produced and
// re-provision a store without running the conversation again.
type Archive struct {
	db *sql.DB
}

// SavedConfig is one archived row.
type SavedConfig struct {
	ID           int64
	SessionID    string
	StoreName    string
	CapacityHint int
	Config       *onboarding.Config
	CreatedAt    time.Time
}

// NewArchive opens (or creates) the SQLite file and ensures the schema.
func NewArchive(dbPath string) (*Archive, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	a := &Archive{db: db}
	if err := a.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return a, nil
}

func (a *Archive) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS onboarding_configs (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id    TEXT NOT NULL,
		store_name    TEXT NOT NULL,
		capacity_hint INTEGER NOT NULL,
		config_json   TEXT NOT NULL,
		created_at    TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_configs_session ON onboarding_configs(session_id);
	CREATE INDEX IF NOT EXISTS idx_configs_store_name ON onboarding_configs(store_name);
	`
	if _, err := a.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

// Save archives one completed configuration.
func (a *Archive) Save(ctx context.Context, sessionID string, cfg *onboarding.Config) (int64, error) {
	raw, err := sonic.MarshalString(cfg)
	if err != nil {
		return 0, fmt.Errorf("failed to encode config: %w", err)
	}

	res, err := a.db.ExecContext(ctx,
		`INSERT INTO onboarding_configs (session_id, store_name, capacity_hint, config_json) VALUES (?, ?, ?, ?)`,
		sessionID, cfg.StoreName, cfg.CapacityHint, raw)
	if err != nil {
		return 0, fmt.Errorf("failed to save config: %w", err)
	}
	return res.LastInsertId()
}

// Recent returns the newest archived configurations, newest first.
func (a *Archive) Recent(ctx context.Context, limit int) ([]SavedConfig, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := a.db.QueryContext(ctx,
		`SELECT id, session_id, store_name, capacity_hint, config_json, created_at
		 FROM onboarding_configs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query configs: %w", err)
	}
	defer rows.Close()

	return scanConfigs(rows)
}

// BySession returns all configurations a session produced, newest first.
func (a *Archive) BySession(ctx context.Context, sessionID string) ([]SavedConfig, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT id, session_id, store_name, capacity_hint, config_json, created_at
		 FROM onboarding_configs WHERE session_id = ? ORDER BY id DESC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query configs: %w", err)
	}
	defer rows.Close()

	return scanConfigs(rows)
}

func scanConfigs(rows *sql.Rows) ([]SavedConfig, error) {
	var out []SavedConfig
	for rows.Next() {
		var sc SavedConfig
		var raw string
		if err := rows.Scan(&sc.ID, &sc.SessionID, &sc.StoreName, &sc.CapacityHint, &raw, &sc.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan config: %w", err)
		}
		var cfg onboarding.Config
		if err := sonic.UnmarshalString(raw, &cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config %d: %w", sc.ID, err)
		}
		sc.Config = &cfg
		out = append(out, sc)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (a *Archive) Close() error {
	return a.db.Close()
}
