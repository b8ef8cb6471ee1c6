package session

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/deliverydash/deliverydash/game/engine"
	"github.com/deliverydash/deliverydash/game/service"
)

// SQLitePersistence implements SessionPersistence on a single SQLite file.
// Save slots share one table keyed by lowercase session ID, which keeps
// many-slot installs in one artifact instead of a directory of JSON files.
type SQLitePersistence struct {
	db            *sql.DB
	configManager service.ConfigManager
}

// NewSQLitePersistence opens (or creates) the database at path
func NewSQLitePersistence(path string, configManager service.ConfigManager) (*SQLitePersistence, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// WAL suits the frequent small writes of auto-save.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	schema := `CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		config_name TEXT NOT NULL,
		created_at TEXT NOT NULL,
		last_accessed_at TEXT NOT NULL,
		state_json TEXT NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLitePersistence{db: db, configManager: configManager}, nil
}

// Close closes the underlying database
func (sp *SQLitePersistence) Close() error {
	return sp.db.Close()
}

// Save upserts a session row
func (sp *SQLitePersistence) Save(session *service.Session) error {
	if session == nil {
		return fmt.Errorf("session cannot be nil")
	}

	stateJSON, err := json.Marshal(session.Engine.GetState())
	if err != nil {
		return fmt.Errorf("failed to marshal game state: %w", err)
	}

	configID := session.Config.Name
	if configs, err := sp.configManager.ListConfigs(); err == nil {
		for _, cfg := range configs {
			if cfg.Name == session.Config.Name {
				configID = cfg.ConfigID
				break
			}
		}
	}

	_, err = sp.db.Exec(
		`INSERT OR REPLACE INTO sessions(id,config_name,created_at,last_accessed_at,state_json) VALUES(?,?,?,?,?)`,
		session.ID,
		configID,
		session.CreatedAt.UTC().Format(time.RFC3339Nano),
		session.LastAccessedAt.UTC().Format(time.RFC3339Nano),
		string(stateJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to write session row: %w", err)
	}
	return nil
}

// Load rebuilds a session from its row, merging the saved state over
// scenario defaults like the file backend does
func (sp *SQLitePersistence) Load(id string) (*service.Session, error) {
	var (
		configName     string
		createdAt      string
		lastAccessedAt string
		stateJSON      string
	)
	err := sp.db.QueryRow(
		`SELECT config_name, created_at, last_accessed_at, state_json FROM sessions WHERE id = ?`, id,
	).Scan(&configName, &createdAt, &lastAccessedAt, &stateJSON)
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session row: %w", err)
	}

	cityConfig, err := sp.configManager.LoadConfig(configName)
	if err != nil {
		fmt.Printf("Warning: Config '%s' unavailable, using default: %v\n", configName, err)
		cityConfig = sp.configManager.GetDefault()
	}

	gameEngine, err := engine.NewEngine(cityConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create game engine: %w", err)
	}

	gameState := engine.NewGameState(cityConfig)
	if err := json.Unmarshal([]byte(stateJSON), gameState); err != nil {
		fmt.Printf("Warning: Game state in slot %s is corrupt, starting fresh: %v\n", id, err)
		gameState = engine.NewGameState(cityConfig)
	}
	if err := gameEngine.SetState(gameState); err != nil {
		return nil, fmt.Errorf("failed to set game state: %w", err)
	}

	session := &service.Session{
		ID:             id,
		Engine:         gameEngine,
		Config:         cityConfig,
		CreatedAt:      parseTimeOrNow(createdAt),
		LastAccessedAt: parseTimeOrNow(lastAccessedAt),
	}
	return session, nil
}

// Delete removes a session row
func (sp *SQLitePersistence) Delete(id string) error {
	res, err := sp.db.Exec(`DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session row: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// ListAll returns all persisted session IDs
func (sp *SQLitePersistence) ListAll() ([]string, error) {
	rows, err := sp.db.Query(`SELECT id FROM sessions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Exists checks if a session row exists
func (sp *SQLitePersistence) Exists(id string) bool {
	var one int
	err := sp.db.QueryRow(`SELECT 1 FROM sessions WHERE id = ?`, id).Scan(&one)
	return err == nil
}

func parseTimeOrNow(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Now()
	}
	return t
}
