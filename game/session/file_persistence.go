package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/deliverydash/deliverydash/game/engine"
	"github.com/deliverydash/deliverydash/game/service"
)

// FilePersistence implements SessionPersistence using one JSON file per
// save slot
type FilePersistence struct {
	sessionsDir   string
	configManager service.ConfigManager
}

// NewFilePersistence creates a new file-based session persistence layer
func NewFilePersistence(sessionsDir string, configManager service.ConfigManager) (*FilePersistence, error) {
	if err := os.MkdirAll(sessionsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create sessions directory: %w", err)
	}

	return &FilePersistence{
		sessionsDir:   sessionsDir,
		configManager: configManager,
	}, nil
}

// Save persists a session to a JSON file
func (fp *FilePersistence) Save(session *service.Session) error {
	if session == nil {
		return fmt.Errorf("session cannot be nil")
	}

	// Store the config ID, not the display name
	configID, err := fp.getConfigIDFromName(session.Config.Name)
	if err != nil {
		return fmt.Errorf("failed to get config ID: %w", err)
	}

	data := PersistedSessionData{
		ID:             session.ID,
		ConfigName:     configID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Engine.GetState(),
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	filePath := fp.getFilePath(session.ID)
	if err := os.WriteFile(filePath, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// Load retrieves a session from a JSON file. Saved fields are merged over
// scenario defaults so slots written by older builds keep working, and a
// corrupt slot falls back to a fresh game rather than blocking the load.
func (fp *FilePersistence) Load(id string) (*service.Session, error) {
	filePath := fp.getFilePath(id)

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, ErrSessionNotFound
	}

	jsonData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var data PersistedSessionData
	corrupt := false
	if err := json.Unmarshal(jsonData, &data); err != nil {
		fmt.Printf("Warning: Save slot %s is corrupt, starting fresh: %v\n", id, err)
		corrupt = true
		data = PersistedSessionData{ID: id, CreatedAt: time.Now(), LastAccessedAt: time.Now()}
	}

	cityConfig, err := fp.loadConfigOrDefault(data.ConfigName)
	if err != nil {
		return nil, err
	}

	gameEngine, err := engine.NewEngine(cityConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create game engine: %w", err)
	}

	if !corrupt {
		// Merge the saved fields over a fresh default state.
		gameState := engine.NewGameState(cityConfig)
		gameStateJSON, err := json.Marshal(data.GameState)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal game state: %w", err)
		}
		if err := json.Unmarshal(gameStateJSON, gameState); err != nil {
			fmt.Printf("Warning: Game state in slot %s is corrupt, starting fresh: %v\n", id, err)
			gameState = engine.NewGameState(cityConfig)
		}
		if err := gameEngine.SetState(gameState); err != nil {
			return nil, fmt.Errorf("failed to set game state: %w", err)
		}
	}

	session := &service.Session{
		ID:             data.ID,
		Engine:         gameEngine,
		Config:         cityConfig,
		CreatedAt:      data.CreatedAt,
		LastAccessedAt: data.LastAccessedAt,
	}

	return session, nil
}

// Delete removes a session file
func (fp *FilePersistence) Delete(id string) error {
	filePath := fp.getFilePath(id)

	if !fp.Exists(id) {
		return ErrSessionNotFound
	}

	if err := os.Remove(filePath); err != nil {
		return fmt.Errorf("failed to remove session file: %w", err)
	}

	return nil
}

// ListAll returns all persisted session IDs
func (fp *FilePersistence) ListAll() ([]string, error) {
	entries, err := os.ReadDir(fp.sessionsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions directory: %w", err)
	}

	var sessionIDs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasSuffix(name, ".json") {
			sessionIDs = append(sessionIDs, strings.TrimSuffix(name, ".json"))
		}
	}

	return sessionIDs, nil
}

// Exists checks if a session file exists
func (fp *FilePersistence) Exists(id string) bool {
	_, err := os.Stat(fp.getFilePath(id))
	return err == nil
}

// getFilePath returns the full file path for a session ID
func (fp *FilePersistence) getFilePath(id string) string {
	return filepath.Join(fp.sessionsDir, fmt.Sprintf("%s.json", id))
}

// loadConfigOrDefault resolves a saved config ID, falling back to the
// default city when the slot predates the config or the file went away
func (fp *FilePersistence) loadConfigOrDefault(configName string) (*engine.CityConfig, error) {
	if configName == "" {
		return fp.configManager.GetDefault(), nil
	}
	cityConfig, err := fp.configManager.LoadConfig(configName)
	if err != nil {
		fmt.Printf("Warning: Config '%s' unavailable, using default: %v\n", configName, err)
		return fp.configManager.GetDefault(), nil
	}
	return cityConfig, nil
}

// getConfigIDFromName returns the config ID (filename without extension) from display name
func (fp *FilePersistence) getConfigIDFromName(displayName string) (string, error) {
	configs, err := fp.configManager.ListConfigs()
	if err != nil {
		return "", fmt.Errorf("failed to list configs: %w", err)
	}

	for _, config := range configs {
		if config.Name == displayName {
			return config.ConfigID, nil
		}
	}

	// If not found, assume the displayName is already the config ID
	return displayName, nil
}
