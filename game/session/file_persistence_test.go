package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/deliverydash/deliverydash/game/config"
	"github.com/deliverydash/deliverydash/game/engine"
	"github.com/deliverydash/deliverydash/game/service"
)

func newTestPersistence(t *testing.T) (*FilePersistence, *config.Manager, string) {
	t.Helper()

	tempDir := t.TempDir()
	configManager, err := config.NewManager("../../configs")
	if err != nil {
		t.Fatalf("Failed to create config manager: %v", err)
	}
	persistence, err := NewFilePersistence(tempDir, configManager)
	if err != nil {
		t.Fatalf("Failed to create file persistence: %v", err)
	}
	return persistence, configManager, tempDir
}

func newTestSession(t *testing.T, configManager *config.Manager, id string) *service.Session {
	t.Helper()

	cityConfig := configManager.GetDefault()
	eng, err := engine.NewEngine(cityConfig)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	return &service.Session{
		ID:             id,
		Engine:         eng,
		Config:         cityConfig,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}
}

func TestFilePersistence(t *testing.T) {
	persistence, configManager, _ := newTestPersistence(t)
	session := newTestSession(t, configManager, "test1")

	t.Run("Save and Load Session", func(t *testing.T) {
		if err := persistence.Save(session); err != nil {
			t.Fatalf("Failed to save session: %v", err)
		}

		if !persistence.Exists("test1") {
			t.Error("Session file should exist after save")
		}

		loadedSession, err := persistence.Load("test1")
		if err != nil {
			t.Fatalf("Failed to load session: %v", err)
		}

		if loadedSession.ID != session.ID {
			t.Errorf("Expected ID %s, got %s", session.ID, loadedSession.ID)
		}
		if loadedSession.Config.Name != session.Config.Name {
			t.Errorf("Expected config name %s, got %s", session.Config.Name, loadedSession.Config.Name)
		}
		if loadedSession.Engine.GetState().Money != session.Engine.GetState().Money {
			t.Errorf("Expected money %d, got %d", session.Engine.GetState().Money, loadedSession.Engine.GetState().Money)
		}
	})

	t.Run("Save State Changes", func(t *testing.T) {
		// Run a delivery so there is real progress to persist.
		session.Engine.StartRun()
		if session.Engine.CompleteOrder() == nil {
			t.Fatal("Completion failed")
		}

		if err := persistence.Save(session); err != nil {
			t.Fatalf("Failed to save updated session: %v", err)
		}

		loadedSession, err := persistence.Load("test1")
		if err != nil {
			t.Fatalf("Failed to load updated session: %v", err)
		}

		loaded := loadedSession.Engine.GetState()
		orig := session.Engine.GetState()
		if loaded.Deliveries != orig.Deliveries {
			t.Errorf("Delivery count not persisted: expected %d, got %d", orig.Deliveries, loaded.Deliveries)
		}
		if loaded.Money != orig.Money {
			t.Errorf("Money not persisted: expected %d, got %d", orig.Money, loaded.Money)
		}
		if len(loaded.CompletedDeliveries) != len(orig.CompletedDeliveries) {
			t.Error("Delivery history not persisted correctly")
		}
	})

	t.Run("List All Sessions", func(t *testing.T) {
		session2 := newTestSession(t, configManager, "test2")
		if err := persistence.Save(session2); err != nil {
			t.Fatalf("Failed to save second session: %v", err)
		}

		sessionIDs, err := persistence.ListAll()
		if err != nil {
			t.Fatalf("Failed to list sessions: %v", err)
		}
		if len(sessionIDs) < 2 {
			t.Errorf("Expected at least 2 sessions, got %d", len(sessionIDs))
		}

		found := make(map[string]bool)
		for _, id := range sessionIDs {
			found[id] = true
		}
		if !found["test1"] || !found["test2"] {
			t.Error("Expected sessions not found in list")
		}
	})

	t.Run("Delete Session", func(t *testing.T) {
		if err := persistence.Delete("test2"); err != nil {
			t.Fatalf("Failed to delete session: %v", err)
		}
		if persistence.Exists("test2") {
			t.Error("Session should not exist after delete")
		}
		if _, err := persistence.Load("test2"); err == nil {
			t.Error("Should not be able to load deleted session")
		}
	})

	t.Run("Error Cases", func(t *testing.T) {
		if _, err := persistence.Load("nonexistent"); err == nil {
			t.Error("Should get error when loading non-existent session")
		}
		if err := persistence.Delete("nonexistent"); err == nil {
			t.Error("Should get error when deleting non-existent session")
		}
		if err := persistence.Save(nil); err == nil {
			t.Error("Should get error when saving nil session")
		}
	})
}

func TestFilePersistence_CorruptSlotFallsBackToDefaults(t *testing.T) {
	persistence, _, tempDir := newTestPersistence(t)

	// Write a non-JSON save slot by hand.
	slotPath := filepath.Join(tempDir, "mangled.json")
	if err := os.WriteFile(slotPath, []byte("{not valid json"), 0644); err != nil {
		t.Fatal(err)
	}

	loaded, err := persistence.Load("mangled")
	if err != nil {
		t.Fatalf("Corrupt slot should not block loading: %v", err)
	}
	state := loaded.Engine.GetState()
	if state.Money != loaded.Config.StartingMoney {
		t.Errorf("Expected defaults from corrupt slot, got money %d", state.Money)
	}
	if state.Deliveries != 0 {
		t.Error("Expected no deliveries on fresh state")
	}
}

func TestFilePersistence_PartialSlotMergesOverDefaults(t *testing.T) {
	persistence, _, tempDir := newTestPersistence(t)

	// A slot from an older build that only knew about money and level.
	partial := `{
		"id": "oldslot",
		"config_name": "downtown",
		"created_at": "2024-01-01T00:00:00Z",
		"last_accessed_at": "2024-01-01T00:00:00Z",
		"game_state": {"money": 4321, "level": 3}
	}`
	if err := os.WriteFile(filepath.Join(tempDir, "oldslot.json"), []byte(partial), 0644); err != nil {
		t.Fatal(err)
	}

	loaded, err := persistence.Load("oldslot")
	if err != nil {
		t.Fatalf("Failed to load partial slot: %v", err)
	}
	state := loaded.Engine.GetState()
	if state.Money != 4321 || state.Level != 3 {
		t.Errorf("Expected saved fields kept, got money=%d level=%d", state.Money, state.Level)
	}
	// Omitted fields come from scenario defaults.
	if state.Vehicle != loaded.Config.StartingVehicle {
		t.Errorf("Expected default vehicle, got %s", state.Vehicle)
	}
	if state.Reputation != loaded.Config.StartingReputation {
		t.Errorf("Expected default reputation, got %v", state.Reputation)
	}
}

func TestFilePersistence_UnknownConfigFallsBackToDefault(t *testing.T) {
	persistence, configManager, tempDir := newTestPersistence(t)

	slot := `{
		"id": "ghost",
		"config_name": "deleted-city",
		"created_at": "2024-01-01T00:00:00Z",
		"last_accessed_at": "2024-01-01T00:00:00Z",
		"game_state": {"money": 10}
	}`
	if err := os.WriteFile(filepath.Join(tempDir, "ghost.json"), []byte(slot), 0644); err != nil {
		t.Fatal(err)
	}

	loaded, err := persistence.Load("ghost")
	if err != nil {
		t.Fatalf("Missing config should not block loading: %v", err)
	}
	if loaded.Config.Name != configManager.GetDefault().Name {
		t.Errorf("Expected default config, got %s", loaded.Config.Name)
	}
}

func TestFilePersistenceFileStructure(t *testing.T) {
	persistence, configManager, tempDir := newTestPersistence(t)
	session := newTestSession(t, configManager, "file_test")

	if err := persistence.Save(session); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}

	expectedFile := filepath.Join(tempDir, "file_test.json")
	data, err := os.ReadFile(expectedFile)
	if err != nil {
		t.Fatalf("Failed to read session file: %v", err)
	}

	content := string(data)
	expectedFields := []string{"\"id\"", "\"config_name\"", "\"created_at\"", "\"game_state\""}
	for _, field := range expectedFields {
		if !strings.Contains(content, field) {
			t.Errorf("Session file should contain field %s", field)
		}
	}
}
