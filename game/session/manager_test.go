package session

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/deliverydash/deliverydash/game/engine"
)

func createTestConfig() *engine.CityConfig {
	config := engine.DefaultCityConfig()
	config.Name = "Test City"
	return config
}

func TestManager_Create(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	session, err := manager.Create("abc1", config)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	if session.ID != "abc1" {
		t.Errorf("Expected ID abc1, got %s", session.ID)
	}
	if session.Engine == nil {
		t.Fatal("Expected engine on session")
	}
	if session.Engine.GetState().Money != config.StartingMoney {
		t.Error("Expected fresh game state")
	}

	// Duplicate IDs are rejected, case-insensitively.
	if _, err := manager.Create("ABC1", config); err != ErrSessionAlreadyExists {
		t.Errorf("Expected ErrSessionAlreadyExists, got %v", err)
	}
}

func TestManager_Create_GeneratedID(t *testing.T) {
	manager := NewManager()

	session, err := manager.Create("", createTestConfig())
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	if len(session.ID) != 4 {
		t.Errorf("Expected 4-character generated ID, got %q", session.ID)
	}
}

func TestManager_SetTuning(t *testing.T) {
	manager := NewManager()

	tuning := engine.DefaultTuning()
	tuning.TimeBonusMultiplier = 5
	tuning.AutosaveSeconds = 10
	manager.SetTuning(tuning)

	session, err := manager.Create("tun1", createTestConfig())
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	if got := session.Engine.Tuning().TimeBonusMultiplier; got != 5 {
		t.Errorf("Expected tuned multiplier 5 on new engine, got %v", got)
	}

	// Sessions created before the override keep the defaults.
	before := NewManager()
	plain, err := before.Create("tun2", createTestConfig())
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	if got := plain.Engine.Tuning().TimeBonusMultiplier; got != engine.DefaultTuning().TimeBonusMultiplier {
		t.Errorf("Expected default multiplier, got %v", got)
	}
}

func TestManager_Get(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	created, err := manager.Create("xyz9", config)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	got, err := manager.Get("xyz9")
	if err != nil {
		t.Fatalf("Failed to get session: %v", err)
	}
	if got != created {
		t.Error("Expected same session instance")
	}

	// Case-insensitive lookup.
	if _, err := manager.Get("XYZ9"); err != nil {
		t.Errorf("Expected case-insensitive get, got %v", err)
	}

	if _, err := manager.Get("missing"); err != ErrSessionNotFound {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestManager_GetOrCreate(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	first, err := manager.GetOrCreate("slot", config)
	if err != nil {
		t.Fatalf("Failed to get-or-create: %v", err)
	}

	second, err := manager.GetOrCreate("slot", config)
	if err != nil {
		t.Fatalf("Failed on second get-or-create: %v", err)
	}
	if first != second {
		t.Error("Expected the same session on repeat get-or-create")
	}
	if manager.Count() != 1 {
		t.Errorf("Expected 1 session, got %d", manager.Count())
	}
}

func TestManager_Delete(t *testing.T) {
	manager := NewManager()

	if _, err := manager.Create("gone", createTestConfig()); err != nil {
		t.Fatal(err)
	}

	if err := manager.Delete("gone"); err != nil {
		t.Fatalf("Failed to delete session: %v", err)
	}
	if _, err := manager.Get("gone"); err != ErrSessionNotFound {
		t.Error("Expected session gone after delete")
	}

	if err := manager.Delete("gone"); err != ErrSessionNotFound {
		t.Errorf("Expected ErrSessionNotFound on double delete, got %v", err)
	}
}

func TestManager_List(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	if len(manager.List()) != 0 {
		t.Error("Expected empty list on new manager")
	}

	manager.Create("s1", config)
	manager.Create("s2", config)
	manager.Create("s3", config)

	sessions := manager.List()
	if len(sessions) != 3 {
		t.Errorf("Expected 3 sessions, got %d", len(sessions))
	}
}

func TestManager_CleanupExpired(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	stale, _ := manager.Create("old1", config)
	manager.Create("new1", config)

	stale.LastAccessedAt = time.Now().Add(-2 * time.Hour)

	removed := manager.CleanupExpiredSessions(time.Hour)
	if removed != 1 {
		t.Errorf("Expected 1 removed session, got %d", removed)
	}
	if manager.Count() != 1 {
		t.Errorf("Expected 1 remaining session, got %d", manager.Count())
	}
	if _, err := manager.Get("new1"); err != nil {
		t.Error("Expected fresh session to survive cleanup")
	}
}

func TestManager_UpdateLastAccessed(t *testing.T) {
	manager := NewManager()

	session, _ := manager.Create("t1", createTestConfig())
	before := session.LastAccessedAt

	time.Sleep(10 * time.Millisecond)
	if err := manager.UpdateLastAccessed("t1"); err != nil {
		t.Fatalf("Failed to update last accessed: %v", err)
	}
	if !session.LastAccessedAt.After(before) {
		t.Error("Expected last accessed time to advance")
	}

	if err := manager.UpdateLastAccessed("missing"); err != ErrSessionNotFound {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			session, err := manager.Create("", config)
			if err != nil {
				t.Errorf("Concurrent create failed: %v", err)
				return
			}
			if _, err := manager.Get(session.ID); err != nil {
				t.Errorf("Concurrent get failed: %v", err)
			}
			manager.List()
			manager.Count()
		}()
	}
	wg.Wait()

	if manager.Count() != 20 {
		t.Errorf("Expected 20 sessions, got %d", manager.Count())
	}
}

func TestManager_SessionIsolation(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	a, _ := manager.Create("iso-a", config)
	b, _ := manager.Create("iso-b", config)

	a.Engine.StartRun()
	if b.Engine.GetState().CurrentOrder != nil {
		t.Error("Expected sessions to have independent state")
	}

	a.Engine.GetState().Money = 1
	if b.Engine.GetState().Money == 1 {
		t.Error("Expected money changes to stay in one session")
	}
}

func TestManager_SessionIDGeneration(t *testing.T) {
	manager := NewManager()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		session, err := manager.Create("", createTestConfig())
		if err != nil {
			t.Fatalf("Failed to create session %d: %v", i, err)
		}
		id := strings.ToLower(session.ID)
		if seen[id] {
			t.Fatalf("Duplicate generated ID %s", id)
		}
		seen[id] = true
	}
}
