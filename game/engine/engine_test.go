package engine

import (
	"testing"
	"time"
)

func newTestEngine(t *testing.T) *GameEngine {
	t.Helper()
	eng, err := NewEngineWithSeed(DefaultCityConfig(), 1)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	return eng
}

// fixedClock returns a clock stuck at the given instant.
func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func TestNewEngine(t *testing.T) {
	eng := newTestEngine(t)

	state := eng.GetState()
	if state.Money != 1000 {
		t.Errorf("Expected starting money 1000, got %d", state.Money)
	}
	if state.Level != 1 {
		t.Errorf("Expected starting level 1, got %d", state.Level)
	}
	if state.Reputation != 50 {
		t.Errorf("Expected starting reputation 50, got %v", state.Reputation)
	}
	if state.Vehicle != "bike" {
		t.Errorf("Expected starting vehicle bike, got %q", state.Vehicle)
	}
	if state.CurrentOrder != nil {
		t.Error("Expected no active order initially")
	}
	if state.CarryingPackage {
		t.Error("Expected player to start empty-handed")
	}
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	config := DefaultCityConfig()
	config.Name = ""

	if _, err := NewEngine(config); err == nil {
		t.Error("Expected error for invalid config")
	}
}

func TestNewEngineWithDefaults(t *testing.T) {
	eng := NewEngineWithDefaults()
	if eng == nil {
		t.Fatal("Expected engine to be non-nil")
	}
	if eng.GetState().Money <= 0 {
		t.Error("Expected positive starting money")
	}
}

func TestEngine_SetState(t *testing.T) {
	eng := newTestEngine(t)

	if err := eng.SetState(nil); err == nil {
		t.Error("Expected error for nil state")
	}

	restored := NewGameState(eng.GetConfig())
	restored.Money = 4321
	restored.Level = 7
	if err := eng.SetState(restored); err != nil {
		t.Fatalf("SetState failed: %v", err)
	}
	if eng.GetState().Money != 4321 {
		t.Errorf("Expected restored money 4321, got %d", eng.GetState().Money)
	}
}

func TestEngine_SetState_UnknownVehicle(t *testing.T) {
	eng := newTestEngine(t)

	restored := NewGameState(eng.GetConfig())
	restored.Vehicle = "hoverboard"
	if err := eng.SetState(restored); err != nil {
		t.Fatalf("SetState failed: %v", err)
	}
	if eng.GetState().Vehicle != "bike" {
		t.Errorf("Expected fallback to starting vehicle, got %q", eng.GetState().Vehicle)
	}
}

func TestEngine_Reset(t *testing.T) {
	eng := newTestEngine(t)

	eng.GetState().Money = 99
	eng.GetState().Deliveries = 12
	eng.StartRun()

	state := eng.Reset()
	if state.Money != 1000 {
		t.Errorf("Expected reset money 1000, got %d", state.Money)
	}
	if state.Deliveries != 0 {
		t.Errorf("Expected reset deliveries 0, got %d", state.Deliveries)
	}
	if state.CurrentOrder != nil {
		t.Error("Expected no order after reset")
	}
}

func TestEngine_TogglePause(t *testing.T) {
	eng := newTestEngine(t)

	if !eng.TogglePause() {
		t.Error("Expected first toggle to pause")
	}
	if !eng.GetState().IsPaused {
		t.Error("Expected state to be paused")
	}
	if eng.TogglePause() {
		t.Error("Expected second toggle to resume")
	}
}

func TestEngine_Restart(t *testing.T) {
	eng := newTestEngine(t)

	eng.StartRun()
	eng.GetState().CarryingPackage = true
	eng.GetState().IsPaused = true
	eng.GetState().Money = 555

	state := eng.Restart()
	if state.CurrentOrder != nil {
		t.Error("Expected restart to drop the active order")
	}
	if state.CarryingPackage {
		t.Error("Expected restart to drop the carried package")
	}
	if state.IsPaused {
		t.Error("Expected restart to unpause")
	}
	if state.Money != 555 {
		t.Error("Expected restart to leave progression untouched")
	}
}

func TestEngine_Snapshot(t *testing.T) {
	eng := newTestEngine(t)
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	eng.SetClock(fixedClock(start))

	eng.StartRun()
	eng.SetClock(fixedClock(start.Add(40 * time.Second)))

	snap := eng.GetSnapshot()
	if snap.CurrentOrderView == nil {
		t.Fatal("Expected order view in snapshot")
	}
	if snap.CurrentOrderView.Elapsed != 40 {
		t.Errorf("Expected elapsed 40, got %v", snap.CurrentOrderView.Elapsed)
	}
	wantRemaining := float64(snap.CurrentOrderView.TimeLimit) - 40
	if snap.CurrentOrderView.Remaining != wantRemaining {
		t.Errorf("Expected remaining %v, got %v", wantRemaining, snap.CurrentOrderView.Remaining)
	}
	if snap.VehicleTier == nil || snap.VehicleTier.Cost != 0 {
		t.Error("Expected snapshot to carry the bike tier")
	}

	// Snapshot is a copy: mutating it must not touch engine state.
	snap.Money = 0
	if eng.GetState().Money != 1000 {
		t.Error("Expected snapshot mutation not to affect engine state")
	}
}

func TestEngine_Notifications(t *testing.T) {
	eng := newTestEngine(t)

	var got []Notification
	eng.SetNotifier(func(n Notification) { got = append(got, n) })

	eng.StartRun()
	if len(got) != 1 {
		t.Fatalf("Expected 1 notification, got %d", len(got))
	}
	if got[0].Severity != SeverityInfo {
		t.Errorf("Expected info severity, got %s", got[0].Severity)
	}

	eng.StartRun() // no-op, still notifies intent
	if len(got) != 2 {
		t.Fatalf("Expected 2 notifications, got %d", len(got))
	}
}
