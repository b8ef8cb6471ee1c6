package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/deliverydash/deliverydash/game/engine"
)

func TestConstants(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if AppName == "" {
		t.Error("AppName should not be empty")
	}

	expectedAppName := "Delivery Dash Server"
	if AppName != expectedAppName {
		t.Errorf("Expected app name %s, got %s", expectedAppName, AppName)
	}
}

func TestInitializeServices_FileBackend(t *testing.T) {
	if _, err := os.Stat("configs"); os.IsNotExist(err) {
		t.Skip("Skipping test - configs directory not found")
	}

	originalConfigDir := *configDir
	originalSessionsDir := *sessionsDir
	*configDir = "configs"
	*sessionsDir = t.TempDir()
	defer func() {
		*configDir = originalConfigDir
		*sessionsDir = originalSessionsDir
	}()

	gameService, sessionManager, err := initializeServices()
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}

	if gameService == nil {
		t.Fatal("Expected game service to be initialized")
	}
	if sessionManager == nil {
		t.Fatal("Expected session manager to be initialized")
	}
}

func TestInitializeServices_SQLiteBackend(t *testing.T) {
	if _, err := os.Stat("configs"); os.IsNotExist(err) {
		t.Skip("Skipping test - configs directory not found")
	}

	originalConfigDir := *configDir
	originalSessionsDir := *sessionsDir
	originalBackend := *storeBackend
	*configDir = "configs"
	*sessionsDir = t.TempDir()
	*storeBackend = "sqlite"
	defer func() {
		*configDir = originalConfigDir
		*sessionsDir = originalSessionsDir
		*storeBackend = originalBackend
	}()

	gameService, _, err := initializeServices()
	if err != nil {
		t.Fatalf("Failed to initialize services with sqlite backend: %v", err)
	}

	if gameService == nil {
		t.Fatal("Expected game service to be initialized")
	}
}

func TestInitializeServices_TuningFile(t *testing.T) {
	if _, err := os.Stat("configs"); os.IsNotExist(err) {
		t.Skip("Skipping test - configs directory not found")
	}

	tuningPath := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(tuningPath, []byte("time_bonus_multiplier: 4\nautosave_seconds: 5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	originalConfigDir := *configDir
	originalSessionsDir := *sessionsDir
	originalTuningFile := *tuningFile
	*configDir = "configs"
	*sessionsDir = t.TempDir()
	*tuningFile = tuningPath
	defer func() {
		*configDir = originalConfigDir
		*sessionsDir = originalSessionsDir
		*tuningFile = originalTuningFile
	}()

	_, sessionManager, err := initializeServices()
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}

	sess, err := sessionManager.Create("tun1", engine.DefaultCityConfig())
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	if got := sess.Engine.Tuning().TimeBonusMultiplier; got != 4 {
		t.Errorf("Expected tuned multiplier 4 from the tuning file, got %v", got)
	}
}

func TestInitializeServices_InvalidTuningFile(t *testing.T) {
	if _, err := os.Stat("configs"); os.IsNotExist(err) {
		t.Skip("Skipping test - configs directory not found")
	}

	tuningPath := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(tuningPath, []byte("autosave_seconds: -1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	originalConfigDir := *configDir
	originalTuningFile := *tuningFile
	*configDir = "configs"
	*tuningFile = tuningPath
	defer func() {
		*configDir = originalConfigDir
		*tuningFile = originalTuningFile
	}()

	_, _, err := initializeServices()
	if err == nil {
		t.Error("Expected error for invalid tuning values")
	}
}

func TestInitializeServices_InvalidConfigDir(t *testing.T) {
	originalConfigDir := *configDir
	*configDir = "/non/existent/path"
	defer func() { *configDir = originalConfigDir }()

	_, _, err := initializeServices()
	if err == nil {
		t.Error("Expected error for non-existent config directory")
	}
}

func TestInitializeServices_UnknownBackend(t *testing.T) {
	if _, err := os.Stat("configs"); os.IsNotExist(err) {
		t.Skip("Skipping test - configs directory not found")
	}

	originalConfigDir := *configDir
	originalBackend := *storeBackend
	*configDir = "configs"
	*storeBackend = "redis"
	defer func() {
		*configDir = originalConfigDir
		*storeBackend = originalBackend
	}()

	_, _, err := initializeServices()
	if err == nil {
		t.Error("Expected error for unknown store backend")
	}
}

func TestFlagDefaults(t *testing.T) {
	if *port <= 0 || *port > 65535 {
		t.Errorf("Invalid default port: %d", *port)
	}

	if *host == "" {
		t.Error("Host should have a default value")
	}

	if *configDir == "" {
		t.Error("Config directory should have a default value")
	}

	if *storeBackend != "file" {
		t.Errorf("Expected default store backend 'file', got %q", *storeBackend)
	}
}

// Note: We can't easily test main(), runHTTPServer(), and runStdioMCPWithInternalServer()
// without significant mocking or refactoring, as they start servers and block.
// These functions would be better tested in integration tests that start actual servers
// and test their endpoints.
