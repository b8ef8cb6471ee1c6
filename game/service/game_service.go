package service

import (
	"context"

	"github.com/deliverydash/deliverydash/game/engine"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Delivery Run Operations
	StartRun(ctx context.Context, sessionID string) (*OpResult, error)
	CompleteOrder(ctx context.Context, sessionID string) (*OpResult, error)
	FailOrder(ctx context.Context, sessionID, reason string) (*OpResult, error)

	// World Interaction
	ReportPosition(ctx context.Context, sessionID string, report PositionReport) (*OpResult, error)
	ZoneOverlap(ctx context.Context, sessionID, zoneID string) (*OpResult, error)

	// Economy
	UpgradeVehicle(ctx context.Context, sessionID string) (*OpResult, error)
	HireStaff(ctx context.Context, sessionID string) (*OpResult, error)

	// Session Control
	TogglePause(ctx context.Context, sessionID string) (*OpResult, error)
	Restart(ctx context.Context, sessionID string) (*OpResult, error)
	Reset(ctx context.Context, sessionID string) (*engine.GameState, error)

	// Game State
	GetSnapshot(ctx context.Context, sessionID string) (*engine.Snapshot, error)
	GetStats(ctx context.Context, sessionID string) (*engine.GameStats, error)
	GetHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Timers. TickAll advances every session clock and returns results for
	// sessions whose state changed (timed-out orders).
	TickAll(ctx context.Context) (map[string]*OpResult, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.CityConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.CityConfig) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *engine.CityConfig) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, config *engine.CityConfig) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// ConfigManager handles city configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.CityConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.CityConfig
	SaveConfig(name string, config *engine.CityConfig) error
}
