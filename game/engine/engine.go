package engine

import (
	"fmt"
	"math/rand"
	"time"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *GameState
	SetState(state *GameState) error
	Reset() *GameState
	GetSnapshot() *Snapshot
	GetStats() GameStats

	// Delivery run lifecycle
	StartRun() bool
	CompleteOrder() *CompletedOrder
	FailOrder(reason string) *FailedOrder

	// Progression and economy
	CheckLevelUp() bool
	UpgradeVehicle() (string, bool)
	HireStaff() bool

	// Zone interaction bridge
	PlayerMoved(pos Position)
	TryPickup() bool
	TryDeliver() *CompletedOrder
	ZoneOverlap(zoneID string) bool
	Tick(now time.Time) *FailedOrder

	// Session intents
	TogglePause() bool
	Restart() *GameState

	// Configuration
	GetConfig() *CityConfig
	SetConfig(config *CityConfig) error
}

// NotifyFunc receives user-visible notifications as they are emitted.
type NotifyFunc func(n Notification)

// GameEngine implements the Engine interface. It is not safe for concurrent
// use; callers serialize access per session.
type GameEngine struct {
	state  *GameState
	config *CityConfig
	tuning Tuning
	rng    *rand.Rand
	now    func() time.Time
	notify NotifyFunc
}

// NewEngine creates a new game engine with the provided city configuration
func NewEngine(config *CityConfig) (*GameEngine, error) {
	return NewEngineWithSeed(config, time.Now().UnixNano())
}

// NewEngineWithSeed creates an engine whose order/destination selection is
// driven by a deterministic random source. Tests use fixed seeds.
func NewEngineWithSeed(config *CityConfig, seed int64) (*GameEngine, error) {
	if err := ValidateCityConfig(config); err != nil {
		return nil, err
	}

	e := &GameEngine{
		config: config,
		tuning: DefaultTuning(),
		rng:    rand.New(rand.NewSource(seed)),
		now:    time.Now,
	}
	e.state = NewGameState(config)
	return e, nil
}

// NewEngineWithDefaults creates a new game engine with the built-in city
func NewEngineWithDefaults() *GameEngine {
	e, err := NewEngine(DefaultCityConfig())
	if err != nil {
		// The default config is validated by tests; this cannot happen
		// at runtime.
		panic(fmt.Sprintf("default city config invalid: %v", err))
	}
	return e
}

// NewGameState builds a fresh state with the scenario's starting values
func NewGameState(config *CityConfig) *GameState {
	return &GameState{
		Money:               config.StartingMoney,
		Level:               1,
		Experience:          0,
		Reputation:          config.StartingReputation,
		Vehicle:             config.StartingVehicle,
		CompletedDeliveries: []CompletedOrder{},
		FailedDeliveries:    []FailedOrder{},
		ConfigName:          config.Name,
		Message:             config.Messages.Welcome,
	}
}

// GetState returns the current game state
func (e *GameEngine) GetState() *GameState {
	return e.state
}

// SetState sets the game state (used for persistence loading)
func (e *GameEngine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	if _, ok := e.config.Vehicles[state.Vehicle]; !ok {
		// Old saves may reference a tier removed from the catalog; fall
		// back to the scenario's starting vehicle rather than fail.
		state.Vehicle = e.config.StartingVehicle
	}
	e.state = state
	return nil
}

// Reset overwrites the state with scenario defaults. The save slot is never
// deleted; "reset" means starting over.
func (e *GameEngine) Reset() *GameState {
	e.state = NewGameState(e.config)
	return e.state
}

// GetSnapshot returns a read-only copy of the state for display, with the
// current order's derived timing fields recomputed against the clock.
func (e *GameEngine) GetSnapshot() *Snapshot {
	snap := &Snapshot{GameState: *e.state}
	if e.state.CurrentOrder != nil {
		now := e.now()
		order := *e.state.CurrentOrder
		snap.CurrentOrderView = &OrderView{
			Order:     order,
			Elapsed:   order.Elapsed(now),
			Remaining: order.Remaining(now),
		}
	}
	if tier, ok := e.config.Vehicles[e.state.Vehicle]; ok {
		snap.VehicleTier = &tier
	}
	return snap
}

// GetConfig returns the current city configuration
func (e *GameEngine) GetConfig() *CityConfig {
	return e.config
}

// SetConfig sets a new city configuration and resets the game
func (e *GameEngine) SetConfig(config *CityConfig) error {
	if err := ValidateCityConfig(config); err != nil {
		return err
	}
	e.config = config
	e.state = NewGameState(config)
	return nil
}

// SetTuning overrides the economy tuning constants.
func (e *GameEngine) SetTuning(t Tuning) error {
	if err := t.validate(); err != nil {
		return err
	}
	e.tuning = t
	return nil
}

// Tuning returns the active economy tuning constants.
func (e *GameEngine) Tuning() Tuning {
	return e.tuning
}

// SetClock overrides the engine's time source. Tests use a fixed clock to
// make elapsed-time math exact.
func (e *GameEngine) SetClock(now func() time.Time) {
	if now != nil {
		e.now = now
	}
}

// SetNotifier installs the sink for user-visible notifications.
func (e *GameEngine) SetNotifier(fn NotifyFunc) {
	e.notify = fn
}

// TogglePause flips the pause flag and reports the new value.
func (e *GameEngine) TogglePause() bool {
	e.state.IsPaused = !e.state.IsPaused
	return e.state.IsPaused
}

// Restart abandons the current run without touching progression: the active
// order and carried package are dropped and the game unpauses.
func (e *GameEngine) Restart() *GameState {
	e.state.CurrentOrder = nil
	e.state.CarryingPackage = false
	e.state.IsPaused = false
	e.state.Message = e.config.Messages.Welcome
	return e.state
}

// emit pushes a notification to the installed sink and mirrors it on the
// state's message field for dashboards that poll instead of subscribe.
func (e *GameEngine) emit(severity Severity, message string) {
	e.state.Message = message
	if e.notify != nil {
		e.notify(Notification{Message: message, Severity: severity, At: e.now()})
	}
}
