package service

import (
	"time"

	"github.com/deliverydash/deliverydash/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state"`
	CityConfig     *engine.CityConfig `json:"city_config"`
}

// OpResult contains the outcome of a game operation. Success false with a
// nil error is a normal game outcome (no active order, insufficient funds),
// not a transport failure.
type OpResult struct {
	Success       bool                   `json:"success"`
	Snapshot      *engine.Snapshot       `json:"snapshot"`
	Message       string                 `json:"message"`
	Notifications []engine.Notification  `json:"notifications,omitempty"`
	Completed     *engine.CompletedOrder `json:"completed,omitempty"`
	Failed        *engine.FailedOrder    `json:"failed,omitempty"`
	UpgradedTo    string                 `json:"upgraded_to,omitempty"`
	PickedUp      bool                   `json:"picked_up,omitempty"`
	Delivered     bool                   `json:"delivered,omitempty"`
}

// PositionReport is a player-position sample from the rendering layer.
type PositionReport struct {
	Position engine.Position `json:"position"`
	// Interact is set when the player pressed the interact control; the
	// zone bridge then attempts a pickup or a delivery at the position.
	Interact bool `json:"interact,omitempty"`
}

// HistoryOptions configures delivery history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated delivery history
type HistoryResponse struct {
	Completed   []engine.CompletedOrder `json:"completed"`
	Failed      []engine.FailedOrder    `json:"failed"`
	TotalOrders int                     `json:"total_orders"`
	Page        int                     `json:"page"`
	PageSize    int                     `json:"page_size"`
	TotalPages  int                     `json:"total_pages"`
	HasNext     bool                    `json:"has_next"`
	HasPrevious bool                    `json:"has_previous"`
}

// ConfigInfo provides information about a city configuration
type ConfigInfo struct {
	Filename      string `json:"filename"`
	ConfigID      string `json:"config_id"` // The identifier to use for session creation
	Name          string `json:"name"`      // Display name
	Description   string `json:"description"`
	PickupZones   int    `json:"pickup_zones"`
	DeliveryZones int    `json:"delivery_zones"`
	StartingMoney int    `json:"starting_money"`
}

// Session represents an active game session bound to one save slot
type Session struct {
	ID             string
	Engine         *engine.GameEngine
	Config         *engine.CityConfig
	CreatedAt      time.Time
	LastAccessedAt time.Time

	// pending accumulates notifications emitted by the engine since the
	// last operation drained them. Access is serialized by the service.
	pending []engine.Notification
}

// CollectNotifications installs the session's notification buffer on its
// engine. Called once at session construction.
func (s *Session) CollectNotifications() {
	s.Engine.SetNotifier(func(n engine.Notification) {
		s.pending = append(s.pending, n)
	})
}

// DrainNotifications returns and clears the buffered notifications.
func (s *Session) DrainNotifications() []engine.Notification {
	drained := s.pending
	s.pending = nil
	return drained
}
