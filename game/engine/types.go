package engine

import (
	"math"
	"time"
)

// ZoneKind distinguishes pickup and delivery trigger zones
type ZoneKind string

const (
	ZonePickup   ZoneKind = "pickup"
	ZoneDelivery ZoneKind = "delivery"

	// Validation constants
	MinPickupRadius  = 1.0
	MaxPickupRadius  = 500.0
	MinTimeLimit     = 1
	DefaultZoneRange = 50.0
)

// Severity classifies notifications for the UI layer
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notification is a transient user-visible message emitted by the engine
type Notification struct {
	Message  string    `json:"message"`
	Severity Severity  `json:"severity"`
	At       time.Time `json:"at"`
}

// Position represents x,y world coordinates
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DistanceTo returns the straight-line distance to another position
func (p Position) DistanceTo(other Position) float64 {
	return math.Hypot(p.X-other.X, p.Y-other.Y)
}

// Zone is a fixed map location acting as a pickup or delivery trigger
type Zone struct {
	ID       string   `json:"id"`
	Kind     ZoneKind `json:"kind"`
	Name     string   `json:"name"`
	Position Position `json:"position"`
	Radius   float64  `json:"radius,omitempty"` // falls back to city pickup_radius when zero
}

// DeliveryType is a static catalog entry describing an order archetype
type DeliveryType struct {
	Reward     int     `json:"reward"`
	TimeLimit  int     `json:"time_limit"` // seconds
	Reputation float64 `json:"reputation"`
}

// VehicleTier is a static catalog entry; ascending cost defines upgrade order
type VehicleTier struct {
	Speed    float64 `json:"speed"`
	Capacity int     `json:"capacity"`
	Cost     int     `json:"cost"`
}

// Order is the single in-flight delivery contract
type Order struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Destination string    `json:"destination"`
	Reward      int       `json:"reward"`
	TimeLimit   int       `json:"time_limit"`
	Reputation  float64   `json:"reputation"`
	StartTime   time.Time `json:"start_time"`
}

// Elapsed returns the seconds since the order started
func (o *Order) Elapsed(now time.Time) float64 {
	return now.Sub(o.StartTime).Seconds()
}

// Remaining returns the seconds left within the time limit, clamped at zero
func (o *Order) Remaining(now time.Time) float64 {
	remaining := float64(o.TimeLimit) - o.Elapsed(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// CompletedOrder records a finished delivery with its earned rewards
type CompletedOrder struct {
	Order
	CompletionTime float64   `json:"completion_time"` // seconds
	TimeBonus      int       `json:"time_bonus"`
	TotalReward    int       `json:"total_reward"`
	CompletedAt    time.Time `json:"completed_at"`
}

// FailedOrder records a delivery that was not completed
type FailedOrder struct {
	Order
	Reason   string    `json:"reason,omitempty"`
	FailedAt time.Time `json:"failed_at"`
}

// CityConfig defines a city scenario: zones, catalogs, and message templates,
// loaded from JSON files
type CityConfig struct {
	Name               string                  `json:"name"`
	Description        string                  `json:"description"`
	StartingMoney      int                     `json:"starting_money"`
	StartingReputation float64                 `json:"starting_reputation"`
	StartingVehicle    string                  `json:"starting_vehicle"`
	DeliveryTypes      map[string]DeliveryType `json:"delivery_types"`
	Vehicles           map[string]VehicleTier  `json:"vehicles"`
	Destinations       []string                `json:"destinations,omitempty"` // defaults to delivery zone names
	Zones              []Zone                  `json:"zones"`
	PickupRadius       float64                 `json:"pickup_radius"`
	AutoFailOnTimeout  bool                    `json:"auto_fail_on_timeout"`
	Messages           Messages                `json:"messages"`
}

// Messages holds the user-visible message templates for a city scenario.
// Format verbs are documented per field and validated on load.
type Messages struct {
	Welcome          string `json:"welcome"`
	NewOrder         string `json:"new_order"`         // %s type, %s destination
	OrderInProgress  string `json:"order_in_progress"`
	DeliveryComplete string `json:"delivery_complete"` // %d total reward
	DeliveryFailed   string `json:"delivery_failed"`
	NoActiveOrder    string `json:"no_active_order"`
	LevelUp          string `json:"level_up"`         // %d new level
	VehicleUpgraded  string `json:"vehicle_upgraded"` // %s tier name
	NoUpgrade        string `json:"no_upgrade"`
	StaffHired       string `json:"staff_hired"`
	NotEnoughMoney   string `json:"not_enough_money"`
	PackagePickedUp  string `json:"package_picked_up"`
	AlreadyCarrying  string `json:"already_carrying"`
	NothingToDeliver string `json:"nothing_to_deliver"`
}

// GameState represents the complete persisted game state
type GameState struct {
	Money                 int              `json:"money"`
	Level                 int              `json:"level"`
	Experience            int              `json:"experience"`
	Reputation            float64          `json:"reputation"`
	Vehicle               string           `json:"vehicle"`
	Deliveries            int              `json:"deliveries"`
	Score                 int              `json:"score"`
	TotalEarnings         int              `json:"total_earnings"`
	CurrentOrder          *Order           `json:"current_order,omitempty"`
	CompletedDeliveries   []CompletedOrder `json:"completed_deliveries"`
	FailedDeliveries      []FailedOrder    `json:"failed_deliveries"`
	BestTime              *float64         `json:"best_time,omitempty"` // min completion seconds ever
	ConsecutiveDeliveries int              `json:"consecutive_deliveries"`
	IsPaused              bool             `json:"is_paused"`
	CarryingPackage       bool             `json:"carrying_package"`
	PlayerPos             Position         `json:"player_pos"`
	ConfigName            string           `json:"config_name"`
	Message               string           `json:"message"`
}

// OrderView is a read-only order summary with derived timing fields,
// recomputed at snapshot time rather than persisted
type OrderView struct {
	Order
	Elapsed   float64 `json:"elapsed"`
	Remaining float64 `json:"remaining"`
}

// Snapshot is the read-only view of the game state handed to the UI layer
type Snapshot struct {
	GameState
	CurrentOrderView *OrderView   `json:"current_order_view,omitempty"`
	VehicleTier      *VehicleTier `json:"vehicle_tier,omitempty"`
}

// GameStats aggregates delivery history into dashboard figures
type GameStats struct {
	TotalDeliveries     int      `json:"total_deliveries"`
	TotalEarnings       int      `json:"total_earnings"`
	AverageDeliveryTime float64  `json:"average_delivery_time"`
	SuccessRate         float64  `json:"success_rate"` // percent
	BestTime            *float64 `json:"best_time,omitempty"`
	CurrentStreak       int      `json:"current_streak"`
}
