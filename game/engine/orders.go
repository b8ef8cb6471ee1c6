package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// StartRun begins a new delivery run with a randomly selected order type and
// destination. At most one order is active at a time: if a run is already in
// progress this is a no-op and returns false.
func (e *GameEngine) StartRun() bool {
	if e.state.CurrentOrder != nil {
		e.emit(SeverityInfo, e.config.Messages.OrderInProgress)
		return false
	}

	typeName := e.randomDeliveryType()
	dt := e.config.DeliveryTypes[typeName]
	destination := e.randomDestination()

	e.state.CurrentOrder = &Order{
		ID:          uuid.NewString(),
		Type:        typeName,
		Destination: destination,
		Reward:      dt.Reward,
		TimeLimit:   dt.TimeLimit,
		Reputation:  dt.Reputation,
		StartTime:   e.now(),
	}

	e.emit(SeverityInfo, fmt.Sprintf(e.config.Messages.NewOrder, typeName, destination))
	return true
}

// CompleteOrder finishes the active order, paying out the base reward plus a
// time bonus for unused seconds within the limit. All state mutations are
// applied before returning so readers never observe a partial update. Returns
// nil if no order is active.
func (e *GameEngine) CompleteOrder() *CompletedOrder {
	order := e.state.CurrentOrder
	if order == nil {
		e.emit(SeverityInfo, e.config.Messages.NoActiveOrder)
		return nil
	}

	now := e.now()
	elapsed := order.Elapsed(now)
	timeBonus := e.timeBonus(order, elapsed)
	totalReward := order.Reward + timeBonus

	e.state.Money += totalReward
	e.state.Deliveries++
	e.state.Score += totalReward
	e.state.TotalEarnings += totalReward
	e.state.Reputation += order.Reputation
	e.state.ConsecutiveDeliveries++
	e.state.Experience += int(order.Reputation * e.tuning.ExperiencePerReputation)

	record := CompletedOrder{
		Order:          *order,
		CompletionTime: elapsed,
		TimeBonus:      timeBonus,
		TotalReward:    totalReward,
		CompletedAt:    now,
	}
	e.state.CompletedDeliveries = append(e.state.CompletedDeliveries, record)

	if e.state.BestTime == nil || elapsed < *e.state.BestTime {
		best := elapsed
		e.state.BestTime = &best
	}

	e.state.CurrentOrder = nil
	e.state.CarryingPackage = false

	e.emit(SeveritySuccess, fmt.Sprintf(e.config.Messages.DeliveryComplete, totalReward))
	e.CheckLevelUp()

	return &record
}

// FailOrder abandons the active order, costing the order's reputation stake
// and resetting the delivery streak. Money is never touched. Returns nil if
// no order is active.
func (e *GameEngine) FailOrder(reason string) *FailedOrder {
	order := e.state.CurrentOrder
	if order == nil {
		e.emit(SeverityInfo, e.config.Messages.NoActiveOrder)
		return nil
	}

	e.state.Reputation -= order.Reputation
	if e.state.Reputation < 0 {
		e.state.Reputation = 0
	}
	e.state.ConsecutiveDeliveries = 0

	record := FailedOrder{Order: *order, Reason: reason, FailedAt: e.now()}
	e.state.FailedDeliveries = append(e.state.FailedDeliveries, record)

	e.state.CurrentOrder = nil
	e.state.CarryingPackage = false

	e.emit(SeverityError, e.config.Messages.DeliveryFailed)
	return &record
}

// Tick advances the engine by one scheduler beat. While an order is active
// and the scenario enables auto_fail_on_timeout, an expired time limit fails
// the run; otherwise expiry only zeroes the bonus and completion stays
// possible. Paused games ignore ticks.
func (e *GameEngine) Tick(now time.Time) *FailedOrder {
	if e.state.IsPaused {
		return nil
	}
	order := e.state.CurrentOrder
	if order == nil {
		return nil
	}
	if e.config.AutoFailOnTimeout && order.Remaining(now) == 0 {
		return e.FailOrder("timed out")
	}
	return nil
}

// timeBonus converts unused seconds within the limit into whole currency.
func (e *GameEngine) timeBonus(order *Order, elapsed float64) int {
	remaining := float64(order.TimeLimit) - elapsed
	if remaining <= 0 {
		return 0
	}
	return int(remaining * e.tuning.TimeBonusMultiplier)
}

// randomDeliveryType selects uniformly over the delivery-type catalog. Keys
// are iterated in sorted order so a seeded source is reproducible.
func (e *GameEngine) randomDeliveryType() string {
	names := e.config.DeliveryTypeNames()
	return names[e.rng.Intn(len(names))]
}

// randomDestination selects uniformly over the destination set.
func (e *GameEngine) randomDestination() string {
	names := e.config.DestinationNames()
	return names[e.rng.Intn(len(names))]
}
