package engine

import "github.com/google/uuid"

// The zone interaction bridge sits between the external rendering layer and
// the order lifecycle. The renderer reports player positions or zone-overlap
// callbacks; the bridge turns them into pickup and delivery transitions.
// The player is always in exactly one of two states, empty-handed or
// carrying a package, tracked by GameState.CarryingPackage.

// PlayerMoved records the player's world position as reported by the
// rendering layer. Position is display-owned data; the engine only keeps it
// for zone proximity tests and snapshots.
func (e *GameEngine) PlayerMoved(pos Position) {
	e.state.PlayerPos = pos
}

// ZonesInRange returns the zones whose trigger radius covers the position.
func (e *GameEngine) ZonesInRange(pos Position) []Zone {
	var hits []Zone
	for _, zone := range e.config.Zones {
		if pos.DistanceTo(zone.Position) < e.config.ZoneRadius(zone) {
			hits = append(hits, zone)
		}
	}
	return hits
}

// TryPickup attempts a package pickup at the player's current position.
// It succeeds when the player is empty-handed and inside a pickup zone; the
// guard makes re-entering the same zone idempotent. If no order is active,
// picking up seeds a default run so a walk-up pickup still starts the
// delivery state machine.
func (e *GameEngine) TryPickup() bool {
	if e.state.CarryingPackage {
		e.emit(SeverityInfo, e.config.Messages.AlreadyCarrying)
		return false
	}

	for _, zone := range e.ZonesInRange(e.state.PlayerPos) {
		if zone.Kind != ZonePickup {
			continue
		}
		return e.pickupFrom(zone)
	}
	return false
}

// TryDeliver attempts a delivery at the player's current position. It
// succeeds when the player is carrying a package and inside a delivery zone,
// completing the active order.
func (e *GameEngine) TryDeliver() *CompletedOrder {
	if !e.state.CarryingPackage {
		e.emit(SeverityInfo, e.config.Messages.NothingToDeliver)
		return nil
	}

	for _, zone := range e.ZonesInRange(e.state.PlayerPos) {
		if zone.Kind != ZoneDelivery {
			continue
		}
		e.state.CarryingPackage = false
		return e.CompleteOrder()
	}
	return nil
}

// ZoneOverlap handles an overlap callback from a physics layer that already
// resolved which zone was touched. Pickups and deliveries dispatch to the
// same transitions as the proximity variants. Unknown zone IDs are ignored.
func (e *GameEngine) ZoneOverlap(zoneID string) bool {
	zone, ok := e.config.ZoneByID(zoneID)
	if !ok {
		return false
	}

	switch zone.Kind {
	case ZonePickup:
		if e.state.CarryingPackage {
			return false
		}
		return e.pickupFrom(zone)
	case ZoneDelivery:
		if !e.state.CarryingPackage {
			return false
		}
		e.state.CarryingPackage = false
		return e.CompleteOrder() != nil
	}
	return false
}

// pickupFrom marks the package as carried and seeds a run if none is active.
func (e *GameEngine) pickupFrom(zone Zone) bool {
	e.state.CarryingPackage = true

	if e.state.CurrentOrder == nil {
		// A pickup without a dispatched run starts one on the spot.
		e.seedWalkUpOrder(zone)
	}

	e.emit(SeverityInfo, e.config.Messages.PackagePickedUp)
	return true
}

// seedWalkUpOrder starts a standard run bound for the delivery zone nearest
// the pickup. Scenarios without a "standard" type fall back to a regular
// random dispatch.
func (e *GameEngine) seedWalkUpOrder(pickup Zone) {
	dt, ok := e.config.DeliveryTypes["standard"]
	if !ok {
		e.StartRun()
		return
	}

	destination := e.randomDestination()
	if zone, _, found := NearestZone(e.config, pickup.Position, ZoneDelivery); found {
		destination = zone.Name
	}

	e.state.CurrentOrder = &Order{
		ID:          uuid.NewString(),
		Type:        "standard",
		Destination: destination,
		Reward:      dt.Reward,
		TimeLimit:   dt.TimeLimit,
		Reputation:  dt.Reputation,
		StartTime:   e.now(),
	}
}
