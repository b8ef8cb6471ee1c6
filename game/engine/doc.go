// Package engine provides the core game logic for Delivery Dash.
//
// The engine package implements the delivery-run state machine and economy:
//   - Order lifecycle: random order generation, completion with time-bonus
//     scoring, and failure with reputation penalties
//   - Progression: experience-driven leveling with level-up bonuses and a
//     reputation floor of zero
//   - Economy: vehicle tier upgrades in ascending-cost order and
//     level-scaled staff hiring
//   - Zone interaction: pickup and delivery zone proximity tests that gate
//     the carrying-package state
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by GameEngine. GameState is the persisted aggregate, while
// CityConfig defines a scenario's zones, catalogs, and messages loaded from
// JSON files. Tuning holds economy constants shared across scenarios.
//
// Usage:
//
//	eng, err := engine.NewEngine(engine.DefaultCityConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	eng.StartRun()
//	eng.PlayerMoved(engine.Position{X: 75, Y: 200})
//	eng.TryPickup()
//	eng.PlayerMoved(engine.Position{X: 400, Y: 100})
//	record := eng.TryDeliver()
//
// Game Rules:
//
// A run dispatches one order at a time. Completing within the time limit
// pays the base reward plus twice the unused seconds; completing late still
// pays the base reward. Failing a run costs the order's reputation stake and
// resets the delivery streak, but never money. Reputation cannot go below
// zero. The engine is single-threaded by design: callers serialize access
// per session, and each operation applies its mutations atomically before
// returning.
package engine
