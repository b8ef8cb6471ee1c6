// Package service provides the business logic layer for Delivery Dash.
//
// The service package implements:
//   - Multi-session game management
//   - City configuration management and loading
//   - Delivery run orchestration (dispatch, pickup, delivery, failure)
//   - Economy operations (vehicle upgrades, staff hiring)
//   - Session lifecycle management and delivery history tracking
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages city configuration loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine, providing session isolation, configuration management, and
// business logic orchestration. Each session maintains its own game engine
// instance with independent state. Engine notifications are buffered per
// session and drained into each operation result.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	// Create a new session
//	sessionInfo, err := gameService.CreateSession(ctx, "downtown")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Dispatch and settle an order
//	result, err := gameService.StartRun(ctx, sessionInfo.ID)
//	result, err = gameService.CompleteOrder(ctx, sessionInfo.ID)
//
// Session Management:
//
// Sessions are identified by unique 4-character IDs and maintain independent
// game state. Multiple sessions can run concurrently with different city
// configurations. Sessions track creation time, last access time, and
// delivery history for analytics and debugging.
package service
