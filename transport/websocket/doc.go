// Package websocket provides WebSocket transport for Delivery Dash.
//
// The websocket package implements:
//   - Real-time state push to game clients
//   - Session-aware WebSocket connections
//   - Snapshot broadcasting after every game operation
//   - Connection lifecycle management
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a dedicated
// goroutine that manages reading, writing, and cleanup. All session maps
// are owned by the hub's Run loop; broadcasts are routed through channels.
//
// Message Protocol:
//
// Outgoing messages are JSON-encoded Message values carrying the session's
// current Snapshot plus any notifications produced by the triggering
// operation (order dispatched, delivery completed, level up). Incoming
// client messages are currently ignored; the REST API is the command
// surface and the socket is a state feed.
//
// Session Integration:
//
// WebSocket connections are session-aware. Clients specify their session ID
// via query parameter (?session=abc1) when establishing the connection.
// State updates are broadcast only to clients connected to the same session.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// after a game operation
//	hub.BroadcastToSession(sessionID, result.Snapshot, result.Notifications)
//
// Connection Lifecycle:
//
// 1. Client connects with session ID
// 2. Connection registered with hub
// 3. Client receives snapshot updates as operations happen
// 4. Disconnection triggers cleanup
package websocket
