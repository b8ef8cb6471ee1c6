// Package mcp provides a Model Context Protocol interface for Delivery Dash.
//
// The package is a thin client: every tool call is proxied to the REST API
// server, so MCP agents and HTTP/WebSocket clients always see the same
// session state.
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - game_state: Current snapshot with money, level, position and order timer
//   - start_run: Request a new delivery order
//   - report_position: Move the courier, optionally interacting with a zone
//   - complete_delivery: Hand over the carried package
//   - fail_delivery: Abandon the active order
//   - upgrade_vehicle: Buy the next affordable vehicle tier
//   - hire_staff: Hire a staff member
//   - delivery_history: Paginated completed and failed deliveries
//   - game_stats: Aggregate earnings, success rate and best time
//   - create_session / get_session / list_sessions: Session management
//   - list_configs: Available city configurations
//   - reset_game: Reset to a fresh state
//   - game_instructions: Full rules and strategy notes
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
// The tools that mutate state accept an optional intent parameter; it is not
// interpreted, it just nudges agents into writing down their reasoning.
package mcp
