// Package session provides save slot management for Delivery Dash.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session lifecycle management and expiration
//   - Save slot persistence (JSON files or SQLite)
//   - Delivery history archiving
//
// Core Types:
//
// Manager is the main session manager that handles all session operations.
// SessionPersistence abstracts save slot storage; FilePersistence keeps one
// JSON file per slot and SQLitePersistence keeps all slots in one database.
//
// Session Identifiers:
//
// Sessions use 4-character hex IDs for easy reference. The manager ensures
// IDs are unique and generates them from cryptographic randomness.
//
// Concurrency:
//
// The session manager is thread-safe and supports concurrent operations.
// Multiple goroutines can safely create, retrieve, and modify different
// sessions simultaneously. Internal locking ensures data consistency.
//
// Usage:
//
//	manager := session.NewManager()
//
//	// Create a new session
//	sess, err := manager.Create("", config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Retrieve existing session
//	sess, err = manager.Get(sessionID)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Persistence:
//
// With a persistence backend attached, every save slot survives restarts.
// Loading merges saved fields over scenario defaults so slots written by
// older builds keep working, and a corrupt slot falls back to a fresh game
// instead of blocking startup. ArchiveHistory exports a slot's delivery
// history as zstd-compressed JSONL for offline analysis.
package session
