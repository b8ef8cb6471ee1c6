// Package api exposes the delivery game over REST.
//
// Routes live under /api. Sessions are created against a named city
// configuration and addressed by their short ID:
//
//	POST   /api/sessions                      create a session
//	GET    /api/sessions                      list sessions (sort, order, limit)
//	GET    /api/sessions/{id}                 session info
//	DELETE /api/sessions/{id}                 delete a session and its save slot
//
// Run operations return a service.OpResult; success=false on a 200 response
// is a game outcome (no active order, not enough money), not an HTTP error:
//
//	GET    /api/sessions/{id}/state           current snapshot
//	POST   /api/sessions/{id}/start-run       request a new order
//	POST   /api/sessions/{id}/complete        hand over the carried package
//	POST   /api/sessions/{id}/fail            abandon the active order
//	POST   /api/sessions/{id}/position        report player position (+interact)
//	POST   /api/sessions/{id}/zone-overlap    zone trigger from the renderer
//	POST   /api/sessions/{id}/upgrade-vehicle buy the next vehicle tier
//	POST   /api/sessions/{id}/hire-staff      hire a staff member
//	POST   /api/sessions/{id}/pause           toggle pause
//	POST   /api/sessions/{id}/restart         restart keeping the same city
//	POST   /api/sessions/{id}/reset           reset to a fresh state
//	GET    /api/sessions/{id}/stats           aggregate delivery stats
//	GET    /api/sessions/{id}/history         paginated delivery history
//	POST   /api/sessions/{id}/archive         export history to compressed JSONL
//
// City configurations are served from /api/configs. WebSocket clients attach
// at /ws?session={id} and receive a snapshot push after every mutating
// operation.
package api
