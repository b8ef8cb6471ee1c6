package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/deliverydash/deliverydash/game/engine"
	"github.com/deliverydash/deliverydash/game/service"
	"github.com/deliverydash/deliverydash/transport/websocket"
)

// HistoryArchiver exports a session's delivery history and returns the
// written file path with the record count. Wired in by main so the API does
// not depend on the storage layer directly.
type HistoryArchiver func(sessionID string) (string, int, error)

// Server represents the REST API server
type Server struct {
	service  service.GameService
	hub      *websocket.Hub
	router   *mux.Router
	archiver HistoryArchiver
}

// NewServer creates a new API server. hub and archiver may be nil.
func NewServer(gameService service.GameService, hub *websocket.Hub, archiver HistoryArchiver) *Server {
	s := &Server{
		service:  gameService,
		hub:      hub,
		router:   mux.NewRouter(),
		archiver: archiver,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Session management
	api.HandleFunc("/sessions", s.handleCreateSession).Methods("POST")
	api.HandleFunc("/sessions", s.handleListSessions).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleGetSession).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleDeleteSession).Methods("DELETE")

	// Delivery run operations
	api.HandleFunc("/sessions/{id}/state", s.handleGetSnapshot).Methods("GET")
	api.HandleFunc("/sessions/{id}/start-run", s.handleStartRun).Methods("POST")
	api.HandleFunc("/sessions/{id}/complete", s.handleCompleteOrder).Methods("POST")
	api.HandleFunc("/sessions/{id}/fail", s.handleFailOrder).Methods("POST")

	// World interaction
	api.HandleFunc("/sessions/{id}/position", s.handleReportPosition).Methods("POST")
	api.HandleFunc("/sessions/{id}/zone-overlap", s.handleZoneOverlap).Methods("POST")

	// Economy
	api.HandleFunc("/sessions/{id}/upgrade-vehicle", s.handleUpgradeVehicle).Methods("POST")
	api.HandleFunc("/sessions/{id}/hire-staff", s.handleHireStaff).Methods("POST")

	// Session control
	api.HandleFunc("/sessions/{id}/pause", s.handleTogglePause).Methods("POST")
	api.HandleFunc("/sessions/{id}/restart", s.handleRestart).Methods("POST")
	api.HandleFunc("/sessions/{id}/reset", s.handleReset).Methods("POST")

	// Analytics
	api.HandleFunc("/sessions/{id}/stats", s.handleGetStats).Methods("GET")
	api.HandleFunc("/sessions/{id}/history", s.handleGetHistory).Methods("GET")
	api.HandleFunc("/sessions/{id}/archive", s.handleArchiveHistory).Methods("POST")

	// Configuration
	api.HandleFunc("/configs", s.handleListConfigs).Methods("GET")
	api.HandleFunc("/configs", s.handleCreateConfig).Methods("POST")
	api.HandleFunc("/configs/{name}", s.handleGetConfig).Methods("GET")

	// Health
	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)

	// Static files (if needed)
	s.router.PathPrefix("/").Handler(http.FileServer(http.Dir("./static/")))
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// broadcast pushes an operation result to WebSocket clients of the session
func (s *Server) broadcast(sessionID string, result *service.OpResult) {
	if s.hub == nil || result == nil || result.Snapshot == nil {
		return
	}
	s.hub.BroadcastToSession(sessionID, result.Snapshot, result.Notifications)
}

// Session Handlers

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ConfigID   string `json:"config_id,omitempty"`
		ConfigName string `json:"config_name,omitempty"` // Deprecated, use config_id
	}

	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	// Support both new and old parameter names, but prefer config_id
	configID := req.ConfigID
	if configID == "" && req.ConfigName != "" {
		configID = req.ConfigName
	}

	session, err := s.service.CreateSession(r.Context(), configID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, session)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.service.ListSessions(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	query := r.URL.Query()
	sortBy := query.Get("sort")    // "created", "accessed" (default)
	order := query.Get("order")    // "asc", "desc" (default: "desc")
	limitStr := query.Get("limit") // number of sessions to return

	if sortBy == "" {
		sortBy = "accessed"
	}
	if order == "" {
		order = "desc"
	}

	sort.Slice(sessions, func(i, j int) bool {
		var ti, tj time.Time
		if sortBy == "created" {
			ti, tj = sessions[i].CreatedAt, sessions[j].CreatedAt
		} else { // "accessed"
			ti, tj = sessions[i].LastAccessedAt, sessions[j].LastAccessedAt
		}

		if order == "asc" {
			return ti.Before(tj)
		}
		return ti.After(tj) // desc
	})

	limit := len(sessions)
	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l < len(sessions) {
			limit = l
		}
	}
	sessions = sessions[:limit]

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(sessions),
		"sessions": sessions,
		"sort":     sortBy,
		"order":    order,
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	session, err := s.service.GetSession(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, session)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	if err := s.service.DeleteSession(r.Context(), sessionID); err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Session %s deleted", sessionID),
	})
}

// Delivery Run Handlers

func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	snapshot, err := s.service.GetSnapshot(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleStartRun(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	result, err := s.service.StartRun(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	s.broadcast(sessionID, result)

	if result.Success && result.Snapshot.CurrentOrderView != nil {
		o := result.Snapshot.CurrentOrderView
		fmt.Printf("[RUN] session=%s dispatched type=%s dest=%q reward=%d limit=%ds\n",
			sessionID, o.Type, o.Destination, o.Reward, o.TimeLimit)
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleCompleteOrder(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	result, err := s.service.CompleteOrder(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	s.broadcast(sessionID, result)

	if result.Completed != nil {
		c := result.Completed
		fmt.Printf("[RUN] session=%s completed type=%s time=%.0fs bonus=%d total=%d\n",
			sessionID, c.Type, c.CompletionTime, c.TimeBonus, c.TotalReward)
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleFailOrder(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req struct {
		Reason string `json:"reason,omitempty"`
	}
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	result, err := s.service.FailOrder(r.Context(), sessionID, req.Reason)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	s.broadcast(sessionID, result)
	respondJSON(w, http.StatusOK, result)
}

// World Interaction Handlers

func (s *Server) handleReportPosition(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var report service.PositionReport
	if err := json.NewDecoder(r.Body).Decode(&report); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.service.ReportPosition(r.Context(), sessionID, report)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	// Position samples are high-frequency; only interactions are pushed.
	if result.PickedUp || result.Delivered {
		s.broadcast(sessionID, result)
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleZoneOverlap(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req struct {
		ZoneID string `json:"zone_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ZoneID == "" {
		respondError(w, http.StatusBadRequest, "zone_id is required")
		return
	}

	result, err := s.service.ZoneOverlap(r.Context(), sessionID, req.ZoneID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	s.broadcast(sessionID, result)
	respondJSON(w, http.StatusOK, result)
}

// Economy Handlers

func (s *Server) handleUpgradeVehicle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	result, err := s.service.UpgradeVehicle(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	s.broadcast(sessionID, result)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleHireStaff(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	result, err := s.service.HireStaff(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	s.broadcast(sessionID, result)
	respondJSON(w, http.StatusOK, result)
}

// Session Control Handlers

func (s *Server) handleTogglePause(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	result, err := s.service.TogglePause(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	s.broadcast(sessionID, result)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	result, err := s.service.Restart(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	s.broadcast(sessionID, result)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	state, err := s.service.Reset(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	if s.hub != nil {
		s.hub.BroadcastToSession(sessionID, &engine.Snapshot{GameState: *state}, nil)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Game reset successfully",
		"state":   state,
	})
}

// Analytics Handlers

func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	stats, err := s.service.GetStats(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	opts := service.HistoryOptions{
		Page:  1,
		Limit: 20,
		Order: "desc",
	}

	query := r.URL.Query()
	if pageStr := query.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			opts.Page = p
		}
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			opts.Limit = l
		}
	}

	if order := query.Get("order"); order == "asc" || order == "desc" {
		opts.Order = order
	}

	history, err := s.service.GetHistory(r.Context(), sessionID, opts)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, history)
}

func (s *Server) handleArchiveHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	if s.archiver == nil {
		respondError(w, http.StatusNotImplemented, "history archiving is not configured")
		return
	}

	// Verify the session exists before exporting.
	if _, err := s.service.GetSession(r.Context(), sessionID); err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	path, count, err := s.archiver(sessionID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to archive history: %v", err))
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "History archived",
		"path":    path,
		"records": count,
	})
}

// Configuration Handlers

func (s *Server) handleListConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := s.service.ListConfigs(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, configs)
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	configName := mux.Vars(r)["name"]

	// Remove .json extension if present
	configName = strings.TrimSuffix(configName, ".json")

	config, err := s.service.LoadConfig(r.Context(), configName)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, config)
}

func (s *Server) handleCreateConfig(w http.ResponseWriter, r *http.Request) {
	var cityConfig engine.CityConfig

	if err := json.NewDecoder(r.Body).Decode(&cityConfig); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if cityConfig.Name == "" {
		respondError(w, http.StatusBadRequest, "Config name is required")
		return
	}

	cityConfig.ApplyDefaults()
	if err := engine.ValidateCityConfig(&cityConfig); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.service.SaveConfig(r.Context(), cityConfig.Name, &cityConfig); err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to save config: %v", err))
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Configuration saved successfully",
		"config_id": cityConfig.Name,
	})
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session parameter required", http.StatusBadRequest)
		return
	}

	// Verify session exists
	if _, err := s.service.GetSession(context.Background(), sessionID); err != nil {
		http.Error(w, "Invalid session", http.StatusNotFound)
		return
	}

	s.hub.ServeWS(w, r, sessionID)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
