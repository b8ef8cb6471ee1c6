package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/deliverydash/deliverydash/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	// Fallback: return as-is or "default"
	if configName == "" {
		return "default"
	}
	return configName
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Load configuration
	var config *engine.CityConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			// Provide helpful error message with available options
			if strings.Contains(err.Error(), "configuration not found") {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v", configName, configIDs)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations", configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let session manager generate a proper short ID
	session, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	// Determine the config identifier to return - prefer the input configName
	// if provided, otherwise look up the config_id by display name
	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     configID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Engine.GetState(),
		CityConfig:     session.Config,
	}, nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     s.getConfigID(session.Config.Name),
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Engine.GetState(),
		CityConfig:     session.Config,
	}, nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		result = append(result, &SessionInfo{
			ID:             sess.ID,
			ConfigName:     s.getConfigID(sess.Config.Name),
			CreatedAt:      sess.CreatedAt,
			LastAccessedAt: sess.LastAccessedAt,
			GameState:      sess.Engine.GetState(),
			CityConfig:     sess.Config,
		})
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// lockedSession fetches a session and marks it accessed. Callers must hold s.mu.
func (s *gameServiceImpl) lockedSession(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return sess, nil
}

// finish builds the common operation result and auto-saves the session.
func (s *gameServiceImpl) finish(sess *Session, success bool, op string) *OpResult {
	snapshot := sess.Engine.GetSnapshot()
	result := &OpResult{
		Success:       success,
		Snapshot:      snapshot,
		Message:       snapshot.Message,
		Notifications: sess.DrainNotifications(),
	}
	if err := s.sessions.Save(sess.ID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after %s: %v\n", sess.ID, op, err)
	}
	return result
}

// StartRun dispatches a new delivery order for the session
func (s *gameServiceImpl) StartRun(ctx context.Context, sessionID string) (*OpResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lockedSession(sessionID)
	if err != nil {
		return nil, err
	}

	started := sess.Engine.StartRun()
	return s.finish(sess, started, "start-run"), nil
}

// CompleteOrder settles the active order and pays out rewards
func (s *gameServiceImpl) CompleteOrder(ctx context.Context, sessionID string) (*OpResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lockedSession(sessionID)
	if err != nil {
		return nil, err
	}

	completed := sess.Engine.CompleteOrder()
	result := s.finish(sess, completed != nil, "complete-order")
	result.Completed = completed
	return result, nil
}

// FailOrder abandons the active order with a reputation penalty
func (s *gameServiceImpl) FailOrder(ctx context.Context, sessionID, reason string) (*OpResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lockedSession(sessionID)
	if err != nil {
		return nil, err
	}

	if reason == "" {
		reason = "abandoned"
	}
	failed := sess.Engine.FailOrder(reason)
	result := s.finish(sess, failed != nil, "fail-order")
	result.Failed = failed
	return result, nil
}

// ReportPosition records a player position sample and, when the interact
// flag is set, attempts a pickup and then a delivery at that position.
func (s *gameServiceImpl) ReportPosition(ctx context.Context, sessionID string, report PositionReport) (*OpResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lockedSession(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Engine.PlayerMoved(report.Position)
	result := &OpResult{Success: true}
	if report.Interact {
		if sess.Engine.TryPickup() {
			result.PickedUp = true
		} else if completed := sess.Engine.TryDeliver(); completed != nil {
			result.Delivered = true
			result.Completed = completed
		}
	}

	finished := s.finish(sess, result.Success, "position")
	finished.PickedUp = result.PickedUp
	finished.Delivered = result.Delivered
	finished.Completed = result.Completed
	return finished, nil
}

// ZoneOverlap notifies the engine that the player entered a named zone
func (s *gameServiceImpl) ZoneOverlap(ctx context.Context, sessionID, zoneID string) (*OpResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lockedSession(sessionID)
	if err != nil {
		return nil, err
	}

	before := sess.Engine.GetState()
	carryingBefore := before.CarryingPackage
	deliveriesBefore := before.Deliveries

	sess.Engine.ZoneOverlap(zoneID)

	after := sess.Engine.GetState()
	result := s.finish(sess, true, "zone-overlap")
	result.PickedUp = !carryingBefore && after.CarryingPackage
	result.Delivered = after.Deliveries > deliveriesBefore
	return result, nil
}

// UpgradeVehicle purchases the cheapest affordable vehicle tier above the
// current one
func (s *gameServiceImpl) UpgradeVehicle(ctx context.Context, sessionID string) (*OpResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lockedSession(sessionID)
	if err != nil {
		return nil, err
	}

	tier, ok := sess.Engine.UpgradeVehicle()
	result := s.finish(sess, ok, "upgrade-vehicle")
	if ok {
		result.UpgradedTo = tier
	}
	return result, nil
}

// HireStaff spends money for a reputation boost
func (s *gameServiceImpl) HireStaff(ctx context.Context, sessionID string) (*OpResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lockedSession(sessionID)
	if err != nil {
		return nil, err
	}

	ok := sess.Engine.HireStaff()
	return s.finish(sess, ok, "hire-staff"), nil
}

// TogglePause flips the paused state of the session clock
func (s *gameServiceImpl) TogglePause(ctx context.Context, sessionID string) (*OpResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lockedSession(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Engine.TogglePause()
	return s.finish(sess, true, "pause"), nil
}

// Restart drops the active order and carried package but keeps progression
func (s *gameServiceImpl) Restart(ctx context.Context, sessionID string) (*OpResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lockedSession(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Engine.Restart()
	return s.finish(sess, true, "restart"), nil
}

// Reset returns the session to a fresh game state
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lockedSession(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Engine.Reset()
	sess.DrainNotifications()

	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after reset: %v\n", sessionID, err)
	}

	return sess.Engine.GetState(), nil
}

// GetSnapshot returns the session's current view of the game
func (s *gameServiceImpl) GetSnapshot(ctx context.Context, sessionID string) (*engine.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	return sess.Engine.GetSnapshot(), nil
}

// GetStats returns aggregate delivery statistics for the session
func (s *gameServiceImpl) GetStats(ctx context.Context, sessionID string) (*engine.GameStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	stats := sess.Engine.GetStats()
	return &stats, nil
}

// GetHistory returns paginated completed and failed deliveries, newest first
// by default
func (s *gameServiceImpl) GetHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	state := sess.Engine.GetState()
	completed := make([]engine.CompletedOrder, len(state.CompletedDeliveries))
	copy(completed, state.CompletedDeliveries)
	failed := make([]engine.FailedOrder, len(state.FailedDeliveries))
	copy(failed, state.FailedDeliveries)

	if opts.Order != "asc" {
		for i, j := 0, len(completed)-1; i < j; i, j = i+1, j-1 {
			completed[i], completed[j] = completed[j], completed[i]
		}
		for i, j := 0, len(failed)-1; i < j; i, j = i+1, j-1 {
			failed[i], failed[j] = failed[j], failed[i]
		}
	}

	// Pagination applies to the combined order count. Completed orders are
	// paged; failures ride along in full since they are typically few.
	total := len(completed)
	limit := opts.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	page := opts.Page
	if page < 1 {
		page = 1
	}
	totalPages := (total + limit - 1) / limit
	if totalPages == 0 {
		totalPages = 1
	}
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return &HistoryResponse{
		Completed:   completed[start:end],
		Failed:      failed,
		TotalOrders: total,
		Page:        page,
		PageSize:    limit,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}, nil
}

// TickAll advances every session clock. Sessions whose active order timed
// out appear in the returned map keyed by session ID.
func (s *gameServiceImpl) TickAll(ctx context.Context) (map[string]*OpResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	changed := make(map[string]*OpResult)
	for _, sess := range s.sessions.List() {
		failed := sess.Engine.Tick(now)
		if failed == nil {
			continue
		}
		result := s.finish(sess, true, "tick")
		result.Failed = failed
		changed[sess.ID] = result
	}
	return changed, nil
}

// ListConfigs returns available city configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a city configuration by name
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.CityConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig persists a city configuration
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.CityConfig) error {
	return s.configs.SaveConfig(configName, config)
}
