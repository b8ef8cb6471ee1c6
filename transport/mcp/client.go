package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/deliverydash/deliverydash/game/engine"
	"github.com/deliverydash/deliverydash/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Delivery Dash",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Delivery Dash - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Run a delivery business. Request orders, pick up packages at warehouses,
deliver them to the destination zone before the timer runs out, and invest
the earnings in vehicles and staff.

AVAILABLE TOOLS:
- game_state: Current snapshot (money, level, active order, position)
- start_run: Request a new delivery order
- report_position: Move the courier; set interact=true at a zone to pick up or drop off
- complete_delivery: Hand over the carried package at the destination
- fail_delivery: Abandon the active order (costs reputation)
- upgrade_vehicle: Buy the next affordable vehicle tier
- hire_staff: Hire a staff member for passive reputation
- delivery_history: Past completed and failed deliveries
- game_stats: Aggregate figures (earnings, success rate, best time)
- create_session / get_session / list_sessions: Session management
- list_configs: Available city configurations
- reset_game: Reset to a fresh state
- game_instructions: Comprehensive rules and strategy notes`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional city selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the city configuration to use (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game state
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current game snapshot",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	// Delivery run operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "start_run",
		Description: "Request a new delivery order. Fails softly if an order is already active.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this action (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleStartRun)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "report_position",
		Description: "Report the courier's position. Set interact=true while inside a warehouse zone to pick up, or inside the destination zone to deliver.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"x": map[string]interface{}{
					"type":        "number",
					"description": "X world coordinate",
				},
				"y": map[string]interface{}{
					"type":        "number",
					"description": "Y world coordinate",
				},
				"interact": map[string]interface{}{
					"type":        "boolean",
					"description": "Attempt a pickup or delivery at this position",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this move (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "x", "y"},
		},
	}, c.handleReportPosition)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "complete_delivery",
		Description: "Hand over the carried package. Only succeeds when carrying a package for the active order.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleCompleteDelivery)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "fail_delivery",
		Description: "Abandon the active order. Costs reputation and breaks the delivery streak.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"reason": map[string]interface{}{
					"type":        "string",
					"description": "Reason for abandoning the order (optional)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleFailDelivery)

	// Economy
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "upgrade_vehicle",
		Description: "Buy the cheapest vehicle tier you can afford that is better than the current one",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleUpgradeVehicle)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "hire_staff",
		Description: "Hire a staff member. Cost scales with level; grants reputation.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleHireStaff)

	// Session control
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Reset the game to its initial state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	// Analytics
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "delivery_history",
		Description: "Get delivery history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleDeliveryHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_stats",
		Description: "Get aggregate delivery statistics for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameStats)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available city configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	configID, _ := args["config_id"].(string)

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nCity: %s\n", session.ID, session.ConfigName)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		result += fmt.Sprintf("- %s (City: %s, Created: %s)\n",
			s.ID, s.ConfigName, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSessionInfo(&session)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var snapshot engine.Snapshot
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &snapshot)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSnapshot(&snapshot)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleStartRun(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	var result service.OpResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/start-run", sessionID), nil, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatOpResult(&result)), nil
}

func (c *Client) handleReportPosition(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	x, _ := args["x"].(float64)
	y, _ := args["y"].(float64)
	interact, _ := args["interact"].(bool)
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	body := service.PositionReport{
		Position: engine.Position{X: x, Y: y},
		Interact: interact,
	}

	var result service.OpResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/position", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatOpResult(&result)), nil
}

func (c *Client) handleCompleteDelivery(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var result service.OpResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/complete", sessionID), nil, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatOpResult(&result)), nil
}

func (c *Client) handleFailDelivery(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	reason, _ := args["reason"].(string)

	body := map[string]string{}
	if reason != "" {
		body["reason"] = reason
	}

	var result service.OpResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/fail", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatOpResult(&result)), nil
}

func (c *Client) handleUpgradeVehicle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var result service.OpResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/upgrade-vehicle", sessionID), nil, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatOpResult(&result)), nil
}

func (c *Client) handleHireStaff(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var result service.OpResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/hire-staff", sessionID), nil, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatOpResult(&result)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/reset", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleDeliveryHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	params := "?"
	if page, ok := args["page"].(float64); ok {
		params += fmt.Sprintf("page=%d&", int(page))
	}
	if limit, ok := args["limit"].(float64); ok {
		params += fmt.Sprintf("limit=%d&", int(limit))
	}

	var history service.HistoryResponse
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/history%s", sessionID, params), nil, &history)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleGameStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var stats engine.GameStats
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/stats", sessionID), nil, &stats)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatStats(&stats)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	err := c.apiCall("GET", "/api/configs", nil, &configs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Cities:\n\n"
	for _, config := range configs {
		result += fmt.Sprintf("• %s (%s)\n  %s\n  Pickup zones: %d, Delivery zones: %d, Starting money: $%d\n\n",
			config.Name, config.ConfigID, config.Description,
			config.PickupZones, config.DeliveryZones, config.StartingMoney)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `🚚 Delivery Dash - Complete Instructions

GAME OBJECTIVE:
Build a delivery empire. Take orders, race packages across the city before
their timers run out, and reinvest the profits in better vehicles and staff.

DELIVERY LOOP:
1. start_run - An order is dispatched: a delivery type, a destination, a
   reward and a time limit.
2. Drive to any warehouse (pickup zone) and interact to grab the package.
3. Drive to the destination zone and interact (or call complete_delivery)
   before the timer expires.
4. Repeat. Faster deliveries earn a time bonus of 2 points per second left.

ECONOMY:
• Money: Starting capital plus delivery rewards. Spent on vehicles and staff.
• Reputation: Earned per delivery, lost on failures. Reputation feeds
  experience: each delivery grants reputation x 10 experience.
• Level: experience / 100 + 1. Each level up pays a cash bonus of
  level x 100 and +5 reputation.
• Streak: Consecutive successful deliveries. Failing resets it.

DELIVERY TYPES (default city):
• standard: $25, 300s, +1 reputation
• urgent:   $50, 180s, +2 reputation
• fragile:  $75, 240s, +3 reputation
• heavy:   $100, 360s, +2 reputation

VEHICLES (default city, bought in ascending cost order):
• bike:    speed 1.0, capacity 1  (starting vehicle)
• scooter: speed 1.2, capacity 2,  $500
• van:     speed 1.5, capacity 5,  $2000
• truck:   speed 1.8, capacity 10, $5000

STAFF:
Hiring costs 200 + level x 50 and grants +2 reputation. Useful once income
outpaces the cost curve.

ZONES:
Warehouses are pickup zones; named destinations are delivery zones. You must
be within a zone's radius for interact to trigger. Picking up while already
carrying is a no-op; delivering without a package does nothing.

FAILURE:
• fail_delivery abandons the active order: -5 reputation, streak reset.
• Some cities auto-fail orders when the timer expires. Check the remaining
  time in game_state before long detours.

SESSION MANAGEMENT:
• Multiple sessions can run simultaneously, each with a unique 4-character ID.
• Sessions persist across server restarts; progress is saved after every
  operation.

STRATEGY NOTES FOR AI AGENTS:
• Always check game_state before interacting: the snapshot shows your
  position, the active order, and the seconds remaining.
• The destination name in the order matches a delivery zone name; look up
  its coordinates via list_configs or the snapshot.
• Prioritize urgent orders early: high reputation per second accelerates
  leveling, and level-up cash bonuses compound.
• Upgrade to the scooter as soon as you clear $500; speed shortens every
  future run.

Good luck out there! 📦`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nCity: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

func formatSnapshot(snapshot *engine.Snapshot) string {
	if snapshot == nil {
		return "No game state available"
	}

	var b strings.Builder
	b.WriteString(formatGameState(&snapshot.GameState))

	if snapshot.CurrentOrderView != nil {
		o := snapshot.CurrentOrderView
		b.WriteString(fmt.Sprintf("\nActive order: %s to %s | Reward: $%d | Remaining: %.0fs",
			o.Type, o.Destination, o.Reward, o.Remaining))
		if snapshot.CarryingPackage {
			b.WriteString(" | 📦 carrying package")
		} else {
			b.WriteString(" | pick up at any warehouse")
		}
	}

	if snapshot.VehicleTier != nil {
		b.WriteString(fmt.Sprintf("\nVehicle: %s (speed %.1f, capacity %d)",
			snapshot.Vehicle, snapshot.VehicleTier.Speed, snapshot.VehicleTier.Capacity))
	}

	return b.String()
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Money: $%d | Level: %d | XP: %d | Reputation: %.0f\n",
		state.Money, state.Level, state.Experience, state.Reputation))
	b.WriteString(fmt.Sprintf("Vehicle: %s | Deliveries: %d | Streak: %d | Score: %d\n",
		state.Vehicle, state.Deliveries, state.ConsecutiveDeliveries, state.Score))
	b.WriteString(fmt.Sprintf("Position: (%.0f, %.0f)", state.PlayerPos.X, state.PlayerPos.Y))

	if state.IsPaused {
		b.WriteString("\n⏸ PAUSED")
	}

	if state.Message != "" {
		b.WriteString(fmt.Sprintf("\nMessage: %s", state.Message))
	}

	return b.String()
}

func formatOpResult(result *service.OpResult) string {
	var b strings.Builder

	if result.Success {
		b.WriteString("✓ ")
	} else {
		b.WriteString("✗ ")
	}
	if result.Message != "" {
		b.WriteString(result.Message)
	}
	b.WriteString("\n")

	if result.Completed != nil {
		c := result.Completed
		b.WriteString(fmt.Sprintf("Delivered %s in %.0fs: $%d reward + %d time bonus = $%d\n",
			c.Type, c.CompletionTime, c.Reward, c.TimeBonus, c.TotalReward))
	}

	if result.Failed != nil {
		f := result.Failed
		if f.Reason != "" {
			b.WriteString(fmt.Sprintf("Failed %s delivery: %s\n", f.Type, f.Reason))
		} else {
			b.WriteString(fmt.Sprintf("Failed %s delivery\n", f.Type))
		}
	}

	if result.UpgradedTo != "" {
		b.WriteString(fmt.Sprintf("Upgraded to: %s\n", result.UpgradedTo))
	}
	if result.PickedUp {
		b.WriteString("📦 Package picked up\n")
	}
	if result.Delivered {
		b.WriteString("✅ Package delivered\n")
	}

	for _, n := range result.Notifications {
		b.WriteString(fmt.Sprintf("- [%s] %s\n", n.Severity, n.Message))
	}

	if result.Snapshot != nil {
		b.WriteString("\n")
		b.WriteString(formatSnapshot(result.Snapshot))
	}

	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Delivery History (Page %d/%d) | Total: %d\n\n",
		history.Page, history.TotalPages, history.TotalOrders))

	if len(history.Completed) == 0 {
		b.WriteString("(no completed deliveries on this page)\n")
	}
	for i, order := range history.Completed {
		num := (history.Page-1)*history.PageSize + i + 1
		b.WriteString(fmt.Sprintf("%d. ✓ %s to %s in %.0fs [$%d]\n",
			num, order.Type, order.Destination, order.CompletionTime, order.TotalReward))
	}

	if len(history.Failed) > 0 {
		b.WriteString("\nFailed:\n")
		for _, order := range history.Failed {
			if order.Reason != "" {
				b.WriteString(fmt.Sprintf("- ✗ %s to %s (%s)\n", order.Type, order.Destination, order.Reason))
			} else {
				b.WriteString(fmt.Sprintf("- ✗ %s to %s\n", order.Type, order.Destination))
			}
		}
	}

	return b.String()
}

func formatStats(stats *engine.GameStats) string {
	var b strings.Builder
	b.WriteString("Delivery Statistics:\n\n")
	b.WriteString(fmt.Sprintf("Total deliveries: %d\n", stats.TotalDeliveries))
	b.WriteString(fmt.Sprintf("Total earnings: $%d\n", stats.TotalEarnings))
	b.WriteString(fmt.Sprintf("Success rate: %.1f%%\n", stats.SuccessRate))
	b.WriteString(fmt.Sprintf("Average delivery time: %.1fs\n", stats.AverageDeliveryTime))
	if stats.BestTime != nil {
		b.WriteString(fmt.Sprintf("Best time: %.1fs\n", *stats.BestTime))
	}
	b.WriteString(fmt.Sprintf("Current streak: %d\n", stats.CurrentStreak))
	return b.String()
}
