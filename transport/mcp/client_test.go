package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/deliverydash/deliverydash/game/engine"
	"github.com/deliverydash/deliverydash/game/service"
)

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL)

	if client == nil {
		t.Fatal("Expected client to be created")
	}

	if client.baseURL != baseURL {
		t.Errorf("Expected baseURL %s, got %s", baseURL, client.baseURL)
	}

	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}

	if client.mcpServer == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_apiCall(t *testing.T) {
	expectedResponse := map[string]interface{}{
		"id":    "ab12",
		"money": float64(1000),
		"level": float64(1),
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(expectedResponse)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var response map[string]interface{}
	err := client.apiCall("GET", "/api", nil, &response)
	if err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}

	if response["id"] != expectedResponse["id"] {
		t.Errorf("Expected id %v, got %v", expectedResponse["id"], response["id"])
	}
}

func TestClient_apiCall_Error(t *testing.T) {
	client := NewClient("http://invalid-url-that-does-not-exist:9999")

	err := client.apiCall("GET", "/api", nil, nil)
	if err == nil {
		t.Error("Expected error for invalid URL")
	}
}

func TestClient_apiCall_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("GET", "/api", nil, nil)
	if err == nil {
		t.Error("Expected error for HTTP 500 response")
	}

	if !strings.Contains(err.Error(), "API error") {
		t.Errorf("Expected 'API error' in error message, got: %v", err)
	}
}

func TestClient_apiCall_ErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "session not found"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("GET", "/api/sessions/zz99", nil, nil)
	if err == nil {
		t.Fatal("Expected error for 404 response")
	}
	if err.Error() != "session not found" {
		t.Errorf("Expected API error message passed through, got: %v", err)
	}
}

func TestClient_createSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/sessions" {
			t.Errorf("Expected POST /api/sessions, got %s %s", r.Method, r.URL.Path)
		}

		resp := service.SessionInfo{
			ID:         "ab12",
			ConfigName: "downtown",
			GameState: &engine.GameState{
				Money: 1000,
				Level: 1,
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "create_session",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := client.handleCreateSession(ctx, request)
	if err != nil {
		t.Fatalf("createSession failed: %v", err)
	}

	if result == nil {
		t.Fatal("Expected result, got nil")
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	if !strings.Contains(resultStr.Text, "ab12") {
		t.Errorf("Expected session ID in result, got: %s", resultStr.Text)
	}
}

func TestClient_startRun(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/sessions/ab12/start-run" {
			t.Errorf("Expected POST /api/sessions/ab12/start-run, got %s %s", r.Method, r.URL.Path)
		}

		resp := service.OpResult{
			Success: true,
			Message: "New urgent delivery to City Mall! Reward: $50",
			Snapshot: &engine.Snapshot{
				GameState: engine.GameState{Money: 1000, Level: 1, Vehicle: "bike"},
				CurrentOrderView: &engine.OrderView{
					Order: engine.Order{
						Type:        "urgent",
						Destination: "City Mall",
						Reward:      50,
						TimeLimit:   180,
					},
					Remaining: 180,
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "start_run",
			Arguments: map[string]interface{}{
				"session_id": "ab12",
				"intent":     "start earning",
			},
		},
	}

	result, err := client.handleStartRun(context.Background(), request)
	if err != nil {
		t.Fatalf("startRun failed: %v", err)
	}

	resultStr := result.Content[0].(mcp.TextContent)
	for _, want := range []string{"urgent", "City Mall", "180"} {
		if !strings.Contains(resultStr.Text, want) {
			t.Errorf("Expected %q in result, got: %s", want, resultStr.Text)
		}
	}
}

func TestClient_reportPosition(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var report service.PositionReport
		json.NewDecoder(r.Body).Decode(&report)
		if report.Position.X != 75 || report.Position.Y != 200 || !report.Interact {
			t.Errorf("Unexpected position report: %+v", report)
		}

		resp := service.OpResult{
			Success:  true,
			PickedUp: true,
			Message:  "Package picked up! Deliver to City Mall",
			Snapshot: &engine.Snapshot{},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "report_position",
			Arguments: map[string]interface{}{
				"session_id": "ab12",
				"x":          float64(75),
				"y":          float64(200),
				"interact":   true,
			},
		},
	}

	result, err := client.handleReportPosition(context.Background(), request)
	if err != nil {
		t.Fatalf("reportPosition failed: %v", err)
	}

	resultStr := result.Content[0].(mcp.TextContent)
	if !strings.Contains(resultStr.Text, "Package picked up") {
		t.Errorf("Expected pickup message, got: %s", resultStr.Text)
	}
}

func TestFormatGameState(t *testing.T) {
	gameState := &engine.GameState{
		Money:                 1250,
		Level:                 2,
		Experience:            150,
		Reputation:            57,
		Vehicle:               "scooter",
		Deliveries:            3,
		ConsecutiveDeliveries: 3,
		Score:                 3,
		PlayerPos:             engine.Position{X: 400, Y: 100},
		Message:               "Welcome to Delivery Dash!",
	}

	result := formatGameState(gameState)

	expectedFields := []string{
		"Money: $1250",
		"Level: 2",
		"Reputation: 57",
		"Vehicle: scooter",
		"Streak: 3",
		"Position: (400, 100)",
		"Welcome to Delivery Dash!",
	}

	for _, field := range expectedFields {
		if !strings.Contains(result, field) {
			t.Errorf("Expected field '%s' in formatted output, got: %s", field, result)
		}
	}
}

func TestFormatGameState_Paused(t *testing.T) {
	gameState := &engine.GameState{
		Money:    1000,
		Level:    1,
		Vehicle:  "bike",
		IsPaused: true,
	}

	result := formatGameState(gameState)

	if !strings.Contains(result, "PAUSED") {
		t.Errorf("Expected PAUSED marker in result, got: %s", result)
	}
}

func TestFormatSnapshot_ActiveOrder(t *testing.T) {
	snapshot := &engine.Snapshot{
		GameState: engine.GameState{
			Money:           1000,
			Level:           1,
			Vehicle:         "bike",
			CarryingPackage: true,
		},
		CurrentOrderView: &engine.OrderView{
			Order: engine.Order{
				Type:        "fragile",
				Destination: "Office District",
				Reward:      75,
			},
			Remaining: 120,
		},
		VehicleTier: &engine.VehicleTier{Speed: 1.0, Capacity: 1},
	}

	result := formatSnapshot(snapshot)

	for _, want := range []string{"fragile", "Office District", "$75", "120s", "carrying package"} {
		if !strings.Contains(result, want) {
			t.Errorf("Expected %q in snapshot output, got: %s", want, result)
		}
	}
}

func TestFormatOpResult_Completed(t *testing.T) {
	result := formatOpResult(&service.OpResult{
		Success: true,
		Message: "Delivery complete! Earned $541",
		Completed: &engine.CompletedOrder{
			Order:          engine.Order{Type: "standard", Reward: 25},
			CompletionTime: 42,
			TimeBonus:      516,
			TotalReward:    541,
		},
		Snapshot: &engine.Snapshot{},
	})

	for _, want := range []string{"✓", "Delivered standard", "$25 reward", "516 time bonus", "$541"} {
		if !strings.Contains(result, want) {
			t.Errorf("Expected %q in formatted output, got: %s", want, result)
		}
	}
}

func TestFormatOpResult_Failed(t *testing.T) {
	result := formatOpResult(&service.OpResult{
		Success: true,
		Failed: &engine.FailedOrder{
			Order:  engine.Order{Type: "heavy"},
			Reason: "timed out",
		},
		Snapshot: &engine.Snapshot{},
	})

	if !strings.Contains(result, "Failed heavy delivery: timed out") {
		t.Errorf("Expected failure line in output, got: %s", result)
	}
}

func TestFormatHistory(t *testing.T) {
	result := formatHistory(&service.HistoryResponse{
		Completed: []engine.CompletedOrder{
			{
				Order:          engine.Order{Type: "urgent", Destination: "City Mall"},
				CompletionTime: 90,
				TotalReward:    230,
			},
		},
		Failed: []engine.FailedOrder{
			{Order: engine.Order{Type: "fragile", Destination: "Office District"}, Reason: "abandoned"},
		},
		TotalOrders: 2,
		Page:        1,
		PageSize:    20,
		TotalPages:  1,
	})

	for _, want := range []string{"urgent to City Mall", "$230", "fragile to Office District", "abandoned"} {
		if !strings.Contains(result, want) {
			t.Errorf("Expected %q in history output, got: %s", want, result)
		}
	}
}

func TestFormatStats(t *testing.T) {
	best := 31.5
	result := formatStats(&engine.GameStats{
		TotalDeliveries:     10,
		TotalEarnings:       2500,
		AverageDeliveryTime: 75.2,
		SuccessRate:         83.3,
		BestTime:            &best,
		CurrentStreak:       4,
	})

	for _, want := range []string{"Total deliveries: 10", "$2500", "83.3%", "Best time: 31.5s", "Current streak: 4"} {
		if !strings.Contains(result, want) {
			t.Errorf("Expected %q in stats output, got: %s", want, result)
		}
	}
}

func TestClient_handleGameInstructions(t *testing.T) {
	client := NewClient("http://localhost:8080")
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "game_instructions",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := client.handleGameInstructions(ctx, request)
	if err != nil {
		t.Fatalf("handleGameInstructions failed: %v", err)
	}

	if result == nil {
		t.Fatal("Expected result, got nil")
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	expectedContent := []string{
		"Delivery Dash - Complete Instructions",
		"GAME OBJECTIVE:",
		"DELIVERY LOOP:",
		"ECONOMY:",
		"DELIVERY TYPES",
		"VEHICLES",
		"STAFF:",
		"ZONES:",
		"FAILURE:",
		"SESSION MANAGEMENT:",
		"STRATEGY NOTES FOR AI AGENTS:",
	}

	for _, content := range expectedContent {
		if !strings.Contains(resultStr.Text, content) {
			t.Errorf("Expected '%s' in instructions, got: %s", content, resultStr.Text)
		}
	}
}

func TestClient_Integration(t *testing.T) {
	client := NewClient("http://localhost:8080")

	if client == nil {
		t.Fatal("Failed to create client")
	}

	if client.mcpServer == nil {
		t.Fatal("MCP server not initialized")
	}

	if client.baseURL == "" {
		t.Error("Base URL not set")
	}

	if client.httpClient == nil {
		t.Error("HTTP client not initialized")
	}
}
