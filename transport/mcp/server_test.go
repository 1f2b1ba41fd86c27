package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/wricardo/reversi/game/config"
	"github.com/wricardo/reversi/game/engine"
	"github.com/wricardo/reversi/game/service"
	"github.com/wricardo/reversi/game/session"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	configs, err := config.NewManager(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to create config manager: %v", err)
	}
	svc := service.NewGameService(session.NewManager(zap.NewNop()), configs, zap.NewNop())
	return NewServer(svc, zap.NewNop())
}

func callRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil {
		t.Fatal("Expected result, got nil")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}
	return text.Text
}

func createSession(t *testing.T, s *Server) string {
	t.Helper()
	info, err := s.service.CreateSession(context.Background(), "")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	return info.ID
}

func TestNewServer(t *testing.T) {
	s := newTestServer(t)
	if s.GetMCPServer() == nil {
		t.Fatal("Expected MCP server to be initialized")
	}
}

func TestServer_handleNewGame(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	result, err := s.handleNewGame(ctx, callRequest("new_game", map[string]interface{}{}))
	if err != nil {
		t.Fatalf("handleNewGame failed: %v", err)
	}
	if result.IsError {
		t.Fatalf("Unexpected tool error: %s", resultText(t, result))
	}

	text := resultText(t, result)
	for _, field := range []string{"Session: ", "Theme: classic", "Status: dark to move", "Legal moves: d3, c4, f5, e6"} {
		if !strings.Contains(text, field) {
			t.Errorf("Expected %q in output, got: %s", field, text)
		}
	}

	result, err = s.handleNewGame(ctx, callRequest("new_game", map[string]interface{}{"theme": "neon"}))
	if err != nil {
		t.Fatalf("handleNewGame failed: %v", err)
	}
	if !result.IsError {
		t.Error("Expected an error result for an unknown theme")
	}
}

func TestServer_handlePlace(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	id := createSession(t, s)

	tests := []struct {
		move     string
		expected string
	}{
		{"d3", "✓ Placement accepted"},
		{"d3", "✗ Placement rejected (illegal_move)"},
		{"k1", "✗ Placement rejected (invalid_notation)"},
		{"C3", "✗ Placement rejected (invalid_notation)"},
		{" c3 ", "✓ Placement accepted"},
	}

	for _, test := range tests {
		result, err := s.handlePlace(ctx, callRequest("place", map[string]interface{}{
			"session_id": id,
			"move":       test.move,
			"intent":     "testing",
		}))
		if err != nil {
			t.Fatalf("handlePlace(%s) failed: %v", test.move, err)
		}
		if text := resultText(t, result); !strings.Contains(text, test.expected) {
			t.Errorf("place %s: expected %q, got: %s", test.move, test.expected, text)
		}
	}

	state, err := s.service.GetGameState(ctx, id)
	if err != nil {
		t.Fatalf("GetGameState failed: %v", err)
	}
	if state.MoveCount != 2 {
		t.Errorf("Expected 2 placements, got %d", state.MoveCount)
	}
}

func TestServer_MissingSessionID(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	handlers := map[string]func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error){
		"game_state":     s.handleGameState,
		"legal_moves":    s.handleLegalMoves,
		"place":          s.handlePlace,
		"reset_game":     s.handleReset,
		"delete_session": s.handleDeleteSession,
	}

	for name, handler := range handlers {
		t.Run(name, func(t *testing.T) {
			result, err := handler(ctx, callRequest(name, map[string]interface{}{}))
			if err != nil {
				t.Fatalf("Handler returned protocol error: %v", err)
			}
			if !result.IsError {
				t.Error("Expected an error result")
			}
			if text := resultText(t, result); !strings.Contains(text, "session_id is required") {
				t.Errorf("Unexpected message: %s", text)
			}
		})
	}
}

func TestServer_UnknownSession(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleLegalMoves(context.Background(), callRequest("legal_moves", map[string]interface{}{"session_id": "nope"}))
	if err != nil {
		t.Fatalf("handleLegalMoves failed: %v", err)
	}
	if !result.IsError || !strings.Contains(resultText(t, result), "session not found") {
		t.Errorf("Expected session not found error, got %+v", result)
	}
}

func TestServer_handleGameStateJSON(t *testing.T) {
	s := newTestServer(t)
	id := createSession(t, s)

	result, err := s.handleGameState(context.Background(), callRequest("game_state", map[string]interface{}{
		"session_id": id,
		"format":     "json",
	}))
	if err != nil {
		t.Fatalf("handleGameState failed: %v", err)
	}

	var state engine.GameState
	if err := json.Unmarshal([]byte(resultText(t, result)), &state); err != nil {
		t.Fatalf("Expected JSON state: %v", err)
	}
	if state.Current != engine.Dark || state.Dark != 2 || state.Light != 2 {
		t.Errorf("Unexpected state %+v", state)
	}
}

func TestServer_handleGameStateText(t *testing.T) {
	s := newTestServer(t)
	id := createSession(t, s)

	result, err := s.handleGameState(context.Background(), callRequest("game_state", map[string]interface{}{"session_id": id}))
	if err != nil {
		t.Fatalf("handleGameState failed: %v", err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, " |a|b|c|d|e|f|g|h|") || !strings.Contains(text, "4| | | |○|●| | | |") {
		t.Errorf("Expected rendered board, got: %s", text)
	}
}

func TestServer_SessionTools(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	result, err := s.handleListSessions(ctx, callRequest("list_sessions", nil))
	if err != nil {
		t.Fatalf("handleListSessions failed: %v", err)
	}
	if text := resultText(t, result); text != "No active sessions" {
		t.Errorf("Expected no sessions, got: %s", text)
	}

	id := createSession(t, s)

	result, err = s.handleListSessions(ctx, callRequest("list_sessions", nil))
	if err != nil {
		t.Fatalf("handleListSessions failed: %v", err)
	}
	if text := resultText(t, result); !strings.Contains(text, id) || !strings.Contains(text, "dark 2, light 2") {
		t.Errorf("Expected session %s in list, got: %s", id, text)
	}

	result, err = s.handleDeleteSession(ctx, callRequest("delete_session", map[string]interface{}{"session_id": id}))
	if err != nil {
		t.Fatalf("handleDeleteSession failed: %v", err)
	}
	if result.IsError {
		t.Errorf("Unexpected delete error: %s", resultText(t, result))
	}

	result, err = s.handleDeleteSession(ctx, callRequest("delete_session", map[string]interface{}{"session_id": id}))
	if err != nil {
		t.Fatalf("handleDeleteSession failed: %v", err)
	}
	if !result.IsError {
		t.Error("Expected an error deleting a missing session")
	}
}

func TestServer_handleReset(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	id := createSession(t, s)

	if _, err := s.service.Place(ctx, id, "d3"); err != nil {
		t.Fatalf("Place failed: %v", err)
	}

	result, err := s.handleReset(ctx, callRequest("reset_game", map[string]interface{}{"session_id": id}))
	if err != nil {
		t.Fatalf("handleReset failed: %v", err)
	}
	if text := resultText(t, result); !strings.Contains(text, "Game reset") || !strings.Contains(text, "Moves: 0") {
		t.Errorf("Unexpected reset output: %s", text)
	}
}

func TestServer_handleListThemes(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleListThemes(context.Background(), callRequest("list_themes", nil))
	if err != nil {
		t.Fatalf("handleListThemes failed: %v", err)
	}
	if text := resultText(t, result); !strings.Contains(text, "- classic: ") {
		t.Errorf("Expected built-in classic theme, got: %s", text)
	}
}

func TestServer_handleGameInstructions(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleGameInstructions(context.Background(), callRequest("game_instructions", nil))
	if err != nil {
		t.Fatalf("handleGameInstructions failed: %v", err)
	}

	text := resultText(t, result)
	for _, section := range []string{"BOARD:", "OPENING:", "PLACING A DISC:", "PASSING:", "END OF GAME:"} {
		if !strings.Contains(text, section) {
			t.Errorf("Expected section %q in instructions", section)
		}
	}
}

func TestFormatPlaceResult_Pass(t *testing.T) {
	result := &service.PlaceResult{
		Success: true,
		Message: "White passes. Black's turn",
		Events: []service.GameEvent{
			{Type: "place", Message: "Black played f1 and flipped 1"},
			{Type: "pass", Message: "White has no legal move and passes"},
		},
		GameState: &engine.GameState{Current: engine.Dark, Status: engine.AwaitingMove},
	}

	text := formatPlaceResult(result, "")
	if !strings.Contains(text, "pass: White has no legal move and passes") {
		t.Errorf("Expected pass announcement, got: %s", text)
	}
}
