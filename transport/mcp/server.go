package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
	"github.com/wricardo/reversi/game/engine"
	"github.com/wricardo/reversi/game/service"
	"go.uber.org/zap"
)

const (
	ServerName    = "Reversi"
	ServerVersion = "1.0.0"
)

var errMissingSessionID = errors.New("session_id is required")

// Server exposes the game service as MCP tools
type Server struct {
	service   service.GameService
	mcpServer *server.MCPServer
	logger    *zap.Logger
}

type sessionArgs struct {
	SessionID string `mapstructure:"session_id"`
}

type newGameArgs struct {
	Theme string `mapstructure:"theme"`
}

type placeArgs struct {
	SessionID string `mapstructure:"session_id"`
	Move      string `mapstructure:"move"`
	Intent    string `mapstructure:"intent"`
}

type stateArgs struct {
	SessionID string `mapstructure:"session_id"`
	Format    string `mapstructure:"format"`
}

// NewServer creates an MCP server backed by the given game service
func NewServer(svc service.GameService, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		service: svc,
		logger:  logger,
	}

	s.mcpServer = server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(true),
		server.WithInstructions(`Reversi - MCP Interface

Two players take turns placing discs on an 8x8 board. A disc must capture at
least one straight run of opposing discs, which are then flipped.

AVAILABLE TOOLS:
- new_game: Start a session (optional theme)
- game_state: Board, score, player to move and legal moves
- legal_moves: Squares the player to move may play
- place: Play a disc using notation like d3 (column a-h, row 1-8)
- reset_game: Start the session's game over
- list_sessions / delete_session: Manage sessions
- list_themes: Available themes
- game_instructions: Full rules

Passes are automatic: when a player has no legal move the turn goes back to
the opponent. The game ends when neither player can move.`),
	)

	s.registerTools()
	return s
}

// GetMCPServer returns the underlying MCP server
func (s *Server) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves MCP over stdin/stdout until the client disconnects
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func sessionIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "new_game",
		Description: "Create a new game session with an optional theme",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"theme": map[string]interface{}{
					"type":        "string",
					"description": "Theme to use (optional, see list_themes)",
				},
			},
		},
	}, s.handleNewGame)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the board, score and legal moves of a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"format": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"text", "json"},
					"description": "Output format (default text)",
				},
			},
			Required: []string{"session_id"},
		},
	}, s.handleGameState)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "legal_moves",
		Description: "List the squares the player to move may play",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, s.handleLegalMoves)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "place",
		Description: "Place a disc for the player to move",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"move": map[string]interface{}{
					"type":        "string",
					"description": "Square in notation like d3: column a-h then row 1-8",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of why you chose this square",
				},
			},
			Required: []string{"session_id", "move"},
		},
	}, s.handlePlace)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Reset the session's game to the opening position",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, s.handleReset)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListSessions)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "delete_session",
		Description: "Delete a game session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, s.handleDeleteSession)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_themes",
		Description: "List available themes",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListThemes)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the complete rules of the game",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleGameInstructions)
}

// decodeArgs copies tool arguments into out
func decodeArgs(request mcp.CallToolRequest, out interface{}) error {
	if err := mapstructure.Decode(request.Params.Arguments, out); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

func (s *Server) sessionID(request mcp.CallToolRequest) (string, error) {
	var args sessionArgs
	if err := decodeArgs(request, &args); err != nil {
		return "", err
	}
	if args.SessionID == "" {
		return "", errMissingSessionID
	}
	return args.SessionID, nil
}

func (s *Server) handleNewGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args newGameArgs
	if err := decodeArgs(request, &args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	info, err := s.service.CreateSession(ctx, args.Theme)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(info)), nil
}

func (s *Server) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args stateArgs
	if err := decodeArgs(request, &args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if args.SessionID == "" {
		return mcp.NewToolResultError(errMissingSessionID.Error()), nil
	}

	state, err := s.service.GetGameState(ctx, args.SessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if args.Format == "json" {
		data, err := json.MarshalIndent(state, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	}

	board, err := s.service.RenderBoard(ctx, args.SessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(state, board)), nil
}

func (s *Server) handleLegalMoves(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := s.sessionID(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	moves, err := s.service.LegalMoves(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if moves.GameOver {
		return mcp.NewToolResultText("Game over: no legal moves"), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s to move: %s", moves.Color, strings.Join(moves.Moves, ", "))), nil
}

func (s *Server) handlePlace(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args placeArgs
	if err := decodeArgs(request, &args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if args.SessionID == "" {
		return mcp.NewToolResultError(errMissingSessionID.Error()), nil
	}

	if args.Intent != "" {
		s.logger.Debug("placement intent", zap.String("session", args.SessionID), zap.String("intent", args.Intent))
	}

	result, err := s.service.Place(ctx, args.SessionID, strings.TrimSpace(args.Move))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	board, err := s.service.RenderBoard(ctx, args.SessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatPlaceResult(result, board)), nil
}

func (s *Server) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := s.sessionID(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	state, err := s.service.Reset(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	board, err := s.service.RenderBoard(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText("Game reset\n\n" + formatGameState(state, board)), nil
}

func (s *Server) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions, err := s.service.ListSessions(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(sessions) == 0 {
		return mcp.NewToolResultText("No active sessions"), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active sessions (%d):\n", len(sessions))
	for _, sess := range sessions {
		state := sess.GameState
		fmt.Fprintf(&b, "- %s [%s] %s | dark %d, light %d\n",
			sess.ID, sess.ConfigName, statusLine(state), state.Dark, state.Light)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleDeleteSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := s.sessionID(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := s.service.DeleteSession(ctx, sessionID); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Session %s deleted", sessionID)), nil
}

func (s *Server) handleListThemes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	themes, err := s.service.ListConfigs(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available themes:\n")
	for _, theme := range themes {
		fmt.Fprintf(&b, "- %s: %s (first player: %s)\n", theme.ConfigID, theme.Description, theme.FirstPlayer)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(instructions), nil
}

const instructions = `Reversi - Complete Instructions

BOARD:
8x8 squares. Columns are a-h from left to right, rows are 1-8 from top to
bottom. A square is written column then row, for example d3.

OPENING:
d4 and e5 hold light discs, e4 and d5 hold dark discs.

PLACING A DISC:
A placement is legal when the square is empty and, in at least one of the
eight directions, it is followed by one or more opposing discs and then one
of your own. Every such run is flipped to your color at once.

PASSING:
If the player to move has no legal placement the turn passes automatically.

END OF GAME:
The game ends when neither player can move. The player with more discs wins;
equal counts are a draw.

TOOLS:
Use legal_moves before place if unsure. Rejected placements report
invalid_notation, illegal_move or game_over and leave the game unchanged.`

func statusLine(state *engine.GameState) string {
	if state.Status == engine.GameOver {
		if state.Winner == "draw" {
			return "game over, draw"
		}
		return fmt.Sprintf("game over, %s wins", state.Winner)
	}
	return fmt.Sprintf("%s to move", state.Current)
}

func formatSessionInfo(info *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nTheme: %s\nCreated: %s\n\n%s",
		info.ID, info.ConfigName,
		info.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(info.GameState, ""))
}

func formatGameState(state *engine.GameState, board string) string {
	if state == nil {
		return "No game state available"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Status: %s | Dark: %d | Light: %d | Moves: %d\n", statusLine(state), state.Dark, state.Light, state.MoveCount)

	if board != "" {
		b.WriteString("\n" + board)
	} else {
		for _, row := range state.Board {
			b.WriteString(row + "\n")
		}
	}

	if len(state.LegalMoves) > 0 {
		fmt.Fprintf(&b, "\nLegal moves: %s\n", strings.Join(state.LegalMoves, ", "))
	}
	if state.LastMove != nil {
		if state.LastMove.Pass {
			fmt.Fprintf(&b, "Last move: %s passed\n", state.LastMove.Color)
		} else {
			fmt.Fprintf(&b, "Last move: %s %s (flipped %d)\n", state.LastMove.Color, state.LastMove.Notation, len(state.LastMove.Flipped))
		}
	}

	return b.String()
}

func formatPlaceResult(result *service.PlaceResult, board string) string {
	var b strings.Builder
	if result.Success {
		b.WriteString("✓ Placement accepted\n")
	} else {
		fmt.Fprintf(&b, "✗ Placement rejected (%s)\n", result.ReasonCode)
	}

	if result.Message != "" {
		b.WriteString(result.Message + "\n")
	}
	for _, ev := range result.Events {
		if ev.Type == "pass" {
			b.WriteString("pass: " + ev.Message + "\n")
		}
	}

	b.WriteString("\n" + formatGameState(result.GameState, board))
	return b.String()
}
