package engine

import "fmt"

var _ Engine = (*GameEngine)(nil)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state
	GetState() *GameState
	GetBoard() *Board
	Current() Color
	Status() Status
	IsGameOver() bool
	Score() (dark, light int)
	Winner() (Color, bool)
	Reset() *GameState

	// Moves
	CanPlace(c Coordinate) bool
	Place(c Coordinate) (*Outcome, error)
	PlaceNotation(notation string) (*Outcome, error)
	LegalMoves() []Coordinate
	Advance() []Color

	// Configuration
	GetConfig() *GameConfig

	// History of the current game
	GetMoveHistory() []MoveRecord
	GetLastMove() *MoveRecord

	Render() string
}

// GameEngine is the turn controller. After every operation the player to
// move either has a legal move or the game is over; forced passes are
// applied and recorded automatically.
type GameEngine struct {
	board   *Board
	current Color
	status  Status
	config  *GameConfig
	history []MoveRecord
}

// NewEngine creates a new game with the provided theme
func NewEngine(config *GameConfig) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	e := &GameEngine{config: config}
	e.Reset()
	return e, nil
}

// NewEngineWithDefaults creates a new game with the classic theme
func NewEngineWithDefaults() *GameEngine {
	e := &GameEngine{config: DefaultConfig()}
	e.Reset()
	return e
}

// NewEngineFromPosition starts a game from an arbitrary board with current to
// move. Pass and game-over rules are applied immediately. Reset still returns
// to the opening position.
func NewEngineFromPosition(config *GameConfig, board Board, current Color) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}
	if !current.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidColor, current)
	}

	e := &GameEngine{
		board:   &board,
		current: current,
		status:  AwaitingMove,
		config:  config,
		history: []MoveRecord{},
	}
	e.Advance()
	return e, nil
}

// Reset starts a fresh game and clears the move history
func (e *GameEngine) Reset() *GameState {
	e.board = NewBoard()
	e.current = e.config.StartingColor()
	e.status = AwaitingMove
	e.history = []MoveRecord{}
	e.Advance()
	return e.GetState()
}

// GetBoard returns the live board. Callers must not mutate it.
func (e *GameEngine) GetBoard() *Board {
	return e.board
}

// Current returns the color to move
func (e *GameEngine) Current() Color {
	return e.current
}

// Status returns AwaitingMove or GameOver
func (e *GameEngine) Status() Status {
	return e.status
}

// IsGameOver reports whether neither player can move
func (e *GameEngine) IsGameOver() bool {
	return e.status == GameOver
}

// Score returns the disc count of each color
func (e *GameEngine) Score() (dark, light int) {
	return e.board.Count(Dark), e.board.Count(Light)
}

// Winner returns the color with more discs once the game is over.
// It returns false while the game is running or on a draw.
func (e *GameEngine) Winner() (Color, bool) {
	if e.status != GameOver {
		return 0, false
	}
	dark, light := e.Score()
	switch {
	case dark > light:
		return Dark, true
	case light > dark:
		return Light, true
	default:
		return 0, false
	}
}

// CanPlace checks whether the player to move may play at c
func (e *GameEngine) CanPlace(c Coordinate) bool {
	if e.status == GameOver {
		return false
	}
	return e.board.CanPlace(c, e.current)
}

// LegalMoves returns the legal squares for the player to move
func (e *GameEngine) LegalMoves() []Coordinate {
	if e.status == GameOver {
		return nil
	}
	return e.board.LegalMoves(e.current)
}

// Place plays a disc for the player to move. An illegal move returns
// ErrIllegalMove and leaves the game unchanged; the same player retries.
func (e *GameEngine) Place(c Coordinate) (*Outcome, error) {
	if e.status == GameOver {
		return nil, ErrGameOver
	}

	color := e.current
	flipped := e.board.place(c, color)
	if flipped == nil {
		return nil, fmt.Errorf("%w: %s cannot play %s", ErrIllegalMove, color, c)
	}

	coord := c
	record := MoveRecord{
		MoveNumber: len(e.history) + 1,
		Color:      color,
		Coordinate: &coord,
		Notation:   c.String(),
		Flipped:    flipped,
	}
	e.history = append(e.history, record)

	e.current = color.Opposite()
	passes := e.Advance()

	return &Outcome{
		Move:     record,
		Passes:   passes,
		Next:     e.current,
		GameOver: e.status == GameOver,
	}, nil
}

// PlaceNotation parses move notation and plays it. Malformed text yields
// ErrInvalidNotation, which is distinct from ErrIllegalMove.
func (e *GameEngine) PlaceNotation(notation string) (*Outcome, error) {
	c, err := ParseCoordinate(notation)
	if err != nil {
		return nil, err
	}
	return e.Place(c)
}

// Advance applies the pass and termination rules. If neither player can move
// the game ends; if only the player to move is stuck, the turn passes to the
// opponent. It returns the colors that passed.
func (e *GameEngine) Advance() []Color {
	if e.status == GameOver {
		return nil
	}

	if e.board.IsGameOver() {
		e.status = GameOver
		return nil
	}

	var passes []Color
	if !e.board.AnyLegalMove(e.current) {
		passes = append(passes, e.current)
		e.history = append(e.history, MoveRecord{
			MoveNumber: len(e.history) + 1,
			Color:      e.current,
			Pass:       true,
		})
		e.current = e.current.Opposite()
	}

	return passes
}

// GetConfig returns the active theme
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// GetMoveHistory returns a copy of the placements and passes of the current game
func (e *GameEngine) GetMoveHistory() []MoveRecord {
	return append([]MoveRecord(nil), e.history...)
}

// GetLastMove returns a copy of the last move made, or nil if no moves
func (e *GameEngine) GetLastMove() *MoveRecord {
	if len(e.history) == 0 {
		return nil
	}
	last := e.history[len(e.history)-1]
	return &last
}

// Placements counts the discs played so far, excluding passes
func (e *GameEngine) Placements() int {
	count := 0
	for _, m := range e.history {
		if !m.Pass {
			count++
		}
	}
	return count
}

// Render draws the board with the theme's glyphs
func (e *GameEngine) Render() string {
	return e.board.Render(e.config.Glyphs)
}

// GetState returns a snapshot of the game
func (e *GameEngine) GetState() *GameState {
	dark, light := e.Score()

	legal := e.LegalMoves()
	notation := make([]string, 0, len(legal))
	for _, c := range legal {
		notation = append(notation, c.String())
	}

	state := &GameState{
		Board:      e.board.Rows(e.config.Glyphs),
		Current:    e.current,
		Status:     e.status,
		Dark:       dark,
		Light:      light,
		LegalMoves: notation,
		MoveCount:  e.Placements(),
		LastMove:   e.GetLastMove(),
		ConfigName: e.config.Name,
		History:    append([]MoveRecord(nil), e.history...),
	}

	if e.status == GameOver {
		if winner, ok := e.Winner(); ok {
			state.Winner = winner.String()
		} else {
			state.Winner = "draw"
		}
	}

	return state
}
