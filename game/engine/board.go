package engine

import "strings"

// Board is the 8x8 grid in row-major order. Discs are only ever recolored,
// never removed, so the occupied count only grows.
type Board [BoardSize][BoardSize]Cell

// NewBoard returns the standard starting position: light on d4 and e5,
// dark on e4 and d5.
func NewBoard() *Board {
	b := &Board{}
	mid := BoardSize / 2
	b[mid-1][mid-1], b[mid][mid] = Occupied(Light), Occupied(Light)
	b[mid-1][mid], b[mid][mid-1] = Occupied(Dark), Occupied(Dark)
	return b
}

// Clone returns an independent copy of the board
func (b *Board) Clone() *Board {
	clone := *b
	return &clone
}

// Cell returns the state at c, or false when c is off the board
func (b *Board) Cell(c Coordinate) (Cell, bool) {
	if !c.Valid() {
		return Empty, false
	}
	return b[c.Row][c.Col], true
}

// FlipRunEnd scans from the square next to c in direction d and returns the
// last square of a run of one or more opposing discs that is closed by a disc
// of color. An empty square, the board edge, or an immediate own disc means
// no capture in that direction.
func (b *Board) FlipRunEnd(c Coordinate, color Color, d Direction) (Coordinate, bool) {
	if !color.Valid() {
		return Coordinate{}, false
	}
	if cell, ok := b.Cell(c); !ok || !cell.IsEmpty() {
		return Coordinate{}, false
	}

	opponent := Occupied(color.Opposite())
	own := Occupied(color)

	var last Coordinate
	found := false
	current := c

	for {
		next, ok := Step(current, d)
		if !ok {
			return Coordinate{}, false
		}

		switch b[next.Row][next.Col] {
		case opponent:
			last = next
			found = true
		case own:
			if !found {
				return Coordinate{}, false
			}
			return last, true
		default:
			return Coordinate{}, false
		}

		current = next
	}
}

// IsLegalMove reports whether color may place a disc at c: the square must be
// empty and at least one direction must capture.
func (b *Board) IsLegalMove(c Coordinate, color Color) bool {
	if !color.Valid() {
		return false
	}
	for _, d := range Directions {
		if _, ok := b.FlipRunEnd(c, color, d); ok {
			return true
		}
	}
	return false
}

// CanPlace is the legality predicate drivers consult before accepting input
func (b *Board) CanPlace(c Coordinate, color Color) bool {
	return b.IsLegalMove(c, color)
}

// Place puts a disc of color at c and flips every captured run. An illegal
// move leaves the board untouched and returns false.
func (b *Board) Place(c Coordinate, color Color) bool {
	return len(b.place(c, color)) > 0
}

// place returns the flipped squares, or nil when the move was illegal.
// Every endpoint is found before anything is written so that one
// direction's flips cannot change another direction's scan.
func (b *Board) place(c Coordinate, color Color) []Coordinate {
	if !color.Valid() {
		return nil
	}

	type run struct {
		end Coordinate
		dir Direction
	}

	var runs []run
	for _, d := range Directions {
		if end, ok := b.FlipRunEnd(c, color, d); ok {
			runs = append(runs, run{end: end, dir: d})
		}
	}
	if len(runs) == 0 {
		return nil
	}

	disc := Occupied(color)
	b[c.Row][c.Col] = disc

	var flipped []Coordinate
	for _, r := range runs {
		current := c
		for current != r.end {
			current, _ = Step(current, r.dir)
			b[current.Row][current.Col] = disc
			flipped = append(flipped, current)
		}
	}

	return flipped
}

// Flips lists the squares a placement at c would capture, grouped by
// direction in scan order. It returns nil for an illegal move.
func (b *Board) Flips(c Coordinate, color Color) []Coordinate {
	var flips []Coordinate
	for _, d := range Directions {
		end, ok := b.FlipRunEnd(c, color, d)
		if !ok {
			continue
		}
		current := c
		for current != end {
			current, _ = Step(current, d)
			flips = append(flips, current)
		}
	}
	return flips
}

// AnyLegalMove reports whether color has somewhere to play. False means a forced pass.
func (b *Board) AnyLegalMove(color Color) bool {
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if b[row][col].IsEmpty() && b.IsLegalMove(Coordinate{Row: row, Col: col}, color) {
				return true
			}
		}
	}
	return false
}

// LegalMoves returns every legal square for color in row-major order
func (b *Board) LegalMoves(color Color) []Coordinate {
	var moves []Coordinate
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			c := Coordinate{Row: row, Col: col}
			if b[row][col].IsEmpty() && b.IsLegalMove(c, color) {
				moves = append(moves, c)
			}
		}
	}
	return moves
}

// IsGameOver reports whether neither player can move. Empty squares may remain.
func (b *Board) IsGameOver() bool {
	return !b.AnyLegalMove(Dark) && !b.AnyLegalMove(Light)
}

// Count returns the number of discs of color on the board
func (b *Board) Count(color Color) int {
	disc := Occupied(color)
	count := 0
	for _, row := range b {
		for _, cell := range row {
			if cell == disc {
				count++
			}
		}
	}
	return count
}

// Occupied returns the number of non-empty squares
func (b *Board) Occupied() int {
	count := 0
	for _, row := range b {
		for _, cell := range row {
			if !cell.IsEmpty() {
				count++
			}
		}
	}
	return count
}

// Rows renders each row as a string of glyphs, without labels
func (b *Board) Rows(g Glyphs) []string {
	rows := make([]string, BoardSize)
	for i, row := range b {
		var sb strings.Builder
		for _, cell := range row {
			sb.WriteString(g.For(cell))
		}
		rows[i] = sb.String()
	}
	return rows
}

// Render draws the board with a column header and numbered rows:
//
//	 |a|b|c|d|e|f|g|h|
//	1| | | | | | | | |
//	...
//	4| | | |○|●| | | |
func (b *Board) Render(g Glyphs) string {
	var sb strings.Builder
	sb.WriteString(" |a|b|c|d|e|f|g|h|\n")
	for i, row := range b {
		sb.WriteByte(byte('1' + i))
		sb.WriteByte('|')
		for _, cell := range row {
			sb.WriteString(g.For(cell))
			sb.WriteByte('|')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// For returns the glyph for a cell state
func (g Glyphs) For(c Cell) string {
	switch c {
	case Occupied(Dark):
		return g.Dark
	case Occupied(Light):
		return g.Light
	default:
		return g.Empty
	}
}
