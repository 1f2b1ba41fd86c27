package engine

import "fmt"

// Direction is one of the eight unit steps a flip run can follow
type Direction uint8

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

// Directions lists every ray direction in scan order
var Directions = [8]Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}

// offsets are indexed by Direction; rows grow southwards, columns eastwards
var offsets = [8]struct{ dRow, dCol int }{
	{-1, 0},  // North
	{-1, 1},  // North-East
	{0, 1},   // East
	{1, 1},   // South-East
	{1, 0},   // South
	{1, -1},  // South-West
	{0, -1},  // West
	{-1, -1}, // North-West
}

var directionNames = [8]string{"north", "north-east", "east", "south-east", "south", "south-west", "west", "north-west"}

// Offset returns the row and column delta of a single step
func (d Direction) Offset() (dRow, dCol int) {
	o := offsets[d%8]
	return o.dRow, o.dCol
}

// Opposite returns the direction pointing the other way along the same line
func (d Direction) Opposite() Direction {
	return (d + 4) % 8
}

func (d Direction) String() string {
	if d >= 8 {
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
	return directionNames[d]
}

// Valid reports whether the coordinate lies on the board
func (c Coordinate) Valid() bool {
	return c.Row >= 0 && c.Row < BoardSize && c.Col >= 0 && c.Col < BoardSize
}

// Step moves one square in direction d. It returns false instead of a
// coordinate when the step leaves the board; edges never wrap.
func Step(c Coordinate, d Direction) (Coordinate, bool) {
	dRow, dCol := d.Offset()
	next := Coordinate{Row: c.Row + dRow, Col: c.Col + dCol}
	if !next.Valid() {
		return Coordinate{}, false
	}
	return next, true
}

// Step is the method form of Step
func (c Coordinate) Step(d Direction) (Coordinate, bool) {
	return Step(c, d)
}

// String renders the coordinate in move notation, column letter then row digit
func (c Coordinate) String() string {
	if !c.Valid() {
		return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
	}
	return string([]byte{byte('a' + c.Col), byte('1' + c.Row)})
}

// ParseCoordinate reads move notation such as "c4": exactly one lower-case
// column a-h then one row digit 1-8, nothing else. It does not look at any board.
func ParseCoordinate(s string) (Coordinate, error) {
	if len(s) != 2 {
		return Coordinate{}, fmt.Errorf("%w: %q: expected a column letter a-h followed by a row digit 1-8", ErrInvalidNotation, s)
	}

	col := s[0]
	row := s[1]

	if col < 'a' || col > 'h' {
		return Coordinate{}, fmt.Errorf("%w: %q: column must be a-h", ErrInvalidNotation, s)
	}
	if row < '1' || row > '8' {
		return Coordinate{}, fmt.Errorf("%w: %q: row must be 1-8", ErrInvalidNotation, s)
	}

	return Coordinate{Row: int(row - '1'), Col: int(col - 'a')}, nil
}
