package chess

import "fmt"

// Coords is a board location. The zero value is off-board, which doubles
// as the position of a captured piece. (0, 0) is the top left corner, y
// counts rows and x counts columns.
type Coords struct {
	x, y int
	on   bool
}

// OffBoard returns the off-board coordinate.
func OffBoard() Coords { return Coords{} }

// OnBoard returns an on-board coordinate. x and y must be in [0, 7];
// out-of-range values produce a coordinate that no square resolves to.
func OnBoard(x, y int) Coords { return Coords{x: x, y: y, on: true} }

// CoordsFromWire converts server coordinates. (-1, -1) marks a captured
// piece; any other value outside the grid is rejected.
func CoordsFromWire(x, y int32) (Coords, error) {
	if x == -1 && y == -1 {
		return OffBoard(), nil
	}
	if x < 0 || x > 7 {
		return Coords{}, fmt.Errorf("x out of range: %d", x)
	}
	if y < 0 || y > 7 {
		return Coords{}, fmt.Errorf("y out of range: %d", y)
	}
	return OnBoard(int(x), int(y)), nil
}

// Index returns the position in a 64-slot row-major square array, and
// whether the coordinate maps to a square at all.
func (c Coords) Index() (int, bool) {
	if !c.on || c.x < 0 || c.x > 7 || c.y < 0 || c.y > 7 {
		return 0, false
	}
	return c.y*8 + c.x, true
}

// XY returns the column and row, and whether the coordinate is on the board.
func (c Coords) XY() (int, int, bool) { return c.x, c.y, c.on }

// IsOnBoard reports whether the coordinate is on the board.
func (c Coords) IsOnBoard() bool { return c.on }

// IsTaken reports whether the coordinate marks a captured piece.
func (c Coords) IsTaken() bool { return !c.on }

func (c Coords) String() string {
	if !c.on {
		return "off-board"
	}
	return fmt.Sprintf("(%d, %d)", c.x, c.y)
}
