// Package wire holds the JSON types exchanged with the game server.
package wire

// Piece is a single piece as reported by the server. Coordinates of -1
// mark a piece that is off the board (captured pieces are supplied this
// way, out of band of the grid).
type Piece struct {
	X       int32  `json:"x"`
	Y       int32  `json:"y"`
	Kind    string `json:"kind"`
	IsWhite bool   `json:"is_white"`
}

// PieceList is the full board snapshot returned by GET /games/{id}.
type PieceList []Piece

// Move is the payload for POST /movepiece: move the piece at (x, y) to
// (nx, ny) in game id.
type Move struct {
	ID uint32 `json:"id"`
	X  uint32 `json:"x"`
	Y  uint32 `json:"y"`
	NX uint32 `json:"nx"`
	NY uint32 `json:"ny"`
}

// NewMove builds a Move for game id from (x, y) to (nx, ny).
func NewMove(id, x, y, nx, ny uint32) Move {
	return Move{ID: id, X: x, Y: y, NX: nx, NY: ny}
}

// From returns the origin square.
func (m Move) From() (int, int) { return int(m.X), int(m.Y) }

// To returns the destination square.
func (m Move) To() (int, int) { return int(m.NX), int(m.NY) }
