package chess

// disconnectedSquares spells out a rough "UH OH" in rooks, shown instead
// of a frozen or blank board while the server is unreachable.
var disconnectedSquares = [][2]int{
	{0, 0}, {2, 0}, {5, 0}, {7, 0},
	{0, 1}, {2, 1}, {5, 1}, {6, 1}, {7, 1},
	{0, 2}, {1, 2}, {2, 2}, {5, 2}, {7, 2},
	{0, 5}, {1, 5}, {2, 5}, {5, 5}, {7, 5},
	{0, 6}, {2, 6}, {5, 6}, {6, 6}, {7, 6},
	{0, 7}, {1, 7}, {2, 7}, {5, 7}, {7, 7},
}

// DisconnectedBoard returns the placeholder board rendered when the
// connection to the server is lost.
func DisconnectedBoard() *Board {
	b := NewBoard()
	for _, sq := range disconnectedSquares {
		x, y := sq[0], sq[1]
		idx, _ := OnBoard(x, y).Index()
		b.squares[idx] = Piece{Kind: Rook, IsWhite: (x+y)%2 == 1}
	}
	kinds := []PieceKind{Pawn, Knight, Bishop, Rook, Queen, King}
	for i := 0; i < 2; i++ {
		for _, k := range kinds {
			b.captured = append(b.captured,
				Piece{Kind: k, IsWhite: false},
				Piece{Kind: k, IsWhite: true},
			)
		}
	}
	return b
}
