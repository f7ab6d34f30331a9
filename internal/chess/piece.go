package chess

import (
	"fmt"
	"strings"
)

// PieceKind identifies a chess piece type. The zero value marks an empty
// square.
type PieceKind uint8

const (
	KindNone PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// ParsePieceKind parses a server-supplied kind string.
func ParsePieceKind(s string) (PieceKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pawn":
		return Pawn, nil
	case "knight":
		return Knight, nil
	case "bishop":
		return Bishop, nil
	case "rook":
		return Rook, nil
	case "queen":
		return Queen, nil
	case "king":
		return King, nil
	default:
		return KindNone, fmt.Errorf("unknown piece kind %q", s)
	}
}

func (k PieceKind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return "none"
	}
}

// Piece is an immutable piece value. Kind only changes through the board's
// promotion handling.
type Piece struct {
	Kind    PieceKind
	IsWhite bool
}

// Rune returns the unicode chess glyph for terminal rendering.
func (p Piece) Rune() rune {
	glyphs := map[PieceKind][2]rune{
		Pawn:   {'♟', '♙'},
		Knight: {'♞', '♘'},
		Bishop: {'♝', '♗'},
		Rook:   {'♜', '♖'},
		Queen:  {'♛', '♕'},
		King:   {'♚', '♔'},
	}
	g, ok := glyphs[p.Kind]
	if !ok {
		return ' '
	}
	if p.IsWhite {
		return g[1]
	}
	return g[0]
}

func (p Piece) String() string {
	side := "black"
	if p.IsWhite {
		side = "white"
	}
	return side + " " + p.Kind.String()
}
