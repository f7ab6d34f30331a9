package chess

import (
	"errors"
	"fmt"

	"github.com/jackyboi/asyncchess/internal/wire"
)

var (
	// ErrNoPieceAtOrigin is returned by ApplyOptimistic when the origin
	// square is empty. The controller validates piece presence before
	// issuing a move, so hitting this indicates a caller bug.
	ErrNoPieceAtOrigin = errors.New("no piece at move origin")

	// ErrCaptureMismatch marks a server-confirmed capture on a square the
	// local board had recorded as empty.
	ErrCaptureMismatch = errors.New("server reported a capture the board never saw")
)

// View is the read-only board surface shared by both board states; the
// renderer only ever sees this.
type View interface {
	PieceAt(at Coords) (Piece, bool)
	HasPieceAt(at Coords) bool
	Captured() []Piece
}

// boardCore holds the square grid and the captured list, shared between
// the two board states.
type boardCore struct {
	// squares is indexed y*8+x; a zero Kind means the square is empty.
	squares  [64]Piece
	captured []Piece
}

// pendingMove is the snapshot needed to roll an unconfirmed move back:
// the move itself, whatever sat on the destination square, and the moved
// piece's kind before any promotion preview.
type pendingMove struct {
	move     wire.Move
	taken    Piece
	tookOne  bool
	origKind PieceKind
}

// Board is a board with no move awaiting confirmation. It is the only
// state that can start a move, so a second optimistic move while one is
// outstanding is unrepresentable.
type Board struct {
	boardCore
}

// PendingBoard is a board with exactly one move awaiting server
// confirmation. It must be resolved through Commit or Rollback.
type PendingBoard struct {
	boardCore
	pending pendingMove
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{boardCore{captured: make([]Piece, 0, 32)}}
}

// BoardFromWire builds a board from a full server piece list. Off-board
// pieces go to the captured list. Unknown kinds, out-of-range coordinates
// and square collisions are rejected so malformed server data never
// reaches the board.
func BoardFromWire(list wire.PieceList) (*Board, error) {
	b := NewBoard()
	for _, wp := range list {
		kind, err := ParsePieceKind(wp.Kind)
		if err != nil {
			return nil, err
		}
		at, err := CoordsFromWire(wp.X, wp.Y)
		if err != nil {
			return nil, err
		}
		piece := Piece{Kind: kind, IsWhite: wp.IsWhite}
		idx, ok := at.Index()
		if !ok {
			b.captured = append(b.captured, piece)
			continue
		}
		if b.squares[idx].Kind != KindNone {
			return nil, fmt.Errorf("piece collision at (%d, %d)", wp.X, wp.Y)
		}
		b.squares[idx] = piece
	}
	return b, nil
}

// PieceAt returns the piece on a square, if any. Valid in either state.
func (c *boardCore) PieceAt(at Coords) (Piece, bool) {
	idx, ok := at.Index()
	if !ok || c.squares[idx].Kind == KindNone {
		return Piece{}, false
	}
	return c.squares[idx], true
}

// HasPieceAt reports whether a piece sits on the given square.
func (c *boardCore) HasPieceAt(at Coords) bool {
	_, ok := c.PieceAt(at)
	return ok
}

// Captured returns a copy of the pieces removed from play, in capture order.
func (c *boardCore) Captured() []Piece {
	out := make([]Piece, len(c.captured))
	copy(out, c.captured)
	return out
}

// ApplyOptimistic relocates the piece at m's origin before the server has
// confirmed the move, recording the snapshot needed for an exact rollback.
// A piece landing on its promotion rank is previewed as a Queen; the server
// remains authoritative and a rollback restores the original kind.
func (b *Board) ApplyOptimistic(m wire.Move) (*PendingBoard, error) {
	fromIdx, ok := OnBoard(m.From()).Index()
	if !ok {
		return nil, fmt.Errorf("move origin (%d, %d) out of bounds", m.X, m.Y)
	}
	toIdx, ok := OnBoard(m.To()).Index()
	if !ok {
		return nil, fmt.Errorf("move destination (%d, %d) out of bounds", m.NX, m.NY)
	}

	mover := b.squares[fromIdx]
	if mover.Kind == KindNone {
		return nil, fmt.Errorf("%w at (%d, %d)", ErrNoPieceAtOrigin, m.X, m.Y)
	}

	p := &PendingBoard{
		boardCore: b.boardCore,
		pending:   pendingMove{move: m, origKind: mover.Kind},
	}
	if dest := p.squares[toIdx]; dest.Kind != KindNone {
		p.pending.taken = dest
		p.pending.tookOne = true
	}

	p.squares[toIdx] = mover
	p.squares[fromIdx] = Piece{}

	if (mover.IsWhite && m.NY == 0) || (!mover.IsWhite && m.NY == 7) {
		p.squares[toIdx].Kind = Queen
	}
	return p, nil
}

// Commit resolves the pending move as accepted by the server. When the
// server reports a capture, the piece recorded in the snapshot joins the
// captured list; a capture with no snapshot piece means the local board
// and the server disagree about the destination square, which the caller
// must treat as unrecoverable.
func (p *PendingBoard) Commit(captured bool) (*Board, error) {
	if captured && !p.pending.tookOne {
		m := p.pending.move
		return nil, fmt.Errorf("%w: move (%d, %d) -> (%d, %d)", ErrCaptureMismatch, m.X, m.Y, m.NX, m.NY)
	}
	b := &Board{boardCore: p.boardCore}
	if captured {
		b.captured = append(b.captured, p.pending.taken)
	}
	return b, nil
}

// Rollback resolves the pending move as rejected: both squares are
// restored from the snapshot, including the moved piece's pre-promotion
// kind.
func (p *PendingBoard) Rollback() *Board {
	b := &Board{boardCore: p.boardCore}
	m := p.pending.move
	fromIdx, _ := OnBoard(m.From()).Index()
	toIdx, _ := OnBoard(m.To()).Index()

	b.squares[fromIdx] = b.squares[toIdx]
	b.squares[fromIdx].Kind = p.pending.origKind
	if p.pending.tookOne {
		b.squares[toIdx] = p.pending.taken
	} else {
		b.squares[toIdx] = Piece{}
	}
	return b
}

// Move returns the move awaiting confirmation.
func (p *PendingBoard) Move() wire.Move { return p.pending.move }
