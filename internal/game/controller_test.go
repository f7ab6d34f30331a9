package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jackyboi/asyncchess/internal/chess"
	"github.com/jackyboi/asyncchess/internal/refresher"
	"github.com/jackyboi/asyncchess/internal/wire"
)

type fakeWorker struct {
	sent   []refresher.Command
	events chan refresher.Event
	done   chan struct{}
}

func newFakeWorker() *fakeWorker {
	return &fakeWorker{events: make(chan refresher.Event, 16), done: make(chan struct{})}
}

func (f *fakeWorker) Send(cmd refresher.Command) error {
	f.sent = append(f.sent, cmd)
	if _, ok := cmd.(refresher.Shutdown); ok {
		close(f.done)
	}
	return nil
}

func (f *fakeWorker) Events() <-chan refresher.Event { return f.events }
func (f *fakeWorker) Done() <-chan struct{}          { return f.done }

func testPieces() wire.PieceList {
	return wire.PieceList{
		{X: 3, Y: 6, Kind: "pawn", IsWhite: true},
		{X: 4, Y: 4, Kind: "bishop", IsWhite: false},
	}
}

func newTestController(t *testing.T) (*Controller, *fakeWorker) {
	t.Helper()
	fw := newFakeWorker()
	c := New(1, fw)
	fw.events <- refresher.NewBoard{Pieces: testPieces()}
	c.Tick()
	fw.sent = nil
	return c, fw
}

func TestTickAppliesNewBoardAndPolls(t *testing.T) {
	fw := newFakeWorker()
	c := New(1, fw)

	fw.events <- refresher.NewBoard{Pieces: testPieces()}
	c.Tick()

	require.True(t, c.View().HasPieceAt(chess.OnBoard(3, 6)))
	require.Equal(t, []refresher.Command{refresher.Refresh{Force: false}}, fw.sent)
}

func TestTickForcesRefreshAfterInteraction(t *testing.T) {
	c, fw := newTestController(t)

	c.Select(3, 6)
	c.Tick()
	require.Equal(t, refresher.Refresh{Force: true}, fw.sent[len(fw.sent)-1])

	// next quiet tick goes back to unforced
	c.Tick()
	require.Equal(t, refresher.Refresh{Force: false}, fw.sent[len(fw.sent)-1])
}

func TestSelectThenMoveAppliesPreviewBeforeSending(t *testing.T) {
	c, fw := newTestController(t)

	c.Select(3, 6)
	sel, ok := c.Selected()
	require.True(t, ok)
	require.Equal(t, chess.OnBoard(3, 6), sel)
	require.Empty(t, fw.sent, "selection alone talks to no one")

	c.Select(3, 5)
	require.False(t, c.View().HasPieceAt(chess.OnBoard(3, 6)), "piece moved optimistically")
	require.True(t, c.View().HasPieceAt(chess.OnBoard(3, 5)))
	require.Equal(t,
		[]refresher.Command{refresher.MakeMove{Move: wire.NewMove(1, 3, 6, 3, 5)}},
		fw.sent, "move goes out after the local preview")
}

func TestSelectEmptySquareIsNoOp(t *testing.T) {
	c, _ := newTestController(t)
	c.Select(0, 0)
	_, ok := c.Selected()
	require.False(t, ok)
}

func TestReselectingSameSquareDeselects(t *testing.T) {
	c, fw := newTestController(t)
	c.Select(3, 6)
	c.Select(3, 6)
	_, ok := c.Selected()
	require.False(t, ok)
	require.Empty(t, fw.sent)
}

func TestMoveWorkedCommits(t *testing.T) {
	c, fw := newTestController(t)

	c.Select(4, 4) // bishop
	c.Select(3, 6) // takes the pawn... optimistically
	fw.events <- refresher.MoveResult{Outcome: refresher.OutcomeWorked, Captured: true}
	c.Tick()

	p, ok := c.View().PieceAt(chess.OnBoard(3, 6))
	require.True(t, ok)
	require.Equal(t, chess.Bishop, p.Kind)
	require.Equal(t, []chess.Piece{{Kind: chess.Pawn, IsWhite: true}}, c.View().Captured())
}

func TestInvalidMoveRollsBackExactly(t *testing.T) {
	c, fw := newTestController(t)

	c.Select(3, 6)
	c.Select(4, 4) // pawn onto the bishop's square
	fw.events <- refresher.MoveResult{Outcome: refresher.OutcomeInvalid}
	c.Tick()

	// board equals the pre-move snapshot exactly
	p, ok := c.View().PieceAt(chess.OnBoard(3, 6))
	require.True(t, ok)
	require.Equal(t, chess.Piece{Kind: chess.Pawn, IsWhite: true}, p)
	p, ok = c.View().PieceAt(chess.OnBoard(4, 4))
	require.True(t, ok)
	require.Equal(t, chess.Piece{Kind: chess.Bishop, IsWhite: false}, p)
	require.Empty(t, c.View().Captured())
}

func TestCouldNotProcessRollsBack(t *testing.T) {
	c, fw := newTestController(t)

	c.Select(3, 6)
	c.Select(3, 5)
	fw.events <- refresher.MoveResult{Outcome: refresher.OutcomeCouldNotProcess}
	c.Tick()

	require.True(t, c.View().HasPieceAt(chess.OnBoard(3, 6)))
	require.False(t, c.View().HasPieceAt(chess.OnBoard(3, 5)))
}

func TestSecondMoveWhilePendingIsIgnored(t *testing.T) {
	c, fw := newTestController(t)

	c.Select(3, 6)
	c.Select(3, 5)
	require.Len(t, fw.sent, 1)

	// move outcome not in yet; a second move attempt goes nowhere
	c.Select(4, 4)
	c.Select(4, 3)
	require.Len(t, fw.sent, 1)
}

func TestNewBoardSupersedesPendingMove(t *testing.T) {
	c, fw := newTestController(t)

	c.Select(3, 6)
	c.Select(3, 5)

	fresh := wire.PieceList{{X: 0, Y: 0, Kind: "king", IsWhite: true}}
	fw.events <- refresher.NewBoard{Pieces: fresh}
	c.Tick()

	// server truth wins; pending move gone, fresh board in place
	require.True(t, c.View().HasPieceAt(chess.OnBoard(0, 0)))
	require.False(t, c.View().HasPieceAt(chess.OnBoard(3, 5)))

	// the discarded pending must not leave the controller desynced:
	// the next move starts cleanly
	c.Select(0, 0)
	c.Select(0, 1)
	require.Equal(t, refresher.MakeMove{Move: wire.NewMove(1, 0, 0, 0, 1)}, fw.sent[len(fw.sent)-1])
}

func TestDisconnectedShowsPlaceholder(t *testing.T) {
	c, fw := newTestController(t)

	fw.events <- refresher.Disconnected{}
	c.Tick()

	require.True(t, c.Disconnected())
	require.True(t, c.View().HasPieceAt(chess.OnBoard(0, 0)))
	require.Len(t, c.View().Captured(), 24)

	// next good snapshot clears the flag
	fw.events <- refresher.NewBoard{Pieces: testPieces()}
	c.Tick()
	require.False(t, c.Disconnected())
}

func TestStrayMoveResultIsIgnored(t *testing.T) {
	c, fw := newTestController(t)

	var called bool
	c.fatal = func(msg string, fields ...zap.Field) { called = true }

	fw.events <- refresher.MoveResult{Outcome: refresher.OutcomeWorked}
	c.Tick()

	require.False(t, called, "a stale outcome is routine, not a desync")
	require.True(t, c.View().HasPieceAt(chess.OnBoard(3, 6)), "board untouched")
}

func TestSnapshotThenMoveResultInOneTick(t *testing.T) {
	c, fw := newTestController(t)

	var called bool
	c.fatal = func(msg string, fields ...zap.Field) { called = true }

	// the forced refresh a move triggers can land its snapshot before the
	// move's own outcome; both drain in the same tick
	c.Select(3, 6)
	c.Select(3, 5)
	fresh := wire.PieceList{{X: 0, Y: 0, Kind: "king", IsWhite: true}}
	fw.events <- refresher.NewBoard{Pieces: fresh}
	fw.events <- refresher.MoveResult{Outcome: refresher.OutcomeWorked}
	c.Tick()

	require.False(t, called)
	require.True(t, c.View().HasPieceAt(chess.OnBoard(0, 0)), "snapshot stands")
	require.False(t, c.View().HasPieceAt(chess.OnBoard(3, 5)), "stale outcome did not resurrect the move")
}

func TestCaptureNeverSeenLocallyIsFatal(t *testing.T) {
	c, fw := newTestController(t)

	var called bool
	c.fatal = func(msg string, fields ...zap.Field) { called = true }

	c.Select(3, 6)
	c.Select(3, 5) // empty square
	fw.events <- refresher.MoveResult{Outcome: refresher.OutcomeWorked, Captured: true}
	c.Tick()

	require.True(t, called, "server-confirmed capture on an empty square is a desync")
}

func TestCloseWaitsForWorker(t *testing.T) {
	c, fw := newTestController(t)
	c.Close()
	require.Equal(t, refresher.Shutdown{}, fw.sent[len(fw.sent)-1])
	select {
	case <-fw.done:
	default:
		t.Fatal("done channel not closed")
	}
}
