// Package game owns the board and drives the sync protocol from the
// render loop's side: drain worker events, feed them into board
// transitions, translate input into optimistic moves.
package game

import (
	"time"

	"go.uber.org/zap"

	"github.com/jackyboi/asyncchess/internal/chess"
	"github.com/jackyboi/asyncchess/internal/obslog"
	"github.com/jackyboi/asyncchess/internal/refresher"
	"github.com/jackyboi/asyncchess/internal/wire"
)

const closeTimeout = 10 * time.Second

// SyncHandle is the controller's view of the synchronization worker.
type SyncHandle interface {
	Send(refresher.Command) error
	Events() <-chan refresher.Event
	Done() <-chan struct{}
}

// Controller owns the board exclusively; the worker never touches it.
// ready is always non-nil; pending is non-nil only while a move awaits
// its outcome, and then still shadows ready's pre-move board.
type Controller struct {
	id      uint32
	ready   *chess.Board
	pending *chess.PendingBoard

	selected     *chess.Coords
	interacted   bool
	disconnected bool
	worker       SyncHandle
	log          *zap.Logger

	// fatal reports a controller/worker protocol desync. These must never
	// happen; swapped out in tests.
	fatal func(msg string, fields ...zap.Field)
}

// New returns a controller for one game, starting from an empty board.
func New(id uint32, worker SyncHandle) *Controller {
	log := obslog.L().Named("game").With(zap.Uint32("game_id", id))
	return &Controller{
		id:     id,
		ready:  chess.NewBoard(),
		worker: worker,
		log:    log,
		fatal:  func(msg string, fields ...zap.Field) { log.Fatal(msg, fields...) },
	}
}

// View returns the current board surface for rendering.
func (c *Controller) View() chess.View {
	if c.pending != nil {
		return c.pending
	}
	return c.ready
}

// Disconnected reports whether the placeholder board is being shown
// because the last refresh could not reach the server.
func (c *Controller) Disconnected() bool { return c.disconnected }

// Selected returns the currently selected square, if any.
func (c *Controller) Selected() (chess.Coords, bool) {
	if c.selected == nil {
		return chess.Coords{}, false
	}
	return *c.selected, true
}

// Tick runs once per rendered frame: drain all pending worker events,
// then ask for a refresh — forced when the user interacted since the
// last tick.
func (c *Controller) Tick() {
	c.drainEvents()

	force := c.interacted
	c.interacted = false
	if err := c.worker.Send(refresher.Refresh{Force: force}); err != nil {
		c.log.Warn("refresh request not sent", zap.Error(err))
	}
}

func (c *Controller) drainEvents() {
	for {
		select {
		case ev := <-c.worker.Events():
			c.apply(ev)
		default:
			return
		}
	}
}

func (c *Controller) apply(ev refresher.Event) {
	switch e := ev.(type) {
	case refresher.MoveResult:
		if c.pending == nil {
			// a server snapshot drained earlier already superseded the
			// move; its outcome still arrives and is simply stale
			c.log.Info("dropping outcome of a superseded move", zap.String("outcome", e.Outcome.String()))
			return
		}
		if e.Outcome == refresher.OutcomeWorked {
			board, err := c.pending.Commit(e.Captured)
			if err != nil {
				c.fatal("board out of sync with server", zap.Error(err))
				return
			}
			c.ready = board
		} else {
			c.log.Info("move not accepted, resetting pieces", zap.String("outcome", e.Outcome.String()))
			c.ready = c.pending.Rollback()
		}
		c.pending = nil

	case refresher.NewBoard:
		board, err := chess.BoardFromWire(e.Pieces)
		if err != nil {
			// the worker validates lists before emitting; keep the last
			// good board if one slips through anyway
			c.log.Error("dropping unusable board from worker", zap.Error(err))
			return
		}
		if c.pending != nil {
			c.log.Debug("server snapshot supersedes pending move")
		}
		// server truth wins over any optimistic guess
		c.ready, c.pending = board, nil
		c.disconnected = false

	case refresher.Disconnected:
		c.ready, c.pending = chess.DisconnectedBoard(), nil
		c.disconnected = true

	case refresher.NoChange:
	}
}

// Select handles a press on board square (x, y). The first press selects
// an occupied square; the second applies the move optimistically and then
// submits it. Pressing the selected square again deselects it.
func (c *Controller) Select(x, y int) {
	c.interacted = true
	at := chess.OnBoard(x, y)

	if c.selected == nil {
		if c.View().HasPieceAt(at) {
			c.selected = &at
		}
		return
	}

	from := *c.selected
	c.selected = nil
	if from == at {
		return
	}

	if c.pending != nil {
		// previous move still awaiting confirmation; at most one may be
		// outstanding
		c.log.Debug("ignoring move while one is pending")
		return
	}

	fx, fy, _ := from.XY()
	m := wire.NewMove(c.id, uint32(fx), uint32(fy), uint32(x), uint32(y))

	// optimistic transition happens before the command goes out, so the
	// preview and the final outcome can never reorder
	pending, err := c.ready.ApplyOptimistic(m)
	if err != nil {
		c.log.Warn("optimistic move refused", zap.Any("move", m), zap.Error(err))
		return
	}
	c.pending = pending
	c.log.Info("moving piece", zap.Any("move", m))

	if err := c.worker.Send(refresher.MakeMove{Move: m}); err != nil {
		c.log.Warn("move not sent, undoing preview", zap.Error(err))
		c.ready = c.pending.Rollback()
		c.pending = nil
	}
}

// ClearSelection drops the current selection.
func (c *Controller) ClearSelection() { c.selected = nil }

// Restart asks the server for a fresh board.
func (c *Controller) Restart() {
	c.interacted = true
	if err := c.worker.Send(refresher.RestartGame{}); err != nil {
		c.log.Warn("restart not sent", zap.Error(err))
	}
}

// Close shuts the worker down and waits for its acknowledgment.
func (c *Controller) Close() {
	if err := c.worker.Send(refresher.Shutdown{}); err != nil {
		return
	}
	select {
	case <-c.worker.Done():
	case <-time.After(closeTimeout):
		c.log.Warn("worker did not stop in time")
	}
}
