package refresher

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jackyboi/asyncchess/internal/chess"
	"github.com/jackyboi/asyncchess/internal/obslog"
	"github.com/jackyboi/asyncchess/internal/server"
	"github.com/jackyboi/asyncchess/internal/timing"
	"github.com/jackyboi/asyncchess/internal/wire"
)

// ErrStopped is returned by Send after the worker has shut down.
var ErrStopped = errors.New("refresher stopped")

const (
	defaultRefreshInterval = 500 * time.Millisecond
	latencySampleCount     = 150
	latencyLogInterval     = 2500 * time.Millisecond
	shutdownTimeout        = 5 * time.Second
)

// Worker is the background synchronization loop. One supervisory goroutine
// reads commands; each network call runs on its own short-lived goroutine
// so the loop never blocks on the server. Refresh and move requests may
// overlap each other but never themselves.
type Worker struct {
	id     uint32
	client *server.Client
	log    *zap.Logger

	cmds   chan Command
	events chan Event
	done   chan struct{}

	refreshInFlight atomic.Bool
	moveInFlight    atomic.Bool
	// errAtLastRefresh implements the one-failure-grace hysteresis: only
	// the first failure after a success switches the board to the
	// disconnected placeholder, repeat failures keep the last good state.
	errAtLastRefresh atomic.Bool

	refreshGate *timing.Interval
	latency     *timing.Samples
	latencyLog  *timing.Interval
}

// Option configures a Worker.
type Option func(*Worker)

// WithRefreshInterval overrides the minimum gap between unforced polls.
func WithRefreshInterval(d time.Duration) Option {
	return func(w *Worker) { w.refreshGate = timing.NewInterval(d) }
}

// Start creates a worker for one game and launches its supervisory loop.
func Start(id uint32, client *server.Client, opts ...Option) *Worker {
	w := &Worker{
		id:          id,
		client:      client,
		log:         obslog.L().Named("refresher").With(zap.Uint32("game_id", id)),
		cmds:        make(chan Command, 16),
		events:      make(chan Event, 16),
		done:        make(chan struct{}),
		refreshGate: timing.NewInterval(defaultRefreshInterval),
		latency:     timing.NewSamples(latencySampleCount),
		latencyLog:  timing.NewInterval(latencyLogInterval),
	}
	for _, opt := range opts {
		opt(w)
	}
	go w.run()
	return w
}

// Send hands a command to the worker. Returns ErrStopped once the worker
// has shut down.
func (w *Worker) Send(cmd Command) error {
	select {
	case <-w.done:
		return ErrStopped
	default:
	}
	select {
	case <-w.done:
		return ErrStopped
	case w.cmds <- cmd:
		return nil
	}
}

// Events is the channel the worker emits on. It is never closed; use Done
// to observe termination.
func (w *Worker) Events() <-chan Event { return w.events }

// Done is closed once the worker has released the server session and
// stopped processing commands.
func (w *Worker) Done() <-chan struct{} { return w.done }

func (w *Worker) run() {
	defer close(w.done)
	for cmd := range w.cmds {
		w.maybeLogLatency()

		switch c := cmd.(type) {
		case Refresh:
			w.handleRefresh(c.Force)
		case RestartGame:
			w.handleRestart()
		case MakeMove:
			w.handleMove(c.Move)
		case Shutdown:
			w.handleShutdown()
			return
		}
	}
}

func (w *Worker) handleRefresh(force bool) {
	if !force && !w.refreshGate.Allow() {
		return
	}
	if !w.refreshInFlight.CompareAndSwap(false, true) {
		return
	}

	reqID := shortID()
	go func() {
		start := time.Now()
		list, changed, err := w.client.FetchBoard(context.Background(), w.id)
		w.latency.Add(time.Since(start))

		if err == nil && changed {
			// Reject malformed lists at the boundary so they never reach
			// the controller's board; they count as a failed refresh.
			if _, berr := chess.BoardFromWire(list); berr != nil {
				w.log.Error("server sent unusable piece list", zap.String("req_id", reqID), zap.Error(berr))
				err = berr
			}
		}

		var ev Event
		switch {
		case err != nil && w.errAtLastRefresh.Swap(true):
			w.log.Warn("refresh failed again, keeping last board", zap.String("req_id", reqID), zap.Error(err))
			ev = NoChange{}
		case err != nil:
			w.log.Error("refresh failed, switching to disconnected board", zap.String("req_id", reqID), zap.Error(err))
			ev = Disconnected{}
		case changed:
			w.errAtLastRefresh.Store(false)
			ev = NewBoard{Pieces: list}
		default:
			w.errAtLastRefresh.Store(false)
			ev = NoChange{}
		}

		// guard clears before the event goes out, so an event observed by
		// the controller means the request class is free again
		w.refreshGate.Update()
		w.refreshInFlight.Store(false)
		w.emit(ev)
	}()
}

func (w *Worker) handleMove(m wire.Move) {
	if !w.moveInFlight.CompareAndSwap(false, true) {
		// caller did not wait for the previous outcome; answer without
		// touching the network
		w.log.Warn("move already in flight, refusing", zap.Any("move", m))
		w.emit(MoveResult{Outcome: OutcomeCouldNotProcess})
		return
	}

	reqID := shortID()
	go func() {
		start := time.Now()
		captured, err := w.client.SubmitMove(context.Background(), m)
		w.latency.Add(time.Since(start))

		var res MoveResult
		switch {
		case err == nil:
			w.log.Info("move accepted", zap.String("req_id", reqID), zap.Bool("captured", captured))
			res = MoveResult{Outcome: OutcomeWorked, Captured: captured}
		case errors.Is(err, server.ErrInvalidMove):
			w.log.Info("move rejected by server", zap.String("req_id", reqID), zap.Any("move", m))
			res = MoveResult{Outcome: OutcomeInvalid}
		default:
			w.log.Error("move request failed", zap.String("req_id", reqID), zap.Error(err))
			res = MoveResult{Outcome: OutcomeCouldNotProcess}
		}

		w.moveInFlight.Store(false)
		w.emit(res)
	}()
}

func (w *Worker) handleRestart() {
	go func() {
		start := time.Now()
		err := w.client.NewGame(context.Background(), w.id)
		w.latency.Add(time.Since(start))
		if err != nil {
			// a failed restart just means the next refresh shows the
			// unreversed board
			w.log.Warn("restart failed", zap.Error(err))
			return
		}
		w.log.Info("board restarted")
	}()
}

func (w *Worker) handleShutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := w.client.Invalidate(ctx, w.id); err != nil {
		w.log.Warn("invalidate on shutdown failed", zap.Error(err))
	}
	w.log.Info("refresher stopping")
}

// emit never blocks: if the controller has stopped draining, the event is
// dropped rather than wedging a request goroutine.
func (w *Worker) emit(e Event) {
	select {
	case w.events <- e:
	default:
		w.log.Warn("event dropped, controller not draining", zap.Any("event", e))
	}
}

func (w *Worker) maybeLogLatency() {
	if !w.latencyLog.Allow() {
		return
	}
	if avg, ok := w.latency.Average(); ok {
		w.log.Info("average server response time", zap.Duration("avg", avg))
	}
}

func shortID() string { return uuid.NewString()[:8] }
