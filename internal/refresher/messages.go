// Package refresher keeps the local board in sync with the game server.
// The controller talks to a background worker through a fixed vocabulary
// of commands and events; the worker owns the network client, rate limits
// polling and guards against duplicate in-flight requests.
package refresher

import "github.com/jackyboi/asyncchess/internal/wire"

// Command is a request sent to the worker.
type Command interface{ isCommand() }

// Refresh asks for a board poll. Unforced refreshes are dropped when the
// polling interval has not elapsed; back-to-back unforced refreshes are
// lossy on purpose since only the latest board matters.
type Refresh struct{ Force bool }

// RestartGame asks the server to reset the board. Fire and forget; the
// result is only logged.
type RestartGame struct{}

// MakeMove submits a move. The controller applies the optimistic board
// transition itself before sending this.
type MakeMove struct{ Move wire.Move }

// Shutdown releases the server session and stops the worker. No commands
// are processed after it.
type Shutdown struct{}

func (Refresh) isCommand()     {}
func (RestartGame) isCommand() {}
func (MakeMove) isCommand()    {}
func (Shutdown) isCommand()    {}

// Event is a message sent back to the controller.
type Event interface{ isEvent() }

// NewBoard carries a fresh full board snapshot; it supersedes all local
// state including any pending move.
type NewBoard struct{ Pieces wire.PieceList }

// NoChange means the last known board is still current.
type NoChange struct{}

// Disconnected means the server became unreachable; show the placeholder
// board.
type Disconnected struct{}

// MoveResult is the worker's classification of a move round-trip.
// Captured is only meaningful for OutcomeWorked.
type MoveResult struct {
	Outcome  Outcome
	Captured bool
}

func (NewBoard) isEvent()     {}
func (NoChange) isEvent()     {}
func (Disconnected) isEvent() {}
func (MoveResult) isEvent()   {}

// Outcome classifies a move round-trip.
type Outcome int

const (
	// OutcomeWorked means the server accepted the move.
	OutcomeWorked Outcome = iota
	// OutcomeInvalid means the server rejected the move as illegal.
	OutcomeInvalid
	// OutcomeCouldNotProcess means the request never completed, or a move
	// was already in flight.
	OutcomeCouldNotProcess
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWorked:
		return "worked"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeCouldNotProcess:
		return "could-not-process"
	default:
		return "unknown"
	}
}
