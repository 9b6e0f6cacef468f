package game

import (
	"context"
	"time"

	"github.com/beka-birhanu/treasure-maze/game/maze"
	"github.com/google/uuid"
)

// MoveMode classifies the outcome of a single act call.
type MoveMode string

// Move modes.
const (
	ModeValid   MoveMode = "valid"   // agent moved to an adjacent free cell
	ModeInvalid MoveMode = "invalid" // move was off-grid or blocked, agent stayed
	ModeBlocked MoveMode = "blocked" // current cell has no free neighbor at all
)

// MoveRecord describes one act call for persistence. The environment emits
// these as plain data; it keeps no reference to storage.
type MoveRecord struct {
	Step   int
	From   maze.CellPosition
	To     maze.CellPosition
	Action maze.Action
	Reward float64
	Mode   MoveMode
	At     time.Time
}

// RunRecord brackets a sequence of moves between StartRun and EndRun.
type RunRecord struct {
	ID          uuid.UUID
	StartedAt   time.Time
	EndedAt     time.Time // zero until the run ends
	Start       maze.CellPosition
	Status      Status
	TotalReward float64
}

// Recorder is the persistence boundary consumed, never implemented, by the
// environment. Implementations may block; the environment treats every
// call as best-effort and episode semantics are identical with no recorder
// attached.
type Recorder interface {
	// StartRun persists a new run record.
	StartRun(ctx context.Context, run RunRecord) error

	// RecordMove appends one move to an active run.
	RecordMove(ctx context.Context, runID uuid.UUID, move MoveRecord) error

	// EndRun finalizes a run with its terminal status and total reward.
	EndRun(ctx context.Context, runID uuid.UUID, status Status, totalReward float64) error
}
