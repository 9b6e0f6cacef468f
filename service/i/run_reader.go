package i

import (
	"context"

	"github.com/beka-birhanu/treasure-maze/game"
	"github.com/google/uuid"
)

// RunReader defines the read side of run persistence, used by inspection
// surfaces (API, CLI). Recorders that also store history implement it.
type RunReader interface {
	// Runs returns recorded runs, most recent first. limit <= 0 returns
	// all runs.
	Runs(ctx context.Context, limit int) ([]game.RunRecord, error)

	// Moves returns the moves of one run ordered by step.
	Moves(ctx context.Context, runID uuid.UUID) ([]game.MoveRecord, error)
}
