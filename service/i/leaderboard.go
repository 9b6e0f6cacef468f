package i

import (
	"context"

	"github.com/google/uuid"
)

// LeaderboardEntry is one finished run ranked by its total reward.
type LeaderboardEntry struct {
	RunID       uuid.UUID
	TotalReward float64
}

// Leaderboard ranks finished runs by total reward.
type Leaderboard interface {
	// Submit adds a finished run to the board.
	Submit(ctx context.Context, runID uuid.UUID, totalReward float64) error

	// Top returns the n best runs, highest total reward first.
	Top(ctx context.Context, n int64) ([]LeaderboardEntry, error)
}
