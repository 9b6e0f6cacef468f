// Package runsapi exposes recorded runs, their moves and the leaderboard
// over HTTP.
package runsapi

import (
	"time"

	"github.com/beka-birhanu/treasure-maze/game"
	"github.com/beka-birhanu/treasure-maze/service/i"
)

// RunResponse is the wire shape of one recorded run.
type RunResponse struct {
	ID          string     `json:"id"`
	StartedAt   time.Time  `json:"started_at"`
	EndedAt     *time.Time `json:"ended_at,omitempty"`
	StartRow    int        `json:"start_row"`
	StartCol    int        `json:"start_col"`
	Status      string     `json:"status"`
	TotalReward float64    `json:"total_reward"`
}

// MoveResponse is the wire shape of one recorded move.
type MoveResponse struct {
	Step      int       `json:"step"`
	FromRow   int       `json:"from_row"`
	FromCol   int       `json:"from_col"`
	ToRow     int       `json:"to_row"`
	ToCol     int       `json:"to_col"`
	Action    int       `json:"action"`
	Reward    float64   `json:"reward"`
	Mode      string    `json:"mode"`
	Timestamp time.Time `json:"timestamp"`
}

// LeaderboardEntryResponse is the wire shape of one leaderboard row.
type LeaderboardEntryResponse struct {
	RunID       string  `json:"run_id"`
	TotalReward float64 `json:"total_reward"`
}

func fromRunRecord(run game.RunRecord) RunResponse {
	resp := RunResponse{
		ID:          run.ID.String(),
		StartedAt:   run.StartedAt,
		StartRow:    run.Start.Row,
		StartCol:    run.Start.Col,
		Status:      run.Status.String(),
		TotalReward: run.TotalReward,
	}
	if !run.EndedAt.IsZero() {
		endedAt := run.EndedAt
		resp.EndedAt = &endedAt
	}
	return resp
}

func fromMoveRecord(move game.MoveRecord) MoveResponse {
	return MoveResponse{
		Step:      move.Step,
		FromRow:   move.From.Row,
		FromCol:   move.From.Col,
		ToRow:     move.To.Row,
		ToCol:     move.To.Col,
		Action:    int(move.Action),
		Reward:    move.Reward,
		Mode:      string(move.Mode),
		Timestamp: move.At,
	}
}

func fromLeaderboardEntry(entry i.LeaderboardEntry) LeaderboardEntryResponse {
	return LeaderboardEntryResponse{
		RunID:       entry.RunID.String(),
		TotalReward: entry.TotalReward,
	}
}
