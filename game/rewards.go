package game

import (
	"errors"
	"fmt"
)

// ErrInvalidRewardConfig is wrapped by every RewardConfig validation
// failure.
var ErrInvalidRewardConfig = errors.New("game: invalid reward config")

// RewardConfig holds the reward shaping parameters of an environment.
// All penalties are negative, the goal reward positive. The zero value is
// not usable; start from DefaultRewardConfig.
type RewardConfig struct {
	// GoalReward is earned when the agent steps onto the treasure.
	GoalReward float64

	// StepPenalty is earned for every legal move onto a fresh free cell.
	StepPenalty float64

	// RevisitPenalty is earned for a legal move onto an already visited
	// cell, discouraging loops.
	RevisitPenalty float64

	// InvalidPenalty is earned when the attempted move is off-grid or
	// into a blocked cell; the agent does not move.
	InvalidPenalty float64

	// FloorFactor scales with the cell count to form the loss floor:
	// once cumulative reward drops below FloorFactor * cells the episode
	// is lost.
	FloorFactor float64

	// MoveBudget, when positive, loses the episode after that many act
	// calls without reaching the treasure. Zero disables the budget.
	MoveBudget int
}

// DefaultRewardConfig returns the documented default shaping: +1.0 goal,
// -0.04 step, -0.25 revisit, -0.75 invalid, -0.5 floor per cell, no move
// budget.
func DefaultRewardConfig() RewardConfig {
	return RewardConfig{
		GoalReward:     1.0,
		StepPenalty:    -0.04,
		RevisitPenalty: -0.25,
		InvalidPenalty: -0.75,
		FloorFactor:    -0.5,
		MoveBudget:     0,
	}
}

// Validate rejects out-of-range shaping parameters.
func (c RewardConfig) Validate() error {
	if c.GoalReward <= 0 {
		return fmt.Errorf("%w: goal reward must be positive", ErrInvalidRewardConfig)
	}
	if c.StepPenalty >= 0 || c.RevisitPenalty >= 0 || c.InvalidPenalty >= 0 {
		return fmt.Errorf("%w: step, revisit and invalid penalties must be negative", ErrInvalidRewardConfig)
	}
	if c.FloorFactor >= 0 {
		return fmt.Errorf("%w: floor factor must be negative", ErrInvalidRewardConfig)
	}
	if c.MoveBudget < 0 {
		return fmt.Errorf("%w: move budget cannot be negative", ErrInvalidRewardConfig)
	}
	return nil
}
