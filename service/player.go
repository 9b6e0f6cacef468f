// Package service provides episode drivers built on top of the game
// environment.
package service

import (
	"context"
	"errors"
	"log"

	"github.com/beka-birhanu/treasure-maze/game"
	"github.com/beka-birhanu/treasure-maze/game/maze"
	"github.com/beka-birhanu/treasure-maze/service/i"
)

// Player errors.
var (
	ErrNilEnvironment = errors.New("service: environment is required")
	ErrNoPath         = errors.New("service: no path to the treasure")
)

// OptimalPlayer replays the BFS-optimal action sequence through an
// environment, bracketing it in a recorded run and optionally submitting
// the result to a leaderboard. It serves as the reference episode driver;
// learning agents live outside this module and drive Act themselves.
type OptimalPlayer struct {
	env         *game.Environment
	leaderboard i.Leaderboard // nil when ranking is disabled
}

// NewOptimalPlayer creates a player over env. leaderboard may be nil.
func NewOptimalPlayer(env *game.Environment, leaderboard i.Leaderboard) (*OptimalPlayer, error) {
	if env == nil {
		return nil, ErrNilEnvironment
	}
	return &OptimalPlayer{env: env, leaderboard: leaderboard}, nil
}

// Play resets the environment, walks the shortest path to the treasure and
// returns the terminal status with the total reward earned.
func (p *OptimalPlayer) Play(ctx context.Context) (game.Status, float64, error) {
	p.env.Reset()

	path, ok := p.env.SolveShortestPath()
	if !ok {
		return game.StatusNotOver, 0, ErrNoPath
	}
	actions, err := maze.ActionsFromPath(path)
	if err != nil {
		return game.StatusNotOver, 0, err
	}

	runID := p.env.StartRun(ctx)
	status := p.env.Status()
	for _, action := range actions {
		_, _, status = p.env.Act(action)
		if status.Terminal() {
			break
		}
	}
	p.env.EndRun(ctx)

	if p.leaderboard != nil && status == game.StatusWin {
		if err := p.leaderboard.Submit(ctx, runID, p.env.TotalReward()); err != nil {
			log.Printf("[PLAYER] [ERROR] submitting run %s to leaderboard: %v", runID, err)
		}
	}
	return status, p.env.TotalReward(), nil
}
