package main

import (
	"fmt"

	"github.com/beka-birhanu/treasure-maze/game"
	"github.com/beka-birhanu/treasure-maze/game/maze"
	"github.com/beka-birhanu/treasure-maze/service"
	"github.com/spf13/cobra"
)

// demoLayout is the stock 4x4 maze used by the demo episode.
var demoLayout = [][]float64{
	{1, 1, 1, 1},
	{0, 1, 0, 1},
	{1, 1, 1, 1},
	{1, 0, 1, 1},
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Play one optimal episode on the stock maze, recording the run",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		recorder, _, cleanupRec, err := newRecorder(ctx)
		if err != nil {
			return err
		}
		defer cleanupRec()

		board, cleanupBoard, err := newLeaderboard(ctx)
		if err != nil {
			return err
		}
		defer cleanupBoard()

		m, err := maze.New(demoLayout, maze.CellPosition{Row: 0, Col: 0})
		if err != nil {
			return err
		}
		env, err := game.NewEnvironment(m, game.DefaultRewardConfig(), recorder)
		if err != nil {
			return err
		}
		player, err := service.NewOptimalPlayer(env, board)
		if err != nil {
			return err
		}

		status, totalReward, err := player.Play(ctx)
		if err != nil {
			return err
		}

		fmt.Print(m.String())
		fmt.Printf("status: %s  total reward: %.2f  moves: %d\n", status, totalReward, env.Moves())
		return nil
	},
}
