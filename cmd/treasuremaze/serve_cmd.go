package main

import (
	"fmt"

	"github.com/beka-birhanu/treasure-maze/api"
	api_i "github.com/beka-birhanu/treasure-maze/api/i"
	runsapi "github.com/beka-birhanu/treasure-maze/api/runs"
	solveapi "github.com/beka-birhanu/treasure-maze/api/solve"
	"github.com/beka-birhanu/treasure-maze/config"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP inspection API (runs, leaderboard, solver)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		gin.SetMode(config.Envs.GinMode)

		_, reader, cleanupRec, err := newRecorder(ctx)
		if err != nil {
			return err
		}
		defer cleanupRec()

		board, cleanupBoard, err := newLeaderboard(ctx)
		if err != nil {
			return err
		}
		defer cleanupBoard()

		controllers := []api_i.Controller{solveapi.NewController()}
		if reader != nil {
			runsController, err := runsapi.NewController(reader, board)
			if err != nil {
				return err
			}
			controllers = append(controllers, runsController)
		} else {
			logError("No recorder configured; serving solver endpoint only")
		}

		router := api.NewRouter(api.Config{
			Addr:        fmt.Sprintf("%s:%d", config.Envs.HostIP, config.Envs.RESTPort),
			BaseURL:     "/api",
			Controllers: controllers,
		})
		logInfo("Router initialized on %s:%d", config.Envs.HostIP, config.Envs.RESTPort)
		return router.Run()
	},
}
