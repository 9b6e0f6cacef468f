// Command treasuremaze drives the treasure-maze environment from the
// terminal: play a demo episode, inspect recorded runs, export or back up
// the run database, and serve the HTTP inspection API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "treasuremaze",
	Short: "Grid-maze navigation environment with run recording",
	Long: `treasuremaze models a pirate hunting a treasure on a grid maze.
Episodes are driven through the environment's act/observe/reset contract;
runs and moves can be recorded to SQLite or MongoDB and ranked on a Redis
leaderboard.`,
}

func init() {
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
