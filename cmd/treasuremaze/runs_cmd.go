package main

import (
	"fmt"

	"github.com/beka-birhanu/treasure-maze/config"
	"github.com/beka-birhanu/treasure-maze/infrastruture/sqliterec"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var runsLimit int

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "maximum number of runs to list")
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded runs, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		_, reader, cleanup, err := newRecorder(ctx)
		if err != nil {
			return err
		}
		defer cleanup()
		if reader == nil {
			return fmt.Errorf("recorder driver %q keeps no run history", config.Envs.RecorderDriver)
		}

		runs, err := reader.Runs(ctx, runsLimit)
		if err != nil {
			return err
		}

		for _, run := range runs {
			ended := "-"
			if !run.EndedAt.IsZero() {
				ended = run.EndedAt.Format("2006-01-02 15:04:05")
			}
			fmt.Printf("%s  start=(%d,%d)  started=%s  ended=%s  status=%s  reward=%.2f\n",
				run.ID, run.Start.Row, run.Start.Col,
				run.StartedAt.Format("2006-01-02 15:04:05"), ended,
				run.Status, run.TotalReward)
		}
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <run-id> <path>",
	Short: "Export the moves of one run to a CSV file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		runID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid run id: %w", err)
		}

		rec, err := openSQLite()
		if err != nil {
			return err
		}
		defer rec.Close()

		if err := rec.ExportRunCSV(cmd.Context(), runID, args[1]); err != nil {
			return err
		}
		logInfo("Exported run %s to %s", runID, args[1])
		return nil
	},
}

var backupCmd = &cobra.Command{
	Use:   "backup <path>",
	Short: "Copy the SQLite run database to a backup file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := openSQLite()
		if err != nil {
			return err
		}
		defer rec.Close()

		if err := rec.Backup(args[0]); err != nil {
			return err
		}
		logInfo("Backed up %s to %s", config.Envs.SQLitePath, args[0])
		return nil
	},
}

// openSQLite opens the configured SQLite recorder; export and backup are
// SQLite-only utilities.
func openSQLite() (*sqliterec.Recorder, error) {
	if config.Envs.RecorderDriver != config.DriverSQLite {
		return nil, fmt.Errorf("command requires RECORDER_DRIVER=%s", config.DriverSQLite)
	}
	return sqliterec.New(config.Envs.SQLitePath)
}
