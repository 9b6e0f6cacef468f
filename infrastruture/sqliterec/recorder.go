// Package sqliterec provides a SQLite-backed game.Recorder with run
// inspection, CSV export and file backup utilities.
package sqliterec

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/beka-birhanu/treasure-maze/game"
	"github.com/beka-birhanu/treasure-maze/game/maze"
	"github.com/beka-birhanu/treasure-maze/service/i"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Recorder persists runs and moves in a local SQLite database.
type Recorder struct {
	db   *sql.DB
	path string
}

var (
	_ game.Recorder = (*Recorder)(nil)
	_ i.RunReader   = (*Recorder)(nil)
)

// New opens (or creates) the database at dbPath and runs migrations.
func New(dbPath string) (*Recorder, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	// WAL keeps readers (inspection surfaces) from blocking the writer.
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// SQLite supports a single writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	r := &Recorder{db: db, path: dbPath}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return r, nil
}

// Close closes the database connection.
func (r *Recorder) Close() error {
	return r.db.Close()
}

// Ping checks the database connection is alive.
func (r *Recorder) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// migrate runs idempotent schema migrations.
func (r *Recorder) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at DATETIME NOT NULL,
		ended_at DATETIME,
		start_row INTEGER NOT NULL,
		start_col INTEGER NOT NULL,
		status TEXT NOT NULL,
		total_reward REAL NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS moves (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		step INTEGER NOT NULL,
		from_row INTEGER NOT NULL,
		from_col INTEGER NOT NULL,
		to_row INTEGER NOT NULL,
		to_col INTEGER NOT NULL,
		action INTEGER NOT NULL,
		reward REAL NOT NULL,
		mode TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		FOREIGN KEY (run_id) REFERENCES runs(id)
	);

	CREATE INDEX IF NOT EXISTS idx_moves_run_id ON moves(run_id);
	`

	_, err := r.db.Exec(schema)
	return err
}

// StartRun inserts a new run record.
func (r *Recorder) StartRun(ctx context.Context, run game.RunRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, start_row, start_col, status, total_reward) VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID.String(), run.StartedAt, run.Start.Row, run.Start.Col, run.Status.String(), run.TotalReward,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// RecordMove appends one move to a run.
func (r *Recorder) RecordMove(ctx context.Context, runID uuid.UUID, move game.MoveRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO moves (run_id, step, from_row, from_col, to_row, to_col, action, reward, mode, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID.String(), move.Step, move.From.Row, move.From.Col, move.To.Row, move.To.Col,
		int(move.Action), move.Reward, string(move.Mode), move.At,
	)
	if err != nil {
		return fmt.Errorf("insert move: %w", err)
	}
	return nil
}

// EndRun finalizes a run with its terminal status and total reward.
func (r *Recorder) EndRun(ctx context.Context, runID uuid.UUID, status game.Status, totalReward float64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE runs SET ended_at = ?, status = ?, total_reward = ? WHERE id = ?`,
		time.Now().UTC(), status.String(), totalReward, runID.String(),
	)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	return nil
}

// Runs returns recorded runs, most recent first. limit <= 0 returns all.
func (r *Recorder) Runs(ctx context.Context, limit int) ([]game.RunRecord, error) {
	query := `SELECT id, started_at, ended_at, start_row, start_col, status, total_reward FROM runs ORDER BY started_at DESC`
	var args []interface{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []game.RunRecord
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Moves returns the moves of one run ordered by step.
func (r *Recorder) Moves(ctx context.Context, runID uuid.UUID) ([]game.MoveRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT step, from_row, from_col, to_row, to_col, action, reward, mode, created_at
		 FROM moves WHERE run_id = ? ORDER BY step`,
		runID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("query moves: %w", err)
	}
	defer rows.Close()

	var moves []game.MoveRecord
	for rows.Next() {
		var move game.MoveRecord
		var action int
		var mode string
		if err := rows.Scan(&move.Step, &move.From.Row, &move.From.Col, &move.To.Row, &move.To.Col,
			&action, &move.Reward, &mode, &move.At); err != nil {
			return nil, fmt.Errorf("scan move: %w", err)
		}
		move.Action = maze.Action(action)
		move.Mode = game.MoveMode(mode)
		moves = append(moves, move)
	}
	return moves, rows.Err()
}

// ExportRunCSV writes the moves of one run to a CSV file at path.
// Columns: step,row,col,action,reward,mode,timestamp.
func (r *Recorder) ExportRunCSV(ctx context.Context, runID uuid.UUID, path string) error {
	moves, err := r.Moves(ctx, runID)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"step", "row", "col", "action", "reward", "mode", "timestamp"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, move := range moves {
		record := []string{
			strconv.Itoa(move.Step),
			strconv.Itoa(move.To.Row),
			strconv.Itoa(move.To.Col),
			strconv.Itoa(int(move.Action)),
			strconv.FormatFloat(move.Reward, 'f', -1, 64),
			string(move.Mode),
			move.At.UTC().Format(time.RFC3339Nano),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// Backup copies the database file to dest after flushing the WAL.
func (r *Recorder) Backup(dest string) error {
	// Move WAL contents back into the main database file first.
	if _, err := r.db.Exec(`PRAGMA wal_checkpoint(TRUNCATE);`); err != nil {
		return fmt.Errorf("checkpoint: %w", err)
	}

	src, err := os.Open(r.path)
	if err != nil {
		return fmt.Errorf("open db file: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create backup: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return fmt.Errorf("copy db file: %w", err)
	}
	return out.Sync()
}

// scanRun decodes one runs row, tolerating the NULL ended_at of an
// unfinished run.
func scanRun(rows *sql.Rows) (game.RunRecord, error) {
	var run game.RunRecord
	var id, status string
	var endedAt sql.NullTime

	if err := rows.Scan(&id, &run.StartedAt, &endedAt, &run.Start.Row, &run.Start.Col, &status, &run.TotalReward); err != nil {
		return game.RunRecord{}, fmt.Errorf("scan run: %w", err)
	}

	parsedID, err := uuid.Parse(id)
	if err != nil {
		return game.RunRecord{}, fmt.Errorf("parse run id: %w", err)
	}
	run.ID = parsedID

	parsedStatus, err := game.ParseStatus(status)
	if err != nil {
		return game.RunRecord{}, err
	}
	run.Status = parsedStatus

	if endedAt.Valid {
		run.EndedAt = endedAt.Time
	}
	return run, nil
}
