// Package mongorec provides a MongoDB-backed game.Recorder.
package mongorec

import (
	"context"
	"errors"
	"time"

	"github.com/beka-birhanu/treasure-maze/game"
	"github.com/beka-birhanu/treasure-maze/game/maze"
	"github.com/beka-birhanu/treasure-maze/service/i"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicateRun is returned when a run with the same ID already exists.
var ErrDuplicateRun = errors.New("mongorec: run already recorded")

// Recorder persists runs and moves in two MongoDB collections.
type Recorder struct {
	runs  *mongo.Collection
	moves *mongo.Collection
}

var (
	_ game.Recorder = (*Recorder)(nil)
	_ i.RunReader   = (*Recorder)(nil)
)

// runDoc is the persisted shape of a run. Run IDs are stored as strings to
// stay independent of driver UUID codecs.
type runDoc struct {
	ID          string     `bson:"_id"`
	StartedAt   time.Time  `bson:"startedAt"`
	EndedAt     *time.Time `bson:"endedAt,omitempty"`
	StartRow    int        `bson:"startRow"`
	StartCol    int        `bson:"startCol"`
	Status      string     `bson:"status"`
	TotalReward float64    `bson:"totalReward"`
}

type moveDoc struct {
	RunID   string    `bson:"runId"`
	Step    int       `bson:"step"`
	FromRow int       `bson:"fromRow"`
	FromCol int       `bson:"fromCol"`
	ToRow   int       `bson:"toRow"`
	ToCol   int       `bson:"toCol"`
	Action  int       `bson:"action"`
	Reward  float64   `bson:"reward"`
	Mode    string    `bson:"mode"`
	At      time.Time `bson:"at"`
}

// New creates a Recorder over the given MongoDB client and database name,
// using the "runs" and "moves" collections.
func New(client *mongo.Client, dbName string) *Recorder {
	db := client.Database(dbName)
	return &Recorder{
		runs:  db.Collection("runs"),
		moves: db.Collection("moves"),
	}
}

// StartRun inserts a new run document.
func (r *Recorder) StartRun(ctx context.Context, run game.RunRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	doc := runDoc{
		ID:          run.ID.String(),
		StartedAt:   run.StartedAt,
		StartRow:    run.Start.Row,
		StartCol:    run.Start.Col,
		Status:      run.Status.String(),
		TotalReward: run.TotalReward,
	}
	if _, err := r.runs.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateRun
		}
		return errors.New("unexpected error: " + err.Error())
	}
	return nil
}

// RecordMove appends one move document to a run.
func (r *Recorder) RecordMove(ctx context.Context, runID uuid.UUID, move game.MoveRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	doc := moveDoc{
		RunID:   runID.String(),
		Step:    move.Step,
		FromRow: move.From.Row,
		FromCol: move.From.Col,
		ToRow:   move.To.Row,
		ToCol:   move.To.Col,
		Action:  int(move.Action),
		Reward:  move.Reward,
		Mode:    string(move.Mode),
		At:      move.At,
	}
	if _, err := r.moves.InsertOne(ctx, doc); err != nil {
		return errors.New("unexpected error: " + err.Error())
	}
	return nil
}

// EndRun finalizes a run document with its terminal status and total
// reward.
func (r *Recorder) EndRun(ctx context.Context, runID uuid.UUID, status game.Status, totalReward float64) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	filter := bson.M{"_id": runID.String()}
	update := bson.M{
		"$set": bson.M{
			"endedAt":     time.Now().UTC(),
			"status":      status.String(),
			"totalReward": totalReward,
		},
	}
	if _, err := r.runs.UpdateOne(ctx, filter, update); err != nil {
		return errors.New("unexpected error: " + err.Error())
	}
	return nil
}

// Runs returns recorded runs, most recent first. limit <= 0 returns all.
func (r *Recorder) Runs(ctx context.Context, limit int) ([]game.RunRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "startedAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cursor, err := r.runs.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.New("unexpected error: " + err.Error())
	}
	defer cursor.Close(ctx)

	var runs []game.RunRecord
	for cursor.Next(ctx) {
		var doc runDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, errors.New("unexpected error: " + err.Error())
		}
		run, err := doc.toRecord()
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, cursor.Err()
}

// Moves returns the moves of one run ordered by step.
func (r *Recorder) Moves(ctx context.Context, runID uuid.UUID) ([]game.MoveRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "step", Value: 1}})
	cursor, err := r.moves.Find(ctx, bson.M{"runId": runID.String()}, opts)
	if err != nil {
		return nil, errors.New("unexpected error: " + err.Error())
	}
	defer cursor.Close(ctx)

	var moves []game.MoveRecord
	for cursor.Next(ctx) {
		var doc moveDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, errors.New("unexpected error: " + err.Error())
		}
		moves = append(moves, game.MoveRecord{
			Step:   doc.Step,
			From:   maze.CellPosition{Row: doc.FromRow, Col: doc.FromCol},
			To:     maze.CellPosition{Row: doc.ToRow, Col: doc.ToCol},
			Action: maze.Action(doc.Action),
			Reward: doc.Reward,
			Mode:   game.MoveMode(doc.Mode),
			At:     doc.At,
		})
	}
	return moves, cursor.Err()
}

func (d runDoc) toRecord() (game.RunRecord, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return game.RunRecord{}, errors.New("unexpected error: " + err.Error())
	}
	status, err := game.ParseStatus(d.Status)
	if err != nil {
		return game.RunRecord{}, err
	}
	run := game.RunRecord{
		ID:          id,
		StartedAt:   d.StartedAt,
		Start:       maze.CellPosition{Row: d.StartRow, Col: d.StartCol},
		Status:      status,
		TotalReward: d.TotalReward,
	}
	if d.EndedAt != nil {
		run.EndedAt = *d.EndedAt
	}
	return run, nil
}
