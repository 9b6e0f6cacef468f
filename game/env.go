/*
Package game implements the treasure-maze episode state machine.

An Environment owns the position, visited history and cumulative reward of
exactly one agent walking a shared immutable maze. Moves are applied with
Act, which never fails: illegal moves are a reward consequence, not an
error, so exploration loops need no fault handling. An optional Recorder
receives run and move records; its absence or failure never alters episode
semantics.

An Environment is not safe for concurrent use. Run parallel episodes on
separate Environment instances sharing one maze.
*/
package game

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/beka-birhanu/treasure-maze/game/maze"
	"github.com/google/uuid"
)

// Observation cell markers. An observation is a pure function of the maze
// layout plus episode state.
const (
	BlockedMark = 0.0
	FreeMark    = 1.0
	VisitedMark = 0.8
	PirateMark  = 0.5
)

// ErrNilMaze is returned when constructing an environment without a maze.
var ErrNilMaze = errors.New("game: maze is required")

// Observation is a snapshot of the maze with visited cells and the agent
// marked. Each call to Observe allocates a fresh copy.
type Observation [][]float64

// Environment is the single-agent episode state machine over an immutable
// maze.
type Environment struct {
	maze      *maze.TreasureMaze
	cfg       RewardConfig
	recorder  Recorder // nil when logging is disabled
	minReward float64

	pos         maze.CellPosition
	visited     map[maze.CellPosition]struct{}
	visitOrder  []maze.CellPosition
	totalReward float64
	status      Status
	moves       int

	runID       uuid.UUID
	runStart    time.Time
	stepCounter int
	runActive   bool
}

// NewEnvironment validates the reward config and returns a reset
// environment on the given maze. recorder may be nil.
func NewEnvironment(m *maze.TreasureMaze, cfg RewardConfig, recorder Recorder) (*Environment, error) {
	if m == nil {
		return nil, ErrNilMaze
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	env := &Environment{
		maze:      m,
		cfg:       cfg,
		recorder:  recorder,
		minReward: cfg.FloorFactor * float64(m.Size()),
	}
	env.Reset()
	return env, nil
}

// Reset restores the episode to its initial state and returns the initial
// observation. The maze and its adjacency are untouched.
func (e *Environment) Reset() Observation {
	e.pos = e.maze.Start()
	e.visited = map[maze.CellPosition]struct{}{e.pos: {}}
	e.visitOrder = []maze.CellPosition{e.pos}
	e.totalReward = 0
	e.status = StatusNotOver
	e.moves = 0
	return e.Observe()
}

// Act applies one action and returns the resulting observation, the reward
// for this single step and the episode status. Acting on a finished
// episode is a no-op with zero reward.
func (e *Environment) Act(action maze.Action) (Observation, float64, Status) {
	if e.status.Terminal() {
		return e.Observe(), 0, e.status
	}

	from := e.pos
	mode := ModeInvalid
	next := e.pos

	neighbors := e.maze.Neighbors(e.pos)
	if len(neighbors) == 0 {
		mode = ModeBlocked
	} else {
		for _, nbr := range neighbors {
			if nbr.Action == action {
				mode = ModeValid
				next = nbr.Pos
				break
			}
		}
	}

	revisit := false
	if mode == ModeValid {
		e.pos = next
		if _, seen := e.visited[next]; seen {
			revisit = true
		} else {
			e.visited[next] = struct{}{}
			e.visitOrder = append(e.visitOrder, next)
		}
	}
	e.moves++

	reward := e.stepReward(mode, revisit)
	e.totalReward += reward
	e.status = e.recomputeStatus(mode)

	e.recordMove(MoveRecord{
		From:   from,
		To:     e.pos,
		Action: action,
		Reward: reward,
		Mode:   mode,
		At:     time.Now().UTC(),
	})

	return e.Observe(), reward, e.status
}

// stepReward applies the documented reward rules in order: goal, revisit,
// invalid, fresh step. A cell with no legal neighbor yields one past the
// loss floor, ending the episode immediately.
func (e *Environment) stepReward(mode MoveMode, revisit bool) float64 {
	switch {
	case mode == ModeBlocked:
		return e.minReward - 1
	case mode == ModeInvalid:
		return e.cfg.InvalidPenalty
	case e.pos == e.maze.Target():
		return e.cfg.GoalReward
	case revisit:
		return e.cfg.RevisitPenalty
	default:
		return e.cfg.StepPenalty
	}
}

func (e *Environment) recomputeStatus(mode MoveMode) Status {
	if mode == ModeValid && e.pos == e.maze.Target() {
		return StatusWin
	}
	if e.totalReward < e.minReward {
		return StatusLose
	}
	if e.cfg.MoveBudget > 0 && e.moves >= e.cfg.MoveBudget {
		return StatusLose
	}
	return StatusNotOver
}

// Observe returns a fresh snapshot of the maze with visited cells and the
// agent position marked. It never mutates episode state.
func (e *Environment) Observe() Observation {
	canvas := make(Observation, e.maze.Rows())
	for r := range canvas {
		canvas[r] = make([]float64, e.maze.Cols())
		for c := range canvas[r] {
			if e.maze.IsFree(maze.CellPosition{Row: r, Col: c}) {
				canvas[r][c] = FreeMark
			} else {
				canvas[r][c] = BlockedMark
			}
		}
	}
	for _, pos := range e.visitOrder {
		canvas[pos.Row][pos.Col] = VisitedMark
	}
	canvas[e.pos.Row][e.pos.Col] = PirateMark
	return canvas
}

// SolveShortestPath runs the BFS solver from the agent's current position
// to the treasure. It reports false when no path exists.
func (e *Environment) SolveShortestPath() ([]maze.CellPosition, bool) {
	return e.maze.ShortestPath(e.pos)
}

// StartRun opens a new run bracket and returns its identifier. The run
// record is handed to the recorder best-effort; bookkeeping only, no
// effect on maze semantics.
func (e *Environment) StartRun(ctx context.Context) uuid.UUID {
	e.runID = uuid.New()
	e.runStart = time.Now().UTC()
	e.stepCounter = 0
	e.runActive = true

	if e.recorder != nil {
		run := RunRecord{
			ID:        e.runID,
			StartedAt: e.runStart,
			Start:     e.pos,
			Status:    e.status,
		}
		if err := e.recorder.StartRun(ctx, run); err != nil {
			log.Printf("[ENV] [ERROR] recording run start: %v", err)
		}
	}
	return e.runID
}

// EndRun closes the active run bracket, finalizing the run record with the
// current status and total reward.
func (e *Environment) EndRun(ctx context.Context) {
	if !e.runActive {
		return
	}
	e.runActive = false

	if e.recorder != nil {
		if err := e.recorder.EndRun(ctx, e.runID, e.status, e.totalReward); err != nil {
			log.Printf("[ENV] [ERROR] recording run end: %v", err)
		}
	}
}

// recordMove emits one move record when a run bracket is active. Failures
// are logged and isolated from episode progression.
func (e *Environment) recordMove(move MoveRecord) {
	if e.recorder == nil || !e.runActive {
		return
	}
	e.stepCounter++
	move.Step = e.stepCounter
	if err := e.recorder.RecordMove(context.Background(), e.runID, move); err != nil {
		log.Printf("[ENV] [ERROR] recording move %d: %v", move.Step, err)
	}
}

// Position returns the agent's current cell.
func (e *Environment) Position() maze.CellPosition { return e.pos }

// Status returns the current episode status.
func (e *Environment) Status() Status { return e.status }

// TotalReward returns the cumulative reward of the episode.
func (e *Environment) TotalReward() float64 { return e.totalReward }

// Moves returns the number of act calls since the last reset.
func (e *Environment) Moves() int { return e.moves }

// MinReward returns the configured loss floor for this maze.
func (e *Environment) MinReward() float64 { return e.minReward }

// Visited returns the visited cells in insertion order.
func (e *Environment) Visited() []maze.CellPosition {
	out := make([]maze.CellPosition, len(e.visitOrder))
	copy(out, e.visitOrder)
	return out
}

// Maze returns the shared immutable maze.
func (e *Environment) Maze() *maze.TreasureMaze { return e.maze }
