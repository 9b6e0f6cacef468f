package game

import (
	"context"
	"errors"
	"testing"

	"github.com/beka-birhanu/treasure-maze/game/maze"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// crossLayout:
//
//	S . #
//	. . .
//	# . T
var crossLayout = [][]float64{
	{1, 1, 0},
	{1, 1, 1},
	{0, 1, 1},
}

func newTestEnv(t *testing.T, cfg RewardConfig, rec Recorder) *Environment {
	t.Helper()
	m, err := maze.New(crossLayout, maze.CellPosition{Row: 0, Col: 0})
	require.NoError(t, err)
	env, err := NewEnvironment(m, cfg, rec)
	require.NoError(t, err)
	return env
}

func TestNewEnvironment(t *testing.T) {
	t.Run("nil maze", func(t *testing.T) {
		_, err := NewEnvironment(nil, DefaultRewardConfig(), nil)
		assert.ErrorIs(t, err, ErrNilMaze)
	})

	t.Run("invalid config", func(t *testing.T) {
		m, err := maze.New(crossLayout, maze.CellPosition{Row: 0, Col: 0})
		require.NoError(t, err)

		cfg := DefaultRewardConfig()
		cfg.GoalReward = -1
		_, err = NewEnvironment(m, cfg, nil)
		assert.ErrorIs(t, err, ErrInvalidRewardConfig)
	})

	t.Run("initial state", func(t *testing.T) {
		env := newTestEnv(t, DefaultRewardConfig(), nil)
		assert.Equal(t, maze.CellPosition{Row: 0, Col: 0}, env.Position())
		assert.Equal(t, StatusNotOver, env.Status())
		assert.Zero(t, env.TotalReward())
		assert.Equal(t, []maze.CellPosition{{Row: 0, Col: 0}}, env.Visited())
		assert.InDelta(t, -4.5, env.MinReward(), 1e-9, "floor is -0.5 per cell on 9 cells")
	})
}

func TestRewardConfigValidate(t *testing.T) {
	valid := DefaultRewardConfig()
	require.NoError(t, valid.Validate())

	cases := map[string]func(*RewardConfig){
		"zero goal reward":          func(c *RewardConfig) { c.GoalReward = 0 },
		"positive step penalty":     func(c *RewardConfig) { c.StepPenalty = 0.04 },
		"zero revisit penalty":      func(c *RewardConfig) { c.RevisitPenalty = 0 },
		"positive invalid penalty":  func(c *RewardConfig) { c.InvalidPenalty = 0.75 },
		"non-negative floor factor": func(c *RewardConfig) { c.FloorFactor = 0 },
		"negative move budget":      func(c *RewardConfig) { c.MoveBudget = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultRewardConfig()
			mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidRewardConfig)
		})
	}
}

func TestActWalkToTreasure(t *testing.T) {
	env := newTestEnv(t, DefaultRewardConfig(), nil)

	// S -> (0,1) -> (1,1) -> (2,1) -> T
	steps := []struct {
		action maze.Action
		pos    maze.CellPosition
		reward float64
		status Status
	}{
		{maze.Right, maze.CellPosition{Row: 0, Col: 1}, -0.04, StatusNotOver},
		{maze.Down, maze.CellPosition{Row: 1, Col: 1}, -0.04, StatusNotOver},
		{maze.Down, maze.CellPosition{Row: 2, Col: 1}, -0.04, StatusNotOver},
		{maze.Right, maze.CellPosition{Row: 2, Col: 2}, 1.0, StatusWin},
	}

	for _, step := range steps {
		_, reward, status := env.Act(step.action)
		assert.Equal(t, step.pos, env.Position())
		assert.InDelta(t, step.reward, reward, 1e-9)
		assert.Equal(t, step.status, status)
	}

	assert.Equal(t, env.Maze().Target(), env.Position(), "win status implies agent on target")
	assert.InDelta(t, 1.0-3*0.04, env.TotalReward(), 1e-9)
}

func TestActInvalidMove(t *testing.T) {
	env := newTestEnv(t, DefaultRewardConfig(), nil)

	_, _, _ = env.Act(maze.Right) // to (0,1)

	// (0,2) is blocked: the agent must stay put with the invalid penalty.
	_, reward, status := env.Act(maze.Right)
	assert.Equal(t, maze.CellPosition{Row: 0, Col: 1}, env.Position())
	assert.InDelta(t, -0.75, reward, 1e-9)
	assert.Equal(t, StatusNotOver, status)

	// Off-grid is equally invalid.
	_, reward, _ = env.Act(maze.Up)
	assert.Equal(t, maze.CellPosition{Row: 0, Col: 1}, env.Position())
	assert.InDelta(t, -0.75, reward, 1e-9)
}

func TestActRevisitPenalty(t *testing.T) {
	env := newTestEnv(t, DefaultRewardConfig(), nil)

	_, _, _ = env.Act(maze.Right)
	_, reward, _ := env.Act(maze.Left) // back onto the visited start
	assert.Equal(t, maze.CellPosition{Row: 0, Col: 0}, env.Position())
	assert.InDelta(t, -0.25, reward, 1e-9)
	assert.Equal(t, []maze.CellPosition{{Row: 0, Col: 0}, {Row: 0, Col: 1}}, env.Visited(),
		"revisits do not grow the visited history")
}

func TestLoseOnRewardFloor(t *testing.T) {
	env := newTestEnv(t, DefaultRewardConfig(), nil)

	// Left is always invalid from the start cell; -0.75 a try against a
	// -4.5 floor loses on the seventh attempt.
	var status Status
	for i := 0; i < 6; i++ {
		_, _, status = env.Act(maze.Left)
		assert.Equal(t, StatusNotOver, status)
	}
	_, _, status = env.Act(maze.Left)
	assert.Equal(t, StatusLose, status)
	assert.Less(t, env.TotalReward(), env.MinReward())
}

func TestLoseOnMoveBudget(t *testing.T) {
	cfg := DefaultRewardConfig()
	cfg.MoveBudget = 2
	env := newTestEnv(t, cfg, nil)

	_, _, status := env.Act(maze.Right)
	assert.Equal(t, StatusNotOver, status)
	_, _, status = env.Act(maze.Left)
	assert.Equal(t, StatusLose, status)
}

func TestActAfterTerminalIsNoOp(t *testing.T) {
	cfg := DefaultRewardConfig()
	cfg.MoveBudget = 1
	env := newTestEnv(t, cfg, nil)

	_, _, status := env.Act(maze.Right)
	require.Equal(t, StatusLose, status)

	pos := env.Position()
	total := env.TotalReward()
	_, reward, status := env.Act(maze.Down)
	assert.Zero(t, reward)
	assert.Equal(t, StatusLose, status)
	assert.Equal(t, pos, env.Position())
	assert.Equal(t, total, env.TotalReward())
}

func TestObserve(t *testing.T) {
	env := newTestEnv(t, DefaultRewardConfig(), nil)

	t.Run("initial snapshot", func(t *testing.T) {
		obs := env.Observe()
		assert.Equal(t, Observation{
			{PirateMark, FreeMark, BlockedMark},
			{FreeMark, FreeMark, FreeMark},
			{BlockedMark, FreeMark, FreeMark},
		}, obs)
	})

	t.Run("visited trail and agent mark", func(t *testing.T) {
		_, _, _ = env.Act(maze.Right)
		obs := env.Observe()
		assert.Equal(t, VisitedMark, obs[0][0])
		assert.Equal(t, PirateMark, obs[0][1])
	})

	t.Run("snapshots are independent copies", func(t *testing.T) {
		obs := env.Observe()
		obs[1][1] = 42
		assert.NotEqual(t, 42.0, env.Observe()[1][1])
	})
}

func TestResetIdempotence(t *testing.T) {
	env := newTestEnv(t, DefaultRewardConfig(), nil)
	initial := env.Observe()

	_, _, _ = env.Act(maze.Right)
	_, _, _ = env.Act(maze.Down)
	_, _, _ = env.Act(maze.Left)

	obs := env.Reset()
	assert.Equal(t, initial, obs)
	assert.Equal(t, StatusNotOver, env.Status())
	assert.Zero(t, env.TotalReward())
	assert.Equal(t, env.Maze().Start(), env.Position())
}

func TestSolveShortestPathUnaffectedByEpisode(t *testing.T) {
	env := newTestEnv(t, DefaultRewardConfig(), nil)

	before, ok := env.SolveShortestPath()
	require.True(t, ok)
	require.Len(t, before, 5)

	_, _, _ = env.Act(maze.Right)
	_, _, _ = env.Act(maze.Right) // invalid
	_, _, _ = env.Act(maze.Down)

	env.Reset()
	after, ok := env.SolveShortestPath()
	require.True(t, ok)
	assert.Equal(t, before, after, "acting must not mutate the maze or its adjacency")
}

// stubRecorder captures everything the environment emits.
type stubRecorder struct {
	runs  []RunRecord
	moves []MoveRecord
	ends  []RunRecord
}

func (s *stubRecorder) StartRun(_ context.Context, run RunRecord) error {
	s.runs = append(s.runs, run)
	return nil
}

func (s *stubRecorder) RecordMove(_ context.Context, runID uuid.UUID, move MoveRecord) error {
	s.moves = append(s.moves, move)
	return nil
}

func (s *stubRecorder) EndRun(_ context.Context, runID uuid.UUID, status Status, totalReward float64) error {
	s.ends = append(s.ends, RunRecord{ID: runID, Status: status, TotalReward: totalReward})
	return nil
}

// failingRecorder errors on every call.
type failingRecorder struct{}

func (failingRecorder) StartRun(context.Context, RunRecord) error { return errors.New("down") }
func (failingRecorder) RecordMove(context.Context, uuid.UUID, MoveRecord) error {
	return errors.New("down")
}
func (failingRecorder) EndRun(context.Context, uuid.UUID, Status, float64) error {
	return errors.New("down")
}

func TestRunRecording(t *testing.T) {
	ctx := context.Background()

	t.Run("records run brackets and moves", func(t *testing.T) {
		rec := &stubRecorder{}
		env := newTestEnv(t, DefaultRewardConfig(), rec)

		runID := env.StartRun(ctx)
		_, _, _ = env.Act(maze.Right)
		_, _, _ = env.Act(maze.Right) // invalid
		_, _, _ = env.Act(maze.Down)
		env.EndRun(ctx)

		require.Len(t, rec.runs, 1)
		assert.Equal(t, runID, rec.runs[0].ID)
		assert.Equal(t, env.Maze().Start(), rec.runs[0].Start)

		require.Len(t, rec.moves, 3)
		for idx, move := range rec.moves {
			assert.Equal(t, idx+1, move.Step)
		}
		assert.Equal(t, ModeValid, rec.moves[0].Mode)
		assert.Equal(t, ModeInvalid, rec.moves[1].Mode)
		assert.Equal(t, maze.CellPosition{Row: 0, Col: 1}, rec.moves[1].From)
		assert.Equal(t, rec.moves[1].From, rec.moves[1].To, "invalid moves go nowhere")

		require.Len(t, rec.ends, 1)
		assert.Equal(t, runID, rec.ends[0].ID)
		assert.InDelta(t, env.TotalReward(), rec.ends[0].TotalReward, 1e-9)
	})

	t.Run("no moves outside a run bracket", func(t *testing.T) {
		rec := &stubRecorder{}
		env := newTestEnv(t, DefaultRewardConfig(), rec)

		_, _, _ = env.Act(maze.Right)
		assert.Empty(t, rec.moves)
	})

	t.Run("recorder failure never alters episode state", func(t *testing.T) {
		plain := newTestEnv(t, DefaultRewardConfig(), nil)
		failing := newTestEnv(t, DefaultRewardConfig(), failingRecorder{})
		failing.StartRun(ctx)

		actions := []maze.Action{maze.Right, maze.Right, maze.Down, maze.Down, maze.Right}
		for _, action := range actions {
			_, wantReward, wantStatus := plain.Act(action)
			_, reward, status := failing.Act(action)
			assert.InDelta(t, wantReward, reward, 1e-9)
			assert.Equal(t, wantStatus, status)
		}
		failing.EndRun(ctx)
		assert.Equal(t, plain.Position(), failing.Position())
		assert.InDelta(t, plain.TotalReward(), failing.TotalReward(), 1e-9)
	})
}

func TestStatus(t *testing.T) {
	assert.Equal(t, "not_over", StatusNotOver.String())
	assert.Equal(t, "win", StatusWin.String())
	assert.Equal(t, "lose", StatusLose.String())
	assert.False(t, StatusNotOver.Terminal())
	assert.True(t, StatusWin.Terminal())
	assert.True(t, StatusLose.Terminal())

	for _, s := range []Status{StatusNotOver, StatusWin, StatusLose} {
		parsed, err := ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
	_, err := ParseStatus("draw")
	assert.Error(t, err)
}
