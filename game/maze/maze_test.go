package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// crossLayout is the 3x3 grid used across the package tests:
//
//	S . #
//	. . .
//	# . T
var crossLayout = [][]float64{
	{1, 1, 0},
	{1, 1, 1},
	{0, 1, 1},
}

func TestNewValidation(t *testing.T) {
	start := CellPosition{Row: 0, Col: 0}

	t.Run("empty layout", func(t *testing.T) {
		_, err := New(nil, start)
		assert.ErrorIs(t, err, ErrMalformedGrid)

		_, err = New([][]float64{}, start)
		assert.ErrorIs(t, err, ErrMalformedGrid)

		_, err = New([][]float64{{}}, start)
		assert.ErrorIs(t, err, ErrMalformedGrid)
	})

	t.Run("ragged layout", func(t *testing.T) {
		_, err := New([][]float64{{1, 1}, {1}}, start)
		assert.ErrorIs(t, err, ErrMalformedGrid)
	})

	t.Run("blocked start", func(t *testing.T) {
		_, err := New([][]float64{{1, 0}, {1, 1}}, CellPosition{Row: 0, Col: 1})
		assert.ErrorIs(t, err, ErrBlockedStart)
	})

	t.Run("out of bounds start", func(t *testing.T) {
		_, err := New([][]float64{{1, 1}, {1, 1}}, CellPosition{Row: 5, Col: 0})
		assert.ErrorIs(t, err, ErrBlockedStart)
	})

	t.Run("start on target", func(t *testing.T) {
		_, err := New([][]float64{{1, 1}, {1, 1}}, CellPosition{Row: 1, Col: 1})
		assert.ErrorIs(t, err, ErrStartOnTarget)
	})

	t.Run("blocked target", func(t *testing.T) {
		_, err := New([][]float64{{1, 1}, {1, 0}}, start)
		assert.ErrorIs(t, err, ErrBlockedTarget)
	})

	t.Run("unreachable target", func(t *testing.T) {
		_, err := New([][]float64{{1, 0}, {0, 1}}, start)
		assert.ErrorIs(t, err, ErrUnreachableTarget)
	})

	t.Run("valid layout", func(t *testing.T) {
		m, err := New(crossLayout, start)
		require.NoError(t, err)
		assert.Equal(t, 3, m.Rows())
		assert.Equal(t, 3, m.Cols())
		assert.Equal(t, 9, m.Size())
		assert.Equal(t, start, m.Start())
		assert.Equal(t, CellPosition{Row: 2, Col: 2}, m.Target())
	})
}

func TestCellQueries(t *testing.T) {
	m, err := New(crossLayout, CellPosition{Row: 0, Col: 0})
	require.NoError(t, err)

	assert.True(t, m.IsFree(CellPosition{Row: 0, Col: 0}))
	assert.False(t, m.IsFree(CellPosition{Row: 0, Col: 2}))
	assert.False(t, m.IsFree(CellPosition{Row: -1, Col: 0}))
	assert.True(t, m.InBound(2, 2))
	assert.False(t, m.InBound(3, 0))
}

func TestAdjacency(t *testing.T) {
	m, err := New(crossLayout, CellPosition{Row: 0, Col: 0})
	require.NoError(t, err)

	t.Run("neighbor order is left, up, right, down", func(t *testing.T) {
		center := CellPosition{Row: 1, Col: 1}
		neighbors := m.Neighbors(center)
		require.Len(t, neighbors, 4)
		assert.Equal(t, []Neighbor{
			{Pos: CellPosition{Row: 1, Col: 0}, Action: Left},
			{Pos: CellPosition{Row: 0, Col: 1}, Action: Up},
			{Pos: CellPosition{Row: 1, Col: 2}, Action: Right},
			{Pos: CellPosition{Row: 2, Col: 1}, Action: Down},
		}, neighbors)
	})

	t.Run("blocked neighbors are excluded", func(t *testing.T) {
		corner := CellPosition{Row: 0, Col: 0}
		neighbors := m.Neighbors(corner)
		require.Len(t, neighbors, 2)
		assert.Equal(t, Right, neighbors[0].Action)
		assert.Equal(t, Down, neighbors[1].Action)
	})

	t.Run("symmetry", func(t *testing.T) {
		for r := 0; r < m.Rows(); r++ {
			for c := 0; c < m.Cols(); c++ {
				pos := CellPosition{Row: r, Col: c}
				if !m.IsFree(pos) {
					continue
				}
				for _, nbr := range m.Neighbors(pos) {
					assert.True(t, containsNeighbor(m.Neighbors(nbr.Pos), pos),
						"%v is a neighbor of %v but not vice versa", nbr.Pos, pos)
				}
			}
		}
	})

	t.Run("valid actions follow action order", func(t *testing.T) {
		actions := m.ValidActions(CellPosition{Row: 1, Col: 1})
		assert.Equal(t, []Action{Left, Up, Right, Down}, actions)

		actions = m.ValidActions(CellPosition{Row: 0, Col: 0})
		assert.Equal(t, []Action{Right, Down}, actions)
	})
}

func TestActions(t *testing.T) {
	assert.True(t, Left.Valid())
	assert.True(t, Down.Valid())
	assert.False(t, Action(-1).Valid())
	assert.False(t, Action(4).Valid())

	assert.Equal(t, CellPosition{Row: 0, Col: -1}, Left.Delta())
	assert.Equal(t, CellPosition{Row: -1, Col: 0}, Up.Delta())
	assert.Equal(t, CellPosition{Row: 0, Col: 1}, Right.Delta())
	assert.Equal(t, CellPosition{Row: 1, Col: 0}, Down.Delta())

	assert.Equal(t, "left", Left.String())
	assert.Equal(t, "down", Down.String())
}

func TestString(t *testing.T) {
	m, err := New(crossLayout, CellPosition{Row: 0, Col: 0})
	require.NoError(t, err)
	assert.Equal(t, "S.#\n...\n#.T\n", m.String())
}

func containsNeighbor(neighbors []Neighbor, pos CellPosition) bool {
	for _, nbr := range neighbors {
		if nbr.Pos == pos {
			return true
		}
	}
	return false
}
