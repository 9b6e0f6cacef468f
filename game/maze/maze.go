/*
Package maze models an immutable rectangular treasure maze.

A maze is built once from a caller-supplied layout of free and blocked
cells plus a start position; the treasure always sits on the bottom-right
cell. Construction validates the layout, precomputes the adjacency of every
free cell, and proves the treasure is reachable from the start with a
breadth-first search. After New succeeds the maze never changes, so it may
be shared read-only between any number of environments.
*/
package maze

import (
	"errors"
	"strings"
)

// FreeMarker is the layout value identifying a free cell. Any other value
// marks the cell as blocked.
const FreeMarker = 1.0

// Construction-time validation errors.
var (
	ErrMalformedGrid     = errors.New("maze: layout must be a non-empty rectangular grid")
	ErrBlockedStart      = errors.New("maze: start must be an in-bounds free cell")
	ErrStartOnTarget     = errors.New("maze: start cannot sit on the target cell")
	ErrBlockedTarget     = errors.New("maze: target cell cannot be blocked")
	ErrUnreachableTarget = errors.New("maze: target is unreachable from the start")
)

// TreasureMaze is a validated, immutable maze layout with its precomputed
// adjacency. The target cell is always the bottom-right corner.
type TreasureMaze struct {
	rows      int
	cols      int
	free      [][]bool
	start     CellPosition
	target    CellPosition
	adjacency map[CellPosition][]Neighbor
}

// New validates the layout and builds the maze. Cells equal to FreeMarker
// are free, everything else is blocked. It fails when the layout is not a
// non-empty rectangle, when start or target sit on a blocked cell, when
// start and target coincide, or when no path connects them.
func New(layout [][]float64, start CellPosition) (*TreasureMaze, error) {
	rows := len(layout)
	if rows == 0 || len(layout[0]) == 0 {
		return nil, ErrMalformedGrid
	}
	cols := len(layout[0])

	free := make([][]bool, rows)
	for r, row := range layout {
		if len(row) != cols {
			return nil, ErrMalformedGrid
		}
		free[r] = make([]bool, cols)
		for c, marker := range row {
			free[r][c] = marker == FreeMarker
		}
	}

	m := &TreasureMaze{
		rows:   rows,
		cols:   cols,
		free:   free,
		start:  start,
		target: CellPosition{Row: rows - 1, Col: cols - 1},
	}

	if !m.IsFree(m.target) {
		return nil, ErrBlockedTarget
	}
	if !m.InBound(start.Row, start.Col) || !m.IsFree(start) {
		return nil, ErrBlockedStart
	}
	if start == m.target {
		return nil, ErrStartOnTarget
	}

	m.buildAdjacency()

	if _, ok := m.ShortestPath(start); !ok {
		return nil, ErrUnreachableTarget
	}
	return m, nil
}

// buildAdjacency precomputes, in one pass over all free cells, the free
// neighbors of every free cell in fixed LEFT, UP, RIGHT, DOWN order. Move
// legality is answered from this map afterwards instead of rescanning the
// raw grid.
func (m *TreasureMaze) buildAdjacency() {
	m.adjacency = make(map[CellPosition][]Neighbor)
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			pos := CellPosition{Row: r, Col: c}
			if !m.free[r][c] {
				continue
			}
			var neighbors []Neighbor
			for action, delta := range actionDeltas {
				nbr := CellPosition{Row: r + delta.Row, Col: c + delta.Col}
				if m.InBound(nbr.Row, nbr.Col) && m.IsFree(nbr) {
					neighbors = append(neighbors, Neighbor{Pos: nbr, Action: Action(action)})
				}
			}
			m.adjacency[pos] = neighbors
		}
	}
}

// Rows returns the number of rows.
func (m *TreasureMaze) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *TreasureMaze) Cols() int { return m.cols }

// Size returns the total number of cells.
func (m *TreasureMaze) Size() int { return m.rows * m.cols }

// Start returns the validated start position.
func (m *TreasureMaze) Start() CellPosition { return m.start }

// Target returns the treasure position, the bottom-right cell.
func (m *TreasureMaze) Target() CellPosition { return m.target }

// InBound reports whether the row/col pair lies inside the grid.
func (m *TreasureMaze) InBound(row, col int) bool {
	return row >= 0 && row < m.rows && col >= 0 && col < m.cols
}

// IsFree reports whether the cell is inside the grid and free.
func (m *TreasureMaze) IsFree(pos CellPosition) bool {
	return m.InBound(pos.Row, pos.Col) && m.free[pos.Row][pos.Col]
}

// Neighbors returns the precomputed free neighbors of pos in LEFT, UP,
// RIGHT, DOWN order. The returned slice is shared; callers must not
// modify it.
func (m *TreasureMaze) Neighbors(pos CellPosition) []Neighbor {
	return m.adjacency[pos]
}

// ValidActions returns the actions leading to a free cell from pos,
// ordered by action value.
func (m *TreasureMaze) ValidActions(pos CellPosition) []Action {
	neighbors := m.adjacency[pos]
	actions := make([]Action, 0, len(neighbors))
	for _, nbr := range neighbors {
		actions = append(actions, nbr.Action)
	}
	return actions
}

// String renders the maze layout: '#' blocked, '.' free, 'S' start and
// 'T' target.
func (m *TreasureMaze) String() string {
	var b strings.Builder
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			pos := CellPosition{Row: r, Col: c}
			switch {
			case pos == m.start:
				b.WriteByte('S')
			case pos == m.target:
				b.WriteByte('T')
			case m.free[r][c]:
				b.WriteByte('.')
			default:
				b.WriteByte('#')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
