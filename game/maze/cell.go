package maze

import "fmt"

// CellPosition identifies a single cell by its row and column.
type CellPosition struct {
	Row int
	Col int
}

// Action is one of the four axis-aligned moves an agent can attempt.
// The numeric encoding is fixed and matches the adjacency neighbor order.
type Action int

// Movement actions.
const (
	Left Action = iota
	Up
	Right
	Down
)

// actionDeltas maps every action to its row/col displacement, indexed by the
// action value itself so that iteration order is LEFT, UP, RIGHT, DOWN.
var actionDeltas = [...]CellPosition{
	Left:  {Row: 0, Col: -1},
	Up:    {Row: -1, Col: 0},
	Right: {Row: 0, Col: 1},
	Down:  {Row: 1, Col: 0},
}

// Valid reports whether a is one of the four known actions.
func (a Action) Valid() bool {
	return a >= Left && a <= Down
}

// Delta returns the row/col displacement of the action.
func (a Action) Delta() CellPosition {
	return actionDeltas[a]
}

// String returns the lowercase name of the action.
func (a Action) String() string {
	switch a {
	case Left:
		return "left"
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Neighbor pairs an adjacent free cell with the action that reaches it.
type Neighbor struct {
	Pos    CellPosition
	Action Action
}
