package solveapi

import "github.com/beka-birhanu/treasure-maze/game/maze"

// SolveRequest carries a maze layout and the cell to solve from. The
// target is always the bottom-right cell.
type SolveRequest struct {
	Layout   [][]float64 `json:"layout" binding:"required"`
	StartRow int         `json:"start_row"`
	StartCol int         `json:"start_col"`
}

// SolveResponse carries the optimal path as row/col pairs plus the action
// sequence that walks it.
type SolveResponse struct {
	Path    [][2]int `json:"path"`
	Actions []int    `json:"actions"`
	Length  int      `json:"length"` // number of moves, not cells
}

func newSolveResponse(path []maze.CellPosition, actions []maze.Action) SolveResponse {
	cells := make([][2]int, 0, len(path))
	for _, pos := range path {
		cells = append(cells, [2]int{pos.Row, pos.Col})
	}
	acts := make([]int, 0, len(actions))
	for _, a := range actions {
		acts = append(acts, int(a))
	}
	return SolveResponse{Path: cells, Actions: acts, Length: len(acts)}
}
