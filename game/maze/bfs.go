package maze

import "errors"

// ErrNonAdjacentPath is returned by ActionsFromPath when two consecutive
// path cells are not grid neighbors.
var ErrNonAdjacentPath = errors.New("maze: path contains non-adjacent steps")

// ShortestPath runs a breadth-first search over the precomputed adjacency
// from the given cell to the target. It returns the minimum-hop path
// including both endpoints, or false when the cell is blocked, out of
// bounds, or disconnected from the target. The fixed neighbor order makes
// the returned path deterministic for a given maze.
func (m *TreasureMaze) ShortestPath(from CellPosition) ([]CellPosition, bool) {
	if !m.IsFree(from) {
		return nil, false
	}
	if from == m.target {
		return []CellPosition{from}, true
	}

	queue := []CellPosition{from}
	parents := map[CellPosition]CellPosition{from: from}

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		for _, nbr := range m.adjacency[node] {
			if _, seen := parents[nbr.Pos]; seen {
				continue
			}
			parents[nbr.Pos] = node
			if nbr.Pos == m.target {
				return reconstruct(parents, from, nbr.Pos), true
			}
			queue = append(queue, nbr.Pos)
		}
	}
	return nil, false
}

// reconstruct walks the parent links back from the target and reverses
// them into a start-to-target path.
func reconstruct(parents map[CellPosition]CellPosition, from, target CellPosition) []CellPosition {
	path := []CellPosition{target}
	for cur := parents[target]; ; cur = parents[cur] {
		path = append(path, cur)
		if cur == from {
			break
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// ActionsFromPath converts a cell path into the action sequence that walks
// it. A path with fewer than two cells yields no actions.
func ActionsFromPath(path []CellPosition) ([]Action, error) {
	if len(path) < 2 {
		return nil, nil
	}
	actions := make([]Action, 0, len(path)-1)
	for i := 1; i < len(path); i++ {
		delta := CellPosition{
			Row: path[i].Row - path[i-1].Row,
			Col: path[i].Col - path[i-1].Col,
		}
		action, ok := deltaToAction(delta)
		if !ok {
			return nil, ErrNonAdjacentPath
		}
		actions = append(actions, action)
	}
	return actions, nil
}

func deltaToAction(delta CellPosition) (Action, bool) {
	for action, d := range actionDeltas {
		if d == delta {
			return Action(action), true
		}
	}
	return 0, false
}
