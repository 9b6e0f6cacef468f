package game

import "fmt"

// Status is the lifecycle state of an episode.
type Status int8

// Episode statuses.
const (
	StatusNotOver Status = iota // episode still in progress
	StatusWin                   // agent reached the treasure
	StatusLose                  // reward floor or move budget exhausted
)

// Terminal reports whether the episode is over.
func (s Status) Terminal() bool {
	return s == StatusWin || s == StatusLose
}

// String returns the canonical lowercase name of the status.
func (s Status) String() string {
	switch s {
	case StatusNotOver:
		return "not_over"
	case StatusWin:
		return "win"
	case StatusLose:
		return "lose"
	default:
		return fmt.Sprintf("status(%d)", int8(s))
	}
}

// ParseStatus converts a canonical status name back to a Status. It is the
// inverse of String and is used by persistence adapters reading records.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "not_over":
		return StatusNotOver, nil
	case "win":
		return StatusWin, nil
	case "lose":
		return StatusLose, nil
	default:
		return 0, fmt.Errorf("game: unknown status %q", s)
	}
}
