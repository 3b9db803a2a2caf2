package status

import "strings"

// State is a detector's resolved runtime state.
type State string

// The fixed set of detector states. A state string the service reports that
// is not one of the named states resolves to StateUnknown, which is a valid
// result that simply never matches a state filter.
const (
	StateRunning  State = "RUNNING"
	StateDisabled State = "DISABLED"
	StateFailed   State = "FAILED"
	StateUnknown  State = "UNKNOWN"
)

// ParseState maps a service-reported state string to a State. Matching is
// case-insensitive; unrecognized values map to StateUnknown.
func ParseState(s string) State {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(StateRunning):
		return StateRunning
	case string(StateDisabled):
		return StateDisabled
	case string(StateFailed):
		return StateFailed
	default:
		return StateUnknown
	}
}

// String returns the canonical state name.
func (s State) String() string {
	return string(s)
}
