package generation

import "strings"

// State is one step of a generation run.
type State string

const (
	StateIdle       State = "idle"
	StateDescribing State = "describing"
	StateSelecting  State = "selecting"
	StateAssembling State = "assembling"
	StateRendering  State = "rendering"
	StatePersisting State = "persisting"
	StateDone       State = "done"
	StateErrored    State = "errored"
)

// Trail is the ordered list of states a run passed through.
type Trail []State

func (t Trail) String() string {
	parts := make([]string, len(t))
	for i, s := range t {
		parts[i] = string(s)
	}
	return strings.Join(parts, ">")
}

// Last returns the most recent state, or idle for an empty trail.
func (t Trail) Last() State {
	if len(t) == 0 {
		return StateIdle
	}
	return t[len(t)-1]
}
