package poll

import "fmt"

// State is the state of a wait, every wait starts in 'StateWaiting' and finishes in one of the other states.
type State int

const (
	// StateWaiting indicates the object has not settled yet.
	StateWaiting State = iota

	// StateSettled indicates the settlement predicate of the mode has been satisfied.
	StateSettled

	// StateTimedOut indicates the budget was exhausted before settling.
	StateTimedOut

	// StateFailed indicates a non-transient error was returned by the backend, or the context was cancelled.
	StateFailed
)

// String returns a human readable representation of the state.
func (s State) String() string {
	switch s {
	case StateWaiting:
		return "WAITING"
	case StateSettled:
		return "SETTLED"
	case StateTimedOut:
		return "TIMED_OUT"
	case StateFailed:
		return "FAILED"
	}

	return fmt.Sprintf("UNKNOWN(%d)", int(s))
}

// Mode is the settlement predicate used by a poller.
type Mode int

const (
	// ModeSettled waits for the object to exist with a replication status which is no longer in flight.
	ModeSettled Mode = iota

	// ModeAbsent waits for the object to no longer be fetchable, for example once a deletion has propagated.
	ModeAbsent
)

// String returns a human readable representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeSettled:
		return "settled"
	case ModeAbsent:
		return "absent"
	}

	return fmt.Sprintf("unknown(%d)", int(m))
}
