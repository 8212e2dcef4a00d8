package booking

import "shareit/internal/pkg/errs"

type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusWaiting, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.IsValid() {
		return "", errs.Newf("invalid booking status: %q", raw)
	}
	return s, nil
}

// State selects bookings in a listing. Time based states are evaluated
// against the instant the listing is requested.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

var states = []State{StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected}

func States() []State {
	out := make([]State, len(states))
	copy(out, states)
	return out
}

func (s State) String() string {
	return string(s)
}

// ParseState is case sensitive and never falls back to ALL.
func ParseState(raw string) (State, error) {
	for _, s := range states {
		if string(s) == raw {
			return s, nil
		}
	}
	return "", errs.Mark(errs.Newf("unknown state: %s", raw), errs.ErrInvalidRequest)
}
