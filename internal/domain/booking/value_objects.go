package booking

import "time"

// Period is the half-open rental interval of a booking.
type Period struct {
	start time.Time
	end   time.Time
}

func NewPeriod(start, end time.Time) (Period, error) {
	if !start.Before(end) {
		return Period{}, ErrInvalidPeriod
	}
	return Period{start: start, end: end}, nil
}

func (p Period) Start() time.Time {
	return p.start
}

func (p Period) End() time.Time {
	return p.end
}

// ValidateAt rejects periods that start before now or are already over.
// A booking may start at the current instant.
func (p Period) ValidateAt(now time.Time) error {
	if p.start.Before(now) || !p.end.After(now) {
		return ErrPeriodInPast
	}
	return nil
}

func (p Period) InProgressAt(now time.Time) bool {
	return p.start.Before(now) && p.end.After(now)
}

func (p Period) EndedBefore(now time.Time) bool {
	return p.end.Before(now)
}

func (p Period) StartsAfter(now time.Time) bool {
	return p.start.After(now)
}
