package booking

import (
	"time"

	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/errs"
)

var (
	ErrBookedByOwner        = errs.AccessDenied("booking could not be created by item owner")
	ErrItemUnavailable      = errs.InvalidRequest("item is not available")
	ErrInvalidPeriod        = errs.InvalidRequest("booking start must be before its end")
	ErrPeriodInPast         = errs.InvalidRequest("booking period must not be in the past")
	ErrNotItemOwner         = errs.AccessDenied("only item owner could change booking status")
	ErrStatusAlreadyChanged = errs.InvalidRequest("booking status was already changed")
	ErrNoAccess             = errs.AccessDenied("only booker or item owner could get booking info")
)

// ItemSpec is what a booking needs to know about the catalog item.
type ItemSpec struct {
	ID        int64
	OwnerID   int64
	Available bool
}

type Services struct {
	Clock clock.Clock
}

type Booking struct {
	id        int64
	itemID    int64
	bookerID  int64
	period    Period
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking checks, in order: the booker is not the owner, the item is
// available, start precedes end, and the period is not in the past.
// The id stays zero until the booking is stored.
func NewBooking(services *Services, item ItemSpec, bookerID int64, start, end time.Time) (*Booking, error) {
	if item.OwnerID == bookerID {
		return nil, ErrBookedByOwner
	}
	if !item.Available {
		return nil, ErrItemUnavailable
	}

	period, err := NewPeriod(start, end)
	if err != nil {
		return nil, err
	}

	now := services.Clock.Now()
	if err := period.ValidateAt(now); err != nil {
		return nil, err
	}

	return &Booking{
		itemID:    item.ID,
		bookerID:  bookerID,
		period:    period,
		status:    StatusWaiting,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructBooking(
	id, itemID, bookerID int64,
	period Period,
	status Status,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		itemID:    itemID,
		bookerID:  bookerID,
		period:    period,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Decide applies the owner's verdict. Asking for the status the booking
// already has fails; switching between APPROVED and REJECTED does not.
func (b *Booking) Decide(item ItemSpec, actorID int64, approved bool, now time.Time) error {
	if item.OwnerID != actorID {
		return ErrNotItemOwner
	}

	next := StatusRejected
	if approved {
		next = StatusApproved
	}
	if b.status == next {
		return ErrStatusAlreadyChanged
	}

	b.status = next
	b.updatedAt = now
	return nil
}

// Matches reports whether the booking falls under state at the given instant.
func (b *Booking) Matches(state State, now time.Time) bool {
	switch state {
	case StateAll:
		return true
	case StateCurrent:
		return b.period.InProgressAt(now)
	case StatePast:
		return b.period.EndedBefore(now)
	case StateFuture:
		return b.period.StartsAfter(now)
	case StateWaiting:
		return b.status == StatusWaiting
	case StateRejected:
		return b.status == StatusRejected
	default:
		return false
	}
}

func (b *Booking) ID() int64            { return b.id }
func (b *Booking) ItemID() int64        { return b.itemID }
func (b *Booking) BookerID() int64      { return b.bookerID }
func (b *Booking) Period() Period       { return b.period }
func (b *Booking) Status() Status       { return b.status }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }
