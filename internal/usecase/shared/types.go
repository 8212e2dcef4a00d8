package shared

import (
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/pkg/errs"
)

var (
	ErrUserNotFound    = errs.NotFound("user not found")
	ErrItemNotFound    = errs.NotFound("item not found")
	ErrBookingNotFound = errs.NotFound("booking not found")
)

// Write-side snapshots prevent dependency on Read-side query types (CQRS separation)
type UserSnapshot struct {
	ID   int64
	Name string
}

type ItemSnapshot struct {
	ID        int64
	OwnerID   int64
	Name      string
	Available bool
}

func (s *ItemSnapshot) Spec() booking.ItemSpec {
	return booking.ItemSpec{ID: s.ID, OwnerID: s.OwnerID, Available: s.Available}
}

type BookingSnapshot struct {
	ID        int64
	ItemID    int64
	BookerID  int64
	Start     time.Time
	End       time.Time
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s *BookingSnapshot) ToDomain() (*booking.Booking, error) {
	status, err := booking.ParseStatus(s.Status)
	if err != nil {
		return nil, err
	}
	period, err := booking.NewPeriod(s.Start, s.End)
	if err != nil {
		return nil, errs.Newf("stored booking %d has an invalid period", s.ID)
	}
	return booking.ReconstructBooking(s.ID, s.ItemID, s.BookerID, period, status, s.CreatedAt, s.UpdatedAt), nil
}
