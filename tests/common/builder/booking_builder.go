//go:build unit || e2e

package builder

import (
	"time"

	"shareit/internal/domain/booking"
	reqdto "shareit/internal/handler/dto/request"
	"shareit/internal/pkg/clock"
	"shareit/internal/usecase/queries"
	"shareit/internal/usecase/shared"
)

// Now is the fixed instant every builder-made booking is relative to.
var Now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type BookingBuilder struct {
	ID            int64
	ItemID        int64
	ItemName      string
	OwnerID       int64
	ItemAvailable bool
	BookerID      int64
	BookerName    string
	Start         time.Time
	End           time.Time
	Status        booking.Status
	Now           time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		ID:            1,
		ItemID:        10,
		ItemName:      "Cordless drill",
		OwnerID:       100,
		ItemAvailable: true,
		BookerID:      200,
		BookerName:    "Booker",
		Start:         Now.Add(24 * time.Hour),
		End:           Now.Add(48 * time.Hour),
		Status:        booking.StatusWaiting,
		Now:           Now,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookingBuilder) BuildServices() *booking.Services {
	return &booking.Services{Clock: clock.NewMockClock(b.Now)}
}

func (b *BookingBuilder) BuildItemSpec() booking.ItemSpec {
	return booking.ItemSpec{ID: b.ItemID, OwnerID: b.OwnerID, Available: b.ItemAvailable}
}

func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	return booking.NewBooking(b.BuildServices(), b.BuildItemSpec(), b.BookerID, b.Start, b.End)
}

// BuildStored skips creation checks, as a row read back from storage would.
func (b *BookingBuilder) BuildStored() *booking.Booking {
	period, err := booking.NewPeriod(b.Start, b.End)
	if err != nil {
		panic("BuildStored: " + err.Error())
	}
	return booking.ReconstructBooking(b.ID, b.ItemID, b.BookerID, period, b.Status, b.Now, b.Now)
}

func (b *BookingBuilder) BuildSnapshot() *shared.BookingSnapshot {
	return &shared.BookingSnapshot{
		ID:        b.ID,
		ItemID:    b.ItemID,
		BookerID:  b.BookerID,
		Start:     b.Start,
		End:       b.End,
		Status:    b.Status.String(),
		CreatedAt: b.Now,
		UpdatedAt: b.Now,
	}
}

func (b *BookingBuilder) BuildItemSnapshot() *shared.ItemSnapshot {
	return &shared.ItemSnapshot{
		ID:        b.ItemID,
		OwnerID:   b.OwnerID,
		Name:      b.ItemName,
		Available: b.ItemAvailable,
	}
}

func (b *BookingBuilder) BuildItemView() *queries.ItemView {
	return &queries.ItemView{
		ID:          b.ItemID,
		OwnerID:     b.OwnerID,
		Name:        b.ItemName,
		Description: b.ItemName + " for rent",
		Available:   b.ItemAvailable,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return &queries.BookingView{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: b.Status.String(),
		Item: queries.ItemRef{
			ID:      b.ItemID,
			Name:    b.ItemName,
			OwnerID: b.OwnerID,
		},
		Booker: queries.UserRef{
			ID:   b.BookerID,
			Name: b.BookerName,
		},
		CreatedAt: b.Now,
		UpdatedAt: b.Now,
	}
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		ItemID: b.ItemID,
		Start:  b.Start,
		End:    b.End,
	}
}

// Fluent builder methods
func (b *BookingBuilder) WithPeriod(start, end time.Time) *BookingBuilder {
	b.Start = start
	b.End = end
	return b
}

func (b *BookingBuilder) WithStatus(status booking.Status) *BookingBuilder {
	b.Status = status
	return b
}

func (b *BookingBuilder) WithBooker(id int64) *BookingBuilder {
	b.BookerID = id
	return b
}

func (b *BookingBuilder) AsUnavailable() *BookingBuilder {
	b.ItemAvailable = false
	return b
}

func (b *BookingBuilder) AsCurrent() *BookingBuilder {
	return b.WithPeriod(b.Now.Add(-time.Hour), b.Now.Add(time.Hour))
}

func (b *BookingBuilder) AsPast() *BookingBuilder {
	return b.WithPeriod(b.Now.Add(-48*time.Hour), b.Now.Add(-24*time.Hour))
}

func (b *BookingBuilder) AsFuture() *BookingBuilder {
	return b.WithPeriod(b.Now.Add(24*time.Hour), b.Now.Add(48*time.Hour))
}
