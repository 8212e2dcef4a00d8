package queries

import (
	"context"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/infra"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/shared"
)

var ErrItemBookingsAccess = errs.AccessDenied("only item owner could see item bookings")

type BookingReadStore interface {
	FindByID(ctx context.Context, id int64) (*BookingView, error)
	List(ctx context.Context, filter BookingFilter) ([]*BookingView, error)
	FindNearest(ctx context.Context, itemID int64, now time.Time) (*NearestBookingsView, error)
}

type UserReadStore interface {
	FindByID(ctx context.Context, id int64) (*UserView, error)
}

type ItemReadStore interface {
	FindByID(ctx context.Context, id int64) (*ItemView, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, actorID, bookingID int64) (*BookingView, error)
	ListForBooker(ctx context.Context, bookerID int64, state string, from, size int) ([]*BookingView, error)
	ListForOwner(ctx context.Context, ownerID int64, state string, from, size int) ([]*BookingView, error)
	NearestForItem(ctx context.Context, ownerID, itemID int64) (*NearestBookingsView, error)
}

type bookingQueriesImpl struct {
	bookings BookingReadStore
	users    UserReadStore
	items    ItemReadStore
	clock    clock.Clock
}

func NewBookingQueries(bookings BookingReadStore, users UserReadStore, items ItemReadStore, clk clock.Clock) BookingQueries {
	return &bookingQueriesImpl{bookings: bookings, users: users, items: items, clock: clk}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actorID, bookingID int64) (*BookingView, error) {
	if err := q.ensureUser(ctx, actorID); err != nil {
		return nil, err
	}

	view, err := q.bookings.FindByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, shared.ErrBookingNotFound
		}
		return nil, err
	}

	if view.Booker.ID != actorID && view.Item.OwnerID != actorID {
		return nil, booking.ErrNoAccess
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListForBooker(ctx context.Context, bookerID int64, state string, from, size int) ([]*BookingView, error) {
	return q.list(ctx, ScopeBooker, bookerID, state, from, size)
}

func (q *bookingQueriesImpl) ListForOwner(ctx context.Context, ownerID int64, state string, from, size int) ([]*BookingView, error) {
	return q.list(ctx, ScopeOwner, ownerID, state, from, size)
}

func (q *bookingQueriesImpl) list(ctx context.Context, scope Scope, actorID int64, rawState string, from, size int) ([]*BookingView, error) {
	state, err := booking.ParseState(rawState)
	if err != nil {
		return nil, err
	}
	page, err := NewPage(from, size)
	if err != nil {
		return nil, err
	}
	if err = q.ensureUser(ctx, actorID); err != nil {
		return nil, err
	}

	return q.bookings.List(ctx, BookingFilter{
		Scope:   scope,
		ActorID: actorID,
		State:   state,
		Now:     q.clock.Now(),
		Page:    page,
	})
}

func (q *bookingQueriesImpl) NearestForItem(ctx context.Context, ownerID, itemID int64) (*NearestBookingsView, error) {
	if err := q.ensureUser(ctx, ownerID); err != nil {
		return nil, err
	}

	item, err := q.items.FindByID(ctx, itemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, shared.ErrItemNotFound
		}
		return nil, err
	}
	if item.OwnerID != ownerID {
		return nil, ErrItemBookingsAccess
	}

	return q.bookings.FindNearest(ctx, itemID, q.clock.Now())
}

func (q *bookingQueriesImpl) ensureUser(ctx context.Context, userID int64) error {
	if _, err := q.users.FindByID(ctx, userID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return shared.ErrUserNotFound
		}
		return err
	}
	return nil
}
