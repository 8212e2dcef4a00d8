package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/infra"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/shared"
)

const (
	notificationKind = "email"

	TopicBookingCreated  = "booking_created"
	TopicBookingApproved = "booking_approved"
	TopicBookingRejected = "booking_rejected"
)

type CreateBookingRequest struct {
	ItemID int64
	Start  time.Time
	End    time.Time
}

type BookingResult struct {
	BookingID int64
	Status    booking.Status
}

type BookingCommands interface {
	Create(ctx context.Context, req CreateBookingRequest, bookerID int64) (*BookingResult, error)
	Approve(ctx context.Context, ownerID, bookingID int64, approved bool) (*BookingResult, error)
}

type bookingCommandsImpl struct {
	uow      shared.UnitOfWork
	services *booking.Services
	clock    clock.Clock
}

func NewBookingCommands(uow shared.UnitOfWork, services *booking.Services) BookingCommands {
	return &bookingCommandsImpl{uow: uow, services: services, clock: services.Clock}
}

func (uc *bookingCommandsImpl) Create(ctx context.Context, req CreateBookingRequest, bookerID int64) (*BookingResult, error) {
	var result *BookingResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		item, err := tx.Reads().ItemByID(ctx, req.ItemID)
		if err != nil {
			return notFoundAs(err, shared.ErrItemNotFound)
		}
		if _, err = tx.Reads().UserByID(ctx, bookerID); err != nil {
			return notFoundAs(err, shared.ErrUserNotFound)
		}

		b, err := booking.NewBooking(uc.services, item.Spec(), bookerID, req.Start, req.End)
		if err != nil {
			return err
		}

		id, err := tx.Bookings().Create(ctx, tx.DB(), b)
		if err != nil {
			return err
		}

		if err = uc.enqueue(ctx, tx, TopicBookingCreated, id, b, item.OwnerID); err != nil {
			return err
		}
		result = &BookingResult{BookingID: id, Status: b.Status()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("booking created",
		"booking_id", result.BookingID,
		"item_id", req.ItemID,
		"booker_id", bookerID)
	return result, nil
}

func (uc *bookingCommandsImpl) Approve(ctx context.Context, ownerID, bookingID int64, approved bool) (*BookingResult, error) {
	var result *BookingResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().BookingByIDForUpdate(ctx, bookingID)
		if err != nil {
			return notFoundAs(err, shared.ErrBookingNotFound)
		}
		if _, err = tx.Reads().UserByID(ctx, ownerID); err != nil {
			return notFoundAs(err, shared.ErrUserNotFound)
		}
		item, err := tx.Reads().ItemByID(ctx, snap.ItemID)
		if err != nil {
			return notFoundAs(err, shared.ErrItemNotFound)
		}

		b, err := snap.ToDomain()
		if err != nil {
			return err
		}
		if err = b.Decide(item.Spec(), ownerID, approved, uc.clock.Now()); err != nil {
			return err
		}

		if err = tx.Bookings().UpdateStatus(ctx, tx.DB(), b); err != nil {
			return err
		}

		topic := TopicBookingRejected
		if approved {
			topic = TopicBookingApproved
		}
		if err = uc.enqueue(ctx, tx, topic, b.ID(), b, item.OwnerID); err != nil {
			return err
		}
		result = &BookingResult{BookingID: b.ID(), Status: b.Status()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("booking status changed",
		"booking_id", bookingID,
		"owner_id", ownerID,
		"status", result.Status.String())
	return result, nil
}

type bookingEvent struct {
	BookingID int64     `json:"booking_id"`
	ItemID    int64     `json:"item_id"`
	BookerID  int64     `json:"booker_id"`
	OwnerID   int64     `json:"owner_id"`
	Status    string    `json:"status"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
}

func (uc *bookingCommandsImpl) enqueue(ctx context.Context, tx shared.Tx, topic string, bookingID int64, b *booking.Booking, ownerID int64) error {
	payload, err := json.Marshal(bookingEvent{
		BookingID: bookingID,
		ItemID:    b.ItemID(),
		BookerID:  b.BookerID(),
		OwnerID:   ownerID,
		Status:    b.Status().String(),
		Start:     b.Period().Start(),
		End:       b.Period().End(),
	})
	if err != nil {
		return errs.Wrap(err, "failed to encode booking event")
	}
	return tx.Notifications().CreateJob(ctx, tx.DB(), notificationKind, topic, payload, uc.clock.Now())
}

func notFoundAs(err error, target error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return target
	}
	return err
}
