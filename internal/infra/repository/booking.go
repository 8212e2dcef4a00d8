package repository

import (
	"context"

	"shareit/internal/domain/booking"
	"shareit/internal/infra"
	"shareit/internal/infra/db"
	"shareit/internal/pkg/pgconv"

	"github.com/doug-martin/goqu/v9"
)

const tableBookings = "bookings"

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (int64, error) {
	query, args, err := db.Builder().
		Insert(tableBookings).
		Rows(goqu.Record{
			"item_id":    b.ItemID(),
			"booker_id":  b.BookerID(),
			"start_date": b.Period().Start(),
			"end_date":   b.Period().End(),
			"status":     b.Status().String(),
			"created_at": b.CreatedAt(),
			"updated_at": b.UpdatedAt(),
		}).
		Returning("id").
		Prepared(true).
		ToSQL()
	if err != nil {
		return 0, infra.WrapRepoErr("failed to build booking insert", err, infra.KindQueryBuild)
	}

	var id int64
	if err := tx.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if pgconv.IsForeignKeyViolation(err) {
			return 0, infra.WrapRepoErr("booking references a missing item or user", err, infra.KindForeignKeyViolated)
		}
		return 0, infra.WrapRepoErr("failed to create booking", err)
	}
	return id, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, tx db.DBTX, b *booking.Booking) error {
	query, args, err := db.Builder().
		Update(tableBookings).
		Set(goqu.Record{
			"status":     b.Status().String(),
			"updated_at": b.UpdatedAt(),
		}).
		Where(goqu.C("id").Eq(b.ID())).
		Prepared(true).
		ToSQL()
	if err != nil {
		return infra.WrapRepoErr("failed to build booking status update", err, infra.KindQueryBuild)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}
