package shared

import (
	"context"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/infra/db"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Bookings() BookingRepository
	Notifications() NotificationRepository
	Reads() CommandReads
	DB() db.DBTX
}

// CommandReads resolves the rows a command validates against, inside the
// command's transaction.
type CommandReads interface {
	UserByID(ctx context.Context, id int64) (*UserSnapshot, error)
	ItemByID(ctx context.Context, id int64) (*ItemSnapshot, error)
	// BookingByIDForUpdate locks the booking row until the transaction ends.
	BookingByIDForUpdate(ctx context.Context, id int64) (*BookingSnapshot, error)
}

type BookingRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (int64, error)
	UpdateStatus(ctx context.Context, tx db.DBTX, b *booking.Booking) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}
