package readstore

import (
	"context"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/infra"
	"shareit/internal/infra/db"
	"shareit/internal/pkg/errs"
	"shareit/internal/pkg/pgconv"
	"shareit/internal/usecase/queries"
	"shareit/internal/usecase/shared"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5"
)

const tableBookings = "bookings"

var (
	colBookingID     = goqu.I("b.id")
	colBookingStart  = goqu.I("b.start_date")
	colBookingEnd    = goqu.I("b.end_date")
	colBookingStatus = goqu.I("b.status")
	colBookerID      = goqu.I("b.booker_id")
	colItemOwnerID   = goqu.I("i.owner_id")
)

type bookingRow struct {
	ID          int64     `db:"id"`
	Start       time.Time `db:"start_date"`
	End         time.Time `db:"end_date"`
	Status      string    `db:"status"`
	ItemID      int64     `db:"item_id"`
	ItemName    string    `db:"item_name"`
	ItemOwnerID int64     `db:"item_owner_id"`
	BookerID    int64     `db:"booker_id"`
	BookerName  string    `db:"booker_name"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type briefRow struct {
	ID       int64     `db:"id"`
	BookerID int64     `db:"booker_id"`
	Start    time.Time `db:"start_date"`
	End      time.Time `db:"end_date"`
}

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id int64) (*queries.BookingView, error) {
	query, args, err := selectBookingViews().
		Where(colBookingID.Eq(id)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking query", err, infra.KindQueryBuild)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[bookingRow])
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan booking", err)
	}
	return row.toView(), nil
}

// List serves every scope and state combination with one statement.
func (r *BookingReadStore) List(ctx context.Context, filter queries.BookingFilter) ([]*queries.BookingView, error) {
	query, args, err := BuildListQuery(filter)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking list query", err, infra.KindQueryBuild)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	list, err := pgx.CollectRows(rows, pgx.RowToStructByName[bookingRow])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan bookings", err)
	}

	result := make([]*queries.BookingView, len(list))
	for i := range list {
		result[i] = list[i].toView()
	}
	return result, nil
}

func (r *BookingReadStore) FindNearest(ctx context.Context, itemID int64, now time.Time) (*queries.NearestBookingsView, error) {
	last, err := r.findBrief(ctx, itemID,
		goqu.C("end_date").Lt(now),
		goqu.C("end_date").Desc())
	if err != nil {
		return nil, err
	}
	next, err := r.findBrief(ctx, itemID,
		goqu.C("start_date").Gt(now),
		goqu.C("start_date").Asc())
	if err != nil {
		return nil, err
	}
	return &queries.NearestBookingsView{ItemID: itemID, Last: last, Next: next}, nil
}

func (r *BookingReadStore) findBrief(ctx context.Context, itemID int64, cond exp.Expression, order exp.OrderedExpression) (*queries.BookingBrief, error) {
	query, args, err := db.Builder().
		From(tableBookings).
		Select("id", "booker_id", "start_date", "end_date").
		Where(goqu.C("item_id").Eq(itemID), cond).
		Order(order, goqu.C("id").Desc()).
		Limit(1).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build nearest booking query", err, infra.KindQueryBuild)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find nearest booking", err)
	}
	list, err := pgx.CollectRows(rows, pgx.RowToStructByName[briefRow])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan nearest booking", err)
	}
	if len(list) == 0 {
		return nil, nil
	}
	b := list[0]
	return &queries.BookingBrief{ID: b.ID, BookerID: b.BookerID, Start: b.Start, End: b.End}, nil
}

// FindSnapshotForUpdate reads the bare booking row and locks it for the
// rest of the surrounding transaction.
func (r *BookingReadStore) FindSnapshotForUpdate(ctx context.Context, id int64) (*shared.BookingSnapshot, error) {
	query, args, err := db.Builder().
		From(tableBookings).
		Select("id", "item_id", "booker_id", "start_date", "end_date", "status", "created_at", "updated_at").
		Where(goqu.C("id").Eq(id)).
		ForUpdate(exp.Wait).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking lock query", err, infra.KindQueryBuild)
	}

	var s shared.BookingSnapshot
	err = r.db.QueryRow(ctx, query, args...).
		Scan(&s.ID, &s.ItemID, &s.BookerID, &s.Start, &s.End, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock booking", err)
	}
	return &s, nil
}

// BuildListQuery renders the listing statement for a filter. Rows are
// always ordered by id descending, which is creation order reversed.
func BuildListQuery(filter queries.BookingFilter) (string, []any, error) {
	ds := selectBookingViews()

	switch filter.Scope {
	case queries.ScopeBooker:
		ds = ds.Where(colBookerID.Eq(filter.ActorID))
	case queries.ScopeOwner:
		ds = ds.Where(colItemOwnerID.Eq(filter.ActorID))
	default:
		return "", nil, errs.Newf("unsupported booking scope: %d", filter.Scope)
	}

	cond, err := stateCondition(filter.State, filter.Now)
	if err != nil {
		return "", nil, err
	}
	if cond != nil {
		ds = ds.Where(cond)
	}

	// #nosec G115 -- page bounds are validated as non-negative
	return ds.
		Order(colBookingID.Desc()).
		Limit(uint(filter.Page.Limit())).
		Offset(uint(filter.Page.Offset())).
		Prepared(true).
		ToSQL()
}

func stateCondition(state booking.State, now time.Time) (exp.Expression, error) {
	switch state {
	case booking.StateAll:
		return nil, nil
	case booking.StateCurrent:
		return goqu.And(colBookingStart.Lt(now), colBookingEnd.Gt(now)), nil
	case booking.StatePast:
		return colBookingEnd.Lt(now), nil
	case booking.StateFuture:
		return colBookingStart.Gt(now), nil
	case booking.StateWaiting:
		return colBookingStatus.Eq(booking.StatusWaiting.String()), nil
	case booking.StateRejected:
		return colBookingStatus.Eq(booking.StatusRejected.String()), nil
	default:
		return nil, errs.Newf("unsupported booking state: %s", state)
	}
}

func selectBookingViews() *goqu.SelectDataset {
	return db.Builder().
		From(goqu.T(tableBookings).As("b")).
		Join(goqu.T(tableItems).As("i"), goqu.On(goqu.I("i.id").Eq(goqu.I("b.item_id")))).
		Join(goqu.T(tableUsers).As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("b.booker_id")))).
		Select(
			colBookingID.As("id"),
			colBookingStart.As("start_date"),
			colBookingEnd.As("end_date"),
			colBookingStatus.As("status"),
			goqu.I("i.id").As("item_id"),
			goqu.I("i.name").As("item_name"),
			colItemOwnerID.As("item_owner_id"),
			goqu.I("u.id").As("booker_id"),
			goqu.I("u.name").As("booker_name"),
			goqu.I("b.created_at").As("created_at"),
			goqu.I("b.updated_at").As("updated_at"),
		)
}

func (r bookingRow) toView() *queries.BookingView {
	return &queries.BookingView{
		ID:     r.ID,
		Start:  r.Start,
		End:    r.End,
		Status: r.Status,
		Item: queries.ItemRef{
			ID:      r.ItemID,
			Name:    r.ItemName,
			OwnerID: r.ItemOwnerID,
		},
		Booker: queries.UserRef{
			ID:   r.BookerID,
			Name: r.BookerName,
		},
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
