//go:build unit

package readstore

import (
	"context"
	"strings"
	"testing"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/infra"
	"shareit/internal/usecase/queries"
	"shareit/tests/common/dbmock"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBuildListQuery(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	page, err := queries.NewPage(25, 10)
	require.NoError(t, err)

	tests := []struct {
		name        string
		scope       queries.Scope
		state       booking.State
		contains    []string
		notContains []string
		leadingArgs []any
	}{
		{
			name:        "booker all",
			scope:       queries.ScopeBooker,
			state:       booking.StateAll,
			contains:    []string{`"b"."booker_id" = $1`},
			notContains: []string{`"b"."status" =`, `"b"."start_date" <`, `"b"."end_date" <`},
			leadingArgs: []any{int64(5)},
		},
		{
			name:        "owner all",
			scope:       queries.ScopeOwner,
			state:       booking.StateAll,
			contains:    []string{`"i"."owner_id" = $1`},
			notContains: []string{`"b"."booker_id" =`},
			leadingArgs: []any{int64(5)},
		},
		{
			name:        "booker current",
			scope:       queries.ScopeBooker,
			state:       booking.StateCurrent,
			contains:    []string{`"b"."start_date" < $2`, `"b"."end_date" > $3`},
			leadingArgs: []any{int64(5), now, now},
		},
		{
			name:        "owner past",
			scope:       queries.ScopeOwner,
			state:       booking.StatePast,
			contains:    []string{`"i"."owner_id" = $1`, `"b"."end_date" < $2`},
			leadingArgs: []any{int64(5), now},
		},
		{
			name:        "booker future",
			scope:       queries.ScopeBooker,
			state:       booking.StateFuture,
			contains:    []string{`"b"."start_date" > $2`},
			leadingArgs: []any{int64(5), now},
		},
		{
			name:        "owner waiting",
			scope:       queries.ScopeOwner,
			state:       booking.StateWaiting,
			contains:    []string{`"b"."status" = $2`},
			leadingArgs: []any{int64(5), "WAITING"},
		},
		{
			name:        "booker rejected",
			scope:       queries.ScopeBooker,
			state:       booking.StateRejected,
			contains:    []string{`"b"."status" = $2`},
			leadingArgs: []any{int64(5), "REJECTED"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := BuildListQuery(queries.BookingFilter{
				Scope:   tt.scope,
				ActorID: 5,
				State:   tt.state,
				Now:     now,
				Page:    page,
			})
			require.NoError(t, err)

			assert.Contains(t, sql, `FROM "bookings" AS "b"`)
			assert.Contains(t, sql, `ORDER BY "b"."id" DESC`)
			assert.Contains(t, sql, "LIMIT")
			assert.Contains(t, sql, "OFFSET")
			for _, fragment := range tt.contains {
				assert.Contains(t, sql, fragment)
			}
			for _, fragment := range tt.notContains {
				assert.NotContains(t, sql, fragment)
			}
			require.GreaterOrEqual(t, len(args), len(tt.leadingArgs))
			assert.Equal(t, tt.leadingArgs, args[:len(tt.leadingArgs)])
			// limit then offset; from=25 with size=10 starts at row 20
			assert.EqualValues(t, 10, args[len(args)-2])
			assert.EqualValues(t, 20, args[len(args)-1])
		})
	}

	t.Run("unknown scope", func(t *testing.T) {
		_, _, err := BuildListQuery(queries.BookingFilter{State: booking.StateAll, Page: page})
		require.Error(t, err)
	})

	t.Run("unknown state", func(t *testing.T) {
		_, _, err := BuildListQuery(queries.BookingFilter{
			Scope: queries.ScopeBooker,
			State: booking.State("SOMEDAY"),
			Page:  page,
		})
		require.Error(t, err)
	})
}

func TestBookingReadStore_FindSnapshotForUpdate(t *testing.T) {
	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	t.Run("locks the row", func(t *testing.T) {
		conn := new(dbmock.DBTX)
		conn.On("QueryRow", mock.Anything,
			mock.MatchedBy(func(sql string) bool {
				return containsAll(sql, `FROM "bookings"`, `FOR UPDATE`)
			}),
			[]any{int64(11)},
		).Return(dbmock.Row{Values: []any{
			int64(11), int64(3), int64(2), start, end, "WAITING", start, start,
		}})

		snap, err := NewBookingReadStore(conn).FindSnapshotForUpdate(context.Background(), 11)

		require.NoError(t, err)
		assert.Equal(t, int64(11), snap.ID)
		assert.Equal(t, int64(3), snap.ItemID)
		assert.Equal(t, int64(2), snap.BookerID)
		assert.Equal(t, "WAITING", snap.Status)
		assert.Equal(t, end, snap.End)
		conn.AssertExpectations(t)
	})

	t.Run("booking not found", func(t *testing.T) {
		conn := new(dbmock.DBTX)
		conn.On("QueryRow", mock.Anything, mock.AnythingOfType("string"), []any{int64(11)}).
			Return(dbmock.ErrRow(pgx.ErrNoRows))

		snap, err := NewBookingReadStore(conn).FindSnapshotForUpdate(context.Background(), 11)

		require.Error(t, err)
		assert.Nil(t, snap)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}

func TestBookingReadStore_QueryFailure(t *testing.T) {
	page, err := queries.NewPage(0, 10)
	require.NoError(t, err)

	conn := new(dbmock.DBTX)
	conn.On("Query", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
		Return(nil, assert.AnError)
	store := NewBookingReadStore(conn)

	_, err = store.List(context.Background(), queries.BookingFilter{
		Scope: queries.ScopeOwner, ActorID: 1, State: booking.StateAll, Page: page,
	})
	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindDBFailure))

	_, err = store.FindByID(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindDBFailure))

	_, err = store.FindNearest(context.Background(), 1, time.Now())
	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindDBFailure))
}

func containsAll(s string, fragments ...string) bool {
	for _, f := range fragments {
		if !strings.Contains(s, f) {
			return false
		}
	}
	return true
}
