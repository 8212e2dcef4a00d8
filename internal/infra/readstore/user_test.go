//go:build unit

package readstore

import (
	"context"
	"testing"

	"shareit/internal/infra"
	"shareit/tests/common/dbmock"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserReadStore_FindByID(t *testing.T) {
	tests := []struct {
		name     string
		row      dbmock.Row
		wantKind infra.RepositoryErrorKind
	}{
		{
			name: "success",
			row:  dbmock.Row{Values: []any{int64(7), "Alice", "alice@example.com"}},
		},
		{
			name:     "user not found",
			row:      dbmock.ErrRow(pgx.ErrNoRows),
			wantKind: infra.KindNotFound,
		},
		{
			name:     "database error",
			row:      dbmock.ErrRow(assert.AnError),
			wantKind: infra.KindDBFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := new(dbmock.DBTX)
			conn.On("QueryRow", mock.Anything,
				`SELECT "id", "name", "email" FROM "users" WHERE ("id" = $1)`,
				[]any{int64(7)},
			).Return(tt.row)

			view, err := NewUserReadStore(conn).FindByID(context.Background(), 7)

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Nil(t, view)
				assert.True(t, infra.IsKind(err, tt.wantKind))
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(7), view.ID)
				assert.Equal(t, "Alice", view.Name)
				assert.Equal(t, "alice@example.com", view.Email)
			}
			conn.AssertExpectations(t)
		})
	}
}

func TestItemReadStore_FindByID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		conn := new(dbmock.DBTX)
		conn.On("QueryRow", mock.Anything, mock.AnythingOfType("string"), []any{int64(3)}).
			Return(dbmock.Row{Values: []any{int64(3), int64(1), "Drill", "Cordless drill", true}})

		view, err := NewItemReadStore(conn).FindByID(context.Background(), 3)

		require.NoError(t, err)
		assert.Equal(t, int64(3), view.ID)
		assert.Equal(t, int64(1), view.OwnerID)
		assert.Equal(t, "Drill", view.Name)
		assert.True(t, view.Available)
	})

	t.Run("item not found", func(t *testing.T) {
		conn := new(dbmock.DBTX)
		conn.On("QueryRow", mock.Anything, mock.AnythingOfType("string"), []any{int64(3)}).
			Return(dbmock.ErrRow(pgx.ErrNoRows))

		view, err := NewItemReadStore(conn).FindByID(context.Background(), 3)

		require.Error(t, err)
		assert.Nil(t, view)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}
