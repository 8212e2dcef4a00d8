//go:build unit

package uow

import (
	"context"
	"testing"

	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTx struct {
	pgx.Tx
	commitErr  error
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit(context.Context) error {
	if t.commitErr != nil {
		return t.commitErr
	}
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	if t.committed {
		return pgx.ErrTxClosed
	}
	t.rolledBack = true
	return nil
}

type fakePool struct {
	begun   []*fakeTx
	options []pgx.TxOptions
	err     error
}

func (p *fakePool) BeginTx(_ context.Context, opts pgx.TxOptions) (pgx.Tx, error) {
	if p.err != nil {
		return nil, p.err
	}
	tx := &fakeTx{}
	p.begun = append(p.begun, tx)
	p.options = append(p.options, opts)
	return tx, nil
}

func TestPostgresUoW_Within(t *testing.T) {
	ctx := context.Background()
	serializationFailure := &pgconn.PgError{Code: pgErrCodeSerializationFailure}

	t.Run("commits on success with read committed", func(t *testing.T) {
		pool := &fakePool{}

		err := newPostgresUoW(pool).Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			assert.NotNil(t, tx.Bookings())
			assert.NotNil(t, tx.Notifications())
			assert.NotNil(t, tx.Reads())
			return nil
		})

		require.NoError(t, err)
		require.Len(t, pool.begun, 1)
		assert.True(t, pool.begun[0].committed)
		assert.Equal(t, pgx.ReadCommitted, pool.options[0].IsoLevel)
	})

	t.Run("rolls back and returns a business error without retrying", func(t *testing.T) {
		pool := &fakePool{}
		calls := 0

		err := newPostgresUoW(pool).Within(ctx, func(context.Context, shared.Tx) error {
			calls++
			return errs.InvalidRequest("nope")
		})

		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrInvalidRequest))
		assert.Equal(t, 1, calls)
		assert.True(t, pool.begun[0].rolledBack)
	})

	t.Run("retries serialization failures", func(t *testing.T) {
		pool := &fakePool{}
		calls := 0

		err := newPostgresUoW(pool).Within(ctx, func(context.Context, shared.Tx) error {
			calls++
			if calls == 1 {
				return serializationFailure
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 2, calls)
		require.Len(t, pool.begun, 2)
		assert.True(t, pool.begun[0].rolledBack)
		assert.True(t, pool.begun[1].committed)
	})

	t.Run("retries a failed commit", func(t *testing.T) {
		pool := &fakePool{}
		first := true

		err := newPostgresUoW(pool).Within(ctx, func(_ context.Context, tx shared.Tx) error {
			if first {
				first = false
				tx.(*pgTx).dbtx.(*fakeTx).commitErr = &pgconn.PgError{Code: pgErrCodeDeadlockDetected}
			}
			return nil
		})

		require.NoError(t, err)
		assert.Len(t, pool.begun, 2)
	})

	t.Run("begin failure", func(t *testing.T) {
		pool := &fakePool{err: assert.AnError}

		err := newPostgresUoW(pool).Within(ctx, func(context.Context, shared.Tx) error {
			t.Fatal("fn must not run")
			return nil
		})

		require.Error(t, err)
		assert.True(t, errs.Is(err, errTransactionBegin))
	})

	t.Run("cancelled context stops retrying", func(t *testing.T) {
		pool := &fakePool{}
		cctx, cancel := context.WithCancel(ctx)

		err := newPostgresUoW(pool).Within(cctx, func(context.Context, shared.Tx) error {
			cancel()
			return serializationFailure
		})

		require.ErrorIs(t, err, context.Canceled)
		assert.Len(t, pool.begun, 1)
	})
}

func TestCalculateBackoff(t *testing.T) {
	for attempt := 0; attempt < maxRetries; attempt++ {
		base := backoffBase << attempt
		got := calculateBackoff(attempt, backoffBase)
		assert.GreaterOrEqual(t, got, base)
		assert.Less(t, got, base+base/5)
	}
}
