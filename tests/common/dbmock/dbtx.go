//go:build unit

package dbmock

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
)

// DBTX records the SQL handed to it. Arguments are matched as one []any.
type DBTX struct {
	mock.Mock
}

func (m *DBTX) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	ret := m.Called(ctx, sql, args)
	return ret.Get(0).(pgconn.CommandTag), ret.Error(1)
}

func (m *DBTX) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	ret := m.Called(ctx, sql, args)
	rows, _ := ret.Get(0).(pgx.Rows)
	return rows, ret.Error(1)
}

func (m *DBTX) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	ret := m.Called(ctx, sql, args)
	return ret.Get(0).(pgx.Row)
}

// Row is a single result row. Values are assigned to Scan destinations by
// position.
type Row struct {
	Values []any
	Err    error
}

func (r Row) Scan(dest ...any) error {
	if r.Err != nil {
		return r.Err
	}
	for i, d := range dest {
		if i >= len(r.Values) {
			break
		}
		switch p := d.(type) {
		case *int64:
			*p = r.Values[i].(int64)
		case *string:
			*p = r.Values[i].(string)
		case *bool:
			*p = r.Values[i].(bool)
		case *time.Time:
			*p = r.Values[i].(time.Time)
		}
	}
	return nil
}

func ErrRow(err error) Row {
	return Row{Err: err}
}
