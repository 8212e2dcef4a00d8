//go:build unit

package queries_test

import (
	"testing"

	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPage(t *testing.T) {
	tests := []struct {
		name       string
		from, size int
		wantOffset int
		wantNumber int
		errIs      error
	}{
		{name: "first page", from: 0, size: 10, wantOffset: 0, wantNumber: 0},
		{name: "aligned from", from: 20, size: 10, wantOffset: 20, wantNumber: 2},
		{name: "from inside a page rounds down", from: 25, size: 10, wantOffset: 20, wantNumber: 2},
		{name: "from smaller than size", from: 3, size: 5, wantOffset: 0, wantNumber: 0},
		{name: "size one", from: 7, size: 1, wantOffset: 7, wantNumber: 7},
		{name: "negative from", from: -1, size: 10, errIs: queries.ErrInvalidFrom},
		{name: "zero size", from: 0, size: 0, errIs: queries.ErrInvalidSize},
		{name: "negative size", from: 0, size: -5, errIs: queries.ErrInvalidSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := queries.NewPage(tt.from, tt.size)

			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				assert.True(t, errs.Is(err, errs.ErrInvalidRequest))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOffset, page.Offset())
			assert.Equal(t, tt.wantNumber, page.Number())
			assert.Equal(t, tt.size, page.Limit())
		})
	}
}
