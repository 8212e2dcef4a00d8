//go:build unit

package httperr

import (
	"errors"
	"net/http"
	"testing"

	"shareit/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "not found", err: errs.NotFound("booking not found"), want: http.StatusNotFound},
		{name: "access denied", err: errs.AccessDenied("no"), want: http.StatusForbidden},
		{name: "invalid request", err: errs.InvalidRequest("bad"), want: http.StatusBadRequest},
		{name: "wrapped kind", err: errs.Wrap(errs.NotFound("user not found"), "get booking"), want: http.StatusNotFound},
		{name: "plain error", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusOf(tt.err))
		})
	}
}
