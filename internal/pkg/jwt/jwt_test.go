//go:build unit

package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_RoundTrip(t *testing.T) {
	svc := NewService("secret", time.Hour)

	token, err := svc.GenerateToken(42)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestService_ValidateToken(t *testing.T) {
	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		token   func(t *testing.T) string
		wantErr error
	}{
		{
			name: "expired",
			token: func(t *testing.T) string {
				s := NewService("secret", time.Minute)
				s.now = func() time.Time { return issuedAt.Add(-time.Hour) }
				tok, err := s.GenerateToken(1)
				require.NoError(t, err)
				return tok
			},
			wantErr: ErrExpiredToken,
		},
		{
			name: "signed with another key",
			token: func(t *testing.T) string {
				tok, err := NewService("other", time.Hour).GenerateToken(1)
				require.NoError(t, err)
				return tok
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "foreign issuer",
			token: func(t *testing.T) string {
				claims := jwt.RegisteredClaims{
					Issuer:    "someone-else",
					Subject:   "1",
					ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
				}
				tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
				require.NoError(t, err)
				return tok
			},
			wantErr: ErrInvalidToken,
		},
		{
			name:    "garbage",
			token:   func(*testing.T) string { return "not-a-token" },
			wantErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService("secret", time.Hour)
			svc.now = func() time.Time { return issuedAt }

			_, err := svc.ValidateToken(tt.token(t))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClaims_UserID(t *testing.T) {
	for _, subject := range []string{"", "abc", "0", "-3"} {
		c := &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: subject}}
		_, err := c.UserID()
		assert.ErrorIs(t, err, ErrInvalidToken, "subject %q", subject)
	}
}
