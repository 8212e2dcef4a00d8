package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"shareit/internal/handler/httperr"
	"shareit/internal/pkg/config"
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase"

	"github.com/gin-gonic/gin"
)

// SharerUserIDHeader carries the caller id when the service sits behind a
// gateway that has already authenticated the user.
const SharerUserIDHeader = "X-Sharer-User-Id"

const ctxUserIDKey = "user_id"

var (
	errIdentityRequired = errs.New("caller identity required")
	errInvalidUserID    = errs.New("invalid sharer user id")
)

type AuthMiddleware struct {
	tokenValidator    usecase.TokenValidator
	trustSharerHeader bool
}

func NewAuthMiddleware(tokenValidator usecase.TokenValidator, cfg config.AuthConfig) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator:    tokenValidator,
		trustSharerHeader: cfg.TrustSharerHeader,
	}
}

// RequireAuth resolves the caller from the sharer header (when trusted) or
// from a Bearer token, in that order.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.trustSharerHeader {
			if raw := strings.TrimSpace(c.GetHeader(SharerUserIDHeader)); raw != "" {
				userID, err := strconv.ParseInt(raw, 10, 64)
				if err != nil || userID <= 0 {
					httperr.AbortWithError(c, http.StatusUnauthorized, errInvalidUserID, "Invalid "+SharerUserIDHeader+" header", nil)
					return
				}
				c.Set(ctxUserIDKey, userID)
				c.Next()
				return
			}
		}

		token := bearerToken(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errIdentityRequired, "Access token required", nil)
			return
		}

		userID, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token", nil)
			return
		}

		c.Set(ctxUserIDKey, userID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(authHeader[len("Bearer "):])
}

func GetUserID(c *gin.Context) (int64, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return 0, false
	}

	id, ok := userID.(int64)
	return id, ok
}
