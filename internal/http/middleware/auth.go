package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"invoicely.app/api/common/logger"
	"invoicely.app/api/internal/model"
	"invoicely.app/api/internal/service"
)

type contextKey string

const (
	SessionIDHeader   = "X-Session-ID"
	SessionCookieName = "invoicely_session"

	principalContextKey contextKey = "principal"
)

// RequireSession resolves the caller from the X-Session-ID header, falling
// back to the session cookie, and aborts with 401 when neither is valid.
func RequireSession(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := authService.Authenticate(c.Request.Context(), rawSessionID(c))
		switch {
		case err == nil:
		case errors.Is(err, service.ErrNotAuthenticated):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		case errors.Is(err, service.ErrSessionExpired), errors.Is(err, service.ErrUserNotFound):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			return
		default:
			c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to validate session"})
			return
		}

		ctx := context.WithValue(c.Request.Context(), principalContextKey, principal)
		ctx = logger.WithLogFields(ctx, logger.LogFields{UserID: logger.Ptr(principal.User.ID)})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetPrincipal returns the caller stored by RequireSession, or nil.
func GetPrincipal(ctx context.Context) *model.Principal {
	p, _ := ctx.Value(principalContextKey).(*model.Principal)
	return p
}

func GetUser(ctx context.Context) *model.User {
	if p := GetPrincipal(ctx); p != nil {
		return p.User
	}
	return nil
}

func rawSessionID(c *gin.Context) string {
	if raw := c.GetHeader(SessionIDHeader); raw != "" {
		return raw
	}
	cookie, _ := c.Cookie(SessionCookieName)
	return cookie
}
