package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"invoicely.app/api/internal/http/middleware"
	"invoicely.app/api/internal/service"
)

// AuthHandler ends sessions. Logging in happens at the identity provider.
type AuthHandler struct {
	authService  service.AuthService
	isProduction bool
}

func NewAuthHandler(authService service.AuthService, isProduction bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		isProduction: isProduction,
	}
}

func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	principal := middleware.GetPrincipal(ctx)
	if err := h.authService.Logout(ctx, principal.User.ID, principal.SessionID); err != nil {
		slog.WarnContext(ctx, "failed to delete session", "error", err, "session_id", principal.SessionID)
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", h.isProduction, true)

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
