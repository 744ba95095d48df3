package router

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"invoicely.app/api/internal/http/handler"
	"invoicely.app/api/internal/http/middleware"
	"invoicely.app/api/internal/model"
	"invoicely.app/api/internal/service"
)

// Services is the set of services the HTTP layer is built from.
// *service.Services satisfies it.
type Services interface {
	Users() service.UserService
	Auth() service.AuthService
	Organizations() service.OrganizationService
	Invitations() service.InvitationService
	Analytics() service.AnalyticsService
}

type RouterConfig struct {
	IsProduction bool
	// MetricsHandler serves /metrics when set.
	MetricsHandler http.Handler
	// HealthCheck, when set, must succeed for /health to report ok.
	HealthCheck func(ctx context.Context) error
}

func SetupRoutes(router *gin.Engine, services Services, cfg RouterConfig) {
	router.GET("/health", health(cfg.HealthCheck))
	if cfg.MetricsHandler != nil {
		router.GET("/metrics", gin.WrapH(cfg.MetricsHandler))
	}

	exposeInternal := !cfg.IsProduction
	requireSession := middleware.RequireSession(services.Auth())
	orgs := services.Organizations()

	v1 := router.Group("/api/v1")
	{
		authHandler := handler.NewAuthHandler(services.Auth(), cfg.IsProduction)
		AuthRouter(v1.Group("/auth", requireSession), authHandler)

		userHandler := handler.NewUserHandler(services.Users(), exposeInternal)
		UserRouter(v1.Group("/users", requireSession), userHandler)

		orgHandler := handler.NewOrganizationHandler(orgs, exposeInternal)
		invHandler := handler.NewInvitationHandler(services.Invitations(), exposeInternal)
		OrganizationRouter(v1.Group("/organizations"), requireSession, orgScope(orgs), orgHandler, invHandler)

		analyticsHandler := handler.NewAnalyticsHandler(services.Analytics(), exposeInternal)
		AnalyticsRouter(v1.Group("/analytics", requireSession, middleware.RequireOrgRole(orgs, model.RoleViewer)), analyticsHandler)
	}
}

// RoleGuard builds the org-scope check for a minimum role.
type RoleGuard func(min model.Role) gin.HandlerFunc

func orgScope(memberships middleware.MembershipLookup) RoleGuard {
	return func(min model.Role) gin.HandlerFunc {
		return middleware.RequireOrgRole(memberships, min)
	}
}

func health(check func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				slog.WarnContext(ctx, "health check failed", "error", err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
