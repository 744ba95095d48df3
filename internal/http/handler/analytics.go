package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"invoicely.app/api/internal/http/dto"
	"invoicely.app/api/internal/http/middleware"
	"invoicely.app/api/internal/model"
	"invoicely.app/api/internal/service"
)

// AnalyticsHandler serves the analytics endpoints. The organization comes
// from the X-Organization-ID header via RequireOrgRole.
type AnalyticsHandler struct {
	analytics service.AnalyticsService
	errorWriter
}

func NewAnalyticsHandler(analytics service.AnalyticsService, exposeInternal bool) *AnalyticsHandler {
	return &AnalyticsHandler{
		analytics:   analytics,
		errorWriter: errorWriter{exposeInternal: exposeInternal},
	}
}

func serveAnalytics[T any](h *AnalyticsHandler, c *gin.Context, action string, fn func(context.Context, int64, model.TimeRange) (T, error)) {
	ctx := c.Request.Context()

	tr, ok := h.timeRange(c)
	if !ok {
		return
	}

	result, err := fn(ctx, middleware.GetOrganizationID(ctx), tr)
	if err != nil {
		h.fail(c, err, action)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *AnalyticsHandler) timeRange(c *gin.Context) (model.TimeRange, bool) {
	var q dto.AnalyticsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, err)
		return "", false
	}
	tr, err := model.ParseTimeRange(q.TimeRange)
	if err != nil {
		h.fail(c, err, "parse time range")
		return "", false
	}
	return tr, true
}

func (h *AnalyticsHandler) Overview(c *gin.Context) {
	serveAnalytics(h, c, "load overview", h.analytics.Overview)
}

func (h *AnalyticsHandler) Monthly(c *gin.Context) {
	serveAnalytics(h, c, "load monthly stats", h.analytics.MonthlyStats)
}

func (h *AnalyticsHandler) Invoices(c *gin.Context) {
	serveAnalytics(h, c, "load invoice analytics", h.analytics.Invoices)
}

func (h *AnalyticsHandler) Clients(c *gin.Context) {
	serveAnalytics(h, c, "load client analytics", h.analytics.Clients)
}

func (h *AnalyticsHandler) Documents(c *gin.Context) {
	serveAnalytics(h, c, "load document analytics", h.analytics.Documents)
}

func (h *AnalyticsHandler) Team(c *gin.Context) {
	serveAnalytics(h, c, "load team analytics", h.analytics.Team)
}

func (h *AnalyticsHandler) Payments(c *gin.Context) {
	serveAnalytics(h, c, "load payment analytics", h.analytics.Payments)
}

func (h *AnalyticsHandler) Report(c *gin.Context) {
	serveAnalytics(h, c, "build report", h.analytics.Report)
}

// Export streams the full report as a downloadable json or csv file.
func (h *AnalyticsHandler) Export(c *gin.Context) {
	ctx := c.Request.Context()

	var q dto.ExportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, err)
		return
	}
	tr, err := model.ParseTimeRange(q.TimeRange)
	if err != nil {
		h.fail(c, err, "parse time range")
		return
	}

	export, err := h.analytics.Export(ctx, middleware.GetOrganizationID(ctx), tr, q.Format)
	if err != nil {
		h.fail(c, err, "export analytics")
		return
	}

	c.Header("Content-Disposition", export.ContentDisposition())
	c.Data(http.StatusOK, export.ContentType, export.Body)
}
