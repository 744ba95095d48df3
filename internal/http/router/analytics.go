package router

import (
	"github.com/gin-gonic/gin"

	"invoicely.app/api/internal/http/handler"
)

func AnalyticsRouter(rg *gin.RouterGroup, h *handler.AnalyticsHandler) {
	rg.GET("/overview", h.Overview)
	rg.GET("/monthly", h.Monthly)
	rg.GET("/invoices", h.Invoices)
	rg.GET("/clients", h.Clients)
	rg.GET("/documents", h.Documents)
	rg.GET("/team", h.Team)
	rg.GET("/payments", h.Payments)
	rg.GET("/report", h.Report)
	rg.GET("/export", h.Export)
}
