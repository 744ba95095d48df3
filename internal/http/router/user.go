package router

import (
	"github.com/gin-gonic/gin"

	"invoicely.app/api/internal/http/handler"
)

func UserRouter(rg *gin.RouterGroup, h *handler.UserHandler) {
	rg.GET("/me", h.Me)
}

func AuthRouter(rg *gin.RouterGroup, h *handler.AuthHandler) {
	rg.POST("/logout", h.Logout)
}
