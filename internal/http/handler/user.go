package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"invoicely.app/api/internal/http/dto"
	"invoicely.app/api/internal/http/middleware"
	"invoicely.app/api/internal/service"
)

type UserHandler struct {
	userService service.UserService
	errorWriter
}

func NewUserHandler(userService service.UserService, exposeInternal bool) *UserHandler {
	return &UserHandler{
		userService: userService,
		errorWriter: errorWriter{exposeInternal: exposeInternal},
	}
}

// Me returns the caller and the organizations they belong to.
func (h *UserHandler) Me(c *gin.Context) {
	ctx := c.Request.Context()

	user, orgs, err := h.userService.Profile(ctx, middleware.GetUser(ctx).ID)
	if err != nil {
		h.fail(c, err, "load profile")
		return
	}

	c.JSON(http.StatusOK, dto.ToMeResponse(user, orgs))
}
