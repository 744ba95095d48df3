package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"invoicely.app/api/internal/http/dto"
	"invoicely.app/api/internal/http/middleware"
	"invoicely.app/api/internal/model"
	"invoicely.app/api/internal/service"
)

type OrganizationHandler struct {
	orgs service.OrganizationService
	errorWriter
}

func NewOrganizationHandler(orgs service.OrganizationService, exposeInternal bool) *OrganizationHandler {
	return &OrganizationHandler{
		orgs:        orgs,
		errorWriter: errorWriter{exposeInternal: exposeInternal},
	}
}

func (h *OrganizationHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	user := middleware.GetUser(ctx)

	var req dto.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	org, err := h.orgs.Create(ctx, user.ID, req.Params())
	if err != nil {
		h.fail(c, err, "create organization")
		return
	}

	slog.InfoContext(ctx, "organization created", "organization_id", org.ID)
	c.JSON(http.StatusCreated, dto.OrganizationResponse{Organization: org})
}

// ListMine lists the organizations the caller is an active member of.
func (h *OrganizationHandler) ListMine(c *gin.Context) {
	ctx := c.Request.Context()
	user := middleware.GetUser(ctx)

	orgs, err := h.orgs.ListForUser(ctx, user.ID)
	if err != nil {
		h.fail(c, err, "list organizations")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationListResponse(orgs))
}

func (h *OrganizationHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	org, err := h.orgs.Get(ctx, middleware.GetOrganizationID(ctx))
	if err != nil {
		h.fail(c, err, "get organization")
		return
	}

	c.JSON(http.StatusOK, dto.OrganizationResponse{Organization: org})
}

func (h *OrganizationHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	org, err := h.orgs.Update(ctx, middleware.GetOrganizationID(ctx), req.Params())
	if err != nil {
		h.fail(c, err, "update organization")
		return
	}

	c.JSON(http.StatusOK, dto.OrganizationResponse{Organization: org})
}

func (h *OrganizationHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	orgID := middleware.GetOrganizationID(ctx)

	if err := h.orgs.Delete(ctx, orgID); err != nil {
		h.fail(c, err, "delete organization")
		return
	}

	slog.InfoContext(ctx, "organization deleted", "organization_id", orgID)
	c.JSON(http.StatusOK, gin.H{"message": "organization deleted"})
}

func (h *OrganizationHandler) ListMembers(c *gin.Context) {
	ctx := c.Request.Context()

	members, err := h.orgs.ListMembers(ctx, middleware.GetOrganizationID(ctx))
	if err != nil {
		h.fail(c, err, "list members")
		return
	}

	c.JSON(http.StatusOK, dto.ToMemberListResponse(members))
}

func (h *OrganizationHandler) UpdateMember(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := idParam(c, "userId")
	if !ok {
		return
	}

	var req dto.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	member, err := h.orgs.UpdateMember(ctx, middleware.GetOrganizationID(ctx), userID, req.Patch())
	if err != nil {
		h.fail(c, err, "update member")
		return
	}

	c.JSON(http.StatusOK, dto.MemberResponse{Member: member})
}

func (h *OrganizationHandler) RemoveMember(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := idParam(c, "userId")
	if !ok {
		return
	}

	if err := h.orgs.RemoveMember(ctx, middleware.GetOrganizationID(ctx), userID); err != nil {
		h.fail(c, err, "remove member")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "member removed"})
}

func (h *OrganizationHandler) GetSettings(c *gin.Context) {
	ctx := c.Request.Context()

	settings, err := h.orgs.GetSettings(ctx, middleware.GetOrganizationID(ctx))
	if err != nil {
		h.fail(c, err, "get settings")
		return
	}

	c.JSON(http.StatusOK, dto.ToSettingsResponse(settings))
}

// UpdateSettings merges the request body into the stored settings. Only
// top-level keys are merged.
func (h *OrganizationHandler) UpdateSettings(c *gin.Context) {
	ctx := c.Request.Context()

	var incoming model.Settings
	if err := c.ShouldBindJSON(&incoming); err != nil || incoming == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "settings must be a JSON object"})
		return
	}

	settings, err := h.orgs.UpdateSettings(ctx, middleware.GetOrganizationID(ctx), incoming)
	if err != nil {
		h.fail(c, err, "update settings")
		return
	}

	c.JSON(http.StatusOK, dto.ToSettingsResponse(settings))
}
