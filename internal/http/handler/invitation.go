package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"invoicely.app/api/common/logger"
	"invoicely.app/api/internal/http/dto"
	"invoicely.app/api/internal/http/middleware"
	"invoicely.app/api/internal/service"
)

type InvitationHandler struct {
	invitations service.InvitationService
	errorWriter
}

func NewInvitationHandler(invitations service.InvitationService, exposeInternal bool) *InvitationHandler {
	return &InvitationHandler{
		invitations: invitations,
		errorWriter: errorWriter{exposeInternal: exposeInternal},
	}
}

// Validate is public: the accept-invitation page calls it before the
// invitee has signed in.
func (h *InvitationHandler) Validate(c *gin.Context) {
	ctx := c.Request.Context()

	var q dto.ValidateInvitationQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, err)
		return
	}

	inv, err := h.invitations.Details(ctx, q.Token)
	if err != nil {
		h.fail(c, err, "validate invitation")
		return
	}

	c.JSON(http.StatusOK, dto.ToInvitationDetailsResponse(inv))
}

func (h *InvitationHandler) Accept(c *gin.Context) {
	ctx := c.Request.Context()
	user := middleware.GetUser(ctx)

	var req dto.AcceptInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	member, err := h.invitations.Accept(ctx, req.Token, user.ID)
	if err != nil {
		if errors.Is(err, service.ErrInvitationNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.fail(c, err, "accept invitation")
		return
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		OrganizationID: logger.Ptr(member.OrganizationID),
		InvitationID:   logger.Ptr(member.ID),
	})
	slog.InfoContext(ctx, "invitation accepted")

	c.JSON(http.StatusOK, dto.MemberResponse{Member: member})
}

func (h *InvitationHandler) Invite(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	inv, err := h.invitations.Create(ctx, req.Params(middleware.GetOrganizationID(ctx), middleware.GetUser(ctx).ID))
	if err != nil {
		h.fail(c, err, "create invitation")
		return
	}

	c.JSON(http.StatusCreated, dto.ToInvitationResponse(inv))
}

func (h *InvitationHandler) Resend(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	inv, err := h.invitations.Resend(ctx, req.Params(middleware.GetOrganizationID(ctx), middleware.GetUser(ctx).ID))
	if err != nil {
		h.fail(c, err, "resend invitation")
		return
	}

	c.JSON(http.StatusOK, dto.ToInvitationResponse(inv))
}

func (h *InvitationHandler) ListPending(c *gin.Context) {
	ctx := c.Request.Context()

	invs, err := h.invitations.ListPending(ctx, middleware.GetOrganizationID(ctx))
	if err != nil {
		h.fail(c, err, "list invitations")
		return
	}

	c.JSON(http.StatusOK, dto.ToInvitationListResponse(invs))
}

func (h *InvitationHandler) Cleanup(c *gin.Context) {
	ctx := c.Request.Context()

	deleted, err := h.invitations.CleanupExpiredForOrg(ctx, middleware.GetOrganizationID(ctx))
	if err != nil {
		h.fail(c, err, "clean up invitations")
		return
	}

	c.JSON(http.StatusOK, dto.CleanupResponse{Deleted: deleted})
}

func (h *InvitationHandler) Cancel(c *gin.Context) {
	ctx := c.Request.Context()

	invitationID, ok := idParam(c, "invitationId")
	if !ok {
		return
	}

	cancelled, err := h.invitations.Cancel(ctx, middleware.GetOrganizationID(ctx), invitationID)
	if err != nil {
		h.fail(c, err, "cancel invitation")
		return
	}
	if !cancelled {
		c.JSON(http.StatusNotFound, gin.H{"error": service.ErrInvitationNotFound.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "invitation cancelled"})
}
