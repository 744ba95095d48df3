package router

import (
	"github.com/gin-gonic/gin"

	"invoicely.app/api/internal/http/handler"
	"invoicely.app/api/internal/model"
)

// OrganizationRouter mounts organization, membership, invitation and
// settings routes. Only invitation validation is public.
func OrganizationRouter(
	rg *gin.RouterGroup,
	requireSession gin.HandlerFunc,
	role RoleGuard,
	orgs *handler.OrganizationHandler,
	invitations *handler.InvitationHandler,
) {
	rg.GET("/invitations/validate", invitations.Validate)

	authed := rg.Group("", requireSession)
	authed.POST("", orgs.Create)
	authed.GET("", orgs.ListMine)
	authed.POST("/accept-invitation", invitations.Accept)

	org := authed.Group("/:id")
	{
		org.GET("", role(model.RoleViewer), orgs.Get)
		org.PUT("", role(model.RoleAdmin), orgs.Update)
		org.DELETE("", role(model.RoleOwner), orgs.Delete)

		org.GET("/members", role(model.RoleViewer), orgs.ListMembers)
		org.PUT("/members/:userId", role(model.RoleAdmin), orgs.UpdateMember)
		org.DELETE("/members/:userId", role(model.RoleAdmin), orgs.RemoveMember)

		org.POST("/invite", role(model.RoleAdmin), invitations.Invite)
		org.GET("/invitations/pending", role(model.RoleAdmin), invitations.ListPending)
		org.POST("/invitations/cleanup", role(model.RoleAdmin), invitations.Cleanup)
		org.POST("/invitations/resend", role(model.RoleAdmin), invitations.Resend)
		org.DELETE("/invitations/:invitationId", role(model.RoleAdmin), invitations.Cancel)

		org.GET("/settings", role(model.RoleViewer), orgs.GetSettings)
		org.PUT("/settings", role(model.RoleAdmin), orgs.UpdateSettings)
	}
}
