package dto

import (
	"time"

	"invoicely.app/api/internal/model"
	"invoicely.app/api/internal/service"
)

type InviteRequest struct {
	Email      string  `json:"email" binding:"required,email"`
	Role       *string `json:"role,omitempty" binding:"omitempty,org_role"`
	Department *string `json:"department,omitempty" binding:"omitempty,max=255"`
	Position   *string `json:"position,omitempty" binding:"omitempty,max=255"`
}

func (r InviteRequest) Params(orgID, invitedBy int64) service.InviteParams {
	params := service.InviteParams{
		OrganizationID: orgID,
		Email:          r.Email,
		Department:     r.Department,
		Position:       r.Position,
		InvitedBy:      invitedBy,
	}
	if r.Role != nil {
		params.Role = *r.Role
	}
	return params
}

type AcceptInvitationRequest struct {
	Token string `json:"token" binding:"required"`
}

type ValidateInvitationQuery struct {
	Token string `form:"token" binding:"required"`
}

// InvitationResponse never carries the token; it only travels by email.
type InvitationResponse struct {
	ID             int64                  `json:"id,string"`
	OrganizationID int64                  `json:"organization_id,string"`
	Email          string                 `json:"email"`
	Role           model.Role             `json:"role"`
	Department     *string                `json:"department,omitempty"`
	Position       *string                `json:"position,omitempty"`
	Status         model.MembershipStatus `json:"status"`
	ExpiresAt      *time.Time             `json:"expires_at,omitempty"`
	InvitedBy      *int64                 `json:"invited_by,string,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
}

type InvitationDetailsResponse struct {
	Valid            bool               `json:"valid"`
	OrganizationName string             `json:"organization_name"`
	Invitation       InvitationResponse `json:"invitation"`
}

type InvitationListResponse struct {
	Invitations []InvitationResponse `json:"invitations"`
}

type CleanupResponse struct {
	Deleted int `json:"deleted"`
}

func ToInvitationResponse(inv *model.OrganizationUser) InvitationResponse {
	return InvitationResponse{
		ID:             inv.ID,
		OrganizationID: inv.OrganizationID,
		Email:          inv.Email,
		Role:           inv.Role,
		Department:     inv.Department,
		Position:       inv.Position,
		Status:         inv.Status,
		ExpiresAt:      inv.InvitationExpiry,
		InvitedBy:      inv.InvitedBy,
		CreatedAt:      inv.CreatedAt,
	}
}

func ToInvitationDetailsResponse(inv *model.Invitation) InvitationDetailsResponse {
	return InvitationDetailsResponse{
		Valid:            true,
		OrganizationName: inv.OrganizationName,
		Invitation:       ToInvitationResponse(&inv.OrganizationUser),
	}
}

func ToInvitationListResponse(invs []model.OrganizationUser) InvitationListResponse {
	resp := InvitationListResponse{Invitations: make([]InvitationResponse, len(invs))}
	for i := range invs {
		resp.Invitations[i] = ToInvitationResponse(&invs[i])
	}
	return resp
}
