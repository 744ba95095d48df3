package dto

import "invoicely.app/api/internal/model"

type UpdateMemberRequest struct {
	Role       *string `json:"role,omitempty" binding:"omitempty,org_role"`
	Department *string `json:"department,omitempty" binding:"omitempty,max=255"`
	Position   *string `json:"position,omitempty" binding:"omitempty,max=255"`
}

// Patch converts the request into a member patch. The role has already
// passed the org_role check, so parsing cannot fail here.
func (r UpdateMemberRequest) Patch() model.MemberPatch {
	patch := model.MemberPatch{
		Department: r.Department,
		Position:   r.Position,
	}
	if r.Role != nil {
		role, _ := model.ParseRole(*r.Role)
		patch.Role = &role
	}
	return patch
}

type MemberListResponse struct {
	Members []model.Member `json:"members"`
}

type MemberResponse struct {
	Member *model.OrganizationUser `json:"member"`
}

func ToMemberListResponse(members []model.Member) MemberListResponse {
	if members == nil {
		members = []model.Member{}
	}
	return MemberListResponse{Members: members}
}
