package dto

import "invoicely.app/api/internal/model"

type MeResponse struct {
	User          *model.User              `json:"user"`
	Organizations []model.UserOrganization `json:"organizations"`
}

func ToMeResponse(user *model.User, orgs []model.UserOrganization) MeResponse {
	if orgs == nil {
		orgs = []model.UserOrganization{}
	}
	return MeResponse{User: user, Organizations: orgs}
}
