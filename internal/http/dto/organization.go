package dto

import (
	"invoicely.app/api/internal/model"
	"invoicely.app/api/internal/service"
)

type CreateOrganizationRequest struct {
	Name        string         `json:"name" binding:"required,max=255"`
	Industry    *string        `json:"industry,omitempty" binding:"omitempty,max=255"`
	Description *string        `json:"description,omitempty"`
	Type        *string        `json:"type,omitempty" binding:"omitempty,max=100"`
	Size        *string        `json:"size,omitempty" binding:"omitempty,max=100"`
	Settings    model.Settings `json:"settings,omitempty"`
}

func (r CreateOrganizationRequest) Params() service.CreateOrganizationParams {
	return service.CreateOrganizationParams{
		Name:        r.Name,
		Industry:    r.Industry,
		Description: r.Description,
		Type:        r.Type,
		Size:        r.Size,
		Settings:    r.Settings,
	}
}

// UpdateOrganizationRequest is a patch; omitted fields are left unchanged.
type UpdateOrganizationRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	Industry    *string `json:"industry,omitempty" binding:"omitempty,max=255"`
	Description *string `json:"description,omitempty"`
	Type        *string `json:"type,omitempty" binding:"omitempty,max=100"`
	Size        *string `json:"size,omitempty" binding:"omitempty,max=100"`
}

func (r UpdateOrganizationRequest) Params() service.UpdateOrganizationParams {
	return service.UpdateOrganizationParams{
		Name:        r.Name,
		Industry:    r.Industry,
		Description: r.Description,
		Type:        r.Type,
		Size:        r.Size,
	}
}

type OrganizationResponse struct {
	Organization *model.Organization `json:"organization"`
}

type OrganizationListResponse struct {
	Organizations []model.UserOrganization `json:"organizations"`
}

type SettingsResponse struct {
	Settings model.Settings `json:"settings"`
}

func ToOrganizationListResponse(orgs []model.UserOrganization) OrganizationListResponse {
	if orgs == nil {
		orgs = []model.UserOrganization{}
	}
	return OrganizationListResponse{Organizations: orgs}
}

func ToSettingsResponse(settings model.Settings) SettingsResponse {
	if settings == nil {
		settings = model.Settings{}
	}
	return SettingsResponse{Settings: settings}
}
