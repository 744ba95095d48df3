package store

import (
	"context"
	"encoding/json"
	"fmt"

	"invoicely.app/api/core/db/sqlc"
	"invoicely.app/api/internal/model"
)

type organizationStore struct {
	queries *sqlc.Queries
}

func newOrganizationStore(queries *sqlc.Queries) OrganizationStore {
	return &organizationStore{queries: queries}
}

func (s *organizationStore) Create(ctx context.Context, org *model.Organization) error {
	settings, err := encodeSettings(org.Settings)
	if err != nil {
		return err
	}
	row, err := s.queries.CreateOrganization(ctx, sqlc.CreateOrganizationParams{
		ID:           org.ID,
		Name:         org.Name,
		Status:       string(org.Status),
		Industry:     org.Industry,
		Description:  org.Description,
		Type:         org.Type,
		Size:         org.Size,
		IsSubscribed: org.IsSubscribed,
		Settings:     settings,
		CreatedBy:    org.CreatedBy,
	})
	if err != nil {
		return mapError(err)
	}
	created, err := toOrganizationModel(row)
	if err != nil {
		return err
	}
	*org = *created
	return nil
}

func (s *organizationStore) GetByID(ctx context.Context, id int64) (*model.Organization, error) {
	row, err := s.queries.GetOrganization(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return toOrganizationModel(row)
}

func (s *organizationStore) Update(ctx context.Context, org *model.Organization) error {
	row, err := s.queries.UpdateOrganization(ctx, sqlc.UpdateOrganizationParams{
		ID:          org.ID,
		Name:        org.Name,
		Industry:    org.Industry,
		Description: org.Description,
		Type:        org.Type,
		Size:        org.Size,
	})
	if err != nil {
		return mapError(err)
	}
	updated, err := toOrganizationModel(row)
	if err != nil {
		return err
	}
	*org = *updated
	return nil
}

func (s *organizationStore) SoftDelete(ctx context.Context, id int64) error {
	n, err := s.queries.SoftDeleteOrganization(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *organizationStore) ListForUser(ctx context.Context, userID int64) ([]model.UserOrganization, error) {
	rows, err := s.queries.ListOrganizationsForUser(ctx, &userID)
	if err != nil {
		return nil, err
	}
	result := make([]model.UserOrganization, 0, len(rows))
	for _, row := range rows {
		org, err := toOrganizationModel(sqlc.Organization{
			ID:                  row.ID,
			Name:                row.Name,
			Status:              row.Status,
			Industry:            row.Industry,
			Description:         row.Description,
			Type:                row.Type,
			Size:                row.Size,
			IsSubscribed:        row.IsSubscribed,
			SubscriptionTier:    row.SubscriptionTier,
			CancelScheduled:     row.CancelScheduled,
			SubscriptionEndDate: row.SubscriptionEndDate,
			Settings:            row.Settings,
			StripeCustomerID:    row.StripeCustomerID,
			CreatedBy:           row.CreatedBy,
			CreatedAt:           row.CreatedAt,
			UpdatedAt:           row.UpdatedAt,
		})
		if err != nil {
			return nil, err
		}
		result = append(result, model.UserOrganization{
			Organization: *org,
			Role:         model.Role(row.MemberRole),
			MemberStatus: model.MembershipStatus(row.MemberStatus),
		})
	}
	return result, nil
}

func (s *organizationStore) GetSettingsForUpdate(ctx context.Context, id int64) (model.Settings, error) {
	raw, err := s.queries.GetOrganizationSettingsForUpdate(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return decodeSettings(raw)
}

func (s *organizationStore) UpdateSettings(ctx context.Context, id int64, settings model.Settings) (model.Settings, error) {
	raw, err := encodeSettings(settings)
	if err != nil {
		return nil, err
	}
	saved, err := s.queries.UpdateOrganizationSettings(ctx, sqlc.UpdateOrganizationSettingsParams{
		ID:       id,
		Settings: raw,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return decodeSettings(saved)
}

func encodeSettings(settings model.Settings) ([]byte, error) {
	if settings == nil {
		settings = model.Settings{}
	}
	raw, err := json.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("marshaling settings: %w", err)
	}
	return raw, nil
}

func decodeSettings(raw []byte) (model.Settings, error) {
	settings := model.Settings{}
	if len(raw) == 0 {
		return settings, nil
	}
	if err := json.Unmarshal(raw, &settings); err != nil {
		return nil, fmt.Errorf("unmarshaling settings: %w", err)
	}
	if settings == nil {
		settings = model.Settings{}
	}
	return settings, nil
}

func toOrganizationModel(row sqlc.Organization) (*model.Organization, error) {
	settings, err := decodeSettings(row.Settings)
	if err != nil {
		return nil, err
	}
	return &model.Organization{
		ID:                  row.ID,
		Name:                row.Name,
		Status:              model.OrganizationStatus(row.Status),
		Industry:            row.Industry,
		Description:         row.Description,
		Type:                row.Type,
		Size:                row.Size,
		IsSubscribed:        row.IsSubscribed,
		SubscriptionTier:    row.SubscriptionTier,
		CancelScheduled:     row.CancelScheduled,
		SubscriptionEndDate: timePtr(row.SubscriptionEndDate),
		Settings:            settings,
		StripeCustomerID:    row.StripeCustomerID,
		CreatedBy:           row.CreatedBy,
		CreatedAt:           row.CreatedAt.Time,
		UpdatedAt:           row.UpdatedAt.Time,
	}, nil
}
