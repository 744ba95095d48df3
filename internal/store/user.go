package store

import (
	"context"

	"invoicely.app/api/core/db/sqlc"
	"invoicely.app/api/internal/model"
)

type userStore struct {
	queries *sqlc.Queries
}

func newUserStore(queries *sqlc.Queries) UserStore {
	return &userStore{queries: queries}
}

func (s *userStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	row, err := s.queries.GetUser(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return toUserModel(row), nil
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	row, err := s.queries.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, mapError(err)
	}
	return toUserModel(row), nil
}

func (s *userStore) GetForUpdate(ctx context.Context, id int64) (*model.User, error) {
	row, err := s.queries.GetUserForUpdate(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return toUserModel(row), nil
}

func (s *userStore) SetDefaultOrganization(ctx context.Context, userID int64, orgID *int64) error {
	err := s.queries.SetUserDefaultOrganization(ctx, sqlc.SetUserDefaultOrganizationParams{
		ID:                    userID,
		DefaultOrganizationID: orgID,
	})
	return mapError(err)
}

func (s *userStore) CountOwnedOrganizations(ctx context.Context, userID int64) (int64, error) {
	n, err := s.queries.CountOwnedOrganizations(ctx, &userID)
	return n, mapError(err)
}

func toUserModel(row sqlc.User) *model.User {
	return &model.User{
		ID:                    row.ID,
		Name:                  row.Name,
		Email:                 row.Email,
		AccountType:           model.AccountType(row.AccountType),
		DefaultOrganizationID: row.DefaultOrganizationID,
		CreatedAt:             row.CreatedAt.Time,
		UpdatedAt:             row.UpdatedAt.Time,
	}
}
