package store

import (
	"context"
	"time"

	"invoicely.app/api/core/db/sqlc"
	"invoicely.app/api/internal/model"
)

type membershipStore struct {
	queries *sqlc.Queries
}

func newMembershipStore(queries *sqlc.Queries) MembershipStore {
	return &membershipStore{queries: queries}
}

func (s *membershipStore) Create(ctx context.Context, m *model.OrganizationUser) error {
	row, err := s.queries.CreateOrganizationUser(ctx, sqlc.CreateOrganizationUserParams{
		ID:               m.ID,
		OrganizationID:   m.OrganizationID,
		UserID:           m.UserID,
		Email:            m.Email,
		Role:             string(m.Role),
		Department:       m.Department,
		Position:         m.Position,
		Status:           string(m.Status),
		InvitationToken:  m.InvitationToken,
		InvitationExpiry: nullableTimestamptz(m.InvitationExpiry),
		InvitedBy:        m.InvitedBy,
	})
	if err != nil {
		return mapError(err)
	}
	*m = *toOrganizationUserModel(row)
	return nil
}

func (s *membershipStore) GetValidInvitationByToken(ctx context.Context, token string, now time.Time) (*model.Invitation, error) {
	row, err := s.queries.GetValidInvitationByToken(ctx, sqlc.GetValidInvitationByTokenParams{
		Token: token,
		Now:   timestamptz(now),
	})
	if err != nil {
		return nil, mapError(err)
	}
	return &model.Invitation{
		OrganizationUser: *toOrganizationUserModel(sqlc.OrganizationUser{
			ID:               row.ID,
			OrganizationID:   row.OrganizationID,
			UserID:           row.UserID,
			Email:            row.Email,
			Role:             row.Role,
			Department:       row.Department,
			Position:         row.Position,
			Status:           row.Status,
			InvitationToken:  row.InvitationToken,
			InvitationExpiry: row.InvitationExpiry,
			InvitedBy:        row.InvitedBy,
			CreatedAt:        row.CreatedAt,
			UpdatedAt:        row.UpdatedAt,
		}),
		OrganizationName: row.OrganizationName,
	}, nil
}

func (s *membershipStore) GetPendingInvitationByEmail(ctx context.Context, orgID int64, email string) (*model.OrganizationUser, error) {
	row, err := s.queries.GetPendingInvitationByEmail(ctx, sqlc.GetPendingInvitationByEmailParams{
		OrganizationID: orgID,
		Email:          email,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return toOrganizationUserModel(row), nil
}

func (s *membershipStore) ListPendingInvitations(ctx context.Context, orgID int64, now time.Time) ([]model.OrganizationUser, error) {
	rows, err := s.queries.ListPendingInvitations(ctx, sqlc.ListPendingInvitationsParams{
		OrganizationID: orgID,
		Now:            timestamptz(now),
	})
	if err != nil {
		return nil, err
	}
	return toOrganizationUserModels(rows), nil
}

// AcceptInvitation attaches userID to a still-pending invitation. It returns
// ErrNotFound when the row was accepted or removed concurrently.
func (s *membershipStore) AcceptInvitation(ctx context.Context, id, userID int64) (*model.OrganizationUser, error) {
	row, err := s.queries.AcceptInvitation(ctx, sqlc.AcceptInvitationParams{
		ID:     id,
		UserID: &userID,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return toOrganizationUserModel(row), nil
}

func (s *membershipStore) RotateInvitation(ctx context.Context, m *model.OrganizationUser) error {
	row, err := s.queries.RotateInvitation(ctx, sqlc.RotateInvitationParams{
		ID:               m.ID,
		InvitationToken:  m.InvitationToken,
		InvitationExpiry: nullableTimestamptz(m.InvitationExpiry),
		Role:             string(m.Role),
		Department:       m.Department,
		Position:         m.Position,
	})
	if err != nil {
		return mapError(err)
	}
	*m = *toOrganizationUserModel(row)
	return nil
}

func (s *membershipStore) DeletePendingInvitation(ctx context.Context, orgID, id int64) error {
	n, err := s.queries.DeletePendingInvitation(ctx, sqlc.DeletePendingInvitationParams{
		ID:             id,
		OrganizationID: orgID,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *membershipStore) DeleteExpiredByToken(ctx context.Context, token string, now time.Time) (int64, error) {
	return s.queries.DeleteExpiredInvitationByToken(ctx, sqlc.DeleteExpiredInvitationByTokenParams{
		Token: token,
		Now:   timestamptz(now),
	})
}

func (s *membershipStore) DeleteExpiredForEmail(ctx context.Context, orgID int64, email string, now time.Time) (int64, error) {
	return s.queries.DeleteExpiredInvitationsForEmail(ctx, sqlc.DeleteExpiredInvitationsForEmailParams{
		OrganizationID: orgID,
		Email:          email,
		Now:            timestamptz(now),
	})
}

func (s *membershipStore) DeleteExpiredForOrg(ctx context.Context, orgID int64, now time.Time) ([]model.ExpiredInvitation, error) {
	rows, err := s.queries.DeleteExpiredInvitationsForOrg(ctx, sqlc.DeleteExpiredInvitationsForOrgParams{
		OrganizationID: orgID,
		Now:            timestamptz(now),
	})
	if err != nil {
		return nil, err
	}
	result := make([]model.ExpiredInvitation, len(rows))
	for i, row := range rows {
		result[i] = model.ExpiredInvitation{ID: row.ID, OrganizationID: row.OrganizationID, Email: row.Email}
	}
	return result, nil
}

func (s *membershipStore) DeleteExpired(ctx context.Context, now time.Time) ([]model.ExpiredInvitation, error) {
	rows, err := s.queries.DeleteExpiredInvitations(ctx, timestamptz(now))
	if err != nil {
		return nil, err
	}
	result := make([]model.ExpiredInvitation, len(rows))
	for i, row := range rows {
		result[i] = model.ExpiredInvitation{ID: row.ID, OrganizationID: row.OrganizationID, Email: row.Email}
	}
	return result, nil
}

func (s *membershipStore) GetActiveMembership(ctx context.Context, orgID, userID int64) (*model.OrganizationUser, error) {
	row, err := s.queries.GetActiveMembership(ctx, sqlc.GetActiveMembershipParams{
		OrganizationID: orgID,
		UserID:         &userID,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return toOrganizationUserModel(row), nil
}

func (s *membershipStore) GetActiveMemberByEmail(ctx context.Context, orgID int64, email string) (*model.OrganizationUser, error) {
	row, err := s.queries.GetActiveMemberByEmail(ctx, sqlc.GetActiveMemberByEmailParams{
		OrganizationID: orgID,
		Email:          email,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return toOrganizationUserModel(row), nil
}

func (s *membershipStore) ListActiveMembers(ctx context.Context, orgID int64) ([]model.Member, error) {
	rows, err := s.queries.ListActiveMembers(ctx, orgID)
	if err != nil {
		return nil, err
	}
	result := make([]model.Member, len(rows))
	for i, row := range rows {
		result[i] = model.Member{
			OrganizationUser: *toOrganizationUserModel(sqlc.OrganizationUser{
				ID:               row.ID,
				OrganizationID:   row.OrganizationID,
				UserID:           row.UserID,
				Email:            row.Email,
				Role:             row.Role,
				Department:       row.Department,
				Position:         row.Position,
				Status:           row.Status,
				InvitationToken:  row.InvitationToken,
				InvitationExpiry: row.InvitationExpiry,
				InvitedBy:        row.InvitedBy,
				CreatedAt:        row.CreatedAt,
				UpdatedAt:        row.UpdatedAt,
			}),
			Name: row.UserName,
		}
	}
	return result, nil
}

func (s *membershipStore) UpdateMember(ctx context.Context, m *model.OrganizationUser) error {
	row, err := s.queries.UpdateMember(ctx, sqlc.UpdateMemberParams{
		OrganizationID: m.OrganizationID,
		UserID:         m.UserID,
		Role:           string(m.Role),
		Department:     m.Department,
		Position:       m.Position,
	})
	if err != nil {
		return mapError(err)
	}
	*m = *toOrganizationUserModel(row)
	return nil
}

func (s *membershipStore) DeleteMember(ctx context.Context, orgID, userID int64) error {
	n, err := s.queries.DeleteMember(ctx, sqlc.DeleteMemberParams{
		OrganizationID: orgID,
		UserID:         &userID,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *membershipStore) CountByRole(ctx context.Context, orgID int64) ([]model.RoleCount, error) {
	rows, err := s.queries.CountMembersByRole(ctx, orgID)
	if err != nil {
		return nil, err
	}
	result := make([]model.RoleCount, len(rows))
	for i, row := range rows {
		result[i] = model.RoleCount{Role: model.Role(row.Role), Count: row.MemberCount}
	}
	return result, nil
}

func toOrganizationUserModel(row sqlc.OrganizationUser) *model.OrganizationUser {
	return &model.OrganizationUser{
		ID:               row.ID,
		OrganizationID:   row.OrganizationID,
		UserID:           row.UserID,
		Email:            row.Email,
		Role:             model.Role(row.Role),
		Department:       row.Department,
		Position:         row.Position,
		Status:           model.MembershipStatus(row.Status),
		InvitationToken:  row.InvitationToken,
		InvitationExpiry: timePtr(row.InvitationExpiry),
		InvitedBy:        row.InvitedBy,
		CreatedAt:        row.CreatedAt.Time,
		UpdatedAt:        row.UpdatedAt.Time,
	}
}

func toOrganizationUserModels(rows []sqlc.OrganizationUser) []model.OrganizationUser {
	result := make([]model.OrganizationUser, len(rows))
	for i, row := range rows {
		result[i] = *toOrganizationUserModel(row)
	}
	return result
}
