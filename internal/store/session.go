package store

import (
	"context"

	"invoicely.app/api/core/db/sqlc"
	"invoicely.app/api/internal/model"
)

type sessionStore struct {
	queries *sqlc.Queries
}

func newSessionStore(queries *sqlc.Queries) SessionStore {
	return &sessionStore{queries: queries}
}

func (s *sessionStore) GetValid(ctx context.Context, id int64) (*model.Session, error) {
	row, err := s.queries.GetValidSession(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return &model.Session{
		ID:        row.ID,
		UserID:    row.UserID,
		ExpiresAt: row.ExpiresAt.Time,
		CreatedAt: row.CreatedAt.Time,
	}, nil
}

func (s *sessionStore) DeleteForUser(ctx context.Context, id, userID int64) (bool, error) {
	n, err := s.queries.DeleteUserSession(ctx, sqlc.DeleteUserSessionParams{ID: id, UserID: userID})
	if err != nil {
		return false, mapError(err)
	}
	return n > 0, nil
}
