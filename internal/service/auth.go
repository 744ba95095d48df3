package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"invoicely.app/api/common/id"
	"invoicely.app/api/internal/model"
	"invoicely.app/api/internal/store"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrUserNotFound     = errors.New("user not found")
	ErrSessionExpired   = errors.New("session expired")
)

// AuthService resolves the session ids the identity provider hands to the
// dashboard. Sessions are never minted here.
type AuthService interface {
	// Authenticate resolves a raw session id taken from a header or cookie.
	// Malformed ids fail with ErrNotAuthenticated; unknown or expired ones
	// with ErrSessionExpired.
	Authenticate(ctx context.Context, rawSessionID string) (*model.Principal, error)
	// Logout ends one of userID's sessions. A session that is already gone
	// is not an error.
	Logout(ctx context.Context, userID, sessionID int64) error
}

type authService struct {
	userStore    store.UserStore
	sessionStore store.SessionStore
}

func NewAuthService(userStore store.UserStore, sessionStore store.SessionStore) AuthService {
	return &authService{
		userStore:    userStore,
		sessionStore: sessionStore,
	}
}

func (s *authService) Authenticate(ctx context.Context, rawSessionID string) (*model.Principal, error) {
	if rawSessionID == "" {
		return nil, ErrNotAuthenticated
	}
	sessionID, err := id.Parse(rawSessionID)
	if err != nil {
		return nil, ErrNotAuthenticated
	}

	session, err := s.sessionStore.GetValid(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSessionExpired
		}
		return nil, fmt.Errorf("getting session: %w", err)
	}

	user, err := s.userStore.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			slog.WarnContext(ctx, "session outlived its user", "session_id", session.ID, "user_id", session.UserID)
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}

	return &model.Principal{User: user, SessionID: session.ID, ExpiresAt: session.ExpiresAt}, nil
}

func (s *authService) Logout(ctx context.Context, userID, sessionID int64) error {
	deleted, err := s.sessionStore.DeleteForUser(ctx, sessionID, userID)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	if !deleted {
		slog.DebugContext(ctx, "session already gone", "session_id", sessionID)
		return nil
	}
	slog.InfoContext(ctx, "session deleted", "session_id", sessionID)
	return nil
}
