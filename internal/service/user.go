package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"invoicely.app/api/internal/model"
	"invoicely.app/api/internal/store"
)

type UserService interface {
	// Profile returns the user with every organization they belong to. The
	// default organization is listed first. A default pointing at an
	// organization the user has since left falls back to the first one.
	Profile(ctx context.Context, userID int64) (*model.User, []model.UserOrganization, error)
}

type userService struct {
	userStore store.UserStore
	orgStore  store.OrganizationStore
}

func NewUserService(userStore store.UserStore, orgStore store.OrganizationStore) UserService {
	return &userService{
		userStore: userStore,
		orgStore:  orgStore,
	}
}

func (s *userService) Profile(ctx context.Context, userID int64) (*model.User, []model.UserOrganization, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("getting user: %w", err)
	}

	orgs, err := s.orgStore.ListForUser(ctx, user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("listing organizations: %w", err)
	}

	user.DefaultOrganizationID = resolveDefaultOrganization(ctx, user.DefaultOrganizationID, orgs)
	if user.DefaultOrganizationID != nil {
		def := *user.DefaultOrganizationID
		slices.SortStableFunc(orgs, func(a, b model.UserOrganization) int {
			switch {
			case a.ID == def:
				return -1
			case b.ID == def:
				return 1
			}
			return 0
		})
	}

	return user, orgs, nil
}

func resolveDefaultOrganization(ctx context.Context, current *int64, orgs []model.UserOrganization) *int64 {
	if len(orgs) == 0 {
		return nil
	}
	if current != nil {
		if slices.ContainsFunc(orgs, func(o model.UserOrganization) bool { return o.ID == *current }) {
			return current
		}
		slog.DebugContext(ctx, "default organization no longer accessible", "organization_id", *current)
	}
	first := orgs[0].ID
	return &first
}
