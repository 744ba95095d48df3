package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"invoicely.app/api/common/id"
	"invoicely.app/api/common/logger"
	"invoicely.app/api/internal/model"
	"invoicely.app/api/internal/store"
)

var (
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrNameRequired         = errors.New("organization name is required")
	ErrBusinessOrgLimit     = errors.New("business accounts can only have one organization")
	ErrMemberNotFound       = errors.New("member not found")
)

type CreateOrganizationParams struct {
	Name        string
	Industry    *string
	Description *string
	Type        *string
	Size        *string
	Settings    model.Settings
}

// UpdateOrganizationParams is a patch; nil fields are left unchanged.
type UpdateOrganizationParams struct {
	Name        *string
	Industry    *string
	Description *string
	Type        *string
	Size        *string
}

type OrganizationService interface {
	Create(ctx context.Context, creatorID int64, params CreateOrganizationParams) (*model.Organization, error)
	ListForUser(ctx context.Context, userID int64) ([]model.UserOrganization, error)
	Get(ctx context.Context, orgID int64) (*model.Organization, error)
	Update(ctx context.Context, orgID int64, params UpdateOrganizationParams) (*model.Organization, error)
	Delete(ctx context.Context, orgID int64) error

	ListMembers(ctx context.Context, orgID int64) ([]model.Member, error)
	UpdateMember(ctx context.Context, orgID, userID int64, patch model.MemberPatch) (*model.OrganizationUser, error)
	RemoveMember(ctx context.Context, orgID, userID int64) error
	MembershipFor(ctx context.Context, orgID, userID int64) (*model.OrganizationUser, error)

	GetSettings(ctx context.Context, orgID int64) (model.Settings, error)
	UpdateSettings(ctx context.Context, orgID int64, incoming model.Settings) (model.Settings, error)
}

type organizationService struct {
	orgs        store.OrganizationStore
	memberships store.MembershipStore
	txRunner    TxRunner
	notifier    Notifier
}

func NewOrganizationService(
	orgs store.OrganizationStore,
	memberships store.MembershipStore,
	txRunner TxRunner,
	notifier Notifier,
) OrganizationService {
	if notifier == nil {
		notifier = NopNotifier()
	}
	return &organizationService{
		orgs:        orgs,
		memberships: memberships,
		txRunner:    txRunner,
		notifier:    notifier,
	}
}

// Create inserts the organization and the creator's OWNER membership in one
// transaction. The creator row stays locked until commit, which serializes
// concurrent creations by the same business account.
func (s *organizationService) Create(ctx context.Context, creatorID int64, params CreateOrganizationParams) (*model.Organization, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	settings := params.Settings
	if settings == nil {
		settings = model.Settings{}
	}

	org := &model.Organization{
		ID:           id.New(),
		Name:         name,
		Status:       model.OrganizationStatusActive,
		Industry:     params.Industry,
		Description:  params.Description,
		Type:         params.Type,
		Size:         params.Size,
		IsSubscribed: true,
		Settings:     settings,
		CreatedBy:    creatorID,
	}

	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		user, err := stores.Users().GetForUpdate(ctx, creatorID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("locking user: %w", err)
		}

		if user.IsBusiness() {
			owned, err := stores.Users().CountOwnedOrganizations(ctx, creatorID)
			if err != nil {
				return fmt.Errorf("counting owned organizations: %w", err)
			}
			if owned > 0 {
				return ErrBusinessOrgLimit
			}
		}

		if err := stores.Organizations().Create(ctx, org); err != nil {
			return fmt.Errorf("creating organization: %w", err)
		}

		owner := &model.OrganizationUser{
			ID:             id.New(),
			OrganizationID: org.ID,
			UserID:         &creatorID,
			Email:          user.Email,
			Role:           model.RoleOwner,
			Status:         model.MembershipStatusActive,
		}
		if err := stores.Memberships().Create(ctx, owner); err != nil {
			return fmt.Errorf("creating owner membership: %w", err)
		}

		if user.IsBusiness() {
			if err := stores.Users().SetDefaultOrganization(ctx, creatorID, &org.ID); err != nil {
				return fmt.Errorf("setting default organization: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "organization created",
		"organization_id", org.ID,
		"user_id", creatorID,
	)
	return org, nil
}

func (s *organizationService) ListForUser(ctx context.Context, userID int64) ([]model.UserOrganization, error) {
	orgs, err := s.orgs.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing organizations: %w", err)
	}
	return orgs, nil
}

func (s *organizationService) Get(ctx context.Context, orgID int64) (*model.Organization, error) {
	org, err := s.orgs.GetByID(ctx, orgID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("getting organization: %w", err)
	}
	return org, nil
}

func (s *organizationService) Update(ctx context.Context, orgID int64, params UpdateOrganizationParams) (*model.Organization, error) {
	org, err := s.Get(ctx, orgID)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		org.Name = name
	}
	if params.Industry != nil {
		org.Industry = params.Industry
	}
	if params.Description != nil {
		org.Description = params.Description
	}
	if params.Type != nil {
		org.Type = params.Type
	}
	if params.Size != nil {
		org.Size = params.Size
	}

	if err := s.orgs.Update(ctx, org); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("updating organization: %w", err)
	}
	return org, nil
}

func (s *organizationService) Delete(ctx context.Context, orgID int64) error {
	if err := s.orgs.SoftDelete(ctx, orgID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrOrganizationNotFound
		}
		return fmt.Errorf("deleting organization: %w", err)
	}
	slog.InfoContext(ctx, "organization deleted", "organization_id", orgID)
	return nil
}

func (s *organizationService) ListMembers(ctx context.Context, orgID int64) ([]model.Member, error) {
	members, err := s.memberships.ListActiveMembers(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	return members, nil
}

// UpdateMember applies patch to an active membership. Demoting the last
// OWNER is allowed.
func (s *organizationService) UpdateMember(ctx context.Context, orgID, userID int64, patch model.MemberPatch) (*model.OrganizationUser, error) {
	if patch.Role != nil && !patch.Role.Valid() {
		return nil, ErrInvalidRole
	}

	member, err := s.MembershipFor(ctx, orgID, userID)
	if err != nil {
		return nil, err
	}

	if patch.Role != nil {
		member.Role = *patch.Role
	}
	if patch.Department != nil {
		member.Department = patch.Department
	}
	if patch.Position != nil {
		member.Position = patch.Position
	}

	if err := s.memberships.UpdateMember(ctx, member); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("updating member: %w", err)
	}

	slog.InfoContext(ctx, "member updated",
		"organization_id", orgID,
		"member_user_id", userID,
		"role", member.Role,
	)
	return member, nil
}

func (s *organizationService) RemoveMember(ctx context.Context, orgID, userID int64) error {
	member, err := s.MembershipFor(ctx, orgID, userID)
	if err != nil {
		return err
	}

	if err := s.memberships.DeleteMember(ctx, orgID, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("removing member: %w", err)
	}

	slog.InfoContext(ctx, "member removed",
		"organization_id", orgID,
		"member_user_id", userID,
	)

	err = s.notifier.CreateOrganizationNotification(ctx, OrganizationNotification{
		OrganizationID: orgID,
		Type:           model.NotificationMemberLeft,
		Data: map[string]any{
			"user_id": fmt.Sprint(userID),
			"email":   member.Email,
			"role":    string(member.Role),
		},
		Channels:       []model.NotificationChannel{model.ChannelInApp},
		ExcludeUserIDs: []int64{userID},
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to enqueue member left notification", "error", err)
	}
	return nil
}

func (s *organizationService) MembershipFor(ctx context.Context, orgID, userID int64) (*model.OrganizationUser, error) {
	member, err := s.memberships.GetActiveMembership(ctx, orgID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("getting membership: %w", err)
	}
	return member, nil
}

func (s *organizationService) GetSettings(ctx context.Context, orgID int64) (model.Settings, error) {
	org, err := s.Get(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return org.Settings, nil
}

// UpdateSettings merges incoming into the stored settings under a row lock.
// The merge is shallow: a nested object in incoming replaces the stored one.
func (s *organizationService) UpdateSettings(ctx context.Context, orgID int64, incoming model.Settings) (model.Settings, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{OrganizationID: logger.Ptr(orgID)})

	var saved model.Settings
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		existing, err := stores.Organizations().GetSettingsForUpdate(ctx, orgID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrOrganizationNotFound
			}
			return fmt.Errorf("locking settings: %w", err)
		}

		saved, err = stores.Organizations().UpdateSettings(ctx, orgID, existing.Merge(incoming))
		if err != nil {
			return fmt.Errorf("saving settings: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "organization settings updated", "keys", len(incoming))
	return saved, nil
}
