package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"invoicely.app/api/common/id"
	"invoicely.app/api/common/logger"
	"invoicely.app/api/internal/model"
	"invoicely.app/api/internal/store"
)

const DefaultInvitationExpiry = 7 * 24 * time.Hour

var (
	// ErrInvitationNotFound covers unknown, expired, accepted and cancelled
	// tokens alike so callers cannot probe which tokens once existed.
	ErrInvitationNotFound = errors.New("invitation not found or expired")
	ErrEmailRequired      = errors.New("email is required")
	ErrInvalidRole        = errors.New("invalid role")
	ErrAlreadyMember      = errors.New("user is already a member of this organization")
	ErrInvitationPending  = errors.New("an invitation is already pending for this email")
)

type InviteParams struct {
	OrganizationID int64
	Email          string
	Role           string
	Department     *string
	Position       *string
	InvitedBy      int64
}

type InvitationService interface {
	Create(ctx context.Context, params InviteParams) (*model.OrganizationUser, error)
	Validate(ctx context.Context, token string) (*model.OrganizationUser, error)
	Details(ctx context.Context, token string) (*model.Invitation, error)
	Accept(ctx context.Context, token string, userID int64) (*model.OrganizationUser, error)
	Cancel(ctx context.Context, orgID, invitationID int64) (bool, error)
	Resend(ctx context.Context, params InviteParams) (*model.OrganizationUser, error)
	CleanupExpired(ctx context.Context, token string) error
	CleanupExpiredForOrg(ctx context.Context, orgID int64) (int, error)
	CleanupExpiredAll(ctx context.Context) (int, error)
	ListPending(ctx context.Context, orgID int64) ([]model.OrganizationUser, error)
}

type invitationService struct {
	memberships store.MembershipStore
	orgs        store.OrganizationStore
	txRunner    TxRunner
	notifier    Notifier
	expiry      time.Duration
	now         func() time.Time
}

// NewInvitationService builds the invitation lifecycle service. A zero expiry
// selects DefaultInvitationExpiry and a nil clock selects time.Now.
func NewInvitationService(
	memberships store.MembershipStore,
	orgs store.OrganizationStore,
	txRunner TxRunner,
	notifier Notifier,
	expiry time.Duration,
	now func() time.Time,
) InvitationService {
	if expiry <= 0 {
		expiry = DefaultInvitationExpiry
	}
	if now == nil {
		now = time.Now
	}
	if notifier == nil {
		notifier = NopNotifier()
	}
	return &invitationService{
		memberships: memberships,
		orgs:        orgs,
		txRunner:    txRunner,
		notifier:    notifier,
		expiry:      expiry,
		now:         now,
	}
}

func (s *invitationService) Create(ctx context.Context, params InviteParams) (*model.OrganizationUser, error) {
	email := normalizeEmail(params.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	role, err := parseInviteRole(params.Role, model.RoleMember)
	if err != nil {
		return nil, err
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		OrganizationID: logger.Ptr(params.OrganizationID),
		UserID:         logger.Ptr(params.InvitedBy),
	})

	org, err := s.orgs.GetByID(ctx, params.OrganizationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("getting organization: %w", err)
	}

	if _, err := s.memberships.GetActiveMemberByEmail(ctx, params.OrganizationID, email); err == nil {
		return nil, ErrAlreadyMember
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("checking membership: %w", err)
	}

	now := s.now()
	if n, err := s.memberships.DeleteExpiredForEmail(ctx, params.OrganizationID, email, now); err != nil {
		return nil, fmt.Errorf("clearing expired invitations: %w", err)
	} else if n > 0 {
		slog.InfoContext(ctx, "removed expired invitations before re-inviting", "email", email, "count", n)
	}

	expiry := now.Add(s.expiry)
	token := newInvitationToken()
	inv := &model.OrganizationUser{
		ID:               id.New(),
		OrganizationID:   params.OrganizationID,
		Email:            email,
		Role:             role,
		Department:       params.Department,
		Position:         params.Position,
		Status:           model.MembershipStatusPending,
		InvitationToken:  &token,
		InvitationExpiry: &expiry,
		InvitedBy:        &params.InvitedBy,
	}

	if err := s.memberships.Create(ctx, inv); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, ErrInvitationPending
		}
		return nil, fmt.Errorf("creating invitation: %w", err)
	}

	slog.InfoContext(ctx, "invitation created",
		"invitation_id", inv.ID,
		"email", email,
		"role", inv.Role,
		"expires_at", expiry,
	)

	s.sendInvitationEmail(ctx, inv, org.Name)
	return inv, nil
}

func (s *invitationService) Validate(ctx context.Context, token string) (*model.OrganizationUser, error) {
	inv, err := s.Details(ctx, token)
	if err != nil {
		return nil, err
	}
	return &inv.OrganizationUser, nil
}

func (s *invitationService) Details(ctx context.Context, token string) (*model.Invitation, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvitationNotFound
	}
	inv, err := s.memberships.GetValidInvitationByToken(ctx, token, s.now())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, fmt.Errorf("getting invitation: %w", err)
	}
	return inv, nil
}

func (s *invitationService) Accept(ctx context.Context, token string, userID int64) (*model.OrganizationUser, error) {
	if err := s.CleanupExpired(ctx, token); err != nil {
		return nil, err
	}

	inv, err := s.Validate(ctx, token)
	if err != nil {
		return nil, err
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		OrganizationID: logger.Ptr(inv.OrganizationID),
		UserID:         logger.Ptr(userID),
		InvitationID:   logger.Ptr(inv.ID),
	})

	var accepted *model.OrganizationUser
	err = s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		if _, err := stores.Memberships().GetActiveMembership(ctx, inv.OrganizationID, userID); err == nil {
			return ErrAlreadyMember
		} else if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("checking membership: %w", err)
		}

		user, err := stores.Users().GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("getting user: %w", err)
		}

		m, err := stores.Memberships().AcceptInvitation(ctx, inv.ID, userID)
		if err != nil {
			switch {
			case errors.Is(err, store.ErrNotFound):
				return ErrInvitationNotFound
			case errors.Is(err, store.ErrConflict):
				return ErrAlreadyMember
			}
			return fmt.Errorf("accepting invitation: %w", err)
		}

		if user.DefaultOrganizationID == nil {
			if err := stores.Users().SetDefaultOrganization(ctx, userID, &inv.OrganizationID); err != nil {
				return fmt.Errorf("setting default organization: %w", err)
			}
		}

		accepted = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "invitation accepted", "role", accepted.Role)

	s.notify(ctx, OrganizationNotification{
		OrganizationID: accepted.OrganizationID,
		Type:           model.NotificationMemberJoined,
		Data: map[string]any{
			"user_id": fmt.Sprint(userID),
			"email":   accepted.Email,
			"role":    string(accepted.Role),
		},
		Channels:       []model.NotificationChannel{model.ChannelInApp},
		ExcludeUserIDs: []int64{userID},
	})

	return accepted, nil
}

func (s *invitationService) Cancel(ctx context.Context, orgID, invitationID int64) (bool, error) {
	if err := s.memberships.DeletePendingInvitation(ctx, orgID, invitationID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("cancelling invitation: %w", err)
	}

	slog.InfoContext(ctx, "invitation cancelled",
		"organization_id", orgID,
		"invitation_id", invitationID,
	)
	return true, nil
}

// Resend rotates the token of the pending invitation for the email, or
// creates one when none exists. Omitted role, department and position keep
// the values already on the invitation.
func (s *invitationService) Resend(ctx context.Context, params InviteParams) (*model.OrganizationUser, error) {
	email := normalizeEmail(params.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	params.Email = email

	existing, err := s.memberships.GetPendingInvitationByEmail(ctx, params.OrganizationID, email)
	if errors.Is(err, store.ErrNotFound) {
		inv, createErr := s.Create(ctx, params)
		if !errors.Is(createErr, ErrInvitationPending) {
			return inv, createErr
		}
		// a concurrent invite won the insert; rotate that one instead
		existing, err = s.memberships.GetPendingInvitationByEmail(ctx, params.OrganizationID, email)
	}
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, fmt.Errorf("getting pending invitation: %w", err)
	}

	role, err := parseInviteRole(params.Role, existing.Role)
	if err != nil {
		return nil, err
	}

	org, err := s.orgs.GetByID(ctx, params.OrganizationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("getting organization: %w", err)
	}

	token := newInvitationToken()
	for existing.InvitationToken != nil && token == *existing.InvitationToken {
		token = newInvitationToken()
	}
	expiry := s.now().Add(s.expiry)

	existing.InvitationToken = &token
	existing.InvitationExpiry = &expiry
	existing.Role = role
	if params.Department != nil {
		existing.Department = params.Department
	}
	if params.Position != nil {
		existing.Position = params.Position
	}

	if err := s.memberships.RotateInvitation(ctx, existing); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, fmt.Errorf("rotating invitation: %w", err)
	}

	slog.InfoContext(ctx, "invitation resent",
		"organization_id", existing.OrganizationID,
		"invitation_id", existing.ID,
		"email", email,
		"expires_at", expiry,
	)

	s.sendInvitationEmail(ctx, existing, org.Name)
	return existing, nil
}

func (s *invitationService) CleanupExpired(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	n, err := s.memberships.DeleteExpiredByToken(ctx, token, s.now())
	if err != nil {
		return fmt.Errorf("deleting expired invitation: %w", err)
	}
	if n > 0 {
		slog.InfoContext(ctx, "expired invitation removed on access")
	}
	return nil
}

func (s *invitationService) CleanupExpiredForOrg(ctx context.Context, orgID int64) (int, error) {
	deleted, err := s.memberships.DeleteExpiredForOrg(ctx, orgID, s.now())
	if err != nil {
		return 0, fmt.Errorf("deleting expired invitations: %w", err)
	}
	logExpired(ctx, deleted)
	return len(deleted), nil
}

func (s *invitationService) CleanupExpiredAll(ctx context.Context) (int, error) {
	deleted, err := s.memberships.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("deleting expired invitations: %w", err)
	}
	logExpired(ctx, deleted)
	return len(deleted), nil
}

func (s *invitationService) ListPending(ctx context.Context, orgID int64) ([]model.OrganizationUser, error) {
	pending, err := s.memberships.ListPendingInvitations(ctx, orgID, s.now())
	if err != nil {
		return nil, fmt.Errorf("listing pending invitations: %w", err)
	}
	return pending, nil
}

func (s *invitationService) sendInvitationEmail(ctx context.Context, inv *model.OrganizationUser, orgName string) {
	if inv.InvitationToken == nil || inv.InvitationExpiry == nil {
		return
	}
	var inviter int64
	if inv.InvitedBy != nil {
		inviter = *inv.InvitedBy
	}
	err := s.notifier.SendInvitationEmail(ctx, InvitationEmail{
		Email:            inv.Email,
		OrganizationID:   inv.OrganizationID,
		OrganizationName: orgName,
		InviterID:        inviter,
		Role:             inv.Role,
		Token:            *inv.InvitationToken,
		ExpiresAt:        *inv.InvitationExpiry,
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to enqueue invitation email",
			"error", err,
			"invitation_id", inv.ID,
		)
	}
}

func (s *invitationService) notify(ctx context.Context, n OrganizationNotification) {
	if err := s.notifier.CreateOrganizationNotification(ctx, n); err != nil {
		slog.WarnContext(ctx, "failed to enqueue organization notification",
			"error", err,
			"type", n.Type,
		)
	}
}

func logExpired(ctx context.Context, deleted []model.ExpiredInvitation) {
	for _, inv := range deleted {
		slog.InfoContext(ctx, "expired invitation deleted",
			"organization_id", inv.OrganizationID,
			"invitation_id", inv.ID,
			"email", inv.Email,
		)
	}
	if len(deleted) > 0 {
		slog.InfoContext(ctx, "expired invitations cleaned up", "count", len(deleted))
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// parseInviteRole resolves a requested role; empty selects fallback. OWNER is
// never granted through an invitation.
func parseInviteRole(raw string, fallback model.Role) (model.Role, error) {
	if strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	role, ok := model.ParseRole(raw)
	if !ok || role == model.RoleOwner {
		return "", ErrInvalidRole
	}
	return role, nil
}

func newInvitationToken() string {
	return uuid.NewString()
}
