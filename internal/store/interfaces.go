package store

import (
	"context"
	"errors"
	"time"

	"invoicely.app/api/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write violates a uniqueness constraint
var ErrConflict = errors.New("conflict")

// UserStore defines the contract for user data access
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// GetForUpdate locks the user row until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, id int64) (*model.User, error)
	SetDefaultOrganization(ctx context.Context, userID int64, orgID *int64) error
	CountOwnedOrganizations(ctx context.Context, userID int64) (int64, error)
}

// SessionStore reads sessions written by the identity provider.
type SessionStore interface {
	// GetValid returns ErrNotFound for unknown and expired sessions alike.
	GetValid(ctx context.Context, id int64) (*model.Session, error)
	// DeleteForUser reports whether a session owned by userID was removed.
	DeleteForUser(ctx context.Context, id, userID int64) (bool, error)
}

// OrganizationStore defines the contract for organization data access.
// Deleted organizations are invisible to every read.
type OrganizationStore interface {
	Create(ctx context.Context, org *model.Organization) error
	GetByID(ctx context.Context, id int64) (*model.Organization, error)
	Update(ctx context.Context, org *model.Organization) error
	SoftDelete(ctx context.Context, id int64) error
	ListForUser(ctx context.Context, userID int64) ([]model.UserOrganization, error)
	GetSettingsForUpdate(ctx context.Context, id int64) (model.Settings, error)
	UpdateSettings(ctx context.Context, id int64, settings model.Settings) (model.Settings, error)
}

// MembershipStore defines the contract for organization_users, which holds
// both memberships and outstanding invitations.
type MembershipStore interface {
	Create(ctx context.Context, m *model.OrganizationUser) error

	GetValidInvitationByToken(ctx context.Context, token string, now time.Time) (*model.Invitation, error)
	GetPendingInvitationByEmail(ctx context.Context, orgID int64, email string) (*model.OrganizationUser, error)
	ListPendingInvitations(ctx context.Context, orgID int64, now time.Time) ([]model.OrganizationUser, error)
	AcceptInvitation(ctx context.Context, id, userID int64) (*model.OrganizationUser, error)
	RotateInvitation(ctx context.Context, m *model.OrganizationUser) error
	DeletePendingInvitation(ctx context.Context, orgID, id int64) error

	DeleteExpiredByToken(ctx context.Context, token string, now time.Time) (int64, error)
	DeleteExpiredForEmail(ctx context.Context, orgID int64, email string, now time.Time) (int64, error)
	DeleteExpiredForOrg(ctx context.Context, orgID int64, now time.Time) ([]model.ExpiredInvitation, error)
	DeleteExpired(ctx context.Context, now time.Time) ([]model.ExpiredInvitation, error)

	GetActiveMembership(ctx context.Context, orgID, userID int64) (*model.OrganizationUser, error)
	GetActiveMemberByEmail(ctx context.Context, orgID int64, email string) (*model.OrganizationUser, error)
	ListActiveMembers(ctx context.Context, orgID int64) ([]model.Member, error)
	UpdateMember(ctx context.Context, m *model.OrganizationUser) error
	DeleteMember(ctx context.Context, orgID, userID int64) error
	CountByRole(ctx context.Context, orgID int64) ([]model.RoleCount, error)
}

// NotificationStore persists in-app notifications
type NotificationStore interface {
	Create(ctx context.Context, n *model.Notification) error
}

// AnalyticsStore runs the read-only aggregate queries behind the dashboard.
// Every windowed query is bounded by created_at within w, inclusive.
type AnalyticsStore interface {
	InvoiceTotals(ctx context.Context, orgID int64, w model.Window) (model.AmountCount, error)
	InvoiceMonthly(ctx context.Context, orgID int64, w model.Window) ([]model.MonthlyStat, error)
	InvoiceStatusBreakdown(ctx context.Context, orgID int64, w model.Window) ([]model.Breakdown, error)
	CountContracts(ctx context.Context, orgID int64, w model.Window) (int64, error)
	CountClients(ctx context.Context, orgID int64) (int64, error)
	CountNewClients(ctx context.Context, orgID int64, w model.Window) (int64, error)
	TopClients(ctx context.Context, orgID int64, w model.Window, limit int32) ([]model.ClientTotal, error)
	DocumentTotals(ctx context.Context, orgID int64, w model.Window) (count int64, size int64, err error)
	DocumentTypeBreakdown(ctx context.Context, orgID int64, w model.Window) ([]model.SizeBreakdown, error)
	DocumentFolderBreakdown(ctx context.Context, orgID int64, w model.Window) ([]model.SizeBreakdown, error)
	PaymentTotals(ctx context.Context, orgID int64, w model.Window) (model.AmountCount, error)
	PaymentMethodBreakdown(ctx context.Context, orgID int64, w model.Window) ([]model.Breakdown, error)
	PaymentStatusBreakdown(ctx context.Context, orgID int64, w model.Window) ([]model.Breakdown, error)
	MemberPerformance(ctx context.Context, orgID int64, w model.Window) ([]model.MemberPerformance, error)
}
