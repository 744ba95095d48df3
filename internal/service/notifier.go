package service

import (
	"context"
	"time"

	"invoicely.app/api/internal/model"
)

// InvitationEmail is everything the worker needs to render and send an
// invitation without reading the database.
type InvitationEmail struct {
	Email            string     `json:"email"`
	OrganizationID   int64      `json:"organization_id,string"`
	OrganizationName string     `json:"organization_name"`
	InviterID        int64      `json:"inviter_id,string"`
	Role             model.Role `json:"role"`
	Token            string     `json:"token"`
	ExpiresAt        time.Time  `json:"expires_at"`
}

// OrganizationNotification fans out to every active member of an
// organization except the excluded roles and users.
type OrganizationNotification struct {
	OrganizationID int64                       `json:"organization_id,string"`
	Type           model.NotificationType      `json:"type"`
	Data           map[string]any              `json:"data"`
	Channels       []model.NotificationChannel `json:"channels"`
	ExcludeRoles   []model.Role                `json:"exclude_roles,omitempty"`
	ExcludeUserIDs []int64                     `json:"exclude_user_ids,omitempty"`
}

// Notifier hands side effects to an asynchronous delivery channel. Callers
// treat failures as non-fatal.
type Notifier interface {
	SendInvitationEmail(ctx context.Context, email InvitationEmail) error
	CreateOrganizationNotification(ctx context.Context, n OrganizationNotification) error
}

type nopNotifier struct{}

// NopNotifier discards every notification.
func NopNotifier() Notifier {
	return nopNotifier{}
}

func (nopNotifier) SendInvitationEmail(context.Context, InvitationEmail) error {
	return nil
}

func (nopNotifier) CreateOrganizationNotification(context.Context, OrganizationNotification) error {
	return nil
}
