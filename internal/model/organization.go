package model

import "time"

type OrganizationStatus string

const (
	OrganizationStatusActive  OrganizationStatus = "ACTIVE"
	OrganizationStatusDeleted OrganizationStatus = "DELETED"
)

// Settings is an opaque per-organization key-value document. Updates are
// merged shallowly: top-level keys from the update replace existing ones.
type Settings map[string]any

// Merge returns a copy of s with every top-level key of incoming applied.
// Nested objects are replaced, not merged.
func (s Settings) Merge(incoming Settings) Settings {
	merged := make(Settings, len(s)+len(incoming))
	for k, v := range s {
		merged[k] = v
	}
	for k, v := range incoming {
		merged[k] = v
	}
	return merged
}

type Organization struct {
	ID                  int64              `json:"id,string"`
	Name                string             `json:"name"`
	Status              OrganizationStatus `json:"status"`
	Industry            *string            `json:"industry,omitempty"`
	Description         *string            `json:"description,omitempty"`
	Type                *string            `json:"type,omitempty"`
	Size                *string            `json:"size,omitempty"`
	IsSubscribed        bool               `json:"is_subscribed"`
	SubscriptionTier    *string            `json:"subscription_tier,omitempty"`
	CancelScheduled     bool               `json:"cancel_scheduled"`
	SubscriptionEndDate *time.Time         `json:"subscription_end_date,omitempty"`
	Settings            Settings           `json:"settings"`
	StripeCustomerID    *string            `json:"-"`
	CreatedBy           int64              `json:"created_by,string"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
}

func (o *Organization) IsActive() bool {
	return o.Status == OrganizationStatusActive
}

// UserOrganization is an organization as seen by one of its members.
type UserOrganization struct {
	Organization
	Role         Role             `json:"role"`
	MemberStatus MembershipStatus `json:"user_status"`
}
