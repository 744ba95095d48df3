package model

import (
	"strings"
	"time"
)

type Role string

const (
	RoleOwner   Role = "OWNER"
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleMember  Role = "MEMBER"
	RoleViewer  Role = "VIEWER"
)

var roleRank = map[Role]int{
	RoleViewer:  1,
	RoleMember:  2,
	RoleManager: 3,
	RoleAdmin:   4,
	RoleOwner:   5,
}

// ParseRole accepts any casing of a known role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := roleRank[r]
	return r, ok
}

func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r grants every permission min grants.
func (r Role) AtLeast(min Role) bool {
	return roleRank[r] >= roleRank[min]
}

type MembershipStatus string

const (
	MembershipStatusPending MembershipStatus = "PENDING"
	MembershipStatusActive  MembershipStatus = "ACTIVE"
)

// OrganizationUser is both a membership and, while PENDING with no user
// attached, an outstanding invitation.
type OrganizationUser struct {
	ID               int64            `json:"id,string"`
	OrganizationID   int64            `json:"organization_id,string"`
	UserID           *int64           `json:"user_id,string,omitempty"`
	Email            string           `json:"email"`
	Role             Role             `json:"role"`
	Department       *string          `json:"department,omitempty"`
	Position         *string          `json:"position,omitempty"`
	Status           MembershipStatus `json:"status"`
	InvitationToken  *string          `json:"-"`
	InvitationExpiry *time.Time       `json:"invitation_expiry,omitempty"`
	InvitedBy        *int64           `json:"invited_by,string,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

func (m *OrganizationUser) IsPendingInvitation() bool {
	return m.Status == MembershipStatusPending && m.UserID == nil
}

func (m *OrganizationUser) IsExpired(now time.Time) bool {
	return m.InvitationExpiry != nil && m.InvitationExpiry.Before(now)
}

// Invitation is a pending membership together with the inviting
// organization's name, as shown on the accept-invitation page.
type Invitation struct {
	OrganizationUser
	OrganizationName string `json:"organization_name"`
}

// Member is an active membership joined with the member's display name.
type Member struct {
	OrganizationUser
	Name string `json:"name"`
}

// ExpiredInvitation identifies an invitation removed by a cleanup sweep.
type ExpiredInvitation struct {
	ID             int64
	OrganizationID int64
	Email          string
}

// MemberPatch carries the optional fields of a member update; nil fields
// keep their current value.
type MemberPatch struct {
	Role       *Role
	Department *string
	Position   *string
}
