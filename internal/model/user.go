package model

import "time"

type AccountType string

const (
	AccountTypeIndividual AccountType = "individual"
	AccountTypeBusiness   AccountType = "business"
)

type User struct {
	ID                    int64       `json:"id,string"`
	Name                  string      `json:"name"`
	Email                 string      `json:"email"`
	AccountType           AccountType `json:"account_type"`
	DefaultOrganizationID *int64      `json:"default_organization_id,string,omitempty"`
	CreatedAt             time.Time   `json:"created_at"`
	UpdatedAt             time.Time   `json:"updated_at"`
}

// IsBusiness reports whether the user is limited to owning one organization.
func (u *User) IsBusiness() bool {
	return u.AccountType == AccountTypeBusiness
}
