package model

import "time"

// Session is a login issued by the identity provider. This service only
// reads and deletes sessions.
type Session struct {
	ID        int64     `json:"id,string"`
	UserID    int64     `json:"user_id,string"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Principal is the authenticated caller of a request.
type Principal struct {
	User      *User
	SessionID int64
	ExpiresAt time.Time
}
