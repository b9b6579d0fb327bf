package domain

import "time"

// Session binds a panel client to an operator authenticated against the API.
type Session struct {
	ID        string
	Token     string
	Employee  Employee
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is no longer usable at now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
