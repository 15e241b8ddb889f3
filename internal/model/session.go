package model

import "time"

// AdminSession is a server-side login session for the shared admin account.
type AdminSession struct {
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is past its expiry at t.
func (s *AdminSession) Expired(t time.Time) bool {
	return t.After(s.ExpiresAt)
}
