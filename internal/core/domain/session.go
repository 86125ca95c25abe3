package domain

import "time"

// Session is an ephemeral binding from a bearer token to a user and an
// expiry instant. Sessions live only in process memory; a restart
// invalidates all outstanding sessions.
type Session struct {
	UserID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// ExpiredAt reports whether the session is expired at the given instant.
// The expiry window is fixed at issuance; verification never extends it.
func (s Session) ExpiredAt(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
