package domain

import "time"

// InvalidatedToken models a bearer token explicitly killed by logout
// before its natural expiry. The token value is unique; a second
// logout with the same token must not create a second row.
type InvalidatedToken struct {
	ID            int64
	Token         string
	InvalidatedAt time.Time
	ExpiresAt     time.Time
}

// IsExpired reports whether the blacklisted token has outlived its own
// expiry and is eligible for sweep deletion.
func (t InvalidatedToken) IsExpired(at time.Time) bool {
	return !t.ExpiresAt.After(at)
}
