package domain

import "time"

// Token is the opaque bearer credential bound to a single account.
// Tokens never expire; an account holds at most one at a time.
type Token struct {
	Key       string
	AccountID string
	CreatedAt time.Time
}
