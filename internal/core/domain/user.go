package domain

import "time"

// User models an account in the store. Password is only ever populated on
// signup/signin responses, where the submitted plaintext is echoed back to
// the caller; it is never persisted.
//
// TokenHash holds a SHA-256 digest of the last-issued session token. It is
// non-empty only while a session is live and is cleared (with IsActive set
// false) on logout. Token expiry does not clear it; the stale hash simply
// stops matching any verifiable token.
type User struct {
	ID           string    `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Password     string    `json:"password,omitempty"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	TokenHash    string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
