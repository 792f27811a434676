package domain

import "errors"

var (
	// ErrEmailTaken is returned on signup when the email (case-insensitive)
	// already belongs to an existing account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrUserNotFound is returned when no account matches the lookup key.
	ErrUserNotFound = errors.New("user not found")

	// ErrBadCredential is returned when the password does not verify
	// against the stored hash.
	ErrBadCredential = errors.New("invalid credentials")

	// ErrMissingToken is returned when an operation requires a session
	// token and none was presented.
	ErrMissingToken = errors.New("missing token")

	// ErrInvalidToken is returned when a presented token does not match
	// any live session.
	ErrInvalidToken = errors.New("invalid token")

	// ErrForbidden is returned when an authenticated caller targets a
	// resource they do not own.
	ErrForbidden = errors.New("forbidden")

	// ErrProductNotFound is returned when no product matches the given id.
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidID is returned when a path id is not a valid object id.
	ErrInvalidID = errors.New("invalid id")
)
