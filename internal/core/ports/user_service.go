package ports

import (
	"context"

	"github.com/minishop/store-api/internal/core/domain"
)

// SignupInput carries the validated signup fields.
type SignupInput struct {
	FullName string
	Email    string
	Password string
}

// UpdateUserInput carries the validated fields for a profile update. Empty
// fields are left untouched; a non-empty Password is re-hashed.
type UpdateUserInput struct {
	FullName string
	Email    string
	Password string
}

type UserService interface {
	// Signup registers a new account and opens a session for it,
	// returning the created user and the issued token.
	Signup(ctx context.Context, input SignupInput) (*domain.User, string, error)

	// Signin verifies credentials and opens a new session, replacing any
	// previously stored token hash.
	Signin(ctx context.Context, email, password string) (*domain.User, string, error)

	// Logout closes the session identified by the presented token.
	Logout(ctx context.Context, token string) (*domain.User, error)

	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
