package ports

import (
	"context"

	"github.com/minishop/store-api/internal/core/domain"
)

// UserRepository defines the persistence interface for user accounts.
// Emails are stored lowercased; FindByEmail expects a lowercased argument.
// The backing store's unique index on email is the authoritative guard
// against duplicate signups.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByTokenHash(ctx context.Context, tokenHash string) (*domain.User, error)

	// SetSession stores the hash of a newly issued token and marks the
	// account active, as a single atomic document update.
	SetSession(ctx context.Context, id, tokenHash string) error

	// ClearSession removes the stored token hash and marks the account
	// inactive, returning the updated record.
	ClearSession(ctx context.Context, id string) (*domain.User, error)

	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
