package ports

import (
	"context"

	"github.com/minishop/store-api/internal/core/domain"
)

// ProductRepository defines the persistence interface for catalog products.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, page, limit int) ([]domain.Product, int64, error)
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
