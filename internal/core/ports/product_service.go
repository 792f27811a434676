package ports

import (
	"context"

	"github.com/minishop/store-api/internal/core/domain"
)

// ProductInput carries the validated fields for creating or replacing a
// product.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Currency    string
	Stock       int
	OwnerID     string
}

// ProductPage is one page of a product listing.
type ProductPage struct {
	Items []domain.Product
	Total int64
	Page  int
	Limit int
}

type ProductService interface {
	Create(ctx context.Context, input ProductInput) (*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, page, limit int) (*ProductPage, error)
	Update(ctx context.Context, id string, input ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
