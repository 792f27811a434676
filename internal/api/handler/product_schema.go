package handler

import "github.com/minishop/store-api/internal/core/domain"

type createProductRequest struct {
	Name        string  `json:"name"        validate:"required,min=1,max=200"`
	Description string  `json:"description" validate:"max=2000"`
	Price       float64 `json:"price"       validate:"required,gte=0"`
	Currency    string  `json:"currency"    validate:"required,oneof=USD EUR MXN"`
	Stock       int     `json:"stock"       validate:"gte=0"`
}

// updateProductRequest replaces the product wholesale; it shares the create
// schema deliberately.
type updateProductRequest = createProductRequest

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listProductsResponse struct {
	Data       []domain.Product   `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}
