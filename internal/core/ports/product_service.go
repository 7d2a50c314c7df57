package ports

import (
	"context"

	"github.com/99minutos/marketplace-system/internal/core/domain"
)

// CreateProductInput is the payload of POST /products. There is no seller
// field: the owner is always the caller.
type CreateProductInput struct {
	Description *string  `json:"description" validate:"required,notblank"`
	Price       *float64 `json:"price"       validate:"required,gte=0.01"`
	Quantity    *int     `json:"quantity"    validate:"required,gte=0"`
}

// UpdateProductInput is a partial update of an owned product.
type UpdateProductInput struct {
	ID          string   `json:"-"`
	Description *string  `json:"description" validate:"omitnil,notblank"`
	Price       *float64 `json:"price"       validate:"omitnil,gte=0.01"`
	Quantity    *int     `json:"quantity"    validate:"omitnil,gte=0"`
}

// ListProductsInput pages the public product listing (1-based page).
type ListProductsInput struct {
	Page  int
	Limit int
}

// ProductView is a product filtered by the caller's read mask. Seller is
// only populated on single-product reads.
type ProductView struct {
	ID          string
	SellerID    string
	Description string
	Price       *float64
	Quantity    *int
	IsActive    *bool
	Seller      *AccountView
}

// ProductPage is one page of the product listing.
type ProductPage struct {
	Items []ProductView
	Count int64
	Page  int
	Limit int
}

// ProductService defines the product use cases exposed over HTTP.
type ProductService interface {
	Create(ctx context.Context, caller domain.Identity, in CreateProductInput) (*ProductView, error)
	List(ctx context.Context, caller domain.Identity, in ListProductsInput) (*ProductPage, error)
	Get(ctx context.Context, caller domain.Identity, id string) (*ProductView, error)
	Update(ctx context.Context, caller domain.Identity, in UpdateProductInput) (*ProductView, error)
}
