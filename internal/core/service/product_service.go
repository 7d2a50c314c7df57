package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/99minutos/marketplace-system/internal/core/domain"
	"github.com/99minutos/marketplace-system/internal/core/policy"
	"github.com/99minutos/marketplace-system/internal/core/ports"
	"github.com/99minutos/marketplace-system/internal/core/validation"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

type ProductService struct {
	products  ports.ProductRepository
	accounts  ports.AccountRepository
	validator *validation.Validator
	logger    zerolog.Logger
}

func NewProductService(
	products ports.ProductRepository,
	accounts ports.AccountRepository,
	v *validation.Validator,
	logger zerolog.Logger,
) *ProductService {
	return &ProductService{products: products, accounts: accounts, validator: v, logger: logger}
}

// Create lists a new product owned by the calling seller.
func (s *ProductService) Create(ctx context.Context, caller domain.Identity, in ports.CreateProductInput) (*ports.ProductView, error) {
	d := policy.Decide(policy.Request{Identity: caller, Action: policy.ActionCreate, Kind: policy.KindProduct})
	if !d.Allowed {
		return nil, d.Err
	}

	in.Description = trimmed(in.Description)
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}

	product := &domain.Product{
		ID:          uuid.NewString(),
		SellerID:    caller.AccountID,
		Description: *in.Description,
		Price:       *in.Price,
		Quantity:    *in.Quantity,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.products.Insert(ctx, product); err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	s.logger.Info().Str("product_id", product.ID).Str("seller_id", product.SellerID).Msg("product created")

	v := productView(product, d.Readable)
	return &v, nil
}

// List returns one page of products, newest first.
func (s *ProductService) List(ctx context.Context, caller domain.Identity, in ports.ListProductsInput) (*ports.ProductPage, error) {
	d := policy.Decide(policy.Request{Identity: caller, Action: policy.ActionList, Kind: policy.KindProduct})
	if !d.Allowed {
		return nil, d.Err
	}

	page, limit := normalizePage(in.Page, in.Limit)
	products, total, err := s.products.List(ctx, ports.ListOptions{
		Offset:      (page - 1) * limit,
		Limit:       limit,
		NewestFirst: true,
	})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	items := make([]ports.ProductView, 0, len(products))
	for _, p := range products {
		items = append(items, productView(p, d.Readable))
	}
	return &ports.ProductPage{Items: items, Count: total, Page: page, Limit: limit}, nil
}

// Get returns a product with its seller's public account view embedded.
func (s *ProductService) Get(ctx context.Context, caller domain.Identity, id string) (*ports.ProductView, error) {
	req := policy.Request{Identity: caller, Action: policy.ActionRead, Kind: policy.KindProduct}
	if d := policy.Decide(req); !d.Allowed {
		return nil, d.Err
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Target = policy.ProductTarget(product)
	d := policy.Decide(req)
	if !d.Allowed {
		return nil, d.Err
	}
	v := productView(product, d.Readable)

	seller, err := s.accounts.FindByID(ctx, product.SellerID)
	switch {
	case err == nil:
		sd := policy.Decide(policy.Request{
			Identity: caller,
			Action:   policy.ActionRead,
			Kind:     policy.KindAccount,
			Target:   policy.AccountTarget(seller),
		})
		if sd.Allowed {
			sv := accountView(seller, sd.Readable)
			v.Seller = &sv
		}
	case errors.Is(err, domain.ErrAccountNotFound):
		s.logger.Warn().Str("product_id", product.ID).Str("seller_id", product.SellerID).Msg("product seller missing")
	default:
		return nil, fmt.Errorf("find seller: %w", err)
	}
	return &v, nil
}

// Update applies a partial update to a product owned by the caller.
func (s *ProductService) Update(ctx context.Context, caller domain.Identity, in ports.UpdateProductInput) (*ports.ProductView, error) {
	req := policy.Request{Identity: caller, Action: policy.ActionUpdate, Kind: policy.KindProduct}
	if d := policy.Decide(req); !d.Allowed {
		return nil, d.Err
	}

	product, err := s.products.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	req.Target = policy.ProductTarget(product)
	d := policy.Decide(req)
	if !d.Allowed {
		return nil, d.Err
	}

	in.Description = trimmed(in.Description)
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}

	if in.Description != nil && d.Writable.Has(policy.FieldDescription) {
		product.Description = *in.Description
	}
	if in.Price != nil && d.Writable.Has(policy.FieldPrice) {
		product.Price = *in.Price
	}
	if in.Quantity != nil && d.Writable.Has(policy.FieldQuantity) {
		product.Quantity = *in.Quantity
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	s.logger.Info().Str("product_id", product.ID).Msg("product updated")

	v := productView(product, d.Readable)
	return &v, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	switch {
	case limit <= 0:
		limit = DefaultPageLimit
	case limit > MaxPageLimit:
		limit = MaxPageLimit
	}
	return page, limit
}
