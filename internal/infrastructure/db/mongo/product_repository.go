package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/99minutos/marketplace-system/internal/core/domain"
	"github.com/99minutos/marketplace-system/internal/core/ports"
)

const collectionProducts = "products"

type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{col: db.Collection(collectionProducts)}
}

type productDocument struct {
	ID          string    `bson:"_id"`
	SellerID    string    `bson:"seller_id"`
	Description string    `bson:"description"`
	Price       float64   `bson:"price"`
	Quantity    int       `bson:"quantity"`
	IsActive    bool      `bson:"is_active"`
	CreatedAt   time.Time `bson:"created_at"`
}

func (d productDocument) toDomain() *domain.Product {
	return &domain.Product{
		ID:          d.ID,
		SellerID:    d.SellerID,
		Description: d.Description,
		Price:       d.Price,
		Quantity:    d.Quantity,
		IsActive:    d.IsActive,
		CreatedAt:   d.CreatedAt.UTC(),
	}
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc productDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ProductRepository) Insert(ctx context.Context, p *domain.Product) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := productDocument{
		ID:          p.ID,
		SellerID:    p.SellerID,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// Update writes the mutable fields only; seller_id is left as inserted.
func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": p.ID}, bson.M{"$set": bson.M{
		"description": p.Description,
		"price":       p.Price,
		"quantity":    p.Quantity,
		"is_active":   p.IsActive,
	}})
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) List(ctx context.Context, opts ports.ListOptions) ([]*domain.Product, int64, error) {
	docs, total, err := findPage[productDocument](ctx, r.col, "created_at", opts)
	if err != nil {
		return nil, 0, err
	}
	products := make([]*domain.Product, 0, len(docs))
	for _, d := range docs {
		products = append(products, d.toDomain())
	}
	return products, total, nil
}
