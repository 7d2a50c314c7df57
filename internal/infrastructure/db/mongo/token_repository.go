package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/marketplace-system/internal/core/domain"
)

const collectionTokens = "auth_tokens"

type TokenRepository struct {
	col *mongo.Collection
}

func NewTokenRepository(db *mongo.Database) *TokenRepository {
	return &TokenRepository{col: db.Collection(collectionTokens)}
}

type tokenDocument struct {
	Key       string    `bson:"_id"`
	AccountID string    `bson:"account_id"`
	CreatedAt time.Time `bson:"created_at"`
}

func (d tokenDocument) toDomain() *domain.Token {
	return &domain.Token{Key: d.Key, AccountID: d.AccountID, CreatedAt: d.CreatedAt.UTC()}
}

// GetOrCreate upserts on account_id so only the first candidate is stored.
// Two concurrent upserts may both miss and race on insert; the loser sees a
// duplicate key error and reads the winner's token.
func (r *TokenRepository) GetOrCreate(ctx context.Context, candidate *domain.Token) (*domain.Token, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"account_id": candidate.AccountID}
	update := bson.M{"$setOnInsert": bson.M{
		"_id":        candidate.Key,
		"created_at": candidate.CreatedAt,
	}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var doc tokenDocument
	err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err == nil {
		return doc.toDomain(), nil
	}
	if !mongo.IsDuplicateKeyError(err) {
		return nil, fmt.Errorf("upsert token: %w", err)
	}

	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, fmt.Errorf("find token after race: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TokenRepository) FindByKey(ctx context.Context, key string) (*domain.Token, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc tokenDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": key}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("find token: %w", err)
	}
	return doc.toDomain(), nil
}
