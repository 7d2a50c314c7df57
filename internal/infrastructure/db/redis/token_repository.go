package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/99minutos/marketplace-system/internal/core/domain"
)

// Key formats:
//
//	token:account:<account_id> -> <key>
//	token:key:<key>            -> hash{account_id, created_at}
const (
	accountKeyPrefix = "token:account:"
	tokenKeyPrefix   = "token:key:"
)

// getOrCreateScript stores the candidate only when the account has no token
// and returns the key that ends up bound to the account. Running it as a
// script makes the check and both writes atomic.
var getOrCreateScript = redis.NewScript(`
local existing = redis.call("GET", KEYS[1])
if existing then
	return existing
end
redis.call("SET", KEYS[1], ARGV[1])
redis.call("HSET", KEYS[2], "account_id", ARGV[2], "created_at", ARGV[3])
return ARGV[1]
`)

// TokenRepository keeps bearer tokens in Redis without expiry.
type TokenRepository struct {
	client redis.UniversalClient
}

func NewTokenRepository(client redis.UniversalClient) *TokenRepository {
	return &TokenRepository{client: client}
}

func (r *TokenRepository) GetOrCreate(ctx context.Context, candidate *domain.Token) (*domain.Token, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	keys := []string{accountKeyPrefix + candidate.AccountID, tokenKeyPrefix + candidate.Key}
	key, err := getOrCreateScript.Run(ctx, r.client, keys,
		candidate.Key, candidate.AccountID, candidate.CreatedAt.UTC().Format(time.RFC3339Nano),
	).Text()
	if err != nil {
		return nil, fmt.Errorf("redis get or create token: %w", err)
	}
	if key == candidate.Key {
		tok := *candidate
		return &tok, nil
	}
	return r.FindByKey(ctx, key)
}

func (r *TokenRepository) FindByKey(ctx context.Context, key string) (*domain.Token, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	fields, err := r.client.HGetAll(ctx, tokenKeyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("redis find token: %w", err)
	}
	accountID, ok := fields["account_id"]
	if !ok || accountID == "" {
		return nil, domain.ErrTokenNotFound
	}

	createdAt, err := time.Parse(time.RFC3339Nano, fields["created_at"])
	if err != nil {
		createdAt = time.Time{}
	}
	return &domain.Token{Key: key, AccountID: accountID, CreatedAt: createdAt}, nil
}
