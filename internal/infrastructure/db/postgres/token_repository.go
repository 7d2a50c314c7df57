package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/99minutos/marketplace-system/internal/core/domain"
)

type TokenRepository struct {
	db *sql.DB
}

func NewTokenRepository(db *sql.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// GetOrCreate inserts candidate unless the account already has a token, then
// reads back whichever row won. ON CONFLICT waits for a concurrent inserter
// to commit, so the read always sees the winner.
func (r *TokenRepository) GetOrCreate(ctx context.Context, candidate *domain.Token) (*domain.Token, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO auth_tokens (key, account_id, created_at) VALUES ($1, $2, $3)
		 ON CONFLICT (account_id) DO NOTHING`,
		candidate.Key, candidate.AccountID, candidate.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert token: %w", err)
	}

	tok := &domain.Token{}
	err = r.db.QueryRowContext(ctx,
		`SELECT key, account_id, created_at FROM auth_tokens WHERE account_id = $1`,
		candidate.AccountID,
	).Scan(&tok.Key, &tok.AccountID, &tok.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("read token: %w", err)
	}
	return tok, nil
}

func (r *TokenRepository) FindByKey(ctx context.Context, key string) (*domain.Token, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tok := &domain.Token{}
	err := r.db.QueryRowContext(ctx,
		`SELECT key, account_id, created_at FROM auth_tokens WHERE key = $1`, key,
	).Scan(&tok.Key, &tok.AccountID, &tok.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("find token: %w", err)
	}
	return tok, nil
}
