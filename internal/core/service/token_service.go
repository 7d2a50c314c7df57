package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/marketplace-system/internal/core/domain"
	"github.com/99minutos/marketplace-system/internal/core/ports"
)

// tokenKeyBytes yields 40 hex characters per key.
const tokenKeyBytes = 20

// TokenService issues and resolves opaque bearer tokens.
type TokenService struct {
	tokens   ports.TokenRepository
	accounts ports.AccountRepository
	logger   zerolog.Logger
}

func NewTokenService(tokens ports.TokenRepository, accounts ports.AccountRepository, logger zerolog.Logger) *TokenService {
	return &TokenService{tokens: tokens, accounts: accounts, logger: logger}
}

// IssueOrReuse returns the account's token, creating it on first use. The
// repository resolves races between concurrent first logins.
func (s *TokenService) IssueOrReuse(ctx context.Context, accountID string) (*domain.Token, error) {
	key, err := generateTokenKey()
	if err != nil {
		return nil, fmt.Errorf("generate token key: %w", err)
	}

	tok, err := s.tokens.GetOrCreate(ctx, &domain.Token{
		Key:       key,
		AccountID: accountID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("get or create token: %w", err)
	}
	if tok.Key == key {
		s.logger.Info().Str("account_id", accountID).Msg("token issued")
	}
	return tok, nil
}

// Resolve maps a presented key to the identity of its active account.
func (s *TokenService) Resolve(ctx context.Context, key string) (domain.Identity, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return domain.Anonymous(), domain.ErrUnauthenticated
	}
	if !wellFormedKey(key) {
		return domain.Anonymous(), domain.ErrInvalidToken
	}

	tok, err := s.tokens.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			return domain.Anonymous(), domain.ErrInvalidToken
		}
		return domain.Anonymous(), fmt.Errorf("find token: %w", err)
	}

	account, err := s.accounts.FindByID(ctx, tok.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.Anonymous(), domain.ErrInactiveAccount
		}
		return domain.Anonymous(), fmt.Errorf("find token account: %w", err)
	}
	if !account.IsActive {
		return domain.Anonymous(), domain.ErrInactiveAccount
	}
	return domain.IdentityOf(account), nil
}

func generateTokenKey() (string, error) {
	b := make([]byte, tokenKeyBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func wellFormedKey(key string) bool {
	if len(key) != tokenKeyBytes*2 {
		return false
	}
	_, err := hex.DecodeString(key)
	return err == nil
}
