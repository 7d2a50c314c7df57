package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/99minutos/marketplace-system/internal/core/domain"
	"github.com/99minutos/marketplace-system/internal/core/ports"
	"github.com/99minutos/marketplace-system/internal/core/validation"
)

// AuthService implements credential checks and login.
type AuthService struct {
	accounts  ports.AccountRepository
	hasher    ports.PasswordHasher
	issuer    *TokenService
	validator *validation.Validator
	logger    zerolog.Logger

	// compared against when the email is unknown so that the response time
	// does not reveal which accounts exist.
	dummyHash string
}

func NewAuthService(
	accounts ports.AccountRepository,
	hasher ports.PasswordHasher,
	issuer *TokenService,
	v *validation.Validator,
	logger zerolog.Logger,
) *AuthService {
	dummy, err := hasher.Hash("marketplace-dummy-password")
	if err != nil {
		logger.Warn().Err(err).Msg("could not precompute dummy hash")
	}
	return &AuthService{
		accounts:  accounts,
		hasher:    hasher,
		issuer:    issuer,
		validator: v,
		logger:    logger,
		dummyHash: dummy,
	}
}

// Authenticate returns the active account matching the credentials. Unknown
// email, wrong password and inactive account all yield ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.Account, error) {
	account, err := s.accounts.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			s.hasher.Verify(s.dummyHash, password)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(account.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}
	if !account.IsActive {
		return nil, domain.ErrInvalidCredentials
	}
	return account, nil
}

// Login validates the payload, authenticates and returns the account's token.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	in.Email = trimmed(in.Email)
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}

	account, err := s.Authenticate(ctx, *in.Email, *in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			s.logger.Info().Str("email", domain.NormalizeEmail(*in.Email)).Msg("login rejected")
		}
		return nil, err
	}

	tok, err := s.issuer.IssueOrReuse(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	return &ports.LoginResult{Token: tok.Key, AccountID: account.ID}, nil
}
