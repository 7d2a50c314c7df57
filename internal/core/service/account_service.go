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

// MaxNewest caps the number of accounts returned by Newest.
const MaxNewest = 100

type AccountService struct {
	repo      ports.AccountRepository
	hasher    ports.PasswordHasher
	validator *validation.Validator
	logger    zerolog.Logger
}

func NewAccountService(
	repo ports.AccountRepository,
	hasher ports.PasswordHasher,
	v *validation.Validator,
	logger zerolog.Logger,
) *AccountService {
	return &AccountService{repo: repo, hasher: hasher, validator: v, logger: logger}
}

// Register creates a buyer or seller account. Registration is open to anyone.
func (s *AccountService) Register(ctx context.Context, caller domain.Identity, in ports.RegisterAccountInput) (*ports.AccountView, error) {
	d := policy.Decide(policy.Request{Identity: caller, Action: policy.ActionCreate, Kind: policy.KindAccount})
	if !d.Allowed {
		return nil, d.Err
	}

	account, err := s.newAccount(in)
	if err != nil {
		return nil, err
	}
	if !d.Writable.Has(policy.FieldIsSeller) {
		account.IsSeller = false
	}
	if err := s.insert(ctx, account, *in.Password); err != nil {
		return nil, err
	}

	v := accountView(account, d.Readable)
	return &v, nil
}

// CreateAdmin creates a staff superuser. It is reachable only from the
// command line and bypasses the policy engine.
func (s *AccountService) CreateAdmin(ctx context.Context, in ports.RegisterAccountInput) (*domain.Account, error) {
	account, err := s.newAccount(in)
	if err != nil {
		return nil, err
	}
	account.IsSeller = false
	account.IsStaff = true
	account.IsSuperuser = true

	if err := s.insert(ctx, account, *in.Password); err != nil {
		return nil, err
	}
	return account, nil
}

// List returns every account, each masked for the caller.
func (s *AccountService) List(ctx context.Context, caller domain.Identity) ([]ports.AccountView, error) {
	return s.list(ctx, caller, ports.ListOptions{})
}

// Newest returns the n most recently joined accounts.
func (s *AccountService) Newest(ctx context.Context, caller domain.Identity, n int) ([]ports.AccountView, error) {
	if n < 1 {
		fields := domain.FieldErrors{}
		fields.Add("num", "Ensure this value is greater than or equal to 1.")
		return nil, &domain.ValidationError{Fields: fields}
	}
	if n > MaxNewest {
		n = MaxNewest
	}
	return s.list(ctx, caller, ports.ListOptions{Limit: n, NewestFirst: true})
}

func (s *AccountService) list(ctx context.Context, caller domain.Identity, opts ports.ListOptions) ([]ports.AccountView, error) {
	d := policy.Decide(policy.Request{Identity: caller, Action: policy.ActionList, Kind: policy.KindAccount})
	if !d.Allowed {
		return nil, d.Err
	}

	accounts, _, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	views := make([]ports.AccountView, 0, len(accounts))
	for _, a := range accounts {
		od := policy.Decide(policy.Request{
			Identity: caller,
			Action:   policy.ActionList,
			Kind:     policy.KindAccount,
			Target:   policy.AccountTarget(a),
		})
		if !od.Allowed {
			continue
		}
		views = append(views, accountView(a, od.Readable))
	}
	return views, nil
}

// Update applies a partial self-update. Role flags in the payload are never
// written here.
func (s *AccountService) Update(ctx context.Context, caller domain.Identity, in ports.UpdateAccountInput) (*ports.AccountView, error) {
	req := policy.Request{Identity: caller, Action: policy.ActionUpdate, Kind: policy.KindAccount}
	if d := policy.Decide(req); !d.Allowed {
		return nil, d.Err
	}

	account, err := s.repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	req.Target = policy.AccountTarget(account)
	d := policy.Decide(req)
	if !d.Allowed {
		return nil, d.Err
	}

	in.Email = trimmed(in.Email)
	in.FirstName = trimmed(in.FirstName)
	in.LastName = trimmed(in.LastName)
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}

	if in.Email != nil && d.Writable.Has(policy.FieldEmail) {
		account.Email = domain.NormalizeEmail(*in.Email)
	}
	if in.FirstName != nil && d.Writable.Has(policy.FieldFirstName) {
		account.FirstName = domain.TitleCase(*in.FirstName)
	}
	if in.LastName != nil && d.Writable.Has(policy.FieldLastName) {
		account.LastName = domain.TitleCase(*in.LastName)
	}
	if in.Password != nil && d.Writable.Has(policy.FieldPassword) {
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		account.PasswordHash = hash
	}

	if err := s.update(ctx, account); err != nil {
		return nil, err
	}
	s.logger.Info().Str("account_id", account.ID).Msg("account updated")

	v := accountView(account, d.Readable)
	return &v, nil
}

// Manage lets an admin toggle is_active and is_seller on any account.
func (s *AccountService) Manage(ctx context.Context, caller domain.Identity, in ports.ManageAccountInput) (*ports.AccountView, error) {
	req := policy.Request{Identity: caller, Action: policy.ActionManage, Kind: policy.KindAccount}
	if d := policy.Decide(req); !d.Allowed {
		return nil, d.Err
	}

	account, err := s.repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	req.Target = policy.AccountTarget(account)
	d := policy.Decide(req)
	if !d.Allowed {
		return nil, d.Err
	}

	if in.IsActive != nil && d.Writable.Has(policy.FieldIsActive) {
		account.IsActive = *in.IsActive
	}
	if in.IsSeller != nil && d.Writable.Has(policy.FieldIsSeller) {
		account.IsSeller = *in.IsSeller
	}

	if err := s.update(ctx, account); err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("account_id", account.ID).
		Str("admin_id", caller.AccountID).
		Bool("is_active", account.IsActive).
		Bool("is_seller", account.IsSeller).
		Msg("account managed")

	v := accountView(account, d.Readable)
	return &v, nil
}

// newAccount validates and normalises a registration payload.
func (s *AccountService) newAccount(in ports.RegisterAccountInput) (*domain.Account, error) {
	in.Email = trimmed(in.Email)
	in.FirstName = trimmed(in.FirstName)
	in.LastName = trimmed(in.LastName)
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}

	return &domain.Account{
		ID:         uuid.NewString(),
		Email:      domain.NormalizeEmail(*in.Email),
		FirstName:  domain.TitleCase(*in.FirstName),
		LastName:   domain.TitleCase(*in.LastName),
		IsSeller:   in.IsSeller,
		IsActive:   true,
		DateJoined: time.Now().UTC(),
	}, nil
}

func (s *AccountService) insert(ctx context.Context, account *domain.Account, password string) error {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	account.PasswordHash = hash

	if err := s.repo.Insert(ctx, account); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return domain.NewEmailConflict()
		}
		return fmt.Errorf("insert account: %w", err)
	}
	s.logger.Info().Str("account_id", account.ID).Str("role", account.Role()).Msg("account created")
	return nil
}

func (s *AccountService) update(ctx context.Context, account *domain.Account) error {
	if err := s.repo.Update(ctx, account); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return domain.NewEmailConflict()
		}
		return fmt.Errorf("update account: %w", err)
	}
	return nil
}
