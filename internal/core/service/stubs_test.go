package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/99minutos/marketplace-system/internal/core/domain"
	"github.com/99minutos/marketplace-system/internal/core/ports"
	"github.com/99minutos/marketplace-system/internal/core/validation"
)

var (
	discardLogger = zerolog.Nop()
	testValidator = validation.New()
)

// ---------------------------------------------------------------------------
// Stub account repository
// ---------------------------------------------------------------------------

type stubAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account
	err      error
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	clone := *a
	return &clone
}

func (r *stubAccountRepo) put(a *domain.Account) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[a.ID] = cloneAccount(a)
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, a := range r.accounts {
		if a.Email == email {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) emailTaken(email, exceptID string) bool {
	for id, a := range r.accounts {
		if id != exceptID && a.Email == email {
			return true
		}
	}
	return false
}

func (r *stubAccountRepo) Insert(_ context.Context, a *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if r.emailTaken(a.Email, "") {
		return domain.ErrEmailTaken
	}
	r.accounts[a.ID] = cloneAccount(a)
	return nil
}

func (r *stubAccountRepo) Update(_ context.Context, a *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[a.ID]; !ok {
		return domain.ErrAccountNotFound
	}
	if r.emailTaken(a.Email, a.ID) {
		return domain.ErrEmailTaken
	}
	r.accounts[a.ID] = cloneAccount(a)
	return nil
}

func (r *stubAccountRepo) List(_ context.Context, opts ports.ListOptions) ([]*domain.Account, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, 0, r.err
	}
	all := make([]*domain.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		all = append(all, cloneAccount(a))
	}
	sort.Slice(all, func(i, j int) bool {
		if opts.NewestFirst {
			return all[i].DateJoined.After(all[j].DateJoined)
		}
		return all[i].DateJoined.Before(all[j].DateJoined)
	})
	return window(all, opts), int64(len(all)), nil
}

// ---------------------------------------------------------------------------
// Stub product repository
// ---------------------------------------------------------------------------

type stubProductRepo struct {
	mu       sync.Mutex
	products map[string]*domain.Product
	lastOpts ports.ListOptions
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[string]*domain.Product)}
}

func cloneProduct(p *domain.Product) *domain.Product {
	clone := *p
	return &clone
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return cloneProduct(p), nil
}

func (r *stubProductRepo) Insert(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = cloneProduct(p)
	return nil
}

func (r *stubProductRepo) Update(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.products[p.ID]
	if !ok {
		return domain.ErrProductNotFound
	}
	updated := cloneProduct(p)
	updated.SellerID = stored.SellerID
	r.products[p.ID] = updated
	return nil
}

func (r *stubProductRepo) List(_ context.Context, opts ports.ListOptions) ([]*domain.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastOpts = opts
	all := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		all = append(all, cloneProduct(p))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return window(all, opts), int64(len(all)), nil
}

func window[T any](items []T, opts ports.ListOptions) []T {
	if opts.Offset >= len(items) {
		return []T{}
	}
	items = items[opts.Offset:]
	if opts.Limit > 0 && opts.Limit < len(items) {
		items = items[:opts.Limit]
	}
	return items
}

// ---------------------------------------------------------------------------
// Stub token repository
// ---------------------------------------------------------------------------

type stubTokenRepo struct {
	mu        sync.Mutex
	byAccount map[string]*domain.Token
	byKey     map[string]*domain.Token
}

func newStubTokenRepo() *stubTokenRepo {
	return &stubTokenRepo{
		byAccount: make(map[string]*domain.Token),
		byKey:     make(map[string]*domain.Token),
	}
}

func (r *stubTokenRepo) GetOrCreate(_ context.Context, candidate *domain.Token) (*domain.Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byAccount[candidate.AccountID]; ok {
		clone := *existing
		return &clone, nil
	}
	stored := *candidate
	r.byAccount[stored.AccountID] = &stored
	r.byKey[stored.Key] = &stored
	clone := stored
	return &clone, nil
}

func (r *stubTokenRepo) FindByKey(_ context.Context, key string) (*domain.Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byKey[key]
	if !ok {
		return nil, domain.ErrTokenNotFound
	}
	clone := *t
	return &clone, nil
}

// ---------------------------------------------------------------------------
// Fake hasher
// ---------------------------------------------------------------------------

// plainHasher stores passwords behind a fixed prefix. It keeps the tests fast
// while still proving the service never stores the raw password.
type plainHasher struct {
	mu       sync.Mutex
	verifies int
}

const hashPrefix = "hashed:"

func (h *plainHasher) Hash(password string) (string, error) {
	return hashPrefix + password, nil
}

func (h *plainHasher) Verify(hash, password string) bool {
	h.mu.Lock()
	h.verifies++
	h.mu.Unlock()
	return strings.HasPrefix(hash, hashPrefix) && strings.TrimPrefix(hash, hashPrefix) == password
}

func (h *plainHasher) verifyCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.verifies
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

func strPtr(s string) *string { return &s }
func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int { return &i }
func boolPtr(b bool) *bool { return &b }

func seedAccount(repo *stubAccountRepo, id, email string, mutate func(*domain.Account)) *domain.Account {
	a := &domain.Account{
		ID:           id,
		Email:        email,
		PasswordHash: hashPrefix + "secret123",
		FirstName:    "Test",
		LastName:     "User",
		IsActive:     true,
	}
	if mutate != nil {
		mutate(a)
	}
	repo.put(a)
	return a
}

func buyer(id string) domain.Identity {
	return domain.IdentityOf(&domain.Account{ID: id, IsActive: true})
}

func seller(id string) domain.Identity {
	return domain.IdentityOf(&domain.Account{ID: id, IsSeller: true, IsActive: true})
}

func admin(id string) domain.Identity {
	return domain.IdentityOf(&domain.Account{ID: id, IsStaff: true, IsActive: true})
}
