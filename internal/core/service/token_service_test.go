package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/99minutos/marketplace-system/internal/core/domain"
)

func newTokenFixture() (*TokenService, *stubAccountRepo, *stubTokenRepo) {
	accounts := newStubAccountRepo()
	tokens := newStubTokenRepo()
	return NewTokenService(tokens, accounts, discardLogger), accounts, tokens
}

func TestTokenService_IssueOrReuse_IsIdempotent(t *testing.T) {
	svc, accounts, _ := newTokenFixture()
	seedAccount(accounts, "acc-1", "a@example.com", nil)

	first, err := svc.IssueOrReuse(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("IssueOrReuse returned error: %v", err)
	}
	if len(first.Key) != 40 {
		t.Fatalf("expected 40 character key, got %q", first.Key)
	}

	second, err := svc.IssueOrReuse(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("IssueOrReuse returned error: %v", err)
	}
	if first.Key != second.Key {
		t.Fatalf("expected the same token, got %s and %s", first.Key, second.Key)
	}
}

func TestTokenService_IssueOrReuse_ConcurrentFirstLogins(t *testing.T) {
	svc, accounts, _ := newTokenFixture()
	seedAccount(accounts, "acc-1", "a@example.com", nil)

	const n = 16
	keys := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tok, err := svc.IssueOrReuse(context.Background(), "acc-1")
			if err != nil {
				t.Errorf("IssueOrReuse returned error: %v", err)
				return
			}
			keys[i] = tok.Key
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		if keys[i] != keys[0] {
			t.Fatalf("concurrent logins produced different tokens: %s vs %s", keys[0], keys[i])
		}
	}
}

func TestTokenService_Resolve(t *testing.T) {
	svc, accounts, _ := newTokenFixture()
	seedAccount(accounts, "acc-1", "a@example.com", func(a *domain.Account) { a.IsSeller = true })
	tok, err := svc.IssueOrReuse(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("IssueOrReuse returned error: %v", err)
	}

	id, err := svc.Resolve(context.Background(), tok.Key)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if !id.IsAuthenticated() || id.AccountID != "acc-1" || !id.IsSeller {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestTokenService_Resolve_Errors(t *testing.T) {
	svc, accounts, _ := newTokenFixture()
	seedAccount(accounts, "inactive", "i@example.com", func(a *domain.Account) { a.IsActive = false })
	inactiveTok, _ := svc.IssueOrReuse(context.Background(), "inactive")
	orphanTok, _ := svc.IssueOrReuse(context.Background(), "deleted")

	tests := []struct {
		name string
		key  string
		want error
	}{
		{"empty", "", domain.ErrUnauthenticated},
		{"blank", "   ", domain.ErrUnauthenticated},
		{"malformed", "not-a-token", domain.ErrInvalidToken},
		{"unknown", "0123456789abcdef0123456789abcdef01234567", domain.ErrInvalidToken},
		{"inactive account", inactiveTok.Key, domain.ErrInactiveAccount},
		{"missing account", orphanTok.Key, domain.ErrInactiveAccount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := svc.Resolve(context.Background(), tt.key)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if id.IsAuthenticated() {
				t.Fatalf("expected anonymous identity on error")
			}
		})
	}
}
