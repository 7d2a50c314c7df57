package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/marketplace-system/internal/core/domain"
)

func identity(id string, mutate func(a *domain.Account)) domain.Identity {
	a := &domain.Account{ID: id, IsActive: true}
	if mutate != nil {
		mutate(a)
	}
	return domain.IdentityOf(a)
}

var (
	anon   = domain.Anonymous()
	buyer  = identity("buyer-1", nil)
	seller = identity("seller-1", func(a *domain.Account) { a.IsSeller = true })
	admin  = identity("admin-1", func(a *domain.Account) { a.IsStaff = true; a.IsSuperuser = true })
)

func TestDecide_AccountCreate_AllowedForEveryone(t *testing.T) {
	for name, id := range map[string]domain.Identity{"anonymous": anon, "buyer": buyer, "admin": admin} {
		t.Run(name, func(t *testing.T) {
			d := Decide(Request{Identity: id, Action: ActionCreate, Kind: KindAccount})
			require.True(t, d.Allowed)
			assert.True(t, d.Writable.Has(FieldPassword))
			assert.True(t, d.Writable.Has(FieldIsSeller))
			assert.False(t, d.Writable.Has(FieldIsActive))
			assert.False(t, d.Readable.Has(FieldPassword))
		})
	}
}

func TestDecide_AccountRead_FieldMaskPerCaller(t *testing.T) {
	target := &Target{ID: "buyer-1", OwnerID: "buyer-1"}

	public := Decide(Request{Identity: anon, Action: ActionRead, Kind: KindAccount, Target: target})
	require.True(t, public.Allowed)
	assert.Equal(t, []string{"date_joined", "email", "first_name", "id", "is_seller", "last_name"}, public.Readable.Names())

	owner := Decide(Request{Identity: buyer, Action: ActionRead, Kind: KindAccount, Target: target})
	assert.True(t, owner.Readable.Has(FieldIsActive))
	assert.False(t, owner.Readable.Has(FieldIsStaff))

	other := Decide(Request{Identity: seller, Action: ActionRead, Kind: KindAccount, Target: target})
	assert.False(t, other.Readable.Has(FieldIsActive))

	adm := Decide(Request{Identity: admin, Action: ActionList, Kind: KindAccount, Target: target})
	assert.True(t, adm.Readable.Has(FieldIsActive))
	assert.True(t, adm.Readable.Has(FieldIsStaff))
	assert.True(t, adm.Readable.Has(FieldIsSuperuser))
}

func TestDecide_AccountUpdate(t *testing.T) {
	own := &Target{ID: "buyer-1", OwnerID: "buyer-1"}
	foreign := &Target{ID: "seller-1", OwnerID: "seller-1"}

	d := Decide(Request{Identity: anon, Action: ActionUpdate, Kind: KindAccount})
	assert.ErrorIs(t, d.Err, domain.ErrUnauthenticated)

	d = Decide(Request{Identity: buyer, Action: ActionUpdate, Kind: KindAccount})
	assert.True(t, d.Allowed, "coarse check passes for any authenticated caller")

	d = Decide(Request{Identity: buyer, Action: ActionUpdate, Kind: KindAccount, Target: own})
	require.True(t, d.Allowed)
	assert.Equal(t, []string{"email", "first_name", "last_name", "password"}, d.Writable.Names())
	assert.False(t, d.Writable.Has(FieldIsActive))

	d = Decide(Request{Identity: buyer, Action: ActionUpdate, Kind: KindAccount, Target: foreign})
	assert.False(t, d.Allowed)
	assert.ErrorIs(t, d.Err, domain.ErrForbidden)

	d = Decide(Request{Identity: admin, Action: ActionUpdate, Kind: KindAccount, Target: foreign})
	assert.ErrorIs(t, d.Err, domain.ErrForbidden, "admins use the management endpoint")
}

func TestDecide_AccountManage(t *testing.T) {
	self := &Target{ID: "buyer-1", OwnerID: "buyer-1"}

	d := Decide(Request{Identity: anon, Action: ActionManage, Kind: KindAccount})
	assert.ErrorIs(t, d.Err, domain.ErrUnauthenticated)

	d = Decide(Request{Identity: buyer, Action: ActionManage, Kind: KindAccount, Target: self})
	assert.ErrorIs(t, d.Err, domain.ErrForbidden, "non-admins are denied even on their own account")

	d = Decide(Request{Identity: admin, Action: ActionManage, Kind: KindAccount, Target: self})
	require.True(t, d.Allowed)
	assert.Equal(t, []string{"is_active", "is_seller"}, d.Writable.Names())
	assert.True(t, d.Readable.Has(FieldIsActive))
}

func TestDecide_ProductCreate(t *testing.T) {
	cases := []struct {
		name    string
		id      domain.Identity
		wantErr error
	}{
		{"anonymous", anon, domain.ErrUnauthenticated},
		{"buyer", buyer, domain.ErrForbidden},
		{"admin without seller flag", admin, domain.ErrForbidden},
		{"seller", seller, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := Decide(Request{Identity: tc.id, Action: ActionCreate, Kind: KindProduct})
			if tc.wantErr != nil {
				assert.False(t, d.Allowed)
				assert.ErrorIs(t, d.Err, tc.wantErr)
				return
			}
			require.True(t, d.Allowed)
			assert.Equal(t, []string{"description", "price", "quantity"}, d.Writable.Names())
			assert.False(t, d.Writable.Has(FieldSellerID))
		})
	}
}

func TestDecide_ProductUpdate_OwnerOnly(t *testing.T) {
	owned := &Target{ID: "p-1", OwnerID: "seller-1"}
	foreign := &Target{ID: "p-2", OwnerID: "seller-2"}

	assert.True(t, Decide(Request{Identity: seller, Action: ActionUpdate, Kind: KindProduct, Target: owned}).Allowed)

	d := Decide(Request{Identity: seller, Action: ActionUpdate, Kind: KindProduct, Target: foreign})
	assert.ErrorIs(t, d.Err, domain.ErrForbidden)

	d = Decide(Request{Identity: buyer, Action: ActionUpdate, Kind: KindProduct, Target: owned})
	assert.ErrorIs(t, d.Err, domain.ErrForbidden)

	d = Decide(Request{Identity: anon, Action: ActionUpdate, Kind: KindProduct, Target: owned})
	assert.ErrorIs(t, d.Err, domain.ErrUnauthenticated)
}

func TestDecide_ProductRead_Public(t *testing.T) {
	d := Decide(Request{Identity: anon, Action: ActionList, Kind: KindProduct})
	require.True(t, d.Allowed)
	assert.Equal(t, []string{"description", "id", "is_active", "price", "quantity", "seller_id"}, d.Readable.Names())
}

func TestDecide_UnknownRuleDenied(t *testing.T) {
	d := Decide(Request{Identity: admin, Action: ActionManage, Kind: KindProduct})
	assert.False(t, d.Allowed)
	assert.ErrorIs(t, d.Err, domain.ErrForbidden)
}

func TestDecide_InactiveIdentityDenied(t *testing.T) {
	inactive := domain.IdentityOf(&domain.Account{ID: "x", IsSeller: true, IsActive: false})
	d := Decide(Request{Identity: inactive, Action: ActionCreate, Kind: KindProduct})
	assert.ErrorIs(t, d.Err, domain.ErrInactiveAccount)
}

// No rule, for any caller, exposes password material on read.
func TestDecide_NeverExposesPassword(t *testing.T) {
	ids := []domain.Identity{anon, buyer, seller, admin}
	actions := []Action{ActionCreate, ActionRead, ActionList, ActionUpdate, ActionManage}
	kinds := []Kind{KindAccount, KindProduct}
	targets := []*Target{nil, {ID: "buyer-1", OwnerID: "buyer-1"}, {ID: "admin-1", OwnerID: "admin-1"}}

	for _, id := range ids {
		for _, a := range actions {
			for _, k := range kinds {
				for _, tg := range targets {
					d := Decide(Request{Identity: id, Action: a, Kind: k, Target: tg})
					assert.False(t, d.Readable.Has(FieldPassword), "%s %s %s", id.AccountID, a, k)
					assert.False(t, d.Readable.Has(FieldPasswordHash), "%s %s %s", id.AccountID, a, k)
					assert.False(t, d.Writable.Has(FieldPasswordHash), "%s %s %s", id.AccountID, a, k)
				}
			}
		}
	}
}

func TestFieldSet(t *testing.T) {
	s := Fields("a", "b")
	u := s.Union(Fields("c"))
	assert.Equal(t, []string{"a", "b", "c"}, u.Names())
	assert.Equal(t, []string{"a", "b"}, s.Names(), "Union must not mutate the receiver")
	assert.Equal(t, []string{"b", "c"}, u.Without("a").Names())

	var empty FieldSet
	assert.False(t, empty.Has("a"))
	assert.Equal(t, 0, empty.Len())
}
