// Package policy decides, for a resolved identity, whether an action on a
// resource is allowed and which fields the caller may read or write.
//
// Decide is a pure function: it never touches the store or the request.
// Services call it twice per targeted operation, first without a Target for
// the endpoint-level check and then with the loaded Target for the
// object-level check.
package policy

import "github.com/99minutos/marketplace-system/internal/core/domain"

type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionList   Action = "list"
	ActionUpdate Action = "update"
	// ActionManage is the admin-only account management endpoint.
	ActionManage Action = "manage"
)

type Kind string

const (
	KindAccount Kind = "account"
	KindProduct Kind = "product"
)

// Target describes the resource an object-level decision is about.
// OwnerID is the account id for accounts and the seller id for products.
type Target struct {
	ID      string
	OwnerID string
}

// AccountTarget returns the Target for an account record.
func AccountTarget(a *domain.Account) *Target {
	return &Target{ID: a.ID, OwnerID: a.ID}
}

// ProductTarget returns the Target for a product record.
func ProductTarget(p *domain.Product) *Target {
	return &Target{ID: p.ID, OwnerID: p.SellerID}
}

type Request struct {
	Identity domain.Identity
	Action   Action
	Kind     Kind
	Target   *Target
}

// Decision is the verdict for one Request. Err is nil when Allowed and
// otherwise one of domain.ErrUnauthenticated, domain.ErrForbidden or
// domain.ErrInactiveAccount.
type Decision struct {
	Allowed  bool
	Err      error
	Readable FieldSet
	Writable FieldSet
}

func allow(readable, writable FieldSet) Decision {
	return Decision{Allowed: true, Readable: readable, Writable: writable}
}

func deny(err error) Decision {
	return Decision{Err: err}
}

type ruleKey struct {
	kind   Kind
	action Action
}

type rule func(id domain.Identity, target *Target) Decision

// Every (kind, action) pair binds exactly one rule.
var rules = map[ruleKey]rule{
	{KindAccount, ActionCreate}: accountCreate,
	{KindAccount, ActionRead}:   accountRead,
	{KindAccount, ActionList}:   accountRead,
	{KindAccount, ActionUpdate}: accountUpdate,
	{KindAccount, ActionManage}: accountManage,

	{KindProduct, ActionCreate}: productCreate,
	{KindProduct, ActionRead}:   productRead,
	{KindProduct, ActionList}:   productRead,
	{KindProduct, ActionUpdate}: productUpdate,
}

// Decide evaluates req against the rule table. Unknown (kind, action) pairs
// are denied.
func Decide(req Request) Decision {
	id := req.Identity
	if id.IsAuthenticated() && !id.IsActive {
		return deny(domain.ErrInactiveAccount)
	}

	r, ok := rules[ruleKey{req.Kind, req.Action}]
	if !ok {
		return deny(domain.ErrForbidden)
	}

	d := r(id, req.Target)
	d.Readable = d.Readable.Without(sensitive...)
	d.Writable = d.Writable.Without(FieldPasswordHash)
	return d
}

func accountCreate(_ domain.Identity, _ *Target) Decision {
	return allow(accountPublic, accountCreatable)
}

func accountRead(id domain.Identity, target *Target) Decision {
	return allow(accountReadable(id, target), FieldSet{})
}

func accountUpdate(id domain.Identity, target *Target) Decision {
	if !id.IsAuthenticated() {
		return deny(domain.ErrUnauthenticated)
	}
	if target != nil && !id.Owns(target.OwnerID) {
		return deny(domain.ErrForbidden)
	}
	return allow(accountPublic.Union(accountOwner), accountSelfEdit)
}

func accountManage(id domain.Identity, _ *Target) Decision {
	if !id.IsAuthenticated() {
		return deny(domain.ErrUnauthenticated)
	}
	if !id.IsAdmin() {
		return deny(domain.ErrForbidden)
	}
	return allow(accountPublic.Union(accountAdmin), accountManageable)
}

// accountReadable widens the public view with is_active for the account's
// owner and with every flag for admins.
func accountReadable(id domain.Identity, target *Target) FieldSet {
	fields := accountPublic
	if target != nil && id.Owns(target.OwnerID) {
		fields = fields.Union(accountOwner)
	}
	if id.IsAdmin() {
		fields = fields.Union(accountAdmin)
	}
	return fields
}

func productCreate(id domain.Identity, _ *Target) Decision {
	if !id.IsAuthenticated() {
		return deny(domain.ErrUnauthenticated)
	}
	if !id.IsSeller {
		return deny(domain.ErrForbidden)
	}
	return allow(productReadable, productWritable)
}

func productRead(_ domain.Identity, _ *Target) Decision {
	return allow(productReadable, FieldSet{})
}

func productUpdate(id domain.Identity, target *Target) Decision {
	if !id.IsAuthenticated() {
		return deny(domain.ErrUnauthenticated)
	}
	if !id.IsSeller {
		return deny(domain.ErrForbidden)
	}
	if target != nil && !id.Owns(target.OwnerID) {
		return deny(domain.ErrForbidden)
	}
	return allow(productReadable, productWritable)
}
