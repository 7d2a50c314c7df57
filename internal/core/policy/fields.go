package policy

import "sort"

// Field names as they appear in request and response bodies.
const (
	FieldID           = "id"
	FieldEmail        = "email"
	FieldPassword     = "password"
	FieldPasswordHash = "password_hash"
	FieldFirstName    = "first_name"
	FieldLastName     = "last_name"
	FieldIsSeller     = "is_seller"
	FieldIsStaff      = "is_staff"
	FieldIsSuperuser  = "is_superuser"
	FieldIsActive     = "is_active"
	FieldDateJoined   = "date_joined"

	FieldSellerID    = "seller_id"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldQuantity    = "quantity"
)

// FieldSet is an immutable set of field names. The zero value is empty.
type FieldSet struct {
	m map[string]struct{}
}

// Fields builds a FieldSet from names.
func Fields(names ...string) FieldSet {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return FieldSet{m: m}
}

func (s FieldSet) Has(name string) bool {
	_, ok := s.m[name]
	return ok
}

func (s FieldSet) Len() int {
	return len(s.m)
}

// Union returns a new set holding the fields of both sets.
func (s FieldSet) Union(other FieldSet) FieldSet {
	out := make(map[string]struct{}, len(s.m)+len(other.m))
	for k := range s.m {
		out[k] = struct{}{}
	}
	for k := range other.m {
		out[k] = struct{}{}
	}
	return FieldSet{m: out}
}

// Without returns a new set with names removed.
func (s FieldSet) Without(names ...string) FieldSet {
	out := make(map[string]struct{}, len(s.m))
	for k := range s.m {
		out[k] = struct{}{}
	}
	for _, n := range names {
		delete(out, n)
	}
	return FieldSet{m: out}
}

// Names returns the fields in lexical order.
func (s FieldSet) Names() []string {
	names := make([]string, 0, len(s.m))
	for k := range s.m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

var (
	accountPublic = Fields(FieldID, FieldEmail, FieldFirstName, FieldLastName, FieldIsSeller, FieldDateJoined)
	accountOwner  = Fields(FieldIsActive)
	accountAdmin  = Fields(FieldIsActive, FieldIsStaff, FieldIsSuperuser)

	accountCreatable  = Fields(FieldEmail, FieldPassword, FieldFirstName, FieldLastName, FieldIsSeller)
	accountSelfEdit   = Fields(FieldEmail, FieldPassword, FieldFirstName, FieldLastName)
	accountManageable = Fields(FieldIsActive, FieldIsSeller)

	productReadable = Fields(FieldID, FieldSellerID, FieldDescription, FieldPrice, FieldQuantity, FieldIsActive)
	productWritable = Fields(FieldDescription, FieldPrice, FieldQuantity)

	// never leave the store, whatever the rule says.
	sensitive = []string{FieldPassword, FieldPasswordHash}
)
