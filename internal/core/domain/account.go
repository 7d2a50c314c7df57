package domain

import "time"

// Account models a marketplace participant. Role is carried by flags:
// buyers and sellers register through the API, admins only through the CLI.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	IsSeller     bool
	IsStaff      bool
	IsSuperuser  bool
	IsActive     bool
	DateJoined   time.Time
}

// IsAdmin reports whether the account holds either administrative flag.
func (a *Account) IsAdmin() bool {
	return a.IsStaff || a.IsSuperuser
}

// Role returns a coarse label used for logs and metrics.
func (a *Account) Role() string {
	switch {
	case a.IsAdmin():
		return RoleAdmin
	case a.IsSeller:
		return RoleSeller
	default:
		return RoleBuyer
	}
}

const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)
