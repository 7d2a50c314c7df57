package domain

// Identity is the resolved caller of a request: either anonymous or a
// snapshot of an authenticated account's role flags.
type Identity struct {
	AccountID     string
	IsSeller      bool
	IsStaff       bool
	IsSuperuser   bool
	IsActive      bool
	authenticated bool
}

// Anonymous returns the identity of an unauthenticated caller.
func Anonymous() Identity {
	return Identity{}
}

// IdentityOf snapshots the role flags of an authenticated account.
func IdentityOf(a *Account) Identity {
	return Identity{
		AccountID:     a.ID,
		IsSeller:      a.IsSeller,
		IsStaff:       a.IsStaff,
		IsSuperuser:   a.IsSuperuser,
		IsActive:      a.IsActive,
		authenticated: true,
	}
}

func (i Identity) IsAuthenticated() bool {
	return i.authenticated
}

func (i Identity) IsAdmin() bool {
	return i.authenticated && (i.IsStaff || i.IsSuperuser)
}

// Owns reports whether the identity is the account with the given id.
func (i Identity) Owns(accountID string) bool {
	return i.authenticated && accountID != "" && i.AccountID == accountID
}
