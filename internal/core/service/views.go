package service

import (
	"strings"

	"github.com/99minutos/marketplace-system/internal/core/domain"
	"github.com/99minutos/marketplace-system/internal/core/policy"
	"github.com/99minutos/marketplace-system/internal/core/ports"
)

// accountView copies only the fields present in readable.
func accountView(a *domain.Account, readable policy.FieldSet) ports.AccountView {
	var v ports.AccountView
	if readable.Has(policy.FieldID) {
		v.ID = a.ID
	}
	if readable.Has(policy.FieldEmail) {
		v.Email = a.Email
	}
	if readable.Has(policy.FieldFirstName) {
		v.FirstName = a.FirstName
	}
	if readable.Has(policy.FieldLastName) {
		v.LastName = a.LastName
	}
	if readable.Has(policy.FieldIsSeller) {
		v.IsSeller = ptr(a.IsSeller)
	}
	if readable.Has(policy.FieldDateJoined) {
		v.DateJoined = ptr(a.DateJoined)
	}
	if readable.Has(policy.FieldIsActive) {
		v.IsActive = ptr(a.IsActive)
	}
	if readable.Has(policy.FieldIsStaff) {
		v.IsStaff = ptr(a.IsStaff)
	}
	if readable.Has(policy.FieldIsSuperuser) {
		v.IsSuperuser = ptr(a.IsSuperuser)
	}
	return v
}

func productView(p *domain.Product, readable policy.FieldSet) ports.ProductView {
	var v ports.ProductView
	if readable.Has(policy.FieldID) {
		v.ID = p.ID
	}
	if readable.Has(policy.FieldSellerID) {
		v.SellerID = p.SellerID
	}
	if readable.Has(policy.FieldDescription) {
		v.Description = p.Description
	}
	if readable.Has(policy.FieldPrice) {
		v.Price = ptr(p.Price)
	}
	if readable.Has(policy.FieldQuantity) {
		v.Quantity = ptr(p.Quantity)
	}
	if readable.Has(policy.FieldIsActive) {
		v.IsActive = ptr(p.IsActive)
	}
	return v
}

func ptr[T any](v T) *T {
	return &v
}

// trimmed returns a trimmed copy of s, keeping nil as nil.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	return ptr(strings.TrimSpace(*s))
}
