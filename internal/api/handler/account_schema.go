package handler

import "time"

// ── Requests ──────────────────────────────────────────────────────────────────

type registerRequest struct {
	Email     *string `json:"email"      example:"ana@example.com"`
	Password  *string `json:"password"   example:"s3cret-pass"`
	FirstName *string `json:"first_name" example:"Ana"`
	LastName  *string `json:"last_name"  example:"Lima"`
	IsSeller  bool    `json:"is_seller"`
}

// updateAccountRequest accepts any subset of the self-editable fields.
// Role flags sent by the client are decoded but never applied.
type updateAccountRequest struct {
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	IsSeller  *bool   `json:"is_seller"`
	IsActive  *bool   `json:"is_active"`
}

type manageAccountRequest struct {
	IsActive *bool `json:"is_active"`
	IsSeller *bool `json:"is_seller"`
}

type loginRequest struct {
	Email    *string `json:"email"    example:"ana@example.com"`
	Password *string `json:"password" example:"s3cret-pass"`
}

// ── Responses ─────────────────────────────────────────────────────────────────

// accountResponse omits every field the caller may not read.
type accountResponse struct {
	ID          string     `json:"id,omitempty"`
	Email       string     `json:"email,omitempty"`
	FirstName   string     `json:"first_name,omitempty"`
	LastName    string     `json:"last_name,omitempty"`
	IsSeller    *bool      `json:"is_seller,omitempty"`
	DateJoined  *time.Time `json:"date_joined,omitempty"`
	IsActive    *bool      `json:"is_active,omitempty"`
	IsStaff     *bool      `json:"is_staff,omitempty"`
	IsSuperuser *bool      `json:"is_superuser,omitempty"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// DetailResponse is the error envelope for every non-field error.
type DetailResponse struct {
	Detail string `json:"detail" example:"Not found."`
}
