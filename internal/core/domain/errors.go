package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrUnauthenticated    = errors.New("authentication credentials were not provided")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInactiveAccount    = errors.New("account inactive or deleted")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbidden          = errors.New("permission denied")

	ErrAccountNotFound = errors.New("account not found")
	ErrProductNotFound = errors.New("product not found")
	ErrTokenNotFound   = errors.New("token not found")

	// ErrEmailTaken is returned by stores when the unique email constraint
	// rejects an insert or update.
	ErrEmailTaken = errors.New("email already taken")
)

// Field error messages shared by validation and conflict reporting.
const (
	MsgRequired   = "This field is required."
	MsgEmailTaken = "account with this email already exists."
)

// FieldErrors maps a JSON field name to every message raised against it.
type FieldErrors map[string][]string

// Add appends msg to the messages of field.
func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

func (fe FieldErrors) String() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(fe[k], " "))
	}
	return strings.Join(parts, "; ")
}

// ValidationError reports every invalid field of a request at once.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Fields.String()
}

// ConflictError reports a uniqueness violation on the named fields.
type ConflictError struct {
	Fields FieldErrors
}

func (e *ConflictError) Error() string {
	return "conflict: " + e.Fields.String()
}

// NewEmailConflict builds the conflict raised for a duplicate email.
func NewEmailConflict() *ConflictError {
	return &ConflictError{Fields: FieldErrors{"email": {MsgEmailTaken}}}
}
