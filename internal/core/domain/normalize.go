package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeEmail trims surrounding whitespace and case-folds the address so
// lookups and the uniqueness constraint see a single canonical form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// TitleCase upper-cases the first letter of every word and lower-cases the
// rest ("joão da SILVA" -> "João Da Silva").
func TitleCase(s string) string {
	return cases.Title(language.Und).String(strings.TrimSpace(s))
}
