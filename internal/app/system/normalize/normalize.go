// internal/app/system/normalize/normalize.go
package normalize

import "strings"

// LoginID lowercases and trims a login identifier for storage and lookup.
func LoginID(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Phone trims whitespace and strips internal spaces and dashes. Phone
// numbers are identity keys for dedup, not validated contact data, so no
// further normalization is applied.
func Phone(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	return s
}

// AuthMethod lowercases and trims an auth method string.
func AuthMethod(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Status lowercases and trims a status string.
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
