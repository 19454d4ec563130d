// Package keys builds deterministic cache keys from a resource-type name
// and the normalized call arguments. The same (name, args) pair always maps
// to the same key; reordered arguments map to a different key.
package keys

import (
	"fmt"
	"strings"
	"unicode"
)

// Build returns "slug(name)/arg1/arg2/...", lowercased, with all whitespace
// removed. The caller is expected to have normalized the arguments already
// (reload flag stripped, empty trailing options dropped).
func Build(name string, args []any) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, Slug(name))
	for _, a := range args {
		parts = append(parts, format(a))
	}
	return sanitize(strings.Join(parts, "/"))
}

// Slug lowercases name and collapses every run of non-alphanumeric runes
// into a single path separator, so "Admin::UserProfile" keys under
// "admin/userprofile" the way a nested resource path would.
func Slug(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	sep := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			sep = false
			continue
		}
		if !sep && b.Len() > 0 {
			b.WriteByte('/')
			sep = true
		}
	}
	return strings.TrimSuffix(b.String(), "/")
}

// format stringifies one argument. fmt prints map keys in sorted order, so
// nested option maps render deterministically; slices keep their order.
func format(a any) string {
	return fmt.Sprintf("%v", a)
}

func sanitize(s string) string {
	s = strings.ToLower(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
