// internal/app/system/normalize/normalize.go

// Package normalize holds the canonical forms for user-supplied strings.
// Store code must call these before persisting so lookups and unique
// indexes behave predictably.
package normalize

import (
	"strings"
	"unicode"
)

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a display name, preserving case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Role lowercases and trims a role string.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Slug derives the permanent human-facing alias from one or more name
// parts: lowercase, non-alphanumerics collapsed to single hyphens.
// Deterministic; uniqueness is enforced by the collection's index, not
// here.
func Slug(parts ...string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, part := range parts {
		for _, r := range strings.ToLower(strings.TrimSpace(part)) {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				if pendingHyphen && b.Len() > 0 {
					b.WriteByte('-')
				}
				pendingHyphen = false
				b.WriteRune(r)
			} else {
				pendingHyphen = true
			}
		}
		pendingHyphen = true
	}
	return b.String()
}
