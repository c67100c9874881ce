// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize strips dangerous markup from user-supplied
// content before it is persisted.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var (
	// ugc keeps basic formatting (paragraphs, emphasis, links) and
	// removes scripts and event handlers.
	ugc = bluemonday.UGCPolicy()

	// strict removes all markup, leaving plain text.
	strict = bluemonday.StrictPolicy()
)

// Sanitize cleans rich-text input such as listing descriptions and
// policy notes, keeping safe formatting.
func Sanitize(s string) string {
	return ugc.Sanitize(s)
}

// Strict cleans single-line input such as names and titles, removing
// all markup.
func Strict(s string) string {
	return strict.Sanitize(s)
}
