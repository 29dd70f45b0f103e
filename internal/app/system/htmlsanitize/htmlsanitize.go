// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize cleans user-supplied rich text before storage.
// Visit notes may carry simple formatting pasted from the dashboard
// editor; everything executable is stripped.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var (
	ugc    = bluemonday.UGCPolicy()
	strict = bluemonday.StrictPolicy()
)

// Sanitize keeps common formatting markup and removes scripts, event
// handlers, and javascript: URLs.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return ugc.Sanitize(s)
}

// StripTags removes all markup, leaving plain text. Used for fields
// that end up in SMS messages or list views.
func StripTags(s string) string {
	if s == "" {
		return ""
	}
	return strict.Sanitize(s)
}
