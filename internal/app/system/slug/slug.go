// Package slug derives URL-safe identifiers from French titles and names.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// StripAccents lowercases s, decomposes it (NFD) and drops combining marks,
// so "Électrique" becomes "electrique".
func StripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// Make returns the slug for a title: accents stripped, every run of
// characters outside [a-z0-9] replaced by a single "-", and leading or
// trailing dashes trimmed.
func Make(title string) string {
	s := nonAlnum.ReplaceAllString(StripAccents(title), "-")
	return strings.Trim(s, "-")
}

// Category returns the filter key for an article category. Unlike Make it
// keeps spaces and punctuation; it only lowercases and strips accents.
func Category(name string) string {
	return StripAccents(name)
}
