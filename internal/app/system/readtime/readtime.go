// Package readtime estimates how long an HTML article takes to read.
package readtime

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// WordsPerMinute is the reading speed used for estimates.
const WordsPerMinute = 200

// textOnly drops every element. Each dropped tag leaves a space so
// adjacent block elements do not merge words.
var textOnly = bluemonday.StrictPolicy().AddSpaceWhenStrippingTag(true)

// StripTags returns the text content of html. Script and style bodies
// are dropped along with their tags.
func StripTags(s string) string {
	return html.UnescapeString(textOnly.Sanitize(s))
}

// WordCount counts whitespace-separated words of the text content of body.
func WordCount(body string) int {
	return len(strings.Fields(StripTags(body)))
}

// Minutes returns max(1, ceil(words / WordsPerMinute)).
func Minutes(body string) int {
	words := WordCount(body)
	m := (words + WordsPerMinute - 1) / WordsPerMinute
	if m < 1 {
		return 1
	}
	return m
}
