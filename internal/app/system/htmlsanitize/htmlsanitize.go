// Package htmlsanitize cleans article bodies written in the admin before
// they are stored or rendered. It uses bluemonday's UGC policy extended
// with the elements articles use.
package htmlsanitize

import (
	"html"
	"html/template"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/lunicar/lunicar/internal/app/system/slug"
	"github.com/microcosm-cc/bluemonday"
)

var (
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.UGCPolicy()

		policy.AllowElements("table", "thead", "tbody", "tfoot", "tr", "th", "td")
		policy.AllowAttrs("colspan", "rowspan").OnElements("th", "td")
		policy.AllowElements("figure", "figcaption", "mark", "u", "s", "sub", "sup")
		policy.AllowAttrs("id").Matching(regexp.MustCompile(`^[a-z0-9-]+$`)).OnElements("h2", "h3")
		policy.AllowAttrs("class").Matching(regexp.MustCompile(`^[a-zA-Z0-9 _-]+$`)).OnElements("div", "p", "span", "table", "figure", "blockquote")
		policy.AllowAttrs("loading").Matching(regexp.MustCompile(`^lazy$`)).OnElements("img")
	})
	return policy
}

// Sanitize removes dangerous elements and attributes from s.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return getPolicy().Sanitize(s)
}

// SanitizeToHTML sanitizes s and returns it as template.HTML.
func SanitizeToHTML(s string) template.HTML {
	return template.HTML(Sanitize(s))
}

// IsPlainText reports whether content carries no HTML tags.
func IsPlainText(content string) bool {
	return !strings.Contains(content, "<") || !strings.Contains(content, ">")
}

// PlainTextToHTML escapes text and turns newlines into <br>.
// Used for contact messages in notification emails.
func PlainTextToHTML(text string) string {
	if text == "" {
		return ""
	}
	return strings.ReplaceAll(template.HTMLEscapeString(text), "\n", "<br>")
}

// Heading is one entry of an article's table of contents.
type Heading struct {
	ID    string
	Title string
}

var (
	// h2Re only runs on sanitizer output, where h2 tags are well formed
	// and carry no attributes other than id.
	h2Re = regexp.MustCompile(`(?is)<h2([^>]*)>(.*?)</h2>`)

	textOnly = bluemonday.StrictPolicy()
)

// ArticleBody sanitizes an article body and gives every h2 an id so the
// table of contents can link to it. It returns the body and its headings
// in document order. Duplicate titles get numbered ids.
func ArticleBody(content string) (template.HTML, []Heading) {
	clean := Sanitize(content)
	var headings []Heading
	used := map[string]int{}

	out := h2Re.ReplaceAllStringFunc(clean, func(m string) string {
		parts := h2Re.FindStringSubmatch(m)
		inner := parts[2]
		title := strings.TrimSpace(html.UnescapeString(textOnly.Sanitize(inner)))
		id := slug.Make(title)
		if id == "" {
			id = "section"
		}
		used[id]++
		if n := used[id]; n > 1 {
			id = id + "-" + strconv.Itoa(n)
		}
		headings = append(headings, Heading{ID: id, Title: title})
		return `<h2 id="` + id + `">` + inner + `</h2>`
	})
	return template.HTML(out), headings
}
