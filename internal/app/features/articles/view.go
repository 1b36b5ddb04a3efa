// internal/app/features/articles/view.go
package articles

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/lunicar/lunicar/internal/domain/models"
)

// Teaser is a shortened article for sidebars.
type Teaser struct {
	Slug    string
	Emoji   string
	Titre   string
	Extrait string
	Date    string
}

func teasers(all []models.Article) []Teaser {
	out := make([]Teaser, 0, len(all))
	for _, a := range all {
		out = append(out, Teaser{
			Slug:    a.Slug,
			Emoji:   a.Emoji,
			Titre:   Truncate(a.Titre, 50),
			Extrait: Truncate(a.Extrait, 150),
			Date:    a.Date,
		})
	}
	return out
}

// Truncate cuts s to at most n runes and appends "..." when it was longer.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:n])) + "..."
}

// ShareLink is a social sharing button.
type ShareLink struct {
	Network string
	Label   string
	URL     string
}

func shareLinks(pageURL, title string) []ShareLink {
	u := url.QueryEscape(pageURL)
	t := url.QueryEscape(title)
	return []ShareLink{
		{Network: "facebook", Label: "Facebook", URL: "https://www.facebook.com/sharer/sharer.php?u=" + u},
		{Network: "twitter", Label: "Twitter", URL: "https://twitter.com/intent/tweet?url=" + u + "&text=" + t},
		{Network: "linkedin", Label: "LinkedIn", URL: "https://www.linkedin.com/shareArticle?mini=true&url=" + u + "&title=" + t},
		{Network: "whatsapp", Label: "WhatsApp", URL: "https://wa.me/?text=" + strings.ReplaceAll(url.QueryEscape(title+" "+pageURL), "+", "%20")},
	}
}

func firstN[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
