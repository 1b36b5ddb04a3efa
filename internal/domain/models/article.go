// internal/domain/models/article.go
package models

// Article is a blog post published under /article/{slug}.
// JSON field names match the stored articles collection.
type Article struct {
	Slug            string   `json:"slug"`            // unique key derived from Titre
	Titre           string   `json:"titre"`           // display title
	MetaTitle       *string  `json:"metaTitle"`       // overrides <title> when set
	MetaDescription string   `json:"metaDescription"` // defaults to Extrait
	Extrait         string   `json:"extrait"`         // short summary shown in lists
	Categorie       string   `json:"categorie"`
	CategorieSlug   string   `json:"categorieSlug"` // folded Categorie, used by ?cat= filters
	Tags            []string `json:"tags"`
	Date            string   `json:"date"`    // French long date, e.g. "16 octobre 2026"
	DateISO         string   `json:"dateISO"` // YYYY-MM-DD
	DateModified    string   `json:"dateModified,omitempty"`
	TempsLecture    int      `json:"tempsLecture"` // reading time in minutes, >= 1
	Emoji           string   `json:"emoji"`
	Image           *string  `json:"image"`
	ImageAlt        *string  `json:"imageAlt"`
	Auteur          string   `json:"auteur"`
	Contenu         string   `json:"contenu"` // HTML body
}

// Article defaults applied on creation.
const (
	DefaultArticleEmoji  = "📰"
	DefaultArticleAuthor = "Equipe LUNICAR"
)

// PageTitle returns the <title> for the article page.
func (a Article) PageTitle() string {
	if a.MetaTitle != nil && *a.MetaTitle != "" {
		return *a.MetaTitle
	}
	return a.Titre + " | " + DefaultSiteName
}

// Description returns the meta description, falling back to the excerpt.
func (a Article) Description() string {
	if a.MetaDescription != "" {
		return a.MetaDescription
	}
	return a.Extrait
}

// ImageURL returns the article image or "" when none is set.
func (a Article) ImageURL() string {
	if a.Image == nil {
		return ""
	}
	return *a.Image
}

// ImageAltText returns the image alt text, falling back to the title.
func (a Article) ImageAltText() string {
	if a.ImageAlt != nil && *a.ImageAlt != "" {
		return *a.ImageAlt
	}
	return a.Titre
}
