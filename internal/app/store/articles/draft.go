// internal/app/store/articles/draft.go
package articlestore

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/lunicar/lunicar/internal/app/system/frdate"
	"github.com/lunicar/lunicar/internal/app/system/readtime"
	"github.com/lunicar/lunicar/internal/app/system/slug"
	"github.com/lunicar/lunicar/internal/domain/models"
)

// ErrEmptySlug is returned when a title has no letters or digits to build
// a slug from.
var ErrEmptySlug = errors.New("article title yields an empty slug")

// Tags accepts either a comma-separated string or a JSON array.
type Tags []string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Tags) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*t = nil
		return nil
	}
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*t = cleanTags(list)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*t = ParseTags(s)
	return nil
}

// ParseTags splits a comma-separated list, trimming entries and dropping
// empty ones.
func ParseTags(s string) Tags {
	return cleanTags(strings.Split(s, ","))
}

func cleanTags(in []string) Tags {
	var out Tags
	for _, t := range in {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Nullable is a string field that distinguishes "absent" from "null".
type Nullable struct {
	Set   bool
	Value *string
}

// UnmarshalJSON implements json.Unmarshaler. It is only called when the
// key is present.
func (n *Nullable) UnmarshalJSON(b []byte) error {
	n.Set = true
	if bytes.Equal(b, []byte("null")) {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

// Draft is the input for a new article.
type Draft struct {
	Titre           string `json:"titre" validate:"required"`
	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`
	Extrait         string `json:"extrait" validate:"required"`
	Categorie       string `json:"categorie" validate:"required"`
	Tags            Tags   `json:"tags"`
	Emoji           string `json:"emoji"`
	Image           string `json:"image"`
	ImageAlt        string `json:"imageAlt"`
	Auteur          string `json:"auteur"`
	Contenu         string `json:"contenu" validate:"required"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// Build turns d into an article published at now, filling derived fields
// and defaults.
func (d Draft) Build(now time.Time) (models.Article, error) {
	s := slug.Make(d.Titre)
	if s == "" {
		return models.Article{}, ErrEmptySlug
	}
	tags := []string(d.Tags)
	if len(tags) == 0 {
		tags = []string{d.Categorie}
	}
	return models.Article{
		Slug:            s,
		Titre:           d.Titre,
		MetaTitle:       optional(d.MetaTitle),
		MetaDescription: orDefault(d.MetaDescription, d.Extrait),
		Extrait:         d.Extrait,
		Categorie:       d.Categorie,
		CategorieSlug:   slug.Category(d.Categorie),
		Tags:            tags,
		Date:            frdate.Long(now),
		DateISO:         frdate.ISO(now),
		TempsLecture:    readtime.Minutes(d.Contenu),
		Emoji:           orDefault(d.Emoji, models.DefaultArticleEmoji),
		Image:           optional(d.Image),
		ImageAlt:        optional(d.ImageAlt),
		Auteur:          orDefault(d.Auteur, models.DefaultArticleAuthor),
		Contenu:         d.Contenu,
	}, nil
}

// Patch is a partial update. Empty strings keep the current value;
// MetaTitle, Image and ImageAlt may be cleared with an explicit null.
type Patch struct {
	Titre           string   `json:"titre"`
	MetaTitle       Nullable `json:"metaTitle"`
	MetaDescription string   `json:"metaDescription"`
	Extrait         string   `json:"extrait"`
	Categorie       string   `json:"categorie"`
	Tags            Tags     `json:"tags"`
	Emoji           string   `json:"emoji"`
	Image           Nullable `json:"image"`
	ImageAlt        Nullable `json:"imageAlt"`
	Auteur          string   `json:"auteur"`
	Contenu         string   `json:"contenu"`
}

// Apply merges p into a and stamps the modification date. The slug is
// kept even when the title changes so existing links stay valid.
func (p Patch) Apply(a *models.Article, now time.Time) {
	a.Titre = orDefault(p.Titre, a.Titre)
	if p.MetaTitle.Set {
		a.MetaTitle = p.MetaTitle.Value
	}
	a.MetaDescription = orDefault(p.MetaDescription, a.MetaDescription)
	a.Extrait = orDefault(p.Extrait, a.Extrait)
	a.Categorie = orDefault(p.Categorie, a.Categorie)
	a.CategorieSlug = slug.Category(a.Categorie)
	if len(p.Tags) > 0 {
		a.Tags = p.Tags
	}
	a.Emoji = orDefault(p.Emoji, a.Emoji)
	if p.Image.Set {
		a.Image = p.Image.Value
	}
	if p.ImageAlt.Set {
		a.ImageAlt = p.ImageAlt.Value
	}
	a.Auteur = orDefault(p.Auteur, a.Auteur)
	if p.Contenu != "" {
		a.Contenu = p.Contenu
		a.TempsLecture = readtime.Minutes(p.Contenu)
	}
	a.DateModified = frdate.Long(now)
}
