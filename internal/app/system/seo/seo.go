// internal/app/system/seo/seo.go
package seo

import (
	"encoding/json"
	"html/template"
	"strings"
)

// Site identifies the public site: display name and absolute base URL.
type Site struct {
	Name string
	URL  string // e.g. https://lunicar.fr, no trailing slash
}

// NewSite trims the trailing slash from url.
func NewSite(name, url string) Site {
	return Site{Name: name, URL: strings.TrimRight(url, "/")}
}

// Abs returns the absolute URL for path.
func (s Site) Abs(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return s.URL + path
}

// DefaultImage is the Open Graph image used when a page has none.
func (s Site) DefaultImage() string {
	return s.Abs("/assets/img/og-default.png")
}

// LogoURL is the logo referenced from structured data.
func (s Site) LogoURL() string {
	return s.Abs("/assets/img/logo.png")
}

// Meta holds the <head> tags of a page.
// Open Graph and Twitter values fall back to Title/Description when empty.
type Meta struct {
	Title         string
	Description   string
	Canonical     string
	OGType        string // website or article
	OGTitle       string
	OGDescription string
	Image         string
	NoIndex       bool
}

// SocialTitle returns the og:title / twitter:title value.
func (m Meta) SocialTitle() string {
	if m.OGTitle != "" {
		return m.OGTitle
	}
	return m.Title
}

// SocialDescription returns the og:description / twitter:description value.
func (m Meta) SocialDescription() string {
	if m.OGDescription != "" {
		return m.OGDescription
	}
	return m.Description
}

// Type returns og:type, defaulting to website.
func (m Meta) Type() string {
	if m.OGType == "" {
		return "website"
	}
	return m.OGType
}

// Page builds the Meta of a simple page at path.
func (s Site) Page(path, title, description string) Meta {
	return Meta{
		Title:       title,
		Description: description,
		Canonical:   s.Abs(path),
		Image:       s.DefaultImage(),
	}
}

// Crumb is one entry of a breadcrumb trail.
type Crumb struct {
	Name string
	Path string
}

// jsonLD renders v for a <script type="application/ld+json"> block.
// json.Marshal escapes <, > and & so the payload cannot close the script.
func jsonLD(v any) template.JS {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return template.JS("{}")
	}
	return template.JS(b)
}

type obj = map[string]any

const schemaContext = "https://schema.org"
