// internal/app/system/seo/sitemap.go
package seo

import (
	"encoding/xml"
	"strings"
	"time"

	"github.com/lunicar/lunicar/internal/app/system/frdate"
	"github.com/lunicar/lunicar/internal/domain/models"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

// URL is one <url> entry of a sitemap.
type URL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNS   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

// StaticPage is a fixed page listed in the sitemap.
type StaticPage struct {
	Path       string
	ChangeFreq string
	Priority   string
}

// StaticPages are the fixed pages of the site, in sitemap order.
var StaticPages = []StaticPage{
	{"/", "weekly", "1.0"},
	{"/reprise", "monthly", "0.9"},
	{"/garanties", "monthly", "0.8"},
	{"/articles", "weekly", "0.8"},
	{"/contact", "monthly", "0.7"},
	{"/mentions-legales", "yearly", "0.3"},
	{"/politique-confidentialite", "yearly", "0.3"},
}

// SitemapURLs lists every indexable URL: static pages, then city, theme
// and article pages. Articles without dateISO get today as lastmod.
func (s Site) SitemapURLs(cities []models.City, themes []models.Theme, articles []models.Article, now time.Time) []URL {
	urls := make([]URL, 0, len(StaticPages)+len(cities)+len(themes)+len(articles))
	for _, p := range StaticPages {
		urls = append(urls, URL{Loc: s.Abs(p.Path), ChangeFreq: p.ChangeFreq, Priority: p.Priority})
	}
	for _, c := range cities {
		urls = append(urls, URL{Loc: s.Abs("/reprise-auto-" + c.Slug), ChangeFreq: "monthly", Priority: "0.7"})
	}
	for _, t := range themes {
		urls = append(urls, URL{Loc: s.Abs("/" + t.Slug), ChangeFreq: "monthly", Priority: "0.8"})
	}
	today := frdate.ISO(now)
	for _, a := range articles {
		lastmod := a.DateISO
		if lastmod == "" {
			lastmod = today
		}
		urls = append(urls, URL{
			Loc:        s.Abs("/article/" + a.Slug),
			LastMod:    lastmod,
			ChangeFreq: "monthly",
			Priority:   "0.7",
		})
	}
	return urls
}

// Sitemap renders urls as a sitemaps.org urlset document.
func Sitemap(urls []URL) ([]byte, error) {
	body, err := xml.MarshalIndent(urlSet{XMLNS: sitemapNS, URLs: urls}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}

// Disallowed are the path prefixes hidden from crawlers.
var Disallowed = []string{"/admin", "/admino", "/api/admin/", "/uploads/"}

// Robots renders robots.txt.
func (s Site) Robots() string {
	var b strings.Builder
	b.WriteString("# " + s.Name + " - Robots.txt\n")
	b.WriteString("User-agent: *\nAllow: /\n\n")
	b.WriteString("# Sitemap\nSitemap: " + s.Abs("/sitemap.xml") + "\n\n")
	b.WriteString("# Disallow admin areas and uploads\n")
	for _, p := range Disallowed {
		b.WriteString("Disallow: " + p + "\n")
	}
	return b.String()
}
