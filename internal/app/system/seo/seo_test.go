package seo

import (
	"encoding/json"
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/lunicar/lunicar/internal/domain/models"
)

var site = NewSite("LUNICAR", "https://lunicar.fr/")

func decode(t *testing.T, js string) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal([]byte(js), &m); err != nil {
		t.Fatalf("invalid JSON-LD: %v\n%s", err, js)
	}
	return m
}

func TestSite_Abs(t *testing.T) {
	tests := map[string]string{
		"/":                 "https://lunicar.fr/",
		"/article/x":        "https://lunicar.fr/article/x",
		"https://cdn/x.jpg": "https://cdn/x.jpg",
	}
	for in, want := range tests {
		if got := site.Abs(in); got != want {
			t.Errorf("Abs(%q) = %q, want %q", in, got, want)
		}
	}
	if got := site.Abs("contact"); got != "https://lunicar.fr/contact" {
		t.Errorf("Abs(contact) = %q", got)
	}
}

func TestMeta_Fallbacks(t *testing.T) {
	m := site.Page("/garanties", "Nos garanties | LUNICAR", "desc")
	if m.SocialTitle() != m.Title || m.SocialDescription() != "desc" {
		t.Errorf("social fallbacks = %q / %q", m.SocialTitle(), m.SocialDescription())
	}
	if m.Type() != "website" {
		t.Errorf("Type() = %q", m.Type())
	}
	if m.Canonical != "https://lunicar.fr/garanties" {
		t.Errorf("Canonical = %q", m.Canonical)
	}
	m.OGTitle = "Short"
	if m.SocialTitle() != "Short" {
		t.Errorf("SocialTitle() = %q", m.SocialTitle())
	}
}

func TestLocalBusiness(t *testing.T) {
	city := models.City{Slug: "lyon", Nom: "Lyon", CodePostal: "69000", Departement: "Rhône", Region: "Auvergne-Rhône-Alpes"}
	m := decode(t, string(site.LocalBusiness(city)))

	if m["@type"] != "AutomotiveBusiness" {
		t.Errorf("@type = %v", m["@type"])
	}
	area := m["areaServed"].(map[string]any)
	if area["name"] != "Lyon" {
		t.Errorf("areaServed.name = %v", area["name"])
	}
	if m["description"] != "Reprise automobile professionnelle à Lyon" {
		t.Errorf("description = %v", m["description"])
	}
}

func TestService(t *testing.T) {
	th := models.Theme{Slug: "reprise-voiture-en-panne", H1: "Reprise de voiture en panne", MetaDescription: "md"}
	m := decode(t, string(site.Service(th)))
	if m["name"] != "LUNICAR - Reprise de voiture en panne" {
		t.Errorf("name = %v", m["name"])
	}
	if m["description"] != "md" {
		t.Errorf("description = %v", m["description"])
	}
}

func TestFAQPage(t *testing.T) {
	if FAQPage(nil) != "" {
		t.Error("FAQPage(nil) should be empty")
	}
	m := decode(t, string(FAQPage([]models.FAQEntry{{Question: "Q1 ?", Answer: "A1"}, {Question: "Q2 ?", Answer: "A2"}})))
	entities := m["mainEntity"].([]any)
	if len(entities) != 2 {
		t.Fatalf("mainEntity len = %d", len(entities))
	}
	first := entities[0].(map[string]any)
	if first["name"] != "Q1 ?" || first["acceptedAnswer"].(map[string]any)["text"] != "A1" {
		t.Errorf("first entity = %v", first)
	}
}

func TestBreadcrumb(t *testing.T) {
	m := decode(t, string(site.Breadcrumb(
		Crumb{"Accueil", "/"},
		Crumb{"Articles", "/articles"},
		Crumb{"Conseils", "/articles?cat=conseils"},
	)))
	items := m["itemListElement"].([]any)
	if len(items) != 3 {
		t.Fatalf("items = %d", len(items))
	}
	last := items[2].(map[string]any)
	if last["position"].(float64) != 3 || last["item"] != "https://lunicar.fr/articles?cat=conseils" {
		t.Errorf("last crumb = %v", last)
	}
}

func TestBlogPosting(t *testing.T) {
	a := models.Article{
		Slug: "vendre-sa-voiture", Titre: "Vendre sa voiture", Extrait: "ex",
		Date: "3 mars 2026", DateModified: "16 octobre 2026",
		Auteur: "Equipe LUNICAR", Tags: []string{"vente"},
	}
	m := decode(t, string(site.BlogPosting(a)))
	if m["datePublished"] != "2026-03-03" {
		t.Errorf("datePublished = %v", m["datePublished"])
	}
	if m["dateModified"] != "2026-10-16" {
		t.Errorf("dateModified = %v", m["dateModified"])
	}
	if m["description"] != "ex" {
		t.Errorf("description = %v", m["description"])
	}
	if m["image"] != "https://lunicar.fr/assets/img/og-article.png" {
		t.Errorf("image = %v", m["image"])
	}
}

func TestJSONLD_EscapesScriptClose(t *testing.T) {
	a := models.Article{Slug: "x", Titre: "</script><b>", DateISO: "2026-01-01"}
	js := string(site.BlogPosting(a))
	if strings.Contains(js, "</script>") {
		t.Errorf("JSON-LD contains a raw closing tag: %s", js)
	}
}

func TestArticleList(t *testing.T) {
	var all []models.Article
	for i := 0; i < 13; i++ {
		all = append(all, models.Article{Slug: string(rune('a' + i)), Titre: "T"})
	}
	m := decode(t, string(site.ArticleList(all)))
	if m["numberOfItems"].(float64) != 13 {
		t.Errorf("numberOfItems = %v", m["numberOfItems"])
	}
	if n := len(m["itemListElement"].([]any)); n != MaxItemList {
		t.Errorf("itemListElement len = %d", n)
	}
}

func TestSitemap(t *testing.T) {
	cities := []models.City{{Slug: "paris"}, {Slug: "lyon"}}
	themes := []models.Theme{{Slug: "reprise-voiture-rapide"}}
	articles := []models.Article{{Slug: "a1", DateISO: "2026-01-02"}, {Slug: "a2"}}
	now := time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)

	urls := site.SitemapURLs(cities, themes, articles, now)
	if len(urls) != len(StaticPages)+5 {
		t.Fatalf("urls = %d", len(urls))
	}

	body, err := Sitemap(urls)
	if err != nil {
		t.Fatalf("Sitemap() error: %v", err)
	}
	doc := string(body)
	for _, want := range []string{
		`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`,
		"<loc>https://lunicar.fr/</loc>",
		"<loc>https://lunicar.fr/reprise-auto-paris</loc>",
		"<loc>https://lunicar.fr/reprise-auto-lyon</loc>",
		"<loc>https://lunicar.fr/reprise-voiture-rapide</loc>",
		"<loc>https://lunicar.fr/article/a1</loc>",
		"<lastmod>2026-01-02</lastmod>",
		"<lastmod>2026-10-16</lastmod>",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("sitemap missing %q", want)
		}
	}

	var parsed urlSet
	if err := xml.Unmarshal(body, &parsed); err != nil {
		t.Fatalf("sitemap does not parse: %v", err)
	}
	if parsed.URLs[0].Priority != "1.0" {
		t.Errorf("home priority = %q", parsed.URLs[0].Priority)
	}
}

func TestRobots(t *testing.T) {
	r := site.Robots()
	for _, want := range []string{
		"User-agent: *",
		"Disallow: /admin\n",
		"Disallow: /admino\n",
		"Disallow: /api/admin/\n",
		"Disallow: /uploads/\n",
		"Sitemap: https://lunicar.fr/sitemap.xml",
	} {
		if !strings.Contains(r, want) {
			t.Errorf("robots missing %q", want)
		}
	}
}
