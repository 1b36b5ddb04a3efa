// internal/app/system/seo/schema.go
package seo

import (
	"html/template"

	"github.com/lunicar/lunicar/internal/app/system/frdate"
	"github.com/lunicar/lunicar/internal/domain/models"
)

// MaxItemList caps the entries of the article ItemList.
const MaxItemList = 10

func (s Site) organization() obj {
	return obj{
		"@type": "Organization",
		"name":  s.Name,
		"url":   s.URL,
		"logo":  obj{"@type": "ImageObject", "url": s.LogoURL()},
	}
}

// Organization describes the business for the home page.
func (s Site) Organization() template.JS {
	org := s.organization()
	org["@context"] = schemaContext
	org["description"] = "Reprise automobile professionnelle partout en France. Estimation gratuite, paiement immédiat."
	org["areaServed"] = obj{"@type": "Country", "name": "France"}
	return jsonLD(org)
}

// WebSite describes the site itself.
func (s Site) WebSite() template.JS {
	return jsonLD(obj{
		"@context":   schemaContext,
		"@type":      "WebSite",
		"name":       s.Name,
		"url":        s.URL,
		"inLanguage": "fr-FR",
	})
}

// LocalBusiness describes the buy-back service in one city.
func (s Site) LocalBusiness(city models.City) template.JS {
	return jsonLD(obj{
		"@context":    schemaContext,
		"@type":       "AutomotiveBusiness",
		"name":        s.Name,
		"url":         s.Abs("/reprise-auto-" + city.Slug),
		"image":       s.LogoURL(),
		"description": "Reprise automobile professionnelle à " + city.Nom,
		"priceRange":  "€€",
		"address": obj{
			"@type":           "PostalAddress",
			"addressLocality": city.Nom,
			"postalCode":      city.CodePostal,
			"addressRegion":   city.Region,
			"addressCountry":  "FR",
		},
		"areaServed": obj{"@type": "City", "name": city.Nom},
	})
}

// Service describes the offer of a thematic landing page.
func (s Site) Service(t models.Theme) template.JS {
	return jsonLD(obj{
		"@context":    schemaContext,
		"@type":       "Service",
		"name":        s.Name + " - " + t.H1,
		"description": t.MetaDescription,
		"serviceType": "Reprise automobile",
		"url":         s.Abs("/" + t.Slug),
		"provider":    s.organization(),
		"areaServed":  obj{"@type": "Country", "name": "France"},
	})
}

// FAQPage renders the question/answer pairs of a page. It returns "" when
// faq is empty so templates can skip the block.
func FAQPage(faq []models.FAQEntry) template.JS {
	if len(faq) == 0 {
		return ""
	}
	items := make([]obj, 0, len(faq))
	for _, f := range faq {
		items = append(items, obj{
			"@type":          "Question",
			"name":           f.Question,
			"acceptedAnswer": obj{"@type": "Answer", "text": f.Answer},
		})
	}
	return jsonLD(obj{
		"@context":   schemaContext,
		"@type":      "FAQPage",
		"mainEntity": items,
	})
}

// Breadcrumb renders a BreadcrumbList; positions start at 1.
func (s Site) Breadcrumb(crumbs ...Crumb) template.JS {
	items := make([]obj, 0, len(crumbs))
	for i, c := range crumbs {
		items = append(items, obj{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     c.Name,
			"item":     s.Abs(c.Path),
		})
	}
	return jsonLD(obj{
		"@context":        schemaContext,
		"@type":           "BreadcrumbList",
		"itemListElement": items,
	})
}

// ArticleImage returns the article's image or the site default.
func (s Site) ArticleImage(a models.Article) string {
	if img := a.ImageURL(); img != "" {
		return s.Abs(img)
	}
	return s.Abs("/assets/img/og-article.png")
}

// BlogPosting describes an article page.
func (s Site) BlogPosting(a models.Article) template.JS {
	url := s.Abs("/article/" + a.Slug)
	author := a.Auteur
	if author == "" {
		author = s.Name
	}
	published := a.DateISO
	if published == "" {
		published = isoFromLong(a.Date)
	}
	modified := published
	if a.DateModified != "" {
		if iso := isoFromLong(a.DateModified); iso != "" {
			modified = iso
		}
	}
	return jsonLD(obj{
		"@context":         schemaContext,
		"@type":            "BlogPosting",
		"mainEntityOfPage": obj{"@type": "WebPage", "@id": url},
		"headline":         a.Titre,
		"description":      a.Description(),
		"image":            s.ArticleImage(a),
		"author":           obj{"@type": "Organization", "name": author, "url": s.URL},
		"publisher":        s.organization(),
		"datePublished":    published,
		"dateModified":     modified,
		"keywords":         a.Tags,
	})
}

func isoFromLong(s string) string {
	t, err := frdate.ParseLong(s)
	if err != nil {
		return ""
	}
	return frdate.ISO(t)
}

// ArticleList renders the ItemList of the blog index. numberOfItems counts
// every article; only the first MaxItemList are listed.
func (s Site) ArticleList(all []models.Article) template.JS {
	n := len(all)
	if n > MaxItemList {
		n = MaxItemList
	}
	items := make([]obj, 0, n)
	for i, a := range all[:n] {
		items = append(items, obj{
			"@type":    "ListItem",
			"position": i + 1,
			"url":      s.Abs("/article/" + a.Slug),
			"name":     a.Titre,
		})
	}
	return jsonLD(obj{
		"@context":        schemaContext,
		"@type":           "ItemList",
		"name":            "Articles " + s.Name,
		"description":     "Conseils et actualités pour vendre votre voiture",
		"numberOfItems":   len(all),
		"itemListElement": items,
	})
}
