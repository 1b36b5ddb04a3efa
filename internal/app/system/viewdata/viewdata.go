// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"html/template"
	"net/http"
	"time"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
	"github.com/lunicar/lunicar/internal/app/system/seo"
	"github.com/lunicar/lunicar/internal/domain/models"
)

// NavLink is an entry of the header navigation.
type NavLink struct {
	Label string
	Path  string
}

// Nav is the header navigation shared by every public page.
var Nav = []NavLink{
	{"Accueil", "/"},
	{"Vendre ma voiture", "/reprise"},
	{"Nos garanties", "/garanties"},
	{"Articles", "/articles"},
	{"Contact", "/contact"},
}

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	vm := myPageData{BaseVM: viewdata.New(r)}
//	vm.Meta = viewdata.Site().Page("/garanties", "Nos garanties | LUNICAR", "...")
type BaseVM struct {
	SiteName string
	SiteURL  string
	Year     int

	// Page context
	Title       string
	CurrentPath string
	Nav         []NavLink

	// SEO
	Meta   seo.Meta
	JSONLD []template.JS // one <script type="application/ld+json"> per entry

	// Security
	CSRFToken string // CSRF token for forms (use in hidden input field)
}

var site = seo.NewSite(models.DefaultSiteName, models.DefaultSiteURL)

// Init sets the public site identity. Call this once at startup from
// bootstrap.
func Init(s seo.Site) {
	site = s
}

// Site returns the public site identity.
func Site() seo.Site {
	return site
}

// New creates a BaseVM for the request. Canonical defaults to the current
// path; handlers override Meta for SEO pages.
func New(r *http.Request) BaseVM {
	path := httpnav.CurrentPath(r)
	return BaseVM{
		SiteName:    site.Name,
		SiteURL:     site.URL,
		Year:        time.Now().Year(),
		CurrentPath: path,
		Nav:         Nav,
		Meta:        site.Page(r.URL.Path, site.Name, ""),
		CSRFToken:   csrf.Token(r),
	}
}

// WithMeta sets the page meta and mirrors its title into Title.
func (vm *BaseVM) WithMeta(m seo.Meta) {
	vm.Meta = m
	vm.Title = m.Title
}

// AddJSONLD appends structured data blocks, skipping empty ones.
func (vm *BaseVM) AddJSONLD(blocks ...template.JS) {
	for _, b := range blocks {
		if b != "" {
			vm.JSONLD = append(vm.JSONLD, b)
		}
	}
}

// IsActive reports whether path is the current page, for nav highlighting.
func (vm BaseVM) IsActive(path string) bool {
	return vm.CurrentPath == path
}
