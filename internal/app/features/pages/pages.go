// internal/app/features/pages/pages.go
package pages

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/lunicar/lunicar/internal/app/system/seo"
	"github.com/lunicar/lunicar/internal/app/system/viewdata"
	"go.uber.org/zap"
)

// Page describes one static content page.
type Page struct {
	Path        string
	Template    string
	Title       string
	Description string
	Crumb       string // breadcrumb label; empty means no BreadcrumbList
	NoIndex     bool
}

// Static pages served by this feature.
var (
	Garanties = Page{
		Path:        "/garanties",
		Template:    "pages/garanties",
		Title:       "Nos garanties | LUNICAR",
		Description: "Paiement immédiat, démarches administratives incluses, offre ferme sans engagement : découvrez les garanties LUNICAR pour vendre votre voiture en toute sérénité.",
		Crumb:       "Nos garanties",
	}
	MentionsLegales = Page{
		Path:        "/mentions-legales",
		Template:    "pages/mentions_legales",
		Title:       "Mentions légales | LUNICAR",
		Description: "Mentions légales du site LUNICAR : éditeur, hébergement et propriété intellectuelle.",
		Crumb:       "Mentions légales",
	}
	Confidentialite = Page{
		Path:        "/politique-confidentialite",
		Template:    "pages/confidentialite",
		Title:       "Politique de confidentialité | LUNICAR",
		Description: "Comment LUNICAR collecte, utilise et protège vos données personnelles conformément au RGPD.",
		Crumb:       "Politique de confidentialité",
	}
	AdminShell = Page{
		Path:     "/admino",
		Template: "pages/admino",
		Title:    "Administration | LUNICAR",
		NoIndex:  true,
	}
)

// Handler provides static page handlers.
type Handler struct {
	logger *zap.Logger
}

// NewHandler creates a new pages Handler.
func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger}
}

// Routes mounts the static pages on r.
func (h *Handler) Routes(r chi.Router) {
	for _, p := range []Page{Garanties, MentionsLegales, Confidentialite, AdminShell} {
		r.Get(p.Path, h.Show(p))
	}
}

// Show returns a handler rendering p.
func (h *Handler) Show(p Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		site := viewdata.Site()
		vm := viewdata.New(r)
		vm.WithMeta(site.Page(p.Path, p.Title, p.Description))
		vm.Meta.NoIndex = p.NoIndex
		if p.Crumb != "" {
			vm.AddJSONLD(site.Breadcrumb(
				seo.Crumb{Name: "Accueil", Path: "/"},
				seo.Crumb{Name: p.Crumb, Path: p.Path},
			))
		}
		templates.Render(w, r, p.Template, vm)
	}
}
