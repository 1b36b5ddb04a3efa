// internal/app/features/cities/handler.go
package cities

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	errorsfeature "github.com/lunicar/lunicar/internal/app/features/errors"
	citystore "github.com/lunicar/lunicar/internal/app/store/cities"
	"github.com/lunicar/lunicar/internal/app/store/collection"
	"github.com/lunicar/lunicar/internal/app/system/jsonutil"
	"github.com/lunicar/lunicar/internal/app/system/seo"
	"github.com/lunicar/lunicar/internal/app/system/timeouts"
	"github.com/lunicar/lunicar/internal/app/system/viewdata"
	"github.com/lunicar/lunicar/internal/domain/models"
	"go.uber.org/zap"
)

// PathPrefix prefixes every city landing page.
const PathPrefix = "/reprise-auto-"

// Handler serves the city API and landing pages.
type Handler struct {
	store    *citystore.Store
	errLog   *errorsfeature.ErrorLogger
	errPages *errorsfeature.Handler
	logger   *zap.Logger
}

// NewHandler creates a new cities Handler.
func NewHandler(db *collection.DB, errLog *errorsfeature.ErrorLogger, errPages *errorsfeature.Handler, logger *zap.Logger) *Handler {
	return &Handler{
		store:    citystore.New(db),
		errLog:   errLog,
		errPages: errPages,
		logger:   logger,
	}
}

// APIRoutes returns the /api/villes router.
func APIRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/{slug}", h.Get)
	return r
}

// MountPages adds the /reprise-auto-{slug} pages to r.
func MountPages(r chi.Router, h *Handler) {
	r.Get(PathPrefix+"{slug}", h.Page)
}

// List handles GET /api/villes.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	all, err := h.store.List(ctx)
	if err != nil {
		h.errLog.Log(r, "failed to list cities", err)
		jsonutil.InternalError(w, "Erreur serveur")
		return
	}
	jsonutil.OK(w, all)
}

// Get handles GET /api/villes/{slug}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	city, err := h.store.GetBySlug(ctx, chi.URLParam(r, "slug"))
	if errors.Is(err, citystore.ErrNotFound) {
		jsonutil.NotFound(w, "Ville non trouvée")
		return
	}
	if err != nil {
		h.errLog.Log(r, "failed to load city", err)
		jsonutil.InternalError(w, "Erreur serveur")
		return
	}
	jsonutil.OK(w, city)
}

// PageVM is the view model for a city landing page.
type PageVM struct {
	viewdata.BaseVM
	City    models.City
	Content Content
	Nearby  []models.City
}

// Page handles GET /reprise-auto-{slug}. Unknown slugs get the 404 page.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	all, err := h.store.List(ctx)
	if err != nil {
		h.errLog.Log(r, "failed to list cities", err)
		h.errPages.InternalError(w, r)
		return
	}

	slug := chi.URLParam(r, "slug")
	var city models.City
	for _, c := range all {
		if c.Slug == slug {
			city = c
			break
		}
	}
	if city.Slug == "" {
		h.errPages.NotFound(w, r)
		return
	}

	site := viewdata.Site()
	content := ContentFor(city)
	path := PathPrefix + city.Slug

	vm := PageVM{
		BaseVM:  viewdata.New(r),
		City:    city,
		Content: content,
		Nearby:  citystore.Nearby(all, city),
	}
	meta := site.Page(path, content.Title, content.Description)
	meta.OGTitle = content.SocialTitle
	meta.OGDescription = content.SocialDesc
	vm.WithMeta(meta)
	vm.AddJSONLD(
		site.LocalBusiness(city),
		seo.FAQPage(content.FAQ),
		site.Breadcrumb(
			seo.Crumb{Name: "Accueil", Path: "/"},
			seo.Crumb{Name: "Reprise auto " + city.Nom, Path: path},
		),
	)

	templates.Render(w, r, "cities/show", vm)
}
