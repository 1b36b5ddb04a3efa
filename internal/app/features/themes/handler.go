// internal/app/features/themes/handler.go
package themes

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	errorsfeature "github.com/lunicar/lunicar/internal/app/features/errors"
	"github.com/lunicar/lunicar/internal/app/store/collection"
	themestore "github.com/lunicar/lunicar/internal/app/store/themes"
	"github.com/lunicar/lunicar/internal/app/system/jsonutil"
	"github.com/lunicar/lunicar/internal/app/system/seo"
	"github.com/lunicar/lunicar/internal/app/system/timeouts"
	"github.com/lunicar/lunicar/internal/app/system/viewdata"
	"github.com/lunicar/lunicar/internal/domain/models"
	"go.uber.org/zap"
)

// Handler serves the theme API and thematic landing pages.
type Handler struct {
	store    *themestore.Store
	errLog   *errorsfeature.ErrorLogger
	errPages *errorsfeature.Handler
	logger   *zap.Logger
}

// NewHandler creates a new themes Handler.
func NewHandler(db *collection.DB, errLog *errorsfeature.ErrorLogger, errPages *errorsfeature.Handler, logger *zap.Logger) *Handler {
	return &Handler{
		store:    themestore.New(db),
		errLog:   errLog,
		errPages: errPages,
		logger:   logger,
	}
}

// APIRoutes returns the /api/themes router.
func APIRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/{slug}", h.Get)
	return r
}

// MountPages adds one route per whitelisted theme slug to r.
func MountPages(r chi.Router, h *Handler) {
	for _, slug := range Slugs() {
		r.Get("/"+slug, h.Page(slug))
	}
}

// List handles GET /api/themes.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	all, err := h.store.List(ctx)
	if err != nil {
		h.errLog.Log(r, "failed to list themes", err)
		jsonutil.InternalError(w, "Erreur serveur")
		return
	}
	jsonutil.OK(w, all)
}

// Get handles GET /api/themes/{slug}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	theme, err := h.store.GetBySlug(ctx, chi.URLParam(r, "slug"))
	if errors.Is(err, themestore.ErrNotFound) {
		jsonutil.NotFound(w, "Page non trouvée")
		return
	}
	if err != nil {
		h.errLog.Log(r, "failed to load theme", err)
		jsonutil.InternalError(w, "Erreur serveur")
		return
	}
	jsonutil.OK(w, theme)
}

// PageVM is the view model for a thematic landing page.
type PageVM struct {
	viewdata.BaseVM
	Theme models.Theme
}

// Page returns the handler for the landing page of slug.
func (h *Handler) Page(slug string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		defer cancel()

		theme, err := h.store.GetBySlug(ctx, slug)
		if errors.Is(err, themestore.ErrNotFound) {
			h.logger.Warn("routed theme has no content", zap.String("slug", slug))
			h.errPages.NotFound(w, r)
			return
		}
		if err != nil {
			h.errLog.Log(r, "failed to load theme", err)
			h.errPages.InternalError(w, r)
			return
		}

		site := viewdata.Site()
		vm := PageVM{
			BaseVM: viewdata.New(r),
			Theme:  theme,
		}
		meta := site.Page("/"+theme.Slug, theme.Title+" | "+site.Name, theme.MetaDescription)
		meta.OGTitle = theme.Title
		vm.WithMeta(meta)
		vm.AddJSONLD(
			site.Service(theme),
			seo.FAQPage(theme.FAQ),
			site.Breadcrumb(
				seo.Crumb{Name: "Accueil", Path: "/"},
				seo.Crumb{Name: theme.Title, Path: "/" + theme.Slug},
			),
		)

		templates.Render(w, r, "themes/show", vm)
	}
}
