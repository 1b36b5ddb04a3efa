// internal/app/features/sitemap/sitemap.go
package sitemap

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	errorsfeature "github.com/lunicar/lunicar/internal/app/features/errors"
	articlestore "github.com/lunicar/lunicar/internal/app/store/articles"
	citystore "github.com/lunicar/lunicar/internal/app/store/cities"
	"github.com/lunicar/lunicar/internal/app/store/collection"
	themestore "github.com/lunicar/lunicar/internal/app/store/themes"
	"github.com/lunicar/lunicar/internal/app/system/seo"
	"github.com/lunicar/lunicar/internal/app/system/timeouts"
	"github.com/lunicar/lunicar/internal/app/system/viewdata"
	"go.uber.org/zap"
)

// Handler serves /sitemap.xml and /robots.txt.
type Handler struct {
	cities   *citystore.Store
	themes   *themestore.Store
	articles *articlestore.Store
	now      func() time.Time
	errLog   *errorsfeature.ErrorLogger
	logger   *zap.Logger
}

// NewHandler creates a new sitemap Handler.
func NewHandler(db *collection.DB, now func() time.Time, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		cities:   citystore.New(db),
		themes:   themestore.New(db),
		articles: articlestore.New(db),
		now:      now,
		errLog:   errLog,
		logger:   logger,
	}
}

// MountRoutes adds /sitemap.xml and /robots.txt to r.
func MountRoutes(r chi.Router, h *Handler) {
	r.Get("/sitemap.xml", h.Sitemap)
	r.Get("/robots.txt", h.Robots)
}

// Sitemap handles GET /sitemap.xml. It is built from the current content
// on every request.
func (h *Handler) Sitemap(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	cities, err := h.cities.List(ctx)
	if err != nil {
		h.fail(w, r, "failed to list cities for sitemap", err)
		return
	}
	themes, err := h.themes.List(ctx)
	if err != nil {
		h.fail(w, r, "failed to list themes for sitemap", err)
		return
	}
	articles, err := h.articles.List(ctx)
	if err != nil {
		h.fail(w, r, "failed to list articles for sitemap", err)
		return
	}

	body, err := seo.Sitemap(viewdata.Site().SitemapURLs(cities, themes, articles, h.now()))
	if err != nil {
		h.fail(w, r, "failed to render sitemap", err)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(body)
}

// Robots handles GET /robots.txt.
func (h *Handler) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(viewdata.Site().Robots()))
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.errLog.Log(r, msg, err)
	http.Error(w, "Erreur lors de la génération du sitemap", http.StatusInternalServerError)
}
