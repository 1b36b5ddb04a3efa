package sitemap

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	errorsfeature "github.com/lunicar/lunicar/internal/app/features/errors"
	articlestore "github.com/lunicar/lunicar/internal/app/store/articles"
	citystore "github.com/lunicar/lunicar/internal/app/store/cities"
	themestore "github.com/lunicar/lunicar/internal/app/store/themes"
	"github.com/lunicar/lunicar/internal/domain/models"
	"github.com/lunicar/lunicar/internal/testutil"
	"go.uber.org/zap"
)

func newRouter(t *testing.T) chi.Router {
	t.Helper()
	ctx := context.Background()
	db := testutil.NewDB(t)
	if err := citystore.New(db).Replace(ctx, []models.City{{Slug: "lyon", Nom: "Lyon"}}); err != nil {
		t.Fatal(err)
	}
	if err := themestore.New(db).Replace(ctx, []models.Theme{{Slug: "vendre-voiture-diesel", Titre: "Diesel"}}); err != nil {
		t.Fatal(err)
	}
	articles := articlestore.New(db)
	if err := articles.Create(ctx, models.Article{Slug: "avec-date", Titre: "Avec date", DateISO: "2026-03-02"}); err != nil {
		t.Fatal(err)
	}
	if err := articles.Create(ctx, models.Article{Slug: "sans-date", Titre: "Sans date"}); err != nil {
		t.Fatal(err)
	}

	clock := testutil.NewFakeClock()
	logger := zap.NewNop()
	h := NewHandler(db, clock.Now, errorsfeature.NewErrorLogger(logger), logger)
	r := chi.NewRouter()
	MountRoutes(r, h)
	return r
}

func TestSitemap(t *testing.T) {
	rec := testutil.NewRecorder()
	newRouter(t).ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/sitemap.xml"))

	rec.AssertStatus(t, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/xml") {
		t.Errorf("Content-Type = %q", ct)
	}
	rec.AssertContains(t, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	rec.AssertContains(t, "<loc>https://lunicar.fr/</loc>")
	rec.AssertContains(t, "<loc>https://lunicar.fr/reprise-auto-lyon</loc>")
	rec.AssertContains(t, "<loc>https://lunicar.fr/vendre-voiture-diesel</loc>")
	rec.AssertContains(t, "<lastmod>2026-03-02</lastmod>")
	rec.AssertContains(t, "<lastmod>2026-10-16</lastmod>")
}

func TestRobots(t *testing.T) {
	rec := testutil.NewRecorder()
	newRouter(t).ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/robots.txt"))

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Sitemap: https://lunicar.fr/sitemap.xml")
	rec.AssertContains(t, "Disallow: /api/admin/")
}
