// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/middleware"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	adminfeature "github.com/lunicar/lunicar/internal/app/features/admin"
	articlesfeature "github.com/lunicar/lunicar/internal/app/features/articles"
	citiesfeature "github.com/lunicar/lunicar/internal/app/features/cities"
	contactfeature "github.com/lunicar/lunicar/internal/app/features/contact"
	errorsfeature "github.com/lunicar/lunicar/internal/app/features/errors"
	healthfeature "github.com/lunicar/lunicar/internal/app/features/health"
	homefeature "github.com/lunicar/lunicar/internal/app/features/home"
	pagesfeature "github.com/lunicar/lunicar/internal/app/features/pages"
	plaquefeature "github.com/lunicar/lunicar/internal/app/features/plaque"
	reprisefeature "github.com/lunicar/lunicar/internal/app/features/reprise"
	sitemapfeature "github.com/lunicar/lunicar/internal/app/features/sitemap"
	themesfeature "github.com/lunicar/lunicar/internal/app/features/themes"
	appresources "github.com/lunicar/lunicar/internal/app/resources"
	"github.com/lunicar/lunicar/internal/app/system/apicors"
	"github.com/lunicar/lunicar/internal/app/system/jsonutil"
	"github.com/lunicar/lunicar/internal/app/system/photos"
	"github.com/lunicar/lunicar/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// csrfExempt reports whether path skips form CSRF checks. The JSON API is
// called cross-origin without cookies and the admin API uses bearer tokens.
func csrfExempt(path string) bool {
	return strings.HasPrefix(path, "/api/")
}

// BuildHandler constructs the root router: global middleware, the JSON
// API under /api, static files and the server-rendered pages.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	secure := coreCfg.Env == "prod"

	// Dev mode enables template reloading.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	errLog := errorsfeature.NewErrorLogger(logger)
	errPages := errorsfeature.NewHandler()
	limits := photos.Limits{MaxFiles: appCfg.UploadMaxFiles, MaxBytes: appCfg.UploadMaxBytes}

	r := chi.NewRouter()

	// ─────────────────────────────────────────────────────────────────────────────
	// Global Middleware
	// ─────────────────────────────────────────────────────────────────────────────

	if appCfg.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(chimw.Timeout(timeouts.Request()))
	r.Use(middleware.CORSFromConfig(coreCfg))
	r.Use(middleware.SecurityHeadersFromConfig(coreCfg))

	csrfOpts := []csrf.Option{
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.CookieName("lunicar_csrf"),
		csrf.FieldName("csrf_token"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			logger.Warn("CSRF validation failed",
				zap.String("path", req.URL.Path),
				zap.String("method", req.Method),
				zap.String("reason", csrf.FailureReason(req).Error()),
			)
			http.Error(w, "Formulaire expiré, veuillez recharger la page.", http.StatusForbidden)
		})),
	}
	if !secure {
		csrfOpts = append(csrfOpts, csrf.TrustedOrigins([]string{
			"localhost:8080",
			"localhost:3000",
			"127.0.0.1:8080",
			"127.0.0.1:3000",
		}))
	}
	if appCfg.SessionDomain != "" {
		csrfOpts = append(csrfOpts, csrf.Domain(appCfg.SessionDomain))
	}
	csrfProtect := csrf.Protect([]byte(appCfg.CSRFKey), csrfOpts...)
	r.Use(func(next http.Handler) http.Handler {
		protected := csrfProtect(next)
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if csrfExempt(req.URL.Path) {
				next.ServeHTTP(w, req)
				return
			}
			protected.ServeHTTP(w, req)
		})
	})

	// ─────────────────────────────────────────────────────────────────────────────
	// Handlers
	// ─────────────────────────────────────────────────────────────────────────────

	articlesHandler := articlesfeature.NewHandler(deps.Content, errLog, errPages, logger)
	citiesHandler := citiesfeature.NewHandler(deps.Content, errLog, errPages, logger)
	themesHandler := themesfeature.NewHandler(deps.Content, errLog, errPages, logger)
	contactHandler := contactfeature.NewHandler(deps.Content, deps.Notifier, time.Now, errLog, logger)
	plaqueHandler := plaquefeature.NewHandler(logger)
	repriseService := reprisefeature.NewService(deps.Content, deps.Notifier, time.Now, logger)
	repriseHandler := reprisefeature.NewHandler(
		repriseService,
		wizardSessions,
		deps.FileStorage,
		limits,
		time.Now,
		errLog,
		errPages,
		logger,
	)
	adminHandler := adminfeature.NewHandler(deps.Content, adminGuard, time.Now, errLog, logger)

	// ─────────────────────────────────────────────────────────────────────────────
	// JSON API
	// Public endpoints allow any origin; the admin API is same-origin and
	// guarded by bearer tokens.
	// ─────────────────────────────────────────────────────────────────────────────

	r.Route("/api", func(api chi.Router) {
		api.Group(func(pub chi.Router) {
			pub.Use(apicors.Middleware(http.MethodGet, http.MethodPost))
			pub.Mount("/articles", articlesfeature.APIRoutes(articlesHandler))
			pub.Mount("/villes", citiesfeature.APIRoutes(citiesHandler))
			pub.Mount("/themes", themesfeature.APIRoutes(themesHandler))
			pub.Mount("/reprise", reprisefeature.APIRoutes(repriseHandler))
			pub.Mount("/contact", contactfeature.APIRoutes(contactHandler))
			pub.Mount("/valider-plaque", plaquefeature.APIRoutes(plaqueHandler))
		})
		api.Mount("/admin", adminfeature.Routes(adminHandler))
		api.NotFound(func(w http.ResponseWriter, r *http.Request) {
			jsonutil.NotFound(w, "Route non trouvée")
		})
	})

	// ─────────────────────────────────────────────────────────────────────────────
	// Health, static files and SEO
	// ─────────────────────────────────────────────────────────────────────────────

	healthHandler := healthfeature.NewHandler(deps.Content, deps.Content.Backend().Kind(), logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	healthfeature.MountRootEndpoints(r, healthHandler)

	r.Handle("/assets/*", appresources.AssetsHandler("/assets"))

	// Uploaded photos are only served by the app with local storage.
	if appCfg.StorageType == "local" || appCfg.StorageType == "" {
		r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))
	}

	sitemapfeature.MountRoutes(r, sitemapfeature.NewHandler(deps.Content, time.Now, errLog, logger))

	// ─────────────────────────────────────────────────────────────────────────────
	// Pages
	// ─────────────────────────────────────────────────────────────────────────────

	r.Mount("/", homefeature.Routes(homefeature.NewHandler(deps.Content, logger)))
	pagesfeature.NewHandler(logger).Routes(r)
	reprisefeature.MountPages(r, repriseHandler)
	contactfeature.MountPages(r, contactHandler)
	articlesfeature.MountPages(r, articlesHandler)
	citiesfeature.MountPages(r, citiesHandler)
	themesfeature.MountPages(r, themesHandler)

	// The admin UI lives at /admino; /admin stays a plain 404.
	r.Get("/admin", errPages.NotFound)

	r.NotFound(errPages.NotFound)

	return r, nil
}
