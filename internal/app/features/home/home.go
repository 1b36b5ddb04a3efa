// internal/app/features/home/home.go
package home

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	articlestore "github.com/lunicar/lunicar/internal/app/store/articles"
	citystore "github.com/lunicar/lunicar/internal/app/store/cities"
	"github.com/lunicar/lunicar/internal/app/store/collection"
	"github.com/lunicar/lunicar/internal/app/system/timeouts"
	"github.com/lunicar/lunicar/internal/app/system/viewdata"
	"github.com/lunicar/lunicar/internal/domain/models"
	"go.uber.org/zap"
)

// Number of entries shown in the home page blocks.
const (
	latestArticles = 3
	featuredCities = 12
)

// Home page meta.
const (
	Title       = "LUNICAR | Reprise auto et rachat de voiture au meilleur prix"
	Description = "Vendez votre voiture en 24h avec LUNICAR : estimation gratuite en 2 minutes, " +
		"paiement immédiat et démarches administratives prises en charge. Toutes marques, tous états."
)

// Handler provides home page handlers.
type Handler struct {
	articles *articlestore.Store
	cities   *citystore.Store
	logger   *zap.Logger
}

// NewHandler creates a new home Handler.
func NewHandler(db *collection.DB, logger *zap.Logger) *Handler {
	return &Handler{
		articles: articlestore.New(db),
		cities:   citystore.New(db),
		logger:   logger,
	}
}

// Step is one entry of the "how it works" block.
type Step struct {
	Number int
	Title  string
	Text   string
}

// Steps describes the buy-back process on the home page.
var Steps = []Step{
	{1, "Estimation gratuite", "Renseignez votre plaque et quelques informations sur votre véhicule en 2 minutes."},
	{2, "Offre ferme", "Un expert vous rappelle avec une offre de reprise ferme et sans engagement."},
	{3, "Inspection", "Nous inspectons la voiture chez vous ou en agence, sans frais."},
	{4, "Paiement immédiat", "Vous êtes payé par virement instantané ou chèque de banque à la signature."},
}

// HomeVM is the view model for the home page.
type HomeVM struct {
	viewdata.BaseVM
	Steps    []Step
	Articles []models.Article // latest articles
	Cities   []models.City    // city landing pages linked from the footer block
}

// Routes returns a chi.Router with home routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Index)
	return r
}

// Index renders the home page. Content blocks that fail to load are
// logged and left empty.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	site := viewdata.Site()
	vm := HomeVM{
		BaseVM: viewdata.New(r),
		Steps:  Steps,
	}
	vm.WithMeta(site.Page("/", Title, Description))
	vm.AddJSONLD(site.Organization(), site.WebSite())

	if all, err := h.articles.List(ctx); err != nil {
		h.logger.Warn("failed to load articles for home page", zap.Error(err))
	} else {
		vm.Articles = firstN(all, latestArticles)
	}

	if all, err := h.cities.List(ctx); err != nil {
		h.logger.Warn("failed to load cities for home page", zap.Error(err))
	} else {
		vm.Cities = firstN(all, featuredCities)
	}

	templates.Render(w, r, "home/index", vm)
}

func firstN[T any](all []T, n int) []T {
	if len(all) > n {
		return all[:n]
	}
	return all
}
