// internal/app/features/articles/handler.go
package articles

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	errorsfeature "github.com/lunicar/lunicar/internal/app/features/errors"
	articlestore "github.com/lunicar/lunicar/internal/app/store/articles"
	"github.com/lunicar/lunicar/internal/app/store/collection"
	"github.com/lunicar/lunicar/internal/app/system/htmlsanitize"
	"github.com/lunicar/lunicar/internal/app/system/jsonutil"
	"github.com/lunicar/lunicar/internal/app/system/readtime"
	"github.com/lunicar/lunicar/internal/app/system/seo"
	"github.com/lunicar/lunicar/internal/app/system/timeouts"
	"github.com/lunicar/lunicar/internal/app/system/viewdata"
	"github.com/lunicar/lunicar/internal/domain/models"
	"go.uber.org/zap"
)

const (
	// PerPage is the number of articles on one page of the blog index.
	PerPage = 10
	// PopularCount is the size of the "popular" sidebar.
	PopularCount = 3
	// RelatedCount is the size of the "read also" block.
	RelatedCount = 3
	// TOCMinWords is the word count above which an article gets a table of
	// contents.
	TOCMinWords = 1000

	listTitle       = "Blog Auto : Conseils pour Vendre sa Voiture | LUNICAR"
	listDescription = "Conseils, guides et actualités pour vendre votre voiture au meilleur prix. " +
		"Estimation, démarches, documents : tout ce qu'il faut savoir avec LUNICAR."
)

// Handler serves the article API, the blog index and article pages.
type Handler struct {
	store    *articlestore.Store
	errLog   *errorsfeature.ErrorLogger
	errPages *errorsfeature.Handler
	logger   *zap.Logger
}

// NewHandler creates a new articles Handler.
func NewHandler(db *collection.DB, errLog *errorsfeature.ErrorLogger, errPages *errorsfeature.Handler, logger *zap.Logger) *Handler {
	return &Handler{
		store:    articlestore.New(db),
		errLog:   errLog,
		errPages: errPages,
		logger:   logger,
	}
}

// APIRoutes returns the /api/articles router.
func APIRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/{slug}", h.Get)
	return r
}

// MountPages adds the blog index and article pages to r.
func MountPages(r chi.Router, h *Handler) {
	r.Get("/articles", h.Index)
	r.Get("/article/{slug}", h.Show)
}

// List handles GET /api/articles.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	all, err := h.store.List(ctx)
	if err != nil {
		h.errLog.Log(r, "failed to list articles", err)
		jsonutil.InternalError(w, "Erreur serveur")
		return
	}
	if all == nil {
		all = []models.Article{}
	}
	jsonutil.OK(w, all)
}

// Get handles GET /api/articles/{slug}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	a, err := h.store.GetBySlug(ctx, chi.URLParam(r, "slug"))
	if errors.Is(err, articlestore.ErrNotFound) {
		jsonutil.NotFound(w, "Article non trouvé")
		return
	}
	if err != nil {
		h.errLog.Log(r, "failed to load article", err)
		jsonutil.InternalError(w, "Erreur serveur")
		return
	}
	jsonutil.OK(w, a)
}

// PageLink is one entry of the pagination bar.
type PageLink struct {
	Number  int
	URL     string
	Current bool
}

// IndexVM is the view model for the blog index.
type IndexVM struct {
	viewdata.BaseVM
	Articles   []models.Article
	Popular    []Teaser
	Categories []articlestore.Category
	Category   string
	Total      int
	Page       int
	Pages      int
	PageLinks  []PageLink
	PrevURL    string
	NextURL    string
}

// Index handles GET /articles.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	all, err := h.store.List(ctx)
	if err != nil {
		h.errLog.Log(r, "failed to list articles", err)
		h.errPages.InternalError(w, r)
		return
	}

	cat := strings.TrimSpace(r.URL.Query().Get("cat"))
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	filtered := articlestore.FilterByCategory(all, cat)
	items, page, pages := articlestore.Page(filtered, page, PerPage)

	vm := IndexVM{
		BaseVM:     viewdata.New(r),
		Articles:   items,
		Popular:    teasers(firstN(all, PopularCount)),
		Categories: articlestore.Categories(all),
		Category:   cat,
		Total:      len(filtered),
		Page:       page,
		Pages:      pages,
	}
	if cat == "all" {
		vm.Category = ""
	}
	for i := 1; i <= pages; i++ {
		vm.PageLinks = append(vm.PageLinks, PageLink{Number: i, URL: indexURL(vm.Category, i), Current: i == page})
	}
	if page > 1 {
		vm.PrevURL = indexURL(vm.Category, page-1)
	}
	if page < pages {
		vm.NextURL = indexURL(vm.Category, page+1)
	}

	site := viewdata.Site()
	vm.WithMeta(site.Page(indexURL(vm.Category, page), listTitle, listDescription))
	vm.AddJSONLD(
		site.ArticleList(filtered),
		site.Breadcrumb(
			seo.Crumb{Name: "Accueil", Path: "/"},
			seo.Crumb{Name: "Articles", Path: "/articles"},
		),
	)

	templates.Render(w, r, "articles/list", vm)
}

// indexURL builds the blog index URL for a category filter and page.
func indexURL(cat string, page int) string {
	q := url.Values{}
	if cat != "" {
		q.Set("cat", cat)
	}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	if len(q) == 0 {
		return "/articles"
	}
	return "/articles?" + q.Encode()
}

// ShowVM is the view model for an article page.
type ShowVM struct {
	viewdata.BaseVM
	Article     models.Article
	Body        template.HTML
	TOC         []htmlsanitize.Heading
	Related     []models.Article
	Popular     []Teaser
	Share       []ShareLink
	CategoryURL string
}

// Show handles GET /article/{slug}.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	all, err := h.store.List(ctx)
	if err != nil {
		h.errLog.Log(r, "failed to list articles", err)
		h.errPages.InternalError(w, r)
		return
	}
	slug := chi.URLParam(r, "slug")
	var (
		a     models.Article
		found bool
	)
	for _, candidate := range all {
		if candidate.Slug == slug {
			a, found = candidate, true
			break
		}
	}
	if !found {
		h.errPages.NotFound(w, r)
		return
	}

	site := viewdata.Site()
	path := "/article/" + a.Slug
	body, headings := htmlsanitize.ArticleBody(a.Contenu)
	categoryURL := "/articles?cat=" + url.QueryEscape(a.CategorieSlug)

	vm := ShowVM{
		BaseVM:      viewdata.New(r),
		Article:     a,
		Body:        body,
		Related:     articlestore.Related(all, a, RelatedCount),
		Popular:     teasers(firstN(all, PopularCount)),
		Share:       shareLinks(site.Abs(path), a.PageTitle()),
		CategoryURL: categoryURL,
	}
	if readtime.WordCount(a.Contenu) > TOCMinWords {
		vm.TOC = headings
	}

	meta := site.Page(path, a.PageTitle(), a.Description())
	meta.OGType = "article"
	meta.OGTitle = a.Titre
	meta.OGDescription = a.Extrait
	meta.Image = site.ArticleImage(a)
	vm.WithMeta(meta)
	vm.AddJSONLD(
		site.BlogPosting(a),
		site.Breadcrumb(
			seo.Crumb{Name: "Accueil", Path: "/"},
			seo.Crumb{Name: "Articles", Path: "/articles"},
			seo.Crumb{Name: a.Categorie, Path: categoryURL},
			seo.Crumb{Name: a.Titre, Path: path},
		),
	)

	templates.Render(w, r, "articles/show", vm)
}
