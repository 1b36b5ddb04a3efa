// internal/app/features/admin/admin.go
package admin

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	errorsfeature "github.com/lunicar/lunicar/internal/app/features/errors"
	articlestore "github.com/lunicar/lunicar/internal/app/store/articles"
	"github.com/lunicar/lunicar/internal/app/store/collection"
	leadstore "github.com/lunicar/lunicar/internal/app/store/leads"
	messagestore "github.com/lunicar/lunicar/internal/app/store/messages"
	"github.com/lunicar/lunicar/internal/app/system/adminauth"
	"github.com/lunicar/lunicar/internal/app/system/inputval"
	"github.com/lunicar/lunicar/internal/app/system/jsonutil"
	"github.com/lunicar/lunicar/internal/app/system/network"
	"github.com/lunicar/lunicar/internal/app/system/timeouts"
	"github.com/lunicar/lunicar/internal/domain/models"
	"go.uber.org/zap"
)

const (
	msgServerError   = "Erreur serveur"
	msgMissingFields = "Champs obligatoires manquants"
	msgDuplicate     = "Un article avec ce titre existe déjà"
	msgNotFound      = "Article non trouvé"
	msgInvalidBody   = "Requête invalide"
	msgInvalidTitle  = "Le titre doit contenir au moins une lettre ou un chiffre"
)

// Handler serves the admin API.
type Handler struct {
	guard    *adminauth.Guard
	articles *articlestore.Store
	leads    *leadstore.Store
	messages *messagestore.Store
	now      func() time.Time
	errLog   *errorsfeature.ErrorLogger
	logger   *zap.Logger
}

// NewHandler creates a new admin Handler.
func NewHandler(db *collection.DB, guard *adminauth.Guard, now func() time.Time, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		guard:    guard,
		articles: articlestore.New(db),
		leads:    leadstore.New(db),
		messages: messagestore.New(db),
		now:      now,
		errLog:   errLog,
		logger:   logger,
	}
}

// Routes returns the /api/admin router. Everything but login requires a
// bearer token.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/login", h.Login)
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequireToken(h.logger))
		r.Post("/logout", h.Logout)
		r.Get("/stats", h.Stats)
		r.Get("/articles", h.ListArticles)
		r.Post("/articles", h.CreateArticle)
		r.Put("/articles/{slug}", h.UpdateArticle)
		r.Delete("/articles/{slug}", h.DeleteArticle)
	})
	return r
}

type loginRequest struct {
	Password string `json:"password"`
}

// Login handles POST /api/admin/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := jsonutil.Decode(w, r, &req); err != nil && !errors.Is(err, jsonutil.ErrEmptyBody) {
		jsonutil.BadRequest(w, msgInvalidBody)
		return
	}

	token, expiresIn, err := h.guard.Login(req.Password, network.GetClientIP(r))
	var locked *adminauth.LockedError
	var invalid *adminauth.InvalidPasswordError
	switch {
	case err == nil:
		jsonutil.Success(w, map[string]any{
			"token":     token,
			"expiresIn": expiresIn.Milliseconds(),
		})
	case errors.As(err, &locked):
		jsonutil.Failure(w, http.StatusTooManyRequests, locked.Error(), map[string]any{
			"lockedUntil": locked.Until.UnixMilli(),
		})
	case errors.As(err, &invalid):
		jsonutil.Failure(w, http.StatusUnauthorized, invalid.Error(), nil)
	default:
		h.errLog.Log(r, "admin login failed", err)
		jsonutil.InternalError(w, msgServerError)
	}
}

// Logout handles POST /api/admin/logout.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.guard.Logout(r.Header.Get("Authorization"))
	jsonutil.Success(w, nil)
}

// Stats handles GET /api/admin/stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	articles, err := h.articles.Count(ctx)
	if err != nil {
		h.errLog.Log(r, "failed to count articles", err)
		jsonutil.InternalError(w, msgServerError)
		return
	}
	demandes, err := h.leads.Count(ctx)
	if err != nil {
		h.errLog.Log(r, "failed to count leads", err)
		jsonutil.InternalError(w, msgServerError)
		return
	}
	messages, err := h.messages.Count(ctx)
	if err != nil {
		h.errLog.Log(r, "failed to count messages", err)
		jsonutil.InternalError(w, msgServerError)
		return
	}
	jsonutil.OK(w, map[string]int{
		"articles": articles,
		"demandes": demandes,
		"messages": messages,
	})
}

// ListArticles handles GET /api/admin/articles.
func (h *Handler) ListArticles(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	all, err := h.articles.List(ctx)
	if err != nil {
		h.errLog.Log(r, "failed to list articles", err)
		jsonutil.InternalError(w, msgServerError)
		return
	}
	if all == nil {
		all = []models.Article{}
	}
	jsonutil.OK(w, all)
}

// CreateArticle handles POST /api/admin/articles.
func (h *Handler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var d articlestore.Draft
	if err := jsonutil.Decode(w, r, &d); err != nil {
		if errors.Is(err, jsonutil.ErrEmptyBody) {
			jsonutil.BadRequest(w, msgMissingFields)
			return
		}
		jsonutil.BadRequest(w, msgInvalidBody)
		return
	}
	if res := inputval.Validate(d); res.HasErrors() {
		jsonutil.BadRequest(w, msgMissingFields)
		return
	}

	a, err := d.Build(h.now())
	if errors.Is(err, articlestore.ErrEmptySlug) {
		jsonutil.BadRequest(w, msgInvalidTitle)
		return
	}
	if err != nil {
		h.errLog.Log(r, "failed to build article", err)
		jsonutil.InternalError(w, msgServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.articles.Create(ctx, a); err != nil {
		if errors.Is(err, articlestore.ErrSlugExists) {
			jsonutil.Conflict(w, msgDuplicate)
			return
		}
		h.errLog.Log(r, "failed to create article", err)
		jsonutil.InternalError(w, msgServerError)
		return
	}
	h.logger.Info("article created", zap.String("slug", a.Slug))
	jsonutil.Success(w, map[string]any{"article": a})
}

// UpdateArticle handles PUT /api/admin/articles/{slug}.
func (h *Handler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	var p articlestore.Patch
	if err := jsonutil.Decode(w, r, &p); err != nil && !errors.Is(err, jsonutil.ErrEmptyBody) {
		jsonutil.BadRequest(w, msgInvalidBody)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	now := h.now()
	a, err := h.articles.Update(ctx, chi.URLParam(r, "slug"), func(a *models.Article) {
		p.Apply(a, now)
	})
	if errors.Is(err, articlestore.ErrNotFound) {
		jsonutil.NotFound(w, msgNotFound)
		return
	}
	if err != nil {
		h.errLog.Log(r, "failed to update article", err)
		jsonutil.InternalError(w, msgServerError)
		return
	}
	h.logger.Info("article updated", zap.String("slug", a.Slug))
	jsonutil.Success(w, map[string]any{"article": a})
}

// DeleteArticle handles DELETE /api/admin/articles/{slug}.
func (h *Handler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	slug := chi.URLParam(r, "slug")
	if err := h.articles.Delete(ctx, slug); err != nil {
		if errors.Is(err, articlestore.ErrNotFound) {
			jsonutil.NotFound(w, msgNotFound)
			return
		}
		h.errLog.Log(r, "failed to delete article", err)
		jsonutil.InternalError(w, msgServerError)
		return
	}
	h.logger.Info("article deleted", zap.String("slug", slug))
	jsonutil.Success(w, nil)
}
