// internal/app/features/contact/contact.go
package contact

import (
	"context"
	"errors"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	errorsfeature "github.com/lunicar/lunicar/internal/app/features/errors"
	"github.com/lunicar/lunicar/internal/app/store/collection"
	messagestore "github.com/lunicar/lunicar/internal/app/store/messages"
	"github.com/lunicar/lunicar/internal/app/system/inputval"
	"github.com/lunicar/lunicar/internal/app/system/jsonutil"
	"github.com/lunicar/lunicar/internal/app/system/timeouts"
	"github.com/lunicar/lunicar/internal/app/system/viewdata"
	"github.com/lunicar/lunicar/internal/domain/models"
	"go.uber.org/zap"
)

const (
	pageTitle       = "Contact | LUNICAR - Reprise Auto"
	pageDescription = "Une question sur la reprise de votre voiture ? Contactez l'équipe LUNICAR, " +
		"nous vous répondons sous 24 heures."

	msgSent       = "Message envoyé avec succès"
	msgSendFailed = "Erreur lors de l'envoi"
)

// Notifier is told about every stored contact message.
type Notifier interface {
	ContactReceived(msg models.ContactMessage)
}

// Input is a contact message as posted by the form or the API.
type Input struct {
	Nom       string `json:"nom" validate:"required,max=120" label:"Nom"`
	Email     string `json:"email" validate:"required,email" label:"Email"`
	Telephone string `json:"telephone" validate:"max=30" label:"Téléphone"`
	Sujet     string `json:"sujet" validate:"required,max=200" label:"Sujet"`
	Message   string `json:"message" validate:"required,max=5000" label:"Message"`
}

func (in *Input) trim() {
	in.Nom = strings.TrimSpace(in.Nom)
	in.Email = strings.TrimSpace(in.Email)
	in.Telephone = strings.TrimSpace(in.Telephone)
	in.Sujet = strings.TrimSpace(in.Sujet)
	in.Message = strings.TrimSpace(in.Message)
}

func inputFromForm(r *http.Request) Input {
	return Input{
		Nom:       r.FormValue("nom"),
		Email:     r.FormValue("email"),
		Telephone: r.FormValue("telephone"),
		Sujet:     r.FormValue("sujet"),
		Message:   r.FormValue("message"),
	}
}

// Handler serves the contact API and the contact page.
type Handler struct {
	store    *messagestore.Store
	notifier Notifier
	now      func() time.Time
	errLog   *errorsfeature.ErrorLogger
	logger   *zap.Logger
}

// NewHandler creates a new contact Handler.
func NewHandler(db *collection.DB, notifier Notifier, now func() time.Time, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		store:    messagestore.New(db),
		notifier: notifier,
		now:      now,
		errLog:   errLog,
		logger:   logger,
	}
}

// APIRoutes returns the /api/contact router.
func APIRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Submit)
	return r
}

// MountPages adds the contact page and its form target to r.
func MountPages(r chi.Router, h *Handler) {
	r.Get("/contact", h.Page)
	r.Post("/contact", h.PostForm)
}

// Send stores a validated message and hands it to the notifier.
func (h *Handler) Send(ctx context.Context, in Input) (models.ContactMessage, error) {
	msg := models.ContactMessage{
		ID:        uuid.NewString(),
		Nom:       in.Nom,
		Email:     in.Email,
		Telephone: in.Telephone,
		Sujet:     in.Sujet,
		Message:   in.Message,
		CreatedAt: h.now().UTC(),
	}
	if err := h.store.Insert(ctx, msg); err != nil {
		return models.ContactMessage{}, err
	}
	h.notifier.ContactReceived(msg)
	h.logger.Info("contact message received", zap.String("id", msg.ID))
	return msg, nil
}

// Submit handles POST /api/contact. The body may be JSON or urlencoded.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var in Input
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/json" {
		if err := jsonutil.Decode(w, r, &in); err != nil {
			jsonutil.BadRequest(w, "Requête invalide")
			return
		}
	} else {
		r.Body = http.MaxBytesReader(w, r.Body, jsonutil.MaxBodyBytes)
		if err := r.ParseForm(); err != nil {
			jsonutil.BadRequest(w, "Requête invalide")
			return
		}
		in = inputFromForm(r)
	}
	in.trim()
	if res := inputval.Validate(in); res.HasErrors() {
		jsonutil.BadRequest(w, res.First())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := h.Send(ctx, in); err != nil {
		h.errLog.Log(r, "failed to store contact message", err)
		jsonutil.InternalError(w, msgSendFailed)
		return
	}
	jsonutil.Success(w, map[string]any{"message": msgSent})
}

// PageVM is the view model for the contact page.
type PageVM struct {
	viewdata.BaseVM
	Form    Input
	Error   string
	Success string
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, vm PageVM) {
	vm.WithMeta(viewdata.Site().Page("/contact", pageTitle, pageDescription))
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	templates.Render(w, r, "contact/form", vm)
}

// Page handles GET /contact.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	vm := PageVM{BaseVM: viewdata.New(r)}
	if r.URL.Query().Get("envoye") == "1" {
		vm.Success = msgSent
	}
	h.render(w, r, http.StatusOK, vm)
}

// PostForm handles POST /contact from the HTML form.
func (h *Handler) PostForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, jsonutil.MaxBodyBytes)
	if err := r.ParseForm(); err != nil {
		h.errLog.Log(r, "failed to parse form", err)
		h.render(w, r, http.StatusBadRequest, PageVM{BaseVM: viewdata.New(r), Error: "Requête invalide"})
		return
	}
	in := inputFromForm(r)
	in.trim()
	vm := PageVM{BaseVM: viewdata.New(r), Form: in}

	if res := inputval.Validate(in); res.HasErrors() {
		vm.Error = res.First()
		h.render(w, r, http.StatusBadRequest, vm)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := h.Send(ctx, in); err != nil {
		if !errors.Is(err, context.Canceled) {
			h.errLog.Log(r, "failed to store contact message", err)
		}
		vm.Error = msgSendFailed
		h.render(w, r, http.StatusInternalServerError, vm)
		return
	}
	http.Redirect(w, r, "/contact?envoye=1", http.StatusSeeOther)
}
