// internal/app/features/reprise/handler.go
package reprise

import (
	"context"
	"errors"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	errorsfeature "github.com/lunicar/lunicar/internal/app/features/errors"
	"github.com/lunicar/lunicar/internal/app/system/photos"
	"github.com/lunicar/lunicar/internal/app/system/timeouts"
	"github.com/lunicar/lunicar/internal/app/system/viewdata"
	"github.com/lunicar/lunicar/internal/app/system/wizard"
	"go.uber.org/zap"
)

const (
	pageTitle       = "Estimation Gratuite de votre Voiture | LUNICAR"
	pageDescription = "Obtenez une offre de reprise pour votre voiture en 2 minutes. " +
		"Estimation gratuite, paiement immédiat, démarches administratives incluses."
)

var errBodyTooLarge = errors.New("Envoi trop volumineux : 10 photos de 5 Mo maximum")

// Handler serves the trade-in API and the multi-step form.
type Handler struct {
	service  *Service
	sessions *wizard.SessionStore
	blobs    photos.Blobs
	limits   photos.Limits
	now      func() time.Time
	errLog   *errorsfeature.ErrorLogger
	errPages *errorsfeature.Handler
	logger   *zap.Logger
}

// NewHandler creates a new reprise Handler.
func NewHandler(
	service *Service,
	sessions *wizard.SessionStore,
	blobs photos.Blobs,
	limits photos.Limits,
	now func() time.Time,
	errLog *errorsfeature.ErrorLogger,
	errPages *errorsfeature.Handler,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		service:  service,
		sessions: sessions,
		blobs:    blobs,
		limits:   limits,
		now:      now,
		errLog:   errLog,
		errPages: errPages,
		logger:   logger,
	}
}

// MountPages adds the wizard routes to r.
func MountPages(r chi.Router, h *Handler) {
	r.Get("/reprise", h.Show)
	r.Post("/reprise/etape", h.Step)
	r.Post("/reprise/photos", h.AddPhotos)
	r.Post("/reprise/photos/{index}/supprimer", h.RemovePhoto)
	r.Post("/reprise/envoyer", h.Submit)
	r.Post("/reprise/recommencer", h.Restart)
}

// parseForm bounds the body and parses it as multipart or urlencoded.
func (h *Handler) parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.limits.RequestLimit())
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	var err error
	if ct == "multipart/form-data" {
		err = r.ParseMultipartForm(multipartMemory)
	} else {
		err = r.ParseForm()
	}
	if err == nil {
		return nil
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
		return errBodyTooLarge
	}
	return err
}

func uploadedFiles(r *http.Request) []*multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	return r.MultipartForm.File["photos"]
}

// applyPosted stores the posted fields of the current step. Forms carry
// the step they were rendered for; a stale form is ignored.
func applyPosted(st *wizard.State, r *http.Request) {
	if st.Done() || r.FormValue("etape") != strconv.Itoa(st.Step) {
		return
	}
	st.Apply(r.FormValue)
}

// save persists st. When that fails, blobs staged by this request are
// deleted since no session refers to them.
func (h *Handler) save(w http.ResponseWriter, r *http.Request, st *wizard.State, staged ...string) bool {
	if err := h.sessions.Save(w, r, st); err != nil {
		h.errLog.Log(r, "failed to save wizard state", err)
		if len(staged) > 0 {
			ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), timeouts.Short())
			defer cancel()
			photos.Remove(ctx, h.blobs, staged)
		}
		h.errPages.InternalError(w, r)
		return false
	}
	return true
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, st *wizard.State, formErr error) {
	vm := newWizardVM(r, st, h.limits, h.now(), formErr)
	vm.WithMeta(viewdata.Site().Page("/reprise", pageTitle, pageDescription))
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	templates.Render(w, r, "reprise/wizard", vm)
}

// Show handles GET /reprise. A ?plaque= link from a landing page fills the
// plate of step 1.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	st := h.sessions.Load(r)
	if p := strings.TrimSpace(r.URL.Query().Get("plaque")); p != "" {
		st.Prefill(p)
		if !h.save(w, r, st) {
			return
		}
	}
	h.render(w, r, http.StatusOK, st, nil)
}

// Step handles POST /reprise/etape: save the step and move with
// action=next or action=prev.
func (h *Handler) Step(w http.ResponseWriter, r *http.Request) {
	if err := h.parseForm(w, r); err != nil {
		h.render(w, r, http.StatusBadRequest, h.sessions.Load(r), errors.New(uploadMessage(err)))
		return
	}
	st := h.sessions.Load(r)
	applyPosted(st, r)

	var stepErr error
	if r.FormValue("action") == "prev" {
		st.Prev()
	} else {
		stepErr = st.Next()
	}
	if !h.save(w, r, st) {
		return
	}
	if stepErr != nil {
		h.render(w, r, http.StatusBadRequest, st, stepErr)
		return
	}
	http.Redirect(w, r, "/reprise", http.StatusSeeOther)
}

// AddPhotos handles POST /reprise/photos. Accepted files are stored and
// staged; rejected ones are reported without dropping the others.
func (h *Handler) AddPhotos(w http.ResponseWriter, r *http.Request) {
	if err := h.parseForm(w, r); err != nil {
		h.render(w, r, http.StatusBadRequest, h.sessions.Load(r), errors.New(uploadMessage(err)))
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}
	st := h.sessions.Load(r)
	applyPosted(st, r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	var firstErr error
	var staged []string
	for _, fh := range uploadedFiles(r) {
		err := st.CheckFile(h.limits, fh.Filename, fh.Size, fh.Header.Get("Content-Type"))
		if err == nil {
			var name string
			name, err = h.limits.Save(ctx, h.blobs, fh, h.now())
			if err == nil {
				st.AddFile(wizard.File{Name: name, Original: fh.Filename, Size: fh.Size})
				staged = append(staged, name)
				continue
			}
			h.logUpload(r, err)
			if !isUserUploadError(err) {
				err = wizard.ErrSubmitFailed
			}
		}
		if firstErr == nil {
			firstErr = err
		}
	}

	if !h.save(w, r, st, staged...) {
		return
	}
	if firstErr != nil {
		h.render(w, r, http.StatusBadRequest, st, firstErr)
		return
	}
	http.Redirect(w, r, "/reprise", http.StatusSeeOther)
}

// RemovePhoto handles POST /reprise/photos/{index}/supprimer.
func (h *Handler) RemovePhoto(w http.ResponseWriter, r *http.Request) {
	if err := h.parseForm(w, r); err != nil {
		h.render(w, r, http.StatusBadRequest, h.sessions.Load(r), errors.New(uploadMessage(err)))
		return
	}
	st := h.sessions.Load(r)
	applyPosted(st, r)

	i, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		i = -1
	}
	f, err := st.RemoveFile(i)
	if err != nil {
		h.render(w, r, http.StatusNotFound, st, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()
	photos.Remove(ctx, h.blobs, []string{f.Name})

	if !h.save(w, r, st) {
		return
	}
	http.Redirect(w, r, "/reprise", http.StatusSeeOther)
}

// Submit handles POST /reprise/envoyer. The "rgpd" checkbox must be ticked.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := h.parseForm(w, r); err != nil {
		h.render(w, r, http.StatusBadRequest, h.sessions.Load(r), errors.New(uploadMessage(err)))
		return
	}
	st := h.sessions.Load(r)
	applyPosted(st, r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	err := st.Submit(ctx, r.FormValue("rgpd") != "", h.service.Submit)
	if !h.save(w, r, st) {
		return
	}
	switch {
	case err == nil:
		http.Redirect(w, r, "/reprise", http.StatusSeeOther)
	case errors.Is(err, wizard.ErrSubmitFailed):
		h.errLog.Log(r, "failed to record trade-in request", err)
		h.render(w, r, http.StatusInternalServerError, st, err)
	default:
		h.render(w, r, http.StatusBadRequest, st, err)
	}
}

// Restart handles POST /reprise/recommencer. Photos staged for a request
// that was never sent are deleted.
func (h *Handler) Restart(w http.ResponseWriter, r *http.Request) {
	st := h.sessions.Load(r)
	if !st.Done() && len(st.Files) > 0 {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		defer cancel()
		photos.Remove(ctx, h.blobs, st.FileNames())
	}
	if err := h.sessions.Clear(w, r); err != nil {
		h.logger.Warn("failed to clear wizard session", zap.Error(err))
	}
	http.Redirect(w, r, "/reprise", http.StatusSeeOther)
}
