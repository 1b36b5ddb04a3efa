// internal/app/features/plaque/plaque.go
package plaque

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lunicar/lunicar/internal/app/system/jsonutil"
	"github.com/lunicar/lunicar/internal/app/system/plate"
	"go.uber.org/zap"
)

// Handler answers plate validation requests from the estimate forms.
type Handler struct {
	logger *zap.Logger
}

// NewHandler creates a new plaque Handler.
func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger}
}

// APIRoutes returns the /api/valider-plaque router.
func APIRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/{plaque}", h.Validate)
	return r
}

// Validate handles GET /api/valider-plaque/{plaque} and answers
// {"valide", "plaque", "format"} with the normalized plate.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	jsonutil.OK(w, plate.Validate(chi.URLParam(r, "plaque")))
}
