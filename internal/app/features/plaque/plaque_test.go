package plaque

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/lunicar/lunicar/internal/testutil"
	"go.uber.org/zap"
)

func TestValidate(t *testing.T) {
	r := chi.NewRouter()
	r.Mount("/api/valider-plaque", APIRoutes(NewHandler(zap.NewNop())))

	tests := []struct {
		path   string
		valid  bool
		plate  string
		format string
	}{
		{"/api/valider-plaque/ab-123-cd", true, "AB123CD", "nouveau"},
		{"/api/valider-plaque/1234%20AB%2075", true, "1234AB75", "ancien"},
		{"/api/valider-plaque/AB1234", false, "AB1234", "invalide"},
	}
	for _, tt := range tests {
		rec := testutil.NewRecorder()
		r.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, tt.path))
		rec.AssertStatus(t, http.StatusOK)

		body := rec.DecodeJSON(t)
		if body["valide"] != tt.valid || body["plaque"] != tt.plate || body["format"] != tt.format {
			t.Errorf("%s: body = %v", tt.path, body)
		}
	}
}
