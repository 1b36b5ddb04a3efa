package admin

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	errorsfeature "github.com/lunicar/lunicar/internal/app/features/errors"
	"github.com/lunicar/lunicar/internal/app/store/adminsessions"
	"github.com/lunicar/lunicar/internal/app/store/ratelimit"
	"github.com/lunicar/lunicar/internal/app/system/adminauth"
	"github.com/lunicar/lunicar/internal/app/system/authutil"
	"github.com/lunicar/lunicar/internal/testutil"
	"go.uber.org/zap"
)

const password = "s3cret-admin"

type fixture struct {
	router chi.Router
	clock  *testutil.FakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := zap.NewNop()
	clock := testutil.NewFakeClock()
	guard := adminauth.New(
		adminsessions.New(time.Hour, clock.Now),
		ratelimit.New(5, 15*time.Minute, clock.Now),
		authutil.Matcher(password, ""),
		clock.Now,
		logger,
	)
	h := NewHandler(testutil.NewDB(t), guard, clock.Now, errorsfeature.NewErrorLogger(logger), logger)

	r := chi.NewRouter()
	r.Mount("/api/admin", Routes(h))
	return &fixture{router: r, clock: clock}
}

func (f *fixture) serve(req *http.Request) *testutil.ResponseRecorder {
	rec := testutil.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) login(t *testing.T) string {
	t.Helper()
	rec := f.serve(testutil.NewJSONRequest(t, http.MethodPost, "/api/admin/login", map[string]string{"password": password}))
	rec.AssertStatus(t, http.StatusOK)
	token, _ := rec.DecodeJSON(t)["token"].(string)
	if token == "" {
		t.Fatal("no token")
	}
	return token
}

func authed(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	rec := f.serve(testutil.NewJSONRequest(t, http.MethodPost, "/api/admin/login", map[string]string{"password": password}))
	rec.AssertStatus(t, http.StatusOK)
	body := rec.DecodeJSON(t)
	if body["success"] != true || body["expiresIn"] != float64(3600000) {
		t.Errorf("body = %v", body)
	}
}

func TestLogin_LockoutAfterFiveFailures(t *testing.T) {
	f := newFixture(t)
	wrong := map[string]string{"password": "nope"}

	for i := 0; i < 4; i++ {
		rec := f.serve(testutil.NewJSONRequest(t, http.MethodPost, "/api/admin/login", wrong))
		rec.AssertStatus(t, http.StatusUnauthorized)
		if i == 0 {
			if got := rec.DecodeJSON(t)["error"]; got != "Mot de passe incorrect. 4 tentative(s) restante(s)." {
				t.Errorf("error = %v", got)
			}
		}
	}

	rec := f.serve(testutil.NewJSONRequest(t, http.MethodPost, "/api/admin/login", wrong))
	rec.AssertStatus(t, http.StatusTooManyRequests)
	body := rec.DecodeJSON(t)
	if body["error"] != "Trop de tentatives. Compte bloqué pendant 15 minutes." {
		t.Errorf("error = %v", body["error"])
	}
	want := float64(f.clock.Now().Add(15 * time.Minute).UnixMilli())
	if body["lockedUntil"] != want {
		t.Errorf("lockedUntil = %v, want %v", body["lockedUntil"], want)
	}

	// The right password is refused while locked.
	f.clock.Advance(5 * time.Minute)
	rec = f.serve(testutil.NewJSONRequest(t, http.MethodPost, "/api/admin/login", map[string]string{"password": password}))
	rec.AssertStatus(t, http.StatusTooManyRequests)
	if got := rec.DecodeJSON(t)["error"]; got != "Trop de tentatives. Réessayez dans 10 minute(s)." {
		t.Errorf("error = %v", got)
	}

	f.clock.Advance(11 * time.Minute)
	f.login(t)
}

func TestLogin_ForwardedHeadersDoNotResetLockout(t *testing.T) {
	f := newFixture(t)
	wrong := map[string]string{"password": "nope"}
	attempt := func(i int) *testutil.ResponseRecorder {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/admin/login", wrong)
		req.RemoteAddr = "198.51.100.9:4321"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.%d", i+1))
		req.Header.Set("X-Real-IP", fmt.Sprintf("10.0.1.%d", i+1))
		return f.serve(req)
	}

	for i := 0; i < 4; i++ {
		attempt(i).AssertStatus(t, http.StatusUnauthorized)
	}
	attempt(4).AssertStatus(t, http.StatusTooManyRequests)

	other := testutil.NewJSONRequest(t, http.MethodPost, "/api/admin/login", map[string]string{"password": password})
	other.RemoteAddr = "198.51.100.10:4321"
	f.serve(other).AssertStatus(t, http.StatusOK)
}

func TestProtectedRoutes(t *testing.T) {
	f := newFixture(t)

	rec := f.serve(testutil.NewRequest(http.MethodGet, "/api/admin/stats"))
	rec.AssertStatus(t, http.StatusUnauthorized)
	if got := rec.DecodeJSON(t)["error"]; got != "Non autorisé" {
		t.Errorf("error = %v", got)
	}

	rec = f.serve(authed(testutil.NewRequest(http.MethodGet, "/api/admin/stats"), "inconnu"))
	rec.AssertStatus(t, http.StatusUnauthorized)
	if got := rec.DecodeJSON(t)["error"]; got != "Token invalide" {
		t.Errorf("error = %v", got)
	}

	token := f.login(t)
	f.clock.Advance(61 * time.Minute)
	rec = f.serve(authed(testutil.NewRequest(http.MethodGet, "/api/admin/stats"), token))
	rec.AssertStatus(t, http.StatusUnauthorized)
	if got := rec.DecodeJSON(t)["error"]; got != "Session expirée" {
		t.Errorf("error = %v", got)
	}
}

func TestStats(t *testing.T) {
	f := newFixture(t)
	token := f.login(t)
	rec := f.serve(authed(testutil.NewRequest(http.MethodGet, "/api/admin/stats"), token))
	rec.AssertStatus(t, http.StatusOK)
	body := rec.DecodeJSON(t)
	for _, k := range []string{"articles", "demandes", "messages"} {
		if body[k] != float64(0) {
			t.Errorf("%s = %v", k, body[k])
		}
	}
}

var draft = map[string]any{
	"titre":     "Vendre sa voiture en hiver",
	"extrait":   "Nos conseils.",
	"categorie": "Conseils",
	"tags":      "hiver, vente",
	"contenu":   "<p>" + strings.Repeat("mot ", 250) + "</p>",
}

func TestArticleCRUD(t *testing.T) {
	f := newFixture(t)
	token := f.login(t)

	rec := f.serve(authed(testutil.NewJSONRequest(t, http.MethodPost, "/api/admin/articles", draft), token))
	rec.AssertStatus(t, http.StatusOK)
	article, _ := rec.DecodeJSON(t)["article"].(map[string]any)
	if article["slug"] != "vendre-sa-voiture-en-hiver" || article["tempsLecture"] != float64(2) || article["date"] != "16 octobre 2026" {
		t.Errorf("article = %v", article)
	}

	rec = f.serve(authed(testutil.NewJSONRequest(t, http.MethodPost, "/api/admin/articles", draft), token))
	rec.AssertStatus(t, http.StatusConflict)
	if got := rec.DecodeJSON(t)["error"]; got != "Un article avec ce titre existe déjà" {
		t.Errorf("error = %v", got)
	}

	rec = f.serve(authed(testutil.NewJSONRequest(t, http.MethodPost, "/api/admin/articles", map[string]string{"titre": "Sans contenu"}), token))
	rec.AssertStatus(t, http.StatusBadRequest)
	if got := rec.DecodeJSON(t)["error"]; got != "Champs obligatoires manquants" {
		t.Errorf("error = %v", got)
	}

	f.clock.Advance(24 * time.Hour)
	rec = f.serve(authed(testutil.NewJSONRequest(t, http.MethodPut, "/api/admin/articles/vendre-sa-voiture-en-hiver",
		map[string]any{"titre": "Vendre sa voiture l'hiver", "image": "/uploads/hiver.jpg"}), token))
	rec.AssertStatus(t, http.StatusOK)
	article, _ = rec.DecodeJSON(t)["article"].(map[string]any)
	if article["slug"] != "vendre-sa-voiture-en-hiver" || article["titre"] != "Vendre sa voiture l'hiver" ||
		article["image"] != "/uploads/hiver.jpg" || article["dateModified"] != "17 octobre 2026" {
		t.Errorf("updated article = %v", article)
	}

	rec = f.serve(authed(testutil.NewJSONRequest(t, http.MethodPut, "/api/admin/articles/inconnu", map[string]string{"titre": "x"}), token))
	rec.AssertStatus(t, http.StatusNotFound)

	rec = f.serve(authed(testutil.NewRequest(http.MethodGet, "/api/admin/articles"), token))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"slug":"vendre-sa-voiture-en-hiver"`)

	rec = f.serve(authed(testutil.NewRequest(http.MethodDelete, "/api/admin/articles/vendre-sa-voiture-en-hiver"), token))
	rec.AssertStatus(t, http.StatusOK)
	if got := rec.DecodeJSON(t)["success"]; got != true {
		t.Errorf("success = %v", got)
	}

	rec = f.serve(authed(testutil.NewRequest(http.MethodDelete, "/api/admin/articles/vendre-sa-voiture-en-hiver"), token))
	rec.AssertStatus(t, http.StatusNotFound)
	if got := rec.DecodeJSON(t)["error"]; got != "Article non trouvé" {
		t.Errorf("error = %v", got)
	}
}

func TestLogout(t *testing.T) {
	f := newFixture(t)
	token := f.login(t)
	rec := f.serve(authed(testutil.NewRequest(http.MethodPost, "/api/admin/logout"), token))
	rec.AssertStatus(t, http.StatusOK)

	rec = f.serve(authed(testutil.NewRequest(http.MethodGet, "/api/admin/stats"), token))
	rec.AssertStatus(t, http.StatusUnauthorized)
}
