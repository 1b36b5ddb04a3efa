package reprise

import (
	"context"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	errorsfeature "github.com/lunicar/lunicar/internal/app/features/errors"
	"github.com/lunicar/lunicar/internal/app/store/collection"
	leadstore "github.com/lunicar/lunicar/internal/app/store/leads"
	"github.com/lunicar/lunicar/internal/app/system/photos"
	"github.com/lunicar/lunicar/internal/app/system/wizard"
	"github.com/lunicar/lunicar/internal/domain/models"
	"github.com/lunicar/lunicar/internal/testutil"
	"go.uber.org/zap"
)

type recordingNotifier struct {
	mu    sync.Mutex
	leads []models.Lead
}

func (n *recordingNotifier) LeadSubmitted(lead models.Lead) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.leads = append(n.leads, lead)
}

func (n *recordingNotifier) all() []models.Lead {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]models.Lead(nil), n.leads...)
}

type fixture struct {
	router   chi.Router
	db       *collection.DB
	blobs    *testutil.MemBlobs
	notifier *recordingNotifier
	sessDir  string
	cookies  map[string]*http.Cookie
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := zap.NewNop()
	db := testutil.NewDB(t)
	blobs := testutil.NewMemBlobs()
	n := &recordingNotifier{}
	clock := testutil.NewFakeClock()

	sessDir := t.TempDir()
	sessions, err := wizard.NewSessionStore("0123456789abcdef0123456789abcdef", "", sessDir, false, logger)
	if err != nil {
		t.Fatal(err)
	}
	svc := NewService(db, n, clock.Now, logger)
	limits := photos.Limits{MaxFiles: 2, MaxBytes: 1 << 20}
	h := NewHandler(svc, sessions, blobs, limits, clock.Now,
		errorsfeature.NewErrorLogger(logger), errorsfeature.NewHandler(), logger)

	r := chi.NewRouter()
	r.Mount("/api/reprise", APIRoutes(h))
	MountPages(r, h)
	return &fixture{router: r, db: db, blobs: blobs, notifier: n, sessDir: sessDir, cookies: map[string]*http.Cookie{}}
}

// do serves req with the cookies collected so far, like a browser.
func (f *fixture) do(req *http.Request) *testutil.ResponseRecorder {
	for _, c := range f.cookies {
		req.AddCookie(c)
	}
	rec := testutil.NewRecorder()
	f.router.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(f.cookies, c.Name)
			continue
		}
		f.cookies[c.Name] = c
	}
	return rec
}

func (f *fixture) leadCount(t *testing.T) int {
	t.Helper()
	n, err := leadstore.New(f.db).Count(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func validFields() map[string]string {
	return map[string]string{
		"plaque":        "ab-123-cd",
		"marque":        "Peugeot",
		"modele":        "308",
		"annee":         "2018",
		"kilometrage":   "85000",
		"carburant":     "Diesel",
		"boite":         "Manuelle",
		"etatExterieur": "Bon",
		"etatInterieur": "Excellent",
		"etatMecanique": "Bon",
		"delaiVente":    "Dans le mois",
		"civilite":      "Mme",
		"nom":           "Martin",
		"prenom":        "Claire",
		"email":         "claire@example.fr",
		"telephone":     "06 12 34 56 78",
		"codePostal":    "69003",
	}
}

func pngUpload(name string) testutil.Upload {
	return testutil.Upload{Field: "photos", Name: name, ContentType: "image/png", Data: testutil.PNG}
}

func TestSubmitAPI(t *testing.T) {
	f := newFixture(t)
	rec := f.do(testutil.NewMultipartRequest(t, "/api/reprise", validFields(), pngUpload("avant.png")))
	rec.AssertStatus(t, http.StatusOK)

	body := rec.DecodeJSON(t)
	if body["success"] != true || body["message"] != "Demande enregistrée avec succès" {
		t.Errorf("body = %v", body)
	}
	id, _ := body["id"].(string)
	if id == "" {
		t.Fatal("missing id")
	}
	if f.leadCount(t) != 1 {
		t.Error("lead not stored")
	}

	leads := f.notifier.all()
	if len(leads) != 1 {
		t.Fatalf("notified %d leads", len(leads))
	}
	lead := leads[0]
	if lead.ID != id || lead.Statut != models.LeadStatusNew || lead.Plaque != "AB-123-CD" || len(lead.Photos) != 1 {
		t.Errorf("lead = %+v", lead)
	}
	if paths := f.blobs.Paths(); len(paths) != 1 || paths[0] != photos.Path(lead.Photos[0]) {
		t.Errorf("stored blobs = %v", paths)
	}
}

func TestSubmitAPI_WithoutPhotos(t *testing.T) {
	f := newFixture(t)
	rec := f.do(testutil.NewMultipartRequest(t, "/api/reprise", validFields()))
	rec.AssertStatus(t, http.StatusOK)
	if leads := f.notifier.all(); len(leads) != 1 || leads[0].Photos == nil {
		t.Errorf("leads = %+v", leads)
	}
}

func TestSubmitAPI_InvalidPlate(t *testing.T) {
	f := newFixture(t)
	fields := validFields()
	fields["plaque"] = "AB1234"
	rec := f.do(testutil.NewMultipartRequest(t, "/api/reprise", fields))
	rec.AssertStatus(t, http.StatusBadRequest)
	if got := rec.DecodeJSON(t)["error"]; got != "Plaque d'immatriculation invalide" {
		t.Errorf("error = %v", got)
	}
	if f.leadCount(t) != 0 {
		t.Error("invalid request stored")
	}
}

func TestSubmitAPI_MissingField(t *testing.T) {
	f := newFixture(t)
	fields := validFields()
	delete(fields, "nom")
	rec := f.do(testutil.NewMultipartRequest(t, "/api/reprise", fields))
	rec.AssertStatus(t, http.StatusBadRequest)
	if msg, _ := rec.DecodeJSON(t)["error"].(string); msg == "" {
		t.Error("missing error message")
	}
}

func TestSubmitAPI_RejectsNonImages(t *testing.T) {
	f := newFixture(t)
	pdf := testutil.Upload{Field: "photos", Name: "carte-grise.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.4")}
	rec := f.do(testutil.NewMultipartRequest(t, "/api/reprise", validFields(), pngUpload("a.png"), pdf))
	rec.AssertStatus(t, http.StatusBadRequest)
	if got := rec.DecodeJSON(t)["error"]; got != "Seules les images sont autorisées" {
		t.Errorf("error = %v", got)
	}
	if paths := f.blobs.Paths(); len(paths) != 0 {
		t.Errorf("blobs left behind: %v", paths)
	}
}

func TestSubmitAPI_TooManyPhotos(t *testing.T) {
	f := newFixture(t)
	rec := f.do(testutil.NewMultipartRequest(t, "/api/reprise", validFields(),
		pngUpload("1.png"), pngUpload("2.png"), pngUpload("3.png")))
	rec.AssertStatus(t, http.StatusBadRequest)
	if got := rec.DecodeJSON(t)["error"]; got != "Maximum 2 photos autorisées" {
		t.Errorf("error = %v", got)
	}
}

func stepForm(step string, names ...string) url.Values {
	all := validFields()
	form := url.Values{"etape": {step}, "action": {"next"}}
	for _, n := range names {
		form.Set(n, all[n])
	}
	return form
}

func TestWizardFlow(t *testing.T) {
	testutil.MustBootTemplates(t)
	f := newFixture(t)

	rec := f.do(testutil.WithCSRFToken(testutil.NewRequest(http.MethodGet, "/reprise?plaque=ab123cd")))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Étape 1 : Véhicule")
	rec.AssertContains(t, `value="AB-123-CD"`)

	rec = f.do(testutil.NewFormRequest("/reprise/etape", url.Values{"etape": {"1"}, "action": {"next"}, "plaque": {"AB-123-CD"}}))
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "Veuillez remplir tous les champs obligatoires")
	rec.AssertContains(t, `class="field invalid"`)

	rec = f.do(testutil.NewFormRequest("/reprise/etape",
		stepForm("1", "plaque", "marque", "modele", "annee", "kilometrage", "carburant", "boite")))
	rec.AssertRedirect(t, "/reprise")

	rec = f.do(testutil.NewFormRequest("/reprise/etape", url.Values{"etape": {"2"}, "action": {"prev"}}))
	rec.AssertRedirect(t, "/reprise")
	rec = f.do(testutil.WithCSRFToken(testutil.NewRequest(http.MethodGet, "/reprise")))
	rec.AssertContains(t, `value="Peugeot"`)

	rec = f.do(testutil.NewFormRequest("/reprise/etape",
		stepForm("1", "plaque", "marque", "modele", "annee", "kilometrage", "carburant", "boite")))
	rec.AssertRedirect(t, "/reprise")
	rec = f.do(testutil.NewFormRequest("/reprise/etape",
		stepForm("2", "etatExterieur", "etatInterieur", "etatMecanique")))
	rec.AssertRedirect(t, "/reprise")

	rec = f.do(testutil.NewMultipartRequest(t, "/reprise/photos",
		map[string]string{"etape": "3", "delaiVente": "Dans le mois"}, pngUpload("face.png")))
	rec.AssertRedirect(t, "/reprise")
	rec = f.do(testutil.WithCSRFToken(testutil.NewRequest(http.MethodGet, "/reprise")))
	rec.AssertContains(t, "Étape 3 : Photos &amp; délai")
	rec.AssertContains(t, "face.png")
	if len(f.blobs.Paths()) != 1 {
		t.Fatalf("blobs = %v", f.blobs.Paths())
	}

	rec = f.do(testutil.NewFormRequest("/reprise/photos/0/supprimer", url.Values{"etape": {"3"}, "delaiVente": {"Dans le mois"}}))
	rec.AssertRedirect(t, "/reprise")
	if len(f.blobs.Paths()) != 0 {
		t.Errorf("removed photo still stored: %v", f.blobs.Paths())
	}

	rec = f.do(testutil.NewFormRequest("/reprise/etape", stepForm("3", "delaiVente")))
	rec.AssertRedirect(t, "/reprise")

	contact := stepForm("4", "civilite", "nom", "prenom", "email", "telephone", "codePostal")
	rec = f.do(testutil.NewFormRequest("/reprise/envoyer", contact))
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "Veuillez accepter la politique de confidentialité")
	if len(f.notifier.all()) != 0 {
		t.Fatal("submitted without consent")
	}

	contact.Set("rgpd", "1")
	rec = f.do(testutil.NewFormRequest("/reprise/envoyer", contact))
	rec.AssertRedirect(t, "/reprise")
	leads := f.notifier.all()
	if len(leads) != 1 || leads[0].Marque != "Peugeot" || leads[0].DelaiVente != "Dans le mois" {
		t.Fatalf("leads = %+v", leads)
	}

	rec = f.do(testutil.WithCSRFToken(testutil.NewRequest(http.MethodGet, "/reprise")))
	rec.AssertContains(t, "Demande envoyée")
	rec.AssertContains(t, leads[0].Reference())

	rec = f.do(testutil.NewFormRequest("/reprise/recommencer", url.Values{}))
	rec.AssertRedirect(t, "/reprise")
	rec = f.do(testutil.WithCSRFToken(testutil.NewRequest(http.MethodGet, "/reprise")))
	rec.AssertContains(t, "Étape 1 : Véhicule")
	if strings.Contains(rec.Body.String(), `value="Peugeot"`) {
		t.Error("restart kept the previous values")
	}
}

func TestWizard_StaleFormIgnored(t *testing.T) {
	testutil.MustBootTemplates(t)
	f := newFixture(t)
	form := stepForm("2", "etatExterieur")
	rec := f.do(testutil.NewFormRequest("/reprise/etape", form))
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "Étape 1 : Véhicule")
}

func TestWizard_RemoveUnknownPhoto(t *testing.T) {
	testutil.MustBootTemplates(t)
	f := newFixture(t)
	rec := f.do(testutil.NewFormRequest("/reprise/photos/4/supprimer", url.Values{}))
	rec.AssertStatus(t, http.StatusNotFound)
	rec.AssertContains(t, "Photo introuvable")
}

func TestWizard_UploadsDroppedWhenStateCannotBeSaved(t *testing.T) {
	testutil.MustBootTemplates(t)
	f := newFixture(t)
	if err := os.RemoveAll(f.sessDir); err != nil {
		t.Fatal(err)
	}

	rec := f.do(testutil.NewMultipartRequest(t, "/reprise/photos",
		map[string]string{"etape": "3"}, pngUpload("face.png"), pngUpload("dos.png")))
	rec.AssertStatus(t, http.StatusInternalServerError)
	if paths := f.blobs.Paths(); len(paths) != 0 {
		t.Errorf("orphaned blobs = %v", paths)
	}
}

func TestWizard_LongCommentRejected(t *testing.T) {
	testutil.MustBootTemplates(t)
	f := newFixture(t)

	rec := f.do(testutil.NewFormRequest("/reprise/etape",
		stepForm("1", "plaque", "marque", "modele", "annee", "kilometrage", "carburant", "boite")))
	rec.AssertRedirect(t, "/reprise")

	form := stepForm("2", "etatExterieur", "etatInterieur", "etatMecanique")
	form.Set("commentaires", strings.Repeat("rayure ", 1000))
	rec = f.do(testutil.NewFormRequest("/reprise/etape", form))
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "Commentaires : 5000 caractères maximum")
	rec.AssertContains(t, `maxlength="5000"`)

	form.Set("commentaires", strings.Repeat("r", 4900))
	rec = f.do(testutil.NewFormRequest("/reprise/etape", form))
	rec.AssertRedirect(t, "/reprise")
	rec = f.do(testutil.WithCSRFToken(testutil.NewRequest(http.MethodGet, "/reprise")))
	rec.AssertContains(t, "Étape 3 : Photos &amp; délai")
}
