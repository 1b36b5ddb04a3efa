// internal/app/features/reprise/api.go
package reprise

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/lunicar/lunicar/internal/app/system/inputval"
	"github.com/lunicar/lunicar/internal/app/system/jsonutil"
	"github.com/lunicar/lunicar/internal/app/system/photos"
	"github.com/lunicar/lunicar/internal/app/system/timeouts"
	"go.uber.org/zap"
)

const (
	msgRecorded     = "Demande enregistrée avec succès"
	msgRecordFailed = "Erreur lors de l'enregistrement"

	// multipartMemory is how much of a multipart body is kept in memory;
	// the rest spills to temporary files.
	multipartMemory = 8 << 20
)

// Input is a trade-in request posted to the API.
type Input struct {
	Plaque        string `json:"plaque" validate:"required,plaque" label:"Plaque d'immatriculation"`
	Marque        string `json:"marque" validate:"required,max=60" label:"Marque"`
	Modele        string `json:"modele" validate:"required,max=60" label:"Modèle"`
	Annee         string `json:"annee" validate:"required" label:"Année"`
	Kilometrage   string `json:"kilometrage" validate:"required,max=20" label:"Kilométrage"`
	Carburant     string `json:"carburant" validate:"required" label:"Carburant"`
	Boite         string `json:"boite" validate:"required" label:"Boîte de vitesses"`
	EtatExterieur string `json:"etatExterieur" validate:"required" label:"État extérieur"`
	EtatInterieur string `json:"etatInterieur" validate:"required" label:"État intérieur"`
	EtatMecanique string `json:"etatMecanique" validate:"required" label:"État mécanique"`
	Commentaires  string `json:"commentaires" validate:"max=5000" label:"Commentaires"`
	DelaiVente    string `json:"delaiVente" validate:"required" label:"Délai de vente"`
	Civilite      string `json:"civilite" validate:"required" label:"Civilité"`
	Nom           string `json:"nom" validate:"required,max=120" label:"Nom"`
	Prenom        string `json:"prenom" validate:"required,max=120" label:"Prénom"`
	Email         string `json:"email" validate:"required,email" label:"Email"`
	Telephone     string `json:"telephone" validate:"required,telephone" label:"Téléphone"`
	CodePostal    string `json:"codePostal" validate:"required,codepostal" label:"Code postal"`
}

// bindInput reads the form fields of r, trimmed.
func bindInput(r *http.Request) Input {
	v := func(name string) string { return strings.TrimSpace(r.FormValue(name)) }
	return Input{
		Plaque:        v("plaque"),
		Marque:        v("marque"),
		Modele:        v("modele"),
		Annee:         v("annee"),
		Kilometrage:   v("kilometrage"),
		Carburant:     v("carburant"),
		Boite:         v("boite"),
		EtatExterieur: v("etatExterieur"),
		EtatInterieur: v("etatInterieur"),
		EtatMecanique: v("etatMecanique"),
		Commentaires:  v("commentaires"),
		DelaiVente:    v("delaiVente"),
		Civilite:      v("civilite"),
		Nom:           v("nom"),
		Prenom:        v("prenom"),
		Email:         v("email"),
		Telephone:     v("telephone"),
		CodePostal:    v("codePostal"),
	}
}

// Values returns the input keyed by form field name.
func (in Input) Values() map[string]string {
	return map[string]string{
		"plaque":        in.Plaque,
		"marque":        in.Marque,
		"modele":        in.Modele,
		"annee":         in.Annee,
		"kilometrage":   in.Kilometrage,
		"carburant":     in.Carburant,
		"boite":         in.Boite,
		"etatExterieur": in.EtatExterieur,
		"etatInterieur": in.EtatInterieur,
		"etatMecanique": in.EtatMecanique,
		"commentaires":  in.Commentaires,
		"delaiVente":    in.DelaiVente,
		"civilite":      in.Civilite,
		"nom":           in.Nom,
		"prenom":        in.Prenom,
		"email":         in.Email,
		"telephone":     in.Telephone,
		"codePostal":    in.CodePostal,
	}
}

// APIRoutes returns the /api/reprise router.
func APIRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.SubmitAPI)
	return r
}

// SubmitAPI handles POST /api/reprise (multipart form with optional
// "photos" files).
func (h *Handler) SubmitAPI(w http.ResponseWriter, r *http.Request) {
	if err := h.parseForm(w, r); err != nil {
		jsonutil.BadRequest(w, uploadMessage(err))
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	in := bindInput(r)
	if res := inputval.Validate(in); res.HasErrors() {
		jsonutil.BadRequest(w, res.First())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	names, err := h.limits.SaveAll(ctx, h.blobs, uploadedFiles(r), h.now())
	if err != nil {
		if isUserUploadError(err) {
			jsonutil.BadRequest(w, uploadMessage(err))
			return
		}
		h.errLog.Log(r, "failed to store photos", err)
		jsonutil.InternalError(w, msgRecordFailed)
		return
	}

	id, err := h.service.Submit(ctx, in.Values(), names)
	if err != nil {
		photos.Remove(context.WithoutCancel(ctx), h.blobs, names)
		h.errLog.Log(r, "failed to record trade-in request", err)
		jsonutil.InternalError(w, msgRecordFailed)
		return
	}
	jsonutil.Success(w, map[string]any{"message": msgRecorded, "id": id})
}

// isUserUploadError reports whether err is a rejected upload rather than a
// storage failure.
func isUserUploadError(err error) bool {
	var tooMany *photos.TooManyError
	var tooLarge *photos.TooLargeError
	return errors.As(err, &tooMany) || errors.As(err, &tooLarge) || errors.Is(err, photos.ErrNotAllowed) || errors.Is(err, errBodyTooLarge)
}

// uploadMessage maps an upload rejection to the message shown to users.
func uploadMessage(err error) string {
	switch {
	case errors.Is(err, errBodyTooLarge):
		return errBodyTooLarge.Error()
	case errors.Is(err, photos.ErrNotAllowed):
		return photos.ErrNotAllowed.Error()
	case isUserUploadError(err):
		return err.Error()
	default:
		return "Requête invalide"
	}
}

func (h *Handler) logUpload(r *http.Request, err error) {
	if isUserUploadError(err) {
		h.logger.Info("upload rejected", zap.String("path", r.URL.Path), zap.Error(err))
		return
	}
	h.errLog.Log(r, "failed to store photo", err)
}
