// internal/app/features/reprise/service.go
package reprise

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lunicar/lunicar/internal/app/store/collection"
	leadstore "github.com/lunicar/lunicar/internal/app/store/leads"
	"github.com/lunicar/lunicar/internal/app/system/plate"
	"github.com/lunicar/lunicar/internal/domain/models"
	"go.uber.org/zap"
)

// LeadNotifier is told about every stored trade-in request.
type LeadNotifier interface {
	LeadSubmitted(lead models.Lead)
}

// Service records trade-in requests coming from the API and the wizard.
type Service struct {
	leads    *leadstore.Store
	notifier LeadNotifier
	now      func() time.Time
	logger   *zap.Logger
}

// NewService creates a new Service.
func NewService(db *collection.DB, notifier LeadNotifier, now func() time.Time, logger *zap.Logger) *Service {
	return &Service{
		leads:    leadstore.New(db),
		notifier: notifier,
		now:      now,
		logger:   logger,
	}
}

// Submit stores a request built from form values and already stored photo
// names, then dispatches the notification. It returns the new lead id.
// The signature matches wizard.SubmitFunc.
func (s *Service) Submit(ctx context.Context, values map[string]string, photoNames []string) (string, error) {
	lead := newLead(uuid.NewString(), values, photoNames, s.now().UTC())
	if err := s.leads.Insert(ctx, lead); err != nil {
		return "", err
	}
	s.notifier.LeadSubmitted(lead)
	s.logger.Info("trade-in request recorded",
		zap.String("id", lead.ID),
		zap.String("marque", lead.Marque),
		zap.Int("photos", len(lead.Photos)))
	return lead.ID, nil
}

func newLead(id string, v map[string]string, photoNames []string, now time.Time) models.Lead {
	if photoNames == nil {
		photoNames = []string{}
	}
	return models.Lead{
		ID:            id,
		Statut:        models.LeadStatusNew,
		Plaque:        plate.Display(v["plaque"]),
		Marque:        v["marque"],
		Modele:        v["modele"],
		Annee:         v["annee"],
		Kilometrage:   v["kilometrage"],
		Carburant:     v["carburant"],
		Boite:         v["boite"],
		EtatExterieur: v["etatExterieur"],
		EtatInterieur: v["etatInterieur"],
		EtatMecanique: v["etatMecanique"],
		Commentaires:  v["commentaires"],
		DelaiVente:    v["delaiVente"],
		Civilite:      v["civilite"],
		Nom:           v["nom"],
		Prenom:        v["prenom"],
		Email:         v["email"],
		Telephone:     v["telephone"],
		CodePostal:    v["codePostal"],
		Photos:        photoNames,
		CreatedAt:     now,
	}
}
