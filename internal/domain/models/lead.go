// internal/domain/models/lead.go
package models

import (
	"strings"
	"time"
)

// LeadStatusNew is the status of every freshly submitted lead.
const LeadStatusNew = "nouvelle"

// Lead is a trade-in request ("demande") submitted from the reprise form.
// Leads are write-only through the public API.
type Lead struct {
	ID     string `json:"id"`
	Statut string `json:"statut"`

	// Vehicle
	Plaque      string `json:"plaque"`
	Marque      string `json:"marque"`
	Modele      string `json:"modele"`
	Annee       string `json:"annee"`
	Kilometrage string `json:"kilometrage"`
	Carburant   string `json:"carburant"`
	Boite       string `json:"boite"`

	// Condition
	EtatExterieur string `json:"etat_exterieur"`
	EtatInterieur string `json:"etat_interieur"`
	EtatMecanique string `json:"etat_mecanique"`
	Commentaires  string `json:"commentaires"`
	DelaiVente    string `json:"delai_vente"`

	// Contact
	Civilite   string `json:"civilite"`
	Nom        string `json:"nom"`
	Prenom     string `json:"prenom"`
	Email      string `json:"email"`
	Telephone  string `json:"telephone"`
	CodePostal string `json:"code_postal"`

	Photos    []string  `json:"photos"` // stored upload file names
	CreatedAt time.Time `json:"createdAt"`
}

// ShortRef returns the first 8 characters of id, uppercased.
func ShortRef(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return strings.ToUpper(id)
}

// Reference returns the human-readable reference shown to the customer.
func (l Lead) Reference() string {
	return "REF-" + ShortRef(l.ID)
}
