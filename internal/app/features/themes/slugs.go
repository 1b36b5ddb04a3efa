// internal/app/features/themes/slugs.go
package themes

// Group is a family of thematic landing pages.
type Group struct {
	Name  string
	Slugs []string
}

// Groups lists every thematic landing page served at /{slug}. Only these
// paths are routed; a listed slug without theme data renders the 404 page.
var Groups = []Group{
	{"Rapidité", []string{
		"reprise-auto-24h", "reprise-auto-immediate", "rachat-voiture-rapide",
		"vendre-sa-voiture-rapidement", "reprise-voiture-48h",
	}},
	{"Sans contraintes", []string{
		"rachat-voiture-sans-controle-technique", "reprise-auto-sans-ct", "vendre-voiture-sans-ct",
		"rachat-vehicule-sans-revision", "reprise-voiture-en-panne", "rachat-voiture-accidentee",
		"reprise-voiture-non-roulante", "rachat-voiture-moteur-hs", "reprise-auto-sans-carte-grise",
	}},
	{"Paiement", []string{
		"reprise-auto-paiement-immediat", "rachat-voiture-paiement-cash", "vendre-voiture-paiement-comptant",
		"reprise-auto-cheque-de-banque", "rachat-voiture-virement-immediat",
	}},
	{"Type de véhicule", []string{
		"reprise-voiture-occasion", "rachat-voiture-ancienne", "reprise-voiture-haut-kilometrage",
		"rachat-vehicule-utilitaire", "reprise-suv", "rachat-berline", "reprise-citadine",
		"rachat-monospace", "reprise-voiture-diesel", "reprise-voiture-essence",
		"rachat-voiture-hybride", "reprise-voiture-electrique", "rachat-voiture-gpl",
	}},
	{"Marques", []string{
		"reprise-renault", "reprise-peugeot", "reprise-citroen", "reprise-volkswagen", "reprise-toyota",
		"reprise-ford", "reprise-opel", "reprise-audi", "reprise-bmw", "reprise-mercedes",
		"reprise-nissan", "reprise-fiat", "reprise-dacia", "reprise-hyundai", "reprise-kia",
		"reprise-ds", "reprise-alpine", "reprise-porsche", "reprise-mini", "reprise-honda",
		"reprise-mazda", "reprise-suzuki", "reprise-mitsubishi", "reprise-lexus", "reprise-tesla",
		"reprise-jeep", "reprise-alfa-romeo", "reprise-land-rover", "reprise-jaguar", "reprise-mg",
		"reprise-volvo", "reprise-seat", "reprise-cupra", "reprise-skoda", "reprise-byd",
	}},
	{"Situations", []string{
		"vendre-voiture-particulier", "rachat-voiture-professionnel", "reprise-voiture-leasing",
		"vendre-voiture-credit", "reprise-voiture-succession", "rachat-voiture-divorce",
		"vendre-voiture-demenagement", "reprise-voiture-expatriation",
	}},
	{"Alternatives", []string{
		"alternative-leboncoin", "alternative-lacentrale", "mieux-que-concessionnaire",
		"comparatif-reprise-auto",
	}},
}

// Slugs returns every routed theme slug in group order.
func Slugs() []string {
	var out []string
	for _, g := range Groups {
		out = append(out, g.Slugs...)
	}
	return out
}

// IsRouted reports whether slug is a thematic landing page path.
func IsRouted(slug string) bool {
	for _, g := range Groups {
		for _, s := range g.Slugs {
			if s == slug {
				return true
			}
		}
	}
	return false
}
