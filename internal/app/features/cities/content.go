// internal/app/features/cities/content.go
package cities

import (
	"github.com/lunicar/lunicar/internal/domain/models"
)

// Content is the visible copy of a city landing page.
type Content struct {
	Title           string
	Description     string
	SocialTitle     string
	SocialDesc      string
	H1              string
	Subtitle        string
	WhyTitle        string
	AdvantagesTitle string
	Expertise       string
	FAQTitle        string
	FAQ             []models.FAQEntry
	CTATitle        string
	CTAText         string
}

// ContentFor builds the landing page copy for city.
func ContentFor(c models.City) Content {
	nom := c.Nom
	return Content{
		Title:           "Reprise Auto " + nom + " | LUNICAR - Estimation Gratuite",
		Description:     "Vendez votre voiture à " + nom + ". Estimation gratuite en 2 min, paiement immédiat. LUNICAR, le spécialiste de la reprise auto en " + c.Departement + ".",
		SocialTitle:     "Reprise Auto " + nom + " | LUNICAR",
		SocialDesc:      "Vendez votre voiture à " + nom + ". Estimation gratuite, paiement sous 24h.",
		H1:              "Reprise automobile à " + nom,
		Subtitle:        "Vendez votre voiture à " + nom + " rapidement. Estimation gratuite en 2 minutes, paiement immédiat.",
		WhyTitle:        "Pourquoi vendre votre voiture à " + nom + " avec LUNICAR ?",
		AdvantagesTitle: "Les avantages LUNICAR à " + nom,
		Expertise:       "Nos experts connaissent parfaitement le marché automobile de " + nom + " et de " + c.Region + " pour vous proposer le meilleur prix.",
		FAQTitle:        "Questions fréquentes sur la reprise auto à " + nom,
		FAQ: []models.FAQEntry{
			{
				Question: "Comment fonctionne la reprise de voiture à " + nom + " ?",
				Answer: "C'est simple : vous remplissez notre formulaire en ligne avec les informations de votre véhicule, " +
					"nous vous envoyons une offre de rachat sous 24h. Si vous acceptez, nous nous occupons de tout à " + nom +
					" : démarches administratives, récupération du véhicule et paiement immédiat.",
			},
			{
				Question: "Quels véhicules reprenez-vous à " + nom + " ?",
				Answer: "Nous reprenons toutes les marques et tous les modèles : voitures récentes ou anciennes, à fort kilométrage, " +
					"en panne, accidentées ou sans contrôle technique, ainsi que les utilitaires légers.",
			},
			{
				Question: "Combien de temps prend la vente à " + nom + " ?",
				Answer: "L'estimation prend 2 minutes et l'offre arrive sous 24h. Une fois l'offre acceptée, " +
					"la vente est généralement conclue en 48h avec paiement immédiat à la signature.",
			},
		},
		CTATitle: "Vendez votre voiture à " + nom + " maintenant",
		CTAText:  "Estimation gratuite en 2 minutes à " + nom + ". Paiement sous 24h. Service professionnel et sécurisé en " + c.Region + ".",
	}
}
