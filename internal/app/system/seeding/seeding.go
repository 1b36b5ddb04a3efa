// internal/app/system/seeding/seeding.go
package seeding

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"time"

	articlestore "github.com/lunicar/lunicar/internal/app/store/articles"
	citystore "github.com/lunicar/lunicar/internal/app/store/cities"
	"github.com/lunicar/lunicar/internal/app/store/collection"
	themestore "github.com/lunicar/lunicar/internal/app/store/themes"
	"github.com/lunicar/lunicar/internal/domain/models"
	"go.uber.org/zap"
)

//go:embed data/*.json
var dataFS embed.FS

// SeedAll writes the default cities, themes and welcome article into
// collections that are still empty. Existing content is never touched.
func SeedAll(ctx context.Context, db *collection.DB, now time.Time, logger *zap.Logger) error {
	if err := seedCities(ctx, citystore.New(db), logger); err != nil {
		return err
	}
	if err := seedThemes(ctx, themestore.New(db), logger); err != nil {
		return err
	}
	return seedArticles(ctx, articlestore.New(db), now, logger)
}

func readData[T any](name string) ([]T, error) {
	raw, err := dataFS.ReadFile("data/" + name)
	if err != nil {
		return nil, err
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return out, nil
}

func seedCities(ctx context.Context, store *citystore.Store, logger *zap.Logger) error {
	n, err := store.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	cities, err := readData[models.City]("cities.json")
	if err != nil {
		return err
	}
	if err := store.Replace(ctx, cities); err != nil {
		logger.Error("failed to seed cities", zap.Error(err))
		return err
	}
	logger.Info("seeded cities", zap.Int("count", len(cities)))
	return nil
}

func seedThemes(ctx context.Context, store *themestore.Store, logger *zap.Logger) error {
	n, err := store.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	themes, err := readData[models.Theme]("themes.json")
	if err != nil {
		return err
	}
	if err := store.Replace(ctx, themes); err != nil {
		logger.Error("failed to seed themes", zap.Error(err))
		return err
	}
	logger.Info("seeded themes", zap.Int("count", len(themes)))
	return nil
}

func seedArticles(ctx context.Context, store *articlestore.Store, now time.Time, logger *zap.Logger) error {
	n, err := store.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	a, err := welcomeArticle.Build(now)
	if err != nil {
		return err
	}
	if err := store.Create(ctx, a); err != nil {
		logger.Error("failed to seed welcome article", zap.Error(err))
		return err
	}
	logger.Info("seeded welcome article", zap.String("slug", a.Slug))
	return nil
}

var welcomeArticle = articlestore.Draft{
	Titre:   "Comment vendre sa voiture rapidement et au meilleur prix",
	Extrait: "Estimation, documents, paiement : les étapes pour vendre votre voiture sans stress à un professionnel de la reprise.",
	MetaDescription: "Découvrez comment vendre votre voiture rapidement : estimation gratuite, " +
		"documents à préparer et paiement immédiat avec LUNICAR.",
	Categorie: "Conseils",
	Tags:      articlestore.Tags{"vente", "reprise", "conseils"},
	Emoji:     "🚗",
	Contenu: `<p>Vendre sa voiture peut vite devenir un casse-tête : annonces, visites, négociations et risques d'impayé. La reprise par un professionnel simplifie chaque étape.</p>
<h2>1. Estimer la valeur de votre véhicule</h2>
<p>Renseignez la plaque d'immatriculation, le kilométrage et l'état général. Une estimation gratuite vous donne une première idée du prix en deux minutes.</p>
<h2>2. Préparer les documents</h2>
<ul>
<li>La carte grise barrée et signée</li>
<li>Une pièce d'identité</li>
<li>Le certificat de non-gage</li>
<li>Le carnet d'entretien si vous l'avez</li>
</ul>
<h2>3. Faire inspecter la voiture</h2>
<p>Un expert vérifie le véhicule et confirme l'offre. Aucune réparation préalable n'est nécessaire.</p>
<h2>4. Être payé immédiatement</h2>
<p>Le paiement est déclenché à la signature du certificat de cession, par virement instantané ou chèque de banque.</p>`,
}
