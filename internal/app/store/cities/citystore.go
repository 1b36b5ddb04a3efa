// internal/app/store/cities/citystore.go
package citystore

import (
	"context"
	"errors"

	"github.com/lunicar/lunicar/internal/app/store/collection"
	"github.com/lunicar/lunicar/internal/domain/models"
)

// ErrNotFound is returned when no city has the requested slug.
var ErrNotFound = errors.New("city not found")

// MaxNearby is the number of nearby cities shown on a landing page.
const MaxNearby = 6

// neighbours lists hand-picked nearby cities for the largest markets, where
// the department alone gives poor suggestions.
var neighbours = map[string][]string{
	"paris":       {"boulogne-billancourt", "saint-denis", "montreuil", "versailles", "nanterre", "creteil"},
	"lyon":        {"villeurbanne", "venissieux", "saint-etienne", "grenoble", "bourg-en-bresse"},
	"marseille":   {"aix-en-provence", "toulon", "aubagne", "martigues", "avignon"},
	"lille":       {"roubaix", "tourcoing", "villeneuve-d-ascq", "lens", "douai"},
	"bordeaux":    {"merignac", "pessac", "talence", "arcachon", "libourne"},
	"toulouse":    {"colomiers", "tournefeuille", "blagnac", "montauban", "albi"},
	"nice":        {"cannes", "antibes", "grasse", "menton", "frejus"},
	"nantes":      {"saint-nazaire", "reze", "saint-herblain", "angers", "la-roche-sur-yon"},
	"strasbourg":  {"colmar", "mulhouse", "haguenau", "schiltigheim"},
	"montpellier": {"nimes", "beziers", "sete", "lunel"},
	"rennes":      {"saint-malo", "vannes", "laval", "fougeres"},
}

// Store provides access to the cities reference collection.
type Store struct {
	c *collection.Collection[models.City]
}

// New creates a new city store.
func New(db *collection.DB) *Store {
	return &Store{c: collection.Open[models.City](db, models.CollectionCities)}
}

// List returns every city in stored order.
func (s *Store) List(ctx context.Context) ([]models.City, error) {
	return s.c.All(ctx)
}

// GetBySlug returns the city with the given slug.
func (s *Store) GetBySlug(ctx context.Context, slug string) (models.City, error) {
	all, err := s.c.All(ctx)
	if err != nil {
		return models.City{}, err
	}
	for _, c := range all {
		if c.Slug == slug {
			return c, nil
		}
	}
	return models.City{}, ErrNotFound
}

// Count returns the number of cities.
func (s *Store) Count(ctx context.Context) (int, error) {
	return s.c.Count(ctx)
}

// Replace overwrites the whole collection (used by seeding).
func (s *Store) Replace(ctx context.Context, all []models.City) error {
	return s.c.Replace(ctx, all)
}

// Nearby picks up to MaxNearby cities to link from city's page. Cities in the
// neighbours table come first (only those present in all); the list is then
// filled with cities of the same department. The city itself is never
// included.
func Nearby(all []models.City, city models.City) []models.City {
	bySlug := make(map[string]models.City, len(all))
	for _, c := range all {
		bySlug[c.Slug] = c
	}

	seen := map[string]bool{city.Slug: true}
	var out []models.City
	add := func(c models.City) {
		if seen[c.Slug] || len(out) >= MaxNearby {
			return
		}
		seen[c.Slug] = true
		out = append(out, c)
	}

	for _, slug := range neighbours[city.Slug] {
		if c, ok := bySlug[slug]; ok {
			add(c)
		}
	}
	for _, c := range all {
		if c.Departement == city.Departement {
			add(c)
		}
	}
	return out
}
