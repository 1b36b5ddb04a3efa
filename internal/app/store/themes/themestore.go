// internal/app/store/themes/themestore.go
package themestore

import (
	"context"
	"errors"

	"github.com/lunicar/lunicar/internal/app/store/collection"
	"github.com/lunicar/lunicar/internal/domain/models"
)

// ErrNotFound is returned when no theme has the requested slug.
var ErrNotFound = errors.New("theme not found")

// Store provides access to the thematic landing page collection.
type Store struct {
	c *collection.Collection[models.Theme]
}

// New creates a new theme store.
func New(db *collection.DB) *Store {
	return &Store{c: collection.Open[models.Theme](db, models.CollectionThemes)}
}

// List returns every theme in stored order.
func (s *Store) List(ctx context.Context) ([]models.Theme, error) {
	return s.c.All(ctx)
}

// GetBySlug returns the theme with the given slug.
func (s *Store) GetBySlug(ctx context.Context, slug string) (models.Theme, error) {
	all, err := s.c.All(ctx)
	if err != nil {
		return models.Theme{}, err
	}
	for _, t := range all {
		if t.Slug == slug {
			return t, nil
		}
	}
	return models.Theme{}, ErrNotFound
}

// Count returns the number of themes.
func (s *Store) Count(ctx context.Context) (int, error) {
	return s.c.Count(ctx)
}

// Replace overwrites the whole collection (used by seeding).
func (s *Store) Replace(ctx context.Context, all []models.Theme) error {
	return s.c.Replace(ctx, all)
}
