// internal/app/store/leads/leadstore.go
package leadstore

import (
	"context"

	"github.com/lunicar/lunicar/internal/app/store/collection"
	"github.com/lunicar/lunicar/internal/domain/models"
)

// Store persists trade-in requests. Leads are never exposed through a
// public read endpoint.
type Store struct {
	c *collection.Collection[models.Lead]
}

// New creates a new lead store.
func New(db *collection.DB) *Store {
	return &Store{c: collection.Open[models.Lead](db, models.CollectionLeads)}
}

// Insert stores lead at the front of the collection, newest first.
func (s *Store) Insert(ctx context.Context, lead models.Lead) error {
	return s.c.Update(ctx, func(all []models.Lead) ([]models.Lead, error) {
		return append([]models.Lead{lead}, all...), nil
	})
}

// Count returns the number of stored leads.
func (s *Store) Count(ctx context.Context) (int, error) {
	return s.c.Count(ctx)
}

// CountNew returns the number of leads still in the "nouvelle" status.
func (s *Store) CountNew(ctx context.Context) (int, error) {
	all, err := s.c.All(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, l := range all {
		if l.Statut == models.LeadStatusNew {
			n++
		}
	}
	return n, nil
}
