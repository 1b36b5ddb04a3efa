// internal/app/store/messages/messagestore.go
package messagestore

import (
	"context"

	"github.com/lunicar/lunicar/internal/app/store/collection"
	"github.com/lunicar/lunicar/internal/domain/models"
)

// Store persists contact form messages.
type Store struct {
	c *collection.Collection[models.ContactMessage]
}

// New creates a new message store.
func New(db *collection.DB) *Store {
	return &Store{c: collection.Open[models.ContactMessage](db, models.CollectionMessages)}
}

// Insert stores msg at the front of the collection, newest first.
func (s *Store) Insert(ctx context.Context, msg models.ContactMessage) error {
	return s.c.Update(ctx, func(all []models.ContactMessage) ([]models.ContactMessage, error) {
		return append([]models.ContactMessage{msg}, all...), nil
	})
}

// Count returns the number of stored messages.
func (s *Store) Count(ctx context.Context) (int, error) {
	return s.c.Count(ctx)
}

// CountUnread returns the number of messages not yet marked as read.
func (s *Store) CountUnread(ctx context.Context) (int, error) {
	all, err := s.c.All(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, m := range all {
		if !m.Lu {
			n++
		}
	}
	return n, nil
}
