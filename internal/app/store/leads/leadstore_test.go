package leadstore

import (
	"context"
	"sync"
	"testing"

	"github.com/lunicar/lunicar/internal/app/store/collection"
	"github.com/lunicar/lunicar/internal/domain/models"
	"github.com/lunicar/lunicar/internal/testutil"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	b, err := collection.NewFileBackend(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return New(collection.NewDB(b))
}

func TestInsert_NewestFirst(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	_ = s.Insert(ctx, models.Lead{ID: "1", Statut: models.LeadStatusNew})
	_ = s.Insert(ctx, models.Lead{ID: "2", Statut: "traitee"})

	all, err := s.c.All(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[0].ID != "2" {
		t.Errorf("stored leads = %+v, want newest first", all)
	}

	if n, _ := s.CountNew(ctx); n != 1 {
		t.Errorf("CountNew() = %d, want 1", n)
	}
}

func insertConcurrently(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.Insert(ctx, models.Lead{Statut: models.LeadStatusNew}); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	if n, _ := s.Count(ctx); n != 25 {
		t.Errorf("Count() = %d, want 25", n)
	}
}

func TestInsert_Concurrent(t *testing.T) {
	insertConcurrently(t, newStore(t))
}

func TestInsert_ConcurrentMongo(t *testing.T) {
	insertConcurrently(t, New(testutil.NewMongoDB(t)))
}
