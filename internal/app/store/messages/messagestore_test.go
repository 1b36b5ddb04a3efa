package messagestore

import (
	"context"
	"testing"

	"github.com/lunicar/lunicar/internal/app/store/collection"
	"github.com/lunicar/lunicar/internal/domain/models"
)

func TestInsertAndCount(t *testing.T) {
	b, err := collection.NewFileBackend(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	s := New(collection.NewDB(b))
	ctx := context.Background()

	if err := s.Insert(ctx, models.ContactMessage{ID: "a", Nom: "Jean"}); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := s.Insert(ctx, models.ContactMessage{ID: "b", Nom: "Marie", Lu: true}); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	if n, _ := s.Count(ctx); n != 2 {
		t.Errorf("Count() = %d, want 2", n)
	}
	if n, _ := s.CountUnread(ctx); n != 1 {
		t.Errorf("CountUnread() = %d, want 1", n)
	}
	all, _ := s.c.All(ctx)
	if all[0].ID != "b" {
		t.Errorf("first message = %s, want b", all[0].ID)
	}
}
