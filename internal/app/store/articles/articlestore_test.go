package articlestore

import (
	"context"
	"errors"
	"testing"

	"github.com/lunicar/lunicar/internal/app/store/collection"
	"github.com/lunicar/lunicar/internal/domain/models"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	b, err := collection.NewFileBackend(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return New(collection.NewDB(b))
}

func art(slug, cat string) models.Article {
	return models.Article{Slug: slug, Titre: slug, Categorie: cat, CategorieSlug: cat}
}

func TestCreate_NewestFirst(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	if err := s.Create(ctx, art("premier", "conseils")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := s.Create(ctx, art("second", "conseils")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	all, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 2 || all[0].Slug != "second" {
		t.Errorf("List() order = %v, want newest first", []string{all[0].Slug, all[1].Slug})
	}
}

func TestCreate_DuplicateSlug(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	_ = s.Create(ctx, art("vendre-sa-voiture", "conseils"))

	err := s.Create(ctx, art("vendre-sa-voiture", "autre"))
	if !errors.Is(err, ErrSlugExists) {
		t.Fatalf("Create() error = %v, want ErrSlugExists", err)
	}
	if n, _ := s.Count(ctx); n != 1 {
		t.Errorf("Count() = %d, want 1", n)
	}
}

func TestGetBySlug(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	_ = s.Create(ctx, art("a", "x"))

	got, err := s.GetBySlug(ctx, "a")
	if err != nil || got.Slug != "a" {
		t.Errorf("GetBySlug(a) = %v, %v", got.Slug, err)
	}
	if _, err := s.GetBySlug(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetBySlug(missing) error = %v, want ErrNotFound", err)
	}
}

func TestUpdate_KeepsSlugAndPosition(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	_ = s.Create(ctx, art("a", "x"))
	_ = s.Create(ctx, art("b", "x"))

	got, err := s.Update(ctx, "a", func(a *models.Article) {
		a.Titre = "Nouveau titre"
		a.Slug = "ignored"
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got.Slug != "a" || got.Titre != "Nouveau titre" {
		t.Errorf("Update() = %+v", got)
	}

	all, _ := s.List(ctx)
	if all[1].Slug != "a" || all[1].Titre != "Nouveau titre" {
		t.Errorf("stored article = %+v", all[1])
	}

	if _, err := s.Update(ctx, "missing", func(*models.Article) {}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update(missing) error = %v", err)
	}
}

func TestDelete(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	_ = s.Create(ctx, art("a", "x"))
	_ = s.Create(ctx, art("b", "x"))

	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	all, _ := s.List(ctx)
	if len(all) != 1 || all[0].Slug != "b" {
		t.Errorf("List() after delete = %+v", all)
	}
	if err := s.Delete(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() twice error = %v, want ErrNotFound", err)
	}
}

func TestCategories(t *testing.T) {
	all := []models.Article{art("1", "conseils"), art("2", "marche"), art("3", "conseils")}
	got := Categories(all)
	if len(got) != 2 {
		t.Fatalf("Categories() = %+v", got)
	}
	if got[0].Slug != "conseils" || got[0].Count != 2 || got[1].Slug != "marche" {
		t.Errorf("Categories() = %+v", got)
	}
}

func TestFilterByCategory(t *testing.T) {
	all := []models.Article{
		{Slug: "1", Categorie: "Conseils", CategorieSlug: "conseils"},
		{Slug: "2", Categorie: "Marché", CategorieSlug: "marche"},
	}

	if got := FilterByCategory(all, ""); len(got) != 2 {
		t.Errorf("empty filter kept %d", len(got))
	}
	if got := FilterByCategory(all, "all"); len(got) != 2 {
		t.Errorf("all filter kept %d", len(got))
	}
	if got := FilterByCategory(all, "conseils"); len(got) != 1 || got[0].Slug != "1" {
		t.Errorf("slug filter = %+v", got)
	}
	if got := FilterByCategory(all, "CONSEILS"); len(got) != 1 {
		t.Errorf("case-insensitive filter kept %d", len(got))
	}
	if got := FilterByCategory(all, "inconnue"); len(got) != 0 {
		t.Errorf("unknown filter kept %d", len(got))
	}
}

func TestRelated(t *testing.T) {
	all := []models.Article{
		art("cur", "a"), art("same1", "a"), art("other1", "b"),
		art("same2", "a"), art("other2", "b"),
	}
	got := Related(all, all[0], 3)
	want := []string{"same1", "same2", "other1"}
	if len(got) != 3 {
		t.Fatalf("Related() len = %d", len(got))
	}
	for i, w := range want {
		if got[i].Slug != w {
			t.Errorf("Related()[%d] = %s, want %s", i, got[i].Slug, w)
		}
	}
}

func TestPage(t *testing.T) {
	var all []models.Article
	for i := 0; i < 23; i++ {
		all = append(all, art(string(rune('a'+i)), "x"))
	}

	items, page, pages := Page(all, 3, 10)
	if len(items) != 3 || page != 3 || pages != 3 {
		t.Errorf("Page(3) = %d items, page %d of %d", len(items), page, pages)
	}
	_, page, _ = Page(all, 99, 10)
	if page != 3 {
		t.Errorf("Page(99) clamped to %d, want 3", page)
	}
	_, page, _ = Page(all, 0, 10)
	if page != 1 {
		t.Errorf("Page(0) clamped to %d, want 1", page)
	}
	items, page, pages = Page(nil, 1, 10)
	if len(items) != 0 || page != 1 || pages != 1 {
		t.Errorf("Page(empty) = %d, %d, %d", len(items), page, pages)
	}
}
