// internal/app/store/articles/articlestore.go
package articlestore

import (
	"context"
	"errors"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/lunicar/lunicar/internal/app/store/collection"
	"github.com/lunicar/lunicar/internal/domain/models"
)

var (
	// ErrNotFound is returned when no article has the requested slug.
	ErrNotFound = errors.New("article not found")
	// ErrSlugExists is returned when creating an article whose slug is taken.
	ErrSlugExists = errors.New("article slug already exists")
)

// Store provides access to the articles collection, most recent first.
type Store struct {
	c *collection.Collection[models.Article]
}

// New creates a new article store.
func New(db *collection.DB) *Store {
	return &Store{c: collection.Open[models.Article](db, models.CollectionArticles)}
}

// List returns all articles in stored order (newest first).
func (s *Store) List(ctx context.Context) ([]models.Article, error) {
	return s.c.All(ctx)
}

// GetBySlug returns the article with the given slug.
func (s *Store) GetBySlug(ctx context.Context, slug string) (models.Article, error) {
	all, err := s.c.All(ctx)
	if err != nil {
		return models.Article{}, err
	}
	for _, a := range all {
		if a.Slug == slug {
			return a, nil
		}
	}
	return models.Article{}, ErrNotFound
}

// Create prepends a to the collection. It fails with ErrSlugExists when
// another article already uses a.Slug.
func (s *Store) Create(ctx context.Context, a models.Article) error {
	return s.c.Update(ctx, func(all []models.Article) ([]models.Article, error) {
		for _, existing := range all {
			if existing.Slug == a.Slug {
				return nil, ErrSlugExists
			}
		}
		return append([]models.Article{a}, all...), nil
	})
}

// Update applies fn to the article with the given slug and saves the
// result in place. The slug itself is never changed.
func (s *Store) Update(ctx context.Context, slug string, fn func(a *models.Article)) (models.Article, error) {
	var updated models.Article
	err := s.c.Update(ctx, func(all []models.Article) ([]models.Article, error) {
		for i := range all {
			if all[i].Slug != slug {
				continue
			}
			fn(&all[i])
			all[i].Slug = slug
			updated = all[i]
			return all, nil
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return models.Article{}, err
	}
	return updated, nil
}

// Delete removes the article with the given slug.
func (s *Store) Delete(ctx context.Context, slug string) error {
	return s.c.Update(ctx, func(all []models.Article) ([]models.Article, error) {
		out := all[:0]
		for _, a := range all {
			if a.Slug != slug {
				out = append(out, a)
			}
		}
		if len(out) == len(all) {
			return nil, ErrNotFound
		}
		return out, nil
	})
}

// Count returns the number of articles.
func (s *Store) Count(ctx context.Context) (int, error) {
	return s.c.Count(ctx)
}

// Replace overwrites the whole collection (used by seeding).
func (s *Store) Replace(ctx context.Context, all []models.Article) error {
	return s.c.Replace(ctx, all)
}

// Category summarizes one article category.
type Category struct {
	Name  string
	Slug  string
	Count int
}

// Categories lists distinct categories in order of first appearance.
func Categories(all []models.Article) []Category {
	var out []Category
	index := make(map[string]int)
	for _, a := range all {
		if i, ok := index[a.CategorieSlug]; ok {
			out[i].Count++
			continue
		}
		index[a.CategorieSlug] = len(out)
		out = append(out, Category{Name: a.Categorie, Slug: a.CategorieSlug, Count: 1})
	}
	return out
}

// FilterByCategory keeps articles whose category slug or category name
// matches cat, ignoring case. An empty cat or "all" keeps everything.
func FilterByCategory(all []models.Article, cat string) []models.Article {
	if cat == "" || cat == "all" {
		return all
	}
	want := text.Fold(cat)
	var out []models.Article
	for _, a := range all {
		if text.Fold(a.CategorieSlug) == want || text.Fold(a.Categorie) == want {
			out = append(out, a)
		}
	}
	return out
}

// Related returns up to n articles for the "read also" block: same category
// first, then other articles, never the current one.
func Related(all []models.Article, current models.Article, n int) []models.Article {
	var same, others []models.Article
	for _, a := range all {
		if a.Slug == current.Slug {
			continue
		}
		if a.CategorieSlug == current.CategorieSlug {
			same = append(same, a)
		} else {
			others = append(others, a)
		}
	}
	out := append(same, others...)
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// Page returns the 1-based page of size per from all, and the page count.
// Out of range pages are clamped.
func Page(all []models.Article, page, per int) ([]models.Article, int, int) {
	if per <= 0 {
		per = 10
	}
	pages := (len(all) + per - 1) / per
	if pages == 0 {
		return nil, 1, 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}
	start := (page - 1) * per
	end := start + per
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], page, pages
}
