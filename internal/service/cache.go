package service

import (
	"context"
	"sync"

	"github.com/pfennig/pfennig/internal/database/repository"
)

// CategoryCache is an explicit cache over the category list. Ingest and
// backfill read the full list once per batch through it; any mutation
// of categories or their pattern sets must call Invalidate.
type CategoryCache struct {
	Repo *repository.CategoryRepo

	mu   sync.Mutex
	cats []repository.Category
}

// Categories returns the cached category list in match order, loading
// it on first use.
func (c *CategoryCache) Categories(ctx context.Context) ([]repository.Category, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cats != nil {
		return c.cats, nil
	}
	cats, err := c.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if cats == nil {
		cats = []repository.Category{}
	}
	c.cats = cats
	return cats, nil
}

// Invalidate drops the cached list; the next read hits the store.
func (c *CategoryCache) Invalidate() {
	c.mu.Lock()
	c.cats = nil
	c.mu.Unlock()
}
