package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pageza/receitas/backend/internal/model"
)

// Favorites is the ordered set of saved recipe snapshots. Every mutation is
// written through to the persistence port before returning.
type Favorites struct {
	mu    sync.RWMutex
	items []model.Recipe
	port  Persistence[[]model.Recipe]
	log   *slog.Logger
}

// NewFavorites loads the persisted favorites. A missing or unreadable value
// starts the store empty.
func NewFavorites(ctx context.Context, port Persistence[[]model.Recipe], logger *slog.Logger) *Favorites {
	f := &Favorites{port: port, log: logger}

	items, err := port.Load(ctx)
	switch {
	case errors.Is(err, model.ErrNotFound):
	case err != nil:
		logger.Warn("failed to load favorites, starting empty", "error", err)
	default:
		f.items = dedupe(items)
	}
	return f
}

// Add saves a snapshot of recipe. Adding an ID that is already present is a no-op.
func (f *Favorites) Add(ctx context.Context, recipe model.Recipe) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.indexOf(recipe.ID) >= 0 {
		return nil
	}
	f.items = append(f.items, recipe)
	return f.persist(ctx)
}

// Remove deletes the favorite with the given ID, if any.
func (f *Favorites) Remove(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.indexOf(id)
	if i < 0 {
		return nil
	}
	f.items = append(f.items[:i:i], f.items[i+1:]...)
	return f.persist(ctx)
}

// IsFavorite reports whether a recipe with the given ID is saved.
func (f *Favorites) IsFavorite(id string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.indexOf(id) >= 0
}

// List returns the favorites in insertion order.
func (f *Favorites) List() []model.Recipe {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]model.Recipe, len(f.items))
	copy(out, f.items)
	return out
}

func (f *Favorites) indexOf(id string) int {
	for i := range f.items {
		if f.items[i].ID == id {
			return i
		}
	}
	return -1
}

// persist must be called with f.mu held.
func (f *Favorites) persist(ctx context.Context) error {
	snapshot := make([]model.Recipe, len(f.items))
	copy(snapshot, f.items)
	if err := f.port.Save(ctx, snapshot); err != nil {
		f.log.Error("failed to persist favorites", "count", len(snapshot), "error", err)
		return fmt.Errorf("persist favorites: %w", err)
	}
	return nil
}

func dedupe(items []model.Recipe) []model.Recipe {
	seen := make(map[string]struct{}, len(items))
	out := make([]model.Recipe, 0, len(items))
	for _, r := range items {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out
}
