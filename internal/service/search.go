package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/pageza/receitas/backend/internal/model"
)

// ActionKind is the kind of user interaction that drives a listing.
type ActionKind string

const (
	ActionSearch     ActionKind = "search"
	ActionCategory   ActionKind = "category"
	ActionIngredient ActionKind = "ingredient"
	ActionRandom     ActionKind = "random"
)

// Action is one user interaction: free text search, a category tap (an
// empty Query deselects), ingredient text, or a request for random recipes.
type Action struct {
	Kind  ActionKind `json:"kind"`
	Query string     `json:"query,omitempty"`
}

// Resolve maps an action onto the fetch mode and query it triggers. ok is
// false when the action should not fetch anything.
func Resolve(a Action) (mode model.SearchMode, query string, ok bool) {
	switch a.Kind {
	case ActionSearch:
		return model.ModeSearch, strings.TrimSpace(a.Query), true
	case ActionCategory:
		q := strings.TrimSpace(a.Query)
		if q == "" {
			return model.ModeRandom, "", true
		}
		return model.ModeCategory, q, true
	case ActionIngredient:
		q := strings.TrimSpace(a.Query)
		if q == "" {
			return "", "", false
		}
		return model.ModeIngredient, q, true
	case ActionRandom:
		return model.ModeRandom, "", true
	}
	return "", "", false
}

// Search dispatches actions to the recipe source.
type Search struct {
	source RecipeSource
	log    *slog.Logger
}

// NewSearch creates a Search.
func NewSearch(source RecipeSource, logger *slog.Logger) *Search {
	return &Search{source: source, log: logger}
}

// Dispatch performs the single fetch an action maps to. ok is false when the
// action was ignored.
func (s *Search) Dispatch(ctx context.Context, a Action) (recipes []model.Recipe, ok bool) {
	mode, query, ok := Resolve(a)
	if !ok {
		s.log.Debug("action ignored", "kind", a.Kind)
		return nil, false
	}
	return s.source.FetchRecipes(ctx, mode, query), true
}

// FeedState is a snapshot of the displayed listing.
type FeedState struct {
	Action   Action         `json:"action"`
	Recipes  []model.Recipe `json:"recipes"`
	InFlight int            `json:"in_flight"`
}

// Feed holds the currently displayed listing. Loads are never cancelled;
// whichever load finishes last decides what is displayed.
type Feed struct {
	search *Search

	mu       sync.RWMutex
	action   Action
	recipes  []model.Recipe
	inFlight int
}

// NewFeed creates an empty feed.
func NewFeed(search *Search) *Feed {
	return &Feed{search: search, recipes: []model.Recipe{}}
}

// Load dispatches a and, once it resolves, displays its result. It returns
// the result of this load, which is not necessarily what ends up displayed.
// A load whose ctx ended before it resolved leaves the display unchanged.
func (f *Feed) Load(ctx context.Context, a Action) []model.Recipe {
	if _, _, ok := Resolve(a); !ok {
		return f.Current().Recipes
	}

	f.mu.Lock()
	f.inFlight++
	f.mu.Unlock()

	recipes, _ := f.search.Dispatch(ctx, a)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight--
	if ctx.Err() != nil {
		return recipes
	}
	f.action = a
	f.recipes = recipes
	return recipes
}

// Current returns the displayed listing.
func (f *Feed) Current() FeedState {
	f.mu.RLock()
	defer f.mu.RUnlock()

	recipes := make([]model.Recipe, len(f.recipes))
	copy(recipes, f.recipes)
	return FeedState{Action: f.action, Recipes: recipes, InFlight: f.inFlight}
}
