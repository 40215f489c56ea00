package service

import (
	"context"
	"time"

	"github.com/pageza/receitas/backend/internal/model"
)

// RecipeSource is the recipe API as seen by the services. Implementations
// swallow their own failures and return empty results instead.
type RecipeSource interface {
	FetchRecipes(ctx context.Context, mode model.SearchMode, query string) []model.Recipe
	LookupRecipe(ctx context.Context, id string) *model.Recipe
	Categories(ctx context.Context) []model.Category
}

// Persistence is a single persisted value, the equivalent of one local
// storage key. Load returns model.ErrNotFound when nothing was saved yet.
type Persistence[T any] interface {
	Load(ctx context.Context) (T, error)
	Save(ctx context.Context, value T) error
}

// ObjectStore holds exported recipe documents.
type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// Persistence keys, kept identical to the browser storage keys.
const (
	FavoritesKey = "recipe-favorites-storage"
	LocaleKey    = "recipe-language-storage"
)
