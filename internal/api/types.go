package api

import (
	"github.com/pageza/receitas/backend/internal/model"
)

// RecipesResponse wraps a recipe listing.
type RecipesResponse struct {
	Mode    model.SearchMode `json:"mode"`
	Query   string           `json:"query,omitempty"`
	Recipes []model.Recipe   `json:"recipes"`
}

// CategoriesResponse wraps the category listing.
type CategoriesResponse struct {
	Categories []model.Category `json:"categories"`
}

// FavoritesResponse wraps the favorites list.
type FavoritesResponse struct {
	Favorites []model.Recipe `json:"favorites"`
}

// FavoriteStatusResponse answers whether a recipe is a favorite.
type FavoriteStatusResponse struct {
	ID       string `json:"id"`
	Favorite bool   `json:"favorite"`
}

// LocaleRequest sets the active locale.
type LocaleRequest struct {
	Locale string `json:"locale" binding:"required"`
}

// LocaleResponse reports the active locale.
type LocaleResponse struct {
	Locale    model.Locale   `json:"locale"`
	Supported []model.Locale `json:"supported"`
}
