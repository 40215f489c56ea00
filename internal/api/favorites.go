package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/receitas/backend/internal/model"
	"github.com/pageza/receitas/backend/internal/service"
)

type FavoritesHandler struct {
	favorites *service.Favorites
	source    service.RecipeSource
}

func NewFavoritesHandler(favorites *service.Favorites, source service.RecipeSource) *FavoritesHandler {
	return &FavoritesHandler{favorites: favorites, source: source}
}

func (h *FavoritesHandler) RegisterRoutes(router *gin.RouterGroup) {
	favorites := router.Group("/favorites")
	{
		favorites.GET("", h.ListFavorites)
		favorites.POST("", h.AddFavorite)
		favorites.GET("/:id", h.IsFavorite)
		favorites.DELETE("/:id", h.RemoveFavorite)
	}
}

func (h *FavoritesHandler) ListFavorites(c *gin.Context) {
	c.JSON(http.StatusOK, FavoritesResponse{Favorites: h.favorites.List()})
}

// AddFavorite accepts either a full recipe snapshot or just {"id": ...}, in
// which case the recipe is looked up and its current state snapshotted.
func (h *FavoritesHandler) AddFavorite(c *gin.Context) {
	var recipe model.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if recipe.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe id is required"})
		return
	}

	if recipe.Name == "" {
		found := h.source.LookupRecipe(c.Request.Context(), recipe.ID)
		if found == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		recipe = *found
	}

	if err := h.favorites.Add(c.Request.Context(), recipe); err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusCreated, FavoriteStatusResponse{ID: recipe.ID, Favorite: true})
}

func (h *FavoritesHandler) IsFavorite(c *gin.Context) {
	id := c.Param("id")
	c.JSON(http.StatusOK, FavoriteStatusResponse{ID: id, Favorite: h.favorites.IsFavorite(id)})
}

func (h *FavoritesHandler) RemoveFavorite(c *gin.Context) {
	id := c.Param("id")
	if err := h.favorites.Remove(c.Request.Context(), id); err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.Status(http.StatusNoContent)
}
