package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/receitas/backend/internal/model"
	"github.com/pageza/receitas/backend/internal/service"
)

type RecipeHandler struct {
	source   service.RecipeSource
	detail   *service.DetailAssembler
	exporter *service.Exporter
	locale   *service.LocaleStore
}

func NewRecipeHandler(source service.RecipeSource, detail *service.DetailAssembler, exporter *service.Exporter, locale *service.LocaleStore) *RecipeHandler {
	return &RecipeHandler{
		source:   source,
		detail:   detail,
		exporter: exporter,
		locale:   locale,
	}
}

// RegisterRoutes mounts the recipe routes. Detail and export fan out to the
// translation API and go through limit when one is given.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup, limit gin.HandlerFunc) {
	heavy := []gin.HandlerFunc{}
	if limit != nil {
		heavy = append(heavy, limit)
	}

	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", append(heavy, h.GetRecipe)...)
		recipes.GET("/:id/export", append(heavy, h.ExportRecipe)...)
	}
	router.GET("/categories", h.ListCategories)
}

// ListRecipes queries the recipe API directly. Without a mode, a query
// means free text search and no query means random recipes.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	mode := model.SearchMode(c.Query("mode"))
	if mode == "" {
		mode = model.ModeRandom
		if query != "" {
			mode = model.ModeSearch
		}
	}
	if !mode.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown mode %q", mode)})
		return
	}

	c.JSON(http.StatusOK, RecipesResponse{
		Mode:    mode,
		Query:   query,
		Recipes: h.source.FetchRecipes(c.Request.Context(), mode, query),
	})
}

// GetRecipe returns the recipe translated into ?locale= or the stored locale.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	locale, ok := h.requestLocale(c)
	if !ok {
		return
	}

	recipe := h.detail.AssembleDetail(c.Request.Context(), c.Param("id"), locale)
	if recipe == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// ExportRecipe returns a download link when the document was uploaded and
// the Markdown document itself otherwise.
func (h *RecipeHandler) ExportRecipe(c *gin.Context) {
	locale, ok := h.requestLocale(c)
	if !ok {
		return
	}

	res, err := h.exporter.Export(c.Request.Context(), c.Param("id"), locale)
	if errors.Is(err, model.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}
	if err != nil {
		_ = c.AbortWithError(http.StatusBadGateway, err)
		return
	}

	if res.URL != "" {
		c.JSON(http.StatusOK, res)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
	c.Data(http.StatusOK, res.ContentType, res.Body)
}

func (h *RecipeHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, CategoriesResponse{Categories: h.source.Categories(c.Request.Context())})
}

// requestLocale resolves ?locale=, writing a 400 when it is unsupported.
func (h *RecipeHandler) requestLocale(c *gin.Context) (model.Locale, bool) {
	raw := c.Query("locale")
	if raw == "" {
		return h.locale.Get(), true
	}
	locale, err := model.ParseLocale(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return locale, true
}
