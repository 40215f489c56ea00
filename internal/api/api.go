package api

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/pageza/receitas/backend/internal/middleware"
	"github.com/pageza/receitas/backend/internal/service"
)

// Services bundles everything the HTTP API serves.
type Services struct {
	Source    service.RecipeSource
	Detail    *service.DetailAssembler
	Exporter  *service.Exporter
	Feed      *service.Feed
	Favorites *service.Favorites
	Locale    *service.LocaleStore

	// RateLimiter is optional and guards detail and export.
	RateLimiter *middleware.RateLimiter
	// Health is optional and backs the health endpoints.
	Health func(context.Context) error
}

// SetupAPI registers the health endpoints and the /api/v1 routes.
func SetupAPI(router *gin.Engine, svc Services) {
	// Health check endpoint
	router.GET("/health", HealthCheck(svc.Health))
	router.GET("/api/health", HealthCheck(svc.Health))

	var limit gin.HandlerFunc
	if svc.RateLimiter != nil {
		limit = svc.RateLimiter.RateLimitMiddleware()
	}

	v1 := router.Group("/api/v1")
	{
		// Initialize handlers
		recipeHandler := NewRecipeHandler(svc.Source, svc.Detail, svc.Exporter, svc.Locale)
		feedHandler := NewFeedHandler(svc.Feed)
		favoritesHandler := NewFavoritesHandler(svc.Favorites, svc.Source)
		localeHandler := NewLocaleHandler(svc.Locale)

		// Register routes
		recipeHandler.RegisterRoutes(v1, limit)
		feedHandler.RegisterRoutes(v1)
		favoritesHandler.RegisterRoutes(v1)
		localeHandler.RegisterRoutes(v1)
	}
}
