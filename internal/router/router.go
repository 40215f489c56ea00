package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/pageza/receitas/backend/internal/api"
	"github.com/pageza/receitas/backend/internal/middleware"
)

// SetupRouter configures the middleware chain and the application routes
func SetupRouter(log *slog.Logger, corsOrigins []string, svc api.Services) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.ErrorHandler(log))

	// CORS middleware
	router.Use(middleware.CORS(corsOrigins))

	api.SetupAPI(router, svc)

	return router
}
