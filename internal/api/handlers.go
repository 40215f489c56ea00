package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Version is reported by the health endpoints.
const Version = "v1.0.0"

// HealthCheck returns the health status of the API. check may be nil; when
// it fails the endpoint reports 503.
func HealthCheck(check func(context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			if err := check(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":  "unhealthy",
					"message": err.Error(),
					"version": Version,
				})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Receitas API is running",
			"version": Version,
		})
	}
}
