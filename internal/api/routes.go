package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware lets the storefront frontend at origin call the API.
func CORSMiddleware(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, DELETE, OPTIONS")

		// Preflight
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func SetupRouter(h *Handlers, allowedOrigin string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CORSMiddleware(allowedOrigin))

	v1 := router.Group("/v1")
	{
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		v1.GET("/search", h.Search)
		v1.GET("/search/suggestions", h.Suggestions)

		admin := v1.Group("/admin")
		{
			admin.GET("/search/top", h.TopQueries)
			admin.DELETE("/search/catalog-cache", h.InvalidateCatalogCache)
		}
	}

	return router
}
