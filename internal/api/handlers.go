package api

import (
	"context"
	"net/http"
	"strconv"

	"storefront/search/internal/client"
	"storefront/search/internal/domain"
	"storefront/search/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const (
	defaultTopLimit = 20
	maxTopLimit     = 100
)

// Searcher is the part of service.Service the HTTP layer needs.
type Searcher interface {
	Search(ctx context.Context, query string) (*service.SearchResult, error)
	Suggest(ctx context.Context, partial string) ([]domain.Suggestion, error)
	TopQueries(ctx context.Context, limit int) ([]domain.QueryStat, error)
}

// CatalogCache drops cached product lists so the next search refetches them.
type CatalogCache interface {
	Invalidate(ctx context.Context, filter client.ProductFilter) error
}

// Handlers holds the dependencies of the HTTP handlers.
type Handlers struct {
	Searcher Searcher
	Cache    CatalogCache
}

// Search handles GET /v1/search?q=...
func (h *Handlers) Search(c *gin.Context) {
	result, err := h.Searcher.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		log.Errorf("❌ Search failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Suggestions handles GET /v1/search/suggestions?q=...
func (h *Handlers) Suggestions(c *gin.Context) {
	suggestions, err := h.Searcher.Suggest(c.Request.Context(), c.Query("q"))
	if err != nil {
		log.Errorf("❌ Suggestions failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "suggestions failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// TopQueries handles GET /v1/admin/search/top?limit=...
func (h *Handlers) TopQueries(c *gin.Context) {
	limit := defaultTopLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxTopLimit)
	}

	stats, err := h.Searcher.TopQueries(c.Request.Context(), limit)
	if err != nil {
		log.Errorf("❌ Top queries failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load top queries"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"queries": stats})
}

// InvalidateCatalogCache handles DELETE /v1/admin/search/catalog-cache
func (h *Handlers) InvalidateCatalogCache(c *gin.Context) {
	if err := h.Cache.Invalidate(c.Request.Context(), client.ProductFilter{}); err != nil {
		log.Errorf("❌ Catalog cache invalidation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not invalidate catalog cache"})
		return
	}

	log.Info("🧹 Catalog cache invalidated")
	c.Status(http.StatusNoContent)
}
