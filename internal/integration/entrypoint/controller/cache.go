// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mca-analytics/backend/internal/application/adapter"
	domainerror "github.com/mca-analytics/backend/internal/domain/error"
	"github.com/mca-analytics/backend/internal/integration/entrypoint/dto"
	"github.com/mca-analytics/backend/internal/integration/persistence"
)

// CacheController handles snapshot cache management endpoints.
type CacheController struct {
	cache adapter.SnapshotCache
}

// NewCacheController creates a new cache controller instance.
func NewCacheController(cache adapter.SnapshotCache) *CacheController {
	return &CacheController{
		cache: cache,
	}
}

// InvalidateCache handles DELETE /cache requests.
// It drops every cached snapshot so the next request reloads from source.
func (c *CacheController) InvalidateCache(ctx *gin.Context) {
	if err := c.cache.Invalidate(ctx.Request.Context(), persistence.SnapshotCacheKeys...); err != nil {
		handleInternalError(ctx, string(domainerror.ErrCodeInternal))
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Snapshot cache invalidated"})
}
