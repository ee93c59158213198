package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/brightprep/studycal-api/internal/dto"
	"github.com/brightprep/studycal-api/internal/middleware"
	"github.com/brightprep/studycal-api/pkg/response"
)

type catalogService interface {
	Catalog(examType string) (*dto.CatalogResponse, error)
	ExamTypes() []string
}

type catalogCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// CatalogHandler exposes the static exam catalogs. Catalogs change only at
// deploy time, so responses are cached aggressively.
type CatalogHandler struct {
	service  catalogService
	cache    catalogCache
	cacheTTL time.Duration
}

// NewCatalogHandler builds the handler.
func NewCatalogHandler(service catalogService, cache catalogCache, cacheTTL time.Duration) *CatalogHandler {
	return &CatalogHandler{service: service, cache: cache, cacheTTL: cacheTTL}
}

// List godoc
// @Summary List supported exam types
// @Tags Catalogs
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /catalogs [get]
func (h *CatalogHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, gin.H{"examTypes": h.service.ExamTypes()}, nil)
}

// Get godoc
// @Summary Get the subject catalog for an exam type
// @Tags Catalogs
// @Produce json
// @Param examType path string true "Exam type tag"
// @Success 200 {object} response.Envelope
// @Router /catalogs/{examType} [get]
func (h *CatalogHandler) Get(c *gin.Context) {
	examType := c.Param("examType")
	key := fmt.Sprintf("catalog:%s", examType)

	if h.cache != nil {
		var cached dto.CatalogResponse
		if hit, _ := h.cache.Get(c.Request.Context(), key, &cached); hit {
			middleware.SetCacheHit(c, true)
			response.JSON(c, http.StatusOK, cached, nil, middleware.ExtractMeta(c))
			return
		}
	}

	catalog, err := h.service.Catalog(examType)
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.cache != nil {
		_ = h.cache.Set(c.Request.Context(), key, catalog, h.cacheTTL)
		middleware.SetCacheHit(c, false)
	}
	response.JSON(c, http.StatusOK, catalog, nil, middleware.ExtractMeta(c))
}
