package handlers

import (
	"errors"
	"net/http"
	"time"

	"cart-service/internal/cache"
	"cart-service/internal/models"
	"cart-service/internal/repository"
	apperrors "cart-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type StoreHandler struct {
	logger     *zap.Logger
	repository repository.InventoryRepository
	cache      cache.Cache
	cacheTTL   time.Duration
}

// NewStoreHandler creates the storefront handler. A nil cache disables listing caching.
func NewStoreHandler(logger *zap.Logger, repo repository.InventoryRepository, c cache.Cache, cacheTTL time.Duration) *StoreHandler {
	return &StoreHandler{
		logger:     logger,
		repository: repo,
		cache:      c,
		cacheTTL:   cacheTTL,
	}
}

// ViewStore handles GET /view/store
// @Summary      View store
// @Description  Lista todos los items del catálogo con su precio y disponibilidad. Se sirve desde cache cuando USE_CACHE está habilitado.
// @Tags         store
// @Produce      json
// @Param        X-Request-ID  header    string  false  "Request ID for request tracking"
// @Success      200  {array}   StoreItemResponse
// @Failure      404  {object}  errors.StandardError  "Catalog is empty"
// @Failure      500  {object}  errors.StandardError  "Catalog query failed"
// @Router       /view/store [get]
func (h *StoreHandler) ViewStore(c *gin.Context) {
	ctx := c.Request.Context()

	if h.cache != nil {
		var cached []StoreItemResponse
		err := cache.GetJSON(ctx, h.cache, cache.StoreItemsKey, &cached)
		if err == nil && len(cached) > 0 {
			h.logger.Debug("Cache hit", zap.String("key", cache.StoreItemsKey))
			c.JSON(http.StatusOK, cached)
			return
		}
		if err != nil && !errors.Is(err, cache.ErrCacheMiss) {
			h.logger.Warn("Store listing cache read failed", zap.Error(err))
		}
	}

	items, err := h.repository.ListItems(ctx)
	if err != nil {
		c.Error(apperrors.NewDatabaseError("list items", err))
		return
	}
	if len(items) == 0 {
		c.Error(apperrors.NewStoreEmpty())
		return
	}

	response := toStoreItems(items)

	if h.cache != nil {
		if err := cache.SetJSON(ctx, h.cache, cache.StoreItemsKey, response, h.cacheTTL); err != nil {
			h.logger.Warn("Failed to cache store listing", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, response)
}

func toStoreItems(items []models.Item) []StoreItemResponse {
	response := make([]StoreItemResponse, len(items))
	for i, item := range items {
		response[i] = StoreItemResponse{
			Name:    item.Name,
			Price:   item.Price.Display(),
			InStock: item.InStock,
		}
	}
	return response
}
