package main

import (
	"net/http"
	"time"

	"cart-service/internal/auth"
	"cart-service/internal/cache"
	"cart-service/internal/cart"
	"cart-service/internal/events"
	"cart-service/internal/handlers"
	"cart-service/internal/repository"
	"cart-service/pkg/logger"
	"cart-service/pkg/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// dependencies are the collaborators the HTTP layer is built from
type dependencies struct {
	logger     *zap.Logger
	jwtManager *auth.JWTManager
	catalog    repository.InventoryRepository
	cartStore  cart.Store
	publisher  events.EventPublisher
	// sharedCache holds idempotency records
	sharedCache cache.Cache
	// listingCache is nil when USE_CACHE is off
	listingCache    cache.Cache
	listingCacheTTL time.Duration
}

func newRouter(deps dependencies) *gin.Engine {
	router := gin.New()

	// CORS first so preflight requests short-circuit
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RecoveryHandler(deps.logger))
	router.Use(logger.GinMiddleware(deps.logger))
	router.Use(middleware.RequestIDMiddleware(deps.logger))
	router.Use(middleware.ErrorHandler(deps.logger))

	authHandler := auth.NewAuthHandler(deps.jwtManager, deps.logger)
	storeHandler := handlers.NewStoreHandler(deps.logger, deps.catalog, deps.listingCache, deps.listingCacheTTL)
	cartService := cart.NewService(deps.catalog, deps.cartStore, deps.publisher, deps.logger)
	cartHandler := handlers.NewCartHandler(deps.logger, cartService)

	requestIDStore := middleware.NewCacheRequestIDStore(deps.sharedCache)

	router.GET("/health", healthCheck)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.POST("/auth/login", authHandler.Login)
	router.GET("/view/store", storeHandler.ViewStore)

	cartRoutes := router.Group("/cart")
	cartRoutes.Use(middleware.AuthMiddleware(deps.jwtManager, deps.logger))
	cartRoutes.Use(middleware.IdempotencyMiddleware(requestIDStore, deps.logger))
	cartRoutes.Use(middleware.StoreResponseMiddleware(requestIDStore, deps.logger, middleware.DefaultIdempotencyTTL))
	{
		cartRoutes.POST("/add/:id", cartHandler.AddToCart)
		cartRoutes.GET("/view", cartHandler.ViewCart)
		cartRoutes.DELETE("/delete/:id", cartHandler.RemoveFromCart)
	}

	return router
}

// healthCheck godoc
// @Summary      Health check endpoint
// @Description  Reports that the service is up
// @Tags         health
// @Produce      json
// @Success      200  {object}  handlers.HealthResponse
// @Router       /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, handlers.HealthResponse{
		Status:  "ok",
		Service: "cart-service",
	})
}
