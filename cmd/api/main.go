package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cart-service/internal/auth"
	"cart-service/internal/cache"
	"cart-service/internal/cart"
	"cart-service/internal/config"
	"cart-service/internal/events"
	"cart-service/internal/kafka"
	"cart-service/internal/repository"
	"cart-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "cart-service/docs" // Import docs for Swagger
)

// @title           Cart Service API
// @version         1.0
// @description     API del carrito de compras: listado de la tienda y carritos por usuario en Redis, sobre un catálogo de inventario en SQLite.

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8082
// @BasePath  /

// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	appLogger := logger.New(cfg.Environment)
	defer appLogger.Sync()

	appLogger.Info("Starting Cart Service",
		zap.String("environment", cfg.Environment),
		zap.String("port", cfg.Port),
		zap.Duration("cart_ttl", cfg.CartExpiry()),
		zap.Int("cart_max_retries", cfg.CartMaxRetries),
		zap.Duration("token_lifetime", cfg.TokenLifetime()),
		zap.Bool("use_cache", cfg.UseCache),
		zap.Bool("use_kafka", cfg.UseKafka),
	)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis backs carts, idempotency records and the listing cache.
	// Without it everything falls back to process memory.
	var sharedCache cache.Cache
	var cartStore cart.Store
	redisClient, err := cache.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Warn("Redis unavailable, using in-memory cart store and cache",
			zap.String("host", cfg.RedisHost),
			zap.String("port", cfg.RedisPort),
			zap.Error(err),
		)
		sharedCache = cache.NewInMemoryCache(appLogger)
		cartStore = cart.NewInMemoryStore(cfg.CartExpiry())
	} else {
		defer redisClient.Close()
		sharedCache = cache.NewRedisCache(redisClient, appLogger)
		cartStore = cart.NewRedisStore(redisClient, cfg.CartExpiry(), cfg.CartMaxRetries, appLogger)
	}

	catalog, closeCatalog := newCatalog(cfg, appLogger)
	defer closeCatalog()

	publisher := newPublisher(cfg, appLogger)

	var listingCache cache.Cache
	if cfg.UseCache {
		listingCache = sharedCache
	}

	if cfg.UseKafka && cfg.UseCache {
		startConsumer(ctx, cfg, sharedCache, appLogger)
	} else {
		appLogger.Info("Skipping Kafka consumer",
			zap.Bool("use_kafka", cfg.UseKafka),
			zap.Bool("use_cache", cfg.UseCache),
		)
	}

	router := newRouter(dependencies{
		logger:          appLogger,
		jwtManager:      auth.NewJWTManager(cfg.JWTSecret, cfg.TokenLifetime(), appLogger),
		catalog:         catalog,
		cartStore:       cartStore,
		publisher:       publisher,
		sharedCache:     sharedCache,
		listingCache:    listingCache,
		listingCacheTTL: cache.TTL(cfg.CacheTTL),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Starting HTTP server",
			zap.String("address", ":"+cfg.Port),
			zap.String("swagger_url", "http://localhost:"+cfg.Port+"/swagger/index.html"),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	if closer, ok := publisher.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			appLogger.Warn("Failed to close event publisher", zap.Error(err))
		}
	}

	appLogger.Info("Server exited")
}

// newCatalog opens the SQLite catalog, or an in-memory demo catalog when SQLITE_PATH is empty
func newCatalog(cfg *config.Config, log *zap.Logger) (repository.InventoryRepository, func()) {
	if cfg.SQLitePath == "" {
		log.Warn("Using in-memory catalog (SQLITE_PATH is empty)")
		repo := repository.NewInMemoryInventoryRepository()
		if err := repository.Seed(context.Background(), repo, repository.SampleCatalog()); err != nil {
			log.Fatal("Failed to seed in-memory catalog", zap.Error(err))
		}
		return repo, func() {}
	}

	log.Info("Initializing SQLite catalog", zap.String("path", cfg.SQLitePath))
	repo, err := repository.NewSQLiteInventoryRepository(cfg.SQLitePath)
	if err != nil {
		log.Fatal("Failed to open SQLite catalog", zap.Error(err))
	}
	return repo, func() {
		if err := repo.Close(); err != nil {
			log.Warn("Failed to close SQLite catalog", zap.Error(err))
		}
	}
}

func newPublisher(cfg *config.Config, log *zap.Logger) events.EventPublisher {
	if !cfg.UseKafka {
		log.Info("Kafka disabled, cart events are only logged")
		return events.NewLogEventPublisher(log)
	}

	publisher, err := events.NewKafkaEventPublisher(cfg, log)
	if err != nil {
		log.Warn("Failed to create Kafka publisher, cart events are only logged", zap.Error(err))
		return events.NewLogEventPublisher(log)
	}

	log.Info("Kafka publisher initialized",
		zap.Strings("brokers", cfg.KafkaBrokers),
		zap.String("topic", cfg.KafkaTopicCart),
	)
	return publisher
}

func startConsumer(ctx context.Context, cfg *config.Config, c cache.Cache, log *zap.Logger) {
	consumer, err := kafka.NewConsumer(cfg, c, log)
	if err != nil {
		log.Warn("Failed to initialize Kafka consumer, store listing will expire by TTL only", zap.Error(err))
		return
	}

	go func() {
		defer consumer.Close()
		if err := consumer.Start(ctx); err != nil {
			log.Error("Kafka consumer stopped", zap.Error(err))
		}
	}()
}
