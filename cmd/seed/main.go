// Command seed loads the sample catalog into the SQLite inventory database.
package main

import (
	"context"
	"flag"
	"time"

	"cart-service/internal/config"
	"cart-service/internal/repository"
	"cart-service/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	path := flag.String("db", cfg.SQLitePath, "SQLite database path")
	flag.Parse()

	appLogger := logger.New(cfg.Environment)
	defer appLogger.Sync()

	if *path == "" {
		appLogger.Fatal("No database path; set SQLITE_PATH or pass -db")
	}

	repo, err := repository.NewSQLiteInventoryRepository(*path)
	if err != nil {
		appLogger.Fatal("Failed to open SQLite catalog", zap.String("path", *path), zap.Error(err))
	}
	defer repo.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	items := repository.SampleCatalog()
	if err := repository.Seed(ctx, repo, items); err != nil {
		appLogger.Fatal("Failed to seed catalog", zap.String("path", *path), zap.Error(err))
	}

	for _, item := range items {
		appLogger.Info("Item saved",
			zap.Int64("id", item.ID),
			zap.String("name", item.Name),
			zap.String("price", item.Price.Display()),
		)
	}
}
