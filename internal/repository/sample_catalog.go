package repository

import (
	"context"
	"fmt"

	"cart-service/internal/models"
)

// SampleCatalog is the demo inventory used by the in-memory catalog and cmd/seed
func SampleCatalog() []models.Item {
	return []models.Item{
		{ID: 1, Name: "Widget", Price: models.MustPrice("9.99"), InStock: true},
		{ID: 2, Name: "Gadget", Price: models.MustPrice("24.50"), InStock: true},
		{ID: 3, Name: "Gizmo", Price: models.MustPrice("5"), InStock: false},
	}
}

// Seed upserts items in order and stops at the first failure
func Seed(ctx context.Context, w ItemWriter, items []models.Item) error {
	for _, item := range items {
		if err := w.SaveItem(ctx, item); err != nil {
			return fmt.Errorf("seed item %d: %w", item.ID, err)
		}
	}
	return nil
}
