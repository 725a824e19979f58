package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cart-service/internal/models"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS items (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	price TEXT NOT NULL,
	in_stock INTEGER NOT NULL DEFAULT 1,
	CHECK(in_stock IN (0, 1))
);
`

// SQLiteInventoryRepository reads the item catalog from SQLite
type SQLiteInventoryRepository struct {
	db *sql.DB
}

// NewSQLiteInventoryRepository opens the catalog database and makes sure the items table exists
func NewSQLiteInventoryRepository(dbPath string) (*SQLiteInventoryRepository, error) {
	// WAL mode for better read concurrency
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteInventoryRepository{
		db: db,
	}, nil
}

// Close closes the database connection
func (r *SQLiteInventoryRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// FindByID finds an item by ID
func (r *SQLiteInventoryRepository) FindByID(ctx context.Context, id int64) (*models.Item, error) {
	query := `
		SELECT id, name, price, in_stock
		FROM items
		WHERE id = ?
	`

	var item models.Item
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID,
		&item.Name,
		&item.Price,
		&item.InStock,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to find item by ID: %w", err)
	}

	return &item, nil
}

// ListItems returns the whole catalog ordered by ID
func (r *SQLiteInventoryRepository) ListItems(ctx context.Context) ([]models.Item, error) {
	query := `
		SELECT id, name, price, in_stock
		FROM items
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	items := make([]models.Item, 0)
	for rows.Next() {
		var item models.Item
		if err := rows.Scan(&item.ID, &item.Name, &item.Price, &item.InStock); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating items: %w", err)
	}

	return items, nil
}

// SaveItem inserts or replaces a catalog row. The service itself never writes
// the catalog; this exists for seeding and tests.
func (r *SQLiteInventoryRepository) SaveItem(ctx context.Context, item models.Item) error {
	query := `
		INSERT INTO items (id, name, price, in_stock)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, price = excluded.price, in_stock = excluded.in_stock
	`

	if _, err := r.db.ExecContext(ctx, query, item.ID, item.Name, item.Price.String(), item.InStock); err != nil {
		return fmt.Errorf("failed to save item: %w", err)
	}
	return nil
}
