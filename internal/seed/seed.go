package seed

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"

	"github.com/Simplici0/printquote/internal/orders"
	"github.com/Simplici0/printquote/internal/pricing"
)

// Config contains the values required by startup seed.
type Config struct {
	AdminEmail    string
	AdminPassword string

	// DemoOrders adds sample orders to an empty orders table.
	DemoOrders bool
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

var demoOrders = []orders.Submission{
	{
		CustomerName:  "Riverside Rec League",
		CustomerEmail: "coach@riverside.example",
		Title:         "Team shirts",
		Notes:         "Front chest logo",
		Request:       pricing.QuoteRequest{
			GarmentQty:    48,
			ColorCount:    2,
			LocationCount: 1,
			GarmentColor:  "Black",
			InkColors:     []string{"Gold", "Red"},
			GarmentPrice:  8.5,
		},
	},
	{
		CustomerName:  "Maple Street Bakery",
		CustomerEmail: "orders@maplebakery.example",
		Title:         "Staff aprons tees",
		Request:       pricing.QuoteRequest{
			GarmentQty:    24,
			ColorCount:    1,
			LocationCount: 2,
			GarmentColor:  "White",
			InkColors:     []string{"Navy"},
			GarmentPrice:  6.25,
			Rush:          pricing.RushFiveDay,
		},
	},
}

// HashPassword returns the stored form of an admin password.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Run executes the startup seed in an idempotent way.
func Run(ctx context.Context, db *sql.DB, store *orders.Store, cfg Config) (Stats, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	if err := seedAdmin(ctx, tx, cfg.AdminEmail, cfg.AdminPassword, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	var orderCount int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&orderCount); err != nil {
		_ = tx.Rollback()
		return Stats{}, fmt.Errorf("count orders: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	if !cfg.DemoOrders || orderCount > 0 {
		return stats, nil
	}
	for _, sub := range demoOrders {
		if _, err := store.Submit(ctx, sub); err != nil {
			return Stats{}, fmt.Errorf("insert demo order %q: %w", sub.Title, err)
		}
		stats.Inserts++
	}

	return stats, nil
}

func seedAdmin(ctx context.Context, tx *sql.Tx, email, password string, stats *Stats) error {
	if email == "" || password == "" {
		return nil
	}

	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = ? LIMIT 1)`, email).Scan(&exists); err != nil {
		return fmt.Errorf("check admin user existence: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO users (email, password_hash) VALUES (?, ?)`, email, HashPassword(password)); err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}
	stats.Inserts++
	return nil
}
