package handlers

import (
	"context"
	"os"
	"testing"

	"app/database"
	"app/integrations"

	"github.com/stretchr/testify/assert"
)

// setupSalesTables connects to the database named by TEST_DATABASE_URL and
// recreates the tables the POS import writes to. Tests needing a live
// database skip when the variable is unset.
func setupSalesTables(t *testing.T) context.Context {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	database.InitDB(dsn)
	t.Cleanup(database.CloseDB)

	ctx := context.Background()
	statements := []string{
		"DROP TABLE IF EXISTS sale_items",
		"DROP TABLE IF EXISTS sales",
		"DROP TABLE IF EXISTS products",
		`CREATE TABLE products (
            id TEXT PRIMARY KEY,
            brand_id TEXT NOT NULL,
            name TEXT NOT NULL
        )`,
		`CREATE TABLE sales (
            id TEXT PRIMARY KEY,
            brand_id TEXT NOT NULL,
            dispensary_id TEXT NOT NULL,
            sale_date DATE NOT NULL,
            total_amount NUMERIC NOT NULL,
            source TEXT NOT NULL
        )`,
		`CREATE TABLE sale_items (
            id TEXT PRIMARY KEY,
            sale_id TEXT NOT NULL REFERENCES sales(id),
            product_id TEXT NOT NULL REFERENCES products(id),
            quantity NUMERIC NOT NULL,
            unit_price NUMERIC NOT NULL,
            subtotal NUMERIC NOT NULL
        )`,
	}
	for _, stmt := range statements {
		if _, err := database.GetDB().Exec(ctx, stmt); err != nil {
			t.Fatalf("schema setup failed: %v", err)
		}
	}
	return ctx
}

func TestImportDutchieDay_RollsBackSaleWhenItemFails(t *testing.T) {
	ctx := setupSalesTables(t)

	// No product row exists, so the line-item insert violates its FK.
	pos := integrations.DutchiePOSSale{Date: "2025-01-06", ProductID: "missing-product", Quantity: 10, Revenue: 350}
	err := importDutchieDay(ctx, "brand-1", "disp-1", pos)
	assert.Error(t, err)

	var saleCount int
	assert.NoError(t, database.GetDB().QueryRow(ctx, "SELECT COUNT(*) FROM sales").Scan(&saleCount))
	assert.Equal(t, 0, saleCount, "a failed line item must not leave a headless sale behind")
}

func TestImportDutchieDay_CommitsSaleWithItem(t *testing.T) {
	ctx := setupSalesTables(t)
	_, err := database.GetDB().Exec(ctx,
		"INSERT INTO products (id, brand_id, name) VALUES ('prod-1', 'brand-1', 'Indica Gummies')")
	assert.NoError(t, err)

	pos := integrations.DutchiePOSSale{Date: "2025-01-06", ProductID: "prod-1", Quantity: 10, Revenue: 350}
	assert.NoError(t, importDutchieDay(ctx, "brand-1", "disp-1", pos))

	var saleCount, itemCount int
	assert.NoError(t, database.GetDB().QueryRow(ctx, "SELECT COUNT(*) FROM sales").Scan(&saleCount))
	assert.NoError(t, database.GetDB().QueryRow(ctx, "SELECT COUNT(*) FROM sale_items").Scan(&itemCount))
	assert.Equal(t, 1, saleCount)
	assert.Equal(t, 1, itemCount)

	var unitPrice float64
	assert.NoError(t, database.GetDB().QueryRow(ctx, "SELECT unit_price FROM sale_items").Scan(&unitPrice))
	assert.InDelta(t, 35.0, unitPrice, 1e-9)
}

func TestImportDutchieDay_RejectsBadDate(t *testing.T) {
	pos := integrations.DutchiePOSSale{Date: "06/01/2025", ProductID: "prod-1", Quantity: 1, Revenue: 10}
	err := importDutchieDay(context.Background(), "brand-1", "disp-1", pos)
	assert.Error(t, err)
}
