package handlers

import (
	"context"
	"log"

	"app/database"
	"app/middleware"
	"app/models"

	"github.com/gofiber/fiber/v2"
)

// HandleGetBrandDashboardSummary fetches summary data for the brand dashboard.
// GET /api/v1/brand/dashboard/summary?dispensaryId=...
func HandleGetBrandDashboardSummary(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}
	brandID, err := brandIDForUser(ctx, claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "No brand associated with this account"})
	}

	dispensaryID := c.Query("dispensaryId") // Optional filter

	var summary models.BrandDashboardSummary

	// 1. Total Sales Revenue
	querySales := `
		SELECT COALESCE(SUM(total_amount), 0)
		FROM sales
		WHERE brand_id = $1
	`
	argsSales := []interface{}{brandID}
	if dispensaryID != "" {
		querySales += " AND dispensary_id = $2"
		argsSales = append(argsSales, dispensaryID)
	}
	err = db.QueryRow(ctx, querySales, argsSales...).Scan(&summary.TotalSalesRevenue.Value)
	if err != nil {
		log.Printf("Error fetching total sales revenue: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch total sales revenue"})
	}

	// 2. Number of Transactions
	queryTransactions := `
		SELECT COUNT(*)
		FROM sales
		WHERE brand_id = $1
	`
	argsTransactions := []interface{}{brandID}
	if dispensaryID != "" {
		queryTransactions += " AND dispensary_id = $2"
		argsTransactions = append(argsTransactions, dispensaryID)
	}
	err = db.QueryRow(ctx, queryTransactions, argsTransactions...).Scan(&summary.NumberOfTransactions.Value)
	if err != nil {
		log.Printf("Error fetching number of transactions: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch number of transactions"})
	}

	// 3. Average Order Value
	if summary.NumberOfTransactions.Value > 0 {
		summary.AverageOrderValue.Value = summary.TotalSalesRevenue.Value / summary.NumberOfTransactions.Value
	} else {
		summary.AverageOrderValue.Value = 0
	}

	// 4. Top Selling Products
	queryTopProducts := `
		SELECT
			p.id AS product_id,
			p.name AS product_name,
			COALESCE(SUM(si.quantity), 0) AS quantity_sold,
			COALESCE(SUM(si.subtotal), 0) AS revenue
		FROM sales s
		JOIN sale_items si ON s.id = si.sale_id
		JOIN products p ON si.product_id = p.id
		WHERE s.brand_id = $1
	`
	argsTopProducts := []interface{}{brandID}
	if dispensaryID != "" {
		queryTopProducts += " AND s.dispensary_id = $2"
		argsTopProducts = append(argsTopProducts, dispensaryID)
	}
	queryTopProducts += `
		GROUP BY p.id, p.name
		ORDER BY revenue DESC
		LIMIT 5
	`

	rows, err := db.Query(ctx, queryTopProducts, argsTopProducts...)
	if err != nil {
		log.Printf("Error fetching top selling products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch top selling products"})
	}
	defer rows.Close()

	products := []models.ProductSummary{}
	for rows.Next() {
		var p models.ProductSummary
		if err := rows.Scan(&p.ProductID, &p.ProductName, &p.QuantitySold, &p.Revenue); err != nil {
			log.Printf("Error scanning top product row: %v", err)
			continue
		}
		products = append(products, p)
	}
	summary.TopSellingProducts = products

	return c.JSON(fiber.Map{"success": true, "data": summary})
}
