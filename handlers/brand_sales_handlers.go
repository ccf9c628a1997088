package handlers

import (
	"context"
	"log"
	"time"

	"app/database"
	"app/middleware"
	"app/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RecordSaleRequest is the body for manual sale entry.
type RecordSaleRequest struct {
	DispensaryID string `json:"dispensaryId"`
	SaleDate     string `json:"saleDate"` // YYYY-MM-DD, defaults to today
	Items        []struct {
		ProductID string  `json:"productId"`
		Quantity  float64 `json:"quantity"`
		UnitPrice float64 `json:"unitPrice"`
	} `json:"items"`
}

// HandleRecordSale records a sale with its line items for the caller's brand.
// POST /api/v1/brand/sales
func HandleRecordSale(c *fiber.Ctx) error {
	ctx := context.Background()

	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}
	brandID, err := brandIDForUser(ctx, claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "No brand associated with this account"})
	}

	var req RecordSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if req.DispensaryID == "" || len(req.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "dispensaryId and items are required"})
	}

	saleDate := time.Now()
	if req.SaleDate != "" {
		saleDate, err = time.Parse("2006-01-02", req.SaleDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid saleDate format, expected YYYY-MM-DD"})
		}
	}

	totalAmount := 0.0
	for _, item := range req.Items {
		totalAmount += item.Quantity * item.UnitPrice
	}

	tx, err := database.GetDB().Begin(ctx)
	if err != nil {
		log.Printf("❌ [SALES] Failed to begin transaction: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to record sale"})
	}
	defer tx.Rollback(ctx)

	saleID := uuid.NewString()
	_, err = tx.Exec(ctx, `
        INSERT INTO sales (id, brand_id, dispensary_id, sale_date, total_amount, source)
        VALUES ($1, $2, $3, $4, $5, 'manual')
    `, saleID, brandID, req.DispensaryID, saleDate, totalAmount)
	if err != nil {
		log.Printf("❌ [SALES] Failed to insert sale: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to record sale"})
	}

	for _, item := range req.Items {
		_, err = tx.Exec(ctx, `
            INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, subtotal)
            VALUES ($1, $2, $3, $4, $5, $6)
        `, uuid.NewString(), saleID, item.ProductID, item.Quantity, item.UnitPrice, item.Quantity*item.UnitPrice)
		if err != nil {
			log.Printf("❌ [SALES] Failed to insert sale item: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to record sale items"})
		}
	}

	if err := tx.Commit(ctx); err != nil {
		log.Printf("❌ [SALES] Failed to commit sale: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to record sale"})
	}

	log.Printf("✅ [SALES] Recorded sale %s (%d items, total %.2f)", saleID, len(req.Items), totalAmount)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": fiber.Map{"saleId": saleID}})
}

// HandleGetSalesReport generates a sales report based on filters.
// GET /api/v1/brand/sales/report?startDate=...&endDate=...&dispensaryId=...
func HandleGetSalesReport(c *fiber.Ctx) error {
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

	// Parse query parameters
	startDateStr := c.Query("startDate", time.Now().AddDate(0, -1, 0).Format(time.RFC3339))
	endDateStr := c.Query("endDate", time.Now().Format(time.RFC3339))
	dispensaryID := c.Query("dispensaryId")

	log.Printf("📊 [SALES REPORT] Request - Brand: %s, StartDate: %s, EndDate: %s, DispensaryID: %s",
		brandID, startDateStr, endDateStr, dispensaryID)

	// Parse dates - try multiple formats
	parseDate := func(dateStr string) (time.Time, error) {
		formats := []string{
			time.RFC3339,
			time.RFC3339Nano,
			"2006-01-02T15:04:05",
			"2006-01-02",
		}
		var lastErr error
		for _, format := range formats {
			if t, err := time.Parse(format, dateStr); err == nil {
				return t, nil
			} else {
				lastErr = err
			}
		}
		return time.Time{}, lastErr
	}

	startDate, err := parseDate(startDateStr)
	if err != nil {
		log.Printf("❌ [SALES REPORT] Invalid startDate: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid startDate format"})
	}
	endDate, err := parseDate(endDateStr)
	if err != nil {
		log.Printf("❌ [SALES REPORT] Invalid endDate: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid endDate format"})
	}

	query := `
        SELECT id, brand_id, dispensary_id, sale_date, total_amount, source, created_at, updated_at
        FROM sales
        WHERE brand_id = $1 AND sale_date BETWEEN $2 AND $3
    `
	args := []interface{}{brandID, startDate, endDate}

	if dispensaryID != "" {
		query += " AND dispensary_id = $4"
		args = append(args, dispensaryID)
	}

	query += " ORDER BY sale_date DESC"

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("❌ [SALES REPORT] Query error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to generate sales report"})
	}
	defer rows.Close()

	sales := make([]models.Sale, 0)
	for rows.Next() {
		var sale models.Sale
		if err := rows.Scan(
			&sale.ID, &sale.BrandID, &sale.DispensaryID, &sale.SaleDate,
			&sale.TotalAmount, &sale.Source, &sale.CreatedAt, &sale.UpdatedAt,
		); err != nil {
			log.Printf("❌ [SALES REPORT] Scan error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to process sales report data"})
		}

		items, err := fetchSaleItems(ctx, sale.ID)
		if err != nil {
			log.Printf("⚠️  [SALES REPORT] Failed to fetch items for sale %s: %v", sale.ID, err)
			items = []models.SaleItem{}
		}
		sale.Items = items

		sales = append(sales, sale)
	}

	log.Printf("✅ [SALES REPORT] Returning %d sales", len(sales))
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"sales": sales}})
}

func fetchSaleItems(ctx context.Context, saleID string) ([]models.SaleItem, error) {
	rows, err := database.GetDB().Query(ctx, `
        SELECT id, sale_id, product_id, quantity, unit_price, subtotal, created_at
        FROM sale_items
        WHERE sale_id = $1
    `, saleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]models.SaleItem, 0)
	for rows.Next() {
		var item models.SaleItem
		if err := rows.Scan(
			&item.ID, &item.SaleID, &item.ProductID, &item.Quantity,
			&item.UnitPrice, &item.Subtotal, &item.CreatedAt,
		); err != nil {
			continue
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
