package handlers

import (
	"context"
	"log"

	"app/database"
	"app/middleware"
	"app/models"
	"app/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var validProductCategories = map[string]bool{
	"flower":      true,
	"edible":      true,
	"concentrate": true,
	"topical":     true,
	"preroll":     true,
	"vape":        true,
}

// ProductRequest is the body for product creation and updates.
type ProductRequest struct {
	Name       string   `json:"name"`
	SKU        string   `json:"sku"`
	Category   string   `json:"category"`
	THCPercent *float64 `json:"thcPercent,omitempty"`
	Price      float64  `json:"price"`
}

// HandleListProducts lists the brand's products with pagination.
// GET /api/v1/brand/products?page=1&pageSize=10
func HandleListProducts(c *fiber.Ctx) error {
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

	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 10)

	var totalItems int
	if err := db.QueryRow(ctx, "SELECT COUNT(*) FROM products WHERE brand_id = $1 AND is_active = true", brandID).Scan(&totalItems); err != nil {
		log.Printf("Error counting products for brand %s: %v", brandID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to list products"})
	}

	pagination := utils.CreatePagination(totalItems, page, pageSize)

	rows, err := db.Query(ctx, `
        SELECT id, brand_id, name, sku, category, thc_percent, price, is_active, created_at, updated_at
        FROM products
        WHERE brand_id = $1 AND is_active = true
        ORDER BY name
        LIMIT $2 OFFSET $3
    `, brandID, pagination.PageSize, (pagination.CurrentPage-1)*pagination.PageSize)
	if err != nil {
		log.Printf("Error listing products for brand %s: %v", brandID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to list products"})
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.BrandID, &p.Name, &p.SKU, &p.Category, &p.THCPercent, &p.Price, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			log.Printf("Error scanning product row: %v", err)
			continue
		}
		products = append(products, p)
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"products": products, "pagination": pagination}})
}

// HandleGetProductByID fetches one product owned by the brand.
// GET /api/v1/brand/products/:productId
func HandleGetProductByID(c *fiber.Ctx) error {
	ctx := context.Background()

	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}
	brandID, err := brandIDForUser(ctx, claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "No brand associated with this account"})
	}

	productID := c.Params("productId")

	var p models.Product
	err = database.GetDB().QueryRow(ctx, `
        SELECT id, brand_id, name, sku, category, thc_percent, price, is_active, created_at, updated_at
        FROM products
        WHERE id = $1 AND brand_id = $2
    `, productID, brandID).Scan(&p.ID, &p.BrandID, &p.Name, &p.SKU, &p.Category, &p.THCPercent, &p.Price, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Product not found"})
		}
		log.Printf("Error fetching product %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to fetch product"})
	}

	return c.JSON(fiber.Map{"success": true, "data": p})
}

// HandleCreateProduct adds a product to the brand's catalog.
// POST /api/v1/brand/products
func HandleCreateProduct(c *fiber.Ctx) error {
	ctx := context.Background()

	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}
	brandID, err := brandIDForUser(ctx, claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "No brand associated with this account"})
	}

	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if req.Name == "" || req.SKU == "" || req.Category == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Missing required fields (name, sku, category)"})
	}
	if !validProductCategories[req.Category] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid product category"})
	}

	var p models.Product
	err = database.GetDB().QueryRow(ctx, `
        INSERT INTO products (id, brand_id, name, sku, category, thc_percent, price)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, brand_id, name, sku, category, thc_percent, price, is_active, created_at, updated_at
    `, uuid.NewString(), brandID, req.Name, req.SKU, req.Category, req.THCPercent, req.Price).Scan(
		&p.ID, &p.BrandID, &p.Name, &p.SKU, &p.Category, &p.THCPercent, &p.Price, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		log.Printf("Error creating product for brand %s: %v", brandID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to create product"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": p})
}

// HandleUpdateProduct updates a product's details.
// PUT /api/v1/brand/products/:productId
func HandleUpdateProduct(c *fiber.Ctx) error {
	ctx := context.Background()

	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}
	brandID, err := brandIDForUser(ctx, claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "No brand associated with this account"})
	}

	productID := c.Params("productId")

	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if req.Category != "" && !validProductCategories[req.Category] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid product category"})
	}

	tag, err := database.GetDB().Exec(ctx, `
        UPDATE products
        SET name = COALESCE(NULLIF($1, ''), name),
            sku = COALESCE(NULLIF($2, ''), sku),
            category = COALESCE(NULLIF($3, ''), category),
            thc_percent = COALESCE($4, thc_percent),
            price = CASE WHEN $5 > 0 THEN $5 ELSE price END,
            updated_at = NOW()
        WHERE id = $6 AND brand_id = $7
    `, req.Name, req.SKU, req.Category, req.THCPercent, req.Price, productID, brandID)
	if err != nil {
		log.Printf("Error updating product %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to update product"})
	}
	if tag.RowsAffected() == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Product not found"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Product updated"})
}

// HandleDeleteProduct soft-deletes a product so historical sales keep their reference.
// DELETE /api/v1/brand/products/:productId
func HandleDeleteProduct(c *fiber.Ctx) error {
	ctx := context.Background()

	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}
	brandID, err := brandIDForUser(ctx, claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "No brand associated with this account"})
	}

	productID := c.Params("productId")

	tag, err := database.GetDB().Exec(ctx, `
        UPDATE products SET is_active = false, updated_at = NOW()
        WHERE id = $1 AND brand_id = $2
    `, productID, brandID)
	if err != nil {
		log.Printf("Error deleting product %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to delete product"})
	}
	if tag.RowsAffected() == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Product not found"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Product deleted"})
}
