package handlers

import (
	"context"
	"log"

	"app/database"
	"app/middleware"
	"app/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// DispensaryRequest is the body for dispensary creation.
type DispensaryRequest struct {
	Name          string  `json:"name"`
	Address       *string `json:"address,omitempty"`
	LicenseNumber string  `json:"licenseNumber"`
}

// HandleListDispensaries lists the dispensaries carrying the brand's products.
// GET /api/v1/brand/dispensaries
func HandleListDispensaries(c *fiber.Ctx) error {
	ctx := context.Background()

	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}
	brandID, err := brandIDForUser(ctx, claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "No brand associated with this account"})
	}

	rows, err := database.GetDB().Query(ctx, `
        SELECT id, brand_id, name, address, license_number, is_active, created_at, updated_at
        FROM dispensaries
        WHERE brand_id = $1 AND is_active = true
        ORDER BY name
    `, brandID)
	if err != nil {
		log.Printf("Error listing dispensaries for brand %s: %v", brandID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to list dispensaries"})
	}
	defer rows.Close()

	dispensaries := make([]models.Dispensary, 0)
	for rows.Next() {
		var d models.Dispensary
		if err := rows.Scan(&d.ID, &d.BrandID, &d.Name, &d.Address, &d.LicenseNumber, &d.IsActive, &d.CreatedAt, &d.UpdatedAt); err != nil {
			log.Printf("Error scanning dispensary row: %v", err)
			continue
		}
		dispensaries = append(dispensaries, d)
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"dispensaries": dispensaries}})
}

// HandleCreateDispensary registers a dispensary location for the brand.
// POST /api/v1/brand/dispensaries
func HandleCreateDispensary(c *fiber.Ctx) error {
	ctx := context.Background()

	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}
	brandID, err := brandIDForUser(ctx, claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "No brand associated with this account"})
	}

	var req DispensaryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if req.Name == "" || req.LicenseNumber == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Missing required fields (name, licenseNumber)"})
	}

	var d models.Dispensary
	err = database.GetDB().QueryRow(ctx, `
        INSERT INTO dispensaries (id, brand_id, name, address, license_number)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, brand_id, name, address, license_number, is_active, created_at, updated_at
    `, uuid.NewString(), brandID, req.Name, req.Address, req.LicenseNumber).Scan(
		&d.ID, &d.BrandID, &d.Name, &d.Address, &d.LicenseNumber, &d.IsActive, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		log.Printf("Error creating dispensary for brand %s: %v", brandID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to create dispensary"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": d})
}
