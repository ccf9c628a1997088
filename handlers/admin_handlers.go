package handlers

import (
	"context"
	"log"

	"app/database"
	"app/models"
	"app/utils"

	"github.com/gofiber/fiber/v2"
)

// HandleGetAdminDashboardSummary returns platform-wide counts for the admin view.
// GET /api/v1/admin/dashboard/summary
func HandleGetAdminDashboardSummary(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	var summary models.AdminDashboardSummary
	err := db.QueryRow(ctx, `
        SELECT
            (SELECT COUNT(*) FROM brands),
            (SELECT COUNT(*) FROM dispensaries),
            (SELECT COUNT(*) FROM users),
            (SELECT COUNT(*) FROM users WHERE is_active = true)
    `).Scan(&summary.TotalBrands, &summary.TotalDispensaries, &summary.TotalUsers, &summary.ActiveUsers)
	if err != nil {
		log.Printf("Error fetching admin dashboard summary: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to fetch dashboard summary"})
	}

	return c.JSON(fiber.Map{"success": true, "data": summary})
}

// HandleGetUsers lists users with pagination and optional role filter.
// GET /api/v1/admin/users?page=1&pageSize=10&role=brand
func HandleGetUsers(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 10)
	roleFilter := c.Query("role")

	countQuery := "SELECT COUNT(*) FROM users"
	listQuery := `
        SELECT id, name, email, role, is_active, phone, brand_id, dispensary_id, created_at, updated_at
        FROM users
    `
	args := []interface{}{}
	if roleFilter != "" {
		countQuery += " WHERE role = $1"
		listQuery += " WHERE role = $1"
		args = append(args, roleFilter)
	}

	var totalItems int
	if err := db.QueryRow(ctx, countQuery, args...).Scan(&totalItems); err != nil {
		log.Printf("Error counting users: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to list users"})
	}

	pagination := utils.CreatePagination(totalItems, page, pageSize)

	listQuery += " ORDER BY created_at DESC"
	if roleFilter != "" {
		listQuery += " LIMIT $2 OFFSET $3"
	} else {
		listQuery += " LIMIT $1 OFFSET $2"
	}
	args = append(args, pagination.PageSize, (pagination.CurrentPage-1)*pagination.PageSize)

	rows, err := db.Query(ctx, listQuery, args...)
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to list users"})
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.IsActive,
			&u.Phone, &u.BrandID, &u.DispensaryID, &u.CreatedAt, &u.UpdatedAt); err != nil {
			log.Printf("Error scanning user row: %v", err)
			continue
		}
		users = append(users, u)
	}

	return c.JSON(fiber.Map{"success": true, "data": models.PaginatedUsersResponse{
		Data:       users,
		Pagination: *pagination,
	}})
}

// HandleListBrands lists all brand tenants on the platform.
// GET /api/v1/admin/brands
func HandleListBrands(c *fiber.Ctx) error {
	ctx := context.Background()

	rows, err := database.GetDB().Query(ctx, `
        SELECT id, name, email, license_number, state, is_active, created_at, updated_at
        FROM brands
        ORDER BY name
    `)
	if err != nil {
		log.Printf("Error listing brands: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to list brands"})
	}
	defer rows.Close()

	brands := make([]models.Brand, 0)
	for rows.Next() {
		var b models.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.Email, &b.LicenseNumber, &b.State, &b.IsActive, &b.CreatedAt, &b.UpdatedAt); err != nil {
			log.Printf("Error scanning brand row: %v", err)
			continue
		}
		brands = append(brands, b)
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"brands": brands}})
}

// HandleGetBrandsForSelection returns brands as id/name pairs for dropdowns.
// GET /api/v1/admin/brands-for-selection
func HandleGetBrandsForSelection(c *fiber.Ctx) error {
	ctx := context.Background()

	rows, err := database.GetDB().Query(ctx, "SELECT id, name FROM brands WHERE is_active = true ORDER BY name")
	if err != nil {
		log.Printf("Error fetching brands for selection: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to fetch brands"})
	}
	defer rows.Close()

	brands := make([]models.BrandSelectionItem, 0)
	for rows.Next() {
		var item models.BrandSelectionItem
		if err := rows.Scan(&item.ID, &item.Name); err != nil {
			continue
		}
		brands = append(brands, item)
	}

	return c.JSON(fiber.Map{"success": true, "data": brands})
}

// HandleSetUserStatus activates or deactivates a user account.
// PUT /api/v1/admin/users/:userId/status
func HandleSetUserStatus(c *fiber.Ctx) error {
	ctx := context.Background()

	var req struct {
		IsActive bool `json:"isActive"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}

	tag, err := database.GetDB().Exec(ctx,
		"UPDATE users SET is_active = $1, updated_at = NOW() WHERE id = $2",
		req.IsActive, c.Params("userId"))
	if err != nil {
		log.Printf("Error updating user status: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to update user status"})
	}
	if tag.RowsAffected() == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "User not found"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "User status updated"})
}
