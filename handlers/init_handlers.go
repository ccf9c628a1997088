package handlers

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"os"

	"app/database"
	"app/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// HandleInitializeAdmin creates the first admin account on a fresh deployment.
// Every other user-creation path sits behind AdminRequired, so this endpoint
// is the only way to mint the initial admin. It is gated by INIT_TOKEN and
// refuses to run once an active admin exists.
// POST /api/v1/auth/initialize-admin
func HandleInitializeAdmin(c *fiber.Ctx) error {
	initToken := os.Getenv("INIT_TOKEN")
	if initToken == "" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"status": "error", "message": "INIT_TOKEN not configured"})
	}

	providedToken := c.Get("X-Init-Token")
	if providedToken != initToken {
		log.Printf("⚠️  [INIT] Bootstrap attempt with invalid token")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Invalid initialization token"})
	}

	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Missing required fields (name, email, password)"})
	}

	ctx := context.Background()

	var adminCount int
	err := database.GetDB().QueryRow(ctx,
		"SELECT COUNT(*) FROM users WHERE role = 'admin' AND is_active = true").Scan(&adminCount)
	if err != nil {
		log.Printf("Error checking for existing admins: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Database error"})
	}
	if adminCount > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"status": "error", "message": "An admin account already exists"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Could not process password"})
	}

	var user models.User
	err = database.GetDB().QueryRow(ctx, `
        INSERT INTO users (id, name, email, password_hash, role, is_active)
        VALUES ($1, $2, $3, $4, 'admin', true)
        RETURNING id, name, email, role, is_active, created_at, updated_at
    `, uuid.NewString(), req.Name, req.Email, string(hashedPassword)).Scan(
		&user.ID, &user.Name, &user.Email, &user.Role, &user.IsActive,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		log.Printf("Error creating initial admin: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Could not create admin user"})
	}

	log.Printf("🔐 [INIT] Initial admin account created: %s", user.Email)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": user})
}

// brandIDForUser resolves the brand a user account belongs to. Brand-scoped
// handlers use this instead of trusting a brand ID from the request.
func brandIDForUser(ctx context.Context, userID string) (string, error) {
	var brandID sql.NullString
	err := database.GetDB().QueryRow(ctx, "SELECT brand_id FROM users WHERE id = $1", userID).Scan(&brandID)
	if err != nil {
		return "", err
	}
	if !brandID.Valid || brandID.String == "" {
		return "", errors.New("user has no associated brand")
	}
	return brandID.String, nil
}
