package handlers

import (
	"context"
	"fmt"
	"log"
	"time"

	"app/config"
	"app/database"
	"app/integrations"
	"app/middleware"
	"app/models"
	"app/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var validProviders = map[string]bool{
	"dutchie":  true,
	"leaflink": true,
}

// StoreCredentialRequest is the body for saving an integration API key.
type StoreCredentialRequest struct {
	Provider string `json:"provider"`
	APIKey   string `json:"apiKey"`
}

// HandleStoreCredential encrypts and stores a third-party API key for the brand.
// Keys are encrypted with AES-256-GCM before they touch the database and are
// never returned to the client after storage.
// POST /api/v1/brand/integrations/credentials
func HandleStoreCredential(c *fiber.Ctx) error {
	ctx := context.Background()

	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}
	brandID, err := brandIDForUser(ctx, claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "No brand associated with this account"})
	}

	var req StoreCredentialRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if !validProviders[req.Provider] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Unsupported provider"})
	}
	if req.APIKey == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "apiKey is required"})
	}

	encrypted, err := utils.EncryptAPIKey(req.APIKey, config.AppConfig.EncryptionKey)
	if err != nil {
		log.Printf("Error encrypting credential for brand %s: %v", brandID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to secure credential"})
	}

	var cred models.ApiCredential
	err = database.GetDB().QueryRow(ctx, `
        INSERT INTO api_credentials (id, brand_id, provider, encrypted_key, masked_key)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (brand_id, provider)
        DO UPDATE SET encrypted_key = EXCLUDED.encrypted_key, masked_key = EXCLUDED.masked_key, updated_at = NOW()
        RETURNING id, brand_id, provider, masked_key, created_at, updated_at
    `, uuid.NewString(), brandID, req.Provider, encrypted, utils.MaskKey(req.APIKey)).Scan(
		&cred.ID, &cred.BrandID, &cred.Provider, &cred.MaskedKey, &cred.CreatedAt, &cred.UpdatedAt,
	)
	if err != nil {
		log.Printf("Error storing credential for brand %s: %v", brandID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to store credential"})
	}

	log.Printf("🔐 [INTEGRATIONS] Stored %s credential for brand %s", req.Provider, brandID)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": cred})
}

// HandleListCredentials lists the brand's stored integration credentials (masked).
// GET /api/v1/brand/integrations/credentials
func HandleListCredentials(c *fiber.Ctx) error {
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
        SELECT id, brand_id, provider, masked_key, created_at, updated_at
        FROM api_credentials
        WHERE brand_id = $1
        ORDER BY provider
    `, brandID)
	if err != nil {
		log.Printf("Error listing credentials for brand %s: %v", brandID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to list credentials"})
	}
	defer rows.Close()

	credentials := make([]models.ApiCredential, 0)
	for rows.Next() {
		var cred models.ApiCredential
		if err := rows.Scan(&cred.ID, &cred.BrandID, &cred.Provider, &cred.MaskedKey, &cred.CreatedAt, &cred.UpdatedAt); err != nil {
			continue
		}
		credentials = append(credentials, cred)
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"credentials": credentials}})
}

// HandleDeleteCredential removes a stored credential.
// DELETE /api/v1/brand/integrations/credentials/:credentialId
func HandleDeleteCredential(c *fiber.Ctx) error {
	ctx := context.Background()

	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}
	brandID, err := brandIDForUser(ctx, claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "No brand associated with this account"})
	}

	tag, err := database.GetDB().Exec(ctx,
		"DELETE FROM api_credentials WHERE id = $1 AND brand_id = $2",
		c.Params("credentialId"), brandID)
	if err != nil {
		log.Printf("Error deleting credential: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to delete credential"})
	}
	if tag.RowsAffected() == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Credential not found"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Credential deleted"})
}

// decryptedKeyForProvider loads and decrypts the brand's API key for a provider.
func decryptedKeyForProvider(ctx context.Context, brandID, provider string) (string, error) {
	var encrypted string
	err := database.GetDB().QueryRow(ctx,
		"SELECT encrypted_key FROM api_credentials WHERE brand_id = $1 AND provider = $2",
		brandID, provider).Scan(&encrypted)
	if err != nil {
		return "", err
	}
	return utils.DecryptAPIKey(encrypted, config.AppConfig.EncryptionKey)
}

// HandleDutchieSync pulls recent POS sales from Dutchie for a dispensary and
// records them as sales rows, so synced data feeds the dashboard and the
// demand forecaster the same way manual entries do.
// POST /api/v1/brand/integrations/dutchie/sync
func HandleDutchieSync(c *fiber.Ctx) error {
	ctx := context.Background()

	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}
	brandID, err := brandIDForUser(ctx, claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "No brand associated with this account"})
	}

	var req struct {
		DispensaryID string `json:"dispensaryId"`
		Days         int    `json:"days"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if req.DispensaryID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "dispensaryId is required"})
	}
	if req.Days <= 0 {
		req.Days = 7
	}

	apiKey, err := decryptedKeyForProvider(ctx, brandID, "dutchie")
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "No Dutchie credential on file"})
		}
		log.Printf("Error loading Dutchie credential for brand %s: %v", brandID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to load Dutchie credential"})
	}

	client := integrations.NewDutchieClient(apiKey)
	posSales, err := client.FetchDailySales(ctx, req.DispensaryID, req.Days)
	if err != nil {
		log.Printf("Error fetching Dutchie sales: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"success": false, "message": "Failed to fetch sales from Dutchie"})
	}

	imported := 0
	for _, pos := range posSales {
		if err := importDutchieDay(ctx, brandID, req.DispensaryID, pos); err != nil {
			log.Printf("⚠️  [DUTCHIE SYNC] Skipping %s: %v", pos.Date, err)
			continue
		}
		imported++
	}

	log.Printf("✅ [DUTCHIE SYNC] Imported %d/%d days for dispensary %s", imported, len(posSales), req.DispensaryID)
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"imported": imported, "fetched": len(posSales)}})
}

// importDutchieDay records one synced POS day as a sale with its line item.
// The sale and its item commit together; a failed item insert must not leave
// a headless sales row behind inflating revenue totals.
func importDutchieDay(ctx context.Context, brandID, dispensaryID string, pos integrations.DutchiePOSSale) error {
	saleDate, err := time.Parse("2006-01-02", pos.Date)
	if err != nil {
		return fmt.Errorf("bad sale date %q: %w", pos.Date, err)
	}

	tx, err := database.GetDB().Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	saleID := uuid.NewString()
	_, err = tx.Exec(ctx, `
        INSERT INTO sales (id, brand_id, dispensary_id, sale_date, total_amount, source)
        VALUES ($1, $2, $3, $4, $5, 'dutchie')
    `, saleID, brandID, dispensaryID, saleDate, pos.Revenue)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}

	unitPrice := 0.0
	if pos.Quantity > 0 {
		unitPrice = pos.Revenue / pos.Quantity
	}
	_, err = tx.Exec(ctx, `
        INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, subtotal)
        VALUES ($1, $2, $3, $4, $5, $6)
    `, uuid.NewString(), saleID, pos.ProductID, pos.Quantity, unitPrice, pos.Revenue)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}

	return tx.Commit(ctx)
}

// HandleGetLeafLinkOrders lists the brand's open wholesale orders from LeafLink.
// GET /api/v1/brand/integrations/leaflink/orders
func HandleGetLeafLinkOrders(c *fiber.Ctx) error {
	ctx := context.Background()

	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}
	brandID, err := brandIDForUser(ctx, claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "No brand associated with this account"})
	}

	apiKey, err := decryptedKeyForProvider(ctx, brandID, "leaflink")
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "No LeafLink credential on file"})
		}
		log.Printf("Error loading LeafLink credential for brand %s: %v", brandID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to load LeafLink credential"})
	}

	client := integrations.NewLeafLinkClient(apiKey)
	orders, err := client.FetchOpenOrders(ctx, brandID)
	if err != nil {
		log.Printf("Error fetching LeafLink orders: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"success": false, "message": "Failed to fetch orders from LeafLink"})
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"orders": orders}})
}
