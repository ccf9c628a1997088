package handlers

import (
	"context"
	"fmt"
	"log"
	"os"

	"app/database"
	"app/middleware"
	"app/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// HandleAIAssistant answers a free-form question about the caller's brand,
// grounding the model with recent sales aggregates from the database.
// POST /api/v1/ai/assistant
func HandleAIAssistant(c *fiber.Ctx) error {
	ctx := context.Background()

	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}

	var req models.AIAssistantRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid request body"})
	}
	if req.Prompt == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "prompt is required"})
	}

	contextBlock := buildAssistantContext(ctx, claims.UserID)

	client, err := genai.NewClient(ctx, option.WithAPIKey(os.Getenv("GEMINI_API_KEY")))
	if err != nil {
		log.Printf("Error creating Gemini client: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to initialize AI client"})
	}
	defer client.Close()

	prompt := fmt.Sprintf(`You are an analytics assistant for a cannabis brand dashboard.
Answer the user's question using the business context below when relevant.
Never make medical claims about cannabis products.

%s

User question: %s`, contextBlock, req.Prompt)

	model := client.GenerativeModel("gemini-2.5-flash-lite")
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Printf("Error generating content: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to generate response"})
	}

	var answer string
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				answer += string(txt)
			}
		}
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"answer": answer}})
}

// buildAssistantContext summarizes the brand's recent numbers for the prompt.
// Returns an empty-context note for accounts with no brand (e.g. admins).
func buildAssistantContext(ctx context.Context, userID string) string {
	brandID, err := brandIDForUser(ctx, userID)
	if err != nil {
		return "No brand-specific data is available for this account."
	}

	db := database.GetDB()

	var revenue float64
	var transactions int
	_ = db.QueryRow(ctx, `
        SELECT COALESCE(SUM(total_amount), 0), COUNT(*)
        FROM sales
        WHERE brand_id = $1 AND sale_date >= NOW() - INTERVAL '30 days'
    `, brandID).Scan(&revenue, &transactions)

	contextBlock := fmt.Sprintf("Business context (last 30 days):\n- Revenue: $%.2f across %d transactions\n", revenue, transactions)

	rows, err := db.Query(ctx, `
        SELECT p.name, COALESCE(SUM(si.quantity), 0) AS sold
        FROM sales s
        JOIN sale_items si ON s.id = si.sale_id
        JOIN products p ON si.product_id = p.id
        WHERE s.brand_id = $1 AND s.sale_date >= NOW() - INTERVAL '30 days'
        GROUP BY p.name
        ORDER BY sold DESC
        LIMIT 3
    `, brandID)
	if err != nil {
		return contextBlock
	}
	defer rows.Close()

	for rows.Next() {
		var bs models.BestSeller
		if err := rows.Scan(&bs.ProductName, &bs.TotalSold); err != nil {
			continue
		}
		contextBlock += fmt.Sprintf("- Top seller: %s (%.0f units)\n", bs.ProductName, bs.TotalSold)
	}
	return contextBlock
}
