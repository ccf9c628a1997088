package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"app/database"
	"app/middleware"
	"app/models"
	"app/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/generative-ai-go/genai"
	"github.com/jackc/pgx/v5"
	"google.golang.org/api/option"
)

const defaultForecastHorizonDays = 7

// fetchDailySalesHistory loads the per-day quantities sold for one product of
// a brand over the last 90 days. Days with no sales simply have no row; the
// forecaster treats missing weekdays as zero-signal buckets.
func fetchDailySalesHistory(ctx context.Context, brandID, productID string) ([]models.DailySales, error) {
	query := `
        SELECT to_char(s.sale_date::date, 'YYYY-MM-DD') AS sale_day,
               COALESCE(SUM(si.quantity), 0) AS quantity
        FROM sales s
        JOIN sale_items si ON s.id = si.sale_id
        WHERE s.brand_id = $1 AND si.product_id = $2
          AND s.sale_date >= NOW() - INTERVAL '90 days'
        GROUP BY sale_day
        ORDER BY sale_day
    `
	rows, err := database.GetDB().Query(ctx, query, brandID, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]models.DailySales, 0)
	for rows.Next() {
		var ds models.DailySales
		if err := rows.Scan(&ds.Date, &ds.Quantity); err != nil {
			continue
		}
		history = append(history, ds)
	}
	return history, rows.Err()
}

// lookupProductName confirms the product exists and belongs to the brand.
// Returns pgx.ErrNoRows for unknown or foreign products.
func lookupProductName(ctx context.Context, brandID, productID string) (string, error) {
	var name string
	err := database.GetDB().QueryRow(ctx,
		"SELECT name FROM products WHERE id = $1 AND brand_id = $2",
		productID, brandID).Scan(&name)
	return name, err
}

// buildDatedForecast pairs forecast values with calendar dates. When the
// history is empty there is no real origin; the rows are anchored on
// tomorrow purely so the dashboard has dates to render against the zeros.
func buildDatedForecast(history []models.DailySales, forecasts []float64) []models.DailyDemandForecast {
	origin, ok := utils.ForecastOriginDate(history)
	if !ok {
		origin = time.Now().AddDate(0, 0, 1)
	}

	dated := make([]models.DailyDemandForecast, len(forecasts))
	for i, value := range forecasts {
		dated[i] = models.DailyDemandForecast{
			Date:           origin.AddDate(0, 0, i).Format("2006-01-02"),
			PredictedUnits: value,
		}
	}
	return dated
}

// HandleGetDemandForecast projects demand for one product from its recorded
// sales history using day-of-week seasonal averaging.
// GET /api/v1/brand/forecast/demand?productId=...&days=7
func HandleGetDemandForecast(c *fiber.Ctx) error {
	ctx := context.Background()

	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}

	brandID, err := brandIDForUser(ctx, claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "No brand associated with this account"})
	}

	productID := c.Query("productId")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "productId is required"})
	}
	horizonDays := c.QueryInt("days", defaultForecastHorizonDays)
	if horizonDays < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "days must not be negative"})
	}

	productName, err := lookupProductName(ctx, brandID, productID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Product not found"})
		}
		log.Printf("❌ [FORECAST] Product lookup error for %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to load product"})
	}

	history, err := fetchDailySalesHistory(ctx, brandID, productID)
	if err != nil {
		log.Printf("❌ [FORECAST] History query error for product %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to load sales history"})
	}

	forecasts, err := utils.ForecastDemandSeasonality(history, horizonDays)
	if err != nil {
		log.Printf("❌ [FORECAST] Forecast error for product %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to compute forecast"})
	}

	var brandName string
	if err := database.GetDB().QueryRow(ctx, "SELECT name FROM brands WHERE id = $1", brandID).Scan(&brandName); err != nil {
		log.Printf("⚠️  [FORECAST] Brand name lookup failed for %s: %v", brandID, err)
	}

	response := models.DemandForecastResponse{
		ReportName:    fmt.Sprintf("%d-Day Demand Forecast", horizonDays),
		GeneratedAt:   time.Now(),
		ProductName:   productName,
		BrandName:     brandName,
		DailyForecast: buildDatedForecast(history, forecasts),
	}
	if len(response.DailyForecast) > 0 {
		start, _ := time.Parse("2006-01-02", response.DailyForecast[0].Date)
		response.ForecastPeriod = &models.ForecastPeriod{
			StartDate: start,
			EndDate:   start.AddDate(0, 0, horizonDays-1),
		}
	}

	log.Printf("📈 [FORECAST] Product %s: %d history days -> %d forecast days", productID, len(history), horizonDays)
	return c.JSON(fiber.Map{"success": true, "data": response})
}

// HandleComputeDemandForecast runs the seasonal forecaster over a history
// supplied in the request body, without touching the database. Used by
// report tooling that already holds the series.
// POST /api/v1/brand/forecast/demand
func HandleComputeDemandForecast(c *fiber.Ctx) error {
	var req models.DemandForecastRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if req.HorizonDays < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "horizonDays must not be negative"})
	}

	forecasts, err := utils.ForecastDemandSeasonality(req.History, req.HorizonDays)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	var originDate *string
	if origin, ok := utils.ForecastOriginDate(req.History); ok {
		formatted := origin.Format("2006-01-02")
		originDate = &formatted
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{
		"forecast":   forecasts,
		"originDate": originDate,
	}})
}

// HandleGetDemandForecastAnalysis computes the seasonal demand forecast and
// asks Gemini for a qualitative read on it. The numbers always come from the
// local forecaster; the model only contributes prose.
// GET /api/v1/brand/forecast/demand/analysis?productId=...&days=7
func HandleGetDemandForecastAnalysis(c *fiber.Ctx) error {
	ctx := context.Background()

	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}

	brandID, err := brandIDForUser(ctx, claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "No brand associated with this account"})
	}

	productID := c.Query("productId")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "productId is required"})
	}
	horizonDays := c.QueryInt("days", defaultForecastHorizonDays)
	if horizonDays < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "days must not be negative"})
	}

	productName, err := lookupProductName(ctx, brandID, productID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Product not found"})
		}
		log.Printf("❌ [FORECAST] Product lookup error for %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to load product"})
	}

	history, err := fetchDailySalesHistory(ctx, brandID, productID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to load sales history"})
	}

	forecasts, err := utils.ForecastDemandSeasonality(history, horizonDays)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to compute forecast"})
	}

	var brandName string
	if err := database.GetDB().QueryRow(ctx, "SELECT name FROM brands WHERE id = $1", brandID).Scan(&brandName); err != nil {
		log.Printf("⚠️  [FORECAST] Brand name lookup failed for %s: %v", brandID, err)
	}

	dailyForecast := buildDatedForecast(history, forecasts)
	prompt := constructAnalysisPrompt(productName, brandName, history, dailyForecast)

	client, err := genai.NewClient(ctx, option.WithAPIKey(os.Getenv("GEMINI_API_KEY")))
	if err != nil {
		log.Printf("Error creating Gemini client: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to connect to AI service"})
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-2.5-flash-lite")
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Printf("Error from Gemini API: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to generate analysis from AI"})
	}

	analysis, err := parseGeminiAnalysis(resp)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	response := models.DemandForecastResponse{
		ReportName:    fmt.Sprintf("%d-Day Demand Forecast with AI Analysis", horizonDays),
		GeneratedAt:   time.Now(),
		ProductName:   productName,
		BrandName:     brandName,
		DailyForecast: dailyForecast,
		AiAnalysis:    analysis,
	}

	return c.JSON(fiber.Map{"success": true, "data": response})
}

// constructAnalysisPrompt creates a detailed prompt for the Gemini API.
func constructAnalysisPrompt(productName, brandName string, history []models.DailySales, forecast []models.DailyDemandForecast) string {
	historyStr := ""
	for _, d := range history {
		historyStr += fmt.Sprintf("On %s, %.1f units were sold.\n", d.Date, d.Quantity)
	}
	if historyStr == "" {
		historyStr = "No sales data available for the last 90 days."
	}

	forecastStr := ""
	for _, f := range forecast {
		forecastStr += fmt.Sprintf("On %s, %.1f units are projected.\n", f.Date, f.PredictedUnits)
	}

	jsonFormat := `{"summary":"string","positive_factors":["string",...],"negative_factors":["string",...]}`

	return fmt.Sprintf(`
        You are an expert cannabis retail data analyst. A weekday-seasonality model has already
        produced the demand projection below. Your task is to provide a brief qualitative analysis
        of the sales history and the projection. Do not change or restate individual numbers.

        **Analysis Context:**
        - Product Name: %s
        - Brand Name: %s
        - Today's Date: %s

        **Historical Daily Sales (last 90 days):**
        %s

        **Projected Demand:**
        %s

        **Required Output:**
        You must provide a single, minified JSON object with the following exact structure. Do not
        include any markdown formatting, backticks, or explanatory text before or after the JSON object.

        %s
    `, productName, brandName, time.Now().Format("2006-01-02"), historyStr, forecastStr, jsonFormat)
}

func extractJSON(rawString string) string {
	start := strings.Index(rawString, "{")
	end := strings.LastIndex(rawString, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return rawString[start : end+1]
}

// parseGeminiAnalysis parses the JSON from Gemini into the analysis struct.
func parseGeminiAnalysis(resp *genai.GenerateContentResponse) (*models.AiAnalysis, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no content received from AI")
	}

	var geminiText string
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			geminiText += string(txt)
		}
	}

	if geminiText == "" {
		return nil, fmt.Errorf("no text content received from AI")
	}

	// Clean the response to get only the JSON object
	jsonStr := extractJSON(geminiText)
	if jsonStr == "" {
		log.Printf("Could not extract JSON from Gemini response: %s", geminiText)
		return nil, fmt.Errorf("failed to parse AI response format")
	}

	var analysis models.AiAnalysis
	if err := json.Unmarshal([]byte(jsonStr), &analysis); err != nil {
		log.Printf("Error parsing Gemini JSON: %v\nRaw JSON: %s", err, jsonStr)
		return nil, fmt.Errorf("failed to parse AI analysis data")
	}
	return &analysis, nil
}
