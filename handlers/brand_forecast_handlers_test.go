package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"app/database"
	"app/models"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func makeForecastApp() *fiber.App {
	app := fiber.New()
	app.Post("/api/v1/brand/forecast/demand", HandleComputeDemandForecast)
	return app
}

func postForecast(t *testing.T, app *fiber.App, body models.DemandForecastRequest) (int, map[string]interface{}) {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}
	req := httptest.NewRequest("POST", "/api/v1/brand/forecast/demand", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app test error: %v", err)
	}
	var parsed map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp.StatusCode, parsed
}

func TestComputeDemandForecast_WeekdayCycle(t *testing.T) {
	app := makeForecastApp()

	history := make([]models.DailySales, 0, 14)
	cycle := []float64{50, 50, 200, 200, 100, 100, 50}
	dates := []string{
		"2025-01-01", "2025-01-02", "2025-01-03", "2025-01-04", "2025-01-05", "2025-01-06", "2025-01-07",
		"2025-01-08", "2025-01-09", "2025-01-10", "2025-01-11", "2025-01-12", "2025-01-13", "2025-01-14",
	}
	for i, d := range dates {
		history = append(history, models.DailySales{Date: d, Quantity: cycle[i%7]})
	}

	status, parsed := postForecast(t, app, models.DemandForecastRequest{History: history, HorizonDays: 3})
	assert.Equal(t, 200, status)
	assert.Equal(t, true, parsed["success"])

	data := parsed["data"].(map[string]interface{})
	assert.Equal(t, "2025-01-15", data["originDate"])
	forecast := data["forecast"].([]interface{})
	assert.Equal(t, []interface{}{50.0, 50.0, 200.0}, forecast)
}

func TestComputeDemandForecast_EmptyHistory(t *testing.T) {
	app := makeForecastApp()

	status, parsed := postForecast(t, app, models.DemandForecastRequest{History: []models.DailySales{}, HorizonDays: 3})
	assert.Equal(t, 200, status)

	data := parsed["data"].(map[string]interface{})
	assert.Nil(t, data["originDate"])
	forecast := data["forecast"].([]interface{})
	assert.Equal(t, []interface{}{0.0, 0.0, 0.0}, forecast)
}

func TestComputeDemandForecast_ZeroHorizon(t *testing.T) {
	app := makeForecastApp()

	status, parsed := postForecast(t, app, models.DemandForecastRequest{
		History:     []models.DailySales{{Date: "2025-01-06", Quantity: 10}},
		HorizonDays: 0,
	})
	assert.Equal(t, 200, status)

	data := parsed["data"].(map[string]interface{})
	forecast := data["forecast"].([]interface{})
	assert.Empty(t, forecast)
}

func TestComputeDemandForecast_NegativeHorizonRejected(t *testing.T) {
	app := makeForecastApp()

	status, parsed := postForecast(t, app, models.DemandForecastRequest{HorizonDays: -2})
	assert.Equal(t, 400, status)
	assert.Equal(t, false, parsed["success"])
}

func TestComputeDemandForecast_InvalidDateRejected(t *testing.T) {
	app := makeForecastApp()

	status, parsed := postForecast(t, app, models.DemandForecastRequest{
		History:     []models.DailySales{{Date: "01/06/2025", Quantity: 10}},
		HorizonDays: 3,
	})
	assert.Equal(t, 400, status)
	assert.Equal(t, false, parsed["success"])
}

func TestComputeDemandForecast_BadBody(t *testing.T) {
	app := makeForecastApp()

	req := httptest.NewRequest("POST", "/api/v1/brand/forecast/demand", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestForecastRouteNotFound(t *testing.T) {
	app := fiber.New()
	// we don't register forecast routes here; expect 404
	req := httptest.NewRequest("GET", "/api/v1/brand/forecast/demand", nil)
	resp, _ := app.Test(req)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestConstructAnalysisPromptIncludesHistoryAndForecast(t *testing.T) {
	history := []models.DailySales{{Date: "2025-01-06", Quantity: 12}}
	forecast := []models.DailyDemandForecast{{Date: "2025-01-07", PredictedUnits: 12}}

	prompt := constructAnalysisPrompt("Blue Dream 3.5g", "Coastal Farms", history, forecast)
	assert.Contains(t, prompt, "Blue Dream 3.5g")
	assert.Contains(t, prompt, "Coastal Farms")
	assert.Contains(t, prompt, "2025-01-06")
	assert.Contains(t, prompt, "2025-01-07")
}

func TestConstructAnalysisPromptEmptyHistory(t *testing.T) {
	prompt := constructAnalysisPrompt("Product", "Brand", nil, nil)
	assert.Contains(t, prompt, "No sales data available")
}

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, extractJSON("noise before {\"a\":1} noise after"))
	assert.Equal(t, "", extractJSON("no braces here"))
}

func TestLookupProductName_UnknownProduct(t *testing.T) {
	ctx := setupSalesTables(t)

	_, err := lookupProductName(ctx, "brand-1", "no-such-product")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestLookupProductName_ScopedToBrand(t *testing.T) {
	ctx := setupSalesTables(t)
	_, err := database.GetDB().Exec(ctx,
		"INSERT INTO products (id, brand_id, name) VALUES ('prod-1', 'brand-1', 'Indica Gummies')")
	assert.NoError(t, err)

	_, err = lookupProductName(ctx, "brand-2", "prod-1")
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	name, err := lookupProductName(ctx, "brand-1", "prod-1")
	assert.NoError(t, err)
	assert.Equal(t, "Indica Gummies", name)
}
