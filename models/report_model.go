package models

import "time"

// DailySales is one historical observation used for demand forecasting:
// the total quantity of a product sold on one calendar date.
type DailySales struct {
	Date     string  `json:"date"` // YYYY-MM-DD
	Quantity float64 `json:"quantity"`
}

// DemandForecastRequest is the body for direct forecast computation.
type DemandForecastRequest struct {
	History     []DailySales `json:"history"`
	HorizonDays int          `json:"horizonDays"`
}

// ForecastPeriod defines the start and end dates for a forecast.
type ForecastPeriod struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// DailyDemandForecast represents the projected demand for a single day.
type DailyDemandForecast struct {
	Date           string  `json:"date"`
	PredictedUnits float64 `json:"predicted_units"`
}

// AiAnalysis contains the qualitative insights from the Gemini model.
type AiAnalysis struct {
	Summary         string   `json:"summary"`
	PositiveFactors []string `json:"positive_factors"`
	NegativeFactors []string `json:"negative_factors"`
}

// DemandForecastResponse is the complete structure for the demand forecast API response.
type DemandForecastResponse struct {
	ReportName     string                `json:"reportName"`
	GeneratedAt    time.Time             `json:"generatedAt"`
	ProductName    string                `json:"productName"`
	BrandName      string                `json:"brandName"`
	ForecastPeriod *ForecastPeriod       `json:"forecastPeriod,omitempty"`
	DailyForecast  []DailyDemandForecast `json:"dailyForecast"`
	AiAnalysis     *AiAnalysis           `json:"aiAnalysis,omitempty"`
}
