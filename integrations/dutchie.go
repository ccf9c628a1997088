package integrations

import (
	"context"
	"time"
)

// DutchiePOSSale is one day of POS sales for a product as reported by Dutchie.
type DutchiePOSSale struct {
	Date      string  `json:"date"` // YYYY-MM-DD
	ProductID string  `json:"productId"`
	Quantity  float64 `json:"quantity"`
	Revenue   float64 `json:"revenue"`
}

// DutchieClient pulls point-of-sale data from the Dutchie API.
//
// The client currently returns representative placeholder data; the real
// Dutchie GraphQL transport drops in behind FetchDailySales without the
// callers changing.
type DutchieClient struct {
	apiKey string
}

// NewDutchieClient builds a client for the given (decrypted) API key.
func NewDutchieClient(apiKey string) *DutchieClient {
	return &DutchieClient{apiKey: apiKey}
}

// FetchDailySales returns per-day sales for a dispensary over the trailing
// number of days, most recent day last.
func (d *DutchieClient) FetchDailySales(ctx context.Context, dispensaryID string, days int) ([]DutchiePOSSale, error) {
	if days <= 0 {
		return []DutchiePOSSale{}, nil
	}

	// Placeholder payload shaped like a real Dutchie sales pull.
	quantities := []float64{42, 38, 55, 61, 73, 89, 47}
	sales := make([]DutchiePOSSale, 0, days)
	today := time.Now()
	for i := days; i >= 1; i-- {
		day := today.AddDate(0, 0, -i)
		qty := quantities[day.Weekday()]
		sales = append(sales, DutchiePOSSale{
			Date:      day.Format("2006-01-02"),
			ProductID: "dutchie-sample-product",
			Quantity:  qty,
			Revenue:   qty * 35.0,
		})
	}
	return sales, nil
}
