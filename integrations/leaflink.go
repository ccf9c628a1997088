package integrations

import (
	"context"
	"time"
)

// LeafLinkOrder is a wholesale order placed by a retailer on LeafLink.
type LeafLinkOrder struct {
	OrderID     string  `json:"orderId"`
	Retailer    string  `json:"retailer"`
	Status      string  `json:"status"`
	TotalAmount float64 `json:"totalAmount"`
	OrderedAt   string  `json:"orderedAt"` // YYYY-MM-DD
}

// LeafLinkClient reads wholesale order data from the LeafLink API.
// Returns placeholder data until the real REST transport is wired in.
type LeafLinkClient struct {
	apiKey string
}

// NewLeafLinkClient builds a client for the given (decrypted) API key.
func NewLeafLinkClient(apiKey string) *LeafLinkClient {
	return &LeafLinkClient{apiKey: apiKey}
}

// FetchOpenOrders returns the brand's open wholesale orders.
func (l *LeafLinkClient) FetchOpenOrders(ctx context.Context, brandID string) ([]LeafLinkOrder, error) {
	now := time.Now()
	return []LeafLinkOrder{
		{
			OrderID:     "LL-20481",
			Retailer:    "Green Valley Dispensary",
			Status:      "submitted",
			TotalAmount: 4250.00,
			OrderedAt:   now.AddDate(0, 0, -2).Format("2006-01-02"),
		},
		{
			OrderID:     "LL-20495",
			Retailer:    "Harbor Wellness",
			Status:      "accepted",
			TotalAmount: 1830.50,
			OrderedAt:   now.AddDate(0, 0, -1).Format("2006-01-02"),
		},
		{
			OrderID:     "LL-20502",
			Retailer:    "Sunrise Collective",
			Status:      "submitted",
			TotalAmount: 960.00,
			OrderedAt:   now.Format("2006-01-02"),
		},
	}, nil
}
