package integrations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDutchieFetchDailySales(t *testing.T) {
	client := NewDutchieClient("test-key")

	sales, err := client.FetchDailySales(context.Background(), "disp-1", 7)
	assert.NoError(t, err)
	assert.Len(t, sales, 7)

	// Most recent day last, ending yesterday.
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	assert.Equal(t, yesterday, sales[len(sales)-1].Date)

	for _, s := range sales {
		assert.NotEmpty(t, s.ProductID)
		assert.GreaterOrEqual(t, s.Quantity, 0.0)
		assert.InDelta(t, s.Quantity*35.0, s.Revenue, 0.001)
	}
}

func TestDutchieFetchDailySalesZeroDays(t *testing.T) {
	client := NewDutchieClient("test-key")
	sales, err := client.FetchDailySales(context.Background(), "disp-1", 0)
	assert.NoError(t, err)
	assert.Empty(t, sales)
}

func TestLeafLinkFetchOpenOrders(t *testing.T) {
	client := NewLeafLinkClient("test-key")
	orders, err := client.FetchOpenOrders(context.Background(), "brand-1")
	assert.NoError(t, err)
	assert.NotEmpty(t, orders)
	for _, o := range orders {
		assert.NotEmpty(t, o.OrderID)
		assert.NotEmpty(t, o.Retailer)
		assert.Greater(t, o.TotalAmount, 0.0)
	}
}
