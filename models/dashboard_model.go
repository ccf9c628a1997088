package models

// SummaryStat wraps a single dashboard metric value.
type SummaryStat struct {
	Value float64 `json:"value"`
}

// ProductSummary is a top-selling product entry on the dashboard.
type ProductSummary struct {
	ProductID    string  `json:"product_id"`
	ProductName  string  `json:"product_name"`
	QuantitySold float64 `json:"quantity_sold"`
	Revenue      float64 `json:"revenue"`
}

// BrandDashboardSummary aggregates the headline numbers for a brand's dashboard.
type BrandDashboardSummary struct {
	TotalSalesRevenue    SummaryStat      `json:"totalSalesRevenue"`
	NumberOfTransactions SummaryStat      `json:"numberOfTransactions"`
	AverageOrderValue    SummaryStat      `json:"averageOrderValue"`
	TopSellingProducts   []ProductSummary `json:"topSellingProducts"`
}

// AdminDashboardSummary aggregates platform-wide counts for the admin view.
type AdminDashboardSummary struct {
	TotalBrands       int `json:"totalBrands"`
	TotalDispensaries int `json:"totalDispensaries"`
	TotalUsers        int `json:"totalUsers"`
	ActiveUsers       int `json:"activeUsers"`
}
