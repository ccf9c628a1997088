package models

// AIAssistantRequest defines the structure for requests to the AI assistant.
type AIAssistantRequest struct {
	Prompt string `json:"prompt"`
}

// BestSeller represents a best-selling product.
type BestSeller struct {
	ProductName string  `json:"product_name"`
	TotalSold   float64 `json:"total_sold"`
}

// ComplianceCheckRequest is the body for ad-copy compliance checks.
type ComplianceCheckRequest struct {
	Content string `json:"content"`
}
