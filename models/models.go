package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// --- JWT & Auth ---

type JwtClaims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"userType"`
}

type CreateUserRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Role     string  `json:"role"`
	BrandID  *string `json:"brandId,omitempty"`
}

// --- Core Models ---

// User represents a user in the system (Admin, Brand, or Dispensary operator).
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	Phone        *string   `json:"phone,omitempty"`
	BrandID      *string   `json:"brand_id,omitempty"`
	DispensaryID *string   `json:"dispensary_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Brand represents a cannabis brand tenant using the platform.
type Brand struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	LicenseNumber string    `json:"license_number"`
	State         string    `json:"state"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Dispensary represents a retail location selling a brand's products.
type Dispensary struct {
	ID            string    `json:"id"`
	BrandID       string    `json:"brand_id"`
	Name          string    `json:"name"`
	Address       *string   `json:"address,omitempty"`
	LicenseNumber string    `json:"license_number"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Product is a catalog entry owned by a brand.
type Product struct {
	ID         string    `json:"id"`
	BrandID    string    `json:"brand_id"`
	Name       string    `json:"name"`
	SKU        string    `json:"sku"`
	Category   string    `json:"category"` // flower, edible, concentrate, topical, preroll
	THCPercent *float64  `json:"thc_percent,omitempty"`
	Price      float64   `json:"price"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Sale is one completed transaction at a dispensary.
type Sale struct {
	ID           string     `json:"id"`
	BrandID      string     `json:"brand_id"`
	DispensaryID string     `json:"dispensary_id"`
	SaleDate     time.Time  `json:"sale_date"`
	TotalAmount  float64    `json:"total_amount"`
	Source       string     `json:"source"` // manual, dutchie, leaflink
	Items        []SaleItem `json:"items,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// SaleItem is a line item within a sale.
type SaleItem struct {
	ID        string    `json:"id"`
	SaleID    string    `json:"sale_id"`
	ProductID string    `json:"product_id"`
	Quantity  float64   `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`
	Subtotal  float64   `json:"subtotal"`
	CreatedAt time.Time `json:"created_at"`
}

// ApiCredential stores an encrypted third-party integration key for a brand.
// The key material itself never leaves the database unencrypted; responses
// only carry the masked tail.
type ApiCredential struct {
	ID        string    `json:"id"`
	BrandID   string    `json:"brand_id"`
	Provider  string    `json:"provider"` // dutchie, leaflink
	MaskedKey string    `json:"masked_key"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
