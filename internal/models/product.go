package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices leave the API as JSON numbers, matching what the storefront expects.
	decimal.MarshalJSONWithoutQuotes = true
}

// MaxPrice is the largest value the decimal(10,2) price column holds.
var MaxPrice = decimal.RequireFromString("99999999.99")

// ValidPrice reports whether d is non-negative, has at most two fraction
// digits and fits the price column.
func ValidPrice(d decimal.Decimal) bool {
	return !d.IsNegative() && d.Equal(d.Round(2)) && d.LessThanOrEqual(MaxPrice)
}

// Product is a catalog item with exactly one image in the media store.
type Product struct {
	ID            uint64          `gorm:"primaryKey;autoIncrement" json:"id"`                // Primary key.
	Name          string          `gorm:"type:text;not null" json:"name"`                    // Display name.
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`          // Non-negative unit price.
	Category      string          `gorm:"type:text;not null;index" json:"category"`          // Category name reference.
	ImageFilename string          `gorm:"type:text;not null" json:"image_filename"`          // Media store filename.
	Description   string          `gorm:"type:text;not null;default:''" json:"description"` // Free text description.

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"` // Last update timestamp.
}
