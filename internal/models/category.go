package models

import "time"

// Category is a product grouping shown in the storefront filter bar.
type Category struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement" json:"id"`          // Primary key.
	Name string `gorm:"type:text;not null;uniqueIndex" json:"name"` // Unique display name.

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"` // Last update timestamp.
}
