package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type Offer struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	PlantingID *uint           `gorm:"index" json:"planting_id"`
	OwnerID    *uint           `gorm:"index" json:"owner_id,omitempty"`
	Crop       string          `gorm:"size:100;not null" json:"crop"`
	Variety    string          `gorm:"size:100" json:"variety"`
	Origin     string          `gorm:"size:255" json:"origin"`
	PricePerKg decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price_per_kg"`
	QuantityKg decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"quantity_kg"`
	Active     bool            `gorm:"not null;index" json:"active"`
	CreatedAt  time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time       `json:"-"`
}
