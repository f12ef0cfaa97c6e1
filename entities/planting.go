package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type Planting struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	FarmID          uint            `gorm:"index:idx_planting_bucket,priority:1;not null" json:"farm_id"`
	Crop            string          `gorm:"size:100;not null" json:"crop"`
	Variety         string          `gorm:"size:100" json:"variety"`
	Area            decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"area"` // ha
	Season          string          `gorm:"size:20;not null;default:'';index:idx_planting_bucket,priority:2" json:"season"`
	PlantedOn       time.Time       `json:"planted_on"`
	ExpectedHarvest *time.Time      `json:"expected_harvest"`

	// yield estimate; BagsPerHa is unset until the producer records it
	BagsPerHa decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"bags_per_ha"`
	KgPerBag  decimal.Decimal     `gorm:"type:decimal(10,2);not null;default:60" json:"kg_per_bag"`

	Offers []Offer `gorm:"foreignKey:PlantingID;constraint:OnDelete:SET NULL" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

// StockKg estimates the harvested stock as area x bags/ha x kg/bag. ok is
// false while the yield is unknown.
func (p Planting) StockKg() (kg decimal.Decimal, ok bool) {
	if !p.BagsPerHa.Valid {
		return decimal.Zero, false
	}
	return p.Area.Mul(p.BagsPerHa.Decimal).Mul(p.KgPerBag), true
}
