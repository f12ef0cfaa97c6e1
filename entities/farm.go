package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type Farm struct {
	ID             uint                `gorm:"primaryKey" json:"id"`
	OwnerID        uint                `gorm:"index;not null" json:"owner_id"`
	Name           string              `gorm:"size:150;not null" json:"name"`
	ZipCode        string              `gorm:"size:9" json:"zip_code"`
	City           string              `gorm:"size:100" json:"city"`
	State          string              `gorm:"size:2" json:"state"`
	TotalArea      decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"total_area"`      // ha
	CultivableArea decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"cultivable_area"` // ha
	Latitude       *float64            `json:"latitude"`
	Longitude      *float64            `json:"longitude"`

	Plantings []Planting `gorm:"foreignKey:FarmID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

// Origin is the human readable place an offer produced on this farm comes from.
func (f *Farm) Origin() string {
	switch {
	case f.City != "" && f.State != "":
		return f.City + "/" + f.State
	case f.City != "":
		return f.City
	default:
		return f.State
	}
}
