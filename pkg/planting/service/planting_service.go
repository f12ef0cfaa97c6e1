package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/domingues497/stockplant/entities"
	"github.com/domingues497/stockplant/pkg/actor"
)

type PlantingService interface {
	List(ctx context.Context, a actor.Actor, f ListFilter) ([]entities.Planting, error)
	Get(ctx context.Context, a actor.Actor, id uint) (*entities.Planting, error)
	Create(ctx context.Context, a actor.Actor, in PlantingInput) (*entities.Planting, error)
	Update(ctx context.Context, a actor.Actor, id uint, p PlantingPatch) (*entities.Planting, error)
	Delete(ctx context.Context, a actor.Actor, id uint) error
	Capacity(ctx context.Context, a actor.Actor, farmID uint, season string) (*Capacity, error)
}

type ListFilter struct {
	FarmID *uint
	Season *string
}

// Dates are YYYY-MM-DD. KgPerBag defaults to 60 when absent.
type PlantingInput struct {
	FarmID          uint             `json:"farm_id"`
	Crop            string           `json:"crop"`
	Variety         string           `json:"variety"`
	Area            decimal.Decimal  `json:"area"`
	Season          string           `json:"season"`
	PlantedOn       string           `json:"planted_on"`
	ExpectedHarvest string           `json:"expected_harvest"`
	BagsPerHa       *decimal.Decimal `json:"bags_per_ha"`
	KgPerBag        *decimal.Decimal `json:"kg_per_bag"`
}

// PlantingPatch leaves nil fields untouched. An empty ExpectedHarvest and a
// zero BagsPerHa clear them.
type PlantingPatch struct {
	FarmID          *uint            `json:"farm_id"`
	Crop            *string          `json:"crop"`
	Variety         *string          `json:"variety"`
	Area            *decimal.Decimal `json:"area"`
	Season          *string          `json:"season"`
	PlantedOn       *string          `json:"planted_on"`
	ExpectedHarvest *string          `json:"expected_harvest"`
	BagsPerHa       *decimal.Decimal `json:"bags_per_ha"`
	KgPerBag        *decimal.Decimal `json:"kg_per_bag"`
}

// Capacity is the state of one (farm, season) bucket. Cap and Remaining are
// nil when the farm has no area recorded.
type Capacity struct {
	FarmID    uint             `json:"farm_id"`
	Season    string           `json:"season"`
	Cap       *decimal.Decimal `json:"cap"`
	Used      decimal.Decimal  `json:"used"`
	Remaining *decimal.Decimal `json:"remaining"`
	Plantings int              `json:"plantings"`
}
