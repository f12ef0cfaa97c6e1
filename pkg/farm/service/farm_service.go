package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/domingues497/stockplant/entities"
	"github.com/domingues497/stockplant/pkg/actor"
)

type FarmService interface {
	List(ctx context.Context, a actor.Actor) ([]entities.Farm, error)
	Get(ctx context.Context, a actor.Actor, id uint) (*entities.Farm, error)
	Create(ctx context.Context, a actor.Actor, in FarmInput) (*entities.Farm, error)
	Update(ctx context.Context, a actor.Actor, id uint, p FarmPatch) (*entities.Farm, error)
	Delete(ctx context.Context, a actor.Actor, id uint) error
}

type FarmInput struct {
	OwnerID        *uint               `json:"owner_id"` // admin only
	Name           string              `json:"name"`
	ZipCode        string              `json:"zip_code"`
	City           string              `json:"city"`
	State          string              `json:"state"`
	TotalArea      decimal.NullDecimal `json:"total_area"`
	CultivableArea decimal.NullDecimal `json:"cultivable_area"`
	Latitude       *float64            `json:"latitude"`
	Longitude      *float64            `json:"longitude"`
}

// FarmPatch leaves nil fields untouched.
type FarmPatch struct {
	Name           *string              `json:"name"`
	ZipCode        *string              `json:"zip_code"`
	City           *string              `json:"city"`
	State          *string              `json:"state"`
	TotalArea      *decimal.NullDecimal `json:"total_area"`
	CultivableArea *decimal.NullDecimal `json:"cultivable_area"`
	Latitude       *float64             `json:"latitude"`
	Longitude      *float64             `json:"longitude"`
}
