package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/domingues497/stockplant/entities"
)

// Filter narrows List; nil fields match everything.
type Filter struct {
	OwnerID *uint
	FarmID  *uint
	Season  *string
}

type PlantingRepository interface {
	// InTx runs fn against a repository bound to a single transaction. Every
	// call inside fn must go through the repository it receives.
	InTx(ctx context.Context, fn func(r PlantingRepository) error) error

	// LockFarm loads the farm row with FOR UPDATE where supported.
	LockFarm(ctx context.Context, farmID uint) (*entities.Farm, error)
	FindFarm(ctx context.Context, farmID uint) (*entities.Farm, error)

	ListByFarmAndSeason(ctx context.Context, farmID uint, season string) ([]entities.Planting, error)
	// SumAreaExcluding sums the (farm, season) bucket leaving out excludeID.
	// excludeID zero excludes nothing.
	SumAreaExcluding(ctx context.Context, farmID uint, season string, excludeID uint) (decimal.Decimal, error)

	FindByID(ctx context.Context, id uint) (*entities.Planting, error)
	List(ctx context.Context, f Filter) ([]entities.Planting, error)
	Create(ctx context.Context, p *entities.Planting) error
	Save(ctx context.Context, p *entities.Planting) error
	// Delete removes the planting and clears the back-reference on its offers.
	Delete(ctx context.Context, id uint) error
}
