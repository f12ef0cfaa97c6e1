package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/domingues497/stockplant/entities"
)

type FarmRepository interface {
	// InTx runs fn against a repository bound to a single transaction.
	InTx(ctx context.Context, fn func(r FarmRepository) error) error

	Create(ctx context.Context, f *entities.Farm) error
	FindByID(ctx context.Context, id uint) (*entities.Farm, error)
	// LockByID is FindByID taking a row lock where the database supports it.
	LockByID(ctx context.Context, id uint) (*entities.Farm, error)
	// List returns every farm when ownerID is nil.
	List(ctx context.Context, ownerID *uint) ([]entities.Farm, error)
	Save(ctx context.Context, f *entities.Farm) error
	// Delete removes the farm and its plantings, detaching their offers.
	Delete(ctx context.Context, id uint) error

	// SeasonSums returns the planted area per season bucket of a farm.
	SeasonSums(ctx context.Context, farmID uint) (map[string]decimal.Decimal, error)
}
