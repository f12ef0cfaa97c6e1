package repository

import (
	"context"

	"github.com/domingues497/stockplant/entities"
)

type OfferRepository interface {
	ListActive(ctx context.Context) ([]entities.Offer, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]entities.Offer, error)
	FindByID(ctx context.Context, id uint) (*entities.Offer, error)
	Create(ctx context.Context, o *entities.Offer) error
	Deactivate(ctx context.Context, id uint) error

	// PlantingWithFarm loads a planting and the farm it grows on.
	PlantingWithFarm(ctx context.Context, plantingID uint) (*entities.Planting, *entities.Farm, error)
}
