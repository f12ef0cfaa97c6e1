package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/domingues497/stockplant/entities"
	"github.com/domingues497/stockplant/pkg/actor"
	"github.com/domingues497/stockplant/pkg/listing"
)

type OfferService interface {
	// Catalog is the public view: active offers through listing.Query.
	Catalog(ctx context.Context, f listing.Filter) ([]entities.Offer, error)
	Mine(ctx context.Context, a actor.Actor) ([]entities.Offer, error)
	Publish(ctx context.Context, a actor.Actor, in OfferInput) (*entities.Offer, error)
	Deactivate(ctx context.Context, a actor.Actor, id uint) (*entities.Offer, error)
}

// OfferInput either points at a planting (crop and variety are copied from
// it) or carries free text crop fields.
type OfferInput struct {
	PlantingID *uint           `json:"planting_id"`
	Crop       string          `json:"crop"`
	Variety    string          `json:"variety"`
	Origin     string          `json:"origin"`
	PricePerKg decimal.Decimal `json:"price_per_kg"`
	QuantityKg decimal.Decimal `json:"quantity_kg"`
}
