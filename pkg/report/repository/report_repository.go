package repository

import (
	"context"

	"github.com/domingues497/stockplant/entities"
)

// ReportRepository reads everything a producer owns; a nil ownerID reads the
// whole system.
type ReportRepository interface {
	Farms(ctx context.Context, ownerID *uint) ([]entities.Farm, error)
	Plantings(ctx context.Context, ownerID *uint) ([]entities.Planting, error)
	Offers(ctx context.Context, ownerID *uint) ([]entities.Offer, error)
}
