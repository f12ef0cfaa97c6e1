package serviceImp

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/domingues497/stockplant/entities"
	"github.com/domingues497/stockplant/pkg/actor"
	"github.com/domingues497/stockplant/pkg/apierr"
	"github.com/domingues497/stockplant/pkg/listing"
	"github.com/domingues497/stockplant/pkg/offer/repository"
	"github.com/domingues497/stockplant/pkg/offer/service"
)

type offerSvc struct{ r repository.OfferRepository }

func New(r repository.OfferRepository) service.OfferService { return &offerSvc{r} }

func (s *offerSvc) Catalog(ctx context.Context, f listing.Filter) ([]entities.Offer, error) {
	active, err := s.r.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return listing.Query(active, f), nil
}

func (s *offerSvc) Mine(ctx context.Context, a actor.Actor) ([]entities.Offer, error) {
	if a.Kind == actor.Public {
		return nil, apierr.Forbidden("sign in to see your offers")
	}
	return s.r.ListByOwner(ctx, a.UserID)
}

func (s *offerSvc) Publish(ctx context.Context, a actor.Actor, in service.OfferInput) (*entities.Offer, error) {
	if a.Kind != actor.FarmOwner && !a.IsAdmin() {
		return nil, apierr.Forbidden("only producers can publish offers")
	}
	if !in.PricePerKg.IsPositive() {
		return nil, apierr.Invalid("price_per_kg must be greater than zero")
	}
	if !in.QuantityKg.IsPositive() {
		return nil, apierr.Invalid("quantity_kg must be greater than zero")
	}

	o := &entities.Offer{
		OwnerID:    &a.UserID,
		Crop:       strings.TrimSpace(in.Crop),
		Variety:    strings.TrimSpace(in.Variety),
		Origin:     strings.TrimSpace(in.Origin),
		PricePerKg: in.PricePerKg,
		QuantityKg: in.QuantityKg,
		Active:     true,
	}
	if in.PlantingID != nil {
		p, farm, err := s.r.PlantingWithFarm(ctx, *in.PlantingID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("planting")
		}
		if err != nil {
			return nil, err
		}
		if !a.CanWrite(farm.OwnerID) {
			return nil, apierr.Forbidden("planting belongs to another producer")
		}
		o.PlantingID = &p.ID
		o.Crop, o.Variety = p.Crop, p.Variety
		if o.Origin == "" {
			o.Origin = farm.Origin()
		}
		// an admin publishing on behalf of a producer keeps the producer as owner
		o.OwnerID = &farm.OwnerID
	}
	if o.Crop == "" {
		return nil, apierr.Invalid("crop is required")
	}
	if err := s.r.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *offerSvc) Deactivate(ctx context.Context, a actor.Actor, id uint) (*entities.Offer, error) {
	o, err := s.r.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierr.NotFound("offer")
	}
	if err != nil {
		return nil, err
	}
	if !a.IsAdmin() && (o.OwnerID == nil || !a.Owns(*o.OwnerID)) {
		return nil, apierr.Forbidden("offer belongs to another producer")
	}
	if err := s.r.Deactivate(ctx, id); err != nil {
		return nil, err
	}
	o.Active = false
	return o, nil
}
