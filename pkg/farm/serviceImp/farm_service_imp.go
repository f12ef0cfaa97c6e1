package serviceImp

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/domingues497/stockplant/entities"
	"github.com/domingues497/stockplant/pkg/actor"
	"github.com/domingues497/stockplant/pkg/allocation"
	"github.com/domingues497/stockplant/pkg/apierr"
	"github.com/domingues497/stockplant/pkg/farm/repository"
	"github.com/domingues497/stockplant/pkg/farm/service"
)

type farmSvc struct{ r repository.FarmRepository }

func New(r repository.FarmRepository) service.FarmService { return &farmSvc{r} }

func (s *farmSvc) List(ctx context.Context, a actor.Actor) ([]entities.Farm, error) {
	if a.IsAdmin() {
		return s.r.List(ctx, nil)
	}
	if a.Kind != actor.FarmOwner {
		return nil, apierr.Forbidden("only producers have farms")
	}
	return s.r.List(ctx, &a.UserID)
}

func (s *farmSvc) Get(ctx context.Context, a actor.Actor, id uint) (*entities.Farm, error) {
	return s.owned(ctx, s.r, a, id, false)
}

func (s *farmSvc) Create(ctx context.Context, a actor.Actor, in service.FarmInput) (*entities.Farm, error) {
	f := &entities.Farm{
		Name:           strings.TrimSpace(in.Name),
		ZipCode:        strings.TrimSpace(in.ZipCode),
		City:           strings.TrimSpace(in.City),
		State:          strings.ToUpper(strings.TrimSpace(in.State)),
		TotalArea:      in.TotalArea,
		CultivableArea: in.CultivableArea,
		Latitude:       in.Latitude,
		Longitude:      in.Longitude,
	}
	switch {
	case a.IsAdmin():
		if in.OwnerID == nil || *in.OwnerID == 0 {
			return nil, apierr.Invalid("owner_id is required")
		}
		f.OwnerID = *in.OwnerID
	case a.Kind == actor.FarmOwner:
		f.OwnerID = a.UserID
	default:
		return nil, apierr.Forbidden("only producers can register farms")
	}
	if err := validate(f); err != nil {
		return nil, err
	}
	if err := s.r.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *farmSvc) Update(ctx context.Context, a actor.Actor, id uint, p service.FarmPatch) (*entities.Farm, error) {
	var out *entities.Farm
	err := s.r.InTx(ctx, func(r repository.FarmRepository) error {
		f, err := s.owned(ctx, r, a, id, true)
		if err != nil {
			return err
		}
		capChanged := apply(f, p)
		if err := validate(f); err != nil {
			return err
		}
		if capChanged {
			buckets, err := r.SeasonSums(ctx, f.ID)
			if err != nil {
				return err
			}
			if err := allocation.ValidateCapChange(f.CultivableArea, f.TotalArea, buckets); err != nil {
				return err
			}
		}
		if err := r.Save(ctx, f); err != nil {
			return err
		}
		out = f
		return nil
	})
	return out, err
}

func (s *farmSvc) Delete(ctx context.Context, a actor.Actor, id uint) error {
	if _, err := s.owned(ctx, s.r, a, id, false); err != nil {
		return err
	}
	if err := s.r.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierr.NotFound("farm")
		}
		return err
	}
	return nil
}

// owned loads a farm the actor may see; lock takes the row lock for writes.
func (s *farmSvc) owned(ctx context.Context, r repository.FarmRepository, a actor.Actor, id uint, lock bool) (*entities.Farm, error) {
	find := r.FindByID
	if lock {
		find = r.LockByID
	}
	f, err := find(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierr.NotFound("farm")
	}
	if err != nil {
		return nil, err
	}
	if !a.CanWrite(f.OwnerID) {
		return nil, apierr.Forbidden("farm belongs to another producer")
	}
	return f, nil
}

func apply(f *entities.Farm, p service.FarmPatch) (capChanged bool) {
	if p.Name != nil {
		f.Name = strings.TrimSpace(*p.Name)
	}
	if p.ZipCode != nil {
		f.ZipCode = strings.TrimSpace(*p.ZipCode)
	}
	if p.City != nil {
		f.City = strings.TrimSpace(*p.City)
	}
	if p.State != nil {
		f.State = strings.ToUpper(strings.TrimSpace(*p.State))
	}
	if p.TotalArea != nil {
		f.TotalArea = *p.TotalArea
		capChanged = true
	}
	if p.CultivableArea != nil {
		f.CultivableArea = *p.CultivableArea
		capChanged = true
	}
	if p.Latitude != nil {
		f.Latitude = p.Latitude
	}
	if p.Longitude != nil {
		f.Longitude = p.Longitude
	}
	return capChanged
}

func validate(f *entities.Farm) error {
	if f.Name == "" {
		return apierr.Invalid("name is required")
	}
	for _, area := range []decimal.NullDecimal{f.TotalArea, f.CultivableArea} {
		if area.Valid && !area.Decimal.IsPositive() {
			return apierr.Invalid("areas must be greater than zero")
		}
		// the columns keep two places; rounding would move the cap
		if area.Valid && !area.Decimal.Equal(area.Decimal.Truncate(2)) {
			return apierr.Invalid("areas accept at most 2 decimal places")
		}
	}
	if f.TotalArea.Valid && f.CultivableArea.Valid && f.CultivableArea.Decimal.GreaterThan(f.TotalArea.Decimal) {
		return apierr.Invalid("cultivable_area cannot exceed total_area")
	}
	return nil
}
