package serviceImp

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/domingues497/stockplant/entities"
	"github.com/domingues497/stockplant/pkg/actor"
	"github.com/domingues497/stockplant/pkg/allocation"
	"github.com/domingues497/stockplant/pkg/apierr"
	"github.com/domingues497/stockplant/pkg/logger"
	"github.com/domingues497/stockplant/pkg/planting/repository"
	"github.com/domingues497/stockplant/pkg/planting/service"
)

const dateLayout = "2006-01-02"

// areas and yields are stored as decimal(_,2)
const scale = 2

var defaultKgPerBag = decimal.NewFromInt(60)

type plantingSvc struct {
	r     repository.PlantingRepository
	locks *bucketLocks
	log   *logger.Logger
}

func New(r repository.PlantingRepository, log *logger.Logger) service.PlantingService {
	return &plantingSvc{r: r, locks: newBucketLocks(), log: log}
}

func (s *plantingSvc) List(ctx context.Context, a actor.Actor, f service.ListFilter) ([]entities.Planting, error) {
	filter := repository.Filter{FarmID: f.FarmID, Season: f.Season}
	switch {
	case a.IsAdmin():
	case a.Kind == actor.FarmOwner:
		filter.OwnerID = &a.UserID
	default:
		return nil, apierr.Forbidden("only producers have plantings")
	}
	return s.r.List(ctx, filter)
}

func (s *plantingSvc) Get(ctx context.Context, a actor.Actor, id uint) (*entities.Planting, error) {
	p, err := s.find(ctx, s.r, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.farmFor(ctx, s.r, a, p.FarmID, false); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *plantingSvc) Create(ctx context.Context, a actor.Actor, in service.PlantingInput) (*entities.Planting, error) {
	p := &entities.Planting{
		FarmID:   in.FarmID,
		Crop:     strings.TrimSpace(in.Crop),
		Variety:  strings.TrimSpace(in.Variety),
		Area:     in.Area,
		Season:   strings.TrimSpace(in.Season),
		KgPerBag: defaultKgPerBag,
	}
	if in.KgPerBag != nil {
		p.KgPerBag = *in.KgPerBag
	}
	if in.BagsPerHa != nil && !in.BagsPerHa.IsZero() {
		p.BagsPerHa = decimal.NewNullDecimal(*in.BagsPerHa)
	}
	if p.FarmID == 0 {
		return nil, apierr.Invalid("farm_id is required")
	}
	if p.Crop == "" {
		return nil, apierr.Invalid("crop is required")
	}
	var err error
	if p.PlantedOn, err = parseDate("planted_on", in.PlantedOn); err != nil {
		return nil, err
	}
	if in.ExpectedHarvest != "" {
		h, err := parseDate("expected_harvest", in.ExpectedHarvest)
		if err != nil {
			return nil, err
		}
		p.ExpectedHarvest = &h
	}
	if err := check(p); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(p.FarmID, p.Season)
	defer unlock()

	err = s.r.InTx(ctx, func(r repository.PlantingRepository) error {
		if err := s.admit(ctx, r, a, p); err != nil {
			return err
		}
		return r.Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("planting created", "planting_id", p.ID, "farm_id", p.FarmID, "season", p.Season, "area", p.Area.String())
	return p, nil
}

func (s *plantingSvc) Update(ctx context.Context, a actor.Actor, id uint, patch service.PlantingPatch) (*entities.Planting, error) {
	current, err := s.find(ctx, s.r, id)
	if err != nil {
		return nil, err
	}
	target := *current
	if err := apply(&target, patch); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(target.FarmID, target.Season)
	defer unlock()

	var out *entities.Planting
	err = s.r.InTx(ctx, func(r repository.PlantingRepository) error {
		p, err := s.find(ctx, r, id)
		if err != nil {
			return err
		}
		if _, err := s.farmFor(ctx, r, a, p.FarmID, false); err != nil {
			return err
		}
		if err := apply(p, patch); err != nil {
			return err
		}
		if p.FarmID != target.FarmID || p.Season != target.Season {
			return apierr.Conflict("planting changed concurrently, retry")
		}
		if err := s.admit(ctx, r, a, p); err != nil {
			return err
		}
		if err := r.Save(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *plantingSvc) Delete(ctx context.Context, a actor.Actor, id uint) error {
	p, err := s.find(ctx, s.r, id)
	if err != nil {
		return err
	}
	if _, err := s.farmFor(ctx, s.r, a, p.FarmID, false); err != nil {
		return err
	}
	if err := s.r.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierr.NotFound("planting")
		}
		return err
	}
	return nil
}

func (s *plantingSvc) Capacity(ctx context.Context, a actor.Actor, farmID uint, season string) (*service.Capacity, error) {
	season = strings.TrimSpace(season)
	farm, err := s.farmFor(ctx, s.r, a, farmID, false)
	if err != nil {
		return nil, err
	}
	bucket, err := s.r.ListByFarmAndSeason(ctx, farmID, season)
	if err != nil {
		return nil, err
	}
	out := &service.Capacity{FarmID: farmID, Season: season, Used: decimal.Zero, Plantings: len(bucket)}
	for _, p := range bucket {
		out.Used = out.Used.Add(p.Area)
	}
	if limit, ok := allocation.Cap(farm.CultivableArea, farm.TotalArea); ok {
		rem := limit.Sub(out.Used)
		if rem.IsNegative() {
			rem = decimal.Zero
		}
		out.Cap, out.Remaining = &limit, &rem
	}
	return out, nil
}

// admit runs inside the write transaction: it locks the target farm, checks
// ownership and validates p against the rest of its bucket.
func (s *plantingSvc) admit(ctx context.Context, r repository.PlantingRepository, a actor.Actor, p *entities.Planting) error {
	farm, err := s.farmFor(ctx, r, a, p.FarmID, true)
	if err != nil {
		return err
	}
	existing, err := r.SumAreaExcluding(ctx, p.FarmID, p.Season, p.ID)
	if err != nil {
		return err
	}
	err = allocation.ValidateSum(allocation.Candidate{
		CultivableArea: farm.CultivableArea,
		TotalArea:      farm.TotalArea,
		Area:           p.Area,
		Season:         p.Season,
		RecordID:       p.ID,
	}, existing)
	if err != nil {
		s.log.Debug("planting rejected", "farm_id", p.FarmID, "season", p.Season, "err", err)
	}
	return err
}

func (s *plantingSvc) farmFor(ctx context.Context, r repository.PlantingRepository, a actor.Actor, farmID uint, lock bool) (*entities.Farm, error) {
	find := r.FindFarm
	if lock {
		find = r.LockFarm
	}
	farm, err := find(ctx, farmID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierr.NotFound("farm")
	}
	if err != nil {
		return nil, err
	}
	if !a.CanWrite(farm.OwnerID) {
		return nil, apierr.Forbidden("farm belongs to another producer")
	}
	return farm, nil
}

func (s *plantingSvc) find(ctx context.Context, r repository.PlantingRepository, id uint) (*entities.Planting, error) {
	p, err := r.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierr.NotFound("planting")
	}
	return p, err
}

func apply(p *entities.Planting, patch service.PlantingPatch) error {
	if patch.FarmID != nil {
		p.FarmID = *patch.FarmID
	}
	if patch.Crop != nil {
		p.Crop = strings.TrimSpace(*patch.Crop)
		if p.Crop == "" {
			return apierr.Invalid("crop is required")
		}
	}
	if patch.Variety != nil {
		p.Variety = strings.TrimSpace(*patch.Variety)
	}
	if patch.Area != nil {
		p.Area = *patch.Area
	}
	if patch.Season != nil {
		p.Season = strings.TrimSpace(*patch.Season)
	}
	if patch.PlantedOn != nil {
		d, err := parseDate("planted_on", *patch.PlantedOn)
		if err != nil {
			return err
		}
		p.PlantedOn = d
	}
	if patch.ExpectedHarvest != nil {
		if *patch.ExpectedHarvest == "" {
			p.ExpectedHarvest = nil
		} else {
			d, err := parseDate("expected_harvest", *patch.ExpectedHarvest)
			if err != nil {
				return err
			}
			p.ExpectedHarvest = &d
		}
	}
	if patch.BagsPerHa != nil {
		p.BagsPerHa = decimal.NullDecimal{}
		if !patch.BagsPerHa.IsZero() {
			p.BagsPerHa = decimal.NewNullDecimal(*patch.BagsPerHa)
		}
	}
	if patch.KgPerBag != nil {
		p.KgPerBag = *patch.KgPerBag
	}
	return check(p)
}

func parseDate(field, v string) (time.Time, error) {
	d, err := time.Parse(dateLayout, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, apierr.Invalid(field + " must be a YYYY-MM-DD date")
	}
	return d, nil
}

// check covers the field rules that do not need the farm. Area sign and
// capacity are left to allocation.
func check(p *entities.Planting) error {
	if p.ExpectedHarvest != nil && p.ExpectedHarvest.Before(p.PlantedOn) {
		return apierr.Invalid("expected_harvest cannot be before planted_on")
	}
	if err := checkScale("area", p.Area); err != nil {
		return err
	}
	if !p.KgPerBag.IsPositive() {
		return apierr.Invalid("kg_per_bag must be greater than zero")
	}
	if err := checkScale("kg_per_bag", p.KgPerBag); err != nil {
		return err
	}
	if p.BagsPerHa.Valid {
		if p.BagsPerHa.Decimal.IsNegative() {
			return apierr.Invalid("bags_per_ha cannot be negative")
		}
		if err := checkScale("bags_per_ha", p.BagsPerHa.Decimal); err != nil {
			return err
		}
	}
	return nil
}

// checkScale rejects values the decimal(_,2) columns would silently round.
func checkScale(field string, v decimal.Decimal) error {
	if !v.Equal(v.Truncate(scale)) {
		return apierr.Invalid(field + " accepts at most 2 decimal places")
	}
	return nil
}
