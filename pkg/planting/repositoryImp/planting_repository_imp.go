package repositoryImp

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/domingues497/stockplant/entities"
	"github.com/domingues497/stockplant/pkg/planting/repository"
)

type plantingRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.PlantingRepository { return &plantingRepo{db} }

func (r *plantingRepo) InTx(ctx context.Context, fn func(repository.PlantingRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&plantingRepo{tx})
	})
}

func (r *plantingRepo) LockFarm(ctx context.Context, farmID uint) (*entities.Farm, error) {
	var f entities.Farm
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		First(&f, farmID).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *plantingRepo) FindFarm(ctx context.Context, farmID uint) (*entities.Farm, error) {
	var f entities.Farm
	if err := r.db.WithContext(ctx).First(&f, farmID).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *plantingRepo) ListByFarmAndSeason(ctx context.Context, farmID uint, season string) ([]entities.Planting, error) {
	var out []entities.Planting
	err := r.db.WithContext(ctx).
		Where("farm_id = ? AND season = ?", farmID, season).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

func (r *plantingRepo) SumAreaExcluding(ctx context.Context, farmID uint, season string, excludeID uint) (decimal.Decimal, error) {
	q := r.db.WithContext(ctx).Model(&entities.Planting{}).
		Where("farm_id = ? AND season = ?", farmID, season)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var rows []struct{ Area decimal.Decimal }
	if err := q.Select("area").Find(&rows).Error; err != nil {
		return decimal.Zero, err
	}
	// SUM() on SQLite goes through float64; add exactly here instead
	sum := decimal.Zero
	for _, row := range rows {
		sum = sum.Add(row.Area)
	}
	return sum, nil
}

func (r *plantingRepo) FindByID(ctx context.Context, id uint) (*entities.Planting, error) {
	var p entities.Planting
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *plantingRepo) List(ctx context.Context, f repository.Filter) ([]entities.Planting, error) {
	q := r.db.WithContext(ctx).Model(&entities.Planting{})
	if f.OwnerID != nil {
		q = q.Joins("JOIN farms ON farms.id = plantings.farm_id").
			Where("farms.owner_id = ?", *f.OwnerID).
			Select("plantings.*")
	}
	if f.FarmID != nil {
		q = q.Where("plantings.farm_id = ?", *f.FarmID)
	}
	if f.Season != nil {
		q = q.Where("plantings.season = ?", *f.Season)
	}
	var out []entities.Planting
	return out, q.Order("plantings.planted_on DESC, plantings.id DESC").Find(&out).Error
}

func (r *plantingRepo) Create(ctx context.Context, p *entities.Planting) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *plantingRepo) Save(ctx context.Context, p *entities.Planting) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *plantingRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.Offer{}).
			Where("planting_id = ?", id).
			Update("planting_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&entities.Planting{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
