package repositoryImp

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/domingues497/stockplant/entities"
	"github.com/domingues497/stockplant/pkg/farm/repository"
)

type farmRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.FarmRepository { return &farmRepo{db} }

func (r *farmRepo) InTx(ctx context.Context, fn func(repository.FarmRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&farmRepo{tx})
	})
}

func (r *farmRepo) Create(ctx context.Context, f *entities.Farm) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *farmRepo) FindByID(ctx context.Context, id uint) (*entities.Farm, error) {
	var f entities.Farm
	if err := r.db.WithContext(ctx).First(&f, id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *farmRepo) LockByID(ctx context.Context, id uint) (*entities.Farm, error) {
	var f entities.Farm
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		First(&f, id).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *farmRepo) List(ctx context.Context, ownerID *uint) ([]entities.Farm, error) {
	q := r.db.WithContext(ctx).Model(&entities.Farm{})
	if ownerID != nil {
		q = q.Where("owner_id = ?", *ownerID)
	}
	var out []entities.Farm
	return out, q.Order("name ASC, id ASC").Find(&out).Error
}

func (r *farmRepo) Save(ctx context.Context, f *entities.Farm) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *farmRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sub := tx.Model(&entities.Planting{}).Select("id").Where("farm_id = ?", id)
		if err := tx.Model(&entities.Offer{}).
			Where("planting_id IN (?)", sub).
			Update("planting_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("farm_id = ?", id).Delete(&entities.Planting{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&entities.Farm{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *farmRepo) SeasonSums(ctx context.Context, farmID uint) (map[string]decimal.Decimal, error) {
	var rows []struct {
		Season string
		Area   decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&entities.Planting{}).
		Select("season, area").
		Where("farm_id = ?", farmID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	// summed here, not in SQL: SQLite would hand back a float
	out := make(map[string]decimal.Decimal)
	for _, row := range rows {
		out[row.Season] = out[row.Season].Add(row.Area)
	}
	return out, nil
}
