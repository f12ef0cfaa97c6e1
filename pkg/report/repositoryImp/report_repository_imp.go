package repositoryImp

import (
	"context"

	"gorm.io/gorm"

	"github.com/domingues497/stockplant/entities"
	"github.com/domingues497/stockplant/pkg/report/repository"
)

type reportRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ReportRepository { return &reportRepo{db} }

func (r *reportRepo) Farms(ctx context.Context, ownerID *uint) ([]entities.Farm, error) {
	q := r.db.WithContext(ctx).Model(&entities.Farm{})
	if ownerID != nil {
		q = q.Where("owner_id = ?", *ownerID)
	}
	var out []entities.Farm
	return out, q.Order("name ASC, id ASC").Find(&out).Error
}

func (r *reportRepo) Plantings(ctx context.Context, ownerID *uint) ([]entities.Planting, error) {
	q := r.db.WithContext(ctx).Model(&entities.Planting{})
	if ownerID != nil {
		q = q.Joins("JOIN farms ON farms.id = plantings.farm_id").
			Where("farms.owner_id = ?", *ownerID).
			Select("plantings.*")
	}
	var out []entities.Planting
	return out, q.Order("plantings.farm_id ASC, plantings.season ASC, plantings.id ASC").Find(&out).Error
}

func (r *reportRepo) Offers(ctx context.Context, ownerID *uint) ([]entities.Offer, error) {
	q := r.db.WithContext(ctx).Model(&entities.Offer{})
	if ownerID != nil {
		q = q.Where("owner_id = ?", *ownerID)
	}
	var out []entities.Offer
	return out, q.Order("created_at DESC, id DESC").Find(&out).Error
}
