package repositoryImp

import (
	"context"

	"gorm.io/gorm"

	"github.com/domingues497/stockplant/entities"
	"github.com/domingues497/stockplant/pkg/offer/repository"
)

type offerRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.OfferRepository { return &offerRepo{db} }

func (r *offerRepo) ListActive(ctx context.Context) ([]entities.Offer, error) {
	var out []entities.Offer
	err := r.db.WithContext(ctx).Where("active = ?", true).Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}

func (r *offerRepo) ListByOwner(ctx context.Context, ownerID uint) ([]entities.Offer, error) {
	var out []entities.Offer
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}

func (r *offerRepo) FindByID(ctx context.Context, id uint) (*entities.Offer, error) {
	var o entities.Offer
	if err := r.db.WithContext(ctx).First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *offerRepo) Create(ctx context.Context, o *entities.Offer) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *offerRepo) Deactivate(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&entities.Offer{}).Where("id = ?", id).Update("active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *offerRepo) PlantingWithFarm(ctx context.Context, plantingID uint) (*entities.Planting, *entities.Farm, error) {
	var p entities.Planting
	if err := r.db.WithContext(ctx).First(&p, plantingID).Error; err != nil {
		return nil, nil, err
	}
	var f entities.Farm
	if err := r.db.WithContext(ctx).First(&f, p.FarmID).Error; err != nil {
		return nil, nil, err
	}
	return &p, &f, nil
}
