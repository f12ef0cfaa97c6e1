package repositoryImp

import (
	"context"

	"gorm.io/gorm"

	"github.com/domingues497/stockplant/entities"
	"github.com/domingues497/stockplant/pkg/cultivar/repository"
)

type cultivarRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.CultivarRepository { return &cultivarRepo{db} }

func (r *cultivarRepo) InTx(ctx context.Context, fn func(repository.CultivarRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&cultivarRepo{tx})
	})
}

func (r *cultivarRepo) List(ctx context.Context, f repository.Filter) ([]entities.Cultivar, error) {
	q := r.db.WithContext(ctx).Model(&entities.Cultivar{})
	if f.Crop != "" {
		q = q.Where("LOWER(crop) = LOWER(?)", f.Crop)
	}
	if f.CropInfoID != nil {
		q = q.Where("crop_info_id = ?", *f.CropInfoID)
	}
	var out []entities.Cultivar
	return out, q.Order("crop ASC, variety ASC, id ASC").Find(&out).Error
}

func (r *cultivarRepo) Create(ctx context.Context, c *entities.Cultivar) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cultivarRepo) Exists(ctx context.Context, crop, variety string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entities.Cultivar{}).
		Where("LOWER(crop) = LOWER(?) AND LOWER(variety) = LOWER(?)", crop, variety).
		Count(&n).Error
	return n > 0, err
}

func (r *cultivarRepo) FindCropInfoByName(ctx context.Context, name string) (*entities.CropInfo, error) {
	var info entities.CropInfo
	if err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&info).Error; err != nil {
		return nil, err
	}
	return &info, nil
}

func (r *cultivarRepo) CreateCropInfo(ctx context.Context, info *entities.CropInfo) error {
	return r.db.WithContext(ctx).Create(info).Error
}
