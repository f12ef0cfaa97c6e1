package repository

import (
	"context"

	"github.com/domingues497/stockplant/entities"
)

// Filter matches Crop case-insensitively. Zero fields match everything.
type Filter struct {
	Crop       string
	CropInfoID *uint
}

type CultivarRepository interface {
	// InTx runs fn against a repository bound to one transaction.
	InTx(ctx context.Context, fn func(r CultivarRepository) error) error

	List(ctx context.Context, f Filter) ([]entities.Cultivar, error)
	Create(ctx context.Context, c *entities.Cultivar) error
	Exists(ctx context.Context, crop, variety string) (bool, error)

	FindCropInfoByName(ctx context.Context, name string) (*entities.CropInfo, error)
	CreateCropInfo(ctx context.Context, info *entities.CropInfo) error
}
