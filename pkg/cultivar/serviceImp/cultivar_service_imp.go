package serviceImp

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/domingues497/stockplant/entities"
	"github.com/domingues497/stockplant/pkg/actor"
	"github.com/domingues497/stockplant/pkg/apierr"
	"github.com/domingues497/stockplant/pkg/cultivar/repository"
	"github.com/domingues497/stockplant/pkg/cultivar/service"
)

type cultivarSvc struct{ r repository.CultivarRepository }

func New(r repository.CultivarRepository) service.CultivarService { return &cultivarSvc{r} }

func (s *cultivarSvc) List(ctx context.Context, f service.ListFilter) ([]entities.Cultivar, error) {
	filter := repository.Filter{Crop: strings.TrimSpace(f.Crop)}
	if filter.Crop == "" {
		filter.CropInfoID = f.CropInfoID
	}
	return s.r.List(ctx, filter)
}

func (s *cultivarSvc) Create(ctx context.Context, a actor.Actor, in service.CultivarInput) (*entities.Cultivar, error) {
	if !a.IsAdmin() {
		return nil, apierr.Forbidden("only admins maintain the cultivar catalog")
	}
	crop, variety := strings.TrimSpace(in.Crop), strings.TrimSpace(in.Variety)
	if crop == "" {
		return nil, apierr.Invalid("crop is required")
	}
	if variety == "" {
		return nil, apierr.Invalid("variety is required")
	}

	c := &entities.Cultivar{Variety: variety}
	err := s.r.InTx(ctx, func(r repository.CultivarRepository) error {
		info, err := r.FindCropInfoByName(ctx, crop)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			info = &entities.CropInfo{Name: crop}
			err = r.CreateCropInfo(ctx, info)
		}
		if err != nil {
			return err
		}
		c.Crop, c.CropInfoID = info.Name, &info.ID

		dup, err := r.Exists(ctx, c.Crop, c.Variety)
		if err != nil {
			return err
		}
		if dup {
			return apierr.Conflict("cultivar already in the catalog")
		}
		return r.Create(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}
