package service

import (
	"context"

	"github.com/domingues497/stockplant/entities"
	"github.com/domingues497/stockplant/pkg/actor"
)

type CultivarService interface {
	// List filters by crop name when one is given, else by crop info id.
	List(ctx context.Context, f ListFilter) ([]entities.Cultivar, error)
	// Create is admin only. The cultivar is linked to the CropInfo of the
	// same name, created on first use, and takes its spelling.
	Create(ctx context.Context, a actor.Actor, in CultivarInput) (*entities.Cultivar, error)
}

type ListFilter struct {
	Crop       string
	CropInfoID *uint
}

type CultivarInput struct {
	Crop    string `json:"crop"`
	Variety string `json:"variety"`
}
