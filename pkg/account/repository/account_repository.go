package repository

import (
	"context"

	"github.com/domingues497/stockplant/entities"
)

type UserRepository interface {
	Create(ctx context.Context, u *entities.User) error
	FindByID(ctx context.Context, id uint) (*entities.User, error)
	FindByUsername(ctx context.Context, username string) (*entities.User, error)
	List(ctx context.Context, role string) ([]entities.User, error)
	Updates(ctx context.Context, id uint, fields map[string]any) error
}
