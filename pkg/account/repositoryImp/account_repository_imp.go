package repositoryImp

import (
	"context"

	"gorm.io/gorm"

	"github.com/domingues497/stockplant/entities"
	"github.com/domingues497/stockplant/pkg/account/repository"
)

type userRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.UserRepository { return &userRepo{db} }

func (r *userRepo) Create(ctx context.Context, u *entities.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *userRepo) FindByID(ctx context.Context, id uint) (*entities.User, error) {
	var u entities.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	var u entities.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) List(ctx context.Context, role string) ([]entities.User, error) {
	q := r.db.WithContext(ctx).Model(&entities.User{})
	if role != "" {
		q = q.Where("role = ?", role)
	}
	var out []entities.User
	return out, q.Order("username ASC").Find(&out).Error
}

func (r *userRepo) Updates(ctx context.Context, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&entities.User{}).Where("id = ?", id).Updates(fields).Error
}
