package service

import (
	"context"

	"github.com/domingues497/stockplant/entities"
	"github.com/domingues497/stockplant/pkg/actor"
)

type AccountService interface {
	UserByID(ctx context.Context, id uint) (*entities.User, error)
	Me(ctx context.Context, a actor.Actor) (*Me, error)
	CreateUser(ctx context.Context, in CreateUserInput) (*entities.User, error)
	ListUsers(ctx context.Context, role string) ([]entities.User, error)
	UpdateUser(ctx context.Context, id uint, p UserPatch) (*entities.User, error)
}

type Me struct {
	ID       uint   `json:"id,omitempty"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
	Actor    string `json:"actor"`
}

type CreateUserInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type UserPatch struct {
	Email  *string `json:"email"`
	Role   *string `json:"role"`
	Active *bool   `json:"is_active"`
}
