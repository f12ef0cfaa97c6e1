package serviceImp

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/domingues497/stockplant/entities"
	"github.com/domingues497/stockplant/pkg/account/repository"
	"github.com/domingues497/stockplant/pkg/account/service"
	"github.com/domingues497/stockplant/pkg/actor"
	"github.com/domingues497/stockplant/pkg/apierr"
)

type accountSvc struct{ r repository.UserRepository }

func New(r repository.UserRepository) service.AccountService { return &accountSvc{r} }

// UserByID satisfies actor.UserLookup: a missing user is (nil, nil).
func (s *accountSvc) UserByID(ctx context.Context, id uint) (*entities.User, error) {
	u, err := s.r.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return u, err
}

func (s *accountSvc) Me(ctx context.Context, a actor.Actor) (*service.Me, error) {
	me := &service.Me{Role: a.Kind.String(), Actor: a.String()}
	if a.UserID == 0 {
		return me, nil
	}
	u, err := s.UserByID(ctx, a.UserID)
	if err != nil {
		return nil, err
	}
	if u != nil {
		me.ID, me.Username, me.Email = u.ID, u.Username, u.Email
		if u.Role != "" {
			me.Role = u.Role
		}
	}
	return me, nil
}

func (s *accountSvc) CreateUser(ctx context.Context, in service.CreateUserInput) (*entities.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, apierr.Invalid("username is required")
	}
	role := strings.ToUpper(strings.TrimSpace(in.Role))
	if !entities.ValidRole(role) {
		return nil, apierr.Invalid("role must be one of ADMIN, PRODUTOR, CLIENTE")
	}
	if _, err := s.r.FindByUsername(ctx, username); err == nil {
		return nil, apierr.Conflict("username already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	u := &entities.User{Username: username, Email: strings.TrimSpace(in.Email), Role: role, Active: true}
	if err := s.r.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *accountSvc) ListUsers(ctx context.Context, role string) ([]entities.User, error) {
	return s.r.List(ctx, strings.ToUpper(strings.TrimSpace(role)))
}

func (s *accountSvc) UpdateUser(ctx context.Context, id uint, p service.UserPatch) (*entities.User, error) {
	if _, err := s.r.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("user")
		}
		return nil, err
	}
	upd := map[string]any{}
	if p.Email != nil {
		upd["email"] = strings.TrimSpace(*p.Email)
	}
	if p.Role != nil {
		role := strings.ToUpper(strings.TrimSpace(*p.Role))
		if !entities.ValidRole(role) {
			return nil, apierr.Invalid("role must be one of ADMIN, PRODUTOR, CLIENTE")
		}
		upd["role"] = role
	}
	if p.Active != nil {
		upd["active"] = *p.Active
	}
	if err := s.r.Updates(ctx, id, upd); err != nil {
		return nil, err
	}
	return s.r.FindByID(ctx, id)
}
