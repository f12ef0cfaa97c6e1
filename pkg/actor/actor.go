// Package actor resolves who is calling, once per request, into a capability:
// Admin, FarmOwner or Public.
package actor

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/domingues497/stockplant/entities"
)

type Kind int

const (
	Public Kind = iota
	FarmOwner
	Admin
)

func (k Kind) String() string {
	switch k {
	case Admin:
		return "ADMIN"
	case FarmOwner:
		return "FARM_OWNER"
	default:
		return "PUBLIC"
	}
}

type Actor struct {
	Kind   Kind
	UserID uint
}

func (a Actor) String() string {
	if a.Kind == Public {
		return a.Kind.String()
	}
	return fmt.Sprintf("%s#%d", a.Kind, a.UserID)
}

func (a Actor) IsAdmin() bool { return a.Kind == Admin }

// Owns reports whether a is the producer owning a resource of ownerID.
func (a Actor) Owns(ownerID uint) bool { return a.Kind == FarmOwner && a.UserID == ownerID }

// CanWrite is true for admins and for the owner.
func (a Actor) CanWrite(ownerID uint) bool { return a.IsAdmin() || a.Owns(ownerID) }

// FromUser maps a stored user to its capability. A nil or inactive user, or
// one without a known role, is Public.
func FromUser(u *entities.User) Actor {
	if u == nil || !u.Active {
		return Actor{Kind: Public}
	}
	switch u.Role {
	case entities.RoleAdmin:
		return Actor{Kind: Admin, UserID: u.ID}
	case entities.RoleProducer:
		return Actor{Kind: FarmOwner, UserID: u.ID}
	default:
		return Actor{Kind: Public, UserID: u.ID}
	}
}

// UserLookup returns (nil, nil) when no user has the id.
type UserLookup interface {
	UserByID(ctx context.Context, id uint) (*entities.User, error)
}

const (
	ctxKey     = "actor"
	cookieName = "UID"
)

// Resolve reads the caller's user id from header (or the UID cookie) and
// stores the resolved Actor on the echo context. A lookup failure aborts the
// request instead of degrading to Public.
func Resolve(users UserLookup, header string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := strings.TrimSpace(c.Request().Header.Get(header))
			if raw == "" {
				if ck, err := c.Cookie(cookieName); err == nil {
					raw = strings.TrimSpace(ck.Value)
				}
			}
			a := Actor{Kind: Public}
			if id, err := strconv.ParseUint(raw, 10, 64); err == nil && id > 0 {
				u, err := users.UserByID(c.Request().Context(), uint(id))
				if err != nil {
					return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not resolve caller"})
				}
				a = FromUser(u)
			}
			c.Set(ctxKey, a)
			return next(c)
		}
	}
}

// From returns the Actor stored by Resolve, Public if there is none.
func From(c echo.Context) Actor {
	if a, ok := c.Get(ctxKey).(Actor); ok {
		return a
	}
	return Actor{Kind: Public}
}

// Require rejects anonymous callers with 401. A resolved user of any other
// kind, customers included, gets 403.
func Require(kinds ...Kind) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			a := From(c)
			if a.Kind == Public && a.UserID == 0 {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			}
			for _, k := range kinds {
				if a.Kind == k {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		}
	}
}
