package actor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domingues497/stockplant/entities"
)

type fakeUsers struct {
	users map[uint]*entities.User
	err   error
	calls int
}

func (f *fakeUsers) UserByID(_ context.Context, id uint) (*entities.User, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.users[id], nil
}

func TestFromUser(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		user *entities.User
		want Actor
	}{
		{name: "nil", user: nil, want: Actor{Kind: Public}},
		{name: "admin", user: &entities.User{ID: 1, Role: entities.RoleAdmin, Active: true}, want: Actor{Kind: Admin, UserID: 1}},
		{name: "producer", user: &entities.User{ID: 2, Role: entities.RoleProducer, Active: true}, want: Actor{Kind: FarmOwner, UserID: 2}},
		{name: "customer", user: &entities.User{ID: 3, Role: entities.RoleCustomer, Active: true}, want: Actor{Kind: Public, UserID: 3}},
		{name: "no role", user: &entities.User{ID: 4, Active: true}, want: Actor{Kind: Public, UserID: 4}},
		{name: "inactive admin", user: &entities.User{ID: 5, Role: entities.RoleAdmin}, want: Actor{Kind: Public}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FromUser(tt.user))
		})
	}
}

func TestActor_CanWrite(t *testing.T) {
	t.Parallel()

	owner := Actor{Kind: FarmOwner, UserID: 7}
	assert.True(t, owner.CanWrite(7))
	assert.False(t, owner.CanWrite(8))
	assert.True(t, Actor{Kind: Admin, UserID: 1}.CanWrite(8))
	assert.False(t, Actor{Kind: Public, UserID: 7}.CanWrite(7))
	assert.Equal(t, "FARM_OWNER#7", owner.String())
	assert.Equal(t, "PUBLIC", Actor{}.String())
}

func serve(t *testing.T, users UserLookup, req *http.Request, mw ...echo.MiddlewareFunc) (*httptest.ResponseRecorder, Actor) {
	t.Helper()

	var seen Actor
	e := echo.New()
	e.Use(Resolve(users, "X-User-ID"))
	e.GET("/", func(c echo.Context) error {
		seen = From(c)
		return c.NoContent(http.StatusNoContent)
	}, mw...)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec, seen
}

func TestResolve(t *testing.T) {
	users := &fakeUsers{users: map[uint]*entities.User{
		1: {ID: 1, Role: entities.RoleAdmin, Active: true},
		2: {ID: 2, Role: entities.RoleProducer, Active: true},
	}}

	t.Run("header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-User-ID", "2")
		rec, a := serve(t, users, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, Actor{Kind: FarmOwner, UserID: 2}, a)
	})

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "UID", Value: "1"})
		_, a := serve(t, users, req)
		assert.Equal(t, Actor{Kind: Admin, UserID: 1}, a)
	})

	t.Run("anonymous and unknown users are public", func(t *testing.T) {
		for _, raw := range []string{"", "abc", "0", "99"} {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("X-User-ID", raw)
			rec, a := serve(t, users, req)
			assert.Equal(t, http.StatusNoContent, rec.Code)
			assert.Equal(t, Public, a.Kind, "raw %q", raw)
		}
	})

	t.Run("lookup failure aborts", func(t *testing.T) {
		broken := &fakeUsers{err: errors.New("db down")}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-User-ID", "1")
		rec, _ := serve(t, broken, req)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, 1, broken.calls)
	})
}

func TestRequire(t *testing.T) {
	users := &fakeUsers{users: map[uint]*entities.User{
		1: {ID: 1, Role: entities.RoleAdmin, Active: true},
		2: {ID: 2, Role: entities.RoleProducer, Active: true},
		3: {ID: 3, Role: entities.RoleCustomer, Active: true},
		4: {ID: 4, Role: entities.RoleProducer, Active: false},
	}}

	call := func(id string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if id != "" {
			req.Header.Set("X-User-ID", id)
		}
		rec, _ := serve(t, users, req, Require(Admin))
		return rec.Code
	}

	require.Equal(t, http.StatusNoContent, call("1"))
	require.Equal(t, http.StatusForbidden, call("2"))
	require.Equal(t, http.StatusUnauthorized, call(""))
	// a signed-in customer is known, just not allowed
	require.Equal(t, http.StatusForbidden, call("3"))
	require.Equal(t, http.StatusUnauthorized, call("4"))
}
