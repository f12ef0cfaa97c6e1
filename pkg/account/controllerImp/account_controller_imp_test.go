package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domingues497/stockplant/entities"
	"github.com/domingues497/stockplant/pkg/account/repositoryImp"
	"github.com/domingues497/stockplant/pkg/account/serviceImp"
	"github.com/domingues497/stockplant/pkg/actor"
	"github.com/domingues497/stockplant/pkg/logger"
	"github.com/domingues497/stockplant/pkg/testutil"
)

func TestAccountRoutes(t *testing.T) {
	db := testutil.DB(t)
	admin := testutil.SeedUser(t, db, "root", entities.RoleAdmin)
	producer := testutil.SeedUser(t, db, "ana", entities.RoleProducer)

	svc := serviceImp.New(repositoryImp.New(db))
	h := New(svc, logger.Nop())

	e := echo.New()
	e.Use(actor.Resolve(svc, "X-User-ID"))
	e.GET("/api/auth/me", h.Me)
	adm := e.Group("/api/admin", actor.Require(actor.Admin))
	adm.GET("/users", h.ListUsers)
	adm.POST("/users", h.CreateUser)
	adm.PATCH("/users/:id", h.UpdateUser)

	do := func(method, path string, uid uint, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		if uid != 0 {
			req.Header.Set("X-User-ID", strconv.FormatUint(uint64(uid), 10))
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	t.Run("me", func(t *testing.T) {
		rec := do(http.MethodGet, "/api/auth/me", producer.ID, "")
		require.Equal(t, http.StatusOK, rec.Code)
		var me map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
		assert.Equal(t, "ana", me["username"])

		rec = do(http.MethodGet, "/api/auth/me", 0, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"role":"PUBLIC"`)
	})

	t.Run("admin only", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, do(http.MethodGet, "/api/admin/users", producer.ID, "").Code)
		assert.Equal(t, http.StatusUnauthorized, do(http.MethodGet, "/api/admin/users", 0, "").Code)
		assert.Equal(t, http.StatusOK, do(http.MethodGet, "/api/admin/users", admin.ID, "").Code)
	})

	t.Run("create and patch", func(t *testing.T) {
		rec := do(http.MethodPost, "/api/admin/users", admin.ID, `{"username":"caio","email":"c@x.io","role":"CLIENTE"}`)
		require.Equal(t, http.StatusCreated, rec.Code)
		var u entities.User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &u))
		assert.True(t, u.Active)

		rec = do(http.MethodPatch, "/api/admin/users/"+strconv.FormatUint(uint64(u.ID), 10), admin.ID, `{"is_active":false}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"is_active":false`)

		assert.Equal(t, http.StatusBadRequest, do(http.MethodPatch, "/api/admin/users/x", admin.ID, `{}`).Code)
		assert.Equal(t, http.StatusConflict, do(http.MethodPost, "/api/admin/users", admin.ID, `{"username":"caio","role":"CLIENTE"}`).Code)
	})
}
