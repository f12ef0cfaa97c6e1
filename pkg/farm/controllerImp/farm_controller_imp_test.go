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
	accountRepo "github.com/domingues497/stockplant/pkg/account/repositoryImp"
	accountSvc "github.com/domingues497/stockplant/pkg/account/serviceImp"
	"github.com/domingues497/stockplant/pkg/actor"
	"github.com/domingues497/stockplant/pkg/farm/repositoryImp"
	"github.com/domingues497/stockplant/pkg/farm/serviceImp"
	"github.com/domingues497/stockplant/pkg/logger"
	"github.com/domingues497/stockplant/pkg/testutil"
)

func TestFarmRoutes(t *testing.T) {
	db := testutil.DB(t)
	ana := testutil.SeedUser(t, db, "ana", entities.RoleProducer)
	cli := testutil.SeedUser(t, db, "caio", entities.RoleCustomer)

	h := New(serviceImp.New(repositoryImp.New(db)), logger.Nop())
	e := echo.New()
	e.Use(actor.Resolve(accountSvc.New(accountRepo.New(db)), "X-User-ID"))
	g := e.Group("/api/farm/farms", actor.Require(actor.FarmOwner, actor.Admin))
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Delete)

	do := func(method, path string, uid uint, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set("X-User-ID", strconv.FormatUint(uint64(uid), 10))
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	rec := do(http.MethodPost, "/api/farm/farms", ana.ID, `{"name":"Boa Vista","city":"Castro","state":"pr","total_area":120,"cultivable_area":"100.5"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var f entities.Farm
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &f))
	assert.Equal(t, "PR", f.State)
	assert.Equal(t, ana.ID, f.OwnerID)
	assert.Equal(t, "100.5", f.CultivableArea.Decimal.String())
	path := "/api/farm/farms/" + strconv.FormatUint(uint64(f.ID), 10)

	assert.Equal(t, http.StatusBadRequest, do(http.MethodPost, "/api/farm/farms", ana.ID, `{"name":`).Code)
	assert.Equal(t, http.StatusForbidden, do(http.MethodGet, "/api/farm/farms", cli.ID, "").Code)
	assert.Equal(t, http.StatusOK, do(http.MethodGet, path, ana.ID, "").Code)
	assert.Equal(t, http.StatusBadRequest, do(http.MethodGet, "/api/farm/farms/abc", ana.ID, "").Code)

	testutil.SeedPlanting(t, db, f.ID, "Soja", "90", "2024A")
	rec = do(http.MethodPatch, path, ana.ID, `{"cultivable_area":"50"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `"kind":"exceeds_season_capacity"`)

	assert.Equal(t, http.StatusNoContent, do(http.MethodDelete, path, ana.ID, "").Code)
	assert.Equal(t, http.StatusNotFound, do(http.MethodGet, path, ana.ID, "").Code)
}
