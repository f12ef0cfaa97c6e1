package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/domingues497/stockplant/pkg/actor"
	"github.com/domingues497/stockplant/pkg/apierr"
	"github.com/domingues497/stockplant/pkg/logger"
	"github.com/domingues497/stockplant/pkg/planting/service"
)

type PlantingCtrl struct {
	svc service.PlantingService
	log *logger.Logger
}

func New(svc service.PlantingService, log *logger.Logger) *PlantingCtrl {
	return &PlantingCtrl{svc: svc, log: log}
}

func (h *PlantingCtrl) List(c echo.Context) error {
	var f service.ListFilter
	if raw := c.QueryParam("farm_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid farm_id"})
		}
		farmID := uint(id)
		f.FarmID = &farmID
	}
	if c.QueryParams().Has("season") {
		season := c.QueryParam("season")
		f.Season = &season
	}
	out, err := h.svc.List(c.Request().Context(), actor.From(c), f)
	if err != nil {
		return apierr.Respond(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PlantingCtrl) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	p, err := h.svc.Get(c.Request().Context(), actor.From(c), uint(id))
	if err != nil {
		return apierr.Respond(c, h.log, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *PlantingCtrl) Create(c echo.Context) error {
	var req service.PlantingInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	p, err := h.svc.Create(c.Request().Context(), actor.From(c), req)
	if err != nil {
		return apierr.Respond(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *PlantingCtrl) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var req service.PlantingPatch
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	p, err := h.svc.Update(c.Request().Context(), actor.From(c), uint(id), req)
	if err != nil {
		return apierr.Respond(c, h.log, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *PlantingCtrl) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	if err := h.svc.Delete(c.Request().Context(), actor.From(c), uint(id)); err != nil {
		return apierr.Respond(c, h.log, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Capacity serves GET /farms/:id/capacity?season=.
func (h *PlantingCtrl) Capacity(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	out, err := h.svc.Capacity(c.Request().Context(), actor.From(c), uint(id), c.QueryParam("season"))
	if err != nil {
		return apierr.Respond(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}
