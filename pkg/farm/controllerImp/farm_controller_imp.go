package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/domingues497/stockplant/pkg/actor"
	"github.com/domingues497/stockplant/pkg/apierr"
	"github.com/domingues497/stockplant/pkg/farm/service"
	"github.com/domingues497/stockplant/pkg/logger"
)

type FarmCtrl struct {
	svc service.FarmService
	log *logger.Logger
}

func New(svc service.FarmService, log *logger.Logger) *FarmCtrl {
	return &FarmCtrl{svc: svc, log: log}
}

func (h *FarmCtrl) List(c echo.Context) error {
	out, err := h.svc.List(c.Request().Context(), actor.From(c))
	if err != nil {
		return apierr.Respond(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *FarmCtrl) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	f, err := h.svc.Get(c.Request().Context(), actor.From(c), uint(id))
	if err != nil {
		return apierr.Respond(c, h.log, err)
	}
	return c.JSON(http.StatusOK, f)
}

func (h *FarmCtrl) Create(c echo.Context) error {
	var req service.FarmInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	f, err := h.svc.Create(c.Request().Context(), actor.From(c), req)
	if err != nil {
		return apierr.Respond(c, h.log, err)
	}
	h.log.Info("farm created", "farm_id", f.ID, "owner_id", f.OwnerID)
	return c.JSON(http.StatusCreated, f)
}

func (h *FarmCtrl) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var req service.FarmPatch
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	f, err := h.svc.Update(c.Request().Context(), actor.From(c), uint(id), req)
	if err != nil {
		return apierr.Respond(c, h.log, err)
	}
	return c.JSON(http.StatusOK, f)
}

func (h *FarmCtrl) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	if err := h.svc.Delete(c.Request().Context(), actor.From(c), uint(id)); err != nil {
		return apierr.Respond(c, h.log, err)
	}
	h.log.Info("farm deleted", "farm_id", id, "by", actor.From(c).String())
	return c.NoContent(http.StatusNoContent)
}
