package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/domingues497/stockplant/pkg/actor"
	"github.com/domingues497/stockplant/pkg/apierr"
	"github.com/domingues497/stockplant/pkg/cultivar/service"
	"github.com/domingues497/stockplant/pkg/logger"
)

type CultivarCtrl struct {
	svc service.CultivarService
	log *logger.Logger
}

func New(svc service.CultivarService, log *logger.Logger) *CultivarCtrl {
	return &CultivarCtrl{svc: svc, log: log}
}

// List accepts crop or cultura, and crop_info_id or cultura_info_id.
func (h *CultivarCtrl) List(c echo.Context) error {
	f := service.ListFilter{Crop: firstParam(c, "crop", "cultura")}
	if raw := firstParam(c, "crop_info_id", "cultura_info_id"); raw != "" && f.Crop == "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid crop_info_id"})
		}
		v := uint(id)
		f.CropInfoID = &v
	}
	out, err := h.svc.List(c.Request().Context(), f)
	if err != nil {
		return apierr.Respond(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CultivarCtrl) Create(c echo.Context) error {
	var req service.CultivarInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	out, err := h.svc.Create(c.Request().Context(), actor.From(c), req)
	if err != nil {
		return apierr.Respond(c, h.log, err)
	}
	h.log.Info("cultivar added", "cultivar_id", out.ID, "crop", out.Crop, "variety", out.Variety)
	return c.JSON(http.StatusCreated, out)
}

func firstParam(c echo.Context, names ...string) string {
	for _, n := range names {
		if v := c.QueryParam(n); v != "" {
			return v
		}
	}
	return ""
}
