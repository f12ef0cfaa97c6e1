package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/domingues497/stockplant/pkg/actor"
	"github.com/domingues497/stockplant/pkg/apierr"
	"github.com/domingues497/stockplant/pkg/listing"
	"github.com/domingues497/stockplant/pkg/logger"
	"github.com/domingues497/stockplant/pkg/offer/service"
)

type OfferCtrl struct {
	svc service.OfferService
	log *logger.Logger
}

func New(svc service.OfferService, log *logger.Logger) *OfferCtrl {
	return &OfferCtrl{svc: svc, log: log}
}

// Catalog serves the public listing. The Portuguese parameter names of the
// old storefront (cultura, q, ordenar) are still honoured.
func (h *OfferCtrl) Catalog(c echo.Context) error {
	f := listing.Filter{
		Category: firstParam(c, "category", "cultura"),
		Search:   firstParam(c, "search", "q"),
		Order:    listing.ParseOrder(firstParam(c, "order", "ordenar")),
	}
	out, err := h.svc.Catalog(c.Request().Context(), f)
	if err != nil {
		return apierr.Respond(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OfferCtrl) Mine(c echo.Context) error {
	out, err := h.svc.Mine(c.Request().Context(), actor.From(c))
	if err != nil {
		return apierr.Respond(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OfferCtrl) Publish(c echo.Context) error {
	var req service.OfferInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	o, err := h.svc.Publish(c.Request().Context(), actor.From(c), req)
	if err != nil {
		return apierr.Respond(c, h.log, err)
	}
	h.log.Info("offer published", "offer_id", o.ID, "crop", o.Crop, "by", actor.From(c).String())
	return c.JSON(http.StatusCreated, o)
}

func (h *OfferCtrl) Deactivate(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	o, err := h.svc.Deactivate(c.Request().Context(), actor.From(c), uint(id))
	if err != nil {
		return apierr.Respond(c, h.log, err)
	}
	return c.JSON(http.StatusOK, o)
}

func firstParam(c echo.Context, names ...string) string {
	for _, n := range names {
		if v := c.QueryParam(n); v != "" {
			return v
		}
	}
	return ""
}
