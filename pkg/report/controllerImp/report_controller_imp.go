package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/domingues497/stockplant/pkg/actor"
	"github.com/domingues497/stockplant/pkg/apierr"
	"github.com/domingues497/stockplant/pkg/logger"
	"github.com/domingues497/stockplant/pkg/report/service"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportCtrl struct {
	svc service.ReportService
	log *logger.Logger
}

func New(svc service.ReportService, log *logger.Logger) *ReportCtrl {
	return &ReportCtrl{svc: svc, log: log}
}

func (h *ReportCtrl) Dashboard(c echo.Context) error {
	d, err := h.svc.Dashboard(c.Request().Context(), actor.From(c))
	if err != nil {
		return apierr.Respond(c, h.log, err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *ReportCtrl) Export(c echo.Context) error {
	x, err := h.svc.Workbook(c.Request().Context(), actor.From(c))
	if err != nil {
		return apierr.Respond(c, h.log, err)
	}
	defer func() {
		if err := x.Close(); err != nil {
			h.log.Warn("close workbook", "err", err)
		}
	}()

	buf, err := x.WriteToBuffer()
	if err != nil {
		return apierr.Respond(c, h.log, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="stockplant-report.xlsx"`)
	return c.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}
