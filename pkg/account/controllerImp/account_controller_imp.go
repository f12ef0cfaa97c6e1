package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/domingues497/stockplant/pkg/account/service"
	"github.com/domingues497/stockplant/pkg/actor"
	"github.com/domingues497/stockplant/pkg/apierr"
	"github.com/domingues497/stockplant/pkg/logger"
)

type AccountCtrl struct {
	svc service.AccountService
	log *logger.Logger
}

func New(svc service.AccountService, log *logger.Logger) *AccountCtrl {
	return &AccountCtrl{svc: svc, log: log}
}

func (h *AccountCtrl) Me(c echo.Context) error {
	me, err := h.svc.Me(c.Request().Context(), actor.From(c))
	if err != nil {
		return apierr.Respond(c, h.log, err)
	}
	return c.JSON(http.StatusOK, me)
}

func (h *AccountCtrl) CreateUser(c echo.Context) error {
	var req service.CreateUserInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	u, err := h.svc.CreateUser(c.Request().Context(), req)
	if err != nil {
		return apierr.Respond(c, h.log, err)
	}
	h.log.Info("user created", "user_id", u.ID, "role", u.Role, "by", actor.From(c).String())
	return c.JSON(http.StatusCreated, u)
}

func (h *AccountCtrl) ListUsers(c echo.Context) error {
	out, err := h.svc.ListUsers(c.Request().Context(), c.QueryParam("role"))
	if err != nil {
		return apierr.Respond(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AccountCtrl) UpdateUser(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var req service.UserPatch
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	u, err := h.svc.UpdateUser(c.Request().Context(), uint(id), req)
	if err != nil {
		return apierr.Respond(c, h.log, err)
	}
	return c.JSON(http.StatusOK, u)
}
