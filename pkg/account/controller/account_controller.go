package controller

import "github.com/labstack/echo/v4"

type AccountController interface {
	Me(c echo.Context) error
	CreateUser(c echo.Context) error
	ListUsers(c echo.Context) error
	UpdateUser(c echo.Context) error
}
