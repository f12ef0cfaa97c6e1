package controller

import "github.com/labstack/echo/v4"

type ReportController interface {
	Dashboard(c echo.Context) error
	Export(c echo.Context) error
}
