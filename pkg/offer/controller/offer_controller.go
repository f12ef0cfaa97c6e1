package controller

import "github.com/labstack/echo/v4"

type OfferController interface {
	Catalog(c echo.Context) error
	Mine(c echo.Context) error
	Publish(c echo.Context) error
	Deactivate(c echo.Context) error
}
