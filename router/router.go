package router

import (
	"github.com/labstack/echo/v4"

	accountCtrl "github.com/domingues497/stockplant/pkg/account/controller"
	"github.com/domingues497/stockplant/pkg/actor"
	cultivarCtrl "github.com/domingues497/stockplant/pkg/cultivar/controller"
	farmCtrl "github.com/domingues497/stockplant/pkg/farm/controller"
	offerCtrl "github.com/domingues497/stockplant/pkg/offer/controller"
	plantingCtrl "github.com/domingues497/stockplant/pkg/planting/controller"
	reportCtrl "github.com/domingues497/stockplant/pkg/report/controller"
)

// New registers every route. users resolves the caller once per request;
// header names where the caller's id travels.
func New(
	e *echo.Echo,
	users actor.UserLookup,
	header string,
	accounts accountCtrl.AccountController,
	farms farmCtrl.FarmController,
	plantings plantingCtrl.PlantingController,
	cultivars cultivarCtrl.CultivarController,
	offers offerCtrl.OfferController,
	reports reportCtrl.ReportController,
	healthCtrl interface {
		Health(echo.Context) error
		Index(echo.Context) error
	},
) *echo.Echo {
	e.GET("/", healthCtrl.Index)

	api := e.Group("/api", actor.Resolve(users, header))
	api.GET("/health", healthCtrl.Health)
	api.GET("/auth/me", accounts.Me)

	producers := actor.Require(actor.FarmOwner, actor.Admin)

	adm := api.Group("/admin", actor.Require(actor.Admin))
	adm.GET("/users", accounts.ListUsers)
	adm.POST("/users", accounts.CreateUser)
	adm.PATCH("/users/:id", accounts.UpdateUser)
	adm.POST("/cultivars", cultivars.Create)

	farm := api.Group("/farm", producers)
	farm.GET("/farms", farms.List)
	farm.POST("/farms", farms.Create)
	farm.GET("/farms/:id", farms.Get)
	farm.PATCH("/farms/:id", farms.Update)
	farm.DELETE("/farms/:id", farms.Delete)
	farm.GET("/farms/:id/capacity", plantings.Capacity)

	farm.GET("/plantings", plantings.List)
	farm.POST("/plantings", plantings.Create)
	farm.GET("/plantings/:id", plantings.Get)
	farm.PATCH("/plantings/:id", plantings.Update)
	farm.DELETE("/plantings/:id", plantings.Delete)

	farm.GET("/cultivars", cultivars.List)
	farm.GET("/cultivares/", cultivars.List) // path used by the storefront

	// catalog is public; everything else on the marketplace needs a producer
	api.GET("/marketplace/offers", offers.Catalog)
	market := api.Group("/marketplace", producers)
	market.GET("/my-offers", offers.Mine)
	market.POST("/offers", offers.Publish)
	market.PATCH("/offers/:id/deactivate", offers.Deactivate)

	prod := api.Group("/producer", producers)
	prod.GET("/dashboard", reports.Dashboard)
	prod.GET("/report.xlsx", reports.Export)

	return e
}
