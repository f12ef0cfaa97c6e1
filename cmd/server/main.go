package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/domingues497/stockplant/config"
	"github.com/domingues497/stockplant/database"
	"github.com/domingues497/stockplant/pkg/logger"
	"github.com/domingues497/stockplant/router"

	// Accounts
	accountCtrlImp "github.com/domingues497/stockplant/pkg/account/controllerImp"
	accountRepoImp "github.com/domingues497/stockplant/pkg/account/repositoryImp"
	accountSvcImp "github.com/domingues497/stockplant/pkg/account/serviceImp"

	// Farms
	farmCtrlImp "github.com/domingues497/stockplant/pkg/farm/controllerImp"
	farmRepoImp "github.com/domingues497/stockplant/pkg/farm/repositoryImp"
	farmSvcImp "github.com/domingues497/stockplant/pkg/farm/serviceImp"

	// Plantings
	plantingCtrlImp "github.com/domingues497/stockplant/pkg/planting/controllerImp"
	plantingRepoImp "github.com/domingues497/stockplant/pkg/planting/repositoryImp"
	plantingSvcImp "github.com/domingues497/stockplant/pkg/planting/serviceImp"

	// Cultivar catalog
	cultivarCtrlImp "github.com/domingues497/stockplant/pkg/cultivar/controllerImp"
	cultivarRepoImp "github.com/domingues497/stockplant/pkg/cultivar/repositoryImp"
	cultivarSvcImp "github.com/domingues497/stockplant/pkg/cultivar/serviceImp"

	// Marketplace
	offerCtrlImp "github.com/domingues497/stockplant/pkg/offer/controllerImp"
	offerRepoImp "github.com/domingues497/stockplant/pkg/offer/repositoryImp"
	offerSvcImp "github.com/domingues497/stockplant/pkg/offer/serviceImp"

	// Producer reports
	reportCtrlImp "github.com/domingues497/stockplant/pkg/report/controllerImp"
	reportRepoImp "github.com/domingues497/stockplant/pkg/report/repositoryImp"
	reportSvcImp "github.com/domingues497/stockplant/pkg/report/serviceImp"

	// Health
	healthCtrlImp "github.com/domingues497/stockplant/pkg/health/controllerImp"
)

var version = "dev"

func main() {
	// 1) Config
	cfg := config.Load()

	// 2) Logger
	appLog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer appLog.Sync()
	appLog.Info("config loaded", cfg.LogFields()...)

	// 3) DB + automigrate
	db, err := database.Open(cfg, appLog)
	if err != nil {
		appLog.Fatal("database", "err", err)
	}

	// 4) Echo
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RequestID())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, cfg.ActorHeader},
	}))
	e.Use(logger.RequestLogger(appLog))

	// 5) Repos/Services/Controllers
	accountSvc := accountSvcImp.New(accountRepoImp.New(db))
	aCtrl := accountCtrlImp.New(accountSvc, appLog)
	fCtrl := farmCtrlImp.New(farmSvcImp.New(farmRepoImp.New(db)), appLog)
	pCtrl := plantingCtrlImp.New(plantingSvcImp.New(plantingRepoImp.New(db), appLog.With("component", "planting")), appLog)
	cCtrl := cultivarCtrlImp.New(cultivarSvcImp.New(cultivarRepoImp.New(db)), appLog)
	oCtrl := offerCtrlImp.New(offerSvcImp.New(offerRepoImp.New(db)), appLog)
	rCtrl := reportCtrlImp.New(reportSvcImp.New(reportRepoImp.New(db), nil), appLog)
	hCtrl := healthCtrlImp.NewHealthCtrl(version, healthCtrlImp.DatabaseCheck(db), healthCtrlImp.SchemaCheck(db))

	// 6) Router
	r := router.New(e, accountSvc, cfg.ActorHeader, aCtrl, fCtrl, pCtrl, cCtrl, oCtrl, rCtrl, hCtrl)

	// 7) Start + graceful shutdown
	go func() {
		appLog.Info("listening", "port", cfg.Port)
		if err := r.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal("server", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := r.Shutdown(ctx); err != nil {
		appLog.Error("shutdown", "err", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	appLog.Info("bye")
}
