package controllerImp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/domingues497/stockplant/entities"
)

var appStart = time.Now()

// all checks share one deadline
const checkTimeout = 800 * time.Millisecond

// Check is one dependency /api/health reports on.
type Check struct {
	Name string
	Run  func(ctx context.Context) error
}

// DatabaseCheck pings the pool behind db.
func DatabaseCheck(db *gorm.DB) Check {
	return Check{Name: "database", Run: func(ctx context.Context) error {
		if db == nil {
			return errors.New("gorm db is nil")
		}
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("db.DB(): %w", err)
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			return fmt.Errorf("ping: %w", err)
		}
		return nil
	}}
}

// SchemaCheck fails until every table the API writes to exists.
func SchemaCheck(db *gorm.DB) Check {
	return Check{Name: "schema", Run: func(ctx context.Context) error {
		if db == nil {
			return errors.New("gorm db is nil")
		}
		m := db.WithContext(ctx).Migrator()
		for _, model := range []any{&entities.User{}, &entities.Farm{}, &entities.Planting{}, &entities.Offer{}, &entities.Cultivar{}} {
			if !m.HasTable(model) {
				return fmt.Errorf("table for %T is missing", model)
			}
		}
		return nil
	}}
}

type HealthCtrl struct {
	version string
	checks  []Check
}

func NewHealthCtrl(version string, checks ...Check) *HealthCtrl {
	return &HealthCtrl{version: version, checks: checks}
}

type result struct {
	OK        bool   `json:"ok"`
	Err       string `json:"err,omitempty"`
	LatencyMs int64  `json:"latency_ms"`
}

func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), checkTimeout)
	defer cancel()

	ok := true
	results := make(map[string]result, len(h.checks))
	for _, chk := range h.checks {
		start := time.Now()
		r := result{OK: true}
		if err := chk.Run(ctx); err != nil {
			r.OK, r.Err = false, err.Error()
			ok = false
		}
		r.LatencyMs = time.Since(start).Milliseconds()
		results[chk.Name] = r
	}

	status := http.StatusOK
	if !ok {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, map[string]any{
		"status":     map[string]any{"ok": ok},
		"version":    h.version,
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks":     results,
		"time":       time.Now().Format(time.RFC3339),
	})
}

// Index lists the public surface of the API.
func (h *HealthCtrl) Index(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"name":    "stockplant",
		"version": h.version,
		"endpoints": map[string]string{
			"health":    "/api/health",
			"me":        "/api/auth/me",
			"users":     "/api/admin/users",
			"farms":     "/api/farm/farms",
			"plantings": "/api/farm/plantings",
			"cultivars": "/api/farm/cultivars",
			"offers":    "/api/marketplace/offers",
			"my_offers": "/api/marketplace/my-offers",
			"dashboard": "/api/producer/dashboard",
			"report":    "/api/producer/report.xlsx",
		},
	})
}
