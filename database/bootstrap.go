// database/bootstrap.go
package database

import (
	"fmt"
	"strings"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/domingues497/stockplant/config"
	"github.com/domingues497/stockplant/entities"
	"github.com/domingues497/stockplant/pkg/logger"
)

func Open(cfg config.AppConfig, log *logger.Logger) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		if cfg.DBDSN == "" {
			return nil, fmt.Errorf("DB_DSN is required for the postgres driver")
		}
		dial = postgres.Open(cfg.DBDSN)
	case "sqlite", "":
		dial = sqlite.Open(SQLiteDSN(cfg.DBPath))
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	level := gormLogger.Warn
	if cfg.Production() {
		level = gormLogger.Error
	}
	db, err := gorm.Open(dial, &gorm.Config{Logger: gormLogger.Default.LogMode(level)})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.DBDriver, err)
	}
	if db.Dialector.Name() == "sqlite" {
		// one writer at a time; a second pooled connection would hit SQLITE_BUSY mid-transaction
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	log.Info("database ready", "driver", db.Dialector.Name())
	return db, nil
}

// SQLiteDSN turns on foreign keys and a busy timeout for every pooled connection.
func SQLiteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func Migrate(db *gorm.DB) error {
	// run BEFORE AutoMigrate: the NOT NULL default on season cannot be applied over NULL rows
	if err := normalizeSeasonNulls(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := db.AutoMigrate(
		&entities.User{},
		&entities.Farm{},
		&entities.Planting{},
		&entities.Offer{},
		&entities.CropInfo{},
		&entities.Cultivar{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

// normalizeSeasonNulls rewrites legacy NULL seasons to the empty bucket so that
// "season = ''" finds them.
func normalizeSeasonNulls(db *gorm.DB) error {
	m := db.Migrator()
	if !m.HasTable(&entities.Planting{}) {
		// fresh DB, nothing to do
		return nil
	}
	if !m.HasColumn(&entities.Planting{}, "Season") {
		return db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Migrator().AddColumn(&entities.Planting{}, "Season"); err != nil {
				return fmt.Errorf("add season column: %w", err)
			}
			return tx.Exec(`UPDATE plantings SET season = '' WHERE season IS NULL`).Error
		})
	}
	return db.Exec(`UPDATE plantings SET season = '' WHERE season IS NULL`).Error
}
