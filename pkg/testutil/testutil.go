// Package testutil opens throwaway SQLite databases and seeds rows for tests.
package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/domingues497/stockplant/database"
	"github.com/domingues497/stockplant/entities"
)

var dbSeq atomic.Int64

// DB returns a migrated in-memory database private to tb. A single pooled
// connection keeps the in-memory database alive and serializes writers.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(tb.Name())
	dsn := database.SQLiteDSN(fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, dbSeq.Add(1)))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	return db
}

func Dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func NullDec(s string) decimal.NullDecimal {
	if s == "" {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: Dec(s), Valid: true}
}

func SeedUser(tb testing.TB, db *gorm.DB, username, role string) *entities.User {
	tb.Helper()
	u := &entities.User{Username: username, Email: username + "@example.com", Role: role, Active: true}
	if err := db.Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

// SeedFarm creates a farm; empty strings leave the corresponding area unset.
func SeedFarm(tb testing.TB, db *gorm.DB, ownerID uint, total, cultivable string) *entities.Farm {
	tb.Helper()
	f := &entities.Farm{
		OwnerID:        ownerID,
		Name:           "Fazenda Boa Vista",
		City:           "Castro",
		State:          "PR",
		TotalArea:      NullDec(total),
		CultivableArea: NullDec(cultivable),
	}
	if err := db.Create(f).Error; err != nil {
		tb.Fatalf("seed farm: %v", err)
	}
	return f
}

// SeedPlanting inserts a planting directly, bypassing capacity checks.
func SeedPlanting(tb testing.TB, db *gorm.DB, farmID uint, crop, area, season string) *entities.Planting {
	tb.Helper()
	p := &entities.Planting{
		FarmID:    farmID,
		Crop:      crop,
		Area:      Dec(area),
		Season:    season,
		KgPerBag:  Dec("60"),
		PlantedOn: time.Date(2024, 9, 15, 0, 0, 0, 0, time.UTC),
	}
	if err := db.Create(p).Error; err != nil {
		tb.Fatalf("seed planting: %v", err)
	}
	return p
}

func SeedOffer(tb testing.TB, db *gorm.DB, o *entities.Offer) *entities.Offer {
	tb.Helper()
	if err := db.Create(o).Error; err != nil {
		tb.Fatalf("seed offer: %v", err)
	}
	return o
}

func PtrUint(v uint) *uint { return &v }

func PtrTime(v time.Time) *time.Time { return &v }
