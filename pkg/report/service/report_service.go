package service

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/domingues497/stockplant/pkg/actor"
)

type ReportService interface {
	Dashboard(ctx context.Context, a actor.Actor) (*Dashboard, error)
	// Workbook builds the producer export; the caller closes it.
	Workbook(ctx context.Context, a actor.Actor) (*excelize.File, error)
}

type Dashboard struct {
	FarmsTotal      int      `json:"farms_total"`
	PlantingsTotal  int      `json:"plantings_total"`
	ActivePlantings int      `json:"active_plantings"`
	PublishedOffers int      `json:"published_offers"`
	HarvestForecast Forecast `json:"harvest_forecast"`
	AreaByCrop      Series   `json:"area_by_crop"`
	// stock estimates only count plantings with a recorded yield
	StockTotalKg decimal.Decimal `json:"stock_total_kg"`
	StockByCrop  Series          `json:"stock_by_crop"`
}

// Forecast counts plantings whose expected harvest falls within the next N days.
type Forecast struct {
	Days30 int `json:"days_30"`
	Days60 int `json:"days_60"`
	Days90 int `json:"days_90"`
}

type Series struct {
	Labels []string          `json:"labels"`
	Values []decimal.Decimal `json:"values"`
}
