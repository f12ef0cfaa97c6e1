package serviceImp

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/domingues497/stockplant/entities"
	"github.com/domingues497/stockplant/pkg/actor"
	"github.com/domingues497/stockplant/pkg/allocation"
	"github.com/domingues497/stockplant/pkg/apierr"
	"github.com/domingues497/stockplant/pkg/report/repository"
	"github.com/domingues497/stockplant/pkg/report/service"
)

const dateLayout = "2006-01-02"

type reportSvc struct {
	r   repository.ReportRepository
	now func() time.Time
}

// New builds the service; a nil now uses time.Now.
func New(r repository.ReportRepository, now func() time.Time) service.ReportService {
	if now == nil {
		now = time.Now
	}
	return &reportSvc{r: r, now: now}
}

func scope(a actor.Actor) (*uint, error) {
	switch {
	case a.IsAdmin():
		return nil, nil
	case a.Kind == actor.FarmOwner:
		id := a.UserID
		return &id, nil
	default:
		return nil, apierr.Forbidden("reports are for producers")
	}
}

func (s *reportSvc) today() time.Time {
	n := s.now().UTC()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *reportSvc) Dashboard(ctx context.Context, a actor.Actor) (*service.Dashboard, error) {
	owner, err := scope(a)
	if err != nil {
		return nil, err
	}
	farms, err := s.r.Farms(ctx, owner)
	if err != nil {
		return nil, err
	}
	plantings, err := s.r.Plantings(ctx, owner)
	if err != nil {
		return nil, err
	}
	offers, err := s.r.Offers(ctx, owner)
	if err != nil {
		return nil, err
	}

	today := s.today()
	d := &service.Dashboard{FarmsTotal: len(farms), PlantingsTotal: len(plantings), StockTotalKg: decimal.Zero}
	byCrop := make(map[string]decimal.Decimal)
	stockByCrop := make(map[string]decimal.Decimal)
	for _, p := range plantings {
		byCrop[p.Crop] = byCrop[p.Crop].Add(p.Area)
		if kg, ok := p.StockKg(); ok {
			stockByCrop[p.Crop] = stockByCrop[p.Crop].Add(kg)
			d.StockTotalKg = d.StockTotalKg.Add(kg)
		}
		if p.ExpectedHarvest == nil {
			d.ActivePlantings++
			continue
		}
		h := p.ExpectedHarvest.UTC()
		if h.Before(today) {
			continue
		}
		d.ActivePlantings++
		days := int(h.Sub(today).Hours() / 24)
		if days <= 30 {
			d.HarvestForecast.Days30++
		}
		if days <= 60 {
			d.HarvestForecast.Days60++
		}
		if days <= 90 {
			d.HarvestForecast.Days90++
		}
	}
	for _, o := range offers {
		if o.Active {
			d.PublishedOffers++
		}
	}

	d.AreaByCrop = series(byCrop)
	d.StockByCrop = series(stockByCrop)
	return d, nil
}

// series orders m by label.
func series(m map[string]decimal.Decimal) service.Series {
	out := service.Series{Labels: make([]string, 0, len(m))}
	for label := range m {
		out.Labels = append(out.Labels, label)
	}
	sort.Strings(out.Labels)
	out.Values = make([]decimal.Decimal, len(out.Labels))
	for i, label := range out.Labels {
		out.Values[i] = m[label]
	}
	return out
}

func (s *reportSvc) Workbook(ctx context.Context, a actor.Actor) (*excelize.File, error) {
	owner, err := scope(a)
	if err != nil {
		return nil, err
	}
	farms, err := s.r.Farms(ctx, owner)
	if err != nil {
		return nil, err
	}
	plantings, err := s.r.Plantings(ctx, owner)
	if err != nil {
		return nil, err
	}
	offers, err := s.r.Offers(ctx, owner)
	if err != nil {
		return nil, err
	}

	x := excelize.NewFile()
	if err := buildWorkbook(x, farms, plantings, offers); err != nil {
		_ = x.Close()
		return nil, fmt.Errorf("build workbook: %w", err)
	}
	return x, nil
}

func buildWorkbook(x *excelize.File, farms []entities.Farm, plantings []entities.Planting, offers []entities.Offer) error {
	if err := x.SetSheetName("Sheet1", "Farms"); err != nil {
		return err
	}
	for _, name := range []string{"Plantings", "Offers"} {
		if _, err := x.NewSheet(name); err != nil {
			return err
		}
	}

	// Farms: one row per season bucket, or a single blank-season row for an unplanted farm.
	buckets := make(map[uint]map[string]decimal.Decimal)
	for _, p := range plantings {
		if buckets[p.FarmID] == nil {
			buckets[p.FarmID] = make(map[string]decimal.Decimal)
		}
		buckets[p.FarmID][p.Season] = buckets[p.FarmID][p.Season].Add(p.Area)
	}
	rows := [][]any{{"Farm ID", "Farm", "Origin", "Cap (ha)", "Season", "Used (ha)", "Remaining (ha)"}}
	for _, f := range farms {
		limit, capped := allocation.Cap(f.CultivableArea, f.TotalArea)
		seasons := make([]string, 0, len(buckets[f.ID]))
		for s := range buckets[f.ID] {
			seasons = append(seasons, s)
		}
		sort.Strings(seasons)
		if len(seasons) == 0 {
			seasons = []string{""}
		}
		for _, season := range seasons {
			used := buckets[f.ID][season]
			row := []any{f.ID, f.Name, f.Origin(), "", season, used.InexactFloat64(), ""}
			if capped {
				row[3] = limit.InexactFloat64()
				row[6] = decimal.Max(limit.Sub(used), decimal.Zero).InexactFloat64()
			}
			rows = append(rows, row)
		}
	}
	if err := writeRows(x, "Farms", rows); err != nil {
		return err
	}

	rows = [][]any{{"ID", "Farm ID", "Crop", "Variety", "Area (ha)", "Season", "Planted on", "Expected harvest", "Bags/ha", "Kg/bag", "Stock (kg)"}}
	for _, p := range plantings {
		harvest := ""
		if p.ExpectedHarvest != nil {
			harvest = p.ExpectedHarvest.Format(dateLayout)
		}
		row := []any{p.ID, p.FarmID, p.Crop, p.Variety, p.Area.InexactFloat64(), p.Season, p.PlantedOn.Format(dateLayout), harvest, "", p.KgPerBag.InexactFloat64(), ""}
		if kg, ok := p.StockKg(); ok {
			row[8] = p.BagsPerHa.Decimal.InexactFloat64()
			row[10] = kg.InexactFloat64()
		}
		rows = append(rows, row)
	}
	if err := writeRows(x, "Plantings", rows); err != nil {
		return err
	}

	rows = [][]any{{"ID", "Crop", "Variety", "Origin", "Price/kg", "Quantity (kg)", "Active", "Published"}}
	for _, o := range offers {
		rows = append(rows, []any{o.ID, o.Crop, o.Variety, o.Origin, o.PricePerKg.InexactFloat64(), o.QuantityKg.InexactFloat64(), o.Active, o.CreatedAt.Format(dateLayout)})
	}
	return writeRows(x, "Offers", rows)
}

func writeRows(x *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := x.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
