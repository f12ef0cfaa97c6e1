package serviceImp

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/domingues497/stockplant/entities"
	"github.com/domingues497/stockplant/pkg/actor"
	"github.com/domingues497/stockplant/pkg/allocation"
	"github.com/domingues497/stockplant/pkg/apierr"
	"github.com/domingues497/stockplant/pkg/logger"
	"github.com/domingues497/stockplant/pkg/planting/repositoryImp"
	"github.com/domingues497/stockplant/pkg/planting/service"
	"github.com/domingues497/stockplant/pkg/testutil"
)

type fixture struct {
	db    *gorm.DB
	svc   service.PlantingService
	owner actor.Actor
	farm  *entities.Farm
}

func setup(t *testing.T, total, cultivable string) fixture {
	t.Helper()
	db := testutil.DB(t)
	u := testutil.SeedUser(t, db, "ana", entities.RoleProducer)
	return fixture{
		db:    db,
		svc:   New(repositoryImp.New(db), logger.Nop()),
		owner: actor.Actor{Kind: actor.FarmOwner, UserID: u.ID},
		farm:  testutil.SeedFarm(t, db, u.ID, total, cultivable),
	}
}

func (f fixture) create(t *testing.T, area, season string) (*entities.Planting, error) {
	t.Helper()
	return f.svc.Create(context.Background(), f.owner, service.PlantingInput{
		FarmID:    f.farm.ID,
		Crop:      "Soja",
		Area:      testutil.Dec(area),
		Season:    season,
		PlantedOn: "2024-09-15",
	})
}

func violation(t *testing.T, err error, kind allocation.Kind) allocation.Violation {
	t.Helper()
	var v allocation.Violation
	require.True(t, errors.As(err, &v), "expected allocation.Violation, got %v", err)
	assert.Equal(t, kind, v.Kind)
	return v
}

func TestCreate_SeasonScenario(t *testing.T) {
	f := setup(t, "120", "100")
	ctx := context.Background()

	a, err := f.create(t, "60", "2024A")
	require.NoError(t, err)

	_, err = f.create(t, "50", "2024A")
	v := violation(t, err, allocation.ExceedsSeasonCapacity)
	assert.True(t, testutil.Dec("60").Equal(v.Existing))
	assert.True(t, testutil.Dec("40").Equal(v.Remaining()))

	_, err = f.create(t, "50", "2024B")
	require.NoError(t, err)

	forty := testutil.Dec("40")
	_, err = f.svc.Update(ctx, f.owner, a.ID, service.PlantingPatch{Area: &forty})
	require.NoError(t, err)

	_, err = f.create(t, "50", "2024A")
	require.NoError(t, err)

	capA, err := f.svc.Capacity(ctx, f.owner, f.farm.ID, "2024A")
	require.NoError(t, err)
	assert.True(t, testutil.Dec("90").Equal(capA.Used))
	assert.True(t, testutil.Dec("10").Equal(*capA.Remaining))
	assert.Equal(t, 2, capA.Plantings)
}

func TestCreate_FarmCapAndInvalidArea(t *testing.T) {
	f := setup(t, "100", "")

	_, err := f.create(t, "100.01", "2024A")
	violation(t, err, allocation.ExceedsFarmCapacity)

	_, err = f.create(t, "0", "2024A")
	violation(t, err, allocation.InvalidArea)

	_, err = f.create(t, "100", "2024A")
	require.NoError(t, err, "boundary is inclusive")
}

func TestCreate_NoCapAcceptsAnyArea(t *testing.T) {
	f := setup(t, "", "")

	_, err := f.create(t, "5000", "")
	require.NoError(t, err)
	_, err = f.create(t, "5000", "")
	require.NoError(t, err)

	c, err := f.svc.Capacity(context.Background(), f.owner, f.farm.ID, "")
	require.NoError(t, err)
	assert.Nil(t, c.Cap)
	assert.Nil(t, c.Remaining)
	assert.True(t, testutil.Dec("10000").Equal(c.Used))
}

func TestCreate_EmptySeasonIsItsOwnBucket(t *testing.T) {
	f := setup(t, "100", "")

	_, err := f.create(t, "70", "")
	require.NoError(t, err)
	_, err = f.create(t, "70", "2025")
	require.NoError(t, err)
	_, err = f.create(t, "40", "  ")
	v := violation(t, err, allocation.ExceedsSeasonCapacity)
	assert.Equal(t, "", v.Season)
}

func TestCreate_InputValidation(t *testing.T) {
	f := setup(t, "100", "")
	ctx := context.Background()

	tests := []struct {
		name string
		in   service.PlantingInput
	}{
		{name: "no farm", in: service.PlantingInput{Crop: "Soja", Area: testutil.Dec("1"), PlantedOn: "2024-09-15"}},
		{name: "no crop", in: service.PlantingInput{FarmID: f.farm.ID, Area: testutil.Dec("1"), PlantedOn: "2024-09-15"}},
		{name: "bad date", in: service.PlantingInput{FarmID: f.farm.ID, Crop: "Soja", Area: testutil.Dec("1"), PlantedOn: "15/09/2024"}},
		{name: "harvest before planting", in: service.PlantingInput{FarmID: f.farm.ID, Crop: "Soja", Area: testutil.Dec("1"), PlantedOn: "2024-09-15", ExpectedHarvest: "2024-09-01"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(ctx, f.owner, tt.in)
			assert.Equal(t, http.StatusBadRequest, apierr.StatusOf(err))
		})
	}
}

func TestCreate_AreaScale(t *testing.T) {
	f := setup(t, "100", "")
	ctx := context.Background()

	// 99.995 would round to 100.00 in the column and slip past the cap check
	_, err := f.create(t, "99.995", "2024A")
	assert.Equal(t, http.StatusBadRequest, apierr.StatusOf(err))
	assert.EqualError(t, err, "area accepts at most 2 decimal places")

	// trailing zeros are not extra precision
	a, err := f.create(t, "60.500", "2024A")
	require.NoError(t, err)

	fine := testutil.Dec("0.001")
	_, err = f.svc.Update(ctx, f.owner, a.ID, service.PlantingPatch{Area: &fine})
	assert.Equal(t, http.StatusBadRequest, apierr.StatusOf(err))

	c, err := f.svc.Capacity(ctx, f.owner, f.farm.ID, "2024A")
	require.NoError(t, err)
	assert.Equal(t, "60.5", c.Used.String(), "rejected edit leaves the bucket unchanged")
}

func TestCreate_Yield(t *testing.T) {
	f := setup(t, "100", "")
	ctx := context.Background()

	p, err := f.create(t, "10", "2024A")
	require.NoError(t, err)
	assert.Equal(t, "60", p.KgPerBag.String(), "kg_per_bag defaults to a 60 kg bag")
	assert.False(t, p.BagsPerHa.Valid)
	_, ok := p.StockKg()
	assert.False(t, ok)

	bags, kg := testutil.Dec("55.5"), testutil.Dec("50")
	p, err = f.svc.Create(ctx, f.owner, service.PlantingInput{
		FarmID: f.farm.ID, Crop: "Milho", Area: testutil.Dec("2.5"), PlantedOn: "2024-10-01",
		BagsPerHa: &bags, KgPerBag: &kg,
	})
	require.NoError(t, err)
	stored, err := f.svc.Get(ctx, f.owner, p.ID)
	require.NoError(t, err)
	require.True(t, stored.BagsPerHa.Valid)
	assert.True(t, stored.BagsPerHa.Decimal.Equal(bags))
	stock, ok := stored.StockKg()
	require.True(t, ok)
	assert.Equal(t, "6937.5", stock.String())

	zero := decimal.Zero
	got, err := f.svc.Update(ctx, f.owner, p.ID, service.PlantingPatch{BagsPerHa: &zero})
	require.NoError(t, err)
	assert.False(t, got.BagsPerHa.Valid, "zero clears the yield")

	for name, patch := range map[string]service.PlantingPatch{
		"zero kg":       {KgPerBag: &zero},
		"negative bags": {BagsPerHa: decimalPtr("-1")},
		"fine bags":     {BagsPerHa: decimalPtr("10.125")},
	} {
		_, err := f.svc.Update(ctx, f.owner, p.ID, patch)
		assert.Equal(t, http.StatusBadRequest, apierr.StatusOf(err), name)
	}
}

func decimalPtr(s string) *decimal.Decimal {
	d := testutil.Dec(s)
	return &d
}

func TestCreate_Ownership(t *testing.T) {
	f := setup(t, "100", "")
	ctx := context.Background()
	bia := testutil.SeedUser(t, f.db, "bia", entities.RoleProducer)
	in := service.PlantingInput{FarmID: f.farm.ID, Crop: "Milho", Area: testutil.Dec("1"), PlantedOn: "2024-10-01"}

	_, err := f.svc.Create(ctx, actor.Actor{Kind: actor.FarmOwner, UserID: bia.ID}, in)
	assert.Equal(t, http.StatusForbidden, apierr.StatusOf(err))

	_, err = f.svc.Create(ctx, actor.Actor{Kind: actor.Admin, UserID: 999}, in)
	require.NoError(t, err)

	in.FarmID = 424242
	_, err = f.svc.Create(ctx, f.owner, in)
	assert.Equal(t, http.StatusNotFound, apierr.StatusOf(err))
}

func TestUpdate_EditModeExcludesItself(t *testing.T) {
	f := setup(t, "100", "")
	ctx := context.Background()

	a, err := f.create(t, "100", "2024A")
	require.NoError(t, err)

	crop := "Soja transgênica"
	got, err := f.svc.Update(ctx, f.owner, a.ID, service.PlantingPatch{Crop: &crop})
	require.NoError(t, err, "re-saving a full bucket must not count the record twice")
	assert.Equal(t, crop, got.Crop)

	more := testutil.Dec("100.5")
	_, err = f.svc.Update(ctx, f.owner, a.ID, service.PlantingPatch{Area: &more})
	violation(t, err, allocation.ExceedsFarmCapacity)
}

func TestUpdate_MovingSeasonChecksTheTargetBucket(t *testing.T) {
	f := setup(t, "100", "")
	ctx := context.Background()

	a, err := f.create(t, "60", "2024A")
	require.NoError(t, err)
	_, err = f.create(t, "50", "2024B")
	require.NoError(t, err)

	season := "2024B"
	_, err = f.svc.Update(ctx, f.owner, a.ID, service.PlantingPatch{Season: &season})
	v := violation(t, err, allocation.ExceedsSeasonCapacity)
	assert.Equal(t, "2024B", v.Season)

	stored, err := f.svc.Get(ctx, f.owner, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024A", stored.Season, "rejected edit must roll back")
}

func TestUpdate_Dates(t *testing.T) {
	f := setup(t, "100", "")
	ctx := context.Background()
	a, err := f.create(t, "10", "2024A")
	require.NoError(t, err)

	harvest := "2025-02-10"
	got, err := f.svc.Update(ctx, f.owner, a.ID, service.PlantingPatch{ExpectedHarvest: &harvest})
	require.NoError(t, err)
	require.NotNil(t, got.ExpectedHarvest)
	assert.Equal(t, "2025-02-10", got.ExpectedHarvest.Format(dateLayout))

	none := ""
	got, err = f.svc.Update(ctx, f.owner, a.ID, service.PlantingPatch{ExpectedHarvest: &none})
	require.NoError(t, err)
	assert.Nil(t, got.ExpectedHarvest)

	early := "2020-01-01"
	_, err = f.svc.Update(ctx, f.owner, a.ID, service.PlantingPatch{ExpectedHarvest: &early})
	assert.Equal(t, http.StatusBadRequest, apierr.StatusOf(err))
}

func TestDelete_DetachesOffers(t *testing.T) {
	f := setup(t, "100", "")
	ctx := context.Background()
	p, err := f.create(t, "10", "2024A")
	require.NoError(t, err)
	o := testutil.SeedOffer(t, f.db, &entities.Offer{
		PlantingID: testutil.PtrUint(p.ID),
		Crop:       "Soja",
		PricePerKg: testutil.Dec("5"),
		QuantityKg: testutil.Dec("100"),
		Active:     true,
	})

	require.NoError(t, f.svc.Delete(ctx, f.owner, p.ID))

	var kept entities.Offer
	require.NoError(t, f.db.First(&kept, o.ID).Error)
	assert.Nil(t, kept.PlantingID)

	assert.Equal(t, http.StatusNotFound, apierr.StatusOf(f.svc.Delete(ctx, f.owner, p.ID)))
}

func TestList_Scoping(t *testing.T) {
	f := setup(t, "100", "")
	ctx := context.Background()
	_, err := f.create(t, "10", "2024A")
	require.NoError(t, err)
	_, err = f.create(t, "10", "2024B")
	require.NoError(t, err)

	bia := testutil.SeedUser(t, f.db, "bia", entities.RoleProducer)
	other := testutil.SeedFarm(t, f.db, bia.ID, "", "")
	testutil.SeedPlanting(t, f.db, other.ID, "Milho", "5", "2024A")

	own, err := f.svc.List(ctx, f.owner, service.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, own, 2)

	season := "2024A"
	all, err := f.svc.List(ctx, actor.Actor{Kind: actor.Admin, UserID: 1}, service.ListFilter{Season: &season})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byFarm, err := f.svc.List(ctx, actor.Actor{Kind: actor.Admin, UserID: 1}, service.ListFilter{FarmID: &other.ID})
	require.NoError(t, err)
	require.Len(t, byFarm, 1)
	assert.Equal(t, "Milho", byFarm[0].Crop)

	_, err = f.svc.List(ctx, actor.Actor{Kind: actor.Public}, service.ListFilter{})
	assert.Equal(t, http.StatusForbidden, apierr.StatusOf(err))
}

func TestCreate_ConcurrentWritersNeverOverfillABucket(t *testing.T) {
	f := setup(t, "100", "")
	const writers = 10

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
		rejected int
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Create(context.Background(), f.owner, service.PlantingInput{
				FarmID:    f.farm.ID,
				Crop:      "Soja",
				Area:      decimal.NewFromInt(30),
				Season:    "2024A",
				PlantedOn: "2024-09-15",
			})
			mu.Lock()
			defer mu.Unlock()
			var v allocation.Violation
			switch {
			case err == nil:
				accepted++
			case errors.As(err, &v) && v.Kind == allocation.ExceedsSeasonCapacity:
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, accepted)
	assert.Equal(t, writers-3, rejected)

	c, err := f.svc.Capacity(context.Background(), f.owner, f.farm.ID, "2024A")
	require.NoError(t, err)
	assert.True(t, c.Used.LessThanOrEqual(*c.Cap))
	assert.True(t, testutil.Dec("90").Equal(c.Used))
}
