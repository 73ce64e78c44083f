package pricing_test

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/polibest/kp-api/internal/domain"
	"github.com/polibest/kp-api/internal/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPrices() domain.PriceSettings {
	return domain.DefaultSettings().Prices
}

func TestCalculate_Grunt(t *testing.T) {
	prices := testPrices()

	res := pricing.Calculate(domain.ProductGrunt, "", 100, prices)
	require.NotNil(t, res)
	require.Len(t, res.Items, 1)

	assert.Equal(t, "Ґрунтівка", res.Items[0].Name)
	assert.InDelta(t, 15.0, res.Items[0].Quantity, 1e-9)
	assert.InDelta(t, 15.0*prices.Gruntivka, res.Total, 1e-9)
}

func TestCalculate_FlokiThreeLines(t *testing.T) {
	prices := testPrices()

	res := pricing.Calculate(domain.ProductFloki, domain.LacGlossy, 100, prices)
	require.NotNil(t, res)
	require.Len(t, res.Items, 3)

	assert.Equal(t, "Емаль", res.Items[0].Name)
	assert.InDelta(t, 20.0, res.Items[0].Quantity, 1e-9)
	assert.Equal(t, "Флоки", res.Items[1].Name)
	assert.InDelta(t, 2.5, res.Items[1].Quantity, 1e-9)
	assert.Equal(t, "Лак глянц.", res.Items[2].Name)
	assert.InDelta(t, 12.0, res.Items[2].Quantity, 1e-9)

	want := 20*prices.Emal + 2.5*prices.Floki + 12*prices.LacGlossy
	assert.InDelta(t, want, res.Total, 1e-9)
}

func TestCalculate_LacTypeChangesOnlyLacLine(t *testing.T) {
	prices := testPrices()

	glossy := pricing.Calculate(domain.ProductFloki, domain.LacGlossy, 100, prices)
	matte := pricing.Calculate(domain.ProductFloki, domain.LacMatte, 100, prices)
	require.NotNil(t, glossy)
	require.NotNil(t, matte)

	// First two lines identical
	assert.Equal(t, glossy.Items[0], matte.Items[0])
	assert.Equal(t, glossy.Items[1], matte.Items[1])

	// Lac line differs in name and price, not in quantity
	assert.Equal(t, "Лак матов.", matte.Items[2].Name)
	assert.InDelta(t, glossy.Items[2].Quantity, matte.Items[2].Quantity, 1e-9)
	assert.InDelta(t, prices.LacMatte, matte.Items[2].PricePerKg, 1e-9)
	assert.InDelta(t, glossy.Total-12*prices.LacGlossy+12*prices.LacMatte, matte.Total, 1e-9)
}

func TestCalculate_NoResult(t *testing.T) {
	prices := testPrices()

	assert.Nil(t, pricing.Calculate("", "", 100, prices))
	assert.Nil(t, pricing.Calculate(domain.ProductGrunt, "", 0, prices))
	assert.Nil(t, pricing.Calculate(domain.ProductGrunt, "", -5, prices))
	assert.Nil(t, pricing.Calculate("unknown", "", 100, prices))
}

func TestCalculate_EmalAndFarba(t *testing.T) {
	prices := testPrices()

	emal := pricing.Calculate(domain.ProductEmal, "", 50, prices)
	require.NotNil(t, emal)
	assert.InDelta(t, 15.0, emal.Items[0].Quantity, 1e-9)

	farba := pricing.Calculate(domain.ProductFarba, "", 50, prices)
	require.NotNil(t, farba)
	assert.InDelta(t, 10.0, farba.Items[0].Quantity, 1e-9)
	assert.InDelta(t, 10.0*prices.Farba, farba.Total, 1e-9)
}

func makeRoom(area float64, materials ...domain.Material) domain.Room {
	r := domain.Room{Area: area, Materials: materials}
	r.ID = uuid.New()
	return r
}

func TestRoomCost_VATThenDiscountOrder(t *testing.T) {
	room := makeRoom(100, domain.Material{Consumption: 0.15, Layers: 2, PricePerKg: 864})
	raw := 100 * 0.15 * 2 * 864

	b := pricing.RoomCost(&room, true, 20)

	assert.InDelta(t, raw, b.RawCost, 1e-9)
	assert.InDelta(t, raw*1.2, b.WithVAT, 1e-9)
	// Discount applies to the VAT-inclusive amount, not the raw cost
	assert.InDelta(t, raw*1.2*0.20, b.DiscountAmount, 1e-9)
	assert.InDelta(t, raw*1.2*0.80, b.Final, 1e-9)
}

func TestRoomCost_NoVAT(t *testing.T) {
	room := makeRoom(100, domain.Material{Consumption: 0.15, Layers: 2, PricePerKg: 864})
	raw := 100 * 0.15 * 2 * 864

	b := pricing.RoomCost(&room, false, 10)

	assert.InDelta(t, raw, b.WithVAT, 1e-9)
	assert.InDelta(t, raw*0.90, b.Final, 1e-9)
}

func TestRoomCost_MonotonicInLayersAndPrice(t *testing.T) {
	baseRoom := makeRoom(80, domain.Material{Consumption: 0.3, Layers: 2, PricePerKg: 1000})
	base := pricing.RoomCost(&baseRoom, true, 15)

	moreLayers := makeRoom(80, domain.Material{Consumption: 0.3, Layers: 3, PricePerKg: 1000})
	higherPrice := makeRoom(80, domain.Material{Consumption: 0.3, Layers: 2, PricePerKg: 1500})

	assert.GreaterOrEqual(t, pricing.RoomCost(&moreLayers, true, 15).Final, base.Final)
	assert.GreaterOrEqual(t, pricing.RoomCost(&higherPrice, true, 15).Final, base.Final)
}

func TestProposalTotal_RoundsOnceAtAggregate(t *testing.T) {
	// Two rooms whose exact finals end in .5 fractions individually
	// must be summed before rounding.
	r1 := makeRoom(1, domain.Material{Consumption: 0.333, Layers: 1, PricePerKg: 1})
	r2 := makeRoom(1, domain.Material{Consumption: 0.333, Layers: 1, PricePerKg: 1})
	rooms := []domain.Room{r1, r2}

	exact := pricing.RoomCost(&r1, false, 0).Final + pricing.RoomCost(&r2, false, 0).Final
	assert.InDelta(t, math.Round(exact), pricing.ProposalTotal(rooms, false, 0), 1e-9)
}

func TestProposalTotal_DefaultScaffold(t *testing.T) {
	// The default proposal scaffold: 100 m², gruntivka 0.15×2×864 and
	// emal 0.30×3×1512, VAT on, 20% discount.
	room := makeRoom(100,
		domain.Material{Consumption: 0.15, Layers: 2, PricePerKg: 864},
		domain.Material{Consumption: 0.30, Layers: 3, PricePerKg: 1512},
	)
	raw := 100*0.15*2*864 + 100*0.30*3*1512

	got := pricing.ProposalTotal([]domain.Room{room}, true, 20)
	assert.InDelta(t, math.Round(raw*1.2*0.8), got, 1e-9)
}

func TestSelectionTotal(t *testing.T) {
	r1 := makeRoom(100, domain.Material{Consumption: 0.15, Layers: 2, PricePerKg: 864})
	r2 := makeRoom(50, domain.Material{Consumption: 0.30, Layers: 1, PricePerKg: 1512})
	rooms := []domain.Room{r1, r2}

	all := pricing.ProposalTotal(rooms, true, 10)
	onlyFirst := pricing.SelectionTotal(rooms, map[uuid.UUID]bool{r1.ID: true}, true, 10)
	none := pricing.SelectionTotal(rooms, nil, true, 10)

	assert.InDelta(t, math.Round(pricing.RoomCost(&r1, true, 10).Final), onlyFirst, 1e-9)
	assert.Greater(t, all, onlyFirst)
	assert.Zero(t, none)
}

func TestUnitPriceWithVAT(t *testing.T) {
	assert.InDelta(t, 1200.0, pricing.UnitPriceWithVAT(1000, true), 1e-9)
	assert.InDelta(t, 1000.0, pricing.UnitPriceWithVAT(1000, false), 1e-9)
}
