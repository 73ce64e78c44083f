// Package pricing holds the material-consumption calculator and the
// proposal cost aggregator. Both are pure: they read their inputs and
// return results without touching storage, which keeps the arithmetic
// trivially testable and lets callers recompute from scratch on every
// edit instead of trusting cached intermediates.
package pricing

import (
	"math"

	"github.com/google/uuid"
	"github.com/polibest/kp-api/internal/domain"
)

// Per-m² consumption rates (kg/m²) fixed by the product datasheets
const (
	ConsumptionFlokiEmal = 0.20
	ConsumptionFloki     = 0.025
	ConsumptionFlokiLac  = 0.12
	ConsumptionGrunt     = 0.15
	ConsumptionEmal      = 0.30
	ConsumptionFarba     = 0.20
)

// VATMultiplier is the fixed 20% value-added tax factor
const VATMultiplier = 1.20

// Line is one material line of a calculator result
type Line struct {
	Name       string
	Quantity   float64 // kg
	PricePerKg float64
	Total      float64
}

// Result is an itemized calculator result
type Result struct {
	Items []Line
	Total float64
}

// Calculate maps a product type and surface area to the itemized
// material list using the fixed consumption table and the unit prices
// from settings. It returns nil when the product type is not set (or
// unknown) or the area is not positive: "nothing to display", not an
// error. lacType only matters for floki and defaults to glossy.
func Calculate(product domain.ProductType, lacType domain.LacType, area float64, prices domain.PriceSettings) *Result {
	if area <= 0 || !product.IsValid() {
		return nil
	}

	var items []Line
	switch product {
	case domain.ProductFloki:
		items = append(items, line("Емаль", area*ConsumptionFlokiEmal, prices.Emal))
		items = append(items, line("Флоки", area*ConsumptionFloki, prices.Floki))
		lacName, lacPrice := "Лак глянц.", prices.LacGlossy
		if lacType == domain.LacMatte {
			lacName, lacPrice = "Лак матов.", prices.LacMatte
		}
		items = append(items, line(lacName, area*ConsumptionFlokiLac, lacPrice))
	case domain.ProductGrunt:
		items = append(items, line("Ґрунтівка", area*ConsumptionGrunt, prices.Gruntivka))
	case domain.ProductEmal:
		items = append(items, line("Емаль", area*ConsumptionEmal, prices.Emal))
	case domain.ProductFarba:
		items = append(items, line("Фарба", area*ConsumptionFarba, prices.Farba))
	}

	total := 0.0
	for _, it := range items {
		total += it.Total
	}
	return &Result{Items: items, Total: total}
}

func line(name string, quantity, pricePerKg float64) Line {
	return Line{
		Name:       name,
		Quantity:   quantity,
		PricePerKg: pricePerKg,
		Total:      quantity * pricePerKg,
	}
}

// RoomBreakdown is the cost breakdown of a single room.
// The order of operations is fixed: raw cost, then ×1.2 when VAT is
// enabled, then the discount percentage off the VAT-inclusive amount.
type RoomBreakdown struct {
	RoomID         uuid.UUID
	RawCost        float64 // Σ area × consumption × layers × pricePerKg
	WithVAT        float64
	DiscountAmount float64
	Final          float64
	TotalLayers    int
}

// RoomCost computes the breakdown for one room. No rounding happens
// here; monetary rounding is applied once at the aggregate step.
func RoomCost(room *domain.Room, vatEnabled bool, discountPercent float64) RoomBreakdown {
	b := RoomBreakdown{RoomID: room.ID}
	for _, m := range room.Materials {
		b.RawCost += room.Area * m.Consumption * float64(m.Layers) * m.PricePerKg
		b.TotalLayers += m.Layers
	}
	b.WithVAT = b.RawCost
	if vatEnabled {
		b.WithVAT = b.RawCost * VATMultiplier
	}
	b.DiscountAmount = b.WithVAT * (discountPercent / 100)
	b.Final = b.WithVAT - b.DiscountAmount
	return b
}

// ProposalTotal computes the grand total over all rooms, rounded to the
// nearest whole unit. Totals are always recomputed from the rooms and
// the current VAT/discount values, never taken from a cached field.
func ProposalTotal(rooms []domain.Room, vatEnabled bool, discountPercent float64) float64 {
	sum := 0.0
	for i := range rooms {
		sum += RoomCost(&rooms[i], vatEnabled, discountPercent).Final
	}
	return math.Round(sum)
}

// SelectionTotal computes the grand total restricted to the selected
// room ids, using the same per-room formula as ProposalTotal. An empty
// or nil selection selects nothing.
func SelectionTotal(rooms []domain.Room, selected map[uuid.UUID]bool, vatEnabled bool, discountPercent float64) float64 {
	sum := 0.0
	for i := range rooms {
		if selected[rooms[i].ID] {
			sum += RoomCost(&rooms[i], vatEnabled, discountPercent).Final
		}
	}
	return math.Round(sum)
}

// UnitPriceWithVAT returns the displayed per-kg price of a material,
// inclusive of VAT when the proposal has it enabled.
func UnitPriceWithVAT(pricePerKg float64, vatEnabled bool) float64 {
	if vatEnabled {
		return pricePerKg * VATMultiplier
	}
	return pricePerKg
}
