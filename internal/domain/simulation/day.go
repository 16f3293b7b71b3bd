// Package simulation implements the single parameterized day-simulation
// routine shared by all minigames (lemonade stand, coffee cart, universal
// business). The economic outcome is a pure function of the input, computed
// synchronously; any reveal animation is a presentation concern elsewhere.
package simulation

import (
	"math"
	"math/rand"

	"tycoon/internal/domain/entity"
)

// DefaultEvents is the weather table used when a simulation definition does
// not carry its own event triggers.
var DefaultEvents = []entity.SimEvent{
	{ID: "sunny", Name: "Sunny", Weight: 5, Factor: 1.0},
	{ID: "heatwave", Name: "Heat Wave", Weight: 2, Factor: 1.5},
	{ID: "cloudy", Name: "Cloudy", Weight: 3, Factor: 0.7},
	{ID: "rainy", Name: "Rainy", Weight: 2, Factor: 0.4},
}

// DayInput parameterizes one simulated business day.
type DayInput struct {
	Seed            int64              // RNG seed; equal seeds give equal outcomes.
	DemandBase      float64            // Baseline customer demand per day.
	Quality         float64            // Product quality in [0, 1]; clamped.
	Price           float64            // Player-chosen unit price.
	BasePrice       float64            // Reference price demand is calibrated against.
	PriceMultiplier float64            // Skill/item price modifier; values <= 0 are treated as neutral.
	Events          []entity.SimEvent  // Weighted day events; DefaultEvents when empty.
	InventoryCaps   map[string]int     // Max sales each resource supports; any zero cap yields zero sales.
}

// DayResult is the settled outcome of one simulated day.
type DayResult struct {
	Event              entity.SimEvent `json:"event"`
	PotentialCustomers int             `json:"potential_customers"`
	UnitsSold          int             `json:"units_sold"`
	Revenue            float64         `json:"revenue"`
	SoldOut            bool            `json:"sold_out"` // True when inventory, not demand, limited sales.
}

// Run simulates one business day. Inputs were already paid for at purchase
// time, so the result carries revenue only.
func Run(in DayInput) DayResult {
	rng := rand.New(rand.NewSource(in.Seed))
	event := drawEvent(rng, in.Events)

	quality := clamp01(in.Quality)
	potential := in.DemandBase * event.Factor * (0.5 + 0.5*quality) * priceFactor(in.Price, in.BasePrice)
	if potential < 0 {
		potential = 0
	}
	customers := int(math.Floor(potential))

	unitsSold := customers
	soldOut := false
	for _, cap := range in.InventoryCaps {
		if cap < unitsSold {
			unitsSold = cap
			soldOut = true
		}
	}
	if unitsSold < 0 {
		unitsSold = 0
	}

	priceMultiplier := in.PriceMultiplier
	if priceMultiplier <= 0 {
		priceMultiplier = 1
	}

	return DayResult{
		Event:              event,
		PotentialCustomers: customers,
		UnitsSold:          unitsSold,
		Revenue:            float64(unitsSold) * in.Price * priceMultiplier,
		SoldOut:            soldOut && unitsSold < customers,
	}
}

// drawEvent picks a weighted random event. Entries with non-positive weight
// are never drawn; an empty or all-zero table falls back to DefaultEvents.
func drawEvent(rng *rand.Rand, events []entity.SimEvent) entity.SimEvent {
	if len(events) == 0 {
		events = DefaultEvents
	}

	total := 0
	for _, e := range events {
		if e.Weight > 0 {
			total += e.Weight
		}
	}
	if total == 0 {
		return DefaultEvents[0]
	}

	pick := rng.Intn(total)
	for _, e := range events {
		if e.Weight <= 0 {
			continue
		}
		if pick < e.Weight {
			return e
		}
		pick -= e.Weight
	}

	return events[len(events)-1]
}

// priceFactor scales demand by how far the asking price sits from the
// reference price: neutral at the reference, drying up as the price doubles.
func priceFactor(price, basePrice float64) float64 {
	if basePrice <= 0 {
		return 1
	}

	factor := 1.5 - 0.5*(price/basePrice)
	if factor < 0 {
		return 0
	}
	if factor > 1.5 {
		return 1.5
	}

	return factor
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}

	return v
}
