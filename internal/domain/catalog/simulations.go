package catalog

import "tycoon/internal/domain/entity"

// Built-in minigame definitions. The lemonade stand and coffee cart ship
// with the game; admin-authored "universal business" definitions live in
// application state and shadow these when ids collide.
var builtinSims = []entity.BusinessSim{
	{
		ID:         "lemonade-stand",
		Name:       "Lemonade Stand",
		Category:   "food",
		DemandBase: 40,
		BasePrice:  2.0,
		Resources: []entity.SimResource{
			{ID: "lemons", Name: "Lemons", UnitCost: 0.25, PerSale: 2},
			{ID: "sugar", Name: "Sugar", UnitCost: 0.10, PerSale: 1},
			{ID: "cups", Name: "Paper Cups", UnitCost: 0.05, PerSale: 1},
		},
		Upgrades: []entity.SimUpgrade{
			{ID: "bigger-sign", Name: "Bigger Sign", Cost: 15, Quality: 0.1},
			{ID: "ice-box", Name: "Ice Box", Cost: 40, Quality: 0.2},
			{ID: "fresh-mint", Name: "Fresh Mint", Cost: 75, Quality: 0.2},
		},
		Variables: map[string]entity.Slider{
			"price": {Min: 0.5, Max: 5.0, Default: 2.0},
		},
		XPReward: 20,
	},
	{
		ID:         "coffee-cart",
		Name:       "Coffee Cart",
		Category:   "food",
		Tier:       entity.TierFounder,
		DemandBase: 60,
		BasePrice:  4.0,
		Resources: []entity.SimResource{
			{ID: "beans", Name: "Coffee Beans", UnitCost: 0.60, PerSale: 1},
			{ID: "milk", Name: "Milk", UnitCost: 0.30, PerSale: 1},
			{ID: "cups", Name: "Travel Cups", UnitCost: 0.15, PerSale: 1},
		},
		Upgrades: []entity.SimUpgrade{
			{ID: "espresso-machine", Name: "Espresso Machine", Cost: 120, Quality: 0.25},
			{ID: "loyalty-cards", Name: "Loyalty Cards", Cost: 60, Quality: 0.1},
			{ID: "oat-milk", Name: "Oat Milk Option", Cost: 90, Quality: 0.15},
		},
		Events: []entity.SimEvent{
			{ID: "sunny", Name: "Sunny", Weight: 3, Factor: 0.9},
			{ID: "cold-snap", Name: "Cold Snap", Weight: 2, Factor: 1.6},
			{ID: "rainy", Name: "Rainy", Weight: 3, Factor: 1.2},
			{ID: "holiday", Name: "Public Holiday", Weight: 1, Factor: 0.5},
		},
		Variables: map[string]entity.Slider{
			"price": {Min: 1.0, Max: 8.0, Default: 4.0},
		},
		XPReward: 35,
	},
}

// Simulation looks up a built-in minigame definition by id.
func Simulation(id string) (entity.BusinessSim, bool) {
	for _, sim := range builtinSims {
		if sim.ID == id {
			return sim, true
		}
	}

	return entity.BusinessSim{}, false
}

// Simulations returns all built-in minigame definitions.
func Simulations() []entity.BusinessSim {
	return builtinSims
}
