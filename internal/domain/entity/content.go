// Package entity contains the core business objects of the project.
package entity

import "time"

// Lesson is a CMS-managed learning unit. Completing it grants a one-time
// XP and coin reward.
type Lesson struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	XPReward   int       `json:"xp_reward"`
	CoinReward int       `json:"coin_reward"`
	Tier       Tier      `json:"tier,omitempty"` // Minimum subscription tier; empty means free.
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Book is a CMS-managed library entry with a small one-time coin reward for
// reading it.
type Book struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Author     string    `json:"author"`
	CoinReward int       `json:"coin_reward"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BusinessSim is the static descriptor driving the generic "universal
// business" minigame. It is read-only from the minigame's perspective and
// mutable only through admin content CRUD.
type BusinessSim struct {
	ID          string            `json:"business_id"`
	Name        string            `json:"name"`
	Category    string            `json:"category"`
	Tier        Tier              `json:"tier,omitempty"` // Minimum subscription tier; empty means free.
	DemandBase  float64           `json:"demand_base"`
	BasePrice   float64           `json:"base_price"`
	Resources   []SimResource     `json:"resources"`      // Purchasable inputs capping daily sales.
	Upgrades    []SimUpgrade      `json:"upgrades"`       // Upgrade tree entries.
	Events      []SimEvent        `json:"events"`         // Weighted day events.
	Variables   map[string]Slider `json:"variables"`      // Player-input schema (price/recipe sliders).
	XPReward    int               `json:"xp_reward"`      // Per simulated day, before modifiers.
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// SimResource is one purchasable input of a business simulation.
type SimResource struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	UnitCost float64 `json:"unit_cost"`
	PerSale  int     `json:"per_sale"` // Units consumed per sale.
}

// SimUpgrade is one node of a simulation's upgrade tree.
type SimUpgrade struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Cost    float64 `json:"cost"`
	Quality float64 `json:"quality"` // Additive quality contribution in [0, 1].
}

// SimEvent is one weighted random day event (weather, rush hour, ...).
type SimEvent struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Weight int     `json:"weight"` // Relative draw weight; non-positive entries are never drawn.
	Factor float64 `json:"factor"` // Demand multiplier applied when drawn.
}

// Slider describes one player-adjustable simulation variable.
type Slider struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Default float64 `json:"default"`
}
