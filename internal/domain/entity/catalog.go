// Package entity contains the core business objects of the project.
package entity

// EffectKind is the closed set of passive/active effects a catalog entry can
// carry. Exhaustive switches over this type keep effect handling honest.
type EffectKind string

const (
	// EffectPassiveXP raises the XP multiplier applied to rewards.
	EffectPassiveXP EffectKind = "passive_xp"
	// EffectPassiveCost lowers the cost multiplier applied to purchases.
	EffectPassiveCost EffectKind = "passive_cost"
	// EffectPassivePrice raises the sale price multiplier in simulations.
	EffectPassivePrice EffectKind = "passive_price"
	// EffectActiveClick raises the per-click payout in clicker games.
	EffectActiveClick EffectKind = "active_click"
	// EffectPassiveSpeed shortens simulated day durations.
	EffectPassiveSpeed EffectKind = "passive_speed"
)

// IsValid checks if the EffectKind is a known value.
func (k EffectKind) IsValid() bool {
	switch k {
	case EffectPassiveXP, EffectPassiveCost, EffectPassivePrice, EffectActiveClick, EffectPassiveSpeed:
		return true
	default:
		return false
	}
}

// Effect is a tagged numeric adjustment carried by a skill or item.
type Effect struct {
	Kind  EffectKind `json:"kind"`
	Delta float64    `json:"delta"`
}

// EquipSlot is the exclusive cosmetic slot an item occupies. An empty slot
// means the item is not equippable.
type EquipSlot string

const (
	SlotHead EquipSlot = "head"
	SlotEyes EquipSlot = "eyes"
	SlotBody EquipSlot = "body"
	SlotMisc EquipSlot = "misc"
)

// ShopItem is a static catalog entry purchasable with bizCoins.
// Catalog entries are immutable reference data, only referenced by id from
// user inventories.
type ShopItem struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Cost     int       `json:"cost"`
	Category string    `json:"category"`
	Slot     EquipSlot `json:"slot,omitempty"` // Explicit slot metadata; empty for non-equippable items.
	Unique   bool      `json:"unique"`         // Unique items may be owned at most once.
	Effect   *Effect   `json:"effect,omitempty"`
}

// Skill is a static catalog entry unlockable with bizCoins, contributing a
// passive effect to the user's aggregate modifiers.
type Skill struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Cost   int    `json:"cost"`
	Branch string `json:"branch"`
	Effect Effect `json:"effect"`
}

// HQLevel is a static headquarters upgrade tier, ordered by Rank and cost.
type HQLevel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Rank int    `json:"rank"`
	Cost int    `json:"cost"`
}

// Business is a static descriptor of an idle-income venture a user can hire
// a manager for.
type Business struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	HireCost       int     `json:"hire_cost"`
	UpgradeCost    int     `json:"upgrade_cost"`    // Per-level cost of raising the manager level.
	BaseHourlyRate float64 `json:"base_hourly_rate"` // Coins per hour at manager level 1.
}

// HourlyRate returns the coins-per-hour rate at the given manager level.
func (b Business) HourlyRate(managerLevel int) float64 {
	if managerLevel < 1 {
		managerLevel = 1
	}

	return b.BaseHourlyRate * float64(managerLevel)
}

// Modifiers is the aggregate multiplier set derived from a user's unlocked
// skills. The neutral value is {1, 1, 1}.
type Modifiers struct {
	XP    float64 `json:"xp"`
	Cost  float64 `json:"cost"`
	Price float64 `json:"price"`
}

// NeutralModifiers returns the identity modifier set.
func NeutralModifiers() Modifiers {
	return Modifiers{XP: 1, Cost: 1, Price: 1}
}

// Apply folds one effect into the modifier set. XP and price effects add
// their delta, cost effects subtract it (a cheaper-costs bonus). Click and
// speed effects do not touch these three multipliers; they are consumed
// directly by the minigames. The fold is pure summation, so skill order
// never matters.
func (m Modifiers) Apply(e Effect) Modifiers {
	switch e.Kind {
	case EffectPassiveXP:
		m.XP += e.Delta
	case EffectPassiveCost:
		m.Cost -= e.Delta
	case EffectPassivePrice:
		m.Price += e.Delta
	case EffectActiveClick, EffectPassiveSpeed:
	}

	return m
}

// AggregateModifiers folds a set of skills into one modifier set.
func AggregateModifiers(skills []Skill) Modifiers {
	m := NeutralModifiers()
	for _, s := range skills {
		m = m.Apply(s.Effect)
	}

	return m
}
