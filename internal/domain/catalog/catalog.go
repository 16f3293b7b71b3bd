// Package catalog holds the static reference data of the game economy: shop
// items, skills, HQ levels and idle-income businesses. Entries are immutable
// at runtime and only ever referenced by id from user state.
package catalog

import "tycoon/internal/domain/entity"

var shopItems = []entity.ShopItem{
	{ID: "hat-propeller", Name: "Propeller Cap", Cost: 50, Category: "cosmetic", Slot: entity.SlotHead, Unique: true},
	{ID: "hat-tophat", Name: "CEO Top Hat", Cost: 200, Category: "cosmetic", Slot: entity.SlotHead, Unique: true},
	{ID: "glasses-round", Name: "Round Glasses", Cost: 75, Category: "cosmetic", Slot: entity.SlotEyes, Unique: true},
	{ID: "shades-cool", Name: "Cool Shades", Cost: 120, Category: "cosmetic", Slot: entity.SlotEyes, Unique: true},
	{ID: "suit-pinstripe", Name: "Pinstripe Suit", Cost: 300, Category: "cosmetic", Slot: entity.SlotBody, Unique: true},
	{ID: "apron-barista", Name: "Barista Apron", Cost: 90, Category: "cosmetic", Slot: entity.SlotBody, Unique: true},
	{ID: "pet-goldfish", Name: "Office Goldfish", Cost: 150, Category: "cosmetic", Slot: entity.SlotMisc, Unique: true},
	{ID: "sticker-pack", Name: "Sticker Pack", Cost: 20, Category: "consumable", Unique: false},
	{
		ID: "golden-register", Name: "Golden Register", Cost: 500, Category: "boost", Slot: entity.SlotMisc, Unique: true,
		Effect: &entity.Effect{Kind: entity.EffectPassivePrice, Delta: 0.05},
	},
}

var skills = []entity.Skill{
	{ID: "skill-marketing-1", Name: "Catchy Signs", Cost: 100, Branch: "marketing", Effect: entity.Effect{Kind: entity.EffectPassivePrice, Delta: 0.1}},
	{ID: "skill-marketing-2", Name: "Radio Jingle", Cost: 350, Branch: "marketing", Effect: entity.Effect{Kind: entity.EffectPassivePrice, Delta: 0.15}},
	{ID: "skill-thrift-1", Name: "Coupon Clipper", Cost: 100, Branch: "operations", Effect: entity.Effect{Kind: entity.EffectPassiveCost, Delta: 0.1}},
	{ID: "skill-thrift-2", Name: "Bulk Buyer", Cost: 350, Branch: "operations", Effect: entity.Effect{Kind: entity.EffectPassiveCost, Delta: 0.15}},
	{ID: "skill-study-1", Name: "Fast Learner", Cost: 150, Branch: "scholar", Effect: entity.Effect{Kind: entity.EffectPassiveXP, Delta: 0.2}},
	{ID: "skill-study-2", Name: "Book Worm", Cost: 500, Branch: "scholar", Effect: entity.Effect{Kind: entity.EffectPassiveXP, Delta: 0.3}},
	{ID: "skill-hustle-1", Name: "Quick Hands", Cost: 200, Branch: "hustle", Effect: entity.Effect{Kind: entity.EffectActiveClick, Delta: 1}},
	{ID: "skill-hustle-2", Name: "Day Planner", Cost: 400, Branch: "hustle", Effect: entity.Effect{Kind: entity.EffectPassiveSpeed, Delta: 0.25}},
}

var hqLevels = []entity.HQLevel{
	{ID: "hq-garage", Name: "Garage", Rank: 1, Cost: 0},
	{ID: "hq-kiosk", Name: "Street Kiosk", Rank: 2, Cost: 250},
	{ID: "hq-office", Name: "Small Office", Rank: 3, Cost: 750},
	{ID: "hq-floor", Name: "Office Floor", Rank: 4, Cost: 2000},
	{ID: "hq-tower", Name: "Downtown Tower", Rank: 5, Cost: 5000},
}

var businesses = []entity.Business{
	{ID: "biz-lemonade", Name: "Lemonade Franchise", HireCost: 200, UpgradeCost: 150, BaseHourlyRate: 10},
	{ID: "biz-coffee", Name: "Coffee Cart Fleet", HireCost: 500, UpgradeCost: 300, BaseHourlyRate: 25},
	{ID: "biz-arcade", Name: "Retro Arcade", HireCost: 1200, UpgradeCost: 800, BaseHourlyRate: 60},
	{ID: "biz-foodtruck", Name: "Food Truck", HireCost: 2500, UpgradeCost: 1500, BaseHourlyRate: 120},
}

// DefaultHQLevel is the HQ every new account starts with.
const DefaultHQLevel = "hq-garage"

// ShopItem looks up a shop item by id.
func ShopItem(id string) (entity.ShopItem, bool) {
	for _, item := range shopItems {
		if item.ID == id {
			return item, true
		}
	}

	return entity.ShopItem{}, false
}

// ShopItems returns the full shop catalog.
func ShopItems() []entity.ShopItem {
	return shopItems
}

// Skill looks up a skill by id.
func Skill(id string) (entity.Skill, bool) {
	for _, skill := range skills {
		if skill.ID == id {
			return skill, true
		}
	}

	return entity.Skill{}, false
}

// Skills returns the full skill catalog.
func Skills() []entity.Skill {
	return skills
}

// HQLevel looks up an HQ level by id.
func HQLevel(id string) (entity.HQLevel, bool) {
	for _, hq := range hqLevels {
		if hq.ID == id {
			return hq, true
		}
	}

	return entity.HQLevel{}, false
}

// HQLevels returns the HQ upgrade ladder in rank order.
func HQLevels() []entity.HQLevel {
	return hqLevels
}

// Business looks up an idle-income business by id.
func Business(id string) (entity.Business, bool) {
	for _, biz := range businesses {
		if biz.ID == id {
			return biz, true
		}
	}

	return entity.Business{}, false
}

// Businesses returns the hireable business catalog.
func Businesses() []entity.Business {
	return businesses
}

// ModifiersFor folds the effects of the given unlocked skill ids into one
// modifier set. Unknown ids are skipped; stale references in old saves must
// not poison the whole account.
func ModifiersFor(skillIDs []string) entity.Modifiers {
	m := entity.NeutralModifiers()
	for _, id := range skillIDs {
		if skill, ok := Skill(id); ok {
			m = m.Apply(skill.Effect)
		}
	}

	return m
}
