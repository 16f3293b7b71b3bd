// Package entity contains the core business objects of the project.
package entity

// Tier represents a subscription level mapped to a fixed set of feature unlocks.
type Tier string

const (
	// TierIntern is the free tier.
	TierIntern Tier = "intern"
	// TierFounder unlocks unlimited energy.
	TierFounder Tier = "founder"
	// TierBoard adds the parent dashboard on top of founder.
	TierBoard Tier = "board"
	// TierTycoon is the top tier, adding AI features and exclusive content.
	TierTycoon Tier = "tycoon"
)

// String returns the string representation of the Tier.
func (t Tier) String() string {
	return string(t)
}

// IsValid checks if the Tier is a valid value.
func (t Tier) IsValid() bool {
	switch t {
	case TierIntern, TierFounder, TierBoard, TierTycoon:
		return true
	default:
		return false
	}
}

// rank orders tiers from free to top so content gating can compare them.
func (t Tier) rank() int {
	switch t {
	case TierIntern:
		return 0
	case TierFounder:
		return 1
	case TierBoard:
		return 2
	case TierTycoon:
		return 3
	default:
		return -1
	}
}

// AtLeast reports whether the tier is equal to or above the given tier.
func (t Tier) AtLeast(other Tier) bool {
	return t.rank() >= other.rank()
}

// Premium reports the coarse free/premium status derived from the tier.
func (t Tier) Premium() bool {
	return t != TierIntern
}

// UnlimitedEnergy reports whether the tier exempts the user from energy
// consumption.
func (t Tier) UnlimitedEnergy() bool {
	return t.AtLeast(TierFounder)
}

// AIAccess reports whether AI features are unlocked.
func (t Tier) AIAccess() bool {
	return t == TierTycoon
}

// ParentDashboard reports whether the parent dashboard is unlocked.
func (t Tier) ParentDashboard() bool {
	return t.AtLeast(TierBoard)
}

// CanAccessContent reports whether content gated at requiredTier is unlocked
// for this tier. Ungated content passes an empty requiredTier.
func (t Tier) CanAccessContent(requiredTier Tier) bool {
	if requiredTier == "" {
		return true
	}

	return t.AtLeast(requiredTier)
}

// Entitlements is the flattened view of a tier's feature unlocks, as consumed
// by the UI.
type Entitlements struct {
	Tier            Tier `json:"tier"`
	Premium         bool `json:"premium"`
	UnlimitedEnergy bool `json:"unlimited_energy"`
	AIAccess        bool `json:"ai_access"`
	ParentDashboard bool `json:"parent_dashboard"`
}

// EntitlementsFor maps a tier to its entitlement set.
func EntitlementsFor(t Tier) Entitlements {
	return Entitlements{
		Tier:            t,
		Premium:         t.Premium(),
		UnlimitedEnergy: t.UnlimitedEnergy(),
		AIAccess:        t.AIAccess(),
		ParentDashboard: t.ParentDashboard(),
	}
}
