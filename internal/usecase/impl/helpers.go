// Package impl contains the implementation of the application's business logic.
package impl

import (
	"math"
	"time"

	"tycoon/config"
	"tycoon/internal/domain/catalog"
	"tycoon/internal/domain/entity"
	domainerrors "tycoon/internal/domain/errors"
	"tycoon/internal/store"
	"tycoon/internal/usecase"

	"github.com/google/uuid"
)

// gameRules is the resolved tuning of the game economy, derived once from
// config so services never guard against missing sections.
type gameRules struct {
	maxEnergy      int
	refillInterval time.Duration
	idleIncomeCap  time.Duration
	startingCoins  int
	maxAccounts    int
}

func rulesFromConfig(cfg *config.Config) gameRules {
	rules := gameRules{
		maxEnergy:      5,
		refillInterval: 4 * time.Hour,
		idleIncomeCap:  24 * time.Hour,
		startingCoins:  100,
		maxAccounts:    500,
	}

	if cfg == nil {
		return rules
	}
	if cfg.Game != nil {
		if cfg.Game.MaxEnergy > 0 {
			rules.maxEnergy = cfg.Game.MaxEnergy
		}
		if cfg.Game.EnergyRefillInterval > 0 {
			rules.refillInterval = cfg.Game.EnergyRefillInterval
		}
		if cfg.Game.IdleIncomeCap > 0 {
			rules.idleIncomeCap = cfg.Game.IdleIncomeCap
		}
		if cfg.Game.StartingCoins > 0 {
			rules.startingCoins = cfg.Game.StartingCoins
		}
	}
	if cfg.Auth != nil && cfg.Auth.MaxAccounts > 0 {
		rules.maxAccounts = cfg.Auth.MaxAccounts
	}

	return rules
}

// findUser resolves a user inside an action or view.
func findUser(s *store.State, userID uuid.UUID) (*entity.User, error) {
	user, ok := s.Users[userID]
	if !ok {
		return nil, domainerrors.ErrUserNotFound
	}

	return user, nil
}

// modifiersFor folds the account's unlocked skills and equipped boost items
// into one modifier set. The fold is order independent: every effect adds or
// subtracts its delta against the neutral {1,1,1} baseline.
func modifiersFor(user *entity.User) entity.Modifiers {
	mods := catalog.ModifiersFor(user.UnlockedSkills)

	for _, itemID := range user.EquippedItems {
		item, ok := catalog.ShopItem(itemID)
		if !ok || item.Effect == nil {
			continue
		}
		mods = mods.Apply(*item.Effect)
	}

	return mods
}

// scaleReward applies a multiplier to a base reward, flooring the result and
// never letting it go negative.
func scaleReward(base int, multiplier float64) int {
	if base <= 0 {
		return 0
	}

	scaled := int(math.Floor(float64(base) * multiplier))
	if scaled < 0 {
		return 0
	}

	return scaled
}

// energyStatusFor describes the meter without mutating it; callers apply
// regeneration first.
func energyStatusFor(user *entity.User, rules gameRules) usecase.EnergyStatus {
	status := usecase.EnergyStatus{
		Current:   user.Energy,
		Max:       rules.maxEnergy,
		Unlimited: user.Tier.UnlimitedEnergy(),
	}

	if !status.Unlimited && user.Energy < rules.maxEnergy && !user.LastEnergyRefill.IsZero() {
		next := user.LastEnergyRefill.Add(rules.refillInterval)
		status.NextRefillAt = &next
	}

	return status
}

// buildProfile maps a user entity onto the API-facing profile view.
func buildProfile(user *entity.User, rules gameRules) *usecase.Profile {
	clone := user.Clone()

	return &usecase.Profile{
		ID:               clone.ID,
		Username:         clone.Username,
		Name:             clone.Name,
		Role:             clone.Role,
		XP:               clone.XP,
		Level:            clone.Level(),
		Streak:           clone.Streak,
		BizCoins:         clone.BizCoins,
		LevelUp:          clone.LevelUp,
		Badges:           clone.Badges,
		Inventory:        clone.Inventory,
		EquippedItems:    clone.EquippedItems,
		CompletedLessons: clone.CompletedLessonIDs,
		ReadBooks:        clone.ReadBookIDs,
		Tier:             clone.Tier,
		Entitlements:     entity.EntitlementsFor(clone.Tier),
		Energy:           energyStatusFor(clone, rules),
		HQLevel:          clone.HQLevel,
		UnlockedSkills:   clone.UnlockedSkills,
		Portfolio:        clone.Portfolio,
		Settings:         clone.Settings,
		CreatedAt:        clone.CreatedAt,
	}
}

// resolveSimulation finds a minigame definition: admin-authored definitions
// in state shadow the built-in ones.
func resolveSimulation(s *store.State, gameID string) (entity.BusinessSim, error) {
	if sim, ok := s.Simulations[gameID]; ok && sim != nil {
		return *sim, nil
	}
	if sim, ok := catalog.Simulation(gameID); ok {
		return sim, nil
	}

	return entity.BusinessSim{}, domainerrors.ErrContentNotFound
}
