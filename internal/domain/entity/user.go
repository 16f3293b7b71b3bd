// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// User is the core entity in the system: one player (or teacher/parent/admin)
// account together with its full progression and economy state. Users are
// value-like snapshots inside the application state; actions never mutate a
// stored user in place but replace it wholesale.
type User struct {
	ID           uuid.UUID `json:"id"`            // The Global Unique Identifier (GUID) for the account.
	Username     string    `json:"username"`      // Login identifier, unique across accounts.
	Name         string    `json:"name"`          // Display name.
	PasswordHash string    `json:"password_hash,omitempty"` // bcrypt hash; snapshots keep it, API responses use DTOs instead of raw users.
	Role         Role      `json:"role"`          // kid / parent / teacher / admin.

	// Progression.
	XP               int           `json:"xp"`                 // Non-negative, monotonically increasing.
	Streak           int           `json:"streak"`             // Consecutive active days.
	LastActivityDate string        `json:"last_activity_date"` // Calendar date (2006-01-02) of the last rewarded activity.
	LevelUp          *LevelUpEvent `json:"level_up,omitempty"` // One-shot level-up notification, cleared by dismissal.

	// Currency and collections.
	BizCoins           int      `json:"biz_coins"` // Never negative.
	CompletedLessonIDs []string `json:"completed_lesson_ids"`
	ReadBookIDs        []string `json:"read_book_ids"`
	Badges             []string `json:"badges"`
	Inventory          []string `json:"inventory"` // Duplicates allowed only for non-unique item classes.
	EquippedItems      []string `json:"equipped_items"`

	// Subscription and gated resources.
	Tier             Tier      `json:"tier"`
	Energy           int       `json:"energy"` // Always within [0, max].
	LastEnergyRefill time.Time `json:"last_energy_refill"`

	// HQ, skills and idle-income holdings.
	HQLevel        string          `json:"hq_level"` // Id of the owned HQ catalog entry.
	UnlockedSkills []string        `json:"unlocked_skills"`
	Portfolio      []PortfolioItem `json:"portfolio"`

	Settings  Settings  `json:"settings"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Settings holds per-account presentation preferences.
type Settings struct {
	Sound bool   `json:"sound"`
	Music bool   `json:"music"`
	Theme string `json:"theme"`
}

// DefaultSettings returns the settings applied to new accounts.
func DefaultSettings() Settings {
	return Settings{Sound: true, Music: true, Theme: "light"}
}

// Level derives the account's level from its XP total.
func (u *User) Level() int {
	return LevelForXP(u.XP)
}

// GrantXP adds a non-negative XP amount and raises the one-shot level-up
// notification when a threshold is crossed. Reports whether a level-up
// occurred.
func (u *User) GrantXP(amount int) bool {
	if amount <= 0 {
		return false
	}

	before := u.Level()
	u.XP += amount
	after := u.Level()

	if after > before {
		u.LevelUp = &LevelUpEvent{Level: after, XP: u.XP}

		return true
	}

	return false
}

// SpendCoins debits the given cost and reports success. On insufficient
// funds the balance is left untouched, keeping bizCoins non-negative.
func (u *User) SpendCoins(cost int) bool {
	if cost < 0 || cost > u.BizCoins {
		return false
	}

	u.BizCoins -= cost

	return true
}

// OwnsItem reports whether the item id is present in the inventory.
func (u *User) OwnsItem(itemID string) bool {
	return slices.Contains(u.Inventory, itemID)
}

// HasSkill reports whether the skill id has been unlocked.
func (u *User) HasSkill(skillID string) bool {
	return slices.Contains(u.UnlockedSkills, skillID)
}

// HasBadge reports whether the badge id has been awarded.
func (u *User) HasBadge(badgeID string) bool {
	return slices.Contains(u.Badges, badgeID)
}

// HasCompletedLesson reports whether the lesson id has already been rewarded.
func (u *User) HasCompletedLesson(lessonID string) bool {
	return slices.Contains(u.CompletedLessonIDs, lessonID)
}

// HasReadBook reports whether the book id has already been rewarded.
func (u *User) HasReadBook(bookID string) bool {
	return slices.Contains(u.ReadBookIDs, bookID)
}

// PortfolioItemFor returns a pointer into the portfolio for the given
// business, or nil when no manager has been hired for it.
func (u *User) PortfolioItemFor(businessID string) *PortfolioItem {
	for i := range u.Portfolio {
		if u.Portfolio[i].BusinessID == businessID {
			return &u.Portfolio[i]
		}
	}

	return nil
}

// RegenerateEnergy applies the elapsed-time refill rule: one point per whole
// interval since the refill anchor, capped at maxEnergy. The anchor advances
// by consumed whole intervals only, preserving partial progress toward the
// next tick. A full (or over-full) meter re-anchors to now so stale anchors
// never grant an instant burst after the next consumption.
func (u *User) RegenerateEnergy(now time.Time, maxEnergy int, interval time.Duration) {
	if u.Energy >= maxEnergy {
		u.Energy = maxEnergy
		u.LastEnergyRefill = now

		return
	}

	if u.LastEnergyRefill.IsZero() || u.LastEnergyRefill.After(now) {
		// Corrupted anchor: repair to now rather than computing from it.
		u.LastEnergyRefill = now

		return
	}

	elapsed := now.Sub(u.LastEnergyRefill)
	if elapsed < interval {
		return
	}

	generated := int(elapsed / interval)
	u.Energy += generated
	if u.Energy > maxEnergy {
		u.Energy = maxEnergy
	}
	u.LastEnergyRefill = u.LastEnergyRefill.Add(time.Duration(generated) * interval)
}

// ConsumeEnergy spends one energy point and reports success. Unlimited-tier
// accounts always succeed without their meter changing. Consuming from a
// full meter re-anchors the refill timer to now, so the first regeneration
// interval starts the moment the meter first became non-full.
func (u *User) ConsumeEnergy(now time.Time, maxEnergy int) bool {
	if u.Tier.UnlimitedEnergy() {
		return true
	}

	if u.Energy <= 0 {
		return false
	}

	if u.Energy >= maxEnergy {
		u.LastEnergyRefill = now
	}
	u.Energy--

	return true
}

// TouchStreak updates the daily streak for an activity happening at now:
// same calendar day keeps the streak, the day after the last activity
// extends it, anything else restarts at 1.
func (u *User) TouchStreak(now time.Time) {
	today := now.Format(time.DateOnly)
	if u.LastActivityDate == today {
		return
	}

	yesterday := now.AddDate(0, 0, -1).Format(time.DateOnly)
	if u.LastActivityDate == yesterday {
		u.Streak++
	} else {
		u.Streak = 1
	}
	u.LastActivityDate = today
}

// Clone returns a deep copy of the user, detaching all slices and pointers
// so snapshot-replace semantics hold.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}

	clone := *u
	clone.CompletedLessonIDs = slices.Clone(u.CompletedLessonIDs)
	clone.ReadBookIDs = slices.Clone(u.ReadBookIDs)
	clone.Badges = slices.Clone(u.Badges)
	clone.Inventory = slices.Clone(u.Inventory)
	clone.EquippedItems = slices.Clone(u.EquippedItems)
	clone.UnlockedSkills = slices.Clone(u.UnlockedSkills)
	clone.Portfolio = slices.Clone(u.Portfolio)
	if u.LevelUp != nil {
		levelUp := *u.LevelUp
		clone.LevelUp = &levelUp
	}

	return &clone
}
