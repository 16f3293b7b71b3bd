// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"tycoon/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Username string
	Password string
	Name     string
	Role     entity.Role
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Username string
	Password string
}

// UpdateSettingsInput carries the account presentation preferences.
type UpdateSettingsInput struct {
	Sound bool
	Music bool
	Theme string
}

// --- Output DTOs ---

// Profile is the safe, API-facing view of an account: the full progression
// and economy state without credentials.
type Profile struct {
	ID               uuid.UUID             `json:"id"`
	Username         string                `json:"username"`
	Name             string                `json:"name"`
	Role             entity.Role           `json:"role"`
	XP               int                   `json:"xp"`
	Level            int                   `json:"level"`
	Streak           int                   `json:"streak"`
	BizCoins         int                   `json:"biz_coins"`
	LevelUp          *entity.LevelUpEvent  `json:"level_up,omitempty"`
	Badges           []string              `json:"badges"`
	Inventory        []string              `json:"inventory"`
	EquippedItems    []string              `json:"equipped_items"`
	CompletedLessons []string              `json:"completed_lessons"`
	ReadBooks        []string              `json:"read_books"`
	Tier             entity.Tier           `json:"tier"`
	Entitlements     entity.Entitlements   `json:"entitlements"`
	Energy           EnergyStatus          `json:"energy"`
	HQLevel          string                `json:"hq_level"`
	UnlockedSkills   []string              `json:"unlocked_skills"`
	Portfolio        []entity.PortfolioItem `json:"portfolio"`
	Settings         entity.Settings       `json:"settings"`
	CreatedAt        time.Time             `json:"created_at"`
}

// LoginOutput returns the generated tokens after a successful login.
type LoginOutput struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	Profile      *Profile `json:"profile"`
}

// AccountUsecase defines the interface for account-related business
// operations. This is the contract the delivery layer depends on.
type AccountUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*Profile, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	Profile(ctx context.Context, userID uuid.UUID) (*Profile, error)
	UpdateSettings(ctx context.Context, userID uuid.UUID, input *UpdateSettingsInput) (*Profile, error)
}
