package usecase

import (
	"context"

	"tycoon/internal/domain/entity"
	"tycoon/internal/domain/simulation"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// SimulateDayInput parameterizes one simulated business day of a minigame.
type SimulateDayInput struct {
	GameID  string
	Sliders map[string]float64 // Player slider values; out-of-schema values fall back.
	Seed    *int64             // Optional; fixed seeds replay identical days.
}

// BuyUpgradeInput purchases an upgrade-tree node with in-game funds.
type BuyUpgradeInput struct {
	GameID    string
	UpgradeID string
}

// BuySuppliesInput restocks a simulation resource with in-game funds.
type BuySuppliesInput struct {
	GameID     string
	ResourceID string
	Units      int
}

// --- Output DTOs ---

// SimulateDayOutput is the settled outcome of one simulated day, together
// with the rewards it converted into.
type SimulateDayOutput struct {
	Day          int                  `json:"day"`
	Result       simulation.DayResult `json:"result"`
	Funds        float64              `json:"funds"`
	XPAwarded    int                  `json:"xp_awarded"`
	CoinsAwarded int                  `json:"coins_awarded"`
	LevelUp      *entity.LevelUpEvent `json:"level_up,omitempty"`
}

// MinigameUsecase defines the interface for minigame sessions and their
// per-game save slots.
type MinigameUsecase interface {
	// SimulateDay runs one business day against the account's save slot,
	// applies XP/coin rewards through the shared progression rules and
	// advances the slot's day counter.
	SimulateDay(ctx context.Context, userID uuid.UUID, input *SimulateDayInput) (*SimulateDayOutput, error)

	// BuyUpgrade and BuySupplies spend in-game funds, not bizCoins.
	BuyUpgrade(ctx context.Context, userID uuid.UUID, input *BuyUpgradeInput) (*entity.GameSave, error)
	BuySupplies(ctx context.Context, userID uuid.UUID, input *BuySuppliesInput) (*entity.GameSave, error)

	// Save returns the account's slot for a game, initializing a fresh one
	// when none (or only a corrupted one) exists.
	Save(ctx context.Context, userID uuid.UUID, gameID string) (*entity.GameSave, error)

	// ResetSave discards the slot so the next access starts fresh.
	ResetSave(ctx context.Context, userID uuid.UUID, gameID string) error
}
