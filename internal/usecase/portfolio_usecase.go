package usecase

import (
	"context"
	"time"

	"tycoon/internal/domain/entity"

	"github.com/google/uuid"
)

// Holding is one business in an account's idle-income portfolio, joined
// with its catalog entry.
type Holding struct {
	Business      entity.Business `json:"business"`
	ManagerLevel  int             `json:"manager_level"`
	HourlyRate    float64         `json:"hourly_rate"`
	LastCollected time.Time       `json:"last_collected"`
}

// PortfolioOutput is the full portfolio view plus the coin balance.
type PortfolioOutput struct {
	Holdings []Holding `json:"holdings"`
	BizCoins int       `json:"biz_coins"`
}

// CollectOutput reports an idle-income collection.
type CollectOutput struct {
	Collected int `json:"collected"`
	BizCoins  int `json:"biz_coins"`
}

// PortfolioUsecase defines the interface for the idle-income portfolio.
type PortfolioUsecase interface {
	Portfolio(ctx context.Context, userID uuid.UUID) (*PortfolioOutput, error)

	// HireManager buys a manager for a business, at most one per business.
	HireManager(ctx context.Context, userID uuid.UUID, businessID string) (*PortfolioOutput, error)

	// UpgradeManager raises a hired manager's level, increasing the hourly rate.
	UpgradeManager(ctx context.Context, userID uuid.UUID, businessID string) (*PortfolioOutput, error)

	// CollectIncome settles accrued idle income across all holdings.
	CollectIncome(ctx context.Context, userID uuid.UUID) (*CollectOutput, error)
}
