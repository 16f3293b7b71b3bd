package usecase

import (
	"context"

	"tycoon/internal/domain/entity"

	"github.com/google/uuid"
)

// SubscriptionOutput is the account's current tier with its derived
// entitlements.
type SubscriptionOutput struct {
	Tier         entity.Tier         `json:"tier"`
	Premium      bool                `json:"premium"`
	Entitlements entity.Entitlements `json:"entitlements"`
}

// SubscriptionUsecase defines the interface for subscription-tier
// operations. Tier changes touch no currency; payment settlement happens
// outside this system.
type SubscriptionUsecase interface {
	Current(ctx context.Context, userID uuid.UUID) (*SubscriptionOutput, error)

	// ChangeTier replaces the account's tier and its derived entitlements.
	ChangeTier(ctx context.Context, userID uuid.UUID, tier entity.Tier) (*SubscriptionOutput, error)
}
