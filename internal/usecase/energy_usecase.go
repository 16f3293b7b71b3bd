package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EnergyStatus is the current state of an account's energy meter after lazy
// regeneration has been applied.
type EnergyStatus struct {
	Current      int        `json:"current"`
	Max          int        `json:"max"`
	Unlimited    bool       `json:"unlimited"`
	NextRefillAt *time.Time `json:"next_refill_at,omitempty"` // Nil when full or unlimited.
}

// EnergyUsecase defines the interface for the metered-energy subsystem.
type EnergyUsecase interface {
	// Status regenerates any elapsed whole refill intervals and returns the
	// resulting meter state.
	Status(ctx context.Context, userID uuid.UUID) (*EnergyStatus, error)

	// Consume spends one energy point (after regeneration). An empty meter
	// yields ErrEnergyExhausted and leaves state untouched.
	Consume(ctx context.Context, userID uuid.UUID) (*EnergyStatus, error)
}
