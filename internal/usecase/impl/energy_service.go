package impl

import (
	"context"
	"log/slog"

	"tycoon/config"
	deliverycontext "tycoon/internal/delivery/context"
	domainerrors "tycoon/internal/domain/errors"
	"tycoon/internal/store"
	"tycoon/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// energyService implements the EnergyUsecase interface.
type energyService struct {
	store  *store.Store
	rules  gameRules
	logger *slog.Logger
}

// EnergyServiceParams holds dependencies for energyService, injected by Fx.
type EnergyServiceParams struct {
	fx.In

	Store  *store.Store
	Config *config.Config
	Logger *slog.Logger
}

// NewEnergyService is the constructor for energyService.
func NewEnergyService(params EnergyServiceParams) usecase.EnergyUsecase {
	return &energyService{
		store:  params.Store,
		rules:  rulesFromConfig(params.Config),
		logger: params.Logger,
	}
}

func (srv *energyService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Status applies lazy regeneration and reports the meter.
func (srv *energyService) Status(_ context.Context, userID uuid.UUID) (*usecase.EnergyStatus, error) {
	var status usecase.EnergyStatus
	err := srv.store.Update(func(s *store.State) error {
		user, findErr := findUser(s, userID)
		if findErr != nil {
			return findErr
		}

		user.RegenerateEnergy(srv.store.Now(), srv.rules.maxEnergy, srv.rules.refillInterval)
		status = energyStatusFor(user, srv.rules)

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to read energy status")
	}

	return &status, nil
}

// Consume regenerates, then spends one energy point. Unlimited-tier
// accounts always succeed with an untouched meter.
func (srv *energyService) Consume(ctx context.Context, userID uuid.UUID) (*usecase.EnergyStatus, error) {
	var status usecase.EnergyStatus
	err := srv.store.Update(func(s *store.State) error {
		user, findErr := findUser(s, userID)
		if findErr != nil {
			return findErr
		}

		now := srv.store.Now()
		user.RegenerateEnergy(now, srv.rules.maxEnergy, srv.rules.refillInterval)
		if !user.ConsumeEnergy(now, srv.rules.maxEnergy) {
			return domainerrors.ErrEnergyExhausted
		}

		status = energyStatusFor(user, srv.rules)

		return nil
	})
	if err != nil {
		srv.log(ctx).Debug("Energy consume rejected", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to consume energy")
	}

	return &status, nil
}
