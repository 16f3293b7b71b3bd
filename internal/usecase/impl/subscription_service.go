package impl

import (
	"context"
	"log/slog"

	"tycoon/config"
	deliverycontext "tycoon/internal/delivery/context"
	"tycoon/internal/domain/entity"
	domainerrors "tycoon/internal/domain/errors"
	"tycoon/internal/store"
	"tycoon/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// subscriptionService implements the SubscriptionUsecase interface.
type subscriptionService struct {
	store  *store.Store
	rules  gameRules
	logger *slog.Logger
}

// SubscriptionServiceParams holds dependencies for subscriptionService, injected by Fx.
type SubscriptionServiceParams struct {
	fx.In

	Store  *store.Store
	Config *config.Config
	Logger *slog.Logger
}

// NewSubscriptionService is the constructor for subscriptionService.
func NewSubscriptionService(params SubscriptionServiceParams) usecase.SubscriptionUsecase {
	return &subscriptionService{
		store:  params.Store,
		rules:  rulesFromConfig(params.Config),
		logger: params.Logger,
	}
}

func (srv *subscriptionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Current reports the tier and its derived entitlements.
func (srv *subscriptionService) Current(_ context.Context, userID uuid.UUID) (*usecase.SubscriptionOutput, error) {
	var out *usecase.SubscriptionOutput
	var err error
	srv.store.View(func(s *store.State) {
		var user *entity.User
		user, err = findUser(s, userID)
		if err != nil {
			return
		}

		out = &usecase.SubscriptionOutput{
			Tier:         user.Tier,
			Premium:      user.Tier.Premium(),
			Entitlements: entity.EntitlementsFor(user.Tier),
		}
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to read subscription")
	}

	return out, nil
}

// ChangeTier replaces the account's tier. The change touches no currency;
// billing settles outside this system. Moving to an unlimited-energy tier
// leaves the stored meter as-is, it simply stops being consulted.
func (srv *subscriptionService) ChangeTier(ctx context.Context, userID uuid.UUID, tier entity.Tier) (*usecase.SubscriptionOutput, error) {
	if !tier.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrInvalidTier, "failed to change subscription tier")
	}

	var out *usecase.SubscriptionOutput
	err := srv.store.Update(func(s *store.State) error {
		user, findErr := findUser(s, userID)
		if findErr != nil {
			return findErr
		}

		now := srv.store.Now()
		// Re-anchor a metered account dropping out of an unlimited tier so
		// it does not instantly harvest the whole unlimited period.
		if user.Tier.UnlimitedEnergy() && !tier.UnlimitedEnergy() {
			user.LastEnergyRefill = now
		}

		user.Tier = tier
		user.UpdatedAt = now
		out = &usecase.SubscriptionOutput{
			Tier:         user.Tier,
			Premium:      user.Tier.Premium(),
			Entitlements: entity.EntitlementsFor(user.Tier),
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Tier change rejected", slog.Any("userID", userID), slog.Any("tier", tier), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to change subscription tier")
	}

	srv.log(ctx).Info("Subscription tier changed", slog.Any("userID", userID), slog.Any("tier", tier))

	return out, nil
}
