package impl

import (
	"context"
	"log/slog"

	"tycoon/config"
	deliverycontext "tycoon/internal/delivery/context"
	"tycoon/internal/domain/catalog"
	"tycoon/internal/domain/entity"
	domainerrors "tycoon/internal/domain/errors"
	"tycoon/internal/store"
	"tycoon/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// portfolioService implements the PortfolioUsecase interface.
type portfolioService struct {
	store  *store.Store
	rules  gameRules
	logger *slog.Logger
}

// PortfolioServiceParams holds dependencies for portfolioService, injected by Fx.
type PortfolioServiceParams struct {
	fx.In

	Store  *store.Store
	Config *config.Config
	Logger *slog.Logger
}

// NewPortfolioService is the constructor for portfolioService.
func NewPortfolioService(params PortfolioServiceParams) usecase.PortfolioUsecase {
	return &portfolioService{
		store:  params.Store,
		rules:  rulesFromConfig(params.Config),
		logger: params.Logger,
	}
}

func (srv *portfolioService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// holdingsFor joins portfolio entries with their catalog businesses.
// Entries whose business vanished from the catalog are skipped.
func holdingsFor(user *entity.User) []usecase.Holding {
	holdings := make([]usecase.Holding, 0, len(user.Portfolio))
	for _, item := range user.Portfolio {
		business, ok := catalog.Business(item.BusinessID)
		if !ok {
			continue
		}

		holdings = append(holdings, usecase.Holding{
			Business:      business,
			ManagerLevel:  item.ManagerLevel,
			HourlyRate:    business.HourlyRate(item.ManagerLevel),
			LastCollected: item.LastCollected,
		})
	}

	return holdings
}

// Portfolio returns the account's idle-income holdings.
func (srv *portfolioService) Portfolio(_ context.Context, userID uuid.UUID) (*usecase.PortfolioOutput, error) {
	var out *usecase.PortfolioOutput
	var err error
	srv.store.View(func(s *store.State) {
		var user *entity.User
		user, err = findUser(s, userID)
		if err != nil {
			return
		}

		out = &usecase.PortfolioOutput{
			Holdings: holdingsFor(user),
			BizCoins: user.BizCoins,
		}
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to read portfolio")
	}

	return out, nil
}

// HireManager buys a manager for a business. Each business supports at most
// one manager per account.
func (srv *portfolioService) HireManager(ctx context.Context, userID uuid.UUID, businessID string) (*usecase.PortfolioOutput, error) {
	business, ok := catalog.Business(businessID)
	if !ok {
		return nil, errors.Wrap(domainerrors.ErrContentNotFound, "unknown business")
	}

	var out *usecase.PortfolioOutput
	err := srv.store.Update(func(s *store.State) error {
		user, findErr := findUser(s, userID)
		if findErr != nil {
			return findErr
		}

		if user.PortfolioItemFor(business.ID) != nil {
			return domainerrors.ErrManagerAlreadyHired
		}

		cost := effectiveCost(user, business.HireCost)
		if !user.SpendCoins(cost) {
			return domainerrors.ErrInsufficientCoins
		}

		now := srv.store.Now()
		user.Portfolio = append(user.Portfolio, entity.PortfolioItem{
			BusinessID:    business.ID,
			ManagerLevel:  1,
			LastCollected: now,
		})
		user.UpdatedAt = now
		out = &usecase.PortfolioOutput{Holdings: holdingsFor(user), BizCoins: user.BizCoins}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Manager hire rejected", slog.Any("userID", userID), slog.String("businessID", businessID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hire manager")
	}

	return out, nil
}

// UpgradeManager raises a hired manager's level by one.
func (srv *portfolioService) UpgradeManager(ctx context.Context, userID uuid.UUID, businessID string) (*usecase.PortfolioOutput, error) {
	business, ok := catalog.Business(businessID)
	if !ok {
		return nil, errors.Wrap(domainerrors.ErrContentNotFound, "unknown business")
	}

	var out *usecase.PortfolioOutput
	err := srv.store.Update(func(s *store.State) error {
		user, findErr := findUser(s, userID)
		if findErr != nil {
			return findErr
		}

		item := user.PortfolioItemFor(business.ID)
		if item == nil {
			return domainerrors.ErrNotOwned.WrapMessage("no manager hired for this business")
		}

		cost := effectiveCost(user, business.UpgradeCost)
		if !user.SpendCoins(cost) {
			return domainerrors.ErrInsufficientCoins
		}

		item.ManagerLevel++
		user.UpdatedAt = srv.store.Now()
		out = &usecase.PortfolioOutput{Holdings: holdingsFor(user), BizCoins: user.BizCoins}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Manager upgrade rejected", slog.Any("userID", userID), slog.String("businessID", businessID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to upgrade manager")
	}

	return out, nil
}

// CollectIncome settles accrued idle income across all holdings. Corrupt
// collection timestamps are repaired with a zero payout for that holding.
func (srv *portfolioService) CollectIncome(ctx context.Context, userID uuid.UUID) (*usecase.CollectOutput, error) {
	var out *usecase.CollectOutput
	err := srv.store.Update(func(s *store.State) error {
		user, findErr := findUser(s, userID)
		if findErr != nil {
			return findErr
		}

		now := srv.store.Now()
		collected := 0
		for i := range user.Portfolio {
			item := &user.Portfolio[i]
			business, ok := catalog.Business(item.BusinessID)
			if !ok {
				continue
			}

			collected += item.Collect(now, business.HourlyRate(item.ManagerLevel), srv.rules.idleIncomeCap)
		}

		user.BizCoins += collected
		user.UpdatedAt = now
		out = &usecase.CollectOutput{Collected: collected, BizCoins: user.BizCoins}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to collect idle income")
	}

	if out.Collected > 0 {
		srv.log(ctx).Debug("Idle income collected", slog.Any("userID", userID), slog.Int("collected", out.Collected))
	}

	return out, nil
}
