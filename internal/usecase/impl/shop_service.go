package impl

import (
	"context"
	"log/slog"
	"slices"

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

// shopService implements the ShopUsecase interface.
type shopService struct {
	store  *store.Store
	rules  gameRules
	logger *slog.Logger
}

// ShopServiceParams holds dependencies for shopService, injected by Fx.
type ShopServiceParams struct {
	fx.In

	Store  *store.Store
	Config *config.Config
	Logger *slog.Logger
}

// NewShopService is the constructor for shopService.
func NewShopService(params ShopServiceParams) usecase.ShopUsecase {
	return &shopService{
		store:  params.Store,
		rules:  rulesFromConfig(params.Config),
		logger: params.Logger,
	}
}

func (srv *shopService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Catalog returns the static reference data of the game economy.
func (srv *shopService) Catalog(_ context.Context) *usecase.CatalogOutput {
	return &usecase.CatalogOutput{
		Items:      catalog.ShopItems(),
		Skills:     catalog.Skills(),
		HQLevels:   catalog.HQLevels(),
		Businesses: catalog.Businesses(),
	}
}

// effectiveCost applies the account's cost modifier to a catalog price.
func effectiveCost(user *entity.User, baseCost int) int {
	return scaleReward(baseCost, modifiersFor(user).Cost)
}

// BuyItem purchases a shop item into the inventory.
func (srv *shopService) BuyItem(ctx context.Context, userID uuid.UUID, itemID string) (*usecase.PurchaseOutput, error) {
	item, ok := catalog.ShopItem(itemID)
	if !ok {
		return nil, errors.Wrap(domainerrors.ErrContentNotFound, "unknown shop item")
	}

	var out *usecase.PurchaseOutput
	err := srv.store.Update(func(s *store.State) error {
		user, findErr := findUser(s, userID)
		if findErr != nil {
			return findErr
		}

		if item.Unique && user.OwnsItem(item.ID) {
			return domainerrors.ErrAlreadyOwned
		}

		cost := effectiveCost(user, item.Cost)
		if !user.SpendCoins(cost) {
			return domainerrors.ErrInsufficientCoins
		}

		user.Inventory = append(user.Inventory, item.ID)
		user.UpdatedAt = srv.store.Now()
		out = &usecase.PurchaseOutput{Cost: cost, BizCoins: user.BizCoins}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Purchase rejected", slog.Any("userID", userID), slog.String("itemID", itemID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to buy item")
	}

	return out, nil
}

// EquipItem places an owned item into its slot, replacing the previous
// occupant. At most one item per slot is ever equipped.
func (srv *shopService) EquipItem(ctx context.Context, userID uuid.UUID, itemID string) error {
	item, ok := catalog.ShopItem(itemID)
	if !ok {
		return errors.Wrap(domainerrors.ErrContentNotFound, "unknown shop item")
	}
	if item.Slot == "" {
		return errors.Wrap(domainerrors.ErrValidationFailed, "item is not equippable")
	}

	err := srv.store.Update(func(s *store.State) error {
		user, findErr := findUser(s, userID)
		if findErr != nil {
			return findErr
		}

		if !user.OwnsItem(item.ID) {
			return domainerrors.ErrNotOwned
		}

		// Evict whatever currently occupies the slot.
		user.EquippedItems = slices.DeleteFunc(user.EquippedItems, func(equippedID string) bool {
			equipped, found := catalog.ShopItem(equippedID)

			return found && equipped.Slot == item.Slot
		})
		user.EquippedItems = append(user.EquippedItems, item.ID)
		user.UpdatedAt = srv.store.Now()

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Equip rejected", slog.Any("userID", userID), slog.String("itemID", itemID), slog.Any("error", err))

		return errors.Wrap(err, "failed to equip item")
	}

	return nil
}

// UnequipItem removes an equipped item.
func (srv *shopService) UnequipItem(ctx context.Context, userID uuid.UUID, itemID string) error {
	err := srv.store.Update(func(s *store.State) error {
		user, findErr := findUser(s, userID)
		if findErr != nil {
			return findErr
		}

		if !slices.Contains(user.EquippedItems, itemID) {
			return domainerrors.ErrNotOwned.WrapMessage("item is not equipped")
		}

		user.EquippedItems = slices.DeleteFunc(user.EquippedItems, func(equippedID string) bool {
			return equippedID == itemID
		})
		user.UpdatedAt = srv.store.Now()

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to unequip item")
	}

	return nil
}

// UnlockSkill purchases a skill-tree node. A skill is unlocked at most once.
func (srv *shopService) UnlockSkill(ctx context.Context, userID uuid.UUID, skillID string) (*usecase.PurchaseOutput, error) {
	skill, ok := catalog.Skill(skillID)
	if !ok {
		return nil, errors.Wrap(domainerrors.ErrContentNotFound, "unknown skill")
	}

	var out *usecase.PurchaseOutput
	err := srv.store.Update(func(s *store.State) error {
		user, findErr := findUser(s, userID)
		if findErr != nil {
			return findErr
		}

		if user.HasSkill(skill.ID) {
			return domainerrors.ErrAlreadyOwned.WrapMessage("skill already unlocked")
		}

		cost := effectiveCost(user, skill.Cost)
		if !user.SpendCoins(cost) {
			return domainerrors.ErrInsufficientCoins
		}

		user.UnlockedSkills = append(user.UnlockedSkills, skill.ID)
		user.UpdatedAt = srv.store.Now()
		out = &usecase.PurchaseOutput{Cost: cost, BizCoins: user.BizCoins}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Skill unlock rejected", slog.Any("userID", userID), slog.String("skillID", skillID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to unlock skill")
	}

	return out, nil
}

// UpgradeHQ moves the headquarters to a strictly higher rank.
func (srv *shopService) UpgradeHQ(ctx context.Context, userID uuid.UUID, hqID string) (*usecase.PurchaseOutput, error) {
	target, ok := catalog.HQLevel(hqID)
	if !ok {
		return nil, errors.Wrap(domainerrors.ErrContentNotFound, "unknown HQ level")
	}

	var out *usecase.PurchaseOutput
	err := srv.store.Update(func(s *store.State) error {
		user, findErr := findUser(s, userID)
		if findErr != nil {
			return findErr
		}

		current, found := catalog.HQLevel(user.HQLevel)
		if !found {
			// A user always owns a valid HQ entry; anything else is a
			// programming or data error, not a precondition failure.
			return domainerrors.ErrCatalogEntryMissing.WithDetails("hq level: " + user.HQLevel)
		}
		if target.Rank <= current.Rank {
			return domainerrors.ErrHQDowngrade
		}

		cost := effectiveCost(user, target.Cost)
		if !user.SpendCoins(cost) {
			return domainerrors.ErrInsufficientCoins
		}

		user.HQLevel = target.ID
		user.UpdatedAt = srv.store.Now()
		out = &usecase.PurchaseOutput{Cost: cost, BizCoins: user.BizCoins}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("HQ upgrade rejected", slog.Any("userID", userID), slog.String("hqID", hqID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to upgrade headquarters")
	}

	return out, nil
}
