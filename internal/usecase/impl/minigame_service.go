package impl

import (
	"context"
	"log/slog"
	"math"
	"slices"

	"tycoon/config"
	deliverycontext "tycoon/internal/delivery/context"
	"tycoon/internal/domain/entity"
	domainerrors "tycoon/internal/domain/errors"
	"tycoon/internal/domain/repository"
	"tycoon/internal/domain/simulation"
	"tycoon/internal/store"
	"tycoon/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// minigameStartingFunds is the in-game cash a fresh save slot opens with.
const minigameStartingFunds = 50.0

// coinsPerRevenue converts simulated revenue into bizCoins.
const coinsPerRevenue = 0.1

// minigameService implements the MinigameUsecase interface.
type minigameService struct {
	store  *store.Store
	saves  repository.GameSaveRepository
	rules  gameRules
	logger *slog.Logger
}

// MinigameServiceParams holds dependencies for minigameService, injected by Fx.
type MinigameServiceParams struct {
	fx.In

	Store  *store.Store
	Saves  repository.GameSaveRepository
	Config *config.Config
	Logger *slog.Logger
}

// NewMinigameService is the constructor for minigameService.
func NewMinigameService(params MinigameServiceParams) usecase.MinigameUsecase {
	return &minigameService{
		store:  params.Store,
		saves:  params.Saves,
		rules:  rulesFromConfig(params.Config),
		logger: params.Logger,
	}
}

func (srv *minigameService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// freshSave initializes a save slot at day one with schema-default sliders.
func freshSave(userID uuid.UUID, gameID string, sim entity.BusinessSim) *entity.GameSave {
	sliders := make(map[string]float64, len(sim.Variables))
	for name, slider := range sim.Variables {
		sliders[name] = slider.Default
	}

	return &entity.GameSave{
		UserID:    userID,
		GameID:    gameID,
		Day:       1,
		Funds:     minigameStartingFunds,
		Inventory: make(map[string]int),
		Sliders:   sliders,
	}
}

// restoreSlot fetches a save slot from the mirror bucket when the in-memory
// aggregate has none, e.g. after a storage-key reset. Missing or malformed
// mirrors yield nil.
func (srv *minigameService) restoreSlot(ctx context.Context, userID uuid.UUID, gameID string) *entity.GameSave {
	save, err := srv.saves.Get(ctx, userID, gameID)
	if err != nil {
		if !errors.Is(err, repository.ErrGameSaveNotFound) {
			srv.log(ctx).Warn("Failed to read save slot mirror", slog.Any("userID", userID), slog.String("gameID", gameID), slog.Any("error", err))
		}

		return nil
	}

	return save
}

// mirrorSlot writes the save slot copy to the bucket. Mirror failures are
// logged, never surfaced; the in-memory aggregate stays authoritative.
func (srv *minigameService) mirrorSlot(ctx context.Context, save *entity.GameSave) {
	if err := srv.saves.Put(ctx, save); err != nil {
		srv.log(ctx).Warn("Failed to mirror save slot", slog.Any("userID", save.UserID), slog.String("gameID", save.GameID), slog.Any("error", err))
	}
}

// ensureSave returns the slot for (user, game) inside an action, adopting a
// mirror restore or initializing a fresh one when needed.
func ensureSave(s *store.State, userID uuid.UUID, gameID string, sim entity.BusinessSim, mirrored *entity.GameSave) *entity.GameSave {
	key := store.SaveKey(userID, gameID)
	if save, ok := s.GameSaves[key]; ok && save != nil {
		return save
	}

	save := mirrored
	if save != nil {
		save.Sanitize()
	} else {
		save = freshSave(userID, gameID, sim)
	}
	s.GameSaves[key] = save

	return save
}

// resolveSliders merges the player's inputs over the stored slot and the
// schema defaults, clamping everything into the schema's bounds. Values for
// unknown variables are dropped.
func resolveSliders(sim entity.BusinessSim, save *entity.GameSave, inputs map[string]float64) map[string]float64 {
	resolved := make(map[string]float64, len(sim.Variables))
	for name, slider := range sim.Variables {
		v := slider.Default
		if stored, ok := save.Sliders[name]; ok {
			v = stored
		}
		if input, ok := inputs[name]; ok {
			v = input
		}

		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = slider.Default
		}
		v = math.Min(math.Max(v, slider.Min), slider.Max)
		resolved[name] = v
	}

	return resolved
}

// qualityFor derives product quality from the slot's owned upgrades.
func qualityFor(sim entity.BusinessSim, save *entity.GameSave) float64 {
	quality := 0.5
	for _, upgrade := range sim.Upgrades {
		if slices.Contains(save.Upgrades, upgrade.ID) {
			quality += upgrade.Quality
		}
	}

	return quality
}

// inventoryCaps derives the per-resource sales caps from units on hand. A
// game without resources runs uncapped.
func inventoryCaps(sim entity.BusinessSim, save *entity.GameSave) map[string]int {
	if len(sim.Resources) == 0 {
		return nil
	}

	caps := make(map[string]int, len(sim.Resources))
	for _, res := range sim.Resources {
		if res.PerSale <= 0 {
			continue
		}
		caps[res.ID] = save.Inventory[res.ID] / res.PerSale
	}

	return caps
}

// SimulateDay runs one business day against the account's save slot and
// converts the outcome into XP and coins through the shared reward rules.
func (srv *minigameService) SimulateDay(ctx context.Context, userID uuid.UUID, input *usecase.SimulateDayInput) (*usecase.SimulateDayOutput, error) {
	mirrored := srv.restoreSlotIfAbsent(ctx, userID, input.GameID)

	var out *usecase.SimulateDayOutput
	var slotCopy *entity.GameSave
	err := srv.store.Update(func(s *store.State) error {
		user, findErr := findUser(s, userID)
		if findErr != nil {
			return findErr
		}

		sim, simErr := resolveSimulation(s, input.GameID)
		if simErr != nil {
			return simErr
		}
		if !user.Tier.CanAccessContent(sim.Tier) {
			return domainerrors.ErrSubscriptionRequired
		}

		save := ensureSave(s, userID, input.GameID, sim, mirrored)
		sliders := resolveSliders(sim, save, input.Sliders)
		save.Sliders = sliders

		now := srv.store.Now()
		seed := now.UnixNano()
		if input.Seed != nil {
			seed = *input.Seed
		}

		mods := modifiersFor(user)
		result := simulation.Run(simulation.DayInput{
			Seed:            seed,
			DemandBase:      sim.DemandBase,
			Quality:         qualityFor(sim, save),
			Price:           sliders["price"],
			BasePrice:       sim.BasePrice,
			PriceMultiplier: mods.Price,
			Events:          sim.Events,
			InventoryCaps:   inventoryCaps(sim, save),
		})

		// Settle the day into the slot.
		for _, res := range sim.Resources {
			if res.PerSale > 0 {
				save.Inventory[res.ID] -= result.UnitsSold * res.PerSale
			}
		}
		save.Funds += result.Revenue
		save.Day++
		save.UpdatedAt = now

		// Convert the outcome into account progression. Revenue already
		// carries the price modifier, so only XP is scaled here.
		xp := scaleReward(sim.XPReward, mods.XP)
		coins := int(math.Floor(result.Revenue * coinsPerRevenue))
		user.GrantXP(xp)
		user.BizCoins += coins
		user.TouchStreak(now)
		awardMilestoneBadges(user)
		user.UpdatedAt = now

		out = &usecase.SimulateDayOutput{
			Day:          save.Day,
			Result:       result,
			Funds:        save.Funds,
			XPAwarded:    xp,
			CoinsAwarded: coins,
			LevelUp:      user.LevelUp,
		}
		slotCopy = cloneSave(save)

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Day simulation rejected", slog.Any("userID", userID), slog.String("gameID", input.GameID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to simulate day")
	}

	srv.mirrorSlot(ctx, slotCopy)

	return out, nil
}

// BuyUpgrade purchases an upgrade-tree node with in-game funds.
func (srv *minigameService) BuyUpgrade(ctx context.Context, userID uuid.UUID, input *usecase.BuyUpgradeInput) (*entity.GameSave, error) {
	mirrored := srv.restoreSlotIfAbsent(ctx, userID, input.GameID)

	var slotCopy *entity.GameSave
	err := srv.store.Update(func(s *store.State) error {
		user, findErr := findUser(s, userID)
		if findErr != nil {
			return findErr
		}

		sim, simErr := resolveSimulation(s, input.GameID)
		if simErr != nil {
			return simErr
		}
		if !user.Tier.CanAccessContent(sim.Tier) {
			return domainerrors.ErrSubscriptionRequired
		}

		idx := slices.IndexFunc(sim.Upgrades, func(u entity.SimUpgrade) bool { return u.ID == input.UpgradeID })
		if idx < 0 {
			return domainerrors.ErrContentNotFound.WrapMessage("unknown upgrade")
		}
		upgrade := sim.Upgrades[idx]

		save := ensureSave(s, userID, input.GameID, sim, mirrored)
		if slices.Contains(save.Upgrades, upgrade.ID) {
			return domainerrors.ErrAlreadyOwned.WrapMessage("upgrade already owned")
		}
		if save.Funds < upgrade.Cost {
			return domainerrors.ErrInsufficientCoins.WrapMessage("not enough in-game funds")
		}

		save.Funds -= upgrade.Cost
		save.Upgrades = append(save.Upgrades, upgrade.ID)
		save.UpdatedAt = srv.store.Now()
		slotCopy = cloneSave(save)

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Upgrade purchase rejected", slog.Any("userID", userID), slog.String("gameID", input.GameID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to buy upgrade")
	}

	srv.mirrorSlot(ctx, slotCopy)

	return slotCopy, nil
}

// BuySupplies restocks a simulation resource with in-game funds.
func (srv *minigameService) BuySupplies(ctx context.Context, userID uuid.UUID, input *usecase.BuySuppliesInput) (*entity.GameSave, error) {
	if input.Units <= 0 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "supply units must be positive")
	}

	mirrored := srv.restoreSlotIfAbsent(ctx, userID, input.GameID)

	var slotCopy *entity.GameSave
	err := srv.store.Update(func(s *store.State) error {
		user, findErr := findUser(s, userID)
		if findErr != nil {
			return findErr
		}

		sim, simErr := resolveSimulation(s, input.GameID)
		if simErr != nil {
			return simErr
		}
		if !user.Tier.CanAccessContent(sim.Tier) {
			return domainerrors.ErrSubscriptionRequired
		}

		idx := slices.IndexFunc(sim.Resources, func(r entity.SimResource) bool { return r.ID == input.ResourceID })
		if idx < 0 {
			return domainerrors.ErrContentNotFound.WrapMessage("unknown resource")
		}
		resource := sim.Resources[idx]

		save := ensureSave(s, userID, input.GameID, sim, mirrored)
		cost := resource.UnitCost * float64(input.Units)
		if save.Funds < cost {
			return domainerrors.ErrInsufficientCoins.WrapMessage("not enough in-game funds")
		}

		save.Funds -= cost
		save.Inventory[resource.ID] += input.Units
		save.UpdatedAt = srv.store.Now()
		slotCopy = cloneSave(save)

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Supply purchase rejected", slog.Any("userID", userID), slog.String("gameID", input.GameID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to buy supplies")
	}

	srv.mirrorSlot(ctx, slotCopy)

	return slotCopy, nil
}

// Save returns the account's slot for a game, initializing one when needed.
func (srv *minigameService) Save(ctx context.Context, userID uuid.UUID, gameID string) (*entity.GameSave, error) {
	mirrored := srv.restoreSlotIfAbsent(ctx, userID, gameID)

	var slotCopy *entity.GameSave
	err := srv.store.Update(func(s *store.State) error {
		user, findErr := findUser(s, userID)
		if findErr != nil {
			return findErr
		}

		sim, simErr := resolveSimulation(s, gameID)
		if simErr != nil {
			return simErr
		}
		if !user.Tier.CanAccessContent(sim.Tier) {
			return domainerrors.ErrSubscriptionRequired
		}

		slotCopy = cloneSave(ensureSave(s, userID, gameID, sim, mirrored))

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load save slot")
	}

	return slotCopy, nil
}

// ResetSave discards the slot so the next access starts fresh.
func (srv *minigameService) ResetSave(ctx context.Context, userID uuid.UUID, gameID string) error {
	err := srv.store.Update(func(s *store.State) error {
		if _, findErr := findUser(s, userID); findErr != nil {
			return findErr
		}

		delete(s.GameSaves, store.SaveKey(userID, gameID))

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to reset save slot")
	}

	if err := srv.saves.Delete(ctx, userID, gameID); err != nil {
		srv.log(ctx).Warn("Failed to delete save slot mirror", slog.Any("userID", userID), slog.String("gameID", gameID), slog.Any("error", err))
	}

	return nil
}

// restoreSlotIfAbsent pre-reads the mirror bucket only when the in-memory
// aggregate has no slot, keeping blob I/O outside the store lock.
func (srv *minigameService) restoreSlotIfAbsent(ctx context.Context, userID uuid.UUID, gameID string) *entity.GameSave {
	absent := false
	srv.store.View(func(s *store.State) {
		_, ok := s.GameSaves[store.SaveKey(userID, gameID)]
		absent = !ok
	})
	if !absent {
		return nil
	}

	return srv.restoreSlot(ctx, userID, gameID)
}

// cloneSave deep-copies a slot so callers never hold references into a
// published snapshot.
func cloneSave(save *entity.GameSave) *entity.GameSave {
	clone := *save
	clone.Inventory = make(map[string]int, len(save.Inventory))
	for id, count := range save.Inventory {
		clone.Inventory[id] = count
	}
	clone.Sliders = make(map[string]float64, len(save.Sliders))
	for name, v := range save.Sliders {
		clone.Sliders[name] = v
	}
	clone.Upgrades = slices.Clone(save.Upgrades)

	return &clone
}
