package impl

import (
	"context"
	"testing"

	"tycoon/internal/domain/entity"
	domainerrors "tycoon/internal/domain/errors"
	"tycoon/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuyItem_DeductsAndAddsToInventory(t *testing.T) {
	st, _ := newTestStore()
	srv := NewShopService(ShopServiceParams{Store: st, Config: testConfig(), Logger: discardLogger()})
	userID := seedUser(st) // 100 coins

	out, err := srv.BuyItem(context.Background(), userID, "hat-propeller") // cost 50
	require.NoError(t, err)
	assert.Equal(t, 50, out.Cost)
	assert.Equal(t, 50, out.BizCoins)
	assert.True(t, userFrom(st, userID).OwnsItem("hat-propeller"))
}

func TestBuyItem_InsufficientCoinsLeavesStateUntouched(t *testing.T) {
	st, _ := newTestStore()
	srv := NewShopService(ShopServiceParams{Store: st, Config: testConfig(), Logger: discardLogger()})
	userID := seedUser(st, func(u *entity.User) { u.BizCoins = 10 })

	_, err := srv.BuyItem(context.Background(), userID, "hat-propeller")
	assert.True(t, errors.Is(err, domainerrors.ErrInsufficientCoins))

	user := userFrom(st, userID)
	assert.Equal(t, 10, user.BizCoins)
	assert.Empty(t, user.Inventory)
}

func TestBuyItem_UniqueClassOwnedOnce(t *testing.T) {
	st, _ := newTestStore()
	srv := NewShopService(ShopServiceParams{Store: st, Config: testConfig(), Logger: discardLogger()})
	userID := seedUser(st, func(u *entity.User) { u.BizCoins = 1000 })

	_, err := srv.BuyItem(context.Background(), userID, "hat-propeller")
	require.NoError(t, err)

	_, err = srv.BuyItem(context.Background(), userID, "hat-propeller")
	assert.True(t, errors.Is(err, domainerrors.ErrAlreadyOwned))

	// Non-unique consumables stack.
	_, err = srv.BuyItem(context.Background(), userID, "sticker-pack")
	require.NoError(t, err)
	_, err = srv.BuyItem(context.Background(), userID, "sticker-pack")
	require.NoError(t, err)
}

func TestBuyItem_CostModifierApplied(t *testing.T) {
	st, _ := newTestStore()
	srv := NewShopService(ShopServiceParams{Store: st, Config: testConfig(), Logger: discardLogger()})
	// skill-thrift-1 lowers the cost multiplier by 0.1.
	userID := seedUser(st, func(u *entity.User) { u.UnlockedSkills = []string{"skill-thrift-1"} })

	out, err := srv.BuyItem(context.Background(), userID, "glasses-round") // base cost 75
	require.NoError(t, err)
	assert.Equal(t, 67, out.Cost, "75 * 0.9 floored")
}

func TestEquip_OneItemPerSlot(t *testing.T) {
	st, _ := newTestStore()
	srv := NewShopService(ShopServiceParams{Store: st, Config: testConfig(), Logger: discardLogger()})
	userID := seedUser(st, func(u *entity.User) {
		u.Inventory = []string{"hat-propeller", "hat-tophat"}
	})

	require.NoError(t, srv.EquipItem(context.Background(), userID, "hat-propeller"))
	require.NoError(t, srv.EquipItem(context.Background(), userID, "hat-tophat"))

	equipped := userFrom(st, userID).EquippedItems
	assert.Equal(t, []string{"hat-tophat"}, equipped, "second head item replaces the first")
}

func TestEquip_RequiresOwnershipAndSlot(t *testing.T) {
	st, _ := newTestStore()
	srv := NewShopService(ShopServiceParams{Store: st, Config: testConfig(), Logger: discardLogger()})
	userID := seedUser(st, func(u *entity.User) { u.Inventory = []string{"sticker-pack"} })

	err := srv.EquipItem(context.Background(), userID, "hat-propeller")
	assert.True(t, errors.Is(err, domainerrors.ErrNotOwned))

	err = srv.EquipItem(context.Background(), userID, "sticker-pack")
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed), "slotless items cannot be equipped")
}

func TestUnequip(t *testing.T) {
	st, _ := newTestStore()
	srv := NewShopService(ShopServiceParams{Store: st, Config: testConfig(), Logger: discardLogger()})
	userID := seedUser(st, func(u *entity.User) {
		u.Inventory = []string{"hat-propeller"}
		u.EquippedItems = []string{"hat-propeller"}
	})

	require.NoError(t, srv.UnequipItem(context.Background(), userID, "hat-propeller"))
	assert.Empty(t, userFrom(st, userID).EquippedItems)

	err := srv.UnequipItem(context.Background(), userID, "hat-propeller")
	assert.True(t, errors.Is(err, domainerrors.ErrNotOwned))
}

func TestUnlockSkill_OncePerAccount(t *testing.T) {
	st, _ := newTestStore()
	srv := NewShopService(ShopServiceParams{Store: st, Config: testConfig(), Logger: discardLogger()})
	userID := seedUser(st, func(u *entity.User) { u.BizCoins = 500 })

	out, err := srv.UnlockSkill(context.Background(), userID, "skill-marketing-1") // cost 100
	require.NoError(t, err)
	assert.Equal(t, 400, out.BizCoins)
	assert.True(t, userFrom(st, userID).HasSkill("skill-marketing-1"))

	_, err = srv.UnlockSkill(context.Background(), userID, "skill-marketing-1")
	assert.True(t, errors.Is(err, domainerrors.ErrAlreadyOwned))
}

func TestUpgradeHQ_OnlyUpward(t *testing.T) {
	st, _ := newTestStore()
	srv := NewShopService(ShopServiceParams{Store: st, Config: testConfig(), Logger: discardLogger()})
	userID := seedUser(st, func(u *entity.User) {
		u.BizCoins = 5000
		u.HQLevel = "hq-kiosk"
	})

	_, err := srv.UpgradeHQ(context.Background(), userID, "hq-garage")
	assert.True(t, errors.Is(err, domainerrors.ErrHQDowngrade))

	_, err = srv.UpgradeHQ(context.Background(), userID, "hq-kiosk")
	assert.True(t, errors.Is(err, domainerrors.ErrHQDowngrade), "same rank is not an upgrade")

	out, err := srv.UpgradeHQ(context.Background(), userID, "hq-office") // cost 750
	require.NoError(t, err)
	assert.Equal(t, 4250, out.BizCoins)
	assert.Equal(t, "hq-office", userFrom(st, userID).HQLevel)
}

func TestCatalog_ReturnsReferenceData(t *testing.T) {
	st, _ := newTestStore()
	srv := NewShopService(ShopServiceParams{Store: st, Config: testConfig(), Logger: discardLogger()})

	out := srv.Catalog(context.Background())
	assert.NotEmpty(t, out.Items)
	assert.NotEmpty(t, out.Skills)
	assert.NotEmpty(t, out.HQLevels)
	assert.NotEmpty(t, out.Businesses)
}
