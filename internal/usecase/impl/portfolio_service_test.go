package impl

import (
	"context"
	"testing"
	"time"

	"tycoon/internal/domain/entity"
	domainerrors "tycoon/internal/domain/errors"
	"tycoon/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHireManager_DeductsAndRegistersHolding(t *testing.T) {
	st, _ := newTestStore()
	srv := NewPortfolioService(PortfolioServiceParams{Store: st, Config: testConfig(), Logger: discardLogger()})
	userID := seedUser(st, func(u *entity.User) { u.BizCoins = 300 })

	out, err := srv.HireManager(context.Background(), userID, "biz-lemonade") // hire cost 200
	require.NoError(t, err)
	assert.Equal(t, 100, out.BizCoins)
	require.Len(t, out.Holdings, 1)
	assert.Equal(t, 1, out.Holdings[0].ManagerLevel)
	assert.Equal(t, 10.0, out.Holdings[0].HourlyRate)

	_, err = srv.HireManager(context.Background(), userID, "biz-lemonade")
	assert.True(t, errors.Is(err, domainerrors.ErrManagerAlreadyHired))
}

func TestHireManager_InsufficientCoins(t *testing.T) {
	st, _ := newTestStore()
	srv := NewPortfolioService(PortfolioServiceParams{Store: st, Config: testConfig(), Logger: discardLogger()})
	userID := seedUser(st, func(u *entity.User) { u.BizCoins = 50 })

	_, err := srv.HireManager(context.Background(), userID, "biz-lemonade")
	assert.True(t, errors.Is(err, domainerrors.ErrInsufficientCoins))
	assert.Empty(t, userFrom(st, userID).Portfolio)
}

func TestCollectIncome_NinetyMinutesAtRateTen(t *testing.T) {
	st, now := newTestStore()
	srv := NewPortfolioService(PortfolioServiceParams{Store: st, Config: testConfig(), Logger: discardLogger()})
	userID := seedUser(st, func(u *entity.User) {
		u.Portfolio = []entity.PortfolioItem{{
			BusinessID:    "biz-lemonade",
			ManagerLevel:  1,
			LastCollected: testNow,
		}}
	})

	*now = testNow.Add(90 * time.Minute)
	out, err := srv.CollectIncome(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 15, out.Collected, "floor(10/60 * 90)")
	assert.Equal(t, 115, out.BizCoins)

	// Immediate re-collection yields nothing.
	again, err := srv.CollectIncome(context.Background(), userID)
	require.NoError(t, err)
	assert.Zero(t, again.Collected)
}

func TestCollectIncome_AccrualCappedAtOneDay(t *testing.T) {
	st, now := newTestStore()
	srv := NewPortfolioService(PortfolioServiceParams{Store: st, Config: testConfig(), Logger: discardLogger()})
	userID := seedUser(st, func(u *entity.User) {
		u.Portfolio = []entity.PortfolioItem{{
			BusinessID:    "biz-lemonade",
			ManagerLevel:  1,
			LastCollected: testNow,
		}}
	})

	*now = testNow.Add(10 * 24 * time.Hour)
	out, err := srv.CollectIncome(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 240, out.Collected, "ten days away still pays one day")
}

func TestCollectIncome_CorruptTimestampRepairedWithZeroPayout(t *testing.T) {
	st, _ := newTestStore()
	srv := NewPortfolioService(PortfolioServiceParams{Store: st, Config: testConfig(), Logger: discardLogger()})
	userID := seedUser(st, func(u *entity.User) {
		u.Portfolio = []entity.PortfolioItem{{
			BusinessID:    "biz-lemonade",
			ManagerLevel:  1,
			LastCollected: testNow.Add(48 * time.Hour), // future
		}}
	})

	out, err := srv.CollectIncome(context.Background(), userID)
	require.NoError(t, err)
	assert.Zero(t, out.Collected)
	assert.Equal(t, testNow, userFrom(st, userID).Portfolio[0].LastCollected)
}

func TestUpgradeManager_RaisesLevelAndRate(t *testing.T) {
	st, _ := newTestStore()
	srv := NewPortfolioService(PortfolioServiceParams{Store: st, Config: testConfig(), Logger: discardLogger()})
	userID := seedUser(st, func(u *entity.User) {
		u.BizCoins = 500
		u.Portfolio = []entity.PortfolioItem{{
			BusinessID:    "biz-lemonade",
			ManagerLevel:  1,
			LastCollected: testNow,
		}}
	})

	out, err := srv.UpgradeManager(context.Background(), userID, "biz-lemonade") // upgrade cost 150
	require.NoError(t, err)
	assert.Equal(t, 350, out.BizCoins)
	require.Len(t, out.Holdings, 1)
	assert.Equal(t, 2, out.Holdings[0].ManagerLevel)
	assert.Greater(t, out.Holdings[0].HourlyRate, 10.0)
}

func TestUpgradeManager_RequiresHiredManager(t *testing.T) {
	st, _ := newTestStore()
	srv := NewPortfolioService(PortfolioServiceParams{Store: st, Config: testConfig(), Logger: discardLogger()})
	userID := seedUser(st, func(u *entity.User) { u.BizCoins = 500 })

	_, err := srv.UpgradeManager(context.Background(), userID, "biz-lemonade")
	assert.True(t, errors.Is(err, domainerrors.ErrNotOwned))
}

func TestPortfolio_UnknownBusinessRejected(t *testing.T) {
	st, _ := newTestStore()
	srv := NewPortfolioService(PortfolioServiceParams{Store: st, Config: testConfig(), Logger: discardLogger()})
	userID := seedUser(st)

	_, err := srv.HireManager(context.Background(), userID, "biz-moonbase")
	assert.True(t, errors.Is(err, domainerrors.ErrContentNotFound))
}
