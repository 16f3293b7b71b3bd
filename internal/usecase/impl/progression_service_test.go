package impl

import (
	"context"
	"testing"
	"time"

	"tycoon/internal/domain/entity"
	domainerrors "tycoon/internal/domain/errors"
	"tycoon/internal/errors"
	"tycoon/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteLesson_AwardsOncePerAccount(t *testing.T) {
	st, _ := newTestStore()
	srv := NewProgressionService(ProgressionServiceParams{Store: st, Config: testConfig(), Logger: discardLogger()})
	userID := seedUser(st)
	seedLesson(st, &entity.Lesson{ID: "l1", Title: "Money Basics", XPReward: 40, CoinReward: 10})

	out, err := srv.CompleteLesson(context.Background(), userID, "l1")
	require.NoError(t, err)
	assert.Equal(t, 40, out.XPAwarded)
	assert.Equal(t, 10, out.CoinsAwarded)
	assert.Equal(t, 110, out.BizCoins)
	assert.Equal(t, 1, out.Streak)

	repeat, err := srv.CompleteLesson(context.Background(), userID, "l1")
	require.NoError(t, err)
	assert.True(t, repeat.AlreadyDone)
	assert.Zero(t, repeat.XPAwarded)
	assert.Equal(t, 110, repeat.BizCoins, "repeat completion changes nothing")
}

func TestCompleteLesson_CrossingThresholdRaisesLevelUp(t *testing.T) {
	st, _ := newTestStore()
	srv := NewProgressionService(ProgressionServiceParams{Store: st, Config: testConfig(), Logger: discardLogger()})
	userID := seedUser(st, func(u *entity.User) { u.XP = 90 })
	seedLesson(st, &entity.Lesson{ID: "l1", XPReward: 20})

	out, err := srv.CompleteLesson(context.Background(), userID, "l1")
	require.NoError(t, err)

	assert.Equal(t, 2, out.Level)
	require.NotNil(t, out.LevelUp)
	assert.Equal(t, 2, out.LevelUp.Level)

	require.NoError(t, srv.DismissLevelUp(context.Background(), userID))
	assert.Nil(t, userFrom(st, userID).LevelUp)
	assert.Equal(t, 2, userFrom(st, userID).Level(), "dismissal clears the notice, not the level")
}

func TestCompleteLesson_XPModifierScalesFloored(t *testing.T) {
	st, _ := newTestStore()
	srv := NewProgressionService(ProgressionServiceParams{Store: st, Config: testConfig(), Logger: discardLogger()})
	// skill-study-1 carries a +0.2 XP modifier.
	userID := seedUser(st, func(u *entity.User) { u.UnlockedSkills = []string{"skill-study-1"} })
	seedLesson(st, &entity.Lesson{ID: "l1", XPReward: 25})

	out, err := srv.CompleteLesson(context.Background(), userID, "l1")
	require.NoError(t, err)
	assert.Equal(t, 30, out.XPAwarded, "25 * 1.2 = 30")
}

func TestCompleteLesson_TierGatedContent(t *testing.T) {
	st, _ := newTestStore()
	srv := NewProgressionService(ProgressionServiceParams{Store: st, Config: testConfig(), Logger: discardLogger()})
	userID := seedUser(st)
	seedLesson(st, &entity.Lesson{ID: "premium", XPReward: 100, Tier: entity.TierBoard})

	_, err := srv.CompleteLesson(context.Background(), userID, "premium")
	assert.True(t, errors.Is(err, domainerrors.ErrSubscriptionRequired))
	assert.Zero(t, userFrom(st, userID).XP, "rejected completion changes nothing")
}

func TestCompleteLesson_UnknownLesson(t *testing.T) {
	st, _ := newTestStore()
	srv := NewProgressionService(ProgressionServiceParams{Store: st, Config: testConfig(), Logger: discardLogger()})
	userID := seedUser(st)

	_, err := srv.CompleteLesson(context.Background(), userID, "ghost")
	assert.True(t, errors.Is(err, domainerrors.ErrContentNotFound))
}

func TestReadBook_CoinRewardOnce(t *testing.T) {
	st, _ := newTestStore()
	srv := NewProgressionService(ProgressionServiceParams{Store: st, Config: testConfig(), Logger: discardLogger()})
	userID := seedUser(st)
	_ = st.Update(func(s *store.State) error {
		s.Books["b1"] = &entity.Book{ID: "b1", Title: "Lemonade Economics", CoinReward: 15}

		return nil
	})

	out, err := srv.ReadBook(context.Background(), userID, "b1")
	require.NoError(t, err)
	assert.Equal(t, 15, out.CoinsAwarded)
	assert.Zero(t, out.XPAwarded)
	assert.Equal(t, 115, out.BizCoins)

	repeat, err := srv.ReadBook(context.Background(), userID, "b1")
	require.NoError(t, err)
	assert.True(t, repeat.AlreadyDone)
	assert.Equal(t, 115, repeat.BizCoins)
}

func TestStreak_ConsecutiveDaysExtendGapsReset(t *testing.T) {
	st, now := newTestStore()
	srv := NewProgressionService(ProgressionServiceParams{Store: st, Config: testConfig(), Logger: discardLogger()})
	userID := seedUser(st)
	seedLesson(st, &entity.Lesson{ID: "d1", XPReward: 1})
	seedLesson(st, &entity.Lesson{ID: "d2", XPReward: 1})
	seedLesson(st, &entity.Lesson{ID: "d3", XPReward: 1})

	out, err := srv.CompleteLesson(context.Background(), userID, "d1")
	require.NoError(t, err)
	assert.Equal(t, 1, out.Streak)

	*now = testNow.AddDate(0, 0, 1)
	out, err = srv.CompleteLesson(context.Background(), userID, "d2")
	require.NoError(t, err)
	assert.Equal(t, 2, out.Streak, "next-day activity extends the streak")

	*now = testNow.AddDate(0, 0, 5)
	out, err = srv.CompleteLesson(context.Background(), userID, "d3")
	require.NoError(t, err)
	assert.Equal(t, 1, out.Streak, "a gap restarts the streak")
}

func TestMilestoneBadges_GrantedAlongsideActivity(t *testing.T) {
	st, now := newTestStore()
	srv := NewProgressionService(ProgressionServiceParams{Store: st, Config: testConfig(), Logger: discardLogger()})
	userID := seedUser(st, func(u *entity.User) {
		u.Streak = 2
		u.LastActivityDate = testNow.AddDate(0, 0, -1).Format(time.DateOnly)
	})
	seedLesson(st, &entity.Lesson{ID: "l1", XPReward: 600})

	*now = testNow
	out, err := srv.CompleteLesson(context.Background(), userID, "l1")
	require.NoError(t, err)

	// 600 XP lands at level 4 (threshold 500) and the streak reaches 3.
	assert.Equal(t, 3, out.Streak)
	assert.Contains(t, out.NewBadges, "badge-rising-star")
	assert.Contains(t, out.NewBadges, "badge-streak-3")
	assert.True(t, userFrom(st, userID).HasBadge("badge-streak-3"))

	// Badges are never granted twice.
	seedLesson(st, &entity.Lesson{ID: "l2", XPReward: 1})
	again, err := srv.CompleteLesson(context.Background(), userID, "l2")
	require.NoError(t, err)
	assert.Empty(t, again.NewBadges)
}
