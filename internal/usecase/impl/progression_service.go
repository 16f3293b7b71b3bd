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

// Badge milestones. Awards happen alongside the activity that crossed the
// milestone, never retroactively revoked.
var levelBadges = map[int]string{
	3:  "badge-rising-star",
	5:  "badge-entrepreneur",
	8:  "badge-executive",
	10: "badge-tycoon",
}

var streakBadges = map[int]string{
	3:  "badge-streak-3",
	7:  "badge-streak-week",
	30: "badge-streak-month",
}

// progressionService implements the ProgressionUsecase interface.
type progressionService struct {
	store  *store.Store
	rules  gameRules
	logger *slog.Logger
}

// ProgressionServiceParams holds dependencies for progressionService, injected by Fx.
type ProgressionServiceParams struct {
	fx.In

	Store  *store.Store
	Config *config.Config
	Logger *slog.Logger
}

// NewProgressionService is the constructor for progressionService.
func NewProgressionService(params ProgressionServiceParams) usecase.ProgressionUsecase {
	return &progressionService{
		store:  params.Store,
		rules:  rulesFromConfig(params.Config),
		logger: params.Logger,
	}
}

func (srv *progressionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// applyActivityReward grants scaled XP and coins for one activity, updates
// the streak and collects any milestone badges crossed by the grant.
func (srv *progressionService) applyActivityReward(user *entity.User, xp, coins int) *usecase.RewardOutput {
	mods := modifiersFor(user)
	out := &usecase.RewardOutput{
		XPAwarded:    scaleReward(xp, mods.XP),
		CoinsAwarded: scaleReward(coins, mods.Price),
	}

	user.GrantXP(out.XPAwarded)
	user.BizCoins += out.CoinsAwarded
	user.TouchStreak(srv.store.Now())
	out.NewBadges = awardMilestoneBadges(user)

	out.Level = user.Level()
	out.LevelUp = user.LevelUp
	out.Streak = user.Streak
	out.BizCoins = user.BizCoins

	return out
}

// awardMilestoneBadges grants any level or streak badges the account
// qualifies for but does not yet hold.
func awardMilestoneBadges(user *entity.User) []string {
	var granted []string

	for milestone, badge := range levelBadges {
		if user.Level() >= milestone && !user.HasBadge(badge) {
			user.Badges = append(user.Badges, badge)
			granted = append(granted, badge)
		}
	}
	for milestone, badge := range streakBadges {
		if user.Streak >= milestone && !user.HasBadge(badge) {
			user.Badges = append(user.Badges, badge)
			granted = append(granted, badge)
		}
	}

	return granted
}

// CompleteLesson grants the lesson's rewards once per account. Repeats are
// reported, not rewarded.
func (srv *progressionService) CompleteLesson(ctx context.Context, userID uuid.UUID, lessonID string) (*usecase.RewardOutput, error) {
	var out *usecase.RewardOutput
	err := srv.store.Update(func(s *store.State) error {
		user, findErr := findUser(s, userID)
		if findErr != nil {
			return findErr
		}

		lesson, ok := s.Lessons[lessonID]
		if !ok {
			return domainerrors.ErrContentNotFound
		}
		if !user.Tier.CanAccessContent(lesson.Tier) {
			return domainerrors.ErrSubscriptionRequired
		}

		if user.HasCompletedLesson(lessonID) {
			out = &usecase.RewardOutput{
				AlreadyDone: true,
				Level:       user.Level(),
				Streak:      user.Streak,
				BizCoins:    user.BizCoins,
			}

			return nil
		}

		user.CompletedLessonIDs = append(user.CompletedLessonIDs, lessonID)
		out = srv.applyActivityReward(user, lesson.XPReward, lesson.CoinReward)
		user.UpdatedAt = srv.store.Now()

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to complete lesson", slog.Any("userID", userID), slog.String("lessonID", lessonID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to complete lesson")
	}

	return out, nil
}

// ReadBook grants the book's coin reward once per account.
func (srv *progressionService) ReadBook(ctx context.Context, userID uuid.UUID, bookID string) (*usecase.RewardOutput, error) {
	var out *usecase.RewardOutput
	err := srv.store.Update(func(s *store.State) error {
		user, findErr := findUser(s, userID)
		if findErr != nil {
			return findErr
		}

		book, ok := s.Books[bookID]
		if !ok {
			return domainerrors.ErrContentNotFound
		}

		if user.HasReadBook(bookID) {
			out = &usecase.RewardOutput{
				AlreadyDone: true,
				Level:       user.Level(),
				Streak:      user.Streak,
				BizCoins:    user.BizCoins,
			}

			return nil
		}

		user.ReadBookIDs = append(user.ReadBookIDs, bookID)
		out = srv.applyActivityReward(user, 0, book.CoinReward)
		user.UpdatedAt = srv.store.Now()

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to record book", slog.Any("userID", userID), slog.String("bookID", bookID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to record book")
	}

	return out, nil
}

// DismissLevelUp clears the one-shot level-up notification. Dismissing when
// none is pending is a no-op.
func (srv *progressionService) DismissLevelUp(ctx context.Context, userID uuid.UUID) error {
	err := srv.store.Update(func(s *store.State) error {
		user, findErr := findUser(s, userID)
		if findErr != nil {
			return findErr
		}

		user.LevelUp = nil

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to dismiss level-up notification")
	}

	return nil
}
