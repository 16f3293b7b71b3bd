package usecase

import (
	"context"

	"tycoon/internal/domain/entity"

	"github.com/google/uuid"
)

// RewardOutput describes what one rewarded activity granted.
type RewardOutput struct {
	XPAwarded    int                  `json:"xp_awarded"`
	CoinsAwarded int                  `json:"coins_awarded"`
	Level        int                  `json:"level"`
	LevelUp      *entity.LevelUpEvent `json:"level_up,omitempty"`
	NewBadges    []string             `json:"new_badges,omitempty"`
	Streak       int                  `json:"streak"`
	BizCoins     int                  `json:"biz_coins"`

	// AlreadyDone marks a repeat of a one-time activity; all award fields
	// are zero and state was not changed.
	AlreadyDone bool `json:"already_done,omitempty"`
}

// ProgressionUsecase defines the interface for XP, streak and one-time
// reward operations.
type ProgressionUsecase interface {
	// CompleteLesson grants the lesson's XP and coin rewards once per
	// account, scaled by the account's modifiers.
	CompleteLesson(ctx context.Context, userID uuid.UUID, lessonID string) (*RewardOutput, error)

	// ReadBook grants the book's coin reward once per account.
	ReadBook(ctx context.Context, userID uuid.UUID, bookID string) (*RewardOutput, error)

	// DismissLevelUp clears the one-shot level-up notification.
	DismissLevelUp(ctx context.Context, userID uuid.UUID) error
}
