package usecase

import (
	"context"

	"tycoon/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// LessonInput defines a CMS lesson create-or-replace.
type LessonInput struct {
	ID         string
	Title      string
	Body       string
	XPReward   int
	CoinReward int
	Tier       entity.Tier
}

// BookInput defines a CMS library book create-or-replace.
type BookInput struct {
	ID         string
	Title      string
	Author     string
	CoinReward int
}

// SimulationInput defines an admin-authored business-sim create-or-replace.
type SimulationInput struct {
	Definition entity.BusinessSim
}

// ContentUsecase defines the interface for CMS-managed content. Reads are
// open to any account; writes require the admin role. The shop/skill/HQ
// catalog is immutable reference data and has no write surface here.
type ContentUsecase interface {
	ListLessons(ctx context.Context) ([]*entity.Lesson, error)
	GetLesson(ctx context.Context, lessonID string) (*entity.Lesson, error)
	UpsertLesson(ctx context.Context, callerID uuid.UUID, input *LessonInput) (*entity.Lesson, error)
	DeleteLesson(ctx context.Context, callerID uuid.UUID, lessonID string) error

	ListBooks(ctx context.Context) ([]*entity.Book, error)
	UpsertBook(ctx context.Context, callerID uuid.UUID, input *BookInput) (*entity.Book, error)
	DeleteBook(ctx context.Context, callerID uuid.UUID, bookID string) error

	// ListSimulations merges built-in minigame definitions with
	// admin-authored ones; authored definitions shadow built-ins by id.
	ListSimulations(ctx context.Context) ([]*entity.BusinessSim, error)
	UpsertSimulation(ctx context.Context, callerID uuid.UUID, input *SimulationInput) (*entity.BusinessSim, error)
	DeleteSimulation(ctx context.Context, callerID uuid.UUID, simID string) error
}
