package impl

import (
	"context"
	"log/slog"
	"slices"
	"strings"

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

// contentService implements the ContentUsecase interface.
type contentService struct {
	store  *store.Store
	logger *slog.Logger
}

// ContentServiceParams holds dependencies for contentService, injected by Fx.
type ContentServiceParams struct {
	fx.In

	Store  *store.Store
	Config *config.Config
	Logger *slog.Logger
}

// NewContentService is the constructor for contentService.
func NewContentService(params ContentServiceParams) usecase.ContentUsecase {
	return &contentService{
		store:  params.Store,
		logger: params.Logger,
	}
}

func (srv *contentService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// requireAdmin checks the caller holds the admin role.
func requireAdmin(s *store.State, callerID uuid.UUID) error {
	caller, err := findUser(s, callerID)
	if err != nil {
		return err
	}
	if caller.Role != entity.RoleAdmin {
		return domainerrors.ErrForbidden.WrapMessage("content management requires the admin role")
	}

	return nil
}

// ListLessons returns all lessons, sorted by title.
func (srv *contentService) ListLessons(_ context.Context) ([]*entity.Lesson, error) {
	var lessons []*entity.Lesson
	srv.store.View(func(s *store.State) {
		for _, lesson := range s.Lessons {
			copied := *lesson
			lessons = append(lessons, &copied)
		}
	})

	slices.SortFunc(lessons, func(a, b *entity.Lesson) int {
		return strings.Compare(a.Title, b.Title)
	})

	return lessons, nil
}

// GetLesson returns one lesson.
func (srv *contentService) GetLesson(_ context.Context, lessonID string) (*entity.Lesson, error) {
	var lesson *entity.Lesson
	srv.store.View(func(s *store.State) {
		if found, ok := s.Lessons[lessonID]; ok {
			copied := *found
			lesson = &copied
		}
	})
	if lesson == nil {
		return nil, errors.Wrap(domainerrors.ErrContentNotFound, "failed to load lesson")
	}

	return lesson, nil
}

// UpsertLesson creates or replaces a lesson.
func (srv *contentService) UpsertLesson(ctx context.Context, callerID uuid.UUID, input *usecase.LessonInput) (*entity.Lesson, error) {
	if input.ID == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "lesson id is required")
	}
	if input.Tier != "" && !input.Tier.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrInvalidTier, "failed to save lesson")
	}

	var saved *entity.Lesson
	err := srv.store.Update(func(s *store.State) error {
		if adminErr := requireAdmin(s, callerID); adminErr != nil {
			return adminErr
		}

		now := srv.store.Now()
		lesson := &entity.Lesson{
			ID:         input.ID,
			Title:      input.Title,
			Body:       input.Body,
			XPReward:   input.XPReward,
			CoinReward: input.CoinReward,
			Tier:       input.Tier,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if existing, ok := s.Lessons[input.ID]; ok {
			lesson.CreatedAt = existing.CreatedAt
		}
		s.Lessons[lesson.ID] = lesson
		copied := *lesson
		saved = &copied

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Lesson upsert rejected", slog.String("lessonID", input.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to save lesson")
	}

	return saved, nil
}

// DeleteLesson removes a lesson. Completion records on users keep their id;
// referential integrity is id matching only.
func (srv *contentService) DeleteLesson(ctx context.Context, callerID uuid.UUID, lessonID string) error {
	err := srv.store.Update(func(s *store.State) error {
		if adminErr := requireAdmin(s, callerID); adminErr != nil {
			return adminErr
		}
		if _, ok := s.Lessons[lessonID]; !ok {
			return domainerrors.ErrContentNotFound
		}

		delete(s.Lessons, lessonID)

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete lesson")
	}

	return nil
}

// ListBooks returns all library books, sorted by title.
func (srv *contentService) ListBooks(_ context.Context) ([]*entity.Book, error) {
	var books []*entity.Book
	srv.store.View(func(s *store.State) {
		for _, book := range s.Books {
			copied := *book
			books = append(books, &copied)
		}
	})

	slices.SortFunc(books, func(a, b *entity.Book) int {
		return strings.Compare(a.Title, b.Title)
	})

	return books, nil
}

// UpsertBook creates or replaces a library book.
func (srv *contentService) UpsertBook(ctx context.Context, callerID uuid.UUID, input *usecase.BookInput) (*entity.Book, error) {
	if input.ID == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "book id is required")
	}

	var saved *entity.Book
	err := srv.store.Update(func(s *store.State) error {
		if adminErr := requireAdmin(s, callerID); adminErr != nil {
			return adminErr
		}

		now := srv.store.Now()
		book := &entity.Book{
			ID:         input.ID,
			Title:      input.Title,
			Author:     input.Author,
			CoinReward: input.CoinReward,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if existing, ok := s.Books[input.ID]; ok {
			book.CreatedAt = existing.CreatedAt
		}
		s.Books[book.ID] = book
		copied := *book
		saved = &copied

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Book upsert rejected", slog.String("bookID", input.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to save book")
	}

	return saved, nil
}

// DeleteBook removes a library book.
func (srv *contentService) DeleteBook(ctx context.Context, callerID uuid.UUID, bookID string) error {
	err := srv.store.Update(func(s *store.State) error {
		if adminErr := requireAdmin(s, callerID); adminErr != nil {
			return adminErr
		}
		if _, ok := s.Books[bookID]; !ok {
			return domainerrors.ErrContentNotFound
		}

		delete(s.Books, bookID)

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete book")
	}

	return nil
}

// ListSimulations merges built-in minigame definitions with admin-authored
// ones; authored definitions shadow built-ins by id.
func (srv *contentService) ListSimulations(_ context.Context) ([]*entity.BusinessSim, error) {
	merged := make(map[string]*entity.BusinessSim)
	for _, sim := range catalog.Simulations() {
		copied := sim
		merged[sim.ID] = &copied
	}

	srv.store.View(func(s *store.State) {
		for id, sim := range s.Simulations {
			copied := *sim
			merged[id] = &copied
		}
	})

	sims := make([]*entity.BusinessSim, 0, len(merged))
	for _, sim := range merged {
		sims = append(sims, sim)
	}
	slices.SortFunc(sims, func(a, b *entity.BusinessSim) int {
		return strings.Compare(a.ID, b.ID)
	})

	return sims, nil
}

// UpsertSimulation creates or replaces an admin-authored business sim.
func (srv *contentService) UpsertSimulation(ctx context.Context, callerID uuid.UUID, input *usecase.SimulationInput) (*entity.BusinessSim, error) {
	sim := input.Definition
	if sim.ID == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "simulation id is required")
	}
	if sim.Tier != "" && !sim.Tier.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrInvalidTier, "failed to save simulation")
	}
	if sim.DemandBase <= 0 || sim.BasePrice <= 0 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "demand base and base price must be positive")
	}

	var saved *entity.BusinessSim
	err := srv.store.Update(func(s *store.State) error {
		if adminErr := requireAdmin(s, callerID); adminErr != nil {
			return adminErr
		}

		now := srv.store.Now()
		sim.UpdatedAt = now
		sim.CreatedAt = now
		if existing, ok := s.Simulations[sim.ID]; ok {
			sim.CreatedAt = existing.CreatedAt
		}
		stored := sim
		s.Simulations[sim.ID] = &stored
		copied := sim
		saved = &copied

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Simulation upsert rejected", slog.String("simID", sim.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to save simulation")
	}

	return saved, nil
}

// DeleteSimulation removes an admin-authored sim. Built-ins cannot be
// deleted, only shadowed.
func (srv *contentService) DeleteSimulation(ctx context.Context, callerID uuid.UUID, simID string) error {
	err := srv.store.Update(func(s *store.State) error {
		if adminErr := requireAdmin(s, callerID); adminErr != nil {
			return adminErr
		}
		if _, ok := s.Simulations[simID]; !ok {
			return domainerrors.ErrContentNotFound
		}

		delete(s.Simulations, simID)

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete simulation")
	}

	return nil
}
