package impl

import (
	"context"
	"testing"
	"time"

	"tycoon/internal/domain/entity"
	domainerrors "tycoon/internal/domain/errors"
	"tycoon/internal/errors"
	"tycoon/internal/store"
	"tycoon/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContentService() (usecase.ContentUsecase, *store.Store, *time.Time) {
	st, now := newTestStore()
	srv := NewContentService(ContentServiceParams{
		Store: st, Config: testConfig(), Logger: discardLogger(),
	})

	return srv, st, now
}

func seedAdmin(st *store.Store) uuid.UUID {
	return seedUser(st, func(u *entity.User) { u.Role = entity.RoleAdmin })
}

func TestUpsertLesson_AdminOnly(t *testing.T) {
	srv, st, _ := newContentService()
	adminID := seedAdmin(st)
	kidID := seedUser(st)

	input := &usecase.LessonInput{
		ID: "lesson-budgeting", Title: "Budgeting", XPReward: 40, CoinReward: 10,
	}

	_, err := srv.UpsertLesson(context.Background(), kidID, input)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))

	lesson, err := srv.UpsertLesson(context.Background(), adminID, input)
	require.NoError(t, err)
	assert.Equal(t, 40, lesson.XPReward)

	got, err := srv.GetLesson(context.Background(), "lesson-budgeting")
	require.NoError(t, err)
	assert.Equal(t, "Budgeting", got.Title)
}

func TestUpsertLesson_ReplacePreservesCreatedAt(t *testing.T) {
	srv, st, now := newContentService()
	adminID := seedAdmin(st)

	first, err := srv.UpsertLesson(context.Background(), adminID, &usecase.LessonInput{
		ID: "lesson-budgeting", Title: "Budgeting",
	})
	require.NoError(t, err)

	*now = testNow.Add(48 * time.Hour)
	second, err := srv.UpsertLesson(context.Background(), adminID, &usecase.LessonInput{
		ID: "lesson-budgeting", Title: "Budgeting v2",
	})
	require.NoError(t, err)

	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))
	assert.Equal(t, "Budgeting v2", second.Title)
}

func TestUpsertLesson_Validation(t *testing.T) {
	srv, st, _ := newContentService()
	adminID := seedAdmin(st)

	_, err := srv.UpsertLesson(context.Background(), adminID, &usecase.LessonInput{Title: "No ID"})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	_, err = srv.UpsertLesson(context.Background(), adminID, &usecase.LessonInput{
		ID: "lesson-x", Tier: entity.Tier("platinum"),
	})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidTier))
}

func TestDeleteLesson(t *testing.T) {
	srv, st, _ := newContentService()
	adminID := seedAdmin(st)

	_, err := srv.UpsertLesson(context.Background(), adminID, &usecase.LessonInput{
		ID: "lesson-budgeting", Title: "Budgeting",
	})
	require.NoError(t, err)

	require.NoError(t, srv.DeleteLesson(context.Background(), adminID, "lesson-budgeting"))
	err = srv.DeleteLesson(context.Background(), adminID, "lesson-budgeting")
	assert.True(t, errors.Is(err, domainerrors.ErrContentNotFound))

	_, err = srv.GetLesson(context.Background(), "lesson-budgeting")
	assert.True(t, errors.Is(err, domainerrors.ErrContentNotFound))
}

func TestBookLifecycle(t *testing.T) {
	srv, st, _ := newContentService()
	adminID := seedAdmin(st)
	kidID := seedUser(st)

	_, err := srv.UpsertBook(context.Background(), kidID, &usecase.BookInput{ID: "book-1", Title: "Coins"})
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))

	for _, book := range []usecase.BookInput{
		{ID: "book-z", Title: "Zebras Inc", CoinReward: 15},
		{ID: "book-a", Title: "Acorn Bank", CoinReward: 10},
	} {
		_, err := srv.UpsertBook(context.Background(), adminID, &book)
		require.NoError(t, err)
	}

	books, err := srv.ListBooks(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "Acorn Bank", books[0].Title, "sorted by title")

	require.NoError(t, srv.DeleteBook(context.Background(), adminID, "book-z"))
	err = srv.DeleteBook(context.Background(), adminID, "book-z")
	assert.True(t, errors.Is(err, domainerrors.ErrContentNotFound))
}

func TestListSimulations_AuthoredShadowsBuiltin(t *testing.T) {
	srv, st, _ := newContentService()
	adminID := seedAdmin(st)

	sims, err := srv.ListSimulations(context.Background())
	require.NoError(t, err)
	require.Len(t, sims, 2, "coffee cart and lemonade stand ship built in")

	_, err = srv.UpsertSimulation(context.Background(), adminID, &usecase.SimulationInput{
		Definition: entity.BusinessSim{
			ID: "lemonade-stand", Name: "Lemonade Deluxe", DemandBase: 25, BasePrice: 2.5,
		},
	})
	require.NoError(t, err)
	_, err = srv.UpsertSimulation(context.Background(), adminID, &usecase.SimulationInput{
		Definition: entity.BusinessSim{
			ID: "pet-wash", Name: "Pet Wash", DemandBase: 30, BasePrice: 6,
		},
	})
	require.NoError(t, err)

	sims, err = srv.ListSimulations(context.Background())
	require.NoError(t, err)
	require.Len(t, sims, 3, "shadowed builtin is listed once")

	byID := make(map[string]*entity.BusinessSim, len(sims))
	for _, sim := range sims {
		byID[sim.ID] = sim
	}
	assert.Equal(t, "Lemonade Deluxe", byID["lemonade-stand"].Name)
	assert.Contains(t, byID, "pet-wash")
	assert.Contains(t, byID, "coffee-cart")
}

func TestUpsertSimulation_Validation(t *testing.T) {
	srv, st, _ := newContentService()
	adminID := seedAdmin(st)

	_, err := srv.UpsertSimulation(context.Background(), adminID, &usecase.SimulationInput{
		Definition: entity.BusinessSim{Name: "No ID", DemandBase: 10, BasePrice: 1},
	})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	_, err = srv.UpsertSimulation(context.Background(), adminID, &usecase.SimulationInput{
		Definition: entity.BusinessSim{ID: "broken", DemandBase: 0, BasePrice: 1},
	})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestDeleteSimulation_BuiltinsOnlyShadowed(t *testing.T) {
	srv, st, _ := newContentService()
	adminID := seedAdmin(st)

	// No authored record exists for the builtin, so there is nothing to delete.
	err := srv.DeleteSimulation(context.Background(), adminID, "lemonade-stand")
	assert.True(t, errors.Is(err, domainerrors.ErrContentNotFound))

	_, err = srv.UpsertSimulation(context.Background(), adminID, &usecase.SimulationInput{
		Definition: entity.BusinessSim{ID: "pet-wash", Name: "Pet Wash", DemandBase: 30, BasePrice: 6},
	})
	require.NoError(t, err)
	require.NoError(t, srv.DeleteSimulation(context.Background(), adminID, "pet-wash"))

	sims, err := srv.ListSimulations(context.Background())
	require.NoError(t, err)
	assert.Len(t, sims, 2)
}
