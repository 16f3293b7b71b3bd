package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"tycoon/config"
	"tycoon/internal/domain/catalog"
	"tycoon/internal/domain/entity"
	"tycoon/internal/domain/repository"
	"tycoon/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// testNow is the frozen reference time all service tests start from.
var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// newTestStore returns a store whose clock reads through the returned
// pointer, so tests advance time by reassigning it.
func newTestStore() (*store.Store, *time.Time) {
	now := new(time.Time)
	*now = testNow

	return store.NewWithClock(func() time.Time { return *now }), now
}

func testConfig() *config.Config {
	return &config.Config{}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// seedUser installs a ready-to-play kid account and returns its id.
func seedUser(st *store.Store, mutate ...func(*entity.User)) uuid.UUID {
	userID := uuid.New()
	_ = st.Update(func(s *store.State) error {
		user := &entity.User{
			ID:               userID,
			Username:         "kid-" + userID.String()[:8],
			Name:             "Test Kid",
			PasswordHash:     "h:secret",
			Role:             entity.RoleKid,
			BizCoins:         100,
			Tier:             entity.TierIntern,
			Energy:           5,
			LastEnergyRefill: st.Now(),
			HQLevel:          catalog.DefaultHQLevel,
			Settings:         entity.DefaultSettings(),
			CreatedAt:        st.Now(),
			UpdatedAt:        st.Now(),
		}
		for _, fn := range mutate {
			fn(user)
		}
		s.Users[userID] = user

		return nil
	})

	return userID
}

// seedLesson installs a lesson into state.
func seedLesson(st *store.Store, lesson *entity.Lesson) {
	_ = st.Update(func(s *store.State) error {
		s.Lessons[lesson.ID] = lesson

		return nil
	})
}

// userFrom reads one user back out of the store.
func userFrom(st *store.Store, userID uuid.UUID) *entity.User {
	var user *entity.User
	st.View(func(s *store.State) {
		user = s.Users[userID].Clone()
	})

	return user
}

// --- domain-service stubs ---

type stubHasher struct{}

func (stubHasher) Hash(password string) (string, error) { return "h:" + password, nil }

func (stubHasher) Check(password, hash string) bool { return hash == "h:"+password }

type stubTokens struct{}

func (stubTokens) GenerateTokens(userID uuid.UUID, _ []string) (string, string, error) {
	return "access-" + userID.String(), "refresh-" + userID.String(), nil
}

func (stubTokens) ValidateToken(string, string) (*jwt.Token, error) { return nil, nil }

func (stubTokens) GetRefreshTokenDuration() time.Duration { return time.Hour }

type stubQR struct{}

func (stubQR) GenerateJoinQR(joinCode string) ([]byte, error) { return []byte("png:" + joinCode), nil }

func (stubQR) ParseJoinQR(qrData string) (string, error) { return qrData, nil }

// memSaveRepo is an in-memory GameSaveRepository standing in for the blob
// mirror bucket.
type memSaveRepo struct {
	mu    sync.Mutex
	slots map[string]*entity.GameSave
}

func newMemSaveRepo() *memSaveRepo {
	return &memSaveRepo{slots: make(map[string]*entity.GameSave)}
}

func (r *memSaveRepo) Put(_ context.Context, save *entity.GameSave) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slots[store.SaveKey(save.UserID, save.GameID)] = save

	return nil
}

func (r *memSaveRepo) Get(_ context.Context, userID uuid.UUID, gameID string) (*entity.GameSave, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	save, ok := r.slots[store.SaveKey(userID, gameID)]
	if !ok {
		return nil, repository.ErrGameSaveNotFound
	}

	return save, nil
}

func (r *memSaveRepo) Delete(_ context.Context, userID uuid.UUID, gameID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.slots, store.SaveKey(userID, gameID))

	return nil
}
