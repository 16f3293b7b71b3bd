package store

import (
	"testing"
	"time"

	"tycoon/internal/domain/entity"
	"tycoon/internal/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdate_InstallsNewSnapshot(t *testing.T) {
	st := New()
	userID := uuid.New()

	err := st.Update(func(s *State) error {
		s.Users[userID] = &entity.User{ID: userID, Username: "ada", BizCoins: 100}

		return nil
	})
	require.NoError(t, err)

	st.View(func(s *State) {
		require.Contains(t, s.Users, userID)
		assert.Equal(t, 100, s.Users[userID].BizCoins)
	})
	assert.Equal(t, uint64(1), st.Version())
}

func TestUpdate_FailedActionLeavesSnapshotUnchanged(t *testing.T) {
	st := New()
	userID := uuid.New()
	require.NoError(t, st.Update(func(s *State) error {
		s.Users[userID] = &entity.User{ID: userID, BizCoins: 100}

		return nil
	}))

	sentinel := errors.New("precondition failed")
	err := st.Update(func(s *State) error {
		s.Users[userID].BizCoins = 0 // Mutates the clone only.

		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	st.View(func(s *State) {
		assert.Equal(t, 100, s.Users[userID].BizCoins)
	})
	assert.Equal(t, uint64(1), st.Version(), "failed actions do not bump the version")
}

func TestUpdate_ActionSeesDetachedClone(t *testing.T) {
	st := New()
	userID := uuid.New()
	require.NoError(t, st.Update(func(s *State) error {
		s.Users[userID] = &entity.User{ID: userID, Inventory: []string{"hat-propeller"}}

		return nil
	}))

	var published *entity.User
	st.View(func(s *State) { published = s.Users[userID] })

	require.NoError(t, st.Update(func(s *State) error {
		s.Users[userID].Inventory[0] = "hat-tophat"

		return nil
	}))

	assert.Equal(t, "hat-propeller", published.Inventory[0], "prior snapshot must stay frozen")
}

func TestSubscribe_FiresOnInstallOnly(t *testing.T) {
	st := New()
	fired := 0
	st.Subscribe(func() { fired++ })

	require.NoError(t, st.Update(func(s *State) error { return nil }))
	assert.Equal(t, 1, fired)

	_ = st.Update(func(s *State) error { return errors.New("nope") })
	assert.Equal(t, 1, fired, "failed actions do not notify")
}

func TestHydrate_ReplacesWholesale(t *testing.T) {
	st := New()
	userID := uuid.New()

	restored := NewState()
	restored.Users[userID] = &entity.User{ID: userID, Username: "restored"}
	restored.AdminMode = true

	st.Hydrate(restored)

	st.View(func(s *State) {
		assert.True(t, s.AdminMode)
		require.Contains(t, s.Users, userID)
	})

	st.Hydrate(nil) // nil restore is ignored
	st.View(func(s *State) {
		assert.Contains(t, s.Users, userID)
	})
}

func TestNewWithClock(t *testing.T) {
	frozen := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	st := NewWithClock(func() time.Time { return frozen })

	assert.Equal(t, frozen, st.Now())
}

func TestStateClone_DeepCopiesCollections(t *testing.T) {
	s := NewState()
	classID := uuid.New()
	s.Classrooms[classID] = &entity.Classroom{ID: classID, StudentIDs: []uuid.UUID{uuid.New()}}
	s.GameSaves["k"] = &entity.GameSave{Sliders: map[string]float64{"price": 50}}
	s.Lessons["l1"] = &entity.Lesson{ID: "l1", Title: "Money Basics"}

	clone := s.Clone()
	clone.Classrooms[classID].StudentIDs[0] = uuid.New()
	clone.GameSaves["k"].Sliders["price"] = 99
	clone.Lessons["l1"].Title = "changed"

	assert.NotEqual(t, clone.Classrooms[classID].StudentIDs[0], s.Classrooms[classID].StudentIDs[0])
	assert.Equal(t, 50.0, s.GameSaves["k"].Sliders["price"])
	assert.Equal(t, "Money Basics", s.Lessons["l1"].Title)
}

func TestUserByUsername(t *testing.T) {
	s := NewState()
	userID := uuid.New()
	s.Users[userID] = &entity.User{ID: userID, Username: "ada"}

	require.NotNil(t, s.UserByUsername("ada"))
	assert.Nil(t, s.UserByUsername("grace"))
}
