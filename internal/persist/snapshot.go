// Package persist implements the Persistence Adapter: it serializes the
// whitelisted subset of the application state to the durable local snapshot
// slot after every change (debounced), and restores it wholesale at startup.
package persist

import (
	"encoding/json"
	"log/slog"

	"tycoon/internal/domain/entity"
	"tycoon/internal/store"

	"github.com/google/uuid"
)

// Snapshot is the whitelisted, JSON-serializable subset of the aggregate.
// Collections not listed here are deliberately not persisted.
type Snapshot struct {
	Users         []*entity.User         `json:"users"`
	GameSaves     []*entity.GameSave     `json:"game_saves"`
	Classrooms    []*entity.Classroom    `json:"classrooms"`
	StudentGroups []*entity.StudentGroup `json:"student_groups"`
	Assignments   []*entity.Assignment   `json:"assignments"`
	Submissions   []*entity.Submission   `json:"submissions"`
	Lessons       []*entity.Lesson       `json:"lessons"`
	Simulations   []*entity.BusinessSim  `json:"simulations"`
	Books         []*entity.Book         `json:"books"`
	AdminMode     bool                   `json:"admin_mode"`
}

// FromState extracts the whitelisted subset of a settled snapshot.
func FromState(s *store.State) *Snapshot {
	snap := &Snapshot{AdminMode: s.AdminMode}

	for _, user := range s.Users {
		snap.Users = append(snap.Users, user)
	}
	for _, save := range s.GameSaves {
		snap.GameSaves = append(snap.GameSaves, save)
	}
	for _, classroom := range s.Classrooms {
		snap.Classrooms = append(snap.Classrooms, classroom)
	}
	for _, group := range s.StudentGroups {
		snap.StudentGroups = append(snap.StudentGroups, group)
	}
	for _, assignment := range s.Assignments {
		snap.Assignments = append(snap.Assignments, assignment)
	}
	for _, submission := range s.Submissions {
		snap.Submissions = append(snap.Submissions, submission)
	}
	for _, lesson := range s.Lessons {
		snap.Lessons = append(snap.Lessons, lesson)
	}
	for _, sim := range s.Simulations {
		snap.Simulations = append(snap.Simulations, sim)
	}
	for _, book := range s.Books {
		snap.Books = append(snap.Books, book)
	}

	return snap
}

// Encode marshals the snapshot for the storage slot.
func (snap *Snapshot) Encode() ([]byte, error) {
	return json.Marshal(snap)
}

// Decode unmarshals a stored payload. Malformed payloads return an error so
// the caller can fall back to built-in defaults instead of crashing.
func Decode(payload []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, err
	}

	return &snap, nil
}

// Restore rebuilds an aggregate from the snapshot. Entries with missing ids
// are dropped and logged rather than installed; one rotten record must not
// take the rest of the restore down with it.
func (snap *Snapshot) Restore(logger *slog.Logger) *store.State {
	s := store.NewState()
	s.AdminMode = snap.AdminMode

	for _, user := range snap.Users {
		if user == nil || user.ID == uuid.Nil {
			logger.Warn("dropping user with missing id from restored snapshot")

			continue
		}
		s.Users[user.ID] = user
	}
	for _, save := range snap.GameSaves {
		if save == nil || save.GameID == "" {
			continue
		}
		save.Sanitize()
		s.GameSaves[store.SaveKey(save.UserID, save.GameID)] = save
	}
	for _, classroom := range snap.Classrooms {
		if classroom == nil || classroom.ID == uuid.Nil {
			continue
		}
		s.Classrooms[classroom.ID] = classroom
	}
	for _, group := range snap.StudentGroups {
		if group == nil || group.ID == uuid.Nil {
			continue
		}
		s.StudentGroups[group.ID] = group
	}
	for _, assignment := range snap.Assignments {
		if assignment == nil || assignment.ID == uuid.Nil {
			continue
		}
		s.Assignments[assignment.ID] = assignment
	}
	for _, submission := range snap.Submissions {
		if submission == nil || submission.ID == uuid.Nil {
			continue
		}
		s.Submissions[submission.ID] = submission
	}
	for _, lesson := range snap.Lessons {
		if lesson == nil || lesson.ID == "" {
			continue
		}
		s.Lessons[lesson.ID] = lesson
	}
	for _, sim := range snap.Simulations {
		if sim == nil || sim.ID == "" {
			continue
		}
		s.Simulations[sim.ID] = sim
	}
	for _, book := range snap.Books {
		if book == nil || book.ID == "" {
			continue
		}
		s.Books[book.ID] = book
	}

	return s
}
