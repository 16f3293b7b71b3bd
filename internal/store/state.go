// Package store owns the application state aggregate: one snapshot of every
// domain collection, replaced wholesale by each action. All mutation flows
// through Store.Update, which applies an action to a deep clone of the
// current snapshot and installs the clone atomically.
package store

import (
	"maps"
	"slices"

	"tycoon/internal/domain/entity"

	"github.com/google/uuid"
)

// State is the full in-memory aggregate at one instant. Entities inside a
// snapshot are value-like: actions never mutate a published snapshot, only
// the private clone handed to them by Store.Update.
type State struct {
	Users         map[uuid.UUID]*entity.User
	GameSaves     map[string]*entity.GameSave
	Classrooms    map[uuid.UUID]*entity.Classroom
	StudentGroups map[uuid.UUID]*entity.StudentGroup
	Assignments   map[uuid.UUID]*entity.Assignment
	Submissions   map[uuid.UUID]*entity.Submission
	Lessons       map[string]*entity.Lesson
	Simulations   map[string]*entity.BusinessSim
	Books         map[string]*entity.Book
	AdminMode     bool
}

// NewState returns an empty aggregate with all collections initialized.
func NewState() *State {
	return &State{
		Users:         make(map[uuid.UUID]*entity.User),
		GameSaves:     make(map[string]*entity.GameSave),
		Classrooms:    make(map[uuid.UUID]*entity.Classroom),
		StudentGroups: make(map[uuid.UUID]*entity.StudentGroup),
		Assignments:   make(map[uuid.UUID]*entity.Assignment),
		Submissions:   make(map[uuid.UUID]*entity.Submission),
		Lessons:       make(map[string]*entity.Lesson),
		Simulations:   make(map[string]*entity.BusinessSim),
		Books:         make(map[string]*entity.Book),
	}
}

// SaveKey builds the (user id, game id) key for a minigame save slot.
func SaveKey(userID uuid.UUID, gameID string) string {
	return userID.String() + ":" + gameID
}

// UserByUsername scans for an account with the given login name. Returns nil
// when no account matches.
func (s *State) UserByUsername(username string) *entity.User {
	for _, user := range s.Users {
		if user.Username == username {
			return user
		}
	}

	return nil
}

// Clone returns a deep copy of the aggregate.
func (s *State) Clone() *State {
	clone := NewState()
	clone.AdminMode = s.AdminMode

	for id, user := range s.Users {
		clone.Users[id] = user.Clone()
	}
	for key, save := range s.GameSaves {
		clone.GameSaves[key] = cloneGameSave(save)
	}
	for id, classroom := range s.Classrooms {
		clone.Classrooms[id] = cloneClassroom(classroom)
	}
	for id, group := range s.StudentGroups {
		groupCopy := *group
		groupCopy.StudentIDs = slices.Clone(group.StudentIDs)
		clone.StudentGroups[id] = &groupCopy
	}
	for id, assignment := range s.Assignments {
		assignmentCopy := *assignment
		assignmentCopy.Rubric = slices.Clone(assignment.Rubric)
		clone.Assignments[id] = &assignmentCopy
	}
	for id, submission := range s.Submissions {
		submissionCopy := *submission
		if submission.Score != nil {
			score := *submission.Score
			submissionCopy.Score = &score
		}
		clone.Submissions[id] = &submissionCopy
	}
	for id, lesson := range s.Lessons {
		lessonCopy := *lesson
		clone.Lessons[id] = &lessonCopy
	}
	for id, sim := range s.Simulations {
		clone.Simulations[id] = cloneSimulation(sim)
	}
	for id, book := range s.Books {
		bookCopy := *book
		clone.Books[id] = &bookCopy
	}

	return clone
}

func cloneGameSave(save *entity.GameSave) *entity.GameSave {
	saveCopy := *save
	saveCopy.Inventory = maps.Clone(save.Inventory)
	saveCopy.Upgrades = slices.Clone(save.Upgrades)
	saveCopy.Sliders = maps.Clone(save.Sliders)

	return &saveCopy
}

func cloneClassroom(classroom *entity.Classroom) *entity.Classroom {
	classroomCopy := *classroom
	classroomCopy.StudentIDs = slices.Clone(classroom.StudentIDs)

	return &classroomCopy
}

func cloneSimulation(sim *entity.BusinessSim) *entity.BusinessSim {
	simCopy := *sim
	simCopy.Resources = slices.Clone(sim.Resources)
	simCopy.Upgrades = slices.Clone(sim.Upgrades)
	simCopy.Events = slices.Clone(sim.Events)
	simCopy.Variables = maps.Clone(sim.Variables)

	return &simCopy
}
