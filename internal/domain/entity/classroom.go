// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Classroom is a teacher-owned group of students. It anchors a simple
// one-to-many ownership graph: Classroom -> StudentGroups, Assignments;
// Assignment -> Submissions.
type Classroom struct {
	ID         uuid.UUID   `json:"id"`
	TeacherID  uuid.UUID   `json:"teacher_id"`
	Name       string      `json:"name"`
	JoinCode   string      `json:"join_code"` // Short code students (or their QR scanner) use to join.
	StudentIDs []uuid.UUID `json:"student_ids"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// StudentGroup is a named subset of a classroom's students.
type StudentGroup struct {
	ID          uuid.UUID   `json:"id"`
	ClassroomID uuid.UUID   `json:"classroom_id"`
	Name        string      `json:"name"`
	StudentIDs  []uuid.UUID `json:"student_ids"`
}

// Assignment is a task a teacher hands to a classroom, optionally pinned to
// a lesson or minigame.
type Assignment struct {
	ID          uuid.UUID `json:"id"`
	ClassroomID uuid.UUID `json:"classroom_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	LessonID    string    `json:"lesson_id,omitempty"`
	GameID      string    `json:"game_id,omitempty"`
	Rubric      []Rubric  `json:"rubric,omitempty"`
	DueAt       time.Time `json:"due_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// Rubric is one grading criterion on an assignment.
type Rubric struct {
	Criterion string `json:"criterion"`
	MaxPoints int    `json:"max_points"`
}

// Submission is a student's answer to an assignment.
type Submission struct {
	ID           uuid.UUID `json:"id"`
	AssignmentID uuid.UUID `json:"assignment_id"`
	StudentID    uuid.UUID `json:"student_id"`
	Content      string    `json:"content"`
	Score        *int      `json:"score,omitempty"` // Nil until graded.
	Feedback     string    `json:"feedback,omitempty"`
	SubmittedAt  time.Time `json:"submitted_at"`
	GradedAt     time.Time `json:"graded_at,omitzero"`
}
