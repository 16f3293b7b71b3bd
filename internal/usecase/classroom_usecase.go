package usecase

import (
	"context"
	"time"

	"tycoon/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateClassroomInput defines the data required to open a classroom.
type CreateClassroomInput struct {
	Name string
}

// GroupInput defines a named subset of a classroom's students.
type GroupInput struct {
	ClassroomID uuid.UUID
	Name        string
	StudentIDs  []uuid.UUID
}

// AssignmentInput defines a task handed to a classroom.
type AssignmentInput struct {
	ClassroomID uuid.UUID
	Title       string
	Description string
	LessonID    string
	GameID      string
	Rubric      []entity.Rubric
	DueAt       time.Time
}

// SubmissionInput is a student's answer to an assignment.
type SubmissionInput struct {
	AssignmentID uuid.UUID
	Content      string
}

// GradeInput records a teacher's grading of a submission.
type GradeInput struct {
	SubmissionID uuid.UUID
	Score        int
	Feedback     string
}

// ClassroomUsecase defines the interface for teacher-facing classroom
// management. All referential integrity is id matching only; mutations are
// restricted to the owning teacher.
type ClassroomUsecase interface {
	Create(ctx context.Context, teacherID uuid.UUID, input *CreateClassroomInput) (*entity.Classroom, error)
	Get(ctx context.Context, classroomID uuid.UUID) (*entity.Classroom, error)
	ListByTeacher(ctx context.Context, teacherID uuid.UUID) ([]*entity.Classroom, error)
	Rename(ctx context.Context, teacherID, classroomID uuid.UUID, name string) (*entity.Classroom, error)
	Delete(ctx context.Context, teacherID, classroomID uuid.UUID) error

	// Join adds a student to the classroom matching the join code.
	Join(ctx context.Context, studentID uuid.UUID, joinCode string) (*entity.Classroom, error)

	// JoinQR renders the classroom's join code as a PNG QR image.
	JoinQR(ctx context.Context, teacherID, classroomID uuid.UUID) ([]byte, error)

	CreateGroup(ctx context.Context, teacherID uuid.UUID, input *GroupInput) (*entity.StudentGroup, error)
	DeleteGroup(ctx context.Context, teacherID, groupID uuid.UUID) error

	CreateAssignment(ctx context.Context, teacherID uuid.UUID, input *AssignmentInput) (*entity.Assignment, error)
	ListAssignments(ctx context.Context, classroomID uuid.UUID) ([]*entity.Assignment, error)
	DeleteAssignment(ctx context.Context, teacherID, assignmentID uuid.UUID) error

	Submit(ctx context.Context, studentID uuid.UUID, input *SubmissionInput) (*entity.Submission, error)
	ListSubmissions(ctx context.Context, teacherID, assignmentID uuid.UUID) ([]*entity.Submission, error)
	Grade(ctx context.Context, teacherID uuid.UUID, input *GradeInput) (*entity.Submission, error)
}
