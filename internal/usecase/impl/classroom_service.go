package impl

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"tycoon/config"
	deliverycontext "tycoon/internal/delivery/context"
	"tycoon/internal/domain/entity"
	domainerrors "tycoon/internal/domain/errors"
	"tycoon/internal/domain/service"
	"tycoon/internal/store"
	"tycoon/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// classroomService implements the ClassroomUsecase interface.
type classroomService struct {
	store  *store.Store
	qrcode service.QRCodeService
	logger *slog.Logger
}

// ClassroomServiceParams holds dependencies for classroomService, injected by Fx.
type ClassroomServiceParams struct {
	fx.In

	Store  *store.Store
	QRCode service.QRCodeService
	Config *config.Config
	Logger *slog.Logger
}

// NewClassroomService is the constructor for classroomService.
func NewClassroomService(params ClassroomServiceParams) usecase.ClassroomUsecase {
	return &classroomService{
		store:  params.Store,
		qrcode: params.QRCode,
		logger: params.Logger,
	}
}

func (srv *classroomService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// newJoinCode derives a short, human-typable join code that is unique among
// the open classrooms.
func newJoinCode(s *store.State) string {
	for {
		code := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])

		taken := false
		for _, classroom := range s.Classrooms {
			if classroom.JoinCode == code {
				taken = true

				break
			}
		}
		if !taken {
			return code
		}
	}
}

// requireTeacher loads a classroom and checks the caller owns it.
func requireTeacher(s *store.State, teacherID, classroomID uuid.UUID) (*entity.Classroom, error) {
	classroom, ok := s.Classrooms[classroomID]
	if !ok {
		return nil, domainerrors.ErrClassroomNotFound
	}
	if classroom.TeacherID != teacherID {
		return nil, domainerrors.ErrForbidden
	}

	return classroom, nil
}

// Create opens a classroom owned by the calling teacher.
func (srv *classroomService) Create(ctx context.Context, teacherID uuid.UUID, input *usecase.CreateClassroomInput) (*entity.Classroom, error) {
	var created *entity.Classroom
	err := srv.store.Update(func(s *store.State) error {
		teacher, findErr := findUser(s, teacherID)
		if findErr != nil {
			return findErr
		}
		if teacher.Role != entity.RoleTeacher && teacher.Role != entity.RoleAdmin {
			return domainerrors.ErrForbidden.WrapMessage("only teachers can open classrooms")
		}

		now := srv.store.Now()
		classroom := &entity.Classroom{
			ID:        uuid.New(),
			TeacherID: teacherID,
			Name:      input.Name,
			JoinCode:  newJoinCode(s),
			CreatedAt: now,
			UpdatedAt: now,
		}
		s.Classrooms[classroom.ID] = classroom
		created = classroom

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Classroom creation rejected", slog.Any("teacherID", teacherID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create classroom")
	}

	srv.log(ctx).Info("Classroom created", slog.Any("classroomID", created.ID), slog.Any("teacherID", teacherID))

	return created, nil
}

// Get returns one classroom.
func (srv *classroomService) Get(_ context.Context, classroomID uuid.UUID) (*entity.Classroom, error) {
	var classroom *entity.Classroom
	srv.store.View(func(s *store.State) {
		if found, ok := s.Classrooms[classroomID]; ok {
			copied := *found
			copied.StudentIDs = slices.Clone(found.StudentIDs)
			classroom = &copied
		}
	})
	if classroom == nil {
		return nil, errors.Wrap(domainerrors.ErrClassroomNotFound, "failed to load classroom")
	}

	return classroom, nil
}

// ListByTeacher returns the classrooms a teacher owns.
func (srv *classroomService) ListByTeacher(_ context.Context, teacherID uuid.UUID) ([]*entity.Classroom, error) {
	var classrooms []*entity.Classroom
	srv.store.View(func(s *store.State) {
		for _, classroom := range s.Classrooms {
			if classroom.TeacherID != teacherID {
				continue
			}
			copied := *classroom
			copied.StudentIDs = slices.Clone(classroom.StudentIDs)
			classrooms = append(classrooms, &copied)
		}
	})

	slices.SortFunc(classrooms, func(a, b *entity.Classroom) int {
		return strings.Compare(a.Name, b.Name)
	})

	return classrooms, nil
}

// Rename changes a classroom's display name.
func (srv *classroomService) Rename(ctx context.Context, teacherID, classroomID uuid.UUID, name string) (*entity.Classroom, error) {
	var renamed *entity.Classroom
	err := srv.store.Update(func(s *store.State) error {
		classroom, reqErr := requireTeacher(s, teacherID, classroomID)
		if reqErr != nil {
			return reqErr
		}

		classroom.Name = name
		classroom.UpdatedAt = srv.store.Now()
		copied := *classroom
		copied.StudentIDs = slices.Clone(classroom.StudentIDs)
		renamed = &copied

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to rename classroom")
	}

	return renamed, nil
}

// Delete removes a classroom and everything hanging off it: groups,
// assignments and their submissions. Referential integrity is id matching
// only, so the cascade is a simple sweep.
func (srv *classroomService) Delete(ctx context.Context, teacherID, classroomID uuid.UUID) error {
	err := srv.store.Update(func(s *store.State) error {
		if _, reqErr := requireTeacher(s, teacherID, classroomID); reqErr != nil {
			return reqErr
		}

		delete(s.Classrooms, classroomID)
		for id, group := range s.StudentGroups {
			if group.ClassroomID == classroomID {
				delete(s.StudentGroups, id)
			}
		}
		for assignmentID, assignment := range s.Assignments {
			if assignment.ClassroomID != classroomID {
				continue
			}
			delete(s.Assignments, assignmentID)
			for submissionID, submission := range s.Submissions {
				if submission.AssignmentID == assignmentID {
					delete(s.Submissions, submissionID)
				}
			}
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Classroom deletion rejected", slog.Any("classroomID", classroomID), slog.Any("error", err))

		return errors.Wrap(err, "failed to delete classroom")
	}

	return nil
}

// Join adds a student to the classroom matching the join code. Joining a
// classroom the student already belongs to is a no-op.
func (srv *classroomService) Join(ctx context.Context, studentID uuid.UUID, joinCode string) (*entity.Classroom, error) {
	code := strings.ToUpper(strings.TrimSpace(joinCode))

	var joined *entity.Classroom
	err := srv.store.Update(func(s *store.State) error {
		if _, findErr := findUser(s, studentID); findErr != nil {
			return findErr
		}

		var classroom *entity.Classroom
		for _, candidate := range s.Classrooms {
			if candidate.JoinCode == code {
				classroom = candidate

				break
			}
		}
		if classroom == nil {
			return domainerrors.ErrClassroomNotFound.WrapMessage("no classroom matches this join code")
		}

		if !slices.Contains(classroom.StudentIDs, studentID) {
			classroom.StudentIDs = append(classroom.StudentIDs, studentID)
			classroom.UpdatedAt = srv.store.Now()
		}
		copied := *classroom
		copied.StudentIDs = slices.Clone(classroom.StudentIDs)
		joined = &copied

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Classroom join rejected", slog.Any("studentID", studentID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to join classroom")
	}

	return joined, nil
}

// JoinQR renders the classroom's join code as a PNG QR image.
func (srv *classroomService) JoinQR(ctx context.Context, teacherID, classroomID uuid.UUID) ([]byte, error) {
	var joinCode string
	var err error
	srv.store.View(func(s *store.State) {
		var classroom *entity.Classroom
		classroom, err = requireTeacher(s, teacherID, classroomID)
		if err == nil {
			joinCode = classroom.JoinCode
		}
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to render join QR")
	}

	png, err := srv.qrcode.GenerateJoinQR(joinCode)
	if err != nil {
		srv.log(ctx).Error("Failed to generate join QR", slog.Any("classroomID", classroomID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to render join QR")
	}

	return png, nil
}

// CreateGroup adds a named subset of a classroom's students. Member ids not
// enrolled in the classroom are dropped silently.
func (srv *classroomService) CreateGroup(ctx context.Context, teacherID uuid.UUID, input *usecase.GroupInput) (*entity.StudentGroup, error) {
	var created *entity.StudentGroup
	err := srv.store.Update(func(s *store.State) error {
		classroom, reqErr := requireTeacher(s, teacherID, input.ClassroomID)
		if reqErr != nil {
			return reqErr
		}

		members := make([]uuid.UUID, 0, len(input.StudentIDs))
		for _, studentID := range input.StudentIDs {
			if slices.Contains(classroom.StudentIDs, studentID) {
				members = append(members, studentID)
			}
		}

		group := &entity.StudentGroup{
			ID:          uuid.New(),
			ClassroomID: classroom.ID,
			Name:        input.Name,
			StudentIDs:  members,
		}
		s.StudentGroups[group.ID] = group
		created = group

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create student group")
	}

	return created, nil
}

// DeleteGroup removes a student group.
func (srv *classroomService) DeleteGroup(ctx context.Context, teacherID, groupID uuid.UUID) error {
	err := srv.store.Update(func(s *store.State) error {
		group, ok := s.StudentGroups[groupID]
		if !ok {
			return domainerrors.ErrNotFound.WrapMessage("no such student group")
		}
		if _, reqErr := requireTeacher(s, teacherID, group.ClassroomID); reqErr != nil {
			return reqErr
		}

		delete(s.StudentGroups, groupID)

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete student group")
	}

	return nil
}

// CreateAssignment hands a task to a classroom.
func (srv *classroomService) CreateAssignment(ctx context.Context, teacherID uuid.UUID, input *usecase.AssignmentInput) (*entity.Assignment, error) {
	var created *entity.Assignment
	err := srv.store.Update(func(s *store.State) error {
		classroom, reqErr := requireTeacher(s, teacherID, input.ClassroomID)
		if reqErr != nil {
			return reqErr
		}

		assignment := &entity.Assignment{
			ID:          uuid.New(),
			ClassroomID: classroom.ID,
			Title:       input.Title,
			Description: input.Description,
			LessonID:    input.LessonID,
			GameID:      input.GameID,
			Rubric:      slices.Clone(input.Rubric),
			DueAt:       input.DueAt,
			CreatedAt:   srv.store.Now(),
		}
		s.Assignments[assignment.ID] = assignment
		created = assignment

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Assignment creation rejected", slog.Any("teacherID", teacherID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create assignment")
	}

	return created, nil
}

// ListAssignments returns a classroom's assignments, newest first.
func (srv *classroomService) ListAssignments(_ context.Context, classroomID uuid.UUID) ([]*entity.Assignment, error) {
	var assignments []*entity.Assignment
	var err error
	srv.store.View(func(s *store.State) {
		if _, ok := s.Classrooms[classroomID]; !ok {
			err = domainerrors.ErrClassroomNotFound

			return
		}

		for _, assignment := range s.Assignments {
			if assignment.ClassroomID != classroomID {
				continue
			}
			copied := *assignment
			copied.Rubric = slices.Clone(assignment.Rubric)
			assignments = append(assignments, &copied)
		}
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list assignments")
	}

	slices.SortFunc(assignments, func(a, b *entity.Assignment) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return assignments, nil
}

// DeleteAssignment removes an assignment and its submissions.
func (srv *classroomService) DeleteAssignment(ctx context.Context, teacherID, assignmentID uuid.UUID) error {
	err := srv.store.Update(func(s *store.State) error {
		assignment, ok := s.Assignments[assignmentID]
		if !ok {
			return domainerrors.ErrNotFound.WrapMessage("no such assignment")
		}
		if _, reqErr := requireTeacher(s, teacherID, assignment.ClassroomID); reqErr != nil {
			return reqErr
		}

		delete(s.Assignments, assignmentID)
		for submissionID, submission := range s.Submissions {
			if submission.AssignmentID == assignmentID {
				delete(s.Submissions, submissionID)
			}
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete assignment")
	}

	return nil
}

// Submit records a student's answer. A student submits at most once per
// assignment; re-submitting replaces the ungraded answer.
func (srv *classroomService) Submit(ctx context.Context, studentID uuid.UUID, input *usecase.SubmissionInput) (*entity.Submission, error) {
	var submitted *entity.Submission
	err := srv.store.Update(func(s *store.State) error {
		if _, findErr := findUser(s, studentID); findErr != nil {
			return findErr
		}

		assignment, ok := s.Assignments[input.AssignmentID]
		if !ok {
			return domainerrors.ErrNotFound.WrapMessage("no such assignment")
		}

		classroom, ok := s.Classrooms[assignment.ClassroomID]
		if !ok || !slices.Contains(classroom.StudentIDs, studentID) {
			return domainerrors.ErrForbidden.WrapMessage("student is not enrolled in this classroom")
		}

		now := srv.store.Now()
		for _, existing := range s.Submissions {
			if existing.AssignmentID != input.AssignmentID || existing.StudentID != studentID {
				continue
			}
			if existing.Score != nil {
				return domainerrors.ErrConflict.WrapMessage("submission already graded")
			}

			existing.Content = input.Content
			existing.SubmittedAt = now
			copied := *existing
			submitted = &copied

			return nil
		}

		submission := &entity.Submission{
			ID:           uuid.New(),
			AssignmentID: input.AssignmentID,
			StudentID:    studentID,
			Content:      input.Content,
			SubmittedAt:  now,
		}
		s.Submissions[submission.ID] = submission
		copied := *submission
		submitted = &copied

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Submission rejected", slog.Any("studentID", studentID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to submit assignment")
	}

	return submitted, nil
}

// ListSubmissions returns an assignment's submissions to its teacher.
func (srv *classroomService) ListSubmissions(_ context.Context, teacherID, assignmentID uuid.UUID) ([]*entity.Submission, error) {
	var submissions []*entity.Submission
	var err error
	srv.store.View(func(s *store.State) {
		assignment, ok := s.Assignments[assignmentID]
		if !ok {
			err = domainerrors.ErrNotFound.WrapMessage("no such assignment")

			return
		}
		if _, err = requireTeacher(s, teacherID, assignment.ClassroomID); err != nil {
			return
		}

		for _, submission := range s.Submissions {
			if submission.AssignmentID != assignmentID {
				continue
			}
			copied := *submission
			submissions = append(submissions, &copied)
		}
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list submissions")
	}

	slices.SortFunc(submissions, func(a, b *entity.Submission) int {
		return a.SubmittedAt.Compare(b.SubmittedAt)
	})

	return submissions, nil
}

// Grade scores a submission against the assignment's rubric.
func (srv *classroomService) Grade(ctx context.Context, teacherID uuid.UUID, input *usecase.GradeInput) (*entity.Submission, error) {
	var graded *entity.Submission
	err := srv.store.Update(func(s *store.State) error {
		submission, ok := s.Submissions[input.SubmissionID]
		if !ok {
			return domainerrors.ErrNotFound.WrapMessage("no such submission")
		}

		assignment, ok := s.Assignments[submission.AssignmentID]
		if !ok {
			return domainerrors.ErrNotFound.WrapMessage("submission's assignment is gone")
		}
		if _, reqErr := requireTeacher(s, teacherID, assignment.ClassroomID); reqErr != nil {
			return reqErr
		}

		maxPoints := 0
		for _, criterion := range assignment.Rubric {
			maxPoints += criterion.MaxPoints
		}
		if input.Score < 0 || (maxPoints > 0 && input.Score > maxPoints) {
			return domainerrors.ErrValidationFailed.WrapMessage("score is outside the rubric range")
		}

		score := input.Score
		submission.Score = &score
		submission.Feedback = input.Feedback
		submission.GradedAt = srv.store.Now()
		copied := *submission
		graded = &copied

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Grading rejected", slog.Any("teacherID", teacherID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to grade submission")
	}

	return graded, nil
}
