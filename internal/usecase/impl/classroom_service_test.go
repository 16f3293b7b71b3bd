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

func newClassroomService() (usecase.ClassroomUsecase, *store.Store, *time.Time) {
	st, now := newTestStore()
	srv := NewClassroomService(ClassroomServiceParams{
		Store: st, QRCode: stubQR{}, Config: testConfig(), Logger: discardLogger(),
	})

	return srv, st, now
}

func seedTeacher(st *store.Store) uuid.UUID {
	return seedUser(st, func(u *entity.User) { u.Role = entity.RoleTeacher })
}

func TestCreateClassroom_TeacherOnly(t *testing.T) {
	srv, st, _ := newClassroomService()
	teacherID := seedTeacher(st)
	kidID := seedUser(st)

	classroom, err := srv.Create(context.Background(), teacherID, &usecase.CreateClassroomInput{Name: "Grade 5 Tycoons"})
	require.NoError(t, err)
	assert.Equal(t, "Grade 5 Tycoons", classroom.Name)
	assert.Len(t, classroom.JoinCode, 6)
	assert.Equal(t, teacherID, classroom.TeacherID)

	_, err = srv.Create(context.Background(), kidID, &usecase.CreateClassroomInput{Name: "Rogue Class"})
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestJoin_ByCodeIsIdempotent(t *testing.T) {
	srv, st, _ := newClassroomService()
	teacherID := seedTeacher(st)
	kidID := seedUser(st)

	classroom, err := srv.Create(context.Background(), teacherID, &usecase.CreateClassroomInput{Name: "Room A"})
	require.NoError(t, err)

	// Codes are case- and whitespace-insensitive on entry.
	joined, err := srv.Join(context.Background(), kidID, "  "+classroom.JoinCode+" ")
	require.NoError(t, err)
	assert.Contains(t, joined.StudentIDs, kidID)

	joined, err = srv.Join(context.Background(), kidID, classroom.JoinCode)
	require.NoError(t, err)
	assert.Len(t, joined.StudentIDs, 1, "joining twice does not duplicate the roster entry")

	_, err = srv.Join(context.Background(), kidID, "ZZZZZZ")
	assert.True(t, errors.Is(err, domainerrors.ErrClassroomNotFound))
}

func TestJoinQR_RendersOwnClassroomOnly(t *testing.T) {
	srv, st, _ := newClassroomService()
	teacherID := seedTeacher(st)
	otherTeacherID := seedTeacher(st)

	classroom, err := srv.Create(context.Background(), teacherID, &usecase.CreateClassroomInput{Name: "Room A"})
	require.NoError(t, err)

	png, err := srv.JoinQR(context.Background(), teacherID, classroom.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("png:"+classroom.JoinCode), png)

	_, err = srv.JoinQR(context.Background(), otherTeacherID, classroom.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestRename_OwnershipEnforced(t *testing.T) {
	srv, st, _ := newClassroomService()
	teacherID := seedTeacher(st)
	otherTeacherID := seedTeacher(st)

	classroom, err := srv.Create(context.Background(), teacherID, &usecase.CreateClassroomInput{Name: "Room A"})
	require.NoError(t, err)

	renamed, err := srv.Rename(context.Background(), teacherID, classroom.ID, "Room B")
	require.NoError(t, err)
	assert.Equal(t, "Room B", renamed.Name)

	_, err = srv.Rename(context.Background(), otherTeacherID, classroom.ID, "Hijacked")
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestListByTeacher_SortedByName(t *testing.T) {
	srv, st, _ := newClassroomService()
	teacherID := seedTeacher(st)
	otherTeacherID := seedTeacher(st)

	for _, name := range []string{"Zebra Class", "Alpha Class"} {
		_, err := srv.Create(context.Background(), teacherID, &usecase.CreateClassroomInput{Name: name})
		require.NoError(t, err)
	}
	_, err := srv.Create(context.Background(), otherTeacherID, &usecase.CreateClassroomInput{Name: "Not Mine"})
	require.NoError(t, err)

	classrooms, err := srv.ListByTeacher(context.Background(), teacherID)
	require.NoError(t, err)
	require.Len(t, classrooms, 2)
	assert.Equal(t, "Alpha Class", classrooms[0].Name)
	assert.Equal(t, "Zebra Class", classrooms[1].Name)
}

func TestCreateGroup_DropsNonEnrolledStudents(t *testing.T) {
	srv, st, _ := newClassroomService()
	teacherID := seedTeacher(st)
	enrolledID := seedUser(st)
	strangerID := seedUser(st)

	classroom, err := srv.Create(context.Background(), teacherID, &usecase.CreateClassroomInput{Name: "Room A"})
	require.NoError(t, err)
	_, err = srv.Join(context.Background(), enrolledID, classroom.JoinCode)
	require.NoError(t, err)

	group, err := srv.CreateGroup(context.Background(), teacherID, &usecase.GroupInput{
		ClassroomID: classroom.ID,
		Name:        "Market Team",
		StudentIDs:  []uuid.UUID{enrolledID, strangerID},
	})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{enrolledID}, group.StudentIDs)

	require.NoError(t, srv.DeleteGroup(context.Background(), teacherID, group.ID))
	err = srv.DeleteGroup(context.Background(), teacherID, group.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestAssignmentLifecycle(t *testing.T) {
	srv, st, now := newClassroomService()
	teacherID := seedTeacher(st)

	classroom, err := srv.Create(context.Background(), teacherID, &usecase.CreateClassroomInput{Name: "Room A"})
	require.NoError(t, err)

	first, err := srv.CreateAssignment(context.Background(), teacherID, &usecase.AssignmentInput{
		ClassroomID: classroom.ID,
		Title:       "Budget Basics",
		LessonID:    "lesson-budgeting",
		DueAt:       testNow.Add(7 * 24 * time.Hour),
	})
	require.NoError(t, err)

	*now = testNow.Add(time.Hour)
	second, err := srv.CreateAssignment(context.Background(), teacherID, &usecase.AssignmentInput{
		ClassroomID: classroom.ID,
		Title:       "Run a Lemonade Day",
		GameID:      "lemonade-stand",
	})
	require.NoError(t, err)

	assignments, err := srv.ListAssignments(context.Background(), classroom.ID)
	require.NoError(t, err)
	require.Len(t, assignments, 2)
	assert.Equal(t, second.ID, assignments[0].ID, "newest first")
	assert.Equal(t, first.ID, assignments[1].ID)

	require.NoError(t, srv.DeleteAssignment(context.Background(), teacherID, first.ID))
	assignments, err = srv.ListAssignments(context.Background(), classroom.ID)
	require.NoError(t, err)
	assert.Len(t, assignments, 1)
}

func TestSubmitAndGrade(t *testing.T) {
	srv, st, now := newClassroomService()
	teacherID := seedTeacher(st)
	kidID := seedUser(st)
	strangerID := seedUser(st)

	classroom, err := srv.Create(context.Background(), teacherID, &usecase.CreateClassroomInput{Name: "Room A"})
	require.NoError(t, err)
	_, err = srv.Join(context.Background(), kidID, classroom.JoinCode)
	require.NoError(t, err)

	assignment, err := srv.CreateAssignment(context.Background(), teacherID, &usecase.AssignmentInput{
		ClassroomID: classroom.ID,
		Title:       "Budget Basics",
		Rubric: []entity.Rubric{
			{Criterion: "Effort", MaxPoints: 10},
			{Criterion: "Accuracy", MaxPoints: 15},
		},
	})
	require.NoError(t, err)

	_, err = srv.Submit(context.Background(), strangerID, &usecase.SubmissionInput{
		AssignmentID: assignment.ID, Content: "let me in",
	})
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden), "only enrolled students submit")

	submission, err := srv.Submit(context.Background(), kidID, &usecase.SubmissionInput{
		AssignmentID: assignment.ID, Content: "first draft",
	})
	require.NoError(t, err)
	assert.Nil(t, submission.Score)

	// Ungraded re-submissions replace the answer in place.
	*now = testNow.Add(30 * time.Minute)
	revised, err := srv.Submit(context.Background(), kidID, &usecase.SubmissionInput{
		AssignmentID: assignment.ID, Content: "better draft",
	})
	require.NoError(t, err)
	assert.Equal(t, submission.ID, revised.ID)
	assert.Equal(t, "better draft", revised.Content)

	_, err = srv.Grade(context.Background(), teacherID, &usecase.GradeInput{
		SubmissionID: submission.ID, Score: 26,
	})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed), "score above the 25-point rubric")

	graded, err := srv.Grade(context.Background(), teacherID, &usecase.GradeInput{
		SubmissionID: submission.ID, Score: 21, Feedback: "Nice work",
	})
	require.NoError(t, err)
	require.NotNil(t, graded.Score)
	assert.Equal(t, 21, *graded.Score)
	assert.Equal(t, "Nice work", graded.Feedback)
	assert.False(t, graded.GradedAt.IsZero())

	_, err = srv.Submit(context.Background(), kidID, &usecase.SubmissionInput{
		AssignmentID: assignment.ID, Content: "too late",
	})
	assert.True(t, errors.Is(err, domainerrors.ErrConflict), "graded submissions are locked")

	submissions, err := srv.ListSubmissions(context.Background(), teacherID, assignment.ID)
	require.NoError(t, err)
	assert.Len(t, submissions, 1)
}

func TestDeleteClassroom_CascadesOwnedRecords(t *testing.T) {
	srv, st, _ := newClassroomService()
	teacherID := seedTeacher(st)
	kidID := seedUser(st)

	classroom, err := srv.Create(context.Background(), teacherID, &usecase.CreateClassroomInput{Name: "Room A"})
	require.NoError(t, err)
	_, err = srv.Join(context.Background(), kidID, classroom.JoinCode)
	require.NoError(t, err)

	group, err := srv.CreateGroup(context.Background(), teacherID, &usecase.GroupInput{
		ClassroomID: classroom.ID, Name: "Team", StudentIDs: []uuid.UUID{kidID},
	})
	require.NoError(t, err)
	assignment, err := srv.CreateAssignment(context.Background(), teacherID, &usecase.AssignmentInput{
		ClassroomID: classroom.ID, Title: "Task",
	})
	require.NoError(t, err)
	_, err = srv.Submit(context.Background(), kidID, &usecase.SubmissionInput{
		AssignmentID: assignment.ID, Content: "done",
	})
	require.NoError(t, err)

	require.NoError(t, srv.Delete(context.Background(), teacherID, classroom.ID))

	st.View(func(s *store.State) {
		assert.NotContains(t, s.Classrooms, classroom.ID)
		assert.NotContains(t, s.StudentGroups, group.ID)
		assert.NotContains(t, s.Assignments, assignment.ID)
		assert.Empty(t, s.Submissions)
	})

	_, err = srv.Get(context.Background(), classroom.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrClassroomNotFound))
}
