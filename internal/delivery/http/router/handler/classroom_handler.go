package handler

import (
	"log/slog"
	"net/http"
	"time"

	"tycoon/internal/delivery/http/middleware"
	"tycoon/internal/delivery/http/response"
	"tycoon/internal/domain/entity"
	"tycoon/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ClassroomHandler holds dependencies for classroom management handlers.
type ClassroomHandler struct {
	uc     usecase.ClassroomUsecase
	logger *slog.Logger
}

// NewClassroomHandler is the constructor for ClassroomHandler, injected by Fx.
func NewClassroomHandler(uc usecase.ClassroomUsecase, logger *slog.Logger) *ClassroomHandler {
	return &ClassroomHandler{
		uc:     uc,
		logger: logger,
	}
}

// pathUUID parses a route parameter as a UUID.
func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}

	return id, nil
}

type classroomRequest struct {
	Name string `json:"name" validate:"required"`
}

// Create opens a classroom owned by the caller.
func (h *ClassroomHandler) Create(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req classroomRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid classroom input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	classroom, err := h.uc.Create(c.Request().Context(), userID, &usecase.CreateClassroomInput{Name: req.Name})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, classroom, "Classroom created successfully")
}

// Get returns one classroom.
func (h *ClassroomHandler) Get(c echo.Context) error {
	classroomID, err := pathUUID(c, "classroomID")
	if err != nil {
		return err
	}

	classroom, err := h.uc.Get(c.Request().Context(), classroomID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, classroom, "Classroom retrieved successfully")
}

// ListMine returns the classrooms the caller owns.
func (h *ClassroomHandler) ListMine(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	classrooms, err := h.uc.ListByTeacher(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, classrooms, "Classrooms retrieved successfully")
}

// Rename changes a classroom's display name.
func (h *ClassroomHandler) Rename(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	classroomID, err := pathUUID(c, "classroomID")
	if err != nil {
		return err
	}

	var req classroomRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid classroom input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	classroom, err := h.uc.Rename(c.Request().Context(), userID, classroomID, req.Name)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, classroom, "Classroom renamed successfully")
}

// Delete removes a classroom and its groups, assignments and submissions.
func (h *ClassroomHandler) Delete(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	classroomID, err := pathUUID(c, "classroomID")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), userID, classroomID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Classroom deleted successfully")
}

type joinRequest struct {
	JoinCode string `json:"join_code" validate:"required"`
}

// Join enrolls the caller into the classroom matching the join code.
func (h *ClassroomHandler) Join(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req joinRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid join input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	classroom, err := h.uc.Join(c.Request().Context(), userID, req.JoinCode)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, classroom, "Joined classroom successfully")
}

// JoinQR streams the classroom's join code as a PNG QR image.
func (h *ClassroomHandler) JoinQR(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	classroomID, err := pathUUID(c, "classroomID")
	if err != nil {
		return err
	}

	png, err := h.uc.JoinQR(c.Request().Context(), userID, classroomID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

type groupRequest struct {
	Name       string   `json:"name" validate:"required"`
	StudentIDs []string `json:"student_ids"`
}

// CreateGroup adds a named subset of a classroom's students.
func (h *ClassroomHandler) CreateGroup(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	classroomID, err := pathUUID(c, "classroomID")
	if err != nil {
		return err
	}

	var req groupRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid group input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	studentIDs := make([]uuid.UUID, 0, len(req.StudentIDs))
	for _, raw := range req.StudentIDs {
		studentID, parseErr := uuid.Parse(raw)
		if parseErr != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid student id: "+raw)
		}
		studentIDs = append(studentIDs, studentID)
	}

	group, err := h.uc.CreateGroup(c.Request().Context(), userID, &usecase.GroupInput{
		ClassroomID: classroomID,
		Name:        req.Name,
		StudentIDs:  studentIDs,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, group, "Group created successfully")
}

// DeleteGroup removes a student group.
func (h *ClassroomHandler) DeleteGroup(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	groupID, err := pathUUID(c, "groupID")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteGroup(c.Request().Context(), userID, groupID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Group deleted successfully")
}

type assignmentRequest struct {
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description"`
	LessonID    string          `json:"lesson_id"`
	GameID      string          `json:"game_id"`
	Rubric      []entity.Rubric `json:"rubric"`
	DueAt       time.Time       `json:"due_at"`
}

// CreateAssignment hands a task to a classroom.
func (h *ClassroomHandler) CreateAssignment(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	classroomID, err := pathUUID(c, "classroomID")
	if err != nil {
		return err
	}

	var req assignmentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid assignment input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	assignment, err := h.uc.CreateAssignment(c.Request().Context(), userID, &usecase.AssignmentInput{
		ClassroomID: classroomID,
		Title:       req.Title,
		Description: req.Description,
		LessonID:    req.LessonID,
		GameID:      req.GameID,
		Rubric:      req.Rubric,
		DueAt:       req.DueAt,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, assignment, "Assignment created successfully")
}

// ListAssignments returns a classroom's assignments, newest first.
func (h *ClassroomHandler) ListAssignments(c echo.Context) error {
	classroomID, err := pathUUID(c, "classroomID")
	if err != nil {
		return err
	}

	assignments, err := h.uc.ListAssignments(c.Request().Context(), classroomID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, assignments, "Assignments retrieved successfully")
}

// DeleteAssignment removes an assignment and its submissions.
func (h *ClassroomHandler) DeleteAssignment(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	assignmentID, err := pathUUID(c, "assignmentID")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteAssignment(c.Request().Context(), userID, assignmentID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Assignment deleted successfully")
}

type submissionRequest struct {
	Content string `json:"content" validate:"required"`
}

// Submit records the caller's answer to an assignment.
func (h *ClassroomHandler) Submit(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	assignmentID, err := pathUUID(c, "assignmentID")
	if err != nil {
		return err
	}

	var req submissionRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid submission input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	submission, err := h.uc.Submit(c.Request().Context(), userID, &usecase.SubmissionInput{
		AssignmentID: assignmentID,
		Content:      req.Content,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, submission, "Submission recorded successfully")
}

// ListSubmissions returns an assignment's submissions to its teacher.
func (h *ClassroomHandler) ListSubmissions(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	assignmentID, err := pathUUID(c, "assignmentID")
	if err != nil {
		return err
	}

	submissions, err := h.uc.ListSubmissions(c.Request().Context(), userID, assignmentID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, submissions, "Submissions retrieved successfully")
}

type gradeRequest struct {
	Score    int    `json:"score" validate:"gte=0"`
	Feedback string `json:"feedback"`
}

// Grade scores a submission against the assignment's rubric.
func (h *ClassroomHandler) Grade(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	submissionID, err := pathUUID(c, "submissionID")
	if err != nil {
		return err
	}

	var req gradeRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid grade input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	submission, err := h.uc.Grade(c.Request().Context(), userID, &usecase.GradeInput{
		SubmissionID: submissionID,
		Score:        req.Score,
		Feedback:     req.Feedback,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, submission, "Submission graded successfully")
}
