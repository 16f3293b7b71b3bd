package handler

import (
	"log/slog"
	"net/http"

	"tycoon/internal/delivery/http/middleware"
	"tycoon/internal/delivery/http/response"
	"tycoon/internal/domain/entity"
	"tycoon/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ContentHandler holds dependencies for CMS content handlers. Reads are
// open to any authenticated account; writes are routed through the admin
// role gate.
type ContentHandler struct {
	uc     usecase.ContentUsecase
	logger *slog.Logger
}

// NewContentHandler is the constructor for ContentHandler, injected by Fx.
func NewContentHandler(uc usecase.ContentUsecase, logger *slog.Logger) *ContentHandler {
	return &ContentHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListLessons returns all lessons.
func (h *ContentHandler) ListLessons(c echo.Context) error {
	lessons, err := h.uc.ListLessons(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, lessons, "Lessons retrieved successfully")
}

// GetLesson returns one lesson.
func (h *ContentHandler) GetLesson(c echo.Context) error {
	lesson, err := h.uc.GetLesson(c.Request().Context(), c.Param("lessonID"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, lesson, "Lesson retrieved successfully")
}

type lessonRequest struct {
	Title      string `json:"title" validate:"required"`
	Body       string `json:"body"`
	XPReward   int    `json:"xp_reward" validate:"gte=0"`
	CoinReward int    `json:"coin_reward" validate:"gte=0"`
	Tier       string `json:"tier"`
}

// UpsertLesson creates or replaces a lesson.
func (h *ContentHandler) UpsertLesson(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req lessonRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid lesson input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	lesson, err := h.uc.UpsertLesson(c.Request().Context(), userID, &usecase.LessonInput{
		ID:         c.Param("lessonID"),
		Title:      req.Title,
		Body:       req.Body,
		XPReward:   req.XPReward,
		CoinReward: req.CoinReward,
		Tier:       entity.Tier(req.Tier),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, lesson, "Lesson saved successfully")
}

// DeleteLesson removes a lesson.
func (h *ContentHandler) DeleteLesson(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	if err := h.uc.DeleteLesson(c.Request().Context(), userID, c.Param("lessonID")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Lesson deleted successfully")
}

// ListBooks returns all library books.
func (h *ContentHandler) ListBooks(c echo.Context) error {
	books, err := h.uc.ListBooks(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, books, "Books retrieved successfully")
}

type bookRequest struct {
	Title      string `json:"title" validate:"required"`
	Author     string `json:"author"`
	CoinReward int    `json:"coin_reward" validate:"gte=0"`
}

// UpsertBook creates or replaces a library book.
func (h *ContentHandler) UpsertBook(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid book input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	book, err := h.uc.UpsertBook(c.Request().Context(), userID, &usecase.BookInput{
		ID:         c.Param("bookID"),
		Title:      req.Title,
		Author:     req.Author,
		CoinReward: req.CoinReward,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, book, "Book saved successfully")
}

// DeleteBook removes a library book.
func (h *ContentHandler) DeleteBook(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	if err := h.uc.DeleteBook(c.Request().Context(), userID, c.Param("bookID")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Book deleted successfully")
}

// ListSimulations returns built-in and admin-authored minigame definitions.
func (h *ContentHandler) ListSimulations(c echo.Context) error {
	sims, err := h.uc.ListSimulations(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, sims, "Simulations retrieved successfully")
}

// UpsertSimulation creates or replaces an admin-authored business sim.
func (h *ContentHandler) UpsertSimulation(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var definition entity.BusinessSim
	if err := c.Bind(&definition); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid simulation input")
	}
	definition.ID = c.Param("simID")

	sim, err := h.uc.UpsertSimulation(c.Request().Context(), userID, &usecase.SimulationInput{
		Definition: definition,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, sim, "Simulation saved successfully")
}

// DeleteSimulation removes an admin-authored simulation.
func (h *ContentHandler) DeleteSimulation(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	if err := h.uc.DeleteSimulation(c.Request().Context(), userID, c.Param("simID")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Simulation deleted successfully")
}
