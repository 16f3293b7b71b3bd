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

// PlayerHandler bundles the per-account gameplay surfaces: energy,
// one-time rewards and the subscription tier.
type PlayerHandler struct {
	energy       usecase.EnergyUsecase
	progression  usecase.ProgressionUsecase
	subscription usecase.SubscriptionUsecase
	logger       *slog.Logger
}

// NewPlayerHandler is the constructor for PlayerHandler, injected by Fx.
func NewPlayerHandler(
	energy usecase.EnergyUsecase,
	progression usecase.ProgressionUsecase,
	subscription usecase.SubscriptionUsecase,
	logger *slog.Logger,
) *PlayerHandler {
	return &PlayerHandler{
		energy:       energy,
		progression:  progression,
		subscription: subscription,
		logger:       logger,
	}
}

// EnergyStatus returns the caller's energy meter after lazy regeneration.
func (h *PlayerHandler) EnergyStatus(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	status, err := h.energy.Status(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, status, "Energy status retrieved successfully")
}

// ConsumeEnergy spends one energy point.
func (h *PlayerHandler) ConsumeEnergy(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	status, err := h.energy.Consume(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, status, "Energy consumed successfully")
}

// CompleteLesson grants a lesson's one-time rewards.
func (h *PlayerHandler) CompleteLesson(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	reward, err := h.progression.CompleteLesson(c.Request().Context(), userID, c.Param("lessonID"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, reward, "Lesson completed successfully")
}

// ReadBook grants a book's one-time coin reward.
func (h *PlayerHandler) ReadBook(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	reward, err := h.progression.ReadBook(c.Request().Context(), userID, c.Param("bookID"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, reward, "Book reward granted successfully")
}

// DismissLevelUp clears the one-shot level-up notification.
func (h *PlayerHandler) DismissLevelUp(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	if err := h.progression.DismissLevelUp(c.Request().Context(), userID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Level-up notification dismissed")
}

// GetSubscription returns the caller's tier and entitlements.
func (h *PlayerHandler) GetSubscription(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	current, err := h.subscription.Current(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, current, "Subscription retrieved successfully")
}

type changeTierRequest struct {
	Tier string `json:"tier" validate:"required"`
}

// ChangeSubscription replaces the caller's subscription tier.
func (h *PlayerHandler) ChangeSubscription(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req changeTierRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid subscription input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	changed, err := h.subscription.ChangeTier(c.Request().Context(), userID, entity.Tier(req.Tier))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, changed, "Subscription changed successfully")
}
