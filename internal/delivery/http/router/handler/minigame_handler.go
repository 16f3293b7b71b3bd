package handler

import (
	"log/slog"
	"net/http"

	"tycoon/internal/delivery/http/middleware"
	"tycoon/internal/delivery/http/response"
	"tycoon/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// MinigameHandler holds dependencies for minigame session handlers.
type MinigameHandler struct {
	uc     usecase.MinigameUsecase
	logger *slog.Logger
}

// NewMinigameHandler is the constructor for MinigameHandler, injected by Fx.
func NewMinigameHandler(uc usecase.MinigameUsecase, logger *slog.Logger) *MinigameHandler {
	return &MinigameHandler{
		uc:     uc,
		logger: logger,
	}
}

type simulateDayRequest struct {
	Sliders map[string]float64 `json:"sliders"`
	Seed    *int64             `json:"seed"`
}

// SimulateDay runs one business day for the caller's save slot.
func (h *MinigameHandler) SimulateDay(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req simulateDayRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid day simulation input")
	}

	output, err := h.uc.SimulateDay(c.Request().Context(), userID, &usecase.SimulateDayInput{
		GameID:  c.Param("gameID"),
		Sliders: req.Sliders,
		Seed:    req.Seed,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Day simulated successfully")
}

type buyUpgradeRequest struct {
	UpgradeID string `json:"upgrade_id" validate:"required"`
}

// BuyUpgrade purchases an upgrade-tree node with in-game funds.
func (h *MinigameHandler) BuyUpgrade(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req buyUpgradeRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid upgrade input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	save, err := h.uc.BuyUpgrade(c.Request().Context(), userID, &usecase.BuyUpgradeInput{
		GameID:    c.Param("gameID"),
		UpgradeID: req.UpgradeID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, save, "Upgrade purchased successfully")
}

type buySuppliesRequest struct {
	ResourceID string `json:"resource_id" validate:"required"`
	Units      int    `json:"units" validate:"required,gt=0"`
}

// BuySupplies restocks a simulation resource with in-game funds.
func (h *MinigameHandler) BuySupplies(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req buySuppliesRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid supplies input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	save, err := h.uc.BuySupplies(c.Request().Context(), userID, &usecase.BuySuppliesInput{
		GameID:     c.Param("gameID"),
		ResourceID: req.ResourceID,
		Units:      req.Units,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, save, "Supplies purchased successfully")
}

// GetSave returns the caller's save slot, initializing a fresh one when
// none exists.
func (h *MinigameHandler) GetSave(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	save, err := h.uc.Save(c.Request().Context(), userID, c.Param("gameID"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, save, "Save slot retrieved successfully")
}

// ResetSave discards the caller's save slot for a game.
func (h *MinigameHandler) ResetSave(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	if err := h.uc.ResetSave(c.Request().Context(), userID, c.Param("gameID")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Save slot reset successfully")
}
