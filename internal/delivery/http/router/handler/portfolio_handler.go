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

// PortfolioHandler holds dependencies for idle-income portfolio handlers.
type PortfolioHandler struct {
	uc     usecase.PortfolioUsecase
	logger *slog.Logger
}

// NewPortfolioHandler is the constructor for PortfolioHandler, injected by Fx.
func NewPortfolioHandler(uc usecase.PortfolioUsecase, logger *slog.Logger) *PortfolioHandler {
	return &PortfolioHandler{
		uc:     uc,
		logger: logger,
	}
}

// GetPortfolio returns the caller's holdings and coin balance.
func (h *PortfolioHandler) GetPortfolio(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	portfolio, err := h.uc.Portfolio(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, portfolio, "Portfolio retrieved successfully")
}

// HireManager buys a manager for a business.
func (h *PortfolioHandler) HireManager(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	portfolio, err := h.uc.HireManager(c.Request().Context(), userID, c.Param("businessID"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, portfolio, "Manager hired successfully")
}

// UpgradeManager raises a hired manager's level.
func (h *PortfolioHandler) UpgradeManager(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	portfolio, err := h.uc.UpgradeManager(c.Request().Context(), userID, c.Param("businessID"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, portfolio, "Manager upgraded successfully")
}

// CollectIncome settles accrued idle income across all holdings.
func (h *PortfolioHandler) CollectIncome(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	collected, err := h.uc.CollectIncome(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, collected, "Income collected successfully")
}
