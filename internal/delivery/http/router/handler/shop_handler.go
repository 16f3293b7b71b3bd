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

// ShopHandler holds dependencies for catalog and equipment handlers.
type ShopHandler struct {
	uc     usecase.ShopUsecase
	logger *slog.Logger
}

// NewShopHandler is the constructor for ShopHandler, injected by Fx.
func NewShopHandler(uc usecase.ShopUsecase, logger *slog.Logger) *ShopHandler {
	return &ShopHandler{
		uc:     uc,
		logger: logger,
	}
}

// Catalog returns the static shop, skill, HQ and business reference data.
func (h *ShopHandler) Catalog(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.uc.Catalog(c.Request().Context()), "Catalog retrieved successfully")
}

// BuyItem purchases a shop item with bizCoins.
func (h *ShopHandler) BuyItem(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	purchase, err := h.uc.BuyItem(c.Request().Context(), userID, c.Param("itemID"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, purchase, "Item purchased successfully")
}

// EquipItem equips an owned, slotted item.
func (h *ShopHandler) EquipItem(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	if err := h.uc.EquipItem(c.Request().Context(), userID, c.Param("itemID")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Item equipped successfully")
}

// UnequipItem removes an equipped item.
func (h *ShopHandler) UnequipItem(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	if err := h.uc.UnequipItem(c.Request().Context(), userID, c.Param("itemID")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Item unequipped successfully")
}

// UnlockSkill purchases a skill-tree node.
func (h *ShopHandler) UnlockSkill(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	purchase, err := h.uc.UnlockSkill(c.Request().Context(), userID, c.Param("skillID"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, purchase, "Skill unlocked successfully")
}

// UpgradeHQ moves the headquarters to a higher rank.
func (h *ShopHandler) UpgradeHQ(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	purchase, err := h.uc.UpgradeHQ(c.Request().Context(), userID, c.Param("hqID"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, purchase, "Headquarters upgraded successfully")
}
