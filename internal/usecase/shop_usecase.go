package usecase

import (
	"context"

	"tycoon/internal/domain/entity"

	"github.com/google/uuid"
)

// CatalogOutput bundles the static reference data the shop UI renders.
type CatalogOutput struct {
	Items      []entity.ShopItem `json:"items"`
	Skills     []entity.Skill    `json:"skills"`
	HQLevels   []entity.HQLevel  `json:"hq_levels"`
	Businesses []entity.Business `json:"businesses"`
}

// PurchaseOutput reports the coin balance after a successful purchase.
type PurchaseOutput struct {
	Cost     int `json:"cost"` // Effective cost after the account's cost modifier.
	BizCoins int `json:"biz_coins"`
}

// ShopUsecase defines the interface for catalog purchases and equipment.
type ShopUsecase interface {
	Catalog(ctx context.Context) *CatalogOutput

	// BuyItem purchases a shop item. Unique-class items can be owned at
	// most once; costs never take the balance negative.
	BuyItem(ctx context.Context, userID uuid.UUID, itemID string) (*PurchaseOutput, error)

	// EquipItem equips an owned, slotted item, replacing whatever occupied
	// its slot.
	EquipItem(ctx context.Context, userID uuid.UUID, itemID string) error

	// UnequipItem removes an equipped item.
	UnequipItem(ctx context.Context, userID uuid.UUID, itemID string) error

	// UnlockSkill purchases a skill-tree node once per account.
	UnlockSkill(ctx context.Context, userID uuid.UUID, skillID string) (*PurchaseOutput, error)

	// UpgradeHQ moves the headquarters to a strictly higher rank.
	UpgradeHQ(ctx context.Context, userID uuid.UUID, hqID string) (*PurchaseOutput, error)
}
