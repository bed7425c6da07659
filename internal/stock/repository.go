package stock

import (
	"context"
	"time"

	"github.com/rems1212/Employee-Canteen/internal/model"
)

// UsageEntry is one row of the usage history view: the append-only usage
// record joined against the item's current name and price. Price changes
// after the usage are reflected here, historical prices are not kept.
type UsageEntry struct {
	UsageRecordID   uint      `json:"id"`
	InventoryItemID uint      `json:"inventoryItemId"`
	ItemName        string    `json:"itemName"`
	Price           float64   `json:"price"`
	QuantityUsed    int       `json:"quantityUsed"`
	DateUsed        time.Time `json:"dateUsed"`
}

// Repository is the persistence surface of the stock ledger.
type Repository interface {
	// FindItem returns the item or ErrItemNotFound.
	FindItem(ctx context.Context, itemID uint) (*model.Inventory, error)

	// ConsumeStock atomically decrements the item's quantity and appends one
	// usage record, both inside a single transaction. The decrement is
	// guarded: it only applies while the stored quantity still covers the
	// request, so two concurrent calls can never over-consume. Returns the
	// updated item, ErrItemNotFound, or ErrInsufficientStock.
	ConsumeStock(ctx context.Context, itemID uint, quantity int, usedAt time.Time) (*model.Inventory, error)

	// UsageHistory returns all usage entries, most recent first.
	UsageHistory(ctx context.Context) ([]UsageEntry, error)
}
