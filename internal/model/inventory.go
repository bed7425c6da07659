package model

import (
	"time"
)

// Inventory represents the current stock of one item in a canteen.
// Quantity never goes below zero; consumption happens through the stock
// ledger's guarded decrement, restocking is a plain field update.
type Inventory struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ItemName  string    `json:"itemName" gorm:"type:varchar(100);index;not null"`
	Quantity  int       `json:"quantity" gorm:"not null;default:0"`
	Price     float64   `json:"price"`
	AddedAt   time.Time `json:"addedAt" gorm:"autoCreateTime"`
	Canteen   Canteen   `json:"canteen" gorm:"type:varchar(20);index;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UsageRecord is one consumption event taken from an inventory item.
// Rows are append-only: created exactly once per successful decrement,
// never updated or deleted.
type UsageRecord struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	InventoryItemID uint      `json:"inventoryItemId" gorm:"index;not null"`
	QuantityUsed    int       `json:"quantityUsed" gorm:"not null"`
	DateUsed        time.Time `json:"dateUsed" gorm:"index;not null"`
}
