package stock

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/rems1212/Employee-Canteen/internal/model"
)

// GormRepository implements Repository on a gorm connection.
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a gorm-backed stock repository.
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) FindItem(ctx context.Context, itemID uint) (*model.Inventory, error) {
	var item model.Inventory
	err := r.db.WithContext(ctx).First(&item, itemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ConsumeStock runs the decrement and the usage insert in one transaction.
// The UPDATE carries a quantity >= ? guard, so a competing request that
// drained the stock between our read and write simply makes the guard miss
// and the whole transaction rolls back.
func (r *GormRepository) ConsumeStock(ctx context.Context, itemID uint, quantity int, usedAt time.Time) (*model.Inventory, error) {
	var item model.Inventory

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Inventory{}).
			Where("id = ? AND quantity >= ?", itemID, quantity).
			UpdateColumn("quantity", gorm.Expr("quantity - ?", quantity))
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			// Guard missed: either no such item, or not enough stock.
			var count int64
			if err := tx.Model(&model.Inventory{}).Where("id = ?", itemID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrItemNotFound
			}
			return ErrInsufficientStock
		}

		usage := model.UsageRecord{
			InventoryItemID: itemID,
			QuantityUsed:    quantity,
			DateUsed:        usedAt,
		}
		if err := tx.Create(&usage).Error; err != nil {
			return err
		}

		return tx.First(&item, itemID).Error
	})
	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *GormRepository) UsageHistory(ctx context.Context) ([]UsageEntry, error) {
	var entries []UsageEntry
	err := r.db.WithContext(ctx).
		Table("usage_records").
		Select("usage_records.id as usage_record_id, usage_records.inventory_item_id, " +
			"usage_records.quantity_used, usage_records.date_used, " +
			"inventories.item_name, inventories.price").
		Joins("JOIN inventories ON inventories.id = usage_records.inventory_item_id").
		Order("usage_records.date_used desc").
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
