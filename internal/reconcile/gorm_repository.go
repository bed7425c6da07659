package reconcile

import (
	"context"

	"gorm.io/gorm"

	"github.com/rems1212/Employee-Canteen/internal/model"
)

// GormRepository implements Repository on a gorm connection.
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a gorm-backed reconciliation repository.
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) OrphanUsageRecords(ctx context.Context) ([]model.UsageRecord, error) {
	var records []model.UsageRecord
	err := r.db.WithContext(ctx).
		Table("usage_records").
		Joins("LEFT JOIN inventories ON inventories.id = usage_records.inventory_item_id").
		Where("inventories.id IS NULL").
		Select("usage_records.*").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *GormRepository) NegativeQuantityItems(ctx context.Context) ([]model.Inventory, error) {
	var items []model.Inventory
	err := r.db.WithContext(ctx).
		Where("quantity < 0").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
