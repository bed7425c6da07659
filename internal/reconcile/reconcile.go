// Package reconcile sweeps the usage ledger for inconsistencies that the
// request path cannot rule out on its own: usage records pointing at
// deleted inventory items, and item quantities that went negative. It only
// reports; repairs stay a manual decision.
package reconcile

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rems1212/Employee-Canteen/internal/model"
	"github.com/rems1212/Employee-Canteen/prometheus"
)

// Repository is the read-only persistence surface of the checker.
type Repository interface {
	// OrphanUsageRecords returns usage records whose inventory item no
	// longer exists.
	OrphanUsageRecords(ctx context.Context) ([]model.UsageRecord, error)

	// NegativeQuantityItems returns items whose quantity is below zero.
	NegativeQuantityItems(ctx context.Context) ([]model.Inventory, error)
}

// Report summarizes one reconciliation run.
type Report struct {
	OrphanUsageRecords    int
	NegativeQuantityItems int
}

// Clean reports whether the run found nothing to flag.
func (r Report) Clean() bool {
	return r.OrphanUsageRecords == 0 && r.NegativeQuantityItems == 0
}

// Checker runs the consistency sweep.
type Checker struct {
	repo Repository
	log  *zap.Logger
}

// NewChecker creates a checker.
func NewChecker(repo Repository, log *zap.Logger) *Checker {
	return &Checker{repo: repo, log: log}
}

// Run executes one sweep, logs every finding and updates the gauges.
func (c *Checker) Run(ctx context.Context) (Report, error) {
	var report Report

	orphans, err := c.repo.OrphanUsageRecords(ctx)
	if err != nil {
		c.log.Error("Reconciliation failed to list orphan usage records", zap.Error(err))
		return report, err
	}
	for _, rec := range orphans {
		c.log.Warn("Usage record references a missing inventory item",
			zap.Uint("usage_record_id", rec.ID),
			zap.Uint("inventory_item_id", rec.InventoryItemID),
			zap.Int("quantity_used", rec.QuantityUsed),
			zap.Time("date_used", rec.DateUsed))
	}
	report.OrphanUsageRecords = len(orphans)

	negatives, err := c.repo.NegativeQuantityItems(ctx)
	if err != nil {
		c.log.Error("Reconciliation failed to list negative stock items", zap.Error(err))
		return report, err
	}
	for _, item := range negatives {
		c.log.Warn("Inventory item has negative quantity",
			zap.Uint("item_id", item.ID),
			zap.String("item_name", item.ItemName),
			zap.Int("quantity", item.Quantity))
	}
	report.NegativeQuantityItems = len(negatives)

	prometheus.OrphanUsageRecordsGauge.Set(float64(report.OrphanUsageRecords))
	prometheus.NegativeStockItemsGauge.Set(float64(report.NegativeQuantityItems))
	prometheus.ReconcileRunsCounter.Inc()
	prometheus.ReconcileLastRunTimestampMs.Set(float64(time.Now().UnixMilli()))

	if report.Clean() {
		c.log.Info("Usage ledger reconciliation clean")
	} else {
		c.log.Warn("Usage ledger reconciliation found inconsistencies",
			zap.Int("orphan_usage_records", report.OrphanUsageRecords),
			zap.Int("negative_quantity_items", report.NegativeQuantityItems))
	}

	return report, nil
}
