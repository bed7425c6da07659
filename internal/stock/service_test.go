package stock

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/rems1212/Employee-Canteen/internal/model"
)

type stubClock struct {
	now time.Time
}

func (s *stubClock) Now() time.Time {
	return s.now
}

func (s *stubClock) advance(d time.Duration) {
	s.now = s.now.Add(d)
}

type fakeRepo struct {
	items    map[uint]*model.Inventory
	usages   []model.UsageRecord
	sequence uint
}

func newFakeRepo(items ...*model.Inventory) *fakeRepo {
	r := &fakeRepo{items: make(map[uint]*model.Inventory)}
	for _, item := range items {
		r.items[item.ID] = item
	}
	return r
}

func (r *fakeRepo) FindItem(_ context.Context, itemID uint) (*model.Inventory, error) {
	item, ok := r.items[itemID]
	if !ok {
		return nil, ErrItemNotFound
	}
	clone := *item
	return &clone, nil
}

func (r *fakeRepo) ConsumeStock(_ context.Context, itemID uint, quantity int, usedAt time.Time) (*model.Inventory, error) {
	item, ok := r.items[itemID]
	if !ok {
		return nil, ErrItemNotFound
	}
	if item.Quantity < quantity {
		return nil, ErrInsufficientStock
	}
	item.Quantity -= quantity
	r.sequence++
	r.usages = append(r.usages, model.UsageRecord{
		ID:              r.sequence,
		InventoryItemID: itemID,
		QuantityUsed:    quantity,
		DateUsed:        usedAt,
	})
	clone := *item
	return &clone, nil
}

func (r *fakeRepo) UsageHistory(_ context.Context) ([]UsageEntry, error) {
	entries := make([]UsageEntry, 0, len(r.usages))
	for _, usage := range r.usages {
		item, ok := r.items[usage.InventoryItemID]
		if !ok {
			continue
		}
		entries = append(entries, UsageEntry{
			UsageRecordID:   usage.ID,
			InventoryItemID: usage.InventoryItemID,
			ItemName:        item.ItemName,
			Price:           item.Price,
			QuantityUsed:    usage.QuantityUsed,
			DateUsed:        usage.DateUsed,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].DateUsed.After(entries[j].DateUsed)
	})
	return entries, nil
}

func TestUseStockDecrementsAndRecords(t *testing.T) {
	repo := newFakeRepo(&model.Inventory{ID: 1, ItemName: "Rice", Quantity: 50, Price: 42.5})
	svc := NewService(repo)

	item, err := svc.UseStock(context.Background(), 1, 20)
	if err != nil {
		t.Fatalf("UseStock() error = %v", err)
	}
	if item.Quantity != 30 {
		t.Errorf("quantity after use = %d, want 30", item.Quantity)
	}
	if len(repo.usages) != 1 {
		t.Fatalf("recorded %d usage records, want 1", len(repo.usages))
	}
	if repo.usages[0].QuantityUsed != 20 || repo.usages[0].InventoryItemID != 1 {
		t.Errorf("usage record = %+v, want 20 units of item 1", repo.usages[0])
	}
}

func TestUseStockInsufficientLeavesStateUntouched(t *testing.T) {
	repo := newFakeRepo(&model.Inventory{ID: 1, ItemName: "Rice", Quantity: 30})
	svc := NewService(repo)

	_, err := svc.UseStock(context.Background(), 1, 40)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("UseStock() error = %v, want ErrInsufficientStock", err)
	}
	// The whole request is rejected: no partial decrement, no usage record.
	if repo.items[1].Quantity != 30 {
		t.Errorf("quantity after rejected use = %d, want 30", repo.items[1].Quantity)
	}
	if len(repo.usages) != 0 {
		t.Errorf("rejected use left %d usage records, want 0", len(repo.usages))
	}
}

func TestUseStockExactQuantityDrainsToZero(t *testing.T) {
	repo := newFakeRepo(&model.Inventory{ID: 1, ItemName: "Dal", Quantity: 7})
	svc := NewService(repo)

	item, err := svc.UseStock(context.Background(), 1, 7)
	if err != nil {
		t.Fatalf("UseStock() error = %v", err)
	}
	if item.Quantity != 0 {
		t.Errorf("quantity = %d, want 0", item.Quantity)
	}

	if _, err := svc.UseStock(context.Background(), 1, 1); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("UseStock() on empty item error = %v, want ErrInsufficientStock", err)
	}
}

func TestUseStockValidation(t *testing.T) {
	repo := newFakeRepo(&model.Inventory{ID: 1, ItemName: "Rice", Quantity: 50})
	svc := NewService(repo)
	ctx := context.Background()

	tests := []struct {
		name     string
		itemID   uint
		quantity int
		wantErr  error
	}{
		{name: "zero quantity", itemID: 1, quantity: 0, wantErr: ErrInvalidQuantity},
		{name: "negative quantity", itemID: 1, quantity: -5, wantErr: ErrInvalidQuantity},
		{name: "missing item id", itemID: 0, quantity: 5, wantErr: ErrItemNotFound},
		{name: "unknown item", itemID: 99, quantity: 5, wantErr: ErrItemNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UseStock(ctx, tt.itemID, tt.quantity)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("UseStock(%d, %d) error = %v, want %v", tt.itemID, tt.quantity, err, tt.wantErr)
			}
			if repo.items[1].Quantity != 50 {
				t.Errorf("rejected request changed stock to %d", repo.items[1].Quantity)
			}
			if len(repo.usages) != 0 {
				t.Errorf("rejected request recorded %d usages", len(repo.usages))
			}
		})
	}
}

func TestUsageHistoryMostRecentFirst(t *testing.T) {
	repo := newFakeRepo(
		&model.Inventory{ID: 1, ItemName: "Rice", Quantity: 100, Price: 42.5},
		&model.Inventory{ID: 2, ItemName: "Oil", Quantity: 100, Price: 180},
	)
	clock := &stubClock{now: time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)}
	svc := NewServiceWithClock(repo, clock)
	ctx := context.Background()

	uses := []struct {
		itemID   uint
		quantity int
	}{
		{1, 10},
		{2, 3},
		{1, 5},
	}
	for _, u := range uses {
		if _, err := svc.UseStock(ctx, u.itemID, u.quantity); err != nil {
			t.Fatalf("UseStock(%d, %d) error = %v", u.itemID, u.quantity, err)
		}
		clock.advance(time.Hour)
	}

	entries, err := svc.UsageHistory(ctx)
	if err != nil {
		t.Fatalf("UsageHistory() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("history has %d entries, want 3", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].DateUsed.After(entries[i-1].DateUsed) {
			t.Fatalf("history not ordered most recent first: %v before %v", entries[i-1].DateUsed, entries[i].DateUsed)
		}
	}
	if entries[0].ItemName != "Rice" || entries[0].QuantityUsed != 5 {
		t.Errorf("latest entry = %s/%d, want Rice/5", entries[0].ItemName, entries[0].QuantityUsed)
	}
	if entries[0].Price != 42.5 {
		t.Errorf("entry price = %v, want the item's current price 42.5", entries[0].Price)
	}
}
