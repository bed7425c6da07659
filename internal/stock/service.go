package stock

import (
	"context"
	"time"

	"github.com/rems1212/Employee-Canteen/internal/model"
)

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// UseCase is the public surface of the inventory stock ledger.
type UseCase interface {
	UseStock(ctx context.Context, itemID uint, quantityUsed int) (*model.Inventory, error)
	UsageHistory(ctx context.Context) ([]UsageEntry, error)
}

// Service implements the stock ledger over a Repository.
type Service struct {
	repo  Repository
	clock Clock
}

// NewService creates a stock ledger service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: realClock{}}
}

// NewServiceWithClock creates a service with an explicit clock.
func NewServiceWithClock(repo Repository, clock Clock) *Service {
	return &Service{repo: repo, clock: clock}
}

// UseStock consumes quantityUsed units of the item. A request exceeding the
// current stock is rejected whole with ErrInsufficientStock and leaves no
// trace: no decrement, no usage record.
func (s *Service) UseStock(ctx context.Context, itemID uint, quantityUsed int) (*model.Inventory, error) {
	if itemID == 0 {
		return nil, ErrItemNotFound
	}
	if quantityUsed <= 0 {
		return nil, ErrInvalidQuantity
	}

	return s.repo.ConsumeStock(ctx, itemID, quantityUsed, s.clock.Now())
}

// UsageHistory returns every recorded consumption, most recent first.
func (s *Service) UsageHistory(ctx context.Context) ([]UsageEntry, error) {
	return s.repo.UsageHistory(ctx)
}
