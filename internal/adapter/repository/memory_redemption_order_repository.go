package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"rivalioo/internal/domain/entity"
	"rivalioo/internal/domain/repository"
	"rivalioo/pkg/errors"
	"rivalioo/pkg/utils"
)

type memoryRedemptionOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*entity.RedemptionOrder
}

func NewMemoryRedemptionOrderRepository() repository.RedemptionOrderRepository {
	return &memoryRedemptionOrderRepository{
		orders: make(map[string]*entity.RedemptionOrder),
	}
}

func (r *memoryRedemptionOrderRepository) Create(ctx context.Context, order *entity.RedemptionOrder) error {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	if order.Status == "" {
		order.Status = entity.RedemptionStatusPending
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.ID]; exists {
		return errors.Conflict("Redemption order already exists")
	}
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

func (r *memoryRedemptionOrderRepository) GetByID(ctx context.Context, id string) (*entity.RedemptionOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, errors.NotFound("Redemption order", nil)
	}
	cp := *order
	return &cp, nil
}

func (r *memoryRedemptionOrderRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.RedemptionOrder, int64, error) {
	r.mu.RLock()
	var all []*entity.RedemptionOrder
	for _, o := range r.orders {
		if o.UserID == userID {
			cp := *o
			all = append(all, &cp)
		}
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	start, end := utils.PageBounds(len(all), offset, limit)
	return all[start:end], int64(len(all)), nil
}
