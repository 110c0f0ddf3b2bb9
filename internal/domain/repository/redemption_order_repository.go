package repository

import (
	"context"

	"rivalioo/internal/domain/entity"
)

type RedemptionOrderRepository interface {
	// Create assigns an id when order.ID is empty.
	Create(ctx context.Context, order *entity.RedemptionOrder) error
	GetByID(ctx context.Context, id string) (*entity.RedemptionOrder, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.RedemptionOrder, int64, error)
}
