package usecase

import (
	"context"

	"rivalioo/internal/domain/entity"
	"rivalioo/internal/domain/repository"
	"rivalioo/pkg/errors"
)

type OrderUseCase struct {
	orderRepo repository.RedemptionOrderRepository
}

func NewOrderUseCase(orderRepo repository.RedemptionOrderRepository) *OrderUseCase {
	return &OrderUseCase{
		orderRepo: orderRepo,
	}
}

func (uc *OrderUseCase) ListRedemptions(ctx context.Context, userID string, page, limit int) ([]*entity.RedemptionOrder, int64, error) {
	if userID == "" {
		return nil, 0, errors.Unauthorized("User not authenticated", nil)
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	return uc.orderRepo.ListByUser(ctx, userID, limit, offset)
}

// GetRedemption returns one of the caller's orders.
func (uc *OrderUseCase) GetRedemption(ctx context.Context, userID, orderID string) (*entity.RedemptionOrder, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, errors.NotFound("Redemption order", nil)
	}
	return order, nil
}
