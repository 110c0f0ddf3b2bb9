package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"rivalioo/internal/domain/entity"
	"rivalioo/internal/domain/repository"
	"rivalioo/pkg/errors"
)

const collectionRedemptionOrders = "redemption_orders"

type firestoreRedemptionOrderRepository struct {
	client *firestore.Client
}

func NewFirestoreRedemptionOrderRepository(client *firestore.Client) repository.RedemptionOrderRepository {
	return &firestoreRedemptionOrderRepository{
		client: client,
	}
}

func (r *firestoreRedemptionOrderRepository) Create(ctx context.Context, order *entity.RedemptionOrder) error {
	if order.ID == "" {
		order.ID = r.client.Collection(collectionRedemptionOrders).NewDoc().ID
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	if order.Status == "" {
		order.Status = entity.RedemptionStatusPending
	}

	// Create fails if the document exists, unlike Set.
	_, err := r.client.Collection(collectionRedemptionOrders).Doc(order.ID).Create(ctx, order)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return errors.Conflict("Redemption order already exists")
		}
		return errors.Internal("Failed to create redemption order", err)
	}

	return nil
}

func (r *firestoreRedemptionOrderRepository) GetByID(ctx context.Context, id string) (*entity.RedemptionOrder, error) {
	return getDoc[entity.RedemptionOrder](ctx, r.client.Collection(collectionRedemptionOrders).Doc(id), "Redemption order")
}

func (r *firestoreRedemptionOrderRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.RedemptionOrder, int64, error) {
	query := r.client.Collection(collectionRedemptionOrders).Where("userId", "==", userID)

	// Get total count (this is expensive in Firestore but necessary for pagination)
	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count redemption orders", err)
	}
	total := int64(len(allDocs))

	query = query.OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	orders, err := getAll[entity.RedemptionOrder](ctx, query, "redemption orders")
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}
