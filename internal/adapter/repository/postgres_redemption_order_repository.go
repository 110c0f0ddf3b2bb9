package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"rivalioo/internal/domain/entity"
	"rivalioo/internal/domain/repository"
	"rivalioo/pkg/errors"
)

// Postgres SQLSTATE for unique_violation.
const pqUniqueViolation = "23505"

type postgresRedemptionOrderRepository struct {
	db *sql.DB
}

func NewPostgresRedemptionOrderRepository(db *sql.DB) repository.RedemptionOrderRepository {
	return &postgresRedemptionOrderRepository{db: db}
}

const orderColumns = `id, user_id, player_id, game_id, package_id, amount_name, credits_cost, status, created_at`

func scanOrder(row rowScanner) (*entity.RedemptionOrder, error) {
	o := &entity.RedemptionOrder{}
	err := row.Scan(&o.ID, &o.UserID, &o.PlayerID, &o.GameID, &o.PackageID, &o.AmountName, &o.CreditsCost, &o.Status, &o.CreatedAt)
	return o, err
}

func (r *postgresRedemptionOrderRepository) Create(ctx context.Context, order *entity.RedemptionOrder) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	if order.Status == "" {
		order.Status = entity.RedemptionStatusPending
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO redemption_orders (`+orderColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		order.ID, order.UserID, order.PlayerID, order.GameID, order.PackageID,
		order.AmountName, order.CreditsCost, order.Status, order.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if stderrors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return errors.Conflict("Redemption order already exists")
		}
		return errors.Internal("Failed to create redemption order", err)
	}
	return nil
}

func (r *postgresRedemptionOrderRepository) GetByID(ctx context.Context, id string) (*entity.RedemptionOrder, error) {
	return queryOne(ctx, r.db, "Redemption order", scanOrder,
		`SELECT `+orderColumns+` FROM redemption_orders WHERE id = $1`, id)
}

func (r *postgresRedemptionOrderRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.RedemptionOrder, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM redemption_orders WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, errors.Internal("Failed to count redemption orders", err)
	}

	// LIMIT NULL means no limit.
	var lim interface{}
	if limit > 0 {
		lim = limit
	}

	orders, err := queryAll(ctx, r.db, "redemption orders", scanOrder,
		`SELECT `+orderColumns+` FROM redemption_orders WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, lim, offset)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}
