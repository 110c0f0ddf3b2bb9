package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"rivalioo/internal/domain/entity"
	"rivalioo/internal/domain/repository"
	"rivalioo/pkg/errors"
)

type postgresCatalogRepository struct {
	db *sql.DB
}

func NewPostgresCatalogRepository(db *sql.DB) repository.CatalogRepository {
	return &postgresCatalogRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanGame(row rowScanner) (*entity.RedeemableGame, error) {
	g := &entity.RedeemableGame{}
	err := row.Scan(&g.ID, &g.Name, &g.Slug, &g.Image, &g.PlayerIDLabel, &g.Status, &g.SortOrder, &g.CreatedAt)
	return g, err
}

func scanPackage(row rowScanner) (*entity.RedeemablePackage, error) {
	p := &entity.RedeemablePackage{}
	err := row.Scan(&p.ID, &p.GameID, &p.AmountName, &p.CreditsCost, &p.Status, &p.SortOrder)
	return p, err
}

func scanShopItem(row rowScanner) (*entity.ShopItem, error) {
	s := &entity.ShopItem{}
	err := row.Scan(&s.ID, &s.Name, &s.Description, &s.Image, &s.Price, &s.Currency, &s.Stock, &s.Status)
	return s, err
}

// queryAll runs query and scans every row with scan.
func queryAll[T any](ctx context.Context, db *sql.DB, what string, scan func(rowScanner) (*T, error), query string, args ...interface{}) ([]*T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Internal("Failed to query "+what, err)
	}
	defer rows.Close()

	var out []*T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, errors.Internal("Failed to scan "+what, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Internal("Failed to iterate "+what, err)
	}
	return out, nil
}

func queryOne[T any](ctx context.Context, db *sql.DB, resource string, scan func(rowScanner) (*T, error), query string, args ...interface{}) (*T, error) {
	v, err := scan(db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound(resource, err)
	}
	if err != nil {
		return nil, errors.Internal("Failed to get "+resource, err)
	}
	return v, nil
}

const gameColumns = `id, name, slug, image, player_id_label, status, sort_order, created_at`

func (r *postgresCatalogRepository) ListGames(ctx context.Context) ([]*entity.RedeemableGame, error) {
	return queryAll(ctx, r.db, "games", scanGame,
		`SELECT `+gameColumns+` FROM redeemable_games WHERE status = $1 ORDER BY sort_order, name`,
		entity.CatalogStatusActive)
}

func (r *postgresCatalogRepository) GetGame(ctx context.Context, id string) (*entity.RedeemableGame, error) {
	return queryOne(ctx, r.db, "Game", scanGame,
		`SELECT `+gameColumns+` FROM redeemable_games WHERE id = $1`, id)
}

const packageColumns = `id, game_id, amount_name, credits_cost, status, sort_order`

func (r *postgresCatalogRepository) ListPackages(ctx context.Context, gameID string) ([]*entity.RedeemablePackage, error) {
	return queryAll(ctx, r.db, "packages", scanPackage,
		`SELECT `+packageColumns+` FROM redeemable_packages WHERE game_id = $1 AND status = $2 ORDER BY sort_order`,
		gameID, entity.CatalogStatusActive)
}

func (r *postgresCatalogRepository) GetPackage(ctx context.Context, id string) (*entity.RedeemablePackage, error) {
	return queryOne(ctx, r.db, "Package", scanPackage,
		`SELECT `+packageColumns+` FROM redeemable_packages WHERE id = $1`, id)
}

const shopItemColumns = `id, name, description, image, price, currency, stock, status`

func (r *postgresCatalogRepository) ListShopItems(ctx context.Context) ([]*entity.ShopItem, error) {
	return queryAll(ctx, r.db, "shop items", scanShopItem,
		`SELECT `+shopItemColumns+` FROM shop_items WHERE status = $1 ORDER BY name`,
		entity.CatalogStatusActive)
}

func (r *postgresCatalogRepository) GetShopItem(ctx context.Context, id string) (*entity.ShopItem, error) {
	return queryOne(ctx, r.db, "Shop item", scanShopItem,
		`SELECT `+shopItemColumns+` FROM shop_items WHERE id = $1`, id)
}

func (r *postgresCatalogRepository) ListSubscriptionTiers(ctx context.Context) ([]*entity.SubscriptionTier, error) {
	scan := func(row rowScanner) (*entity.SubscriptionTier, error) {
		t := &entity.SubscriptionTier{}
		err := row.Scan(&t.ID, &t.Name, &t.PriceINR, &t.Credits, pq.Array(&t.Perks), &t.SortOrder)
		return t, err
	}
	return queryAll(ctx, r.db, "subscription tiers", scan,
		`SELECT id, name, price_inr, credits, perks, sort_order FROM subscription_tiers ORDER BY sort_order`)
}

func (r *postgresCatalogRepository) ListStreamers(ctx context.Context) ([]*entity.Streamer, error) {
	scan := func(row rowScanner) (*entity.Streamer, error) {
		s := &entity.Streamer{}
		err := row.Scan(&s.ID, &s.Name, &s.Game, &s.ChannelID, &s.VideoID, &s.SortOrder)
		return s, err
	}
	return queryAll(ctx, r.db, "streamers", scan,
		`SELECT id, name, game, channel_id, video_id, sort_order FROM streamers ORDER BY sort_order`)
}
