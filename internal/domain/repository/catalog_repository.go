package repository

import (
	"context"

	"rivalioo/internal/domain/entity"
)

// CatalogRepository is the read side of the marketplace catalog.
type CatalogRepository interface {
	ListGames(ctx context.Context) ([]*entity.RedeemableGame, error)
	GetGame(ctx context.Context, id string) (*entity.RedeemableGame, error)
	ListPackages(ctx context.Context, gameID string) ([]*entity.RedeemablePackage, error)
	GetPackage(ctx context.Context, id string) (*entity.RedeemablePackage, error)
	ListShopItems(ctx context.Context) ([]*entity.ShopItem, error)
	GetShopItem(ctx context.Context, id string) (*entity.ShopItem, error)
	ListSubscriptionTiers(ctx context.Context) ([]*entity.SubscriptionTier, error)
	ListStreamers(ctx context.Context) ([]*entity.Streamer, error)
}
