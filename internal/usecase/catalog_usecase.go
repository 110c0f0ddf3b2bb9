package usecase

import (
	"context"

	"rivalioo/internal/domain/entity"
	"rivalioo/internal/domain/repository"
	"rivalioo/pkg/errors"
)

type CatalogUseCase struct {
	catalogRepo repository.CatalogRepository
}

func NewCatalogUseCase(catalogRepo repository.CatalogRepository) *CatalogUseCase {
	return &CatalogUseCase{
		catalogRepo: catalogRepo,
	}
}

func (uc *CatalogUseCase) ListGames(ctx context.Context) ([]*entity.RedeemableGame, error) {
	return uc.catalogRepo.ListGames(ctx)
}

// ListPackages returns the active packages of an active game.
func (uc *CatalogUseCase) ListPackages(ctx context.Context, gameID string) ([]*entity.RedeemablePackage, error) {
	game, err := uc.catalogRepo.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.Status != entity.CatalogStatusActive {
		return nil, errors.NotFound("Game", nil)
	}

	return uc.catalogRepo.ListPackages(ctx, gameID)
}

func (uc *CatalogUseCase) ListShopItems(ctx context.Context) ([]*entity.ShopItem, error) {
	return uc.catalogRepo.ListShopItems(ctx)
}

func (uc *CatalogUseCase) ListSubscriptionTiers(ctx context.Context) ([]*entity.SubscriptionTier, error) {
	return uc.catalogRepo.ListSubscriptionTiers(ctx)
}

func (uc *CatalogUseCase) ListStreamers(ctx context.Context) ([]*entity.Streamer, error) {
	return uc.catalogRepo.ListStreamers(ctx)
}
