package repository

import (
	"context"
	"sort"
	"sync"

	"rivalioo/internal/domain/entity"
	"rivalioo/internal/domain/repository"
	"rivalioo/pkg/errors"
)

type memoryCatalogRepository struct {
	mu      sync.RWMutex
	catalog DemoCatalog
}

func NewMemoryCatalogRepository(catalog DemoCatalog) repository.CatalogRepository {
	return &memoryCatalogRepository{catalog: catalog}
}

func (r *memoryCatalogRepository) ListGames(ctx context.Context) ([]*entity.RedeemableGame, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var games []*entity.RedeemableGame
	for _, g := range r.catalog.Games {
		if g.Status == entity.CatalogStatusActive {
			cp := *g
			games = append(games, &cp)
		}
	}
	sort.SliceStable(games, func(i, j int) bool { return games[i].SortOrder < games[j].SortOrder })
	return games, nil
}

func (r *memoryCatalogRepository) GetGame(ctx context.Context, id string) (*entity.RedeemableGame, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, g := range r.catalog.Games {
		if g.ID == id {
			cp := *g
			return &cp, nil
		}
	}
	return nil, errors.NotFound("Game", nil)
}

func (r *memoryCatalogRepository) ListPackages(ctx context.Context, gameID string) ([]*entity.RedeemablePackage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var packages []*entity.RedeemablePackage
	for _, p := range r.catalog.Packages {
		if p.GameID == gameID && p.Status == entity.CatalogStatusActive {
			cp := *p
			packages = append(packages, &cp)
		}
	}
	sort.SliceStable(packages, func(i, j int) bool { return packages[i].SortOrder < packages[j].SortOrder })
	return packages, nil
}

func (r *memoryCatalogRepository) GetPackage(ctx context.Context, id string) (*entity.RedeemablePackage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.catalog.Packages {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, errors.NotFound("Package", nil)
}

func (r *memoryCatalogRepository) ListShopItems(ctx context.Context) ([]*entity.ShopItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []*entity.ShopItem
	for _, it := range r.catalog.ShopItems {
		if it.Status == entity.CatalogStatusActive {
			cp := *it
			items = append(items, &cp)
		}
	}
	return items, nil
}

func (r *memoryCatalogRepository) GetShopItem(ctx context.Context, id string) (*entity.ShopItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, it := range r.catalog.ShopItems {
		if it.ID == id {
			cp := *it
			return &cp, nil
		}
	}
	return nil, errors.NotFound("Shop item", nil)
}

func (r *memoryCatalogRepository) ListSubscriptionTiers(ctx context.Context) ([]*entity.SubscriptionTier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tiers := make([]*entity.SubscriptionTier, 0, len(r.catalog.Tiers))
	for _, t := range r.catalog.Tiers {
		cp := *t
		cp.Perks = append([]string(nil), t.Perks...)
		tiers = append(tiers, &cp)
	}
	sort.SliceStable(tiers, func(i, j int) bool { return tiers[i].SortOrder < tiers[j].SortOrder })
	return tiers, nil
}

func (r *memoryCatalogRepository) ListStreamers(ctx context.Context) ([]*entity.Streamer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	streamers := make([]*entity.Streamer, 0, len(r.catalog.Streamers))
	for _, s := range r.catalog.Streamers {
		cp := *s
		streamers = append(streamers, &cp)
	}
	sort.SliceStable(streamers, func(i, j int) bool { return streamers[i].SortOrder < streamers[j].SortOrder })
	return streamers, nil
}
