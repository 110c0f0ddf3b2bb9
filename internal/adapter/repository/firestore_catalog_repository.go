package repository

import (
	"context"
	"sort"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"rivalioo/internal/domain/entity"
	"rivalioo/internal/domain/repository"
	"rivalioo/pkg/errors"
)

const (
	collectionGames     = "redeemable_games"
	collectionPackages  = "redeemable_packages"
	collectionShopItems = "shop_items"
	collectionTiers     = "subscription_tiers"
	collectionStreamers = "streamers"
)

type firestoreCatalogRepository struct {
	client *firestore.Client
}

func NewFirestoreCatalogRepository(client *firestore.Client) repository.CatalogRepository {
	return &firestoreCatalogRepository{
		client: client,
	}
}

// getAll decodes every document of query into a fresh T.
func getAll[T any](ctx context.Context, query firestore.Query, what string) ([]*T, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var out []*T
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate "+what, err)
		}

		v := new(T)
		if err := doc.DataTo(v); err != nil {
			return nil, errors.Internal("Failed to parse "+what+" data", err)
		}
		out = append(out, v)
	}
	return out, nil
}

func getDoc[T any](ctx context.Context, ref *firestore.DocumentRef, resource string) (*T, error) {
	doc, err := ref.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound(resource, err)
		}
		return nil, errors.Internal("Failed to get "+resource, err)
	}

	v := new(T)
	if err := doc.DataTo(v); err != nil {
		return nil, errors.Internal("Failed to parse "+resource+" data", err)
	}
	return v, nil
}

func (r *firestoreCatalogRepository) ListGames(ctx context.Context) ([]*entity.RedeemableGame, error) {
	query := r.client.Collection(collectionGames).Where("status", "==", entity.CatalogStatusActive)
	games, err := getAll[entity.RedeemableGame](ctx, query, "games")
	if err != nil {
		return nil, err
	}

	// Sorted here to avoid a composite index on status+sortOrder.
	sort.SliceStable(games, func(i, j int) bool { return games[i].SortOrder < games[j].SortOrder })
	return games, nil
}

func (r *firestoreCatalogRepository) GetGame(ctx context.Context, id string) (*entity.RedeemableGame, error) {
	return getDoc[entity.RedeemableGame](ctx, r.client.Collection(collectionGames).Doc(id), "Game")
}

func (r *firestoreCatalogRepository) ListPackages(ctx context.Context, gameID string) ([]*entity.RedeemablePackage, error) {
	query := r.client.Collection(collectionPackages).
		Where("gameId", "==", gameID).
		Where("status", "==", entity.CatalogStatusActive)
	packages, err := getAll[entity.RedeemablePackage](ctx, query, "packages")
	if err != nil {
		return nil, err
	}

	sort.SliceStable(packages, func(i, j int) bool { return packages[i].SortOrder < packages[j].SortOrder })
	return packages, nil
}

func (r *firestoreCatalogRepository) GetPackage(ctx context.Context, id string) (*entity.RedeemablePackage, error) {
	return getDoc[entity.RedeemablePackage](ctx, r.client.Collection(collectionPackages).Doc(id), "Package")
}

func (r *firestoreCatalogRepository) ListShopItems(ctx context.Context) ([]*entity.ShopItem, error) {
	query := r.client.Collection(collectionShopItems).Where("status", "==", entity.CatalogStatusActive)
	return getAll[entity.ShopItem](ctx, query, "shop items")
}

func (r *firestoreCatalogRepository) GetShopItem(ctx context.Context, id string) (*entity.ShopItem, error) {
	return getDoc[entity.ShopItem](ctx, r.client.Collection(collectionShopItems).Doc(id), "Shop item")
}

func (r *firestoreCatalogRepository) ListSubscriptionTiers(ctx context.Context) ([]*entity.SubscriptionTier, error) {
	query := r.client.Collection(collectionTiers).OrderBy("sortOrder", firestore.Asc)
	return getAll[entity.SubscriptionTier](ctx, query, "subscription tiers")
}

func (r *firestoreCatalogRepository) ListStreamers(ctx context.Context) ([]*entity.Streamer, error) {
	query := r.client.Collection(collectionStreamers).OrderBy("sortOrder", firestore.Asc)
	return getAll[entity.Streamer](ctx, query, "streamers")
}
