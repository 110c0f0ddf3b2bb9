package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"rivalioo/internal/domain/cart"
	"rivalioo/internal/domain/entity"
	"rivalioo/internal/domain/repository"
	"rivalioo/pkg/errors"
)

type CartUseCase struct {
	registry    *cart.Registry
	catalogRepo repository.CatalogRepository
	now         func() time.Time
}

func NewCartUseCase(registry *cart.Registry, catalogRepo repository.CatalogRepository) *CartUseCase {
	return &CartUseCase{
		registry:    registry,
		catalogRepo: catalogRepo,
		now:         time.Now,
	}
}

// CartView is what the API returns for a cart read or mutation.
type CartView struct {
	Items        []entity.CartItem `json:"items"`
	IsOpen       bool              `json:"is_open"`
	ItemCount    int               `json:"item_count"`
	TotalINR     decimal.Decimal   `json:"total_inr"`
	TotalCredits decimal.Decimal   `json:"total_credits"`
}

type AddProductInput struct {
	ItemID   string
	Quantity int
}

type AddRedemptionInput struct {
	GameID    string
	PackageID string
	PlayerID  string
}

// Store exposes the owner's cart, for checkout.
func (uc *CartUseCase) Store(owner string) *cart.Store {
	return uc.registry.Get(owner)
}

// AdoptSession moves an anonymous session cart into a signed-in owner's cart
// and forgets the session. It returns the number of lines moved.
func (uc *CartUseCase) AdoptSession(sessionOwner, owner string) int {
	from, ok := uc.registry.Take(sessionOwner)
	if !ok {
		return 0
	}

	items := from.Items()
	to := uc.registry.Get(owner)
	for _, item := range items {
		to.AddItem(item)
	}
	return len(items)
}

func (uc *CartUseCase) GetCart(owner string) CartView {
	return viewOf(uc.registry.Get(owner))
}

func (uc *CartUseCase) AddProduct(ctx context.Context, owner string, input AddProductInput) (CartView, error) {
	item, err := uc.catalogRepo.GetShopItem(ctx, input.ItemID)
	if err != nil {
		return CartView{}, err
	}
	if item.Status != entity.CatalogStatusActive {
		return CartView{}, errors.BadRequest("Shop item is not available", nil)
	}
	qty := input.Quantity
	if qty < 1 {
		qty = 1
	}

	// Negative stock means unlimited. The limit covers what is already in the cart.
	store := uc.registry.Get(owner)
	err = store.AddItemLimited(entity.CartItem{
		ID:       item.ID,
		Name:     item.Name,
		Image:    item.Image,
		Price:    decimal.NewFromFloat(item.Price),
		Currency: item.Currency,
		Type:     entity.CartItemProduct,
		Quantity: qty,
	}, item.Stock)
	if err != nil {
		return CartView{}, errors.BadRequest("Requested quantity exceeds stock", err)
	}

	return viewOf(store), nil
}

func (uc *CartUseCase) AddRedemption(ctx context.Context, owner string, input AddRedemptionInput) (CartView, error) {
	if input.PlayerID == "" {
		return CartView{}, errors.Validation("Player ID is required")
	}

	game, err := uc.catalogRepo.GetGame(ctx, input.GameID)
	if err != nil {
		return CartView{}, err
	}
	if game.Status != entity.CatalogStatusActive {
		return CartView{}, errors.BadRequest("Game is not available for redemption", nil)
	}

	pkg, err := uc.catalogRepo.GetPackage(ctx, input.PackageID)
	if err != nil {
		return CartView{}, err
	}
	if pkg.GameID != game.ID {
		return CartView{}, errors.BadRequest("Package does not belong to this game", nil)
	}
	if pkg.Status != entity.CatalogStatusActive {
		return CartView{}, errors.BadRequest("Package is not available", nil)
	}

	store := uc.registry.Get(owner)
	store.AddItem(cart.NewRedemptionItem(*game, *pkg, input.PlayerID, uc.now()))

	return viewOf(store), nil
}

func (uc *CartUseCase) RemoveItem(owner, itemID string) CartView {
	store := uc.registry.Get(owner)
	store.RemoveItem(itemID)
	return viewOf(store)
}

func (uc *CartUseCase) Clear(owner string) CartView {
	store := uc.registry.Get(owner)
	store.Clear()
	return viewOf(store)
}

func (uc *CartUseCase) Total(owner string, currency entity.Currency) (decimal.Decimal, error) {
	if currency != "" && !currency.Valid() {
		return decimal.Zero, errors.BadRequest("Unsupported currency", nil)
	}
	return uc.registry.Get(owner).Total(currency), nil
}

func (uc *CartUseCase) OpenDrawer(owner string) CartView {
	store := uc.registry.Get(owner)
	store.Open()
	return viewOf(store)
}

func (uc *CartUseCase) CloseDrawer(owner string) CartView {
	store := uc.registry.Get(owner)
	store.Close()
	return viewOf(store)
}

func (uc *CartUseCase) ToggleDrawer(owner string) CartView {
	store := uc.registry.Get(owner)
	store.Toggle()
	return viewOf(store)
}

func viewOf(store *cart.Store) CartView {
	items := store.Items()
	return CartView{
		Items:        items,
		IsOpen:       store.IsOpen(),
		ItemCount:    len(items),
		TotalINR:     store.Total(entity.CurrencyINR),
		TotalCredits: store.Total(entity.CurrencyCredits),
	}
}
