// Package cart holds the per-owner shopping cart: line items keyed by id,
// per-currency totals and the drawer visibility flag.
package cart

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"rivalioo/internal/domain/entity"
)

// ErrStockExceeded is returned by AddItemLimited when the merged line would
// hold more than the limit.
var ErrStockExceeded = errors.New("quantity exceeds stock")

// Store is safe for concurrent use.
type Store struct {
	mu          sync.Mutex
	items       []entity.CartItem
	open        bool
	checkingOut bool
}

func NewStore() *Store {
	return &Store{}
}

// AddItem merges item into an existing line with the same id, or appends a
// new line. It always opens the drawer.
func (s *Store) AddItem(item entity.CartItem) {
	_ = s.AddItemLimited(item, -1)
}

// AddItemLimited is AddItem with a cap on the merged line quantity. A
// negative limit means unlimited. The cart is unchanged on error.
func (s *Store) AddItemLimited(item entity.CartItem, limit int) error {
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID != item.ID {
			continue
		}
		if limit >= 0 && s.items[i].Quantity+item.Quantity > limit {
			return ErrStockExceeded
		}
		s.items[i].Quantity += item.Quantity
		s.open = true
		return nil
	}

	if limit >= 0 && item.Quantity > limit {
		return ErrStockExceeded
	}
	s.items = append(s.items, item.Clone())
	s.open = true
	return nil
}

// RemoveItem drops the line with the given id. Unknown ids are ignored.
func (s *Store) RemoveItem(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// RemoveItems takes back the given lines, as read earlier by Items. Quantity
// merged into a line since then stays in the cart. It returns the number of
// lines left.
func (s *Store) RemoveItems(taken ...entity.CartItem) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range taken {
		for i := range s.items {
			if s.items[i].ID != t.ID {
				continue
			}
			s.items[i].Quantity -= t.Quantity
			if s.items[i].Quantity <= 0 {
				s.items = append(s.items[:i], s.items[i+1:]...)
			}
			break
		}
	}
	return len(s.items)
}

// BeginCheckout marks the cart as being checked out. It returns false when
// another checkout already holds it.
func (s *Store) BeginCheckout() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.checkingOut {
		return false
	}
	s.checkingOut = true
	return true
}

func (s *Store) EndCheckout() {
	s.mu.Lock()
	s.checkingOut = false
	s.mu.Unlock()
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

// Total sums price * quantity over lines priced in currency. An empty
// currency means INR. Lines in other currencies are skipped, never converted.
func (s *Store) Total(currency entity.Currency) decimal.Decimal {
	if currency == "" {
		currency = entity.CurrencyINR
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, item := range s.items {
		if item.Currency == currency {
			total = total.Add(item.LineTotal())
		}
	}
	return total
}

// Items returns a copy of the lines in insertion order.
func (s *Store) Items() []entity.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.CartItem, len(s.items))
	for i, item := range s.items {
		out[i] = item.Clone()
	}
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) Open() {
	s.mu.Lock()
	s.open = true
	s.mu.Unlock()
}

func (s *Store) Close() {
	s.mu.Lock()
	s.open = false
	s.mu.Unlock()
}

// Toggle flips the drawer and returns the new state.
func (s *Store) Toggle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = !s.open
	return s.open
}

func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// NewRedemptionItem builds a credits-priced line for a game top-up. The id
// embeds now so two requests for the same package stay separate lines.
func NewRedemptionItem(game entity.RedeemableGame, pkg entity.RedeemablePackage, playerID string, now time.Time) entity.CartItem {
	return entity.CartItem{
		ID:       fmt.Sprintf("redemption-%s-%s-%d", game.ID, pkg.ID, now.UnixNano()),
		Name:     fmt.Sprintf("%s - %s", game.Name, pkg.AmountName),
		Image:    game.Image,
		Price:    decimal.NewFromInt(pkg.CreditsCost),
		Currency: entity.CurrencyCredits,
		Type:     entity.CartItemRedemption,
		Quantity: 1,
		Metadata: &entity.RedemptionMetadata{
			PlayerID:    playerID,
			GameID:      game.ID,
			PackageID:   pkg.ID,
			AmountName:  pkg.AmountName,
			CreditsCost: pkg.CreditsCost,
		},
	}
}
