package entity

import (
	"github.com/shopspring/decimal"
)

type Currency string

const (
	CurrencyINR     Currency = "INR"
	CurrencyCredits Currency = "Credits"
)

func (c Currency) Valid() bool {
	return c == CurrencyINR || c == CurrencyCredits
}

type CartItemType string

const (
	CartItemProduct    CartItemType = "product"
	CartItemRedemption CartItemType = "redemption"
)

// RedemptionMetadata identifies what a redemption line tops up and for whom.
type RedemptionMetadata struct {
	PlayerID    string `json:"player_id"`
	GameID      string `json:"game_id"`
	PackageID   string `json:"package_id"`
	AmountName  string `json:"amount_name"`
	CreditsCost int64  `json:"credits_cost"`
}

type CartItem struct {
	ID       string              `json:"id"`
	Name     string              `json:"name"`
	Image    string              `json:"image,omitempty"`
	Price    decimal.Decimal     `json:"price"`
	Currency Currency            `json:"currency"`
	Type     CartItemType        `json:"type"`
	Quantity int                 `json:"quantity"`
	Metadata *RedemptionMetadata `json:"metadata,omitempty"`
}

func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func (i CartItem) IsRedemption() bool {
	return i.Type == CartItemRedemption
}

// Clone returns a copy that shares no memory with i.
func (i CartItem) Clone() CartItem {
	if i.Metadata != nil {
		md := *i.Metadata
		i.Metadata = &md
	}
	return i
}
