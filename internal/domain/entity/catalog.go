package entity

import (
	"time"
)

type RedeemableGame struct {
	ID            string    `json:"id" firestore:"id"`
	Name          string    `json:"name" firestore:"name"`
	Slug          string    `json:"slug" firestore:"slug"`
	Image         string    `json:"image,omitempty" firestore:"image,omitempty"`
	PlayerIDLabel string    `json:"player_id_label" firestore:"playerIdLabel"`
	Status        string    `json:"status" firestore:"status"`
	SortOrder     int       `json:"sort_order" firestore:"sortOrder"`
	CreatedAt     time.Time `json:"created_at" firestore:"createdAt"`
}

type RedeemablePackage struct {
	ID          string `json:"id" firestore:"id"`
	GameID      string `json:"game_id" firestore:"gameId"`
	AmountName  string `json:"amount_name" firestore:"amountName"`
	CreditsCost int64  `json:"credits_cost" firestore:"creditsCost"`
	Status      string `json:"status" firestore:"status"`
	SortOrder   int    `json:"sort_order" firestore:"sortOrder"`
}

type ShopItem struct {
	ID          string   `json:"id" firestore:"id"`
	Name        string   `json:"name" firestore:"name"`
	Description string   `json:"description,omitempty" firestore:"description,omitempty"`
	Image       string   `json:"image,omitempty" firestore:"image,omitempty"`
	Price       float64  `json:"price" firestore:"price"`
	Currency    Currency `json:"currency" firestore:"currency"`
	Stock       int      `json:"stock" firestore:"stock"`
	Status      string   `json:"status" firestore:"status"`
}

type SubscriptionTier struct {
	ID        string   `json:"id" firestore:"id"`
	Name      string   `json:"name" firestore:"name"`
	PriceINR  float64  `json:"price_inr" firestore:"priceInr"`
	Credits   int64    `json:"credits" firestore:"credits"`
	Perks     []string `json:"perks" firestore:"perks"`
	SortOrder int      `json:"sort_order" firestore:"sortOrder"`
}

const (
	CatalogStatusActive   = "active"
	CatalogStatusInactive = "inactive"
)
