package entity

import (
	"time"
)

const (
	RedemptionStatusPending   = "pending"
	RedemptionStatusCompleted = "completed"
	RedemptionStatusFailed    = "failed"
)

type RedemptionOrder struct {
	ID          string    `json:"id" firestore:"id"`
	UserID      string    `json:"user_id" firestore:"userId"`
	PlayerID    string    `json:"player_id" firestore:"playerId"`
	GameID      string    `json:"game_id" firestore:"gameId"`
	PackageID   string    `json:"package_id" firestore:"packageId"`
	AmountName  string    `json:"amount_name" firestore:"amountName"`
	CreditsCost int64     `json:"credits_cost" firestore:"creditsCost"`
	Status      string    `json:"status" firestore:"status"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
}
