package entity

import (
	"time"
)

type Profile struct {
	ID         string    `json:"id" firestore:"id"`
	Username   string    `json:"username" firestore:"username"`
	AvatarURL  string    `json:"avatar_url,omitempty" firestore:"avatarURL,omitempty"`
	Credits    int64     `json:"credits" firestore:"credits"`
	IsOnline   bool      `json:"is_online" firestore:"isOnline"`
	LastSeenAt time.Time `json:"last_seen_at" firestore:"lastSeenAt"`
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
}
