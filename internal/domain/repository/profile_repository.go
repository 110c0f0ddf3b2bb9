package repository

import (
	"context"
	"time"

	"rivalioo/internal/domain/entity"
)

type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Profile, error)
	SetOnlineStatus(ctx context.Context, id string, online bool, at time.Time) error
}
