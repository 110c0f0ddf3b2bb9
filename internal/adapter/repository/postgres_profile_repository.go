package repository

import (
	"context"
	"database/sql"
	"time"

	"rivalioo/internal/domain/entity"
	"rivalioo/internal/domain/repository"
	"rivalioo/pkg/errors"
)

type postgresProfileRepository struct {
	db *sql.DB
}

func NewPostgresProfileRepository(db *sql.DB) repository.ProfileRepository {
	return &postgresProfileRepository{db: db}
}

func (r *postgresProfileRepository) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	scan := func(row rowScanner) (*entity.Profile, error) {
		p := &entity.Profile{}
		err := row.Scan(&p.ID, &p.Username, &p.AvatarURL, &p.Credits, &p.IsOnline, &p.LastSeenAt, &p.CreatedAt)
		return p, err
	}
	return queryOne(ctx, r.db, "Profile", scan,
		`SELECT id, username, avatar_url, credits, is_online, last_seen_at, created_at FROM profiles WHERE id = $1`, id)
}

func (r *postgresProfileRepository) SetOnlineStatus(ctx context.Context, id string, online bool, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET is_online = $2, last_seen_at = $3 WHERE id = $1`, id, online, at)
	if err != nil {
		return errors.Internal("Failed to update online status", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.NotFound("Profile", nil)
	}
	return nil
}
