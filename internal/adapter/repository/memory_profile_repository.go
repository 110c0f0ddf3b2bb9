package repository

import (
	"context"
	"sync"
	"time"

	"rivalioo/internal/domain/entity"
	"rivalioo/internal/domain/repository"
	"rivalioo/pkg/errors"
)

type memoryProfileRepository struct {
	mu       sync.RWMutex
	profiles map[string]*entity.Profile
}

func NewMemoryProfileRepository(seed []*entity.Profile) repository.ProfileRepository {
	r := &memoryProfileRepository{
		profiles: make(map[string]*entity.Profile, len(seed)),
	}
	for _, p := range seed {
		cp := *p
		r.profiles[p.ID] = &cp
	}
	return r
}

func (r *memoryProfileRepository) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[id]
	if !ok {
		return nil, errors.NotFound("Profile", nil)
	}
	cp := *p
	return &cp, nil
}

func (r *memoryProfileRepository) SetOnlineStatus(ctx context.Context, id string, online bool, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[id]
	if !ok {
		return errors.NotFound("Profile", nil)
	}
	p.IsOnline = online
	p.LastSeenAt = at
	return nil
}
