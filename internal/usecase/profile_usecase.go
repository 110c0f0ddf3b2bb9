package usecase

import (
	"context"
	"time"

	"rivalioo/internal/domain/entity"
	"rivalioo/internal/domain/repository"
	"rivalioo/pkg/logger"
)

const defaultPresenceTimeout = 5 * time.Second

type ProfileUseCase struct {
	profileRepo     repository.ProfileRepository
	presenceTimeout time.Duration
	now             func() time.Time
}

func NewProfileUseCase(profileRepo repository.ProfileRepository) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo:     profileRepo,
		presenceTimeout: defaultPresenceTimeout,
		now:             time.Now,
	}
}

func (uc *ProfileUseCase) GetProfile(ctx context.Context, userID string) (*entity.Profile, error) {
	return uc.profileRepo.GetByID(ctx, userID)
}

// MarkOnline records the user as online in the background. Failures are
// logged only.
func (uc *ProfileUseCase) MarkOnline(userID string) {
	uc.setPresence(userID, true)
}

func (uc *ProfileUseCase) MarkOffline(userID string) {
	uc.setPresence(userID, false)
}

// HandlePresence matches the websocket manager's presence hook.
func (uc *ProfileUseCase) HandlePresence(userID string, online bool) {
	if online {
		uc.MarkOnline(userID)
		return
	}
	uc.MarkOffline(userID)
}

func (uc *ProfileUseCase) setPresence(userID string, online bool) {
	if userID == "" {
		return
	}

	at := uc.now()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), uc.presenceTimeout)
		defer cancel()

		if err := uc.profileRepo.SetOnlineStatus(ctx, userID, online, at); err != nil {
			logger.Warn("Failed to set online=%t for %s: %v", online, userID, err)
		}
	}()
}
