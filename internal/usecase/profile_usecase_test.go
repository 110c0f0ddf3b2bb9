package usecase

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rivalioo/internal/domain/entity"
)

func TestProfilePresenceRunsInBackground(t *testing.T) {
	profiles := new(mockProfileRepository)
	done := make(chan bool, 2)
	profiles.On("SetOnlineStatus", mock.Anything, "user-1", true, mock.Anything).
		Run(func(args mock.Arguments) { done <- true }).Return(nil).Once()
	profiles.On("SetOnlineStatus", mock.Anything, "user-1", false, mock.Anything).
		Run(func(args mock.Arguments) { done <- false }).Return(stderrors.New("unavailable")).Once()

	uc := NewProfileUseCase(profiles)
	uc.MarkOnline("user-1")
	assert.True(t, waitPresence(t, done))

	// Failures are swallowed.
	uc.HandlePresence("user-1", false)
	assert.False(t, waitPresence(t, done))

	profiles.AssertExpectations(t)
}

func TestProfilePresenceIgnoresAnonymous(t *testing.T) {
	profiles := new(mockProfileRepository)

	uc := NewProfileUseCase(profiles)
	uc.MarkOffline("")

	time.Sleep(10 * time.Millisecond)
	profiles.AssertNotCalled(t, "SetOnlineStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetProfile(t *testing.T) {
	profiles := new(mockProfileRepository)
	profiles.On("GetByID", mock.Anything, "user-1").Return(&entity.Profile{ID: "user-1", Credits: 10}, nil)

	p, err := NewProfileUseCase(profiles).GetProfile(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, int64(10), p.Credits)
}

func waitPresence(t *testing.T, done <-chan bool) bool {
	t.Helper()
	select {
	case v := <-done:
		return v
	case <-time.After(time.Second):
		t.Fatal("presence update not called")
		return false
	}
}
