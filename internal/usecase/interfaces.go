package usecase

import (
	"context"

	"rivalioo/internal/domain/entity"
)

// StatsSource is the external video platform.
type StatsSource interface {
	FetchVideoStats(ctx context.Context, ids []string) (map[string]entity.VideoStats, error)
	FetchChannels(ctx context.Context, ids []string) (map[string]entity.ChannelInfo, error)
	SearchLiveVideos(ctx context.Context, channelID string) ([]entity.VideoSummary, error)
	SearchPopularVideos(ctx context.Context, channelID string, max int64) ([]entity.VideoSummary, error)
}

type StatsCache interface {
	LoadSnapshot(ctx context.Context) (*entity.StreamSnapshot, error)
	SaveSnapshot(ctx context.Context, snapshot *entity.StreamSnapshot) error
}

type SnapshotBroadcaster interface {
	Broadcast(message []byte) bool
}

type RedemptionEventPublisher interface {
	PublishRedemptionCreated(ctx context.Context, order *entity.RedemptionOrder) error
}

// CheckoutNotifier reaches a user's live connections.
type CheckoutNotifier interface {
	SendToUser(userID string, message []byte)
}
