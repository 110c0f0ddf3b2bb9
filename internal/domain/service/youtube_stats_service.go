package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"rivalioo/internal/domain/entity"
	"rivalioo/pkg/logger"
)

// MaxIDsPerRequest is the platform's cap on ids per videos/channels call.
const MaxIDsPerRequest = 50

// YouTubeStatsService reads video and channel statistics from the YouTube
// Data API. Every call waits on a shared limiter.
type YouTubeStatsService struct {
	yt      *youtube.Service
	limiter *rate.Limiter
	now     func() time.Time
}

func NewYouTubeStatsService(ctx context.Context, apiKey string, ratePerSecond float64, opts ...option.ClientOption) (*YouTubeStatsService, error) {
	if apiKey != "" {
		opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	}

	yt, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube client: %w", err)
	}

	burst := int(ratePerSecond)
	if burst < 1 {
		burst = 1
	}

	return &YouTubeStatsService{
		yt:      yt,
		limiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst),
		now:     time.Now,
	}, nil
}

// FetchVideoStats returns stats keyed by video id. No ids means no request;
// only the first MaxIDsPerRequest distinct ids are sent.
func (s *YouTubeStatsService) FetchVideoStats(ctx context.Context, ids []string) (map[string]entity.VideoStats, error) {
	ids = capIDs(ids)
	result := make(map[string]entity.VideoStats, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := s.yt.Videos.
		List([]string{"snippet", "statistics", "liveStreamingDetails"}).
		Id(ids...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video stats: %w", err)
	}

	fetchedAt := s.now()
	for _, item := range resp.Items {
		stats := entity.VideoStats{
			VideoID:   item.Id,
			FetchedAt: fetchedAt,
		}
		if item.Snippet != nil {
			stats.Title = item.Snippet.Title
			stats.ChannelID = item.Snippet.ChannelId
			stats.Thumbnail = thumbnailURL(item.Snippet.Thumbnails)
			stats.IsLive = item.Snippet.LiveBroadcastContent == "live"
		}
		if item.Statistics != nil {
			stats.ViewCount = item.Statistics.ViewCount
			stats.LikeCount = item.Statistics.LikeCount
		}
		if item.LiveStreamingDetails != nil {
			stats.ConcurrentViewers = item.LiveStreamingDetails.ConcurrentViewers
		}

		shown := stats.ViewCount
		if stats.IsLive && stats.ConcurrentViewers > 0 {
			shown = stats.ConcurrentViewers
		}
		stats.ViewsDisplay = FormatCount(shown)

		result[item.Id] = stats
	}

	logger.Debug("Fetched stats for %d of %d videos", len(result), len(ids))
	return result, nil
}

// FetchChannels returns channel metadata keyed by channel id.
func (s *YouTubeStatsService) FetchChannels(ctx context.Context, ids []string) (map[string]entity.ChannelInfo, error) {
	ids = capIDs(ids)
	result := make(map[string]entity.ChannelInfo, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := s.yt.Channels.
		List([]string{"snippet", "statistics"}).
		Id(ids...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch channels: %w", err)
	}

	fetchedAt := s.now()
	for _, item := range resp.Items {
		info := entity.ChannelInfo{
			ChannelID: item.Id,
			FetchedAt: fetchedAt,
		}
		if item.Snippet != nil {
			info.Title = item.Snippet.Title
			info.AvatarURL = thumbnailURL(item.Snippet.Thumbnails)
		}
		if item.Statistics != nil {
			info.SubscriberCount = item.Statistics.SubscriberCount
		}
		info.SubscribersDisplay = FormatCount(info.SubscriberCount)
		result[item.Id] = info
	}

	return result, nil
}

func (s *YouTubeStatsService) SearchLiveVideos(ctx context.Context, channelID string) ([]entity.VideoSummary, error) {
	return s.search(ctx, channelID, 5, func(call *youtube.SearchListCall) *youtube.SearchListCall {
		return call.EventType("live")
	})
}

func (s *YouTubeStatsService) SearchPopularVideos(ctx context.Context, channelID string, max int64) ([]entity.VideoSummary, error) {
	return s.search(ctx, channelID, max, func(call *youtube.SearchListCall) *youtube.SearchListCall {
		return call.Order("viewCount")
	})
}

func (s *YouTubeStatsService) search(ctx context.Context, channelID string, max int64, refine func(*youtube.SearchListCall) *youtube.SearchListCall) ([]entity.VideoSummary, error) {
	if channelID == "" {
		return nil, nil
	}
	if max <= 0 || max > MaxIDsPerRequest {
		max = MaxIDsPerRequest
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	call := s.yt.Search.
		List([]string{"snippet"}).
		ChannelId(channelID).
		Type("video").
		MaxResults(max)

	resp, err := refine(call).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to search channel %s: %w", channelID, err)
	}

	videos := make([]entity.VideoSummary, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" {
			continue
		}
		summary := entity.VideoSummary{
			VideoID:   item.Id.VideoId,
			ChannelID: channelID,
		}
		if item.Snippet != nil {
			summary.Title = item.Snippet.Title
			summary.Thumbnail = thumbnailURL(item.Snippet.Thumbnails)
			if t, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
				summary.PublishedAt = t
			}
		}
		videos = append(videos, summary)
	}

	return videos, nil
}

// capIDs drops empty and repeated ids and keeps at most MaxIDsPerRequest,
// preserving order.
func capIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, min(len(ids), MaxIDsPerRequest))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
		if len(out) == MaxIDsPerRequest {
			break
		}
	}
	return out
}

func thumbnailURL(t *youtube.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	for _, th := range []*youtube.Thumbnail{t.High, t.Medium, t.Default} {
		if th != nil && th.Url != "" {
			return th.Url
		}
	}
	return ""
}
