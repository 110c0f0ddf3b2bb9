package usecase

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"rivalioo/internal/domain/entity"
	"rivalioo/internal/domain/repository"
	"rivalioo/internal/infrastructure/metrics"
	"rivalioo/pkg/logger"
)

const (
	JobSelectedVideo = "selected_video"
	JobStreamers     = "streamers"
	JobLiveDiscovery = "live_discovery"
	JobPopularVideos = "popular_videos"
)

// errStale marks a refresh whose results arrived after Stop.
var errStale = stderrors.New("refresh discarded after stop")

type StreamStatsOptions struct {
	SelectedVideoInterval time.Duration
	StreamersInterval     time.Duration
	LiveDiscoveryInterval time.Duration
	PopularVideosInterval time.Duration
	PopularVideosMax      int64
	// ChannelParallel bounds concurrent per-channel searches.
	ChannelParallel int
}

func DefaultStreamStatsOptions() StreamStatsOptions {
	return StreamStatsOptions{
		SelectedVideoInterval: 60 * time.Second,
		StreamersInterval:     300 * time.Second,
		LiveDiscoveryInterval: 300 * time.Second,
		PopularVideosInterval: 300 * time.Second,
		PopularVideosMax:      6,
		ChannelParallel:       4,
	}
}

// StreamStatsUseCase polls the stats source on fixed intervals and keeps the
// latest snapshot in memory. A failed refresh leaves the previous values.
type StreamStatsUseCase struct {
	source      StatsSource
	catalogRepo repository.CatalogRepository
	cache       StatsCache
	broadcaster SnapshotBroadcaster
	opts        StreamStatsOptions

	mu       sync.RWMutex
	snapshot *entity.StreamSnapshot

	// generation changes on every Start and Stop. A refresh only applies its
	// results if the generation it started under is still current.
	generation atomic.Uint64

	runMu  sync.Mutex
	runCtx context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewStreamStatsUseCase accepts nil cache and broadcaster.
func NewStreamStatsUseCase(
	source StatsSource,
	catalogRepo repository.CatalogRepository,
	cache StatsCache,
	broadcaster SnapshotBroadcaster,
	opts StreamStatsOptions,
) *StreamStatsUseCase {
	return &StreamStatsUseCase{
		source:      source,
		catalogRepo: catalogRepo,
		cache:       cache,
		broadcaster: broadcaster,
		opts:        opts,
		snapshot:    entity.NewStreamSnapshot(),
	}
}

// Start loads the tracked streamers, warms the snapshot from the cache and
// launches one ticker per refresh job. Each job also runs once immediately.
func (uc *StreamStatsUseCase) Start(ctx context.Context) {
	uc.runMu.Lock()
	defer uc.runMu.Unlock()

	if uc.cancel != nil {
		return
	}

	uc.warm(ctx)

	runCtx, cancel := context.WithCancel(ctx)
	uc.runCtx = runCtx
	uc.cancel = cancel
	gen := uc.generation.Add(1)

	jobs := []struct {
		name     string
		interval time.Duration
		run      func(context.Context) error
	}{
		{JobSelectedVideo, uc.opts.SelectedVideoInterval, uc.RefreshSelectedVideo},
		{JobStreamers, uc.opts.StreamersInterval, uc.RefreshAllStreamers},
		{JobLiveDiscovery, uc.opts.LiveDiscoveryInterval, uc.DiscoverLiveStreams},
		{JobPopularVideos, uc.opts.PopularVideosInterval, uc.RefreshPopularVideos},
	}

	for _, job := range jobs {
		uc.wg.Add(1)
		go uc.loop(runCtx, job.name, job.interval, job.run)
	}

	logger.Info("Stream stats poller started (generation %d)", gen)
}

// Stop cancels every ticker and waits for the loops to exit. Refreshes still
// in flight discard their results.
func (uc *StreamStatsUseCase) Stop() {
	uc.runMu.Lock()
	cancel := uc.cancel
	uc.cancel = nil
	uc.runCtx = nil
	uc.runMu.Unlock()

	uc.generation.Add(1)
	if cancel == nil {
		return
	}

	cancel()
	uc.wg.Wait()
	logger.Info("Stream stats poller stopped")
}

func (uc *StreamStatsUseCase) loop(ctx context.Context, job string, interval time.Duration, run func(context.Context) error) {
	defer uc.wg.Done()

	uc.runJob(ctx, job, run)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			uc.runJob(ctx, job, run)
		case <-ctx.Done():
			return
		}
	}
}

func (uc *StreamStatsUseCase) runJob(ctx context.Context, job string, run func(context.Context) error) {
	err := run(ctx)
	switch {
	case err == nil:
		metrics.StatsPollTotal.WithLabelValues(job, metrics.ResultSuccess).Inc()
	case stderrors.Is(err, errStale):
		metrics.StatsPollTotal.WithLabelValues(job, metrics.ResultStale).Inc()
	default:
		metrics.StatsPollTotal.WithLabelValues(job, metrics.ResultFailure).Inc()
		logger.Warn("Stream stats %s refresh failed, keeping last values: %v", job, err)
	}
}

func (uc *StreamStatsUseCase) warm(ctx context.Context) {
	streamers, err := uc.catalogRepo.ListStreamers(ctx)
	if err != nil {
		logger.Warn("Failed to load streamers: %v", err)
	}

	var cached *entity.StreamSnapshot
	if uc.cache != nil {
		cached, err = uc.cache.LoadSnapshot(ctx)
		if err != nil {
			logger.Warn("Failed to load cached stream stats: %v", err)
		}
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if cached != nil {
		uc.snapshot = cached.Clone()
	}
	if len(streamers) > 0 {
		uc.snapshot.Streamers = uc.snapshot.Streamers[:0]
		for _, s := range streamers {
			uc.snapshot.Streamers = append(uc.snapshot.Streamers, *s)
		}
	}
}

// Snapshot returns a copy of the current state.
func (uc *StreamStatsUseCase) Snapshot() *entity.StreamSnapshot {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.snapshot.Clone()
}

// SetSelectedVideo changes the video refreshed by the selected-video job and,
// when the poller is running, refreshes it right away.
func (uc *StreamStatsUseCase) SetSelectedVideo(videoID string) *entity.StreamSnapshot {
	uc.mu.Lock()
	if uc.snapshot.SelectedVideoID != videoID {
		uc.snapshot.SelectedVideoID = videoID
		uc.snapshot.Selected = nil
		if v, ok := uc.snapshot.Videos[videoID]; ok {
			uc.snapshot.Selected = &v
		}
	}
	out := uc.snapshot.Clone()
	uc.mu.Unlock()

	if videoID == "" {
		return out
	}

	// Stop clears runCtx under runMu before waiting, so the Add cannot race it.
	uc.runMu.Lock()
	if uc.runCtx != nil {
		runCtx := uc.runCtx
		uc.wg.Add(1)
		go func() {
			defer uc.wg.Done()
			uc.runJob(runCtx, JobSelectedVideo, uc.RefreshSelectedVideo)
		}()
	}
	uc.runMu.Unlock()
	return out
}

func (uc *StreamStatsUseCase) RefreshSelectedVideo(ctx context.Context) error {
	gen := uc.generation.Load()

	uc.mu.RLock()
	videoID := uc.snapshot.SelectedVideoID
	uc.mu.RUnlock()

	if videoID == "" {
		return nil
	}

	stats, err := uc.source.FetchVideoStats(ctx, []string{videoID})
	if err != nil {
		return err
	}
	v, ok := stats[videoID]
	if !ok {
		return fmt.Errorf("no stats returned for video %s", videoID)
	}

	return uc.apply(ctx, gen, func(s *entity.StreamSnapshot) {
		s.Videos[videoID] = v
		// The selection may have changed while the call was in flight.
		if s.SelectedVideoID == videoID {
			s.Selected = &v
		}
	})
}

func (uc *StreamStatsUseCase) RefreshAllStreamers(ctx context.Context) error {
	gen := uc.generation.Load()
	videoIDs, channelIDs := uc.trackedIDs()
	if len(videoIDs) == 0 && len(channelIDs) == 0 {
		return nil
	}

	var (
		videos     map[string]entity.VideoStats
		channels   map[string]entity.ChannelInfo
		videoErr   error
		channelErr error
		g          errgroup.Group
	)
	g.Go(func() error {
		videos, videoErr = uc.source.FetchVideoStats(ctx, videoIDs)
		return nil
	})
	g.Go(func() error {
		channels, channelErr = uc.source.FetchChannels(ctx, channelIDs)
		return nil
	})
	_ = g.Wait()

	if videoErr != nil && channelErr != nil {
		return stderrors.Join(videoErr, channelErr)
	}

	if err := uc.apply(ctx, gen, func(s *entity.StreamSnapshot) {
		for id, v := range videos {
			s.Videos[id] = v
			if s.SelectedVideoID == id {
				sel := v
				s.Selected = &sel
			}
		}
		for id, c := range channels {
			s.Channels[id] = c
		}
	}); err != nil {
		return err
	}

	return stderrors.Join(videoErr, channelErr)
}

func (uc *StreamStatsUseCase) DiscoverLiveStreams(ctx context.Context) error {
	err := uc.searchChannels(ctx, uc.source.SearchLiveVideos, func(s *entity.StreamSnapshot, found map[string][]entity.VideoSummary) {
		for ch, videos := range found {
			s.LiveStreams[ch] = videos
		}
	})

	uc.mu.RLock()
	live := 0
	for _, videos := range uc.snapshot.LiveStreams {
		live += len(videos)
	}
	uc.mu.RUnlock()
	metrics.LiveStreams.Set(float64(live))

	return err
}

func (uc *StreamStatsUseCase) RefreshPopularVideos(ctx context.Context) error {
	search := func(ctx context.Context, channelID string) ([]entity.VideoSummary, error) {
		return uc.source.SearchPopularVideos(ctx, channelID, uc.opts.PopularVideosMax)
	}
	return uc.searchChannels(ctx, search, func(s *entity.StreamSnapshot, found map[string][]entity.VideoSummary) {
		for ch, videos := range found {
			s.PopularVideos[ch] = videos
		}
	})
}

// searchChannels runs search once per unique tracked channel. Channels whose
// search failed keep their previous entry.
func (uc *StreamStatsUseCase) searchChannels(
	ctx context.Context,
	search func(context.Context, string) ([]entity.VideoSummary, error),
	store func(*entity.StreamSnapshot, map[string][]entity.VideoSummary),
) error {
	gen := uc.generation.Load()
	_, channelIDs := uc.trackedIDs()
	if len(channelIDs) == 0 {
		return nil
	}

	results := make([][]entity.VideoSummary, len(channelIDs))
	errs := make([]error, len(channelIDs))

	var g errgroup.Group
	if uc.opts.ChannelParallel > 0 {
		g.SetLimit(uc.opts.ChannelParallel)
	}
	for i, ch := range channelIDs {
		i, ch := i, ch
		g.Go(func() error {
			results[i], errs[i] = search(ctx, ch)
			return nil
		})
	}
	_ = g.Wait()

	found := make(map[string][]entity.VideoSummary)
	for i, ch := range channelIDs {
		if errs[i] == nil {
			found[ch] = results[i]
		}
	}

	if len(found) > 0 {
		if err := uc.apply(ctx, gen, func(s *entity.StreamSnapshot) { store(s, found) }); err != nil {
			return err
		}
	}

	return stderrors.Join(errs...)
}

// trackedIDs returns the streamers' featured video ids and their unique
// channel ids, both in streamer order.
func (uc *StreamStatsUseCase) trackedIDs() (videoIDs, channelIDs []string) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	seenVideo := make(map[string]bool)
	seenChannel := make(map[string]bool)
	for _, s := range uc.snapshot.Streamers {
		if s.VideoID != "" && !seenVideo[s.VideoID] {
			seenVideo[s.VideoID] = true
			videoIDs = append(videoIDs, s.VideoID)
		}
		if s.ChannelID != "" && !seenChannel[s.ChannelID] {
			seenChannel[s.ChannelID] = true
			channelIDs = append(channelIDs, s.ChannelID)
		}
	}
	return videoIDs, channelIDs
}

// apply mutates the snapshot if gen is still current, then saves and
// broadcasts the result.
func (uc *StreamStatsUseCase) apply(ctx context.Context, gen uint64, mutate func(*entity.StreamSnapshot)) error {
	uc.mu.Lock()
	if uc.generation.Load() != gen {
		uc.mu.Unlock()
		return errStale
	}
	mutate(uc.snapshot)
	uc.snapshot.UpdatedAt = time.Now()
	out := uc.snapshot.Clone()
	uc.mu.Unlock()

	uc.publish(ctx, out)
	return nil
}

type snapshotMessage struct {
	Type string                 `json:"type"`
	Data *entity.StreamSnapshot `json:"data"`
}

func (uc *StreamStatsUseCase) publish(ctx context.Context, snapshot *entity.StreamSnapshot) {
	if uc.cache != nil {
		if err := uc.cache.SaveSnapshot(ctx, snapshot); err != nil {
			logger.Warn("Failed to cache stream stats: %v", err)
		}
	}

	if uc.broadcaster == nil {
		return
	}
	msg, err := json.Marshal(snapshotMessage{Type: "stream_stats", Data: snapshot})
	if err != nil {
		logger.Error("Failed to encode stream stats: %v", err)
		return
	}
	if !uc.broadcaster.Broadcast(msg) {
		logger.Debug("Stream stats broadcast dropped")
	}
}
