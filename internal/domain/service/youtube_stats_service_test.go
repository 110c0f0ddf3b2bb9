package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

type fakeYouTube struct {
	mu       sync.Mutex
	requests []*http.Request
	body     string
}

func (f *fakeYouTube) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r)
	body := f.body
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if body == "" {
		body = `{"items":[]}`
	}
	fmt.Fprint(w, body)
}

func (f *fakeYouTube) calls() []*http.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*http.Request(nil), f.requests...)
}

func newTestService(t *testing.T, fake *fakeYouTube) *YouTubeStatsService {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	svc, err := NewYouTubeStatsService(context.Background(), "", 1000,
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return svc
}

// sentIDs flattens repeated and comma-joined id parameters.
func sentIDs(r *http.Request) []string {
	var ids []string
	for _, v := range r.URL.Query()["id"] {
		ids = append(ids, strings.Split(v, ",")...)
	}
	return ids
}

func TestFetchVideoStatsWithoutIDsMakesNoRequest(t *testing.T) {
	fake := &fakeYouTube{}
	svc := newTestService(t, fake)

	stats, err := svc.FetchVideoStats(context.Background(), nil)

	require.NoError(t, err)
	assert.NotNil(t, stats)
	assert.Empty(t, stats)
	assert.Empty(t, fake.calls())
}

func TestFetchVideoStatsSendsAtMostFiftyIDs(t *testing.T) {
	fake := &fakeYouTube{}
	svc := newTestService(t, fake)

	ids := make([]string, 60)
	for i := range ids {
		ids[i] = fmt.Sprintf("video-%02d", i)
	}

	_, err := svc.FetchVideoStats(context.Background(), ids)
	require.NoError(t, err)

	calls := fake.calls()
	require.Len(t, calls, 1)
	sent := sentIDs(calls[0])
	assert.Equal(t, ids[:50], sent)
}

func TestFetchVideoStatsParsesResponse(t *testing.T) {
	fake := &fakeYouTube{body: `{
		"items": [
			{
				"id": "live-1",
				"snippet": {
					"title": "Finals day",
					"channelId": "chan-a",
					"liveBroadcastContent": "live",
					"thumbnails": {"high": {"url": "https://img/high.jpg"}}
				},
				"statistics": {"viewCount": "1500000", "likeCount": "2000"},
				"liveStreamingDetails": {"concurrentViewers": "12345"}
			},
			{
				"id": "vod-1",
				"snippet": {"title": "Highlights", "channelId": "chan-b", "liveBroadcastContent": "none"},
				"statistics": {"viewCount": "999"}
			}
		]
	}`}
	svc := newTestService(t, fake)

	stats, err := svc.FetchVideoStats(context.Background(), []string{"live-1", "vod-1"})
	require.NoError(t, err)
	require.Len(t, stats, 2)

	live := stats["live-1"]
	assert.True(t, live.IsLive)
	assert.Equal(t, "chan-a", live.ChannelID)
	assert.Equal(t, uint64(1500000), live.ViewCount)
	assert.Equal(t, uint64(12345), live.ConcurrentViewers)
	assert.Equal(t, "12.3K", live.ViewsDisplay)
	assert.Equal(t, "https://img/high.jpg", live.Thumbnail)

	vod := stats["vod-1"]
	assert.False(t, vod.IsLive)
	assert.Equal(t, "999", vod.ViewsDisplay)
}

func TestFetchVideoStatsDeduplicatesIDs(t *testing.T) {
	fake := &fakeYouTube{}
	svc := newTestService(t, fake)

	_, err := svc.FetchVideoStats(context.Background(), []string{"a", "b", "a", "", "b"})
	require.NoError(t, err)

	require.Len(t, fake.calls(), 1)
	assert.Equal(t, []string{"a", "b"}, sentIDs(fake.calls()[0]))
}

func TestFetchChannelsParsesResponse(t *testing.T) {
	fake := &fakeYouTube{body: `{"items":[{"id":"chan-a","snippet":{"title":"Team A","thumbnails":{"default":{"url":"https://img/a.jpg"}}},"statistics":{"subscriberCount":"250000"}}]}`}
	svc := newTestService(t, fake)

	channels, err := svc.FetchChannels(context.Background(), []string{"chan-a"})
	require.NoError(t, err)

	info := channels["chan-a"]
	assert.Equal(t, "Team A", info.Title)
	assert.Equal(t, "https://img/a.jpg", info.AvatarURL)
	assert.Equal(t, "250.0K", info.SubscribersDisplay)
}

func TestSearchLiveVideosRequestsLiveEvents(t *testing.T) {
	fake := &fakeYouTube{body: `{"items":[{"id":{"kind":"youtube#video","videoId":"live-9"},"snippet":{"title":"Scrims","publishedAt":"2024-05-01T10:00:00Z"}}]}`}
	svc := newTestService(t, fake)

	videos, err := svc.SearchLiveVideos(context.Background(), "chan-a")
	require.NoError(t, err)

	require.Len(t, videos, 1)
	assert.Equal(t, "live-9", videos[0].VideoID)
	assert.Equal(t, "chan-a", videos[0].ChannelID)
	assert.Equal(t, 2024, videos[0].PublishedAt.Year())

	q := fake.calls()[0].URL.Query()
	assert.Equal(t, "live", q.Get("eventType"))
	assert.Equal(t, "chan-a", q.Get("channelId"))
}

func TestSearchPopularVideosOrdersByViews(t *testing.T) {
	fake := &fakeYouTube{}
	svc := newTestService(t, fake)

	_, err := svc.SearchPopularVideos(context.Background(), "chan-b", 4)
	require.NoError(t, err)

	q := fake.calls()[0].URL.Query()
	assert.Equal(t, "viewCount", q.Get("order"))
	assert.Equal(t, "4", q.Get("maxResults"))
}

func TestSearchWithoutChannelMakesNoRequest(t *testing.T) {
	fake := &fakeYouTube{}
	svc := newTestService(t, fake)

	videos, err := svc.SearchLiveVideos(context.Background(), "")

	require.NoError(t, err)
	assert.Empty(t, videos)
	assert.Empty(t, fake.calls())
}

func TestFetchVideoStatsReturnsErrorOnServerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":403,"message":"quota"}}`, http.StatusForbidden)
	}))
	defer srv.Close()

	svc, err := NewYouTubeStatsService(context.Background(), "", 1000,
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)

	_, err = svc.FetchVideoStats(context.Background(), []string{"a"})
	assert.Error(t, err)
}
