package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"rivalioo/internal/domain/entity"
)

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) Create(ctx context.Context, order *entity.RedemptionOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *mockOrderRepository) GetByID(ctx context.Context, id string) (*entity.RedemptionOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.RedemptionOrder), args.Error(1)
}

func (m *mockOrderRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.RedemptionOrder, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.RedemptionOrder), args.Get(1).(int64), args.Error(2)
}

type mockProfileRepository struct {
	mock.Mock
}

func (m *mockProfileRepository) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Profile), args.Error(1)
}

func (m *mockProfileRepository) SetOnlineStatus(ctx context.Context, id string, online bool, at time.Time) error {
	args := m.Called(ctx, id, online, at)
	return args.Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishRedemptionCreated(ctx context.Context, order *entity.RedemptionOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

// fakeStatsSource serves canned data and records how often each call ran.
type fakeStatsSource struct {
	mu       sync.Mutex
	videos   map[string]entity.VideoStats
	channels map[string]entity.ChannelInfo
	live     map[string][]entity.VideoSummary
	popular  map[string][]entity.VideoSummary
	err      error
	calls    map[string]int
	// When block is set, FetchVideoStats signals entered and then waits
	// for block to be closed.
	block   chan struct{}
	entered chan struct{}
}

func newFakeStatsSource() *fakeStatsSource {
	return &fakeStatsSource{
		videos:   make(map[string]entity.VideoStats),
		channels: make(map[string]entity.ChannelInfo),
		live:     make(map[string][]entity.VideoSummary),
		popular:  make(map[string][]entity.VideoSummary),
		calls:    make(map[string]int),
	}
}

func (f *fakeStatsSource) record(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
	return f.err
}

func (f *fakeStatsSource) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeStatsSource) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeStatsSource) FetchVideoStats(ctx context.Context, ids []string) (map[string]entity.VideoStats, error) {
	if f.block != nil {
		f.entered <- struct{}{}
		<-f.block
	}
	if err := f.record("videos"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]entity.VideoStats)
	for _, id := range ids {
		if v, ok := f.videos[id]; ok {
			out[id] = v
		}
	}
	return out, nil
}

func (f *fakeStatsSource) FetchChannels(ctx context.Context, ids []string) (map[string]entity.ChannelInfo, error) {
	if err := f.record("channels"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]entity.ChannelInfo)
	for _, id := range ids {
		if c, ok := f.channels[id]; ok {
			out[id] = c
		}
	}
	return out, nil
}

func (f *fakeStatsSource) SearchLiveVideos(ctx context.Context, channelID string) ([]entity.VideoSummary, error) {
	if err := f.record("live:" + channelID); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.live[channelID], nil
}

func (f *fakeStatsSource) SearchPopularVideos(ctx context.Context, channelID string, max int64) ([]entity.VideoSummary, error) {
	if err := f.record("popular:" + channelID); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.popular[channelID], nil
}

type fakeBroadcaster struct {
	mu       sync.Mutex
	messages [][]byte
}

func (b *fakeBroadcaster) Broadcast(message []byte) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = append(b.messages, message)
	return true
}

func (b *fakeBroadcaster) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.messages)
}

type fakeStatsCache struct {
	mu    sync.Mutex
	saved *entity.StreamSnapshot
	saves int
}

func (c *fakeStatsCache) LoadSnapshot(ctx context.Context) (*entity.StreamSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.saved == nil {
		return nil, nil
	}
	return c.saved.Clone(), nil
}

func (c *fakeStatsCache) SaveSnapshot(ctx context.Context, snapshot *entity.StreamSnapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.saved = snapshot.Clone()
	c.saves++
	return nil
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent map[string][][]byte
}

func (n *fakeNotifier) SendToUser(userID string, message []byte) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.sent == nil {
		n.sent = make(map[string][][]byte)
	}
	n.sent[userID] = append(n.sent[userID], message)
}

func (n *fakeNotifier) messagesFor(userID string) [][]byte {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.sent[userID]
}
