package websocket

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type presenceRecorder struct {
	mu     sync.Mutex
	events []string
}

func (p *presenceRecorder) hook(userID string, online bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	state := "offline"
	if online {
		state = "online"
	}
	p.events = append(p.events, userID+":"+state)
}

func (p *presenceRecorder) snapshot() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}

func newClient(id, userID string) *Client {
	return &Client{ID: id, UserID: userID, Send: make(chan []byte, 4)}
}

func startManager(t *testing.T) (*Manager, *presenceRecorder) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	rec := &presenceRecorder{}
	m := NewManager()
	m.OnPresence(rec.hook)
	m.Start(ctx)
	return m, rec
}

func TestBroadcastReachesEveryClient(t *testing.T) {
	m, _ := startManager(t)
	a := newClient("a", "")
	b := newClient("b", "user-1")
	require.True(t, m.Join(a))
	require.True(t, m.Join(b))

	require.True(t, m.Broadcast([]byte("snapshot")))

	for _, c := range []*Client{a, b} {
		select {
		case msg := <-c.Send:
			assert.Equal(t, "snapshot", string(msg))
		case <-time.After(time.Second):
			t.Fatalf("client %s got nothing", c.ID)
		}
	}
}

func TestPresenceFiresOnFirstAndLastConnection(t *testing.T) {
	m, rec := startManager(t)
	first := newClient("c1", "user-1")
	second := newClient("c2", "user-1")

	m.Join(first)
	m.Join(second)
	m.Leave(first)
	m.Leave(second)

	assert.Eventually(t, func() bool {
		return len(rec.snapshot()) == 2
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"user-1:online", "user-1:offline"}, rec.snapshot())
	assert.Equal(t, 0, m.ClientCount())
}

func TestAnonymousClientsDoNotTriggerPresence(t *testing.T) {
	m, rec := startManager(t)
	c := newClient("anon", "")

	m.Join(c)
	m.Leave(c)

	assert.Eventually(t, func() bool { return m.ClientCount() == 0 }, time.Second, 10*time.Millisecond)
	assert.Empty(t, rec.snapshot())
}

func TestJoinAfterStopReturnsFalse(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m := NewManager()
	m.Start(ctx)
	cancel()

	assert.Eventually(t, func() bool {
		return !m.Join(newClient("late", ""))
	}, time.Second, 10*time.Millisecond)
}

func TestSendToUserTargetsOnlyThatUser(t *testing.T) {
	m, _ := startManager(t)
	mine := newClient("mine", "user-1")
	other := newClient("other", "user-2")
	m.Join(mine)
	m.Join(other)
	require.Eventually(t, func() bool { return m.ClientCount() == 2 }, time.Second, 10*time.Millisecond)

	m.SendToUser("user-1", []byte("hi"))

	assert.Equal(t, "hi", string(<-mine.Send))
	assert.Empty(t, other.Send)
}
