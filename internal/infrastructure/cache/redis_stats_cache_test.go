package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewRedisClientFailsWhenUnreachable(t *testing.T) {
	client, err := NewRedisClient("127.0.0.1:1", "", 0)

	assert.Error(t, err)
	assert.Nil(t, client)
}

func TestNewRedisStatsCacheDefaultsTTL(t *testing.T) {
	c := NewRedisStatsCache(nil, 0)
	assert.Equal(t, defaultCacheTTL, c.ttl)

	c = NewRedisStatsCache(nil, time.Minute)
	assert.Equal(t, time.Minute, c.ttl)
}
