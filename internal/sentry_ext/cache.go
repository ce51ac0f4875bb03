package sentry_ext

import (
	"crypto/md5"
	"encoding/hex"
	"time"

	lru "github.com/hashicorp/golang-lru"
)

const (
	recentEventDuration = 5 * time.Minute
	defaultCacheSize    = 100
)

type cache struct {
	*lru.Cache
	now func() time.Time
}

func newCache(size int) (*cache, error) {
	if size == 0 {
		size = defaultCacheSize
	}
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &cache{Cache: c, now: time.Now}, nil
}

// shouldCapture reports whether an event with this message was not sent
// within the last few minutes, and records it as sent.
func (c *cache) shouldCapture(msg string) bool {
	sum := md5.Sum([]byte(msg))
	key := hex.EncodeToString(sum[:])

	now := c.now()
	if lastSent, ok := c.Get(key); ok {
		if now.Sub(lastSent.(time.Time)) < recentEventDuration {
			return false
		}
	}

	c.Add(key, now)
	return true
}
