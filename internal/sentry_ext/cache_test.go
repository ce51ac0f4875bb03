package sentry_ext

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldCapture_DeduplicatesRecentMessages(t *testing.T) {
	c, err := newCache(2)
	require.NoError(t, err)
	now := time.Unix(1000, 0)
	c.now = func() time.Time { return now }

	assert.True(t, c.shouldCapture("chart: redraw failed"))
	assert.False(t, c.shouldCapture("chart: redraw failed"))
	assert.True(t, c.shouldCapture("another"))

	now = now.Add(recentEventDuration)
	assert.True(t, c.shouldCapture("chart: redraw failed"))
}

func TestShouldCapture_EvictsOldest(t *testing.T) {
	c, err := newCache(1)
	require.NoError(t, err)

	assert.True(t, c.shouldCapture("a"))
	assert.True(t, c.shouldCapture("b"))
	assert.True(t, c.shouldCapture("a"))
}

func TestNew_DisabledWithoutDSN(t *testing.T) {
	assert.NotNil(t, New(Params{}))
}
