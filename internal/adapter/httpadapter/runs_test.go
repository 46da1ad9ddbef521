package httpadapter

import (
	"context"
	"testing"

	"github.com/couchcryptid/climate-forecast/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, c *RunCache, ids ...string) {
	t.Helper()
	for _, id := range ids {
		require.NoError(t, c.LoadRun(context.Background(), domain.ForecastRun{ID: id}))
	}
}

func TestRunCache_Empty(t *testing.T) {
	c := NewRunCache(2)

	_, ok := c.Latest()
	assert.False(t, ok)
	assert.Error(t, c.CheckReadiness(context.Background()))
}

func TestRunCache_Eviction(t *testing.T) {
	c := NewRunCache(2)
	load(t, c, "a", "b", "c")

	_, ok := c.Get("a")
	assert.False(t, ok, "oldest run evicted")
	_, ok = c.Get("b")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)

	latest, ok := c.Latest()
	require.True(t, ok)
	assert.Equal(t, "c", latest.ID)
	assert.NoError(t, c.CheckReadiness(context.Background()))
}

func TestRunCache_AccessPromotesEntry(t *testing.T) {
	c := NewRunCache(2)
	load(t, c, "a", "b")

	_, ok := c.Get("a")
	require.True(t, ok)
	load(t, c, "c")

	_, ok = c.Get("a")
	assert.True(t, ok, "recently read run kept")
	_, ok = c.Get("b")
	assert.False(t, ok, "least recently used run evicted")
}

func TestRunCache_ReloadSameID(t *testing.T) {
	c := NewRunCache(2)
	load(t, c, "a", "a")
	assert.Equal(t, 1, c.order.Len())
}

func TestRunCache_MinimumSize(t *testing.T) {
	c := NewRunCache(0)
	load(t, c, "a", "b")

	_, ok := c.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 1, c.order.Len())
}
