package httpadapter

import (
	"container/list"
	"context"
	"errors"
	"sync"

	"github.com/couchcryptid/climate-forecast/internal/domain"
)

// DefaultRecentRuns is the number of runs kept for lookup by ID.
const DefaultRecentRuns = 16

// RunCache holds the latest forecast run and a bounded LRU of recent runs.
// It implements pipeline.Loader and sharedobs.ReadinessChecker.
type RunCache struct {
	maxEntries int

	mu     sync.Mutex
	latest *domain.ForecastRun
	order  *list.List // front is most recently used
	byID   map[string]*list.Element
}

// NewRunCache creates a cache retaining up to maxEntries runs by ID.
func NewRunCache(maxEntries int) *RunCache {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &RunCache{
		maxEntries: maxEntries,
		order:      list.New(),
		byID:       make(map[string]*list.Element),
	}
}

// Name identifies the sink in logs and metrics.
func (c *RunCache) Name() string { return "http" }

// LoadRun makes run the latest forecast and records it for lookup.
func (c *RunCache) LoadRun(_ context.Context, run domain.ForecastRun) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.latest = &run
	if e, ok := c.byID[run.ID]; ok {
		e.Value = run
		c.order.MoveToFront(e)
		return nil
	}
	c.byID[run.ID] = c.order.PushFront(run)
	for c.order.Len() > c.maxEntries {
		oldest := c.order.Back()
		delete(c.byID, oldest.Value.(domain.ForecastRun).ID)
		c.order.Remove(oldest)
	}
	return nil
}

// Latest returns the most recently loaded run.
func (c *RunCache) Latest() (domain.ForecastRun, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.latest == nil {
		return domain.ForecastRun{}, false
	}
	return *c.latest, true
}

// Get returns a recent run by ID and promotes it.
func (c *RunCache) Get(id string) (domain.ForecastRun, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.byID[id]
	if !ok {
		return domain.ForecastRun{}, false
	}
	c.order.MoveToFront(e)
	return e.Value.(domain.ForecastRun), true
}

// CheckReadiness reports ready once a forecast has been loaded.
func (c *RunCache) CheckReadiness(_ context.Context) error {
	if _, ok := c.Latest(); !ok {
		return errors.New("no forecast has been published yet")
	}
	return nil
}
