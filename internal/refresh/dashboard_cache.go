package refresh

import (
	"context"
	"sync"

	"pearlify/internal/analytics"

	"github.com/labstack/gommon/log"
	"golang.org/x/sync/singleflight"
)

type ComputeFunc func(ctx context.Context, w analytics.Window) analytics.Report

// DashboardCache holds the latest report per window. The poller refreshes every window;
// a forced read recomputes, and concurrent forced reads of one window share a single computation.
type DashboardCache struct {
	compute ComputeFunc
	logger  *log.Logger

	mu      sync.RWMutex
	reports map[analytics.Window]analytics.Report

	group singleflight.Group
}

func NewDashboardCache(compute ComputeFunc, logger *log.Logger) *DashboardCache {
	return &DashboardCache{
		compute: compute,
		logger:  logger,
		reports: map[analytics.Window]analytics.Report{},
	}
}

// Get returns the cached report, computing it on a miss or when force is set.
func (c *DashboardCache) Get(ctx context.Context, w analytics.Window, force bool) analytics.Report {
	if !force {
		c.mu.RLock()
		r, ok := c.reports[w]
		c.mu.RUnlock()
		if ok {
			return r
		}
	}
	return c.refresh(ctx, w)
}

// RefreshAll recomputes every window. It is the poller's tick.
func (c *DashboardCache) RefreshAll(ctx context.Context) {
	for _, w := range analytics.Windows {
		if ctx.Err() != nil {
			return
		}
		c.refresh(ctx, w)
	}
	c.logger.Debugf("dashboard reports refreshed")
}

func (c *DashboardCache) refresh(ctx context.Context, w analytics.Window) analytics.Report {
	v, _, _ := c.group.Do(string(w), func() (any, error) {
		r := c.compute(ctx, w)
		c.mu.Lock()
		c.reports[w] = r
		c.mu.Unlock()
		return r, nil
	})
	return v.(analytics.Report)
}
