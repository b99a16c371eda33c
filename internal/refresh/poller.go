// Package refresh keeps derived views at most one interval stale.
package refresh

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/labstack/gommon/log"
)

// Poller runs fn every interval until its context is cancelled.
// A tick that arrives while fn is still running is skipped.
type Poller struct {
	interval time.Duration
	fn       func(context.Context)
	logger   *log.Logger

	running atomic.Bool
	skipped atomic.Int64
}

func NewPoller(interval time.Duration, fn func(context.Context), logger *log.Logger) *Poller {
	return &Poller{interval: interval, fn: fn, logger: logger}
}

// Run ticks until ctx is done. It runs fn once immediately and returns
// only after the last started run has finished.
func (p *Poller) Run(ctx context.Context) error {
	t := time.NewTicker(p.interval)
	defer t.Stop()

	var wg sync.WaitGroup
	defer wg.Wait()

	p.Tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			wg.Add(1)
			go func() {
				defer wg.Done()
				p.Tick(ctx)
			}()
		}
	}
}

// Tick runs fn unless a previous run is still in progress. It reports whether fn ran.
func (p *Poller) Tick(ctx context.Context) (ran bool) {
	if !p.running.CompareAndSwap(false, true) {
		n := p.skipped.Add(1)
		p.logger.Debugf("refresh still running, tick skipped (%d so far)", n)
		return false
	}
	defer p.running.Store(false)
	defer func() {
		if r := recover(); r != nil {
			p.logger.Errorf("refresh panicked: %v", r)
		}
	}()

	ran = true
	p.fn(ctx)
	return ran
}

// Skipped is how many ticks were dropped because the previous run overlapped.
func (p *Poller) Skipped() int64 { return p.skipped.Load() }
