// internal/app/system/workers/sweeper.go
package workers

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Sweepable is an in-process store whose expired entries must be dropped
// periodically.
type Sweepable interface {
	Sweep() int
}

// Sweeper is a background worker that sweeps a store on an interval.
type Sweeper struct {
	name     string
	target   Sweepable
	log      *zap.Logger
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewSweeper creates a sweeper for target. name only appears in logs.
func NewSweeper(name string, target Sweepable, logger *zap.Logger, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Sweeper{
		name:     name,
		target:   target,
		log:      logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background sweep loop.
func (w *Sweeper) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("sweeper started",
		zap.String("name", w.name),
		zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish. It is safe
// to call more than once.
func (w *Sweeper) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
	w.wg.Wait()
}

func (w *Sweeper) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *Sweeper) sweep() {
	if n := w.target.Sweep(); n > 0 {
		w.log.Debug("swept expired entries",
			zap.String("name", w.name),
			zap.Int("count", n))
	}
}
