// internal/app/system/workers/sessionreaper.go
package workers

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Reaper is the slice of the session engine the worker drives. Deleting
// through the engine keeps the task cascade and locking intact.
type Reaper interface {
	ReapEndedBefore(ctx context.Context, cutoff time.Time) (int, error)
}

// SessionReaper is a background worker that removes study sessions whose
// end time has passed the retention window, tasks included.
type SessionReaper struct {
	engine    Reaper
	log       *zap.Logger
	interval  time.Duration
	retention time.Duration
	stopCh    chan struct{}
	wg        sync.WaitGroup
}

// NewSessionReaper creates a new reaper.
//
// Parameters:
//   - engine: the session engine to delete through
//   - logger: zap logger for logging
//   - interval: how often to sweep (e.g., 1 hour)
//   - retention: how long an ended session is kept before removal (e.g., 720h)
func NewSessionReaper(engine Reaper, logger *zap.Logger, interval, retention time.Duration) *SessionReaper {
	return &SessionReaper{
		engine:    engine,
		log:       logger,
		interval:  interval,
		retention: retention,
		stopCh:    make(chan struct{}),
	}
}

// Start begins the background sweep loop.
func (w *SessionReaper) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("session reaper started",
		zap.Duration("interval", w.interval),
		zap.Duration("retention", w.retention))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *SessionReaper) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("session reaper stopped")
}

func (w *SessionReaper) run() {
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

func (w *SessionReaper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().Add(-w.retention)
	count, err := w.engine.ReapEndedBefore(ctx, cutoff)
	if err != nil {
		w.log.Error("session sweep failed", zap.Error(err))
		return
	}
	if count > 0 {
		w.log.Info("expired sessions removed", zap.Int("count", count))
	}
}
