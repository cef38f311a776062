package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// StatsSource exposes the subset of application functionality the refresher
// needs.
type StatsSource interface {
	RefreshOrderStats(ctx context.Context) error
}

// StatsRefresher keeps the cached order statistics view warm so admin
// dashboards read a precomputed aggregate instead of triggering the GROUP BY
// on every request.
type StatsRefresher struct {
	source   StatsSource
	interval time.Duration
	logger   *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewStatsRefresher constructs the background refresher.
func NewStatsRefresher(source StatsSource, interval time.Duration, logger *slog.Logger) *StatsRefresher {
	if interval <= 0 {
		interval = time.Minute
	}
	return &StatsRefresher{source: source, interval: interval, logger: logger}
}

// Start launches the refresh loop. The first refresh runs immediately so the
// cache is warm before the first admin request.
func (r *StatsRefresher) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	r.wg.Add(1)
	go r.loop(runCtx)
}

// Stop halts the loop and waits for an in-flight refresh to finish.
func (r *StatsRefresher) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *StatsRefresher) loop(ctx context.Context) {
	defer r.wg.Done()

	r.refresh(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

func (r *StatsRefresher) refresh(ctx context.Context) {
	if err := r.source.RefreshOrderStats(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		r.logger.Error("refresh order stats", slog.String("error", err.Error()))
	}
}
