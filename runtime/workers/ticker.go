package workers

import (
	"context"
	"log/slog"
	"room-lab/contract"
	"time"
)

// SweepWorker resolves expired voting rooms on a short period so a
// resolution is never late by more than one interval.
type SweepWorker struct {
	log      *slog.Logger
	sweeper  contract.Sweeper
	interval time.Duration
}

func NewSweepWorker(log *slog.Logger, sweeper contract.Sweeper, interval time.Duration) *SweepWorker {
	return &SweepWorker{log: log, sweeper: sweeper, interval: interval}
}

func (w *SweepWorker) Run(ctx context.Context) error {
	w.log.Info("Starting sweep worker", "interval", w.interval)
	return runEvery(ctx, w.interval, w.sweeper.Sweep)
}

// AnnounceWorker pushes the remaining time to every active voting room.
// It ticks independently from SweepWorker.
type AnnounceWorker struct {
	log       *slog.Logger
	announcer contract.Announcer
	interval  time.Duration
}

func NewAnnounceWorker(log *slog.Logger, announcer contract.Announcer, interval time.Duration) *AnnounceWorker {
	return &AnnounceWorker{log: log, announcer: announcer, interval: interval}
}

func (w *AnnounceWorker) Run(ctx context.Context) error {
	w.log.Info("Starting announce worker", "interval", w.interval)
	return runEvery(ctx, w.interval, w.announcer.AnnounceTime)
}

// runEvery returns nil on cancellation so the supervisor doesn't restart it.
func runEvery(ctx context.Context, interval time.Duration, fn func(ctx context.Context)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			fn(ctx)
		}
	}
}
