package workers

import (
	"context"
	"log/slog"
	"room-lab/observability"
	"time"
)

// TelemetryWorker periodically refreshes process and gateway metrics and logs them.
type TelemetryWorker struct {
	log            *slog.Logger
	metricInterval time.Duration
	monitoring     *observability.MonitoringManager
}

func NewTelemetryWorker(log *slog.Logger, metricInterval time.Duration, monitoring *observability.MonitoringManager) *TelemetryWorker {
	return &TelemetryWorker{
		log:            log,
		metricInterval: metricInterval,
		monitoring:     monitoring,
	}
}

func (w *TelemetryWorker) Run(ctx context.Context) error {
	return runEvery(ctx, w.metricInterval, func(context.Context) {
		stats := w.monitoring.Refresh()
		w.log.Debug("Telemetry",
			"connections", stats.Connections,
			"lunch_rooms", stats.LunchRooms,
			"corpse_rooms", stats.CorpseRooms,
			"events_in_per_sec", stats.EventsInPerSec,
			"events_out_per_sec", stats.EventsOutPerSec,
			"dropped", stats.EventsDropped,
			"rss_bytes", stats.RSSBytes,
			"cpu_percent", stats.CPUPercent,
		)
	})
}
