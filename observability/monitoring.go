package observability

import (
	"log/slog"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/process"
)

// MonitoringStats aggregates gateway and process metrics for /health and logs.
type MonitoringStats struct {
	EventsInPerSec  float64 `json:"events_in_per_sec"`
	EventsOutPerSec float64 `json:"events_out_per_sec"`
	EventsReceived  uint64  `json:"events_received"`
	EventsSent      uint64  `json:"events_sent"`
	EventsDropped   uint64  `json:"events_dropped"`
	ErrorCount      uint64  `json:"error_count"`
	Connections     int64   `json:"connections"`
	LunchRooms      int     `json:"lunch_rooms"`
	CorpseRooms     int     `json:"corpse_rooms"`

	// --- PROCESS METRICS ---
	RSSBytes   uint64  `json:"rss_bytes"`
	CPUPercent float64 `json:"cpu_percent"`
	Goroutines int     `json:"goroutines"`
	AllocMemMb uint64  `json:"alloc_mem_mb"`
	NumGC      uint32  `json:"num_gc"`
}

// RoomCounter reports how many rooms a coordinator currently holds.
type RoomCounter func() int

// MonitoringManager collects counters from the gateway and samples the
// process through gopsutil on every Refresh.
type MonitoringManager struct {
	log         *slog.Logger
	mu          sync.RWMutex
	latestStats MonitoringStats
	proc        *process.Process
	lunchRooms  RoomCounter
	corpseRooms RoomCounter

	eventsReceived uint64
	eventsSent     uint64
	eventsDropped  uint64
	errorCount     uint64
	connections    int64

	lastReceived uint64
	lastSent     uint64
	lastCheck    time.Time
}

func NewMonitoringManager(log *slog.Logger) *MonitoringManager {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		log.Warn("Process metrics unavailable", "err", err)
	}
	return &MonitoringManager{
		log:       log,
		proc:      proc,
		lastCheck: time.Now(),
	}
}

// WatchRooms registers the room counters sampled on Refresh.
func (mm *MonitoringManager) WatchRooms(lunch, corpse RoomCounter) {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	mm.lunchRooms = lunch
	mm.corpseRooms = corpse
}

func (mm *MonitoringManager) IncrEventsReceived() {
	atomic.AddUint64(&mm.eventsReceived, 1)
}

func (mm *MonitoringManager) IncrEventsSent() {
	atomic.AddUint64(&mm.eventsSent, 1)
}

func (mm *MonitoringManager) IncrEventsDropped() {
	atomic.AddUint64(&mm.eventsDropped, 1)
}

func (mm *MonitoringManager) IncrErrorCount() {
	atomic.AddUint64(&mm.errorCount, 1)
}

func (mm *MonitoringManager) ConnectionOpened() {
	atomic.AddInt64(&mm.connections, 1)
}

func (mm *MonitoringManager) ConnectionClosed() {
	atomic.AddInt64(&mm.connections, -1)
}

// Refresh recomputes rates since the previous call and samples the process.
func (mm *MonitoringManager) Refresh() MonitoringStats {
	mm.mu.Lock()
	defer mm.mu.Unlock()

	now := time.Now()
	received := atomic.LoadUint64(&mm.eventsReceived)
	sent := atomic.LoadUint64(&mm.eventsSent)
	if elapsed := now.Sub(mm.lastCheck).Seconds(); elapsed > 0 {
		mm.latestStats.EventsInPerSec = float64(received-mm.lastReceived) / elapsed
		mm.latestStats.EventsOutPerSec = float64(sent-mm.lastSent) / elapsed
	}
	mm.lastReceived, mm.lastSent, mm.lastCheck = received, sent, now

	mm.latestStats.EventsReceived = received
	mm.latestStats.EventsSent = sent
	mm.latestStats.EventsDropped = atomic.LoadUint64(&mm.eventsDropped)
	mm.latestStats.ErrorCount = atomic.LoadUint64(&mm.errorCount)
	mm.latestStats.Connections = atomic.LoadInt64(&mm.connections)
	if mm.lunchRooms != nil {
		mm.latestStats.LunchRooms = mm.lunchRooms()
	}
	if mm.corpseRooms != nil {
		mm.latestStats.CorpseRooms = mm.corpseRooms()
	}

	if mm.proc != nil {
		if mem, err := mm.proc.MemoryInfo(); err == nil {
			mm.latestStats.RSSBytes = mem.RSS
		} else {
			mm.log.Debug("Failed to read process memory", "err", err)
		}
		if cpu, err := mm.proc.CPUPercent(); err == nil {
			mm.latestStats.CPUPercent = cpu
		} else {
			mm.log.Debug("Failed to read process cpu", "err", err)
		}
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	mm.latestStats.AllocMemMb = m.Alloc / 1024 / 1024
	mm.latestStats.NumGC = m.NumGC
	mm.latestStats.Goroutines = runtime.NumGoroutine()

	return mm.latestStats
}

func (mm *MonitoringManager) GetLatest() MonitoringStats {
	mm.mu.RLock()
	defer mm.mu.RUnlock()
	return mm.latestStats
}
