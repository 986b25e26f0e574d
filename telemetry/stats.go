package telemetry

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dfcarvalho/barberdesk/constants"
)

// StatsCollector counts store activity. It implements the store package's
// Metrics interface, so wiring it into the stores is a single assignment.
type StatsCollector struct {
	totalMutations   int64
	snapshotFailures int64
	mutationsPerMin  int64

	mu                sync.Mutex
	mutationsByEntity map[string]int64

	startTime time.Time

	ctx    context.Context
	cancel context.CancelFunc
}

// Stats is a point-in-time snapshot of collected counters.
type Stats struct {
	TotalMutations    int64
	MutationsPerMin   int64
	SnapshotFailures  int64
	MutationsByEntity map[string]int64
	Uptime            time.Duration
	GoRoutines        int
	MemoryUsage       string
	LastUpdated       time.Time
}

func NewStatsCollector() *StatsCollector {
	ctx, cancel := context.WithCancel(context.Background())
	return &StatsCollector{
		mutationsByEntity: make(map[string]int64),
		startTime:         time.Now(),
		ctx:               ctx,
		cancel:            cancel,
	}
}

// RecordMutation counts one applied store mutation for the given entity kind.
func (sc *StatsCollector) RecordMutation(entity string) {
	atomic.AddInt64(&sc.totalMutations, 1)
	sc.mu.Lock()
	sc.mutationsByEntity[entity]++
	sc.mu.Unlock()
}

// RecordSnapshotFailure counts one mutation that stayed in memory only.
func (sc *StatsCollector) RecordSnapshotFailure() {
	atomic.AddInt64(&sc.snapshotFailures, 1)
}

// StartRateCalculation begins the background mutations-per-minute window.
func (sc *StatsCollector) StartRateCalculation() {
	go func() {
		ticker := time.NewTicker(constants.DefaultStatsInterval)
		defer ticker.Stop()

		var lastTotal int64
		lastTime := time.Now()

		for {
			select {
			case <-sc.ctx.Done():
				return
			case now := <-ticker.C:
				total := atomic.LoadInt64(&sc.totalMutations)
				elapsed := now.Sub(lastTime).Minutes()
				if elapsed > 0 {
					rate := int64(float64(total-lastTotal) / elapsed)
					atomic.StoreInt64(&sc.mutationsPerMin, rate)
				}
				lastTotal = total
				lastTime = now
			}
		}
	}()
}

// Stop ends background collection.
func (sc *StatsCollector) Stop() {
	sc.cancel()
}

// Collect returns the current counters plus process-level stats.
func (sc *StatsCollector) Collect() Stats {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	sc.mu.Lock()
	byEntity := make(map[string]int64, len(sc.mutationsByEntity))
	for k, v := range sc.mutationsByEntity {
		byEntity[k] = v
	}
	sc.mu.Unlock()

	return Stats{
		TotalMutations:    atomic.LoadInt64(&sc.totalMutations),
		MutationsPerMin:   atomic.LoadInt64(&sc.mutationsPerMin),
		SnapshotFailures:  atomic.LoadInt64(&sc.snapshotFailures),
		MutationsByEntity: byEntity,
		Uptime:            time.Since(sc.startTime),
		GoRoutines:        runtime.NumGoroutine(),
		MemoryUsage:       fmt.Sprintf("%.1f MB", float64(mem.Alloc)/1024/1024),
		LastUpdated:       time.Now(),
	}
}
