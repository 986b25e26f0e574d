package telemetry

import (
	"io"
	"sync"
	"time"
)

type LogEntry struct {
	Timestamp time.Time
	Message   string
}

// LogCapture is an io.Writer that keeps a bounded ring of recent log lines,
// mirrors them to any additional writers, and fires a callback per entry so
// the console log pane can follow along.
type LogCapture struct {
	mu      sync.RWMutex
	entries []LogEntry
	maxSize int
	writers []io.Writer
	onLog   func(LogEntry)
}

func NewLogCapture(maxSize int) *LogCapture {
	return &LogCapture{
		entries: make([]LogEntry, 0, maxSize),
		maxSize: maxSize,
	}
}

func (lc *LogCapture) Write(p []byte) (int, error) {
	entry := LogEntry{
		Timestamp: time.Now(),
		Message:   string(p),
	}

	lc.mu.Lock()
	if len(lc.entries) >= lc.maxSize {
		lc.entries = lc.entries[1:]
	}
	lc.entries = append(lc.entries, entry)
	onLog := lc.onLog
	writers := lc.writers
	lc.mu.Unlock()

	if onLog != nil {
		onLog(entry)
	}

	for _, w := range writers {
		w.Write(p)
	}

	return len(p), nil
}

func (lc *LogCapture) AddWriter(w io.Writer) {
	lc.mu.Lock()
	lc.writers = append(lc.writers, w)
	lc.mu.Unlock()
}

func (lc *LogCapture) SetLogCallback(callback func(LogEntry)) {
	lc.mu.Lock()
	lc.onLog = callback
	lc.mu.Unlock()
}

func (lc *LogCapture) GetAllLogs() []LogEntry {
	lc.mu.RLock()
	defer lc.mu.RUnlock()

	result := make([]LogEntry, len(lc.entries))
	copy(result, lc.entries)
	return result
}
