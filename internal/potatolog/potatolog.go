// Package potatolog provides an in-memory log sink, used to keep the most
// recent log (including trace) records around while the terminal is in raw
// mode.
package potatolog

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ja-he/edkeys/internal/input/ring"
)

// LogEntry is a single log entry.
type LogEntry = map[string]any

// DefaultCapacity is the number of entries the global log keeps.
const DefaultCapacity = 1024

// GlobalMemoryLogReaderWriter is a global MemoryLogReaderWriter.
var GlobalMemoryLogReaderWriter = NewMemoryLogReaderWriter(DefaultCapacity)

// MemoryLogReaderWriter is a simple in-memory log reader and writer.
// Once full, every new entry evicts the oldest one.
type MemoryLogReaderWriter struct {
	mtx     sync.Mutex
	log     *ring.Ring[LogEntry]
	written int
}

// NewMemoryLogReaderWriter returns a pointer to a new log keeping the most
// recent capacity entries.
func NewMemoryLogReaderWriter(capacity int) *MemoryLogReaderWriter {
	return &MemoryLogReaderWriter{log: ring.New[LogEntry](capacity + 1)}
}

// Write appends a log entry to the log.
func (w *MemoryLogReaderWriter) Write(p []byte) (int, error) {
	entry := LogEntry{}
	err := json.Unmarshal(p, &entry)
	if err != nil {
		return 0, fmt.Errorf("could not unmarshal log entry (err:%s) (input:'%s')", err.Error(), string(p))
	}

	w.mtx.Lock()
	defer w.mtx.Unlock()
	if w.log.Full() {
		w.log.Pop()
	}
	w.log.Push(entry)
	w.written++
	return len(p), nil
}

// Get returns the log, oldest entry first.
func (w *MemoryLogReaderWriter) Get() []LogEntry {
	w.mtx.Lock()
	defer w.mtx.Unlock()

	result := make([]LogEntry, 0, w.log.Len())
	for i := 0; i < w.log.Len(); i++ {
		e, _ := w.log.Pop()
		result = append(result, e)
		w.log.Push(e)
	}
	return result
}

// Since returns the entries written after the first n entries ever written,
// along with the total number of entries written so far, to be passed as n
// on the next call. Entries already evicted are skipped.
func (w *MemoryLogReaderWriter) Since(n int) ([]LogEntry, int) {
	all := w.Get()

	w.mtx.Lock()
	written := w.written
	w.mtx.Unlock()

	skip := len(all) - (written - n)
	if skip < 0 {
		skip = 0
	}
	if skip > len(all) {
		skip = len(all)
	}
	return all[skip:], written
}

// LogReader allows reading access to a log.
type LogReader interface {
	Get() []LogEntry
}
