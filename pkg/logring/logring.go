// Package logring provides a fixed-capacity, thread-safe buffer of recent
// application events, served over the HTTP log endpoints.
package logring

import (
	"sync"
	"time"

	logx "github.com/tunescout-poc/server/pkg/logger"
)

// DefaultCapacity bounds the buffer to the newest 1000 entries.
const DefaultCapacity = 1000

// Levels recognised by the buffer. SUCCESS is a presentation-level variant of
// INFO used by the request pipeline narration.
const (
	LevelInfo    = "INFO"
	LevelWarning = "WARNING"
	LevelError   = "ERROR"
	LevelSuccess = "SUCCESS"
)

const timestampLayout = "2006-01-02 15:04:05.000"

// Entry is a single immutable log record.
type Entry struct {
	Timestamp string         `json:"timestamp"`
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data"`
}

// Ring is a bounded FIFO buffer of Entry values. All operations are mutually
// exclusive so a reader never observes a half-evicted buffer.
type Ring struct {
	mu       sync.Mutex
	capacity int
	entries  []Entry
}

// New returns a Ring bounded to capacity entries. Non-positive capacities fall
// back to DefaultCapacity.
func New(capacity int) *Ring {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Ring{
		capacity: capacity,
		entries:  make([]Entry, 0, capacity),
	}
}

// Append records an entry stamped at call time, evicting the oldest entry when
// the buffer is full. It never fails the caller; the entry is also mirrored to
// the process logger.
func (r *Ring) Append(level, message string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	entry := Entry{
		Timestamp: time.Now().Format(timestampLayout),
		Level:     level,
		Message:   message,
		Data:      data,
	}

	r.mu.Lock()
	if len(r.entries) >= r.capacity {
		copy(r.entries, r.entries[1:])
		r.entries[len(r.entries)-1] = entry
	} else {
		r.entries = append(r.entries, entry)
	}
	r.mu.Unlock()

	mirror(level, message)
}

// Recent returns up to limit of the most recently appended entries in
// insertion order, most recent last. It never mutates the buffer.
func (r *Ring) Recent(limit int) []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 || limit > len(r.entries) {
		limit = len(r.entries)
	}
	out := make([]Entry, limit)
	copy(out, r.entries[len(r.entries)-limit:])
	return out
}

// Clear removes all entries.
func (r *Ring) Clear() {
	r.mu.Lock()
	r.entries = r.entries[:0]
	r.mu.Unlock()
}

// Len reports the current number of buffered entries.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func mirror(level, message string) {
	switch level {
	case LevelWarning:
		logx.Warn().Msg(message)
	case LevelError:
		logx.Error().Msg(message)
	default:
		logx.Info().Msg(message)
	}
}
