// Package history keeps an in-memory log of recent renders so the API
// and shell can answer "what did we produce lately" without a database.
package history

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dsgeops/pilotdeck/pkg/export"
	"github.com/dsgeops/pilotdeck/pkg/report"
)

// Render sources recorded on each entry.
const (
	SourceAPI   = "api"
	SourceShell = "shell"
	SourceCLI   = "cli"
)

// DefaultTTL is how long records live before Cleanup evicts them.
const DefaultTTL = 24 * time.Hour

// defaultCap bounds the log so a long-running server cannot grow it
// without bound between cleanups.
const defaultCap = 100

// Record describes one completed render.
type Record struct {
	ID     string    `json:"id"`
	At     time.Time `json:"at"`
	Title  string    `json:"title"`
	Pages  int       `json:"pages"`
	Bytes  int       `json:"bytes"`
	SHA256 string    `json:"sha256"`
	Source string    `json:"source"`
}

// NewRecord builds a Record from a rendered document. The ID is
// assigned when the record is added to a Log.
func NewRecord(doc report.Document, title, source string) Record {
	return Record{
		At:     doc.RenderedAt,
		Title:  title,
		Pages:  doc.Pages,
		Bytes:  len(doc.Bytes),
		SHA256: export.Digest(doc.Bytes),
		Source: source,
	}
}

// Log is a thread-safe render registry with TTL eviction. Records are
// kept in insertion order so Recent can walk newest-first without
// sorting.
type Log struct {
	mu      sync.Mutex
	records map[string]Record
	order   []string
	ttl     time.Duration
	cap     int
	now     func() time.Time
}

// NewLog creates a log that evicts records older than ttl. A zero or
// negative ttl falls back to DefaultTTL.
func NewLog(ttl time.Duration) *Log {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Log{
		records: make(map[string]Record),
		ttl:     ttl,
		cap:     defaultCap,
		now:     time.Now,
	}
}

// Add stores a record and returns it with ID and At filled in when
// the caller left them empty. When the log is full the oldest record
// is dropped.
func (l *Log) Add(rec Record) Record {
	l.mu.Lock()
	defer l.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.At.IsZero() {
		rec.At = l.now().UTC()
	}
	if _, exists := l.records[rec.ID]; !exists {
		l.order = append(l.order, rec.ID)
	}
	l.records[rec.ID] = rec

	for len(l.order) > l.cap {
		delete(l.records, l.order[0])
		l.order = l.order[1:]
	}
	return rec
}

// Get returns the record with the given id.
func (l *Log) Get(id string) (Record, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	rec, ok := l.records[id]
	return rec, ok
}

// Recent returns up to n records, newest first. n <= 0 returns all.
func (l *Log) Recent(n int) []Record {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n <= 0 || n > len(l.order) {
		n = len(l.order)
	}
	out := make([]Record, 0, n)
	for i := len(l.order) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, l.records[l.order[i]])
	}
	return out
}

// Len reports how many records the log currently holds.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.order)
}

// Cleanup removes expired records and reports how many were evicted.
func (l *Log) Cleanup() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.ttl)
	kept := l.order[:0]
	evicted := 0
	for _, id := range l.order {
		if l.records[id].At.Before(cutoff) {
			delete(l.records, id)
			evicted++
			continue
		}
		kept = append(kept, id)
	}
	l.order = kept
	return evicted
}
