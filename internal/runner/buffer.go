package runner

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// BufferAction defines what to do when the line buffer is full
type BufferAction int

// BufferActionBlock is the zero value: output is never lost, and a stalled
// consumer applies back pressure to the process.
const (
	BufferActionBlock BufferAction = iota
	BufferActionDrop
	BufferActionEvictOldest
)

// String makes BufferAction satisfy the fmt.Stringer interface
func (ba BufferAction) String() string {
	switch ba {
	case BufferActionDrop:
		return "Drop"
	case BufferActionBlock:
		return "Block"
	case BufferActionEvictOldest:
		return "EvictOldest"
	default:
		return "Unknown"
	}
}

// ParseBufferAction accepts the names produced by String, case-insensitively.
func ParseBufferAction(s string) (BufferAction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "drop":
		return BufferActionDrop, nil
	case "", "block":
		return BufferActionBlock, nil
	case "evictoldest", "evict-oldest", "evict":
		return BufferActionEvictOldest, nil
	default:
		return BufferActionBlock, fmt.Errorf("unknown buffer action %q", s)
	}
}

// BufferStats is a snapshot of line buffer metrics
type BufferStats struct {
	LinesSent        int64
	LinesDropped     int64
	LinesBlocked     int64
	LinesEvicted     int64
	LastDropTime     time.Time
	LastBlockTime    time.Time
	LastEvictionTime time.Time
}

// LineBuffer carries lines from the reader to the consumer with a
// configurable overflow behavior. Send and Close must be called from a single
// producer goroutine.
type LineBuffer struct {
	ch      chan string
	action  BufferAction
	abandon <-chan struct{}

	mu    sync.RWMutex
	stats BufferStats
}

// NewLineBuffer creates a buffer of size lines. A blocking Send gives up when
// abandon is closed.
func NewLineBuffer(size int, action BufferAction, abandon <-chan struct{}) *LineBuffer {
	if size < 1 {
		size = 1
	}
	return &LineBuffer{
		ch:      make(chan string, size),
		action:  action,
		abandon: abandon,
	}
}

// Send enqueues line according to the overflow action. It reports whether
// the line was accepted.
func (b *LineBuffer) Send(line string) bool {
	select {
	case b.ch <- line:
		b.record(func(s *BufferStats) { s.LinesSent++ })
		return true
	default:
	}

	switch b.action {
	case BufferActionBlock:
		b.record(func(s *BufferStats) {
			s.LinesBlocked++
			s.LastBlockTime = time.Now()
		})
		select {
		case b.ch <- line:
			b.record(func(s *BufferStats) { s.LinesSent++ })
			return true
		case <-b.abandon:
			b.record(func(s *BufferStats) {
				s.LinesDropped++
				s.LastDropTime = time.Now()
			})
			return false
		}
	case BufferActionEvictOldest:
		select {
		case <-b.ch:
			b.record(func(s *BufferStats) {
				s.LinesEvicted++
				s.LastEvictionTime = time.Now()
			})
		default:
			// Consumer drained it meanwhile.
		}
		// Only this goroutine sends, so there is room now.
		b.ch <- line
		b.record(func(s *BufferStats) { s.LinesSent++ })
		return true
	default:
		b.record(func(s *BufferStats) {
			s.LinesDropped++
			s.LastDropTime = time.Now()
		})
		return false
	}
}

// Channel returns the receive side of the buffer. It is closed by Close.
func (b *LineBuffer) Channel() <-chan string {
	return b.ch
}

// Close closes the underlying channel
func (b *LineBuffer) Close() {
	close(b.ch)
}

// Stats returns a copy of the current metrics
func (b *LineBuffer) Stats() BufferStats {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.stats
}

func (b *LineBuffer) record(update func(*BufferStats)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	update(&b.stats)
}
