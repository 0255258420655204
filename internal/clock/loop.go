package clock

import (
	"context"
	"sync"
	"time"
)

// Loop is a real-time scheduler. After may be called from any goroutine;
// callbacks only ever run on the goroutine executing Run.
type Loop struct {
	mu    sync.Mutex
	seq   uint64
	queue queue
	epoch time.Time
	wake  chan struct{}
}

// NewLoop creates a loop whose clock starts now
func NewLoop() *Loop {
	return &Loop{
		epoch: time.Now(),
		wake:  make(chan struct{}, 1),
	}
}

// After schedules fn to run on the loop goroutine after d
func (l *Loop) After(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	l.mu.Lock()
	l.seq++
	l.queue.push(&entry{at: time.Since(l.epoch) + d, seq: l.seq, fn: fn})
	l.mu.Unlock()

	// Non-blocking if a wake-up is already pending
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Run executes callbacks as they come due until ctx is done
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.mu.Lock()
		next := l.queue.peek()
		if next == nil {
			l.mu.Unlock()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-l.wake:
				continue
			}
		}

		wait := next.at - time.Since(l.epoch)
		if wait <= 0 {
			e := l.queue.pop()
			l.mu.Unlock()
			e.fn()
			continue
		}
		l.mu.Unlock()

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-l.wake:
			timer.Stop()
		case <-timer.C:
		}
	}
}
