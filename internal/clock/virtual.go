package clock

import "time"

// Virtual is a deterministic scheduler over virtual time.
// It is not safe for concurrent use; callbacks may schedule further callbacks.
type Virtual struct {
	now   time.Duration
	seq   uint64
	queue queue
}

// NewVirtual creates a virtual clock at time zero
func NewVirtual() *Virtual {
	return &Virtual{}
}

// After schedules fn at Now()+d. Negative delays are treated as zero.
func (v *Virtual) After(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	v.seq++
	v.queue.push(&entry{at: v.now + d, seq: v.seq, fn: fn})
}

// Now returns the virtual time elapsed since creation
func (v *Virtual) Now() time.Duration {
	return v.now
}

// Pending returns the number of callbacks not yet run
func (v *Virtual) Pending() int {
	return v.queue.Len()
}

// Advance moves time forward by d, running every callback due on the way
// in due order. Callbacks observe Now() equal to their due time.
func (v *Virtual) Advance(d time.Duration) {
	target := v.now + d
	for {
		next := v.queue.peek()
		if next == nil || next.at > target {
			break
		}
		e := v.queue.pop()
		v.now = e.at
		e.fn()
	}
	v.now = target
}

// RunUntilIdle runs callbacks until none remain and returns the final time.
// It stops after limit callbacks to keep self-rescheduling work from spinning.
func (v *Virtual) RunUntilIdle(limit int) time.Duration {
	for ran := 0; ran < limit; ran++ {
		if v.queue.Len() == 0 {
			break
		}
		e := v.queue.pop()
		v.now = e.at
		e.fn()
	}
	return v.now
}
