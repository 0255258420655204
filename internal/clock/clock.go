// Package clock provides the delay primitive the animation flows are driven by.
//
// Every implementation runs callbacks serially: a callback never runs
// concurrently with another callback from the same scheduler. This is the
// single-threaded cooperative model the sequencer relies on.
package clock

import (
	"container/heap"
	"time"
)

// Scheduler runs fn once after d has elapsed.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// Func adapts a function to Scheduler.
type Func func(d time.Duration, fn func())

func (f Func) After(d time.Duration, fn func()) { f(d, fn) }

// entry is a scheduled callback. Ties on at are broken by seq so callbacks
// scheduled for the same instant run in scheduling order.
type entry struct {
	at  time.Duration
	seq uint64
	fn  func()
}

type queue []*entry

func (q queue) Len() int { return len(q) }
func (q queue) Less(i, j int) bool {
	if q[i].at == q[j].at {
		return q[i].seq < q[j].seq
	}
	return q[i].at < q[j].at
}
func (q queue) Swap(i, j int)  { q[i], q[j] = q[j], q[i] }
func (q *queue) Push(x any)    { *q = append(*q, x.(*entry)) }
func (q *queue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return e
}

func (q *queue) push(e *entry) { heap.Push(q, e) }
func (q *queue) pop() *entry   { return heap.Pop(q).(*entry) }
func (q queue) peek() *entry {
	if len(q) == 0 {
		return nil
	}
	return q[0]
}
