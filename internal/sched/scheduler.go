// Package sched provides a virtual-time scheduler for recurring tasks.
//
// Time only moves when Advance is called, so a simulation driven by a
// Scheduler is deterministic and can run faster or slower than wall time.
// A Scheduler is not safe for concurrent use; it belongs to one owner.
package sched

import (
	"container/heap"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidPeriod is returned when a task period is not positive.
	ErrInvalidPeriod = errors.New("sched: period must be positive")
	// ErrStopped is returned when scheduling on a stopped scheduler.
	ErrStopped = errors.New("sched: scheduler stopped")
)

// Task is a handle to a recurring callback.
type Task struct {
	sched  *Scheduler
	fn     func()
	period time.Duration
	next   time.Duration
	seq    uint64
	index  int // position in the queue, -1 when not queued
}

// Cancel stops the task. Cancelling twice, or cancelling a nil task, is a no-op.
func (t *Task) Cancel() {
	if t == nil || t.index < 0 {
		return
	}
	heap.Remove(&t.sched.queue, t.index)
}

// Active reports whether the task is still scheduled.
func (t *Task) Active() bool {
	return t != nil && t.index >= 0
}

// Scheduler runs recurring tasks against a virtual clock.
type Scheduler struct {
	now     time.Duration
	queue   taskQueue
	seq     uint64
	stopped bool
}

// New creates a scheduler with its clock at zero.
func New() *Scheduler {
	return &Scheduler{}
}

// Now returns the current virtual time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Every schedules fn to run each period, first at Now()+period.
// Tasks due at the same instant run in the order they were created.
func (s *Scheduler) Every(period time.Duration, fn func()) (*Task, error) {
	if period <= 0 {
		return nil, fmt.Errorf("every %v: %w", period, ErrInvalidPeriod)
	}
	if s.stopped {
		return nil, ErrStopped
	}
	s.seq++
	t := &Task{
		sched:  s,
		fn:     fn,
		period: period,
		next:   s.now + period,
		seq:    s.seq,
	}
	heap.Push(&s.queue, t)
	return t, nil
}

// Advance moves the clock forward by d, running every task that falls due.
// It returns the number of callbacks run. Negative durations are ignored.
func (s *Scheduler) Advance(d time.Duration) int {
	if d < 0 || s.stopped {
		return 0
	}
	target := s.now + d
	fired := 0

	for len(s.queue) > 0 && !s.stopped {
		t := s.queue[0]
		if t.next > target {
			break
		}
		s.now = t.next
		// Requeue before running so the callback may cancel its own task.
		t.next += t.period
		heap.Fix(&s.queue, 0)

		t.fn()
		fired++
	}

	if !s.stopped {
		s.now = target
	}
	return fired
}

// Active returns the number of scheduled tasks.
func (s *Scheduler) Active() int {
	return len(s.queue)
}

// Stop cancels every task and refuses new ones. Calling Stop from inside a
// callback ends the current Advance after that callback returns.
func (s *Scheduler) Stop() {
	for len(s.queue) > 0 {
		heap.Pop(&s.queue)
	}
	s.stopped = true
}

// Stopped reports whether Stop has been called.
func (s *Scheduler) Stopped() bool {
	return s.stopped
}

// taskQueue is a min-heap ordered by due time, then creation order.
type taskQueue []*Task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].next != q[j].next {
		return q[i].next < q[j].next
	}
	return q[i].seq < q[j].seq
}

func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *taskQueue) Push(x any) {
	t := x.(*Task)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
