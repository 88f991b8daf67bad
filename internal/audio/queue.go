// Package audio delivers generated bars to the platform audio device in
// fixed-size chunks through a bounded queue, dispatching MIDI events at
// chunk boundaries along the way.
package audio

import (
	"sync/atomic"
	"time"
)

// DefaultPushWait bounds how long a producer waits on a full queue before
// dropping the chunk. Delivery favors timeliness over completeness.
const DefaultPushWait = 500 * time.Millisecond

// Queue is the bounded chunk FIFO between the generation loop and the
// audio callback. Push waits at most the configured duration and then
// drops; Pop never blocks. This is the only state shared between the two
// execution contexts.
type Queue struct {
	ch      chan []float32
	wait    time.Duration
	dropped atomic.Int64
}

// NewQueue creates a queue with the given capacity and push wait bound.
// A wait of zero uses DefaultPushWait.
func NewQueue(capacity int, wait time.Duration) *Queue {
	if wait <= 0 {
		wait = DefaultPushWait
	}
	return &Queue{ch: make(chan []float32, capacity), wait: wait}
}

// Push enqueues a chunk, waiting up to the bound if the queue is full.
// Returns false when the chunk was dropped instead.
func (q *Queue) Push(chunk []float32) bool {
	select {
	case q.ch <- chunk:
		return true
	default:
	}
	timer := time.NewTimer(q.wait)
	defer timer.Stop()
	select {
	case q.ch <- chunk:
		return true
	case <-timer.C:
		q.dropped.Add(1)
		return false
	}
}

// Pop dequeues one chunk without blocking. The second return is false
// when the queue is empty; the caller outputs silence.
func (q *Queue) Pop() ([]float32, bool) {
	select {
	case chunk := <-q.ch:
		return chunk, true
	default:
		return nil, false
	}
}

// Len returns the number of queued chunks.
func (q *Queue) Len() int { return len(q.ch) }

// Dropped returns how many chunks have been dropped on full-queue pushes.
func (q *Queue) Dropped() int64 { return q.dropped.Load() }
