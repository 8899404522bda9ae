package engine

import "sync/atomic"

// latch is the write-once-wins cancellation flag shared by the coordinator,
// the dispatcher, and every worker. Once tripped it stays tripped for the
// lifetime of the run.
//
// It pairs an atomic boolean (cheap polling from worker batch loops) with a
// closed channel (selectable from blocking sends and receives). Only the
// CompareAndSwap winner closes the channel, so the close happens exactly
// once.
type latch struct {
	tripped atomic.Bool
	done    chan struct{}
}

func newLatch() *latch {
	return &latch{done: make(chan struct{})}
}

// trip sets the latch and reports whether this caller won the flip.
// The winner is the only caller allowed to publish a result.
func (l *latch) trip() bool {
	if l.tripped.CompareAndSwap(false, true) {
		close(l.done)
		return true
	}
	return false
}

// isTripped reports whether the latch has been set.
func (l *latch) isTripped() bool {
	return l.tripped.Load()
}

// doneCh returns a channel that is closed once the latch trips.
func (l *latch) doneCh() <-chan struct{} {
	return l.done
}
