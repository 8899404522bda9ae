package engine

import (
	"context"
	"time"
)

// verifyError is one worker-contained verification failure, surfaced on the
// side error channel when error reporting is enabled.
type verifyError struct {
	candidate string
	err       error
}

// worker drains the candidate channel in batches and verifies each candidate
// against the shared document bytes. Workers never mutate the document and
// never touch a shared counter; verified counts travel to the coordinator as
// per-batch messages.
type worker struct {
	id         int
	document   []byte
	verifier   Verifier
	latch      *latch
	candidates <-chan string
	progress   chan<- uint64
	found      chan<- string
	errs       chan<- verifyError // nil when error reporting is disabled
	quit       <-chan struct{}    // closed if the coordinator stops draining
	batchSize  int
	fillWait   time.Duration
}

// run is the worker loop: fill a batch, verify it, report the count, repeat
// until the latch trips or the candidate channel is closed and drained.
func (w *worker) run(ctx context.Context) {
	batch := make([]string, 0, w.batchSize)
	for {
		var open bool
		batch, open = w.fill(batch[:0])

		if n := w.process(ctx, batch); n > 0 {
			select {
			case w.progress <- n:
			case <-w.quit:
				return
			}
		}

		if w.latch.isTripped() || !open {
			return
		}
	}
}

// fill pulls candidates into batch until the batch is full, the bounded wait
// expires, the channel closes, or the latch trips. It reports whether the
// candidate channel is still open.
//
// A timeout with a non-empty batch hands the partial batch to verification
// rather than waiting indefinitely; a timeout with an empty batch returns to
// the caller, which re-checks the latch and channel state before retrying.
func (w *worker) fill(batch []string) ([]string, bool) {
	timer := time.NewTimer(w.fillWait)
	defer timer.Stop()

	for len(batch) < w.batchSize {
		select {
		case candidate, ok := <-w.candidates:
			if !ok {
				return batch, false
			}
			batch = append(batch, candidate)
		case <-timer.C:
			return batch, true
		case <-w.latch.doneCh():
			return batch, true
		}
	}
	return batch, true
}

// process verifies the candidates in the batch and returns the number
// actually verified. The batch is abandoned as soon as the latch is observed
// tripped; the count may therefore be smaller than the batch, or zero.
//
// A verification error is contained here: the candidate counts as a
// non-match, the error is optionally surfaced, and the search continues.
// A single malformed candidate must never abort the whole run.
func (w *worker) process(ctx context.Context, batch []string) uint64 {
	var verified uint64
	for _, candidate := range batch {
		if w.latch.isTripped() {
			break
		}

		match, err := w.verifier.Verify(ctx, w.document, candidate)
		verified++
		if err != nil {
			w.report(candidate, err)
			continue
		}
		if match {
			if w.latch.trip() {
				// Winner of the race; the result channel has capacity for
				// exactly this one send.
				w.found <- candidate
			}
			break
		}
	}
	return verified
}

// report surfaces a contained verification error, dropping it if the side
// channel is full or reporting is disabled.
func (w *worker) report(candidate string, err error) {
	if w.errs == nil {
		return
	}
	select {
	case w.errs <- verifyError{candidate: candidate, err: err}:
	default:
	}
}
