package engine

import "iter"

// dispatcher bridges the keyspace enumeration to the bounded candidate
// channel shared by the workers. Its only side effect is channel writes;
// it holds no counters and shares no state beyond the latch.
//
// Backpressure falls out of the bounded channel: when workers are slower
// than generation, the send blocks and the enumeration simply pauses.
type dispatcher struct {
	seq        iter.Seq[string]
	candidates chan<- string
	latch      *latch
}

// run streams candidates until the enumeration is exhausted or the latch
// trips. In both cases the candidate channel is closed, which is the
// end-of-input sentinel every worker observes.
func (d *dispatcher) run() {
	defer close(d.candidates)
	for candidate := range d.seq {
		select {
		case d.candidates <- candidate:
		case <-d.latch.doneCh():
			return
		}
	}
}
