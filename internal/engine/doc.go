// Package engine implements the concurrent brute-force search: candidate
// dispatch, a pool of verifying workers, cross-goroutine cancellation,
// progress aggregation, and graceful shutdown.
//
// The moving parts and how they connect:
//
//   - A dispatcher goroutine streams candidates from a keyspace enumeration
//     into a bounded channel. The channel's capacity is a small multiple of
//     the worker count, so generation never runs far ahead of verification.
//   - N worker goroutines drain the channel in batches, invoke the Verifier
//     for each candidate, and report per-batch counts on a progress channel.
//     The first worker to find a match trips the shared latch and publishes
//     the candidate on the result channel.
//   - The coordinator (Cracker.Run) owns the latch and both channels. It
//     aggregates progress, watches for the match and for external
//     cancellation, joins all goroutines with a bounded timeout, and
//     produces exactly one Result.
//
// Design decision: the latch is the single source of cancellation truth.
// Workers check it at batch granularity, not per verification call, because
// an in-flight verification is not preemptible anyway. Closing the candidate
// channel is the end-of-input sentinel every worker observes. No other
// mutable state is shared between goroutines; progress counts travel as
// messages and are summed by the coordinator alone, which rules out double
// counting by construction.
package engine
