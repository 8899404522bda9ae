// Package keyspace models the brute-force search space: the character set
// candidates are built from and the ordered, finite stream of candidate
// passwords implied by a length range over that character set.
//
// The enumeration order is deterministic: all candidates of the minimum
// length come first, in the Cartesian-product order implied by the charset
// sequence (rightmost position varies fastest), followed by the next length,
// up to the maximum. Two enumerations with identical parameters produce
// byte-for-byte identical sequences, which is what makes the engine's
// progress accounting and the test suite reproducible.
//
// Design decision: candidates are produced through iter.Seq rather than a
// channel or a materialized slice. The sequence is lazy (search spaces are
// routinely billions of entries), needs no goroutine of its own, and the
// consumer controls the pacing, which is exactly what the dispatcher's
// backpressure model requires.
package keyspace
