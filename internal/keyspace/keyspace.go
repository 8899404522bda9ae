package keyspace

import (
	"errors"
	"iter"
	"math"
)

// ErrInvalidLengthRange is returned when the password length range is not
// positive or the minimum exceeds the maximum.
var ErrInvalidLengthRange = errors.New("invalid length range: lengths must be positive and min <= max")

// Keyspace describes a finite brute-force search space: every string whose
// length lies in [MinLen, MaxLen] and whose characters are drawn from
// Charset.
type Keyspace struct {
	// MinLen is the shortest candidate length to enumerate (inclusive).
	MinLen int

	// MaxLen is the longest candidate length to enumerate (inclusive).
	MaxLen int

	// Charset is the ordered character set candidates are built from.
	Charset Charset
}

// New validates the parameters and returns a Keyspace.
// Validation happens here, before any worker is spawned, so that a bad
// configuration never starts a search.
func New(minLen, maxLen int, charset Charset) (*Keyspace, error) {
	if len(charset) == 0 {
		return nil, ErrEmptyCharset
	}
	if minLen <= 0 || maxLen <= 0 || minLen > maxLen {
		return nil, ErrInvalidLengthRange
	}
	return &Keyspace{MinLen: minLen, MaxLen: maxLen, Charset: charset}, nil
}

// Size returns the total number of candidates in the keyspace:
// the sum of |Charset|^L for every L in [MinLen, MaxLen].
// The result saturates at math.MaxUint64 for spaces too large to count,
// which are far beyond anything a run could ever verify anyway.
func (k *Keyspace) Size() uint64 {
	base := uint64(len(k.Charset))
	var total uint64
	for l := k.MinLen; l <= k.MaxLen; l++ {
		n := uint64(1)
		for range l {
			if n > math.MaxUint64/base {
				return math.MaxUint64
			}
			n *= base
		}
		if total > math.MaxUint64-n {
			return math.MaxUint64
		}
		total += n
	}
	return total
}

// All returns the lazy, ordered sequence of every candidate in the keyspace.
// The sequence is finite and non-restartable in the sense that each call to
// All starts a fresh enumeration from the beginning.
//
// Within one length the enumeration is an odometer over charset indices with
// the rightmost position varying fastest, which matches the Cartesian-product
// order the rest of the system (and the progress math in the tests) assumes.
func (k *Keyspace) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		for length := k.MinLen; length <= k.MaxLen; length++ {
			idx := make([]int, length)
			buf := make([]rune, length)
			for {
				for i, j := range idx {
					buf[i] = k.Charset[j]
				}
				if !yield(string(buf)) {
					return
				}

				pos := length - 1
				for pos >= 0 {
					idx[pos]++
					if idx[pos] < len(k.Charset) {
						break
					}
					idx[pos] = 0
					pos--
				}
				if pos < 0 {
					break
				}
			}
		}
	}
}
