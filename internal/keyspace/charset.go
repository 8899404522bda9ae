package keyspace

import (
	"errors"
	"sort"

	"golang.org/x/text/unicode/norm"
)

// Built-in character groups selectable from the CLI.
// These mirror the classic brute-force categories: digits, ASCII letters,
// and the common shifted-number-row special characters.
const (
	// GroupNumbers contains the decimal digits.
	GroupNumbers = "0123456789"

	// GroupLetters contains lowercase and uppercase ASCII letters.
	GroupLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// GroupSpecial contains common special characters (shifted digits on a
	// US keyboard layout).
	GroupSpecial = "!@#$%^&*()"
)

// ErrEmptyCharset is returned when a charset ends up with no characters.
// An empty charset is a configuration error, never a search with zero
// candidates.
var ErrEmptyCharset = errors.New("empty charset: at least one character is required")

// Charset is an ordered, deduplicated sequence of characters from which
// candidate passwords are built. The order is significant: it defines the
// enumeration order of the search space.
type Charset []rune

// NewCharset assembles a charset from the selected built-in groups and an
// optional custom character string. Duplicates are removed and the result is
// sorted so that the same selection always yields the same enumeration order
// regardless of how the input was spelled.
//
// Custom input is normalized to NFC first so that composed and decomposed
// spellings of the same character (e.g. "é" typed two different ways)
// collapse into a single charset entry.
func NewCharset(custom string, numbers, letters, special bool) (Charset, error) {
	var raw []rune
	raw = append(raw, []rune(norm.NFC.String(custom))...)
	if numbers {
		raw = append(raw, []rune(GroupNumbers)...)
	}
	if letters {
		raw = append(raw, []rune(GroupLetters)...)
	}
	if special {
		raw = append(raw, []rune(GroupSpecial)...)
	}

	seen := make(map[rune]bool, len(raw))
	cs := make(Charset, 0, len(raw))
	for _, r := range raw {
		if seen[r] {
			continue
		}
		seen[r] = true
		cs = append(cs, r)
	}
	sort.Slice(cs, func(i, j int) bool { return cs[i] < cs[j] })

	if len(cs) == 0 {
		return nil, ErrEmptyCharset
	}
	return cs, nil
}

// MustCharset is like NewCharset but panics on error. It is intended for
// tests and for assembling the built-in default charset.
func MustCharset(custom string, numbers, letters, special bool) Charset {
	cs, err := NewCharset(custom, numbers, letters, special)
	if err != nil {
		panic(err)
	}
	return cs
}

// String returns the charset as a plain string in enumeration order.
func (c Charset) String() string {
	return string([]rune(c))
}
