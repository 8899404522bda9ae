package keyspace

import (
	"errors"
	"slices"
	"testing"
)

// collect drains the full enumeration into a slice. Only use with small
// keyspaces.
func collect(k *Keyspace) []string {
	var out []string
	for candidate := range k.All() {
		out = append(out, candidate)
	}
	return out
}

func TestNew(t *testing.T) {
	t.Parallel()

	digits := MustCharset("", true, false, false)

	tests := []struct {
		name    string
		minLen  int
		maxLen  int
		charset Charset
		wantErr error
	}{
		{
			name:    "valid range",
			minLen:  1,
			maxLen:  3,
			charset: digits,
		},
		{
			name:    "empty charset",
			minLen:  1,
			maxLen:  3,
			charset: Charset{},
			wantErr: ErrEmptyCharset,
		},
		{
			name:    "zero min length",
			minLen:  0,
			maxLen:  3,
			charset: digits,
			wantErr: ErrInvalidLengthRange,
		},
		{
			name:    "min greater than max",
			minLen:  4,
			maxLen:  3,
			charset: digits,
			wantErr: ErrInvalidLengthRange,
		},
		{
			name:    "negative lengths",
			minLen:  -2,
			maxLen:  -1,
			charset: digits,
			wantErr: ErrInvalidLengthRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := New(tt.minLen, tt.maxLen, tt.charset)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestKeyspaceSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		minLen  int
		maxLen  int
		charset string
		want    uint64
	}{
		{
			name:    "single length",
			minLen:  3,
			maxLen:  3,
			charset: "abc",
			want:    27,
		},
		{
			name:    "digits length 4 to 5",
			minLen:  4,
			maxLen:  5,
			charset: "0123456789",
			want:    110000, // 10^4 + 10^5
		},
		{
			name:    "single character single length",
			minLen:  1,
			maxLen:  1,
			charset: "x",
			want:    1,
		},
		{
			name:    "length range over two characters",
			minLen:  1,
			maxLen:  4,
			charset: "01",
			want:    2 + 4 + 8 + 16,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			k, err := New(tt.minLen, tt.maxLen, MustCharset(tt.charset, false, false, false))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := k.Size(); got != tt.want {
				t.Errorf("expected size %d, got %d", tt.want, got)
			}
		})
	}

	t.Run("saturates instead of overflowing", func(t *testing.T) {
		t.Parallel()

		k, err := New(1, 64, MustCharset("", true, true, true))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := k.Size(); got == 0 {
			t.Error("expected saturated size, got 0")
		}
	})
}

func TestKeyspaceAll(t *testing.T) {
	t.Parallel()

	t.Run("count matches size", func(t *testing.T) {
		t.Parallel()

		k, err := New(1, 3, MustCharset("ab!", false, false, false))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var count uint64
		for range k.All() {
			count++
		}
		if count != k.Size() {
			t.Errorf("expected %d candidates, got %d", k.Size(), count)
		}
	})

	t.Run("shorter lengths come first in product order", func(t *testing.T) {
		t.Parallel()

		k, err := New(1, 2, MustCharset("ab", false, false, false))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{"a", "b", "aa", "ab", "ba", "bb"}
		if got := collect(k); !slices.Equal(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("two runs produce identical sequences", func(t *testing.T) {
		t.Parallel()

		k, err := New(1, 3, MustCharset("xyz0", false, false, false))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		first := collect(k)
		second := collect(k)
		if !slices.Equal(first, second) {
			t.Error("expected deterministic enumeration across runs")
		}
	})

	t.Run("stops when yield returns false", func(t *testing.T) {
		t.Parallel()

		k, err := New(1, 8, MustCharset("", true, false, false))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var got []string
		for candidate := range k.All() {
			got = append(got, candidate)
			if len(got) == 12 {
				break
			}
		}

		want := []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "00", "01"}
		if !slices.Equal(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})
}
