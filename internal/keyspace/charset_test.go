package keyspace

import (
	"errors"
	"testing"
)

func TestNewCharset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		custom  string
		numbers bool
		letters bool
		special bool
		want    string
		wantErr error
	}{
		{
			name:    "numbers only",
			numbers: true,
			want:    "0123456789",
		},
		{
			name:    "special only",
			special: true,
			want:    "!#$%&()*@^",
		},
		{
			name:   "custom characters are deduplicated and sorted",
			custom: "cbaab",
			want:   "abc",
		},
		{
			name:    "custom overlapping with numbers deduplicates",
			custom:  "012xyz",
			numbers: true,
			want:    "0123456789xyz",
		},
		{
			name:    "empty selection",
			wantErr: ErrEmptyCharset,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NewCharset(tt.custom, tt.numbers, tt.letters, tt.special)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("expected charset %q, got %q", tt.want, got.String())
			}
		})
	}

	t.Run("letters group has 52 characters", func(t *testing.T) {
		t.Parallel()

		cs, err := NewCharset("", false, true, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cs) != 52 {
			t.Errorf("expected 52 characters, got %d", len(cs))
		}
	})

	t.Run("determinism across spellings", func(t *testing.T) {
		t.Parallel()

		a := MustCharset("zyx987", true, false, false)
		b := MustCharset("789xyz", true, false, false)
		if a.String() != b.String() {
			t.Errorf("expected identical charsets, got %q and %q", a.String(), b.String())
		}
	})
}
