package history

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// setupTestStore creates a temporary store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	return s
}

// testRun returns a completed run with sensible defaults.
func testRun(fingerprint string, rate float64) *Run {
	return &Run{
		Fingerprint:      fingerprint,
		Document:         "secret.pdf",
		Timestamp:        time.Now().UTC(),
		MinLen:           4,
		MaxLen:           5,
		Charset:          "0123456789",
		Workers:          4,
		BatchSize:        100,
		Status:           "not_found",
		PasswordsChecked: 110000,
		Elapsed:          12 * time.Second,
		Rate:             rate,
	}
}

// TestOpen tests store opening and creation.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database in new directory", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "newdir", "subdir")
		s, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open store: %v", err)
		}
		defer s.Close()

		if _, err := os.Stat(filepath.Join(dbDir, "pdfcrack.db")); os.IsNotExist(err) {
			t.Error("database file was not created")
		}
	})

	t.Run("CreateIfNotExists=false fails on missing database", func(t *testing.T) {
		t.Parallel()

		opts := DefaultOptions()
		opts.CreateIfNotExists = false

		if _, err := Open(t.TempDir(), opts); err == nil {
			t.Error("expected error for missing database")
		}
	})
}

// TestInsertAndHistory tests round-tripping runs through the store.
func TestInsertAndHistory(t *testing.T) {
	t.Parallel()

	s := setupTestStore(t)
	ctx := context.Background()

	run := testRun("fp-aaa", 9000.5)
	id, err := s.Insert(ctx, run)
	if err != nil {
		t.Fatalf("failed to insert run: %v", err)
	}
	if id == 0 {
		t.Error("expected non-zero row id")
	}

	runs, err := s.History(ctx, "fp-aaa", 0)
	if err != nil {
		t.Fatalf("failed to query history: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}

	got := runs[0]
	if got.Fingerprint != run.Fingerprint {
		t.Errorf("fingerprint = %q, want %q", got.Fingerprint, run.Fingerprint)
	}
	if got.Document != run.Document {
		t.Errorf("document = %q, want %q", got.Document, run.Document)
	}
	if got.Status != "not_found" {
		t.Errorf("status = %q, want %q", got.Status, "not_found")
	}
	if got.PasswordsChecked != run.PasswordsChecked {
		t.Errorf("passwords checked = %d, want %d", got.PasswordsChecked, run.PasswordsChecked)
	}
	if got.Elapsed != run.Elapsed {
		t.Errorf("elapsed = %v, want %v", got.Elapsed, run.Elapsed)
	}
	if got.Rate != run.Rate {
		t.Errorf("rate = %v, want %v", got.Rate, run.Rate)
	}
	if got.Timestamp.IsZero() {
		t.Error("timestamp was not stored")
	}

	t.Run("history for unknown fingerprint is empty", func(t *testing.T) {
		runs, err := s.History(ctx, "fp-unknown", 0)
		if err != nil {
			t.Fatalf("failed to query history: %v", err)
		}
		if len(runs) != 0 {
			t.Errorf("expected 0 runs, got %d", len(runs))
		}
	})
}

// TestHistoryLimitAndOrder tests that history is newest-first and respects
// the limit.
func TestHistoryLimitAndOrder(t *testing.T) {
	t.Parallel()

	s := setupTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := range 5 {
		run := testRun("fp-order", float64(1000+i))
		run.Timestamp = base.Add(time.Duration(i) * time.Hour)
		if _, err := s.Insert(ctx, run); err != nil {
			t.Fatalf("failed to insert run %d: %v", i, err)
		}
	}

	runs, err := s.History(ctx, "fp-order", 3)
	if err != nil {
		t.Fatalf("failed to query history: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	if runs[0].Rate != 1004 {
		t.Errorf("newest run rate = %v, want 1004", runs[0].Rate)
	}
	if !runs[0].Timestamp.After(runs[1].Timestamp) {
		t.Error("runs are not ordered newest first")
	}
}

// TestListDocuments tests the per-document summary listing.
func TestListDocuments(t *testing.T) {
	t.Parallel()

	s := setupTestStore(t)
	ctx := context.Background()

	for range 2 {
		if _, err := s.Insert(ctx, testRun("fp-one", 1000)); err != nil {
			t.Fatalf("failed to insert run: %v", err)
		}
	}
	other := testRun("fp-two", 2000)
	other.Document = "other.pdf"
	if _, err := s.Insert(ctx, other); err != nil {
		t.Fatalf("failed to insert run: %v", err)
	}

	docs, err := s.ListDocuments(ctx)
	if err != nil {
		t.Fatalf("failed to list documents: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}

	counts := make(map[string]int)
	for _, d := range docs {
		counts[d.Fingerprint] = d.Runs
		if d.LastRun.IsZero() {
			t.Errorf("document %s has zero last-run time", d.Fingerprint)
		}
	}
	if counts["fp-one"] != 2 {
		t.Errorf("fp-one run count = %d, want 2", counts["fp-one"])
	}
	if counts["fp-two"] != 1 {
		t.Errorf("fp-two run count = %d, want 1", counts["fp-two"])
	}
}

// TestBaseline tests median baseline computation over comparable runs.
func TestBaseline(t *testing.T) {
	t.Parallel()

	t.Run("requires three comparable runs", func(t *testing.T) {
		t.Parallel()

		s := setupTestStore(t)
		ctx := context.Background()

		run := testRun("fp-few", 1000)
		if _, err := s.Insert(ctx, run); err != nil {
			t.Fatalf("failed to insert run: %v", err)
		}

		if _, _, err := s.Baseline(ctx, run); !errors.Is(err, ErrNoRuns) {
			t.Errorf("expected ErrNoRuns, got %v", err)
		}
	})

	t.Run("median of odd run count", func(t *testing.T) {
		t.Parallel()

		s := setupTestStore(t)
		ctx := context.Background()

		for _, rate := range []float64{900, 1000, 1100} {
			if _, err := s.Insert(ctx, testRun("fp-odd", rate)); err != nil {
				t.Fatalf("failed to insert run: %v", err)
			}
		}

		baseline, n, err := s.Baseline(ctx, testRun("fp-odd", 0))
		if err != nil {
			t.Fatalf("failed to compute baseline: %v", err)
		}
		if baseline != 1000 {
			t.Errorf("baseline = %v, want 1000", baseline)
		}
		if n != 3 {
			t.Errorf("baseline run count = %d, want 3", n)
		}
	})

	t.Run("ignores interrupted and mismatched runs", func(t *testing.T) {
		t.Parallel()

		s := setupTestStore(t)
		ctx := context.Background()

		for _, rate := range []float64{1000, 1000, 1000} {
			if _, err := s.Insert(ctx, testRun("fp-mixed", rate)); err != nil {
				t.Fatalf("failed to insert run: %v", err)
			}
		}
		interrupted := testRun("fp-mixed", 50000)
		interrupted.Status = "interrupted"
		if _, err := s.Insert(ctx, interrupted); err != nil {
			t.Fatalf("failed to insert run: %v", err)
		}
		otherScenario := testRun("fp-mixed", 50000)
		otherScenario.Workers = 16
		if _, err := s.Insert(ctx, otherScenario); err != nil {
			t.Fatalf("failed to insert run: %v", err)
		}

		baseline, n, err := s.Baseline(ctx, testRun("fp-mixed", 0))
		if err != nil {
			t.Fatalf("failed to compute baseline: %v", err)
		}
		if baseline != 1000 {
			t.Errorf("baseline = %v, want 1000", baseline)
		}
		if n != 3 {
			t.Errorf("baseline run count = %d, want 3", n)
		}
	})
}

// TestCheckRegression tests regression detection against a stored baseline.
func TestCheckRegression(t *testing.T) {
	t.Parallel()

	s := setupTestStore(t)
	ctx := context.Background()

	for _, rate := range []float64{1000, 1000, 1000} {
		if _, err := s.Insert(ctx, testRun("fp-reg", rate)); err != nil {
			t.Fatalf("failed to insert run: %v", err)
		}
	}

	tests := []struct {
		name       string
		rate       float64
		threshold  float64
		regression bool
	}{
		{name: "faster run is not a regression", rate: 1200, threshold: 10, regression: false},
		{name: "small drop within threshold", rate: 950, threshold: 10, regression: false},
		{name: "drop beyond threshold", rate: 800, threshold: 10, regression: true},
		{name: "zero threshold uses default", rate: 800, threshold: 0, regression: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := s.CheckRegression(ctx, testRun("fp-reg", tt.rate), tt.threshold)
			if err != nil {
				t.Fatalf("failed to check regression: %v", err)
			}
			if report.Regression != tt.regression {
				t.Errorf("regression = %v, want %v (drop %.1f%%)",
					report.Regression, tt.regression, report.DropPercent)
			}
			if report.BaselineRate != 1000 {
				t.Errorf("baseline rate = %v, want 1000", report.BaselineRate)
			}
			if report.BaselineRuns != 3 {
				t.Errorf("baseline runs = %d, want 3", report.BaselineRuns)
			}
		})
	}
}

// TestMedian tests the median helper directly.
func TestMedian(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		rates []float64
		want  float64
	}{
		{name: "single value", rates: []float64{42}, want: 42},
		{name: "odd count", rates: []float64{3, 1, 2}, want: 2},
		{name: "even count", rates: []float64{4, 1, 3, 2}, want: 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := median(tt.rates); got != tt.want {
				t.Errorf("median(%v) = %v, want %v", tt.rates, got, tt.want)
			}
		})
	}
}
