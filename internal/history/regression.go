package history

import (
	"context"
	"fmt"
	"sort"
)

// DefaultRegressionThreshold is the rate drop, in percent, above which a
// run is flagged as a regression against its baseline.
const DefaultRegressionThreshold = 10.0

// minBaselineRuns is the number of prior comparable runs required before a
// baseline is considered meaningful.
const minBaselineRuns = 3

// maxBaselineRuns caps how far back the baseline looks.
const maxBaselineRuns = 10

// RegressionReport is the outcome of comparing a run against its baseline.
type RegressionReport struct {
	// BaselineRate is the median rate of the prior comparable runs.
	BaselineRate float64

	// CurrentRate is the rate of the run under test.
	CurrentRate float64

	// DropPercent is how far the current rate fell below the baseline,
	// in percent. Negative when the current run is faster.
	DropPercent float64

	// Threshold is the drop percentage that counts as a regression.
	Threshold float64

	// Regression reports whether DropPercent exceeded Threshold.
	Regression bool

	// BaselineRuns is the number of runs the baseline was computed from.
	BaselineRuns int
}

// Baseline computes the median verification rate of prior runs matching the
// given run's fingerprint and scenario. Only runs that exhausted the
// keyspace are comparable: interrupted or failed runs measure nothing.
// Returns ErrNoRuns wrapped when fewer than three comparable runs exist.
func (s *Store) Baseline(ctx context.Context, run *Run) (float64, int, error) {
	query := `
	SELECT rate
	FROM bench_runs
	WHERE fingerprint = ?
	  AND min_len = ? AND max_len = ? AND charset = ?
	  AND workers = ? AND batch_size = ?
	  AND status = 'not_found'
	ORDER BY timestamp DESC, id DESC
	LIMIT ?
	`

	rows, err := s.db.QueryContext(ctx, query,
		run.Fingerprint, run.MinLen, run.MaxLen, run.Charset,
		run.Workers, run.BatchSize, maxBaselineRuns,
	)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to query baseline runs: %w", err)
	}
	defer rows.Close()

	var rates []float64
	for rows.Next() {
		var rate float64
		if err := rows.Scan(&rate); err != nil {
			return 0, 0, fmt.Errorf("failed to scan baseline rate: %w", err)
		}
		rates = append(rates, rate)
	}
	if err := rows.Err(); err != nil {
		return 0, 0, err
	}

	if len(rates) < minBaselineRuns {
		return 0, len(rates), fmt.Errorf("%w: need at least %d comparable runs, have %d",
			ErrNoRuns, minBaselineRuns, len(rates))
	}

	return median(rates), len(rates), nil
}

// CheckRegression compares a run's rate against the stored baseline for its
// scenario. The threshold is a percentage; DefaultRegressionThreshold is
// used when it is zero or negative.
func (s *Store) CheckRegression(ctx context.Context, run *Run, threshold float64) (*RegressionReport, error) {
	if threshold <= 0 {
		threshold = DefaultRegressionThreshold
	}

	baseline, n, err := s.Baseline(ctx, run)
	if err != nil {
		return nil, err
	}

	drop := 0.0
	if baseline > 0 {
		drop = (baseline - run.Rate) / baseline * 100.0
	}

	return &RegressionReport{
		BaselineRate: baseline,
		CurrentRate:  run.Rate,
		DropPercent:  drop,
		Threshold:    threshold,
		Regression:   drop > threshold,
		BaselineRuns: n,
	}, nil
}

// median returns the median of the given rates.
func median(rates []float64) float64 {
	sorted := make([]float64, len(rates))
	copy(sorted, rates)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
