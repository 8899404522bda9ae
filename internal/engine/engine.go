package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pdfcrack/pdfcrack/internal/keyspace"
)

// Default tuning values for the search engine.
const (
	// DefaultBatchSize is the number of candidates a worker verifies between
	// progress reports. Large enough to amortize channel traffic, small
	// enough that progress stays responsive.
	DefaultBatchSize = 100

	// DefaultFillWait bounds how long a worker waits for the next candidate
	// before processing a partial batch. Matches the cadence needed for the
	// coordinator to observe interruption promptly.
	DefaultFillWait = 100 * time.Millisecond

	// DefaultJoinTimeout bounds how long the coordinator waits for workers
	// to exit after the latch trips. A worker stuck inside a pathological
	// verification call must never hang the run past this.
	DefaultJoinTimeout = 5 * time.Second
)

// ProgressFunc receives aggregate progress updates from the coordinator.
// It is always invoked from the coordinator goroutine, never concurrently.
type ProgressFunc func(checked, total uint64)

// Cracker is the coordinator of one brute-force run. It owns the shared
// cancellation latch, the result and progress channels, and is the only
// component that constructs the final Result.
//
// A Cracker is built once per run; Run must not be called twice.
type Cracker struct {
	target   string
	minLen   int
	maxLen   int
	charset  keyspace.Charset
	verifier Verifier

	workers          int
	batchSize        int
	fillWait         time.Duration
	joinTimeout      time.Duration
	reportVerifyErrs bool
	progressFn       ProgressFunc
	logger           *slog.Logger
}

// Option configures a Cracker.
type Option func(*Cracker)

// WithWorkers sets the number of verification workers.
// Values below one fall back to the number of CPUs.
func WithWorkers(n int) Option {
	return func(c *Cracker) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithBatchSize sets how many candidates a worker verifies between progress
// reports.
func WithBatchSize(n int) Option {
	return func(c *Cracker) {
		if n > 0 {
			c.batchSize = n
		}
	}
}

// WithFillWait sets the bounded wait used while filling a worker batch.
func WithFillWait(d time.Duration) Option {
	return func(c *Cracker) {
		if d > 0 {
			c.fillWait = d
		}
	}
}

// WithJoinTimeout sets how long the coordinator waits for workers to exit
// after cancellation before abandoning them.
func WithJoinTimeout(d time.Duration) Option {
	return func(c *Cracker) {
		if d > 0 {
			c.joinTimeout = d
		}
	}
}

// WithVerifyErrorReporting surfaces per-candidate verification errors
// through the logger instead of absorbing them silently.
func WithVerifyErrorReporting(report bool) Option {
	return func(c *Cracker) {
		c.reportVerifyErrs = report
	}
}

// WithProgress installs a callback invoked as aggregate progress advances.
func WithProgress(fn ProgressFunc) Option {
	return func(c *Cracker) {
		c.progressFn = fn
	}
}

// WithLogger sets a custom logger. If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cracker) {
		c.logger = logger
	}
}

// New creates a Cracker for the document at target. Parameter validation is
// deferred to Run so that every failure mode, including a bad configuration,
// is reported through the single Result it produces.
func New(target string, minLen, maxLen int, charset keyspace.Charset, verifier Verifier, opts ...Option) *Cracker {
	c := &Cracker{
		target:      target,
		minLen:      minLen,
		maxLen:      maxLen,
		charset:     charset,
		verifier:    verifier,
		workers:     runtime.NumCPU(),
		batchSize:   DefaultBatchSize,
		fillWait:    DefaultFillWait,
		joinTimeout: DefaultJoinTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}

	return c
}

// Run executes the search and returns its single Result. The run terminates
// when a match is found, the search space is exhausted, or ctx is cancelled,
// whichever comes first. Cancellation yields StatusInterrupted with the
// counts accumulated so far preserved.
func (c *Cracker) Run(ctx context.Context) Result {
	start := time.Now()

	// Init phase: validate the keyspace, read the document once, probe it.
	// Each failure short-circuits before any goroutine is started.
	space, err := keyspace.New(c.minLen, c.maxLen, c.charset)
	if err != nil {
		return failure(StatusInitializationError, time.Since(start), err)
	}
	total := space.Size()

	document, err := os.ReadFile(c.target)
	if err != nil {
		return failure(StatusFileReadError, time.Since(start), fmt.Errorf("reading document: %w", err))
	}

	encrypted, err := c.verifier.Probe(ctx, document)
	if err != nil {
		return failure(StatusInitializationError, time.Since(start), fmt.Errorf("probing document: %w", err))
	}
	if !encrypted {
		return failure(StatusNotEncrypted, time.Since(start), nil)
	}

	c.logger.Debug("starting search",
		"target", c.target,
		"totalCandidates", total,
		"workers", c.workers,
		"batchSize", c.batchSize,
	)

	return c.search(ctx, space, document, total, start)
}

// search runs the dispatcher and worker pool and drives the coordinator
// loop. It is the Running state of the run's lifecycle.
func (c *Cracker) search(ctx context.Context, space *keyspace.Keyspace, document []byte, total uint64, start time.Time) Result {
	shared := newLatch()

	// Candidate channel capacity follows the worker pool: enough in flight
	// to keep every worker's next batch ready, no more.
	candidates := make(chan string, c.workers*c.batchSize)
	progress := make(chan uint64, c.workers*2)
	found := make(chan string, 1)
	quit := make(chan struct{})

	var errs chan verifyError
	if c.reportVerifyErrs {
		errs = make(chan verifyError, c.workers)
	}

	g := new(errgroup.Group)

	d := &dispatcher{
		seq:        space.All(),
		candidates: candidates,
		latch:      shared,
	}
	g.Go(func() error {
		d.run()
		return nil
	})

	for i := range c.workers {
		w := &worker{
			id:         i,
			document:   document,
			verifier:   c.verifier,
			latch:      shared,
			candidates: candidates,
			progress:   progress,
			found:      found,
			errs:       errs,
			quit:       quit,
			batchSize:  c.batchSize,
			fillWait:   c.fillWait,
		}
		g.Go(func() error {
			w.run(ctx)
			return nil
		})
	}

	joined := make(chan struct{})
	go func() {
		_ = g.Wait() //nolint:errcheck // dispatcher and workers never return errors
		close(joined)
	}()

	var (
		checked     uint64
		password    string
		interrupted bool
		abandoned   bool

		// ctxDone is nilled after the first cancellation so the loop does
		// not spin on an already-closed channel; joinDeadline is armed only
		// once the latch trips.
		ctxDone      = ctx.Done()
		joinDeadline <-chan time.Time
	)

	running := true
	for running {
		select {
		case n := <-progress:
			checked += n
			if c.progressFn != nil {
				c.progressFn(checked, total)
			}
		case pw := <-found:
			password = pw
			shared.trip()
			if joinDeadline == nil {
				joinDeadline = time.After(c.joinTimeout)
			}
		case e := <-errs:
			c.logger.Warn("verification error (counted as non-match)",
				"candidate", e.candidate,
				"error", e.err,
			)
		case <-ctxDone:
			interrupted = true
			shared.trip()
			ctxDone = nil
			if joinDeadline == nil {
				joinDeadline = time.After(c.joinTimeout)
			}
			c.logger.Debug("interruption received, stopping workers")
		case <-joined:
			running = false
		case <-joinDeadline:
			// A worker is stuck inside a verification call. Stop waiting so
			// shutdown latency stays bounded; close quit so the remaining
			// workers are not left blocked on a progress send.
			abandoned = true
			close(quit)
			running = false
			c.logger.Warn("join timeout exceeded, abandoning remaining workers",
				"timeout", c.joinTimeout,
			)
		}
	}

	// Final drain. Every worker sends its trailing batch count before it
	// exits, and those sends happen before the join completes, so once
	// joined has fired this loop empties the channels exactly. This is what
	// keeps interrupted runs from under-counting.
	for drained := false; !drained; {
		select {
		case n := <-progress:
			checked += n
		case pw := <-found:
			if password == "" {
				password = pw
			}
		default:
			drained = true
		}
	}
	if c.progressFn != nil {
		c.progressFn(checked, total)
	}

	elapsed := time.Since(start)

	result := Result{
		PasswordsChecked: checked,
		TotalCandidates:  total,
		Elapsed:          elapsed,
		Rate:             rate(checked, elapsed),
	}
	switch {
	case password != "":
		result.Status = StatusFound
		result.Password = password
	case interrupted:
		result.Status = StatusInterrupted
		result.Rate = 0
	default:
		result.Status = StatusNotFound
	}

	c.logger.Debug("search finished",
		"status", result.Status.String(),
		"checked", checked,
		"elapsed", elapsed,
		"abandonedWorkers", abandoned,
	)

	return result
}
