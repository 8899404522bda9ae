package engine

import (
	"encoding/json"
	"time"
)

// Status identifies the terminal state of a cracking run.
//
// Design decision: we use an iota-based enum with a String() method rather
// than string constants so that switch statements over run outcomes are
// cheap and the compiler can help with exhaustiveness. The JSON encoding
// uses the string form for report consumers.
type Status int

const (
	// StatusFound means a worker confirmed a matching password.
	StatusFound Status = iota

	// StatusNotFound means the whole search space was verified with no match.
	StatusNotFound

	// StatusInterrupted means the run was cancelled externally mid-search.
	// Counts accumulated before the interruption are preserved.
	StatusInterrupted

	// StatusNotEncrypted means the document does not require a password.
	// No search was attempted.
	StatusNotEncrypted

	// StatusFileReadError means the document could not be read.
	StatusFileReadError

	// StatusInitializationError means the configuration was invalid (for
	// example an empty charset) or the initial probe failed. No worker was
	// ever started.
	StatusInitializationError
)

// String returns the snake_case name of the status.
func (s Status) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusNotFound:
		return "not_found"
	case StatusInterrupted:
		return "interrupted"
	case StatusNotEncrypted:
		return "not_encrypted"
	case StatusFileReadError:
		return "file_read_error"
	case StatusInitializationError:
		return "initialization_error"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the status as its string form.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Result is the single, immutable outcome of a cracking run. Exactly one
// Result is produced per run, by the coordinator, at run end.
type Result struct {
	// Status is the terminal state of the run.
	Status Status `json:"status"`

	// Password is the recovered password. Set only for StatusFound.
	Password string `json:"password,omitempty"`

	// PasswordsChecked is the exact number of candidates verified across all
	// workers. For a completed StatusNotFound run it equals TotalCandidates.
	PasswordsChecked uint64 `json:"passwords_checked"`

	// TotalCandidates is the computed size of the search space. Zero for
	// runs that failed before the space was computed.
	TotalCandidates uint64 `json:"total_candidates"`

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration `json:"elapsed_ns"`

	// Rate is the average verification rate in passwords per second,
	// or 0 when the elapsed time is too small to be meaningful.
	Rate float64 `json:"passwords_per_second"`

	// Err carries the underlying error for the error statuses. It is not
	// serialized; ErrorMessage holds the printable form.
	Err error `json:"-"`

	// ErrorMessage is the human-readable error text for error statuses.
	ErrorMessage string `json:"error,omitempty"`
}

// failure builds a Result for a run that terminated before any search work.
func failure(status Status, elapsed time.Duration, err error) Result {
	r := Result{
		Status:  status,
		Elapsed: elapsed,
		Err:     err,
	}
	if err != nil {
		r.ErrorMessage = err.Error()
	}
	return r
}

// rate computes candidates per second, guarding the near-zero elapsed case.
func rate(checked uint64, elapsed time.Duration) float64 {
	seconds := elapsed.Seconds()
	if seconds <= 0 {
		return 0
	}
	return float64(checked) / seconds
}
