package engine

import "context"

// Verifier is the document-password-verification capability the engine
// drives. The engine treats it as opaque: it never depends on the
// verification algorithm, only on the three-way outcome of each call.
//
// Implementations must be safe for concurrent use; every worker calls
// Verify from its own goroutine against the same shared document bytes.
type Verifier interface {
	// Probe reports whether the document requires a password at all.
	// It is called exactly once, before any worker is started.
	// A false result with a nil error means the document is not encrypted
	// and no search will be attempted.
	Probe(ctx context.Context, document []byte) (encrypted bool, err error)

	// Verify checks one candidate password against the document.
	// A true result means the candidate opened the document. An error means
	// the verification itself failed for this candidate; the engine counts
	// such candidates as non-matches and never aborts the search over them.
	Verify(ctx context.Context, document []byte, candidate string) (match bool, err error)
}
