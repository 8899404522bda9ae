package pdf

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/crypto/blake2b"
)

// Verifier authenticates password candidates against PDF documents using
// pdfcpu. It is stateless and safe for concurrent use; every call parses the
// shared, read-only document bytes from scratch, which is also what keeps
// candidate attempts independent of each other.
type Verifier struct{}

// NewVerifier returns a PDF password verifier.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// Probe reports whether the document requires a password.
// A document that opens with no password is not encrypted (an encrypted
// document with an empty user password behaves the same way, which is the
// desired answer: there is nothing to search for).
func (v *Verifier) Probe(_ context.Context, document []byte) (bool, error) {
	_, err := api.ReadContext(bytes.NewReader(document), readConf(""))
	if err == nil {
		return false, nil
	}
	if errors.Is(err, pdfcpu.ErrWrongPassword) {
		return true, nil
	}
	return false, fmt.Errorf("parsing document: %w", err)
}

// Verify checks one candidate against the document. The candidate is tried
// as both the user and the owner password; either opening the document is a
// match.
func (v *Verifier) Verify(_ context.Context, document []byte, candidate string) (bool, error) {
	_, err := api.ReadContext(bytes.NewReader(document), readConf(candidate))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, pdfcpu.ErrWrongPassword) {
		return false, nil
	}
	return false, fmt.Errorf("verifying candidate: %w", err)
}

// readConf builds a pdfcpu configuration for one open attempt. Relaxed
// validation keeps slightly out-of-spec documents (common in the wild)
// from being rejected as verification errors.
func readConf(password string) *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	conf.UserPW = password
	conf.OwnerPW = password
	return conf
}

// Fingerprint returns a stable hex identifier for the document bytes, used
// to correlate benchmark history across file renames and copies.
func Fingerprint(document []byte) string {
	sum := blake2b.Sum256(document)
	return hex.EncodeToString(sum[:])
}
