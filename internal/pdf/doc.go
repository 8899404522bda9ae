// Package pdf implements the document-password-verification capability for
// PDF files on top of the pdfcpu library.
//
// The engine treats verification as opaque; this package owns the mapping
// from pdfcpu's behavior to the engine's three-way outcomes: a document that
// opens without a password is not encrypted, a wrong-password error is a
// clean non-match, and anything else is a verification error the engine
// contains per candidate.
package pdf
