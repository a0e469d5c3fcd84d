// Package ocr wraps the external text-extraction service behind a small
// oracle interface so the document pipeline can substitute fakes.
package ocr

import (
	"context"
	"errors"
)

var (
	// ErrCredential means the oracle rejected our credentials; the job is
	// not retryable until configuration changes.
	ErrCredential = errors.New("ocr_credential")
	// ErrTransient covers timeouts, throttling and 5xx responses.
	ErrTransient = errors.New("ocr_transient")
)

// Oracle converts raw document bytes into text.
type Oracle interface {
	ExtractText(ctx context.Context, data []byte) (string, error)
}
