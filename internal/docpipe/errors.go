package docpipe

import "errors"

var (
	// ErrOcrUnavailable wraps oracle failures; the queue may retry these.
	ErrOcrUnavailable = errors.New("ocr_unavailable")
	// ErrNoItemsExtracted means every strategy, including the fallback,
	// produced nothing usable. A retry needs a different document.
	ErrNoItemsExtracted = errors.New("no_items_extracted")
	// ErrClientUnresolved means invoice format but no catalog client match.
	// Surfaced for manual linking; nothing is persisted.
	ErrClientUnresolved = errors.New("client_unresolved")
)
