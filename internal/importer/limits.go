package importer

import "time"

const (
	// MaxDocumentSize is the ceiling for synchronous parsing.
	MaxDocumentSize   = 50 * 1024
	MaxDocumentSizeKB = 50

	// MaxPDFSize allows larger uploads since text extraction shrinks them.
	MaxPDFSize = MaxDocumentSize * 10

	// FetchTimeout bounds the single URL fetch attempt; there are no
	// retries.
	FetchTimeout = 15 * time.Second
)
