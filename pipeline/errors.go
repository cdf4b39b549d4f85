package pipeline

import "errors"

var (
	// ErrNoDocuments indicates that no input file produced a usable document.
	ErrNoDocuments = errors.New("no documents loaded")

	// ErrNoChunks indicates that the loaded documents produced no chunks.
	ErrNoChunks = errors.New("no chunks produced")

	// ErrEmbedderRequired indicates a nil embedder was supplied.
	ErrEmbedderRequired = errors.New("embedder is required")
)
