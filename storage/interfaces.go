package storage

import (
	"context"

	"github.com/quercia-labs/vecbase/core"
)

// CatalogRepository records completed ingestion runs.
// Implementations must be thread-safe and support concurrent access.
type CatalogRepository interface {
	// AddRun records a completed ingestion run.
	// For runs with ID=0, generates a new ID from sequence.
	// Returns the run with its generated ID populated.
	AddRun(ctx context.Context, run *core.IngestionRun) (*core.IngestionRun, error)

	// GetRun retrieves a single run by ID.
	// Returns ErrNotFound if the run doesn't exist.
	GetRun(ctx context.Context, id core.ID) (*core.IngestionRun, error)

	// GetRuns retrieves all recorded runs in ID order.
	GetRuns(ctx context.Context) ([]*core.IngestionRun, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
