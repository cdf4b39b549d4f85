package evidence

import "errors"

var (
	// ErrEmptyRunID indicates sealing was attempted without a run identifier.
	ErrEmptyRunID = errors.New("run id must not be empty")

	// ErrNoArtifacts indicates no artifact could be sealed.
	ErrNoArtifacts = errors.New("no artifacts to seal")
)
