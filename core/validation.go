// Copyright 2025 Quercia Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "fmt"

// ValidateChunking validates a chunking configuration.
//
// Validation rules:
//   - chunkSize must be greater than 0
//   - overlap must not be negative
//   - overlap must be strictly less than chunkSize (forward progress)
func ValidateChunking(chunkSize, overlap int) error {
	if chunkSize <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidChunkSize, chunkSize)
	}
	if overlap < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidOverlap, overlap)
	}
	if overlap >= chunkSize {
		return fmt.Errorf("%w: overlap %d, chunk size %d", ErrOverlapTooLarge, overlap, chunkSize)
	}
	return nil
}

// ValidateIngestionRun validates an IngestionRun according to domain rules.
//
// Validation rules:
//   - Source must not be empty
//   - OutputPath must not be empty
//   - Counts must not be negative
//
// NOT validated (populated by the catalog repository):
//   - ID (0 is valid from database sequences)
func ValidateIngestionRun(run *IngestionRun) error {
	if run == nil {
		return fmt.Errorf("%w: run is nil", ErrInvalidIngestionRun)
	}

	if run.Source == "" {
		return fmt.Errorf("%w: %w", ErrInvalidIngestionRun, ErrEmptySource)
	}

	if run.OutputPath == "" {
		return fmt.Errorf("%w: %w", ErrInvalidIngestionRun, ErrEmptyOutputPath)
	}

	if run.NumDocuments < 0 || run.NumChunks < 0 {
		return fmt.Errorf("%w: negative counts", ErrInvalidIngestionRun)
	}

	return nil
}
