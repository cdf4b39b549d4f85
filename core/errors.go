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

import "errors"

// Domain validation errors
var (
	// ErrInvalidChunkSize indicates a non-positive chunk size.
	ErrInvalidChunkSize = errors.New("chunk size must be greater than 0")

	// ErrInvalidOverlap indicates a negative overlap.
	ErrInvalidOverlap = errors.New("overlap cannot be negative")

	// ErrOverlapTooLarge indicates overlap >= chunk size, which would stall
	// the chunking window.
	ErrOverlapTooLarge = errors.New("overlap must be strictly less than chunk size")

	// ErrEmbeddingAlignment indicates chunk and embedding lists of unequal length.
	ErrEmbeddingAlignment = errors.New("chunk count does not match embedding count")

	// ErrInvalidIngestionRun indicates an IngestionRun failed validation.
	ErrInvalidIngestionRun = errors.New("invalid ingestion run")

	// ErrEmptySource indicates the run's Source field is empty.
	ErrEmptySource = errors.New("source cannot be empty")

	// ErrEmptyOutputPath indicates the run's OutputPath field is empty.
	ErrEmptyOutputPath = errors.New("output path cannot be empty")
)
