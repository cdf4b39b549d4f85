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


package chunker

import (
	"strings"

	"github.com/quercia-labs/vecbase/core"
)

const (
	// DefaultChunkSize is the default window width in words.
	DefaultChunkSize = 800

	// DefaultOverlap is the default number of words retained between
	// consecutive windows of the same page.
	DefaultOverlap = 200
)

// Config holds the chunking parameters.
type Config struct {
	// ChunkSize is the window width in words.
	ChunkSize int

	// Overlap is the number of trailing words repeated between consecutive
	// windows. Must be strictly less than ChunkSize.
	Overlap int
}

// DefaultConfig returns a Config with the default window parameters.
func DefaultConfig() Config {
	return Config{
		ChunkSize: DefaultChunkSize,
		Overlap:   DefaultOverlap,
	}
}

// Validate checks that the configuration permits forward progress.
func (c Config) Validate() error {
	return core.ValidateChunking(c.ChunkSize, c.Overlap)
}

// ChunkDocuments splits every page of every document into overlapping
// fixed-size word windows, preserving source order: documents in input
// order, pages in page-number order, positions increasing within a page.
//
// A page with fewer words than ChunkSize yields exactly one chunk holding
// all its words; the final chunk of a page may be short.
func ChunkDocuments(documents []core.Document, cfg Config) ([]core.Chunk, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var chunks []core.Chunk

	for _, doc := range documents {
		for _, page := range doc.Pages {
			chunks = append(chunks, chunkPage(doc.DocID, page, cfg)...)
		}
	}

	return chunks, nil
}

// chunkPage applies the sliding window to one page.
func chunkPage(docID string, page core.Page, cfg Config) []core.Chunk {
	words := strings.Fields(page.Text)
	if len(words) == 0 {
		return nil
	}

	var chunks []core.Chunk
	start := 0
	position := 1

	for start < len(words) {
		end := start + cfg.ChunkSize
		if end > len(words) {
			end = len(words)
		}

		text := strings.Join(words[start:end], " ")
		if text == "" {
			// Cannot occur after page filtering; stop rather than emit
			// an empty chunk.
			break
		}

		chunks = append(chunks, core.Chunk{
			ChunkID:  core.ChunkIDFor(docID, page.PageNumber, position),
			DocID:    docID,
			Page:     page.PageNumber,
			Position: position,
			Text:     text,
		})

		if end >= len(words) {
			break
		}

		// Slide back by the overlap so consecutive chunks share context.
		start = end - cfg.Overlap
		if start < 0 {
			start = 0
		}
		position++
	}

	return chunks
}
