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


package kb

import (
	"fmt"
	"time"

	"github.com/quercia-labs/vecbase/core"
)

// Build joins chunks with their embeddings, matched strictly by index, and
// groups them under their owning documents in first-seen order.
//
// The two lists must have equal length; a mismatch fails with
// core.ErrEmbeddingAlignment before any grouping. A chunk whose DocID has no
// matching loaded document is silently dropped together with its embedding.
// Metadata counts reflect the grouped output, not the raw inputs.
func Build(documents []core.Document, chunks []core.Chunk, embeddings [][]float32, model string) (*core.KnowledgeBase, error) {
	if len(chunks) != len(embeddings) {
		return nil, fmt.Errorf("%w: %d chunks, %d embeddings",
			core.ErrEmbeddingAlignment, len(chunks), len(embeddings))
	}

	docsByID := make(map[string]*core.Document, len(documents))
	for i := range documents {
		docsByID[documents[i].DocID] = &documents[i]
	}

	var entries []*core.DocumentEntry
	entryIndex := make(map[string]*core.DocumentEntry, len(documents))
	grouped := 0

	for i := range chunks {
		chunk := chunks[i]

		doc, ok := docsByID[chunk.DocID]
		if !ok {
			// Stale chunk reference; drop the pair.
			continue
		}

		entry, ok := entryIndex[chunk.DocID]
		if !ok {
			entry = &core.DocumentEntry{
				DocID:      doc.DocID,
				SourcePath: doc.SourcePath,
				Title:      doc.Title,
			}
			entryIndex[chunk.DocID] = entry
			entries = append(entries, entry)
		}

		entry.Chunks = append(entry.Chunks, core.ChunkEntry{
			ChunkID:   chunk.ChunkID,
			Page:      chunk.Page,
			Position:  chunk.Position,
			Text:      chunk.Text,
			Embedding: embeddings[i],
		})
		grouped++
	}

	out := make([]core.DocumentEntry, len(entries))
	for i, entry := range entries {
		out[i] = *entry
	}

	return &core.KnowledgeBase{
		Metadata: core.Metadata{
			CreatedAt:    time.Now().UTC().Format(time.RFC3339),
			Model:        model,
			NumDocuments: len(out),
			NumChunks:    grouped,
		},
		Documents: out,
	}, nil
}
