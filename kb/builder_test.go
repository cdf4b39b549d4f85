package kb

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quercia-labs/vecbase/core"
)

func sampleDocuments() []core.Document {
	return []core.Document{
		{
			DocID:      "reg",
			Title:      "reg",
			SourcePath: "/data/reg.pdf",
			Pages:      []core.Page{{PageNumber: 1, Text: "regulation text"}},
		},
		{
			DocID:      "roadmap",
			Title:      "roadmap",
			SourcePath: "/data/roadmap.pdf",
			Pages:      []core.Page{{PageNumber: 1, Text: "roadmap text"}},
		},
	}
}

func TestBuild_AlignmentValidation(t *testing.T) {
	chunks := []core.Chunk{
		{ChunkID: "reg_p1_c1", DocID: "reg", Page: 1, Position: 1, Text: "a"},
	}

	_, err := Build(sampleDocuments(), chunks, [][]float32{}, "m")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrEmbeddingAlignment)

	_, err = Build(sampleDocuments(), chunks, [][]float32{{1}, {2}}, "m")
	assert.ErrorIs(t, err, core.ErrEmbeddingAlignment)

	// Content is irrelevant: empty chunks against one embedding still fails.
	_, err = Build(nil, nil, [][]float32{{1}}, "m")
	assert.ErrorIs(t, err, core.ErrEmbeddingAlignment)
}

func TestBuild_GroupsByDocumentFirstSeen(t *testing.T) {
	chunks := []core.Chunk{
		{ChunkID: "roadmap_p1_c1", DocID: "roadmap", Page: 1, Position: 1, Text: "r1"},
		{ChunkID: "reg_p1_c1", DocID: "reg", Page: 1, Position: 1, Text: "g1"},
		{ChunkID: "roadmap_p1_c2", DocID: "roadmap", Page: 1, Position: 2, Text: "r2"},
	}
	embeddings := [][]float32{{0.1}, {0.2}, {0.3}}

	result, err := Build(sampleDocuments(), chunks, embeddings, "text-embedding-3-small")
	require.NoError(t, err)

	require.Len(t, result.Documents, 2)
	assert.Equal(t, "roadmap", result.Documents[0].DocID, "groups appear in first-seen order")
	assert.Equal(t, "reg", result.Documents[1].DocID)

	roadmap := result.Documents[0]
	assert.Equal(t, "/data/roadmap.pdf", roadmap.SourcePath)
	require.Len(t, roadmap.Chunks, 2)
	assert.Equal(t, "roadmap_p1_c1", roadmap.Chunks[0].ChunkID)
	assert.Equal(t, []float32{0.1}, roadmap.Chunks[0].Embedding)
	assert.Equal(t, "roadmap_p1_c2", roadmap.Chunks[1].ChunkID)
	assert.Equal(t, []float32{0.3}, roadmap.Chunks[1].Embedding)

	assert.Equal(t, "text-embedding-3-small", result.Metadata.Model)
	assert.Equal(t, 2, result.Metadata.NumDocuments)
	assert.Equal(t, 3, result.Metadata.NumChunks)
}

func TestBuild_DropsOrphanChunks(t *testing.T) {
	chunks := []core.Chunk{
		{ChunkID: "reg_p1_c1", DocID: "reg", Page: 1, Position: 1, Text: "kept"},
		{ChunkID: "ghost_p1_c1", DocID: "ghost", Page: 1, Position: 1, Text: "dropped"},
	}
	embeddings := [][]float32{{1}, {2}}

	result, err := Build(sampleDocuments(), chunks, embeddings, "m")
	require.NoError(t, err)

	require.Len(t, result.Documents, 1)
	assert.Equal(t, "reg", result.Documents[0].DocID)
	assert.Equal(t, 1, result.Metadata.NumDocuments, "counts come from the grouped output")
	assert.Equal(t, 1, result.Metadata.NumChunks)
}

func TestBuild_CreatedAtIsUTCWithZ(t *testing.T) {
	result, err := Build(nil, nil, nil, "m")
	require.NoError(t, err)

	parsed, err := time.Parse(time.RFC3339, result.Metadata.CreatedAt)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), parsed, time.Minute)
	assert.Regexp(t, `Z$`, result.Metadata.CreatedAt)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	chunks := []core.Chunk{
		{ChunkID: "reg_p1_c1", DocID: "reg", Page: 1, Position: 1, Text: "first"},
		{ChunkID: "reg_p2_c1", DocID: "reg", Page: 2, Position: 1, Text: "second"},
	}
	embeddings := [][]float32{{0.25, -1.5}, {3.125, 0}}

	built, err := Build(sampleDocuments(), chunks, embeddings, "text-embedding-3-small")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "rag", "knowledge_vectors.json")
	require.NoError(t, Save(built, path))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, built.Metadata.NumDocuments, loaded.Metadata.NumDocuments)
	assert.Equal(t, built.Metadata.NumChunks, loaded.Metadata.NumChunks)
	assert.Equal(t, built.Metadata.CreatedAt, loaded.Metadata.CreatedAt)
	require.Len(t, loaded.Documents, 1)

	for i, chunk := range loaded.Documents[0].Chunks {
		want := built.Documents[0].Chunks[i]
		assert.Equal(t, want.ChunkID, chunk.ChunkID)
		assert.Equal(t, want.Page, chunk.Page)
		assert.Equal(t, want.Position, chunk.Position)
		assert.Equal(t, want.Text, chunk.Text)
		require.Len(t, chunk.Embedding, len(want.Embedding))
		for j := range chunk.Embedding {
			assert.InDelta(t, want.Embedding[j], chunk.Embedding[j], 1e-6)
		}
	}
}

func TestSave_OverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.json")

	first, err := Build(sampleDocuments(),
		[]core.Chunk{{ChunkID: "reg_p1_c1", DocID: "reg", Page: 1, Position: 1, Text: "x"}},
		[][]float32{{1}}, "m")
	require.NoError(t, err)
	require.NoError(t, Save(first, path))

	second, err := Build(nil, nil, nil, "m2")
	require.NoError(t, err)
	require.NoError(t, Save(second, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "m2", loaded.Metadata.Model)
	assert.Equal(t, 0, loaded.Metadata.NumChunks)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
