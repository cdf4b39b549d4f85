package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
input = "/data/pdfs"
output = "/out/kb.json"
chunk_size = 500
overlap = 100
batch_size = 32
model = "nomic-embed-text"
embedding_host = "http://embedder:11434/v1"
catalog = "/var/lib/vecbase/catalog"
`)

	f, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/pdfs", f.Input)
	assert.Equal(t, "/out/kb.json", f.Output)
	assert.Equal(t, 500, f.ChunkSize)
	assert.Equal(t, 100, f.Overlap)
	assert.Equal(t, 32, f.BatchSize)
	assert.Equal(t, "nomic-embed-text", f.Model)
	assert.Equal(t, "http://embedder:11434/v1", f.EmbeddingHost)
	assert.Equal(t, "/var/lib/vecbase/catalog", f.Catalog)
}

func TestLoad_PartialFile(t *testing.T) {
	path := writeConfig(t, `
input = "/data"
chunk_size = 300
`)

	f, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data", f.Input)
	assert.Equal(t, 300, f.ChunkSize)
	assert.Zero(t, f.Overlap, "unset fields stay zero")
	assert.Empty(t, f.Model)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoad_Malformed(t *testing.T) {
	path := writeConfig(t, `input = [unclosed`)

	_, err := Load(path)
	assert.Error(t, err)
}
