package evidence

import (
	"archive/zip"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSealer(t *testing.T) *Sealer {
	t.Helper()
	sealer, err := NewSealer(WithPoolSize(2))
	require.NoError(t, err)
	t.Cleanup(sealer.Release)
	return sealer
}

func writeArtifact(t *testing.T, dir, name, content string) Artifact {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return Artifact{Name: name, Path: path}
}

func TestSeal_RootIsSortedConcatenatedHash(t *testing.T) {
	dir := t.TempDir()
	artifacts := []Artifact{
		writeArtifact(t, dir, "kb.json", `{"metadata":{}}`),
		writeArtifact(t, dir, "run.log", "ingestion started\n"),
		writeArtifact(t, dir, "config.toml", "chunk_size = 800\n"),
	}

	sealer := newSealer(t)
	manifest, err := sealer.Seal("run-42", artifacts)
	require.NoError(t, err)

	assert.Equal(t, "run-42", manifest.RunID)
	assert.Equal(t, StatusSealed, manifest.Status)
	require.Len(t, manifest.Artifacts, 3)

	// Recompute the root by hand: per-file SHA-256, sort the hex digests,
	// hash their concatenation.
	var hashes []string
	for _, artifact := range artifacts {
		data, err := os.ReadFile(artifact.Path)
		require.NoError(t, err)
		sum := sha256.Sum256(data)
		hashes = append(hashes, hex.EncodeToString(sum[:]))
	}
	sort.Strings(hashes)
	root := sha256.Sum256([]byte(strings.Join(hashes, "")))

	assert.Equal(t, "SHA256:"+hex.EncodeToString(root[:]), manifest.MerkleRoot)
}

func TestSeal_RootIndependentOfArtifactOrder(t *testing.T) {
	dir := t.TempDir()
	a := writeArtifact(t, dir, "a.json", "alpha")
	b := writeArtifact(t, dir, "b.json", "beta")

	sealer := newSealer(t)

	first, err := sealer.Seal("r1", []Artifact{a, b})
	require.NoError(t, err)
	second, err := sealer.Seal("r1", []Artifact{b, a})
	require.NoError(t, err)

	assert.Equal(t, first.MerkleRoot, second.MerkleRoot)
}

func TestSeal_ManifestPreservesArtifactOrder(t *testing.T) {
	dir := t.TempDir()
	artifacts := []Artifact{
		writeArtifact(t, dir, "zz.json", "1"),
		writeArtifact(t, dir, "aa.json", "2"),
	}

	sealer := newSealer(t)
	manifest, err := sealer.Seal("r1", artifacts)
	require.NoError(t, err)

	require.Len(t, manifest.Artifacts, 2)
	assert.Equal(t, "zz.json", manifest.Artifacts[0].File)
	assert.Equal(t, "aa.json", manifest.Artifacts[1].File)
}

func TestSeal_SkipsMissingArtifacts(t *testing.T) {
	dir := t.TempDir()
	present := writeArtifact(t, dir, "present.json", "data")
	missing := Artifact{Name: "gone.json", Path: filepath.Join(dir, "gone.json")}

	sealer := newSealer(t)
	manifest, err := sealer.Seal("r1", []Artifact{missing, present})
	require.NoError(t, err)

	require.Len(t, manifest.Artifacts, 1)
	assert.Equal(t, "present.json", manifest.Artifacts[0].File)
}

func TestSeal_Validation(t *testing.T) {
	sealer := newSealer(t)

	_, err := sealer.Seal("", nil)
	assert.ErrorIs(t, err, ErrEmptyRunID)

	_, err = sealer.Seal("r1", nil)
	assert.ErrorIs(t, err, ErrNoArtifacts)

	missing := Artifact{Name: "x", Path: filepath.Join(t.TempDir(), "x")}
	_, err = sealer.Seal("r1", []Artifact{missing})
	assert.ErrorIs(t, err, ErrNoArtifacts)
}

func TestWriteReadManifest(t *testing.T) {
	dir := t.TempDir()
	artifact := writeArtifact(t, dir, "kb.json", "content")

	sealer := newSealer(t)
	manifest, err := sealer.Seal("r7", []Artifact{artifact})
	require.NoError(t, err)

	path := filepath.Join(dir, "out", "manifest.json")
	require.NoError(t, WriteManifest(manifest, path))

	loaded, err := ReadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, manifest, loaded)
}

func TestWritePackage(t *testing.T) {
	dir := t.TempDir()
	artifacts := []Artifact{
		writeArtifact(t, dir, "kb.json", `{"documents":[]}`),
		writeArtifact(t, dir, "run.log", "done\n"),
	}

	sealer := newSealer(t)
	manifest, err := sealer.Seal("r9", artifacts)
	require.NoError(t, err)

	zipPath := filepath.Join(dir, "audit", "evidence.zip")
	require.NoError(t, WritePackage(manifest, artifacts, zipPath))

	reader, err := zip.OpenReader(zipPath)
	require.NoError(t, err)
	defer reader.Close()

	names := make([]string, 0, len(reader.File))
	for _, f := range reader.File {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{"kb.json", "run.log", "manifest.json"}, names)
}
