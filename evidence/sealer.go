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


package evidence

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
)

// StatusSealed is the status recorded in a completed manifest.
const StatusSealed = "SEALED"

// Artifact names a file to include in a sealed evidence package.
type Artifact struct {
	Name string
	Path string
}

// ManifestEntry records the hash of one sealed artifact.
type ManifestEntry struct {
	File      string `json:"file"`
	SHA256    string `json:"sha256"`
	Timestamp string `json:"timestamp"`
}

// Manifest is the sealed evidence record for one ingestion run.
type Manifest struct {
	RunID      string          `json:"run_id"`
	Status     string          `json:"status"`
	MerkleRoot string          `json:"merkle_root"`
	Artifacts  []ManifestEntry `json:"artifacts"`
}

// Sealer hashes run artifacts and assembles tamper-evident manifests.
// Artifact hashing runs on a worker pool; the manifest itself is assembled
// deterministically regardless of hashing order.
type Sealer struct {
	pool   *ants.Pool
	logger *slog.Logger
}

// Option configures a Sealer.
type Option func(*Sealer) error

// WithPoolSize sets the worker pool size for artifact hashing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(s *Sealer) error {
		if size < 1 {
			size = 1
		}

		if s.pool != nil {
			s.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		s.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sealer) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSealer creates a Sealer with its hashing pool.
func NewSealer(opts ...Option) (*Sealer, error) {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	s := &Sealer{
		pool:   pool,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if optErr := opt(s); optErr != nil {
			s.Release()
			return nil, optErr
		}
	}
	s.logger = s.logger.With("component", "evidence")

	return s, nil
}

// Release shuts down the hashing pool.
func (s *Sealer) Release() {
	if s.pool != nil {
		s.pool.Release()
	}
}

// Seal hashes every artifact and assembles the manifest for runID.
//
// Artifacts whose files are missing are skipped with a warning and omitted
// from the manifest. The root is the SHA-256 of the concatenated sorted hex
// hashes of the sealed artifacts; it is flat rather than a hash tree, so two
// manifests over the same set of file contents always share a root.
func (s *Sealer) Seal(runID string, artifacts []Artifact) (*Manifest, error) {
	if runID == "" {
		return nil, ErrEmptyRunID
	}

	entries := make([]*ManifestEntry, len(artifacts))
	hashErrs := make([]error, len(artifacts))

	var wg sync.WaitGroup
	for i := range artifacts {
		i := i
		wg.Add(1)
		err := s.pool.Submit(func() {
			defer wg.Done()
			entries[i], hashErrs[i] = s.hashArtifact(artifacts[i])
		})
		if err != nil {
			wg.Done()
			return nil, fmt.Errorf("submitting hash task: %w", err)
		}
	}
	wg.Wait()

	manifest := &Manifest{
		RunID:  runID,
		Status: StatusSealed,
	}

	var hashes []string
	for i, entry := range entries {
		if hashErrs[i] != nil {
			s.logger.Warn("skipping artifact", "name", artifacts[i].Name, "err", hashErrs[i])
			continue
		}
		manifest.Artifacts = append(manifest.Artifacts, *entry)
		hashes = append(hashes, entry.SHA256)
	}

	if len(hashes) == 0 {
		return nil, ErrNoArtifacts
	}

	manifest.MerkleRoot = "SHA256:" + flatRoot(hashes)

	return manifest, nil
}

// hashArtifact computes the SHA-256 of one artifact file.
func (s *Sealer) hashArtifact(artifact Artifact) (*ManifestEntry, error) {
	f, err := os.Open(artifact.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return nil, fmt.Errorf("hashing %s: %w", artifact.Path, err)
	}

	return &ManifestEntry{
		File:      artifact.Name,
		SHA256:    hex.EncodeToString(h.Sum(nil)),
		Timestamp: info.ModTime().UTC().Format(time.RFC3339),
	}, nil
}

// flatRoot derives the root hash from the individual artifact hashes:
// sort the hex strings, concatenate them, hash the result.
func flatRoot(hashes []string) string {
	sorted := make([]string, len(hashes))
	copy(sorted, hashes)
	sort.Strings(sorted)

	h := sha256.New()
	for _, hash := range sorted {
		h.Write([]byte(hash))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// WriteManifest persists a manifest as indented JSON at path, creating the
// parent directory if needed.
func WriteManifest(manifest *Manifest, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating manifest directory: %w", err)
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// ReadManifest loads a manifest back from path.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}
	return &manifest, nil
}
