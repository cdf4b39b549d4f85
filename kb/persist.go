package kb

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/quercia-labs/vecbase/core"
)

// Save persists a knowledge base as a single JSON record at path, fully
// overwriting any existing file. The parent directory is created if needed.
//
// The record is written to a temporary file in the target directory and
// renamed into place, so readers never observe a truncated store.
func Save(kb *core.KnowledgeBase, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	data, err := json.Marshal(kb)
	if err != nil {
		return fmt.Errorf("encoding knowledge base: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".kb-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing knowledge base: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", path, err)
	}

	return nil
}

// Load reads a persisted knowledge base record back from path.
func Load(path string) (*core.KnowledgeBase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading knowledge base: %w", err)
	}

	var kb core.KnowledgeBase
	if err := json.Unmarshal(data, &kb); err != nil {
		return nil, fmt.Errorf("decoding knowledge base: %w", err)
	}
	return &kb, nil
}
