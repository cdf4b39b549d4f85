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


package loader

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/quercia-labs/vecbase/core"
)

// PageExtractor extracts per-page plain text from a document file.
// Page texts are returned untrimmed in physical page order.
type PageExtractor interface {
	ExtractPages(ctx context.Context, path string) ([]string, error)
}

// Loader turns source files into core.Documents, one per file that yields
// at least one page of extractable text.
type Loader struct {
	extractor PageExtractor
	logger    *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithExtractor replaces the default PDF page extractor.
func WithExtractor(extractor PageExtractor) Option {
	return func(l *Loader) {
		if extractor != nil {
			l.extractor = extractor
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New creates a Loader. The default extractor parses PDF files.
func New(opts ...Option) *Loader {
	l := &Loader{
		extractor: &pdfExtractor{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = l.logger.With("component", "loader")
	return l
}

// ListFiles enumerates the PDF files in dir in a stable sorted order.
func (l *Loader) ListFiles(dir string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.pdf"))
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// Load extracts documents from the given paths, preserving order.
// Files that cannot be read or yield no usable text are skipped and reported
// in the outcomes; they are never fatal and leave no placeholder in the
// document list.
func (l *Loader) Load(ctx context.Context, paths []string) ([]core.Document, []Outcome) {
	documents := make([]core.Document, 0, len(paths))
	outcomes := make([]Outcome, 0, len(paths))
	seen := make(map[string]bool, len(paths))

	for _, path := range paths {
		doc, outcome := l.loadFile(ctx, path, seen)
		outcomes = append(outcomes, outcome)
		if outcome.Status != OutcomeLoaded {
			l.logger.Warn("skipping file", "path", path, "reason", outcome.Reason)
			continue
		}
		seen[doc.DocID] = true
		documents = append(documents, *doc)
	}

	return documents, outcomes
}

// loadFile extracts a single document. seen holds the doc ids already taken
// by earlier files, for collision disambiguation.
func (l *Loader) loadFile(ctx context.Context, path string, seen map[string]bool) (*core.Document, Outcome) {
	rawPages, err := l.extractor.ExtractPages(ctx, path)
	if err != nil {
		return nil, Skipped(path, fmt.Sprintf("extraction failed: %v", err))
	}

	pages := make([]core.Page, 0, len(rawPages))
	for i, raw := range rawPages {
		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}
		pages = append(pages, core.Page{
			PageNumber: i + 1,
			Text:       text,
		})
	}

	if len(pages) == 0 {
		return nil, Skipped(path, "no extractable text")
	}

	stem := fileStem(path)
	docID := stem
	if seen[docID] {
		// Two input files share a base name; keep both by suffixing a
		// hash of the full path. Title keeps the bare stem.
		docID = fmt.Sprintf("%s-%s", stem, core.ShortPathHash(path))
		l.logger.Warn("doc id collision, disambiguating", "path", path, "doc_id", docID)
	}

	return &core.Document{
		DocID:      docID,
		Title:      stem,
		SourcePath: path,
		Pages:      pages,
	}, Loaded(path)
}

// fileStem returns the base name of path without its extension.
func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
