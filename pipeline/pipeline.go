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


package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/quercia-labs/vecbase/ai"
	"github.com/quercia-labs/vecbase/chunker"
	"github.com/quercia-labs/vecbase/core"
	"github.com/quercia-labs/vecbase/embed"
	"github.com/quercia-labs/vecbase/kb"
	"github.com/quercia-labs/vecbase/loader"
	"github.com/quercia-labs/vecbase/storage"
)

// Pipeline wires the ingestion stages together around a single embedder.
type Pipeline struct {
	embedder  ai.Embedder
	model     string
	chunking  chunker.Config
	embedCfg  *embed.Config
	reporter  embed.ProgressReporter
	extractor loader.PageExtractor
	catalog   storage.CatalogRepository
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithProgress sets the progress reporter for the embedding stage.
func WithProgress(reporter embed.ProgressReporter) Option {
	return func(p *Pipeline) {
		if reporter != nil {
			p.reporter = reporter
		}
	}
}

// WithChunking overrides the default chunking parameters.
func WithChunking(cfg chunker.Config) Option {
	return func(p *Pipeline) {
		p.chunking = cfg
	}
}

// WithEmbedConfig overrides the default batching and retry parameters.
func WithEmbedConfig(cfg *embed.Config) Option {
	return func(p *Pipeline) {
		if cfg != nil {
			p.embedCfg = cfg
		}
	}
}

// WithExtractor replaces the default PDF page extractor.
func WithExtractor(extractor loader.PageExtractor) Option {
	return func(p *Pipeline) {
		p.extractor = extractor
	}
}

// WithCatalog records completed runs in the given catalog. Catalog failures
// are logged and never fail a run.
func WithCatalog(catalog storage.CatalogRepository) Option {
	return func(p *Pipeline) {
		p.catalog = catalog
	}
}

// New creates a Pipeline around embedder. The model name is recorded in the
// knowledge base metadata and must match what the embedder actually calls.
func New(embedder ai.Embedder, model string, opts ...Option) (*Pipeline, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	p := &Pipeline{
		embedder: embedder,
		model:    model,
		chunking: chunker.DefaultConfig(),
		embedCfg: embed.DefaultConfig(),
		reporter: embed.NopReporter{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With("component", "pipeline")

	if err := p.chunking.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// Run ingests every PDF under inputDir and writes the knowledge base to
// outputPath. It returns the assembled knowledge base on success.
//
// If no document yields usable text the run stops before contacting the
// embedding provider and the output path is left untouched.
func (p *Pipeline) Run(ctx context.Context, inputDir, outputPath string) (*core.KnowledgeBase, error) {
	started := time.Now().UTC()

	ldrOpts := []loader.Option{loader.WithLogger(p.logger)}
	if p.extractor != nil {
		ldrOpts = append(ldrOpts, loader.WithExtractor(p.extractor))
	}
	ldr := loader.New(ldrOpts...)

	paths, err := ldr.ListFiles(inputDir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no PDF files in %s", ErrNoDocuments, inputDir)
	}
	p.logger.Info("ingestion started", "files", len(paths), "input", inputDir)

	documents, outcomes := ldr.Load(ctx, paths)
	if skipped := loader.SkippedCount(outcomes); skipped > 0 {
		p.logger.Warn("some files skipped", "skipped", skipped, "loaded", len(documents))
	}
	if len(documents) == 0 {
		return nil, fmt.Errorf("%w: all %d files skipped", ErrNoDocuments, len(paths))
	}

	chunks, err := chunker.ChunkDocuments(documents, p.chunking)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, ErrNoChunks
	}
	p.logger.Info("chunking complete", "documents", len(documents), "chunks", len(chunks))

	client, err := embed.NewClient(p.embedder, p.embedCfg,
		embed.WithProgress(p.reporter), embed.WithLogger(p.logger))
	if err != nil {
		return nil, err
	}

	embeddings, err := client.EmbedChunks(ctx, chunks)
	if err != nil {
		return nil, err
	}

	base, err := kb.Build(documents, chunks, embeddings, p.model)
	if err != nil {
		return nil, err
	}

	if err := kb.Save(base, outputPath); err != nil {
		return nil, err
	}
	p.logger.Info("knowledge base written",
		"output", outputPath,
		"documents", base.Metadata.NumDocuments,
		"chunks", base.Metadata.NumChunks)

	p.recordRun(ctx, inputDir, outputPath, base, started)

	return base, nil
}

// recordRun stores a catalog entry for a completed run, if a catalog is
// configured.
func (p *Pipeline) recordRun(ctx context.Context, inputDir, outputPath string, base *core.KnowledgeBase, started time.Time) {
	if p.catalog == nil {
		return
	}

	run := &core.IngestionRun{
		Source:       inputDir,
		OutputPath:   outputPath,
		Model:        p.model,
		NumDocuments: base.Metadata.NumDocuments,
		NumChunks:    base.Metadata.NumChunks,
		StartedAt:    started,
		FinishedAt:   time.Now().UTC(),
	}

	added, err := p.catalog.AddRun(ctx, run)
	if err != nil {
		p.logger.Warn("failed to record run in catalog", "err", err)
		return
	}
	p.logger.Info("run recorded", "run_id", added.Id)
}
