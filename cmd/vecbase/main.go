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


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/quercia-labs/vecbase/ai"
	"github.com/quercia-labs/vecbase/ai/openai"
	"github.com/quercia-labs/vecbase/chunker"
	"github.com/quercia-labs/vecbase/config"
	"github.com/quercia-labs/vecbase/embed"
	"github.com/quercia-labs/vecbase/evidence"
	"github.com/quercia-labs/vecbase/kb"
	"github.com/quercia-labs/vecbase/pipeline"
	"github.com/quercia-labs/vecbase/storage"
	"github.com/quercia-labs/vecbase/storage/badger"
)

func main() {
	app := &cli.App{
		Name:  "vecbase",
		Usage: "Build JSON vector knowledge bases from PDF documents",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "Load, chunk and embed PDFs into a knowledge base file",
				Action: ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "input",
						Aliases: []string{"i"},
						Usage:   "Directory containing the source PDF files",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Path of the knowledge base JSON file to write",
					},
					&cli.StringFlag{
						Name:  "config",
						Usage: "TOML config file; explicit flags take precedence",
					},
					&cli.IntFlag{
						Name:  "chunk-size",
						Usage: "Chunk window width in words",
						Value: chunker.DefaultChunkSize,
					},
					&cli.IntFlag{
						Name:  "overlap",
						Usage: "Words shared between consecutive chunks of a page",
						Value: chunker.DefaultOverlap,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of chunks to embed per provider request",
						Value: embed.DefaultBatchSize,
					},
					&cli.StringFlag{
						Name:  "model",
						Usage: "Embedding model name",
						Value: "text-embedding-3-small",
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:    "api-token",
						Usage:   "API token for the embedding service",
						EnvVars: []string{"VECBASE_API_TOKEN"},
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum attempts per provider call",
						Value: embed.DefaultMaxRetries,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: embed.DefaultRetryDelay,
					},
					&cli.StringFlag{
						Name:  "catalog",
						Usage: "BadgerDB directory recording completed runs (optional)",
					},
				},
			},
			{
				Name:   "inspect",
				Usage:  "Print the metadata of a knowledge base file",
				Action: inspectCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "kb",
						Usage:    "Path to the knowledge base JSON file",
						Required: true,
					},
				},
			},
			{
				Name:   "runs",
				Usage:  "List ingestion runs recorded in a catalog",
				Action: runsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "catalog",
						Usage:    "BadgerDB catalog directory",
						Required: true,
					},
				},
			},
			{
				Name:   "seal",
				Usage:  "Seal run artifacts into a manifest and audit package",
				Action: sealCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "run-id",
						Usage:    "Identifier of the run being sealed",
						Required: true,
					},
					&cli.StringSliceFlag{
						Name:     "artifact",
						Aliases:  []string{"a"},
						Usage:    "Artifact to seal, as name=path (repeatable)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "manifest",
						Usage: "Path of the manifest JSON to write",
						Value: "manifest.json",
					},
					&cli.StringFlag{
						Name:  "zip",
						Usage: "Path of the ZIP audit package to write (optional)",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// ingestSettings holds the ingest parameters after merging the config file
// with the command line. Flags set explicitly win over file values.
type ingestSettings struct {
	input         string
	output        string
	chunkSize     int
	overlap       int
	batchSize     int
	model         string
	embeddingHost string
	catalog       string
}

func resolveSettings(c *cli.Context) (*ingestSettings, error) {
	var file config.File
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		file = *loaded
	}

	pick := func(flag, fileVal string) string {
		if c.IsSet(flag) || fileVal == "" {
			return c.String(flag)
		}
		return fileVal
	}
	pickInt := func(flag string, fileVal int) int {
		if c.IsSet(flag) || fileVal == 0 {
			return c.Int(flag)
		}
		return fileVal
	}

	s := &ingestSettings{
		input:         pick("input", file.Input),
		output:        pick("output", file.Output),
		chunkSize:     pickInt("chunk-size", file.ChunkSize),
		overlap:       pickInt("overlap", file.Overlap),
		batchSize:     pickInt("batch-size", file.BatchSize),
		model:         pick("model", file.Model),
		embeddingHost: pick("embedding-host", file.EmbeddingHost),
		catalog:       pick("catalog", file.Catalog),
	}

	if s.input == "" {
		return nil, fmt.Errorf("input directory is required (--input or config file)")
	}
	if s.output == "" {
		return nil, fmt.Errorf("output path is required (--output or config file)")
	}
	return s, nil
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	settings, err := resolveSettings(c)
	if err != nil {
		return err
	}

	aiConfig := ai.NewConfig(
		ai.WithHost(settings.embeddingHost),
		ai.WithModel(settings.model),
		ai.WithAPIToken(c.String("api-token")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid embedding configuration: %w", err)
	}

	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	opts := []pipeline.Option{
		pipeline.WithChunking(chunker.Config{
			ChunkSize: settings.chunkSize,
			Overlap:   settings.overlap,
		}),
		pipeline.WithEmbedConfig(&embed.Config{
			BatchSize:  settings.batchSize,
			MaxRetries: c.Int("max-retries"),
			RetryDelay: c.Duration("retry-delay"),
		}),
		pipeline.WithProgress(embed.NewWriterReporter(os.Stderr)),
	}

	var catalog storage.CatalogRepository
	if settings.catalog != "" {
		backend, err := badger.OpenBackend(settings.catalog, false)
		if err != nil {
			return fmt.Errorf("failed to open catalog: %w", err)
		}
		defer backend.Close()

		catalog, err = badger.NewCatalogRepository(backend)
		if err != nil {
			return fmt.Errorf("failed to create catalog: %w", err)
		}
		defer catalog.Close()

		opts = append(opts, pipeline.WithCatalog(catalog))
	}

	p, err := pipeline.New(embedder, settings.model, opts...)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Input: %s\n", settings.input)
	fmt.Fprintf(os.Stderr, "Output: %s\n", settings.output)
	fmt.Fprintf(os.Stderr, "Model: %s @ %s\n", settings.model, aiConfig.EmbeddingHost)
	fmt.Fprintln(os.Stderr)

	base, err := p.Run(ctx, settings.input, settings.output)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Wrote %s: %d documents, %d chunks\n",
		settings.output, base.Metadata.NumDocuments, base.Metadata.NumChunks)
	return nil
}

func inspectCommand(c *cli.Context) error {
	base, err := kb.Load(c.String("kb"))
	if err != nil {
		return err
	}

	fmt.Printf("Created:   %s\n", base.Metadata.CreatedAt)
	fmt.Printf("Model:     %s\n", base.Metadata.Model)
	fmt.Printf("Documents: %d\n", base.Metadata.NumDocuments)
	fmt.Printf("Chunks:    %d\n", base.Metadata.NumChunks)
	for _, doc := range base.Documents {
		fmt.Printf("  %-30s %4d chunks  (%s)\n", doc.DocID, len(doc.Chunks), doc.SourcePath)
	}
	return nil
}

func runsCommand(c *cli.Context) error {
	backend, err := badger.OpenBackend(c.String("catalog"), false)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer backend.Close()

	catalog, err := badger.NewCatalogRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create catalog: %w", err)
	}
	defer catalog.Close()

	runs, err := catalog.GetRuns(context.Background())
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	for _, run := range runs {
		fmt.Printf("#%d  %s -> %s\n", run.Id, run.Source, run.OutputPath)
		fmt.Printf("    model=%s documents=%d chunks=%d duration=%s\n",
			run.Model, run.NumDocuments, run.NumChunks,
			run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond))
	}
	return nil
}

func sealCommand(c *cli.Context) error {
	artifacts, err := parseArtifacts(c.StringSlice("artifact"))
	if err != nil {
		return err
	}

	sealer, err := evidence.NewSealer()
	if err != nil {
		return err
	}
	defer sealer.Release()

	manifest, err := sealer.Seal(c.String("run-id"), artifacts)
	if err != nil {
		return fmt.Errorf("sealing failed: %w", err)
	}

	manifestPath := c.String("manifest")
	if err := evidence.WriteManifest(manifest, manifestPath); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Manifest: %s\n", manifestPath)

	if zipPath := c.String("zip"); zipPath != "" {
		if err := evidence.WritePackage(manifest, artifacts, zipPath); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Package: %s\n", zipPath)
	}

	fmt.Printf("%s\n", manifest.MerkleRoot)
	return nil
}

// parseArtifacts turns repeated name=path flags into evidence artifacts. A
// bare path gets its base name as the artifact name.
func parseArtifacts(specs []string) ([]evidence.Artifact, error) {
	artifacts := make([]evidence.Artifact, 0, len(specs))
	for _, spec := range specs {
		name, path, found := strings.Cut(spec, "=")
		if !found {
			path = spec
			name = filepath.Base(spec)
		}
		if name == "" || path == "" {
			return nil, fmt.Errorf("invalid artifact %q: expected name=path", spec)
		}
		artifacts = append(artifacts, evidence.Artifact{Name: name, Path: path})
	}
	return artifacts, nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
