package embed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/quercia-labs/vecbase/ai"
	"github.com/quercia-labs/vecbase/core"
)

const (
	// DefaultBatchSize is the number of chunk texts sent per provider request.
	DefaultBatchSize = 64

	// DefaultMaxRetries is the default number of attempts per provider call.
	DefaultMaxRetries = 3

	// DefaultRetryDelay is the default base delay for exponential backoff.
	DefaultRetryDelay = 1 * time.Second
)

// Config holds configuration for the embedding client.
type Config struct {
	// BatchSize is the maximum number of texts per provider request.
	BatchSize int

	// MaxRetries is the maximum number of attempts per provider call.
	// 1 means a single attempt with no retry.
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff between attempts.
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:  DefaultBatchSize,
		MaxRetries: DefaultMaxRetries,
		RetryDelay: DefaultRetryDelay,
	}
}

// Client computes embeddings for chunks in consecutive batches.
// Batches are issued one at a time, never concurrently; the result is
// all-or-nothing.
type Client struct {
	embedder ai.Embedder
	config   *Config
	reporter ProgressReporter
	logger   *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithProgress sets the progress reporter invoked after each batch.
// Default is NopReporter.
func WithProgress(reporter ProgressReporter) Option {
	return func(c *Client) {
		if reporter != nil {
			c.reporter = reporter
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates an embedding client backed by embedder.
func NewClient(embedder ai.Embedder, config *Config, opts ...Option) (*Client, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if config.BatchSize <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBatchSize, config.BatchSize)
	}
	if config.MaxRetries <= 0 {
		return nil, ErrInvalidMaxAttempts
	}

	c := &Client{
		embedder: embedder,
		config:   config,
		reporter: NopReporter{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "embed")
	return c, nil
}

// EmbedChunks computes one embedding per chunk, in chunk order.
//
// Chunk texts are partitioned into consecutive batches of at most BatchSize;
// each batch is one provider request, and the provider's within-batch order
// is trusted. A failed batch aborts the whole operation: no partial list is
// returned. Zero chunks returns an empty list without contacting the
// provider. Progress is reported after every batch.
func (c *Client) EmbedChunks(ctx context.Context, chunks []core.Chunk) ([][]float32, error) {
	total := len(chunks)
	if total == 0 {
		c.logger.Info("no chunks to embed")
		return [][]float32{}, nil
	}

	texts := make([]string, total)
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	embeddings := make([][]float32, 0, total)

	for start := 0; start < total; start += c.config.BatchSize {
		end := start + c.config.BatchSize
		if end > total {
			end = total
		}
		batch := texts[start:end]
		batchNum := start/c.config.BatchSize + 1

		var vectors [][]float32
		err := RetryWithBackoff(ctx, func() error {
			var embedErr error
			vectors, embedErr = c.embedder.EmbedTexts(ctx, batch)
			return embedErr
		}, c.config.MaxRetries, c.config.RetryDelay)
		if err != nil {
			c.logger.Error("embedding batch failed", "batch", batchNum, "err", err)
			return nil, fmt.Errorf("embedding batch %d: %w", batchNum, err)
		}

		if len(vectors) != len(batch) {
			return nil, fmt.Errorf("embedding count mismatch in batch %d: expected %d, got %d",
				batchNum, len(batch), len(vectors))
		}

		embeddings = append(embeddings, vectors...)

		c.reporter.Report(len(embeddings), total,
			fmt.Sprintf("embedded %d/%d chunks", len(embeddings), total))
	}

	return embeddings, nil
}
