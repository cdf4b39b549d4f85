// Package mock provides test double implementations of the ai interfaces.
//
// This package contains a mock implementation of ai.Embedder for use in unit
// tests. It allows tests to run without external embedding services and
// enables controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	embedder := mock.NewMockEmbedder()
//	vectors, err := embedder.EmbedTexts(ctx, []string{"test"})
//
//	// Custom behavior injection
//	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
//	    out := make([][]float32, len(texts))
//	    for i := range texts {
//	        out[i] = []float32{0.1, 0.2, 0.3}
//	    }
//	    return out, nil
//	}
//
//	// Check call counts
//	count := embedder.CallCount()
//
// The default behavior returns deterministic vectors derived from a hash of
// the input text.
package mock
