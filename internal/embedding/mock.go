package embedding

import (
	"context"
	"math"

	"github.com/hyperjump/osusume/pkg/utils"
)

// MockEmbedder is a deterministic embedder for tests and for running the
// engine without an ONNX runtime. The same text always produces the same
// unit-length vector, so cosine similarities are stable across runs.
type MockEmbedder struct {
	dimensions int
}

// NewMockEmbedder returns a deterministic embedder of the given dimensions.
func NewMockEmbedder(dimensions int) *MockEmbedder {
	if dimensions <= 0 {
		dimensions = 384
	}
	return &MockEmbedder{dimensions: dimensions}
}

// Embed derives a pseudo-random but stable vector from the text hash and
// normalizes it to unit length.
func (e *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	seed := hashToken(text)
	vec := make([]float32, e.dimensions)
	for i := range vec {
		vec[i] = float32(math.Sin(float64(seed%1000003)*float64(i+1)) * 0.1)
	}
	utils.NormalizeL2(vec)
	return vec, nil
}

// EmbedBatch embeds each text in order.
func (e *MockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vecs := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := e.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vecs[i] = vec
	}
	return vecs, nil
}

// Dimensions returns the embedding dimension.
func (e *MockEmbedder) Dimensions() int {
	return e.dimensions
}

// Close is a no-op.
func (e *MockEmbedder) Close() error {
	return nil
}
