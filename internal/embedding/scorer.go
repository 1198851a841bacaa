package embedding

import (
	"context"
	"fmt"
)

// SimilarityScorer scores every catalog title against a query, returning
// one value in [0, 1] per title, aligned to the title order given at
// construction.
type SimilarityScorer interface {
	ScoreAll(ctx context.Context, query string) ([]float64, error)
}

// TitleScorer computes cosine similarity between a query embedding and
// precomputed catalog title embeddings. Title embeddings are computed once
// at construction and read-only afterwards, so ScoreAll is safe for
// concurrent use.
type TitleScorer struct {
	embedder  Embedder
	titleVecs [][]float32
}

// NewTitleScorer embeds every title up front. With a fixed catalog this is
// the whole inference cost for titles for the process lifetime.
func NewTitleScorer(ctx context.Context, embedder Embedder, titles []string) (*TitleScorer, error) {
	if len(titles) == 0 {
		return nil, fmt.Errorf("no titles to embed")
	}
	vecs, err := embedder.EmbedBatch(ctx, titles)
	if err != nil {
		return nil, fmt.Errorf("failed to embed catalog titles: %w", err)
	}
	return &TitleScorer{embedder: embedder, titleVecs: vecs}, nil
}

// ScoreAll embeds the query and returns its cosine similarity to every
// title, clamped to [0, 1]. Embeddings are unit-length, so inner product
// is cosine similarity.
func (s *TitleScorer) ScoreAll(ctx context.Context, query string) ([]float64, error) {
	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	scores := make([]float64, len(s.titleVecs))
	for i, titleVec := range s.titleVecs {
		scores[i] = clamp01(innerProduct(queryVec, titleVec))
	}
	return scores, nil
}

// Size returns the number of titles the scorer covers.
func (s *TitleScorer) Size() int {
	return len(s.titleVecs)
}

func innerProduct(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
