// Package engine fuses similarity, rating, read-list, and author-match
// signals into one ranked book list per query.
package engine

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/osusume/internal/authorindex"
	"github.com/hyperjump/osusume/internal/boost"
	"github.com/hyperjump/osusume/internal/catalog"
	"github.com/hyperjump/osusume/internal/config"
	"github.com/hyperjump/osusume/internal/embedding"
	"github.com/hyperjump/osusume/internal/models"
	"github.com/hyperjump/osusume/internal/rating"
	"github.com/hyperjump/osusume/internal/storage"
)

// similarityFloor is the minimum similarity per book. It keeps the
// multiplicative fusion from zeroing out items, and it is the uniform
// similarity assigned when the query text is empty.
const similarityFloor = 0.05

// Engine runs the multi-signal ranking pipeline. All dependencies are
// immutable after construction; Query is safe for concurrent use.
type Engine struct {
	catalog   *catalog.Catalog
	index     *authorindex.Index
	predictor rating.Predictor
	scorer    embedding.SimilarityScorer
	store     storage.Storage
	cfg       *config.EngineConfig
	logger    *zap.Logger
	maxUserID int
}

// New wires the engine. The author index is verified against the catalog
// up front so a corrupt index fails loudly at startup instead of silently
// misranking. store may be nil when result persistence is disabled.
func New(
	cat *catalog.Catalog,
	idx *authorindex.Index,
	predictor rating.Predictor,
	scorer embedding.SimilarityScorer,
	store storage.Storage,
	cfg *config.EngineConfig,
	logger *zap.Logger,
) (*Engine, error) {
	if err := idx.Verify(cat.Size()); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	maxUserID := predictor.MaxUserID()
	if cfg.MaxUserID > 0 {
		maxUserID = cfg.MaxUserID
	}
	return &Engine{
		catalog:   cat,
		index:     idx,
		predictor: predictor,
		scorer:    scorer,
		store:     store,
		cfg:       cfg,
		logger:    logger,
		maxUserID: maxUserID,
	}, nil
}

// Query validates the request, computes the four signal vectors over the
// catalog ordering, fuses them multiplicatively, and returns the top K
// books by final score. Ties keep catalog order (stable sort), so results
// are deterministic.
func (e *Engine) Query(ctx context.Context, req *models.QueryRequest) (*models.QueryResponse, error) {
	start := time.Now()
	if req.BoostFactor == 0 && e.cfg.DefaultBoostFactor > 0 {
		req.BoostFactor = e.cfg.DefaultBoostFactor
	}
	if req.K == 0 && e.cfg.DefaultK > 0 {
		req.K = e.cfg.DefaultK
	}
	req.ApplyDefaults()
	if err := e.validate(req); err != nil {
		return nil, err
	}

	n := e.catalog.Size()
	bookIDs := make([]int, n)
	for i := range bookIDs {
		bookIDs[i] = i + 1
	}

	// The rating and similarity models are independent external calls;
	// run them concurrently. Boost vectors are cheap and local.
	var (
		similarity []float64
		ratings    []float64
		wg         sync.WaitGroup
		errChan    = make(chan error, 2)
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		scores, err := e.similarityVector(ctx, req.Text)
		if err != nil {
			errChan <- err
			return
		}
		similarity = scores
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		scores, err := e.ratingVector(ctx, req.UserID, bookIDs)
		if err != nil {
			errChan <- err
			return
		}
		ratings = scores
	}()

	wg.Wait()
	close(errChan)
	for err := range errChan {
		if err != nil {
			return nil, err
		}
	}

	readBoost := boost.ReadListBoost(e.catalog, req.UserID, req.BoostFactor)
	authorBoost := boost.AuthorBoost(e.catalog, e.index, req.Text)

	if len(similarity) != n || len(ratings) != n {
		return nil, fmt.Errorf("signal vector misaligned with catalog: similarity=%d ratings=%d catalog=%d: %w",
			len(similarity), len(ratings), n, ErrModelUnavailable)
	}

	// Multiplicative fusion: one strongly boosted signal elevates a book,
	// one near-zero signal suppresses it, no learned weights needed.
	type scoredBook struct {
		id    int
		score float64
	}
	scored := make([]scoredBook, n)
	for i := 0; i < n; i++ {
		scored[i] = scoredBook{
			id:    i + 1,
			score: similarity[i] * readBoost[i] * ratings[i] * authorBoost[i],
		}
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })

	k := req.K
	if k > n {
		k = n
	}

	resp := &models.QueryResponse{
		Results: make([]*models.Recommendation, 0, k),
		UserID:  req.UserID,
		Query:   req.Text,
	}
	for i := 0; i < k; i++ {
		book, ok := e.catalog.Book(scored[i].id)
		if !ok {
			// Unreachable while Verify holds; fail loudly rather than emit
			// a hole in the ranking.
			return nil, fmt.Errorf("ranked book id %d missing from catalog: %w",
				scored[i].id, authorindex.ErrIndexCorrupt)
		}
		resp.Results = append(resp.Results, &models.Recommendation{
			Book:       book,
			FinalScore: scored[i].score,
			InReadList: readBoost[scored[i].id-1] > 1,
			Rank:       i + 1,
		})
	}
	resp.QueryTime = time.Since(start).Milliseconds()

	if req.SaveResult || e.cfg.SaveResults {
		e.saveResults(ctx, resp)
	}

	e.logger.Debug("query ranked",
		zap.Int("user_id", req.UserID),
		zap.String("text", req.Text),
		zap.Int("k", k),
		zap.Int64("query_time_ms", resp.QueryTime),
	)
	return resp, nil
}

// validate rejects bad arguments before any model call runs.
func (e *Engine) validate(req *models.QueryRequest) error {
	if req.UserID < 1 || req.UserID > e.maxUserID {
		return fmt.Errorf("user_id must be in [1, %d], got %d: %w", e.maxUserID, req.UserID, ErrInvalidArgument)
	}
	if req.BoostFactor <= 1 {
		return fmt.Errorf("boost_factor must be > 1, got %v: %w", req.BoostFactor, ErrInvalidArgument)
	}
	if req.K < 1 {
		return fmt.Errorf("k must be >= 1, got %d: %w", req.K, ErrInvalidArgument)
	}
	if e.cfg.MaxK > 0 && req.K > e.cfg.MaxK {
		req.K = e.cfg.MaxK
	}
	return nil
}

// similarityVector returns the per-book similarity signal. An empty query
// skips the model entirely and yields a uniform low-confidence vector, so
// empty queries rank purely by rating and boosts. Model scores are floored
// at similarityFloor.
func (e *Engine) similarityVector(ctx context.Context, text string) ([]float64, error) {
	n := e.catalog.Size()
	if text == "" {
		vec := make([]float64, n)
		for i := range vec {
			vec[i] = similarityFloor
		}
		return vec, nil
	}

	callCtx, cancel := e.modelContext(ctx)
	defer cancel()
	scores, err := e.scorer.ScoreAll(callCtx, text)
	if err != nil {
		return nil, fmt.Errorf("similarity scorer: %w: %w", ErrModelUnavailable, err)
	}
	for i, s := range scores {
		if s < similarityFloor {
			scores[i] = similarityFloor
		}
	}
	return scores, nil
}

// ratingVector returns the predicted affinity per book, aligned to bookIDs.
func (e *Engine) ratingVector(ctx context.Context, userID int, bookIDs []int) ([]float64, error) {
	callCtx, cancel := e.modelContext(ctx)
	defer cancel()
	scores, err := e.predictor.Predict(callCtx, userID, bookIDs)
	if err != nil {
		return nil, fmt.Errorf("rating predictor: %w: %w", ErrModelUnavailable, err)
	}
	return scores, nil
}

// modelContext bounds an external model call. Without the bound a stalled
// model blocks the whole query indefinitely.
func (e *Engine) modelContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := e.cfg.ModelTimeout()
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// saveResults persists the ranked set; failures are logged, never fatal to
// the query that produced them.
func (e *Engine) saveResults(ctx context.Context, resp *models.QueryResponse) {
	if e.store == nil {
		return
	}
	if _, err := e.store.SaveResultSet(ctx, resp); err != nil {
		e.logger.Warn("failed to save result set",
			zap.Int("user_id", resp.UserID),
			zap.String("query", resp.Query),
			zap.Error(err),
		)
	}
}

// CatalogSize returns the number of books served.
func (e *Engine) CatalogSize() int {
	return e.catalog.Size()
}

// MaxUserID returns the highest user id accepted by Query.
func (e *Engine) MaxUserID() int {
	return e.maxUserID
}

// AuthorKeys returns the number of distinct author keys indexed.
func (e *Engine) AuthorKeys() int {
	return e.index.Keys()
}
