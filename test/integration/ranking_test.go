// Package integration provides end-to-end tests (requires real storage and
// on-disk model artifacts).
package integration

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/hyperjump/osusume/internal/authorindex"
	"github.com/hyperjump/osusume/internal/catalog"
	"github.com/hyperjump/osusume/internal/config"
	"github.com/hyperjump/osusume/internal/embedding"
	"github.com/hyperjump/osusume/internal/engine"
	"github.com/hyperjump/osusume/internal/models"
	"github.com/hyperjump/osusume/internal/rating"
	"github.com/hyperjump/osusume/internal/storage"
)

const booksCSV = `book_id,title,authors,average_rating,original_publication_year
1,Harry Potter and the Philosopher's Stone,J.K. Rowling,4.44,1997.0
2,1984,George Orwell,4.17,1949.0
3,The Casual Vacancy,J.K. Rowling,3.28,2012.0
4,Animal Farm,George Orwell,3.87,1945.0
5,Dune,Frank Herbert,4.17,1965.0
`

const readListCSV = `user_id,book_id
1,5
2,1
2,3
`

func writeRatingModel(t *testing.T, path string, users, items int) {
	t.Helper()
	art := map[string]interface{}{
		"global_mean": 3.5,
		"user_bias":   make([]float64, users),
		"item_bias":   make([]float64, items),
	}
	uf := make([][]float64, users)
	for i := range uf {
		uf[i] = []float64{0.1, 0.2}
	}
	itf := make([][]float64, items)
	for i := range itf {
		itf[i] = []float64{0.1, 0.1}
	}
	art["user_factors"] = uf
	art["item_factors"] = itf
	data, err := json.Marshal(art)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
}

func TestIntegration_QueryAgainstStoredCatalog(t *testing.T) {
	dir := t.TempDir()
	booksPath := filepath.Join(dir, "books.csv")
	readListPath := filepath.Join(dir, "to_read.csv")
	modelPath := filepath.Join(dir, "ratings.json")
	if err := os.WriteFile(booksPath, []byte(booksCSV), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(readListPath, []byte(readListCSV), 0644); err != nil {
		t.Fatal(err)
	}
	writeRatingModel(t, modelPath, 10, 5)

	store, err := storage.NewSQLiteStorage(filepath.Join(dir, "db.sqlite"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	ctx := context.Background()

	books, err := catalog.LoadBooksCSV(booksPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.ReplaceBooks(ctx, books); err != nil {
		t.Fatal(err)
	}
	entries, err := catalog.LoadReadListCSV(readListPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.ReplaceReadList(ctx, entries); err != nil {
		t.Fatal(err)
	}

	// Round-trip through storage, the way the server assembles its catalog.
	storedBooks, err := store.ListBooks(ctx)
	if err != nil {
		t.Fatal(err)
	}
	storedEntries, err := store.ListReadList(ctx)
	if err != nil {
		t.Fatal(err)
	}
	cat, err := catalog.New(storedBooks, storedEntries)
	if err != nil {
		t.Fatal(err)
	}

	idx := authorindex.New()
	authors, ids := cat.AuthorFields()
	if err := idx.Build(authors, ids); err != nil {
		t.Fatal(err)
	}

	// Save and reload the index artifact to cover the server restart path.
	idxPath := filepath.Join(dir, "authors.json")
	if err := idx.Save(idxPath); err != nil {
		t.Fatal(err)
	}
	idx, err = authorindex.Load(idxPath)
	if err != nil {
		t.Fatal(err)
	}

	model, err := rating.Load(modelPath)
	if err != nil {
		t.Fatal(err)
	}

	embedder := embedding.NewMockEmbedder(8)
	defer embedder.Close()
	scorer, err := embedding.NewTitleScorer(ctx, embedder, cat.Titles())
	if err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	eng, err := engine.New(cat, idx, model, scorer, store, &cfg.Engine, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	resp, err := eng.Query(ctx, &models.QueryRequest{
		UserID:     1,
		Text:       "i really like george orwell's work",
		K:          5,
		SaveResult: true,
	})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(resp.Results) != 5 {
		t.Fatalf("got %d results, want 5", len(resp.Results))
	}

	// Orwell's books carry the author boost and must lead.
	topTwo := map[int]bool{resp.Results[0].Book.ID: true, resp.Results[1].Book.ID: true}
	if !topTwo[2] || !topTwo[4] {
		t.Errorf("top two = %v, want Orwell's books {2, 4}", topTwo)
	}

	// User 1 has Dune on the read list; only it may carry the flag.
	for _, rec := range resp.Results {
		if rec.InReadList != (rec.Book.ID == 5) {
			t.Errorf("book %d: InReadList = %v", rec.Book.ID, rec.InReadList)
		}
	}

	// SaveResult persisted the set for later retrieval.
	saved, err := store.GetResultSet(ctx, 1, "i really like george orwell's work")
	if err != nil {
		t.Fatalf("GetResultSet: %v", err)
	}
	if len(saved.Results) != len(resp.Results) {
		t.Errorf("saved %d results, want %d", len(saved.Results), len(resp.Results))
	}
}
