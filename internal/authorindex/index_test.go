package authorindex

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

func buildTestIndex(t *testing.T) *Index {
	t.Helper()
	idx := New()
	authors := []string{"J. K. Rowling", "George Orwell", "J. K. Rowling"}
	ids := []int{1, 2, 3}
	if err := idx.Build(authors, ids); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return idx
}

func TestIndex_Build(t *testing.T) {
	idx := buildTestIndex(t)
	if got := idx.Keys(); got != 2 {
		t.Errorf("expected 2 distinct keys, got %d", got)
	}

	// Multiple authors on one book contribute one entry each.
	multi := New()
	if err := multi.Build([]string{"Neil Gaiman, Terry Pratchett"}, []int{7}); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if got := multi.Keys(); got != 2 {
		t.Errorf("expected 2 keys for co-authored book, got %d", got)
	}
	if got := multi.Search("i enjoy terry pratchett novels"); !hasID(got, 7) {
		t.Errorf("expected co-author search to find book 7, got %v", got)
	}
}

func TestIndex_Build_LengthMismatch(t *testing.T) {
	idx := New()
	if err := idx.Build([]string{"a", "b"}, []int{1}); err == nil {
		t.Error("expected error for mismatched slice lengths")
	}
}

func TestIndex_Search(t *testing.T) {
	idx := buildTestIndex(t)

	tests := []struct {
		name  string
		query string
		want  []int
	}{
		// Short query (len 6 <= 7): only key-in-query is tested, and
		// "georgeorwell" (12 chars) cannot be inside "orwell".
		{"short query no match", "orwell", nil},
		// Long query: bidirectional, key is a substring of the query.
		{"long query contains author", "i really like george orwell's work", []int{2}},
		// Long query that is itself a fragment of the key.
		{"query inside key", "georgeorw", []int{2}},
		{"rowling both books", "something by j.k. rowling please", []int{1, 3}},
		{"no author mentioned", "space opera with dragons", nil},
		{"empty query", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := idx.Search(tt.query)
			want := make(map[int]struct{})
			for _, id := range tt.want {
				want[id] = struct{}{}
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Search(%q) = %v, want %v", tt.query, got, want)
			}
		})
	}
}

func TestIndex_Search_LengthGate(t *testing.T) {
	idx := New()
	// "bobsmith" is 8 chars (indexed), "anne" is 4 (gated out).
	if err := idx.Build([]string{"Bob Smith", "Anne"}, []int{1, 2}); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	// Query mentioning the short-keyed author exactly must not match.
	if got := idx.Search("books by anne and also anne again"); len(got) != 0 {
		t.Errorf("short key must never match, got %v", got)
	}
	if got := idx.Search("books by bob smith"); !hasID(got, 1) {
		t.Errorf("expected bobsmith to match, got %v", got)
	}
}

func TestIndex_Search_NormalizationEquivalence(t *testing.T) {
	idx := buildTestIndex(t)
	// Queries that normalize identically must return identical sets.
	a := idx.Search("George  ORWELL wrote great essays")
	b := idx.Search("george orwell, wrote great essays")
	if !reflect.DeepEqual(a, b) {
		t.Errorf("equivalent queries returned different sets: %v vs %v", a, b)
	}
}

func TestIndex_Search_TransliteratedAuthors(t *testing.T) {
	idx := New()
	authors := []string{"Stanisław Lem", "Søren Kierkegaard"}
	if err := idx.Build(authors, []int{1, 2}); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	// ASCII spellings must reach the same keys as the original names.
	if got := idx.Search("i love stanislaw lem books"); !hasID(got, 1) {
		t.Errorf("ASCII query for Stanisław Lem found %v, want book 1", got)
	}
	if got := idx.Search("essays by soren kierkegaard"); !hasID(got, 2) {
		t.Errorf("ASCII query for Søren Kierkegaard found %v, want book 2", got)
	}
	// The folded keys are counted in ASCII characters for the length gate.
	if got := idx.Search("stanisław lem"); !hasID(got, 1) {
		t.Errorf("original spelling found %v, want book 1", got)
	}
}

func TestIndex_Search_DuplicatesCollapse(t *testing.T) {
	idx := New()
	// Same author/book pair twice: stored with multiplicity, searched as a set.
	authors := []string{"Haruki Murakami", "Haruki Murakami"}
	if err := idx.Build(authors, []int{4, 4}); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	got := idx.Search("anything by haruki murakami")
	if len(got) != 1 || !hasID(got, 4) {
		t.Errorf("expected set {4}, got %v", got)
	}
}

func TestIndex_Verify(t *testing.T) {
	idx := buildTestIndex(t)
	if err := idx.Verify(3); err != nil {
		t.Errorf("expected consistent index, got %v", err)
	}
	if err := idx.Verify(2); !errors.Is(err, ErrIndexCorrupt) {
		t.Errorf("expected ErrIndexCorrupt for id outside catalog, got %v", err)
	}
}

func TestIndex_SaveLoad(t *testing.T) {
	idx := buildTestIndex(t)
	path := filepath.Join(t.TempDir(), "authors.json")
	if err := idx.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Keys() != idx.Keys() {
		t.Errorf("loaded index has %d keys, want %d", loaded.Keys(), idx.Keys())
	}
	want := idx.Search("i really like george orwell's work")
	got := loaded.Search("i really like george orwell's work")
	if !reflect.DeepEqual(got, want) {
		t.Errorf("loaded index search mismatch: %v vs %v", got, want)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing artifact")
	}
}

func hasID(set map[int]struct{}, id int) bool {
	_, ok := set[id]
	return ok
}
