// Package authorindex maps normalized author names to the books they wrote
// and answers substring queries against those names.
package authorindex

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyperjump/osusume/internal/normalize"
)

// ErrIndexCorrupt reports that the index failed an internal consistency
// check, e.g. an indexed book id that is not present in the catalog.
var ErrIndexCorrupt = errors.New("author index corrupt")

// authorDelimiter separates raw author names inside one catalog field.
const authorDelimiter = ", "

// minMatchableKeyLen gates substring matching: only keys longer than this
// are candidates. Short keys produce too many false positives.
const minMatchableKeyLen = 7

// Index maps normalized author keys to book ids. It is built once in a
// batch pass and read-only thereafter, so concurrent searches need no
// locking as long as no Build runs after serving starts.
type Index struct {
	// books keeps ids in insertion order. Repeated author/book pairs are
	// appended as-is; Search collapses them to a set, so duplicates never
	// amplify results.
	books map[string][]int
}

// New returns an empty index.
func New() *Index {
	return &Index{books: make(map[string][]int)}
}

// Build populates the index from parallel slices: authorLists[i] is the
// delimiter-separated author field for the book bookIDs[i]. Building is
// wholesale: call it once per catalog load, never incrementally per query.
func (idx *Index) Build(authorLists []string, bookIDs []int) error {
	if len(authorLists) != len(bookIDs) {
		return fmt.Errorf("author lists and book ids length mismatch: %d vs %d", len(authorLists), len(bookIDs))
	}
	for i, raw := range authorLists {
		id := bookIDs[i]
		for _, name := range strings.Split(raw, authorDelimiter) {
			key := normalize.Key(name)
			if key == "" {
				continue
			}
			idx.books[key] = append(idx.books[key], id)
		}
	}
	return nil
}

// Search returns the set of book ids whose author names match the query
// under the length-gated substring rule:
//
//   - only keys longer than minMatchableKeyLen are candidates;
//   - when the normalized query is longer than minMatchableKeyLen, a key
//     matches if either contains the other;
//   - otherwise only key-contained-in-query is tested, since a short query
//     cannot meaningfully contain a long author name.
//
// Absent matches yield an empty set; there is no failure mode. The scan is
// linear over all keys, acceptable because the index is small and fixed.
// Do not call this inside a per-book loop.
func (idx *Index) Search(text string) map[int]struct{} {
	query := normalize.Key(text)
	bidirectional := len(query) > minMatchableKeyLen

	matched := make(map[int]struct{})
	for key, ids := range idx.books {
		if len(key) <= minMatchableKeyLen {
			continue
		}
		ok := strings.Contains(query, key)
		if !ok && bidirectional {
			ok = strings.Contains(key, query)
		}
		if !ok {
			continue
		}
		for _, id := range ids {
			matched[id] = struct{}{}
		}
	}
	return matched
}

// Verify checks every indexed book id against the catalog size. Any id
// outside [1, catalogSize] means the index and catalog disagree and the
// index must be rebuilt.
func (idx *Index) Verify(catalogSize int) error {
	for key, ids := range idx.books {
		for _, id := range ids {
			if id < 1 || id > catalogSize {
				return fmt.Errorf("key %q references book id %d outside catalog [1, %d]: %w",
					key, id, catalogSize, ErrIndexCorrupt)
			}
		}
	}
	return nil
}

// Keys returns the number of distinct normalized author keys.
func (idx *Index) Keys() int {
	return len(idx.books)
}

// Save writes the index to path as a JSON artifact. Parent directories are
// created if missing.
func (idx *Index) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create index directory: %w", err)
		}
	}
	data, err := json.Marshal(idx.books)
	if err != nil {
		return fmt.Errorf("failed to marshal author index: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write author index: %w", err)
	}
	return nil
}

// Load reads an index previously written by Save. The artifact is reloaded
// verbatim; normalization already happened at build time.
func Load(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read author index: %w", err)
	}
	books := make(map[string][]int)
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, fmt.Errorf("failed to parse author index %s: %w", path, ErrIndexCorrupt)
	}
	return &Index{books: books}, nil
}
