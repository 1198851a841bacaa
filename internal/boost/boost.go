// Package boost computes multiplicative per-book boost vectors over the
// full catalog ordering.
package boost

import (
	"github.com/hyperjump/osusume/internal/authorindex"
	"github.com/hyperjump/osusume/internal/catalog"
)

// AuthorBoostWeight is applied to author-matched books. It is deliberately
// large relative to rating and similarity magnitudes so that a matched
// author dominates the final ranking; treat the ratio, not the number, as
// the contract.
const AuthorBoostWeight = 30.0

// ReadListBoost returns a vector aligned to the catalog ordering: 1.0
// everywhere except the user's to-read books, which get factor. Callers
// guarantee factor > 1. An unknown user yields all ones.
func ReadListBoost(c *catalog.Catalog, userID int, factor float64) []float64 {
	vec := ones(c.Size())
	for _, id := range c.ReadList(userID) {
		vec[id-1] = factor
	}
	return vec
}

// AuthorBoost returns a vector aligned to the catalog ordering: 1.0
// everywhere except books whose authors match the query text, which get
// AuthorBoostWeight.
func AuthorBoost(c *catalog.Catalog, idx *authorindex.Index, text string) []float64 {
	vec := ones(c.Size())
	for id := range idx.Search(text) {
		if id >= 1 && id <= c.Size() {
			vec[id-1] = AuthorBoostWeight
		}
	}
	return vec
}

func ones(n int) []float64 {
	vec := make([]float64, n)
	for i := range vec {
		vec[i] = 1.0
	}
	return vec
}
