// Package e2e provides end-to-end tests with a generated catalog and
// multiple ranking queries.
package e2e

import (
	"fmt"

	"github.com/hyperjump/osusume/internal/models"
)

// QueryCase defines a ranking request and the book id(s) that must appear
// near the top of the results.
type QueryCase struct {
	UserID      int
	Text        string
	K           int
	ExpectedIDs []int
	Description string
}

// Corpus holds a generated catalog, read list, and query cases.
type Corpus struct {
	Books    []*models.Book
	ReadList []models.ReadListEntry
	Cases    []QueryCase
}

// authorPool provides distinct multi-word author names whose normalized
// keys are long enough to be matchable.
var authorPool = []string{
	"Margaret Atwood",
	"Gabriel García Márquez",
	"Haruki Murakami",
	"Chimamanda Ngozi Adichie",
	"Kazuo Ishiguro",
	"Ursula K. Le Guin",
	"Fyodor Dostoevsky",
	"Virginia Woolf",
	"James Baldwin",
	"Octavia Butler",
}

// BuildCorpus returns a catalog of n books spread over the author pool,
// a read list for the first few users, and query cases tied to specific
// books. Each author owns a contiguous block of ids, so author queries
// have a known expected set.
func BuildCorpus(n int) *Corpus {
	books := make([]*models.Book, n)
	for i := 0; i < n; i++ {
		author := authorPool[i*len(authorPool)/n]
		books[i] = &models.Book{
			ID:            i + 1,
			Title:         fmt.Sprintf("Collected Volume %d", i+1),
			Authors:       author,
			AverageRating: 3.0 + float64(i%20)*0.1,
		}
	}

	readList := []models.ReadListEntry{
		{UserID: 1, BookID: 1},
		{UserID: 1, BookID: n},
		{UserID: 2, BookID: n / 2},
	}

	cases := []QueryCase{
		{
			UserID:      1,
			Text:        "something by margaret atwood please",
			K:           n,
			ExpectedIDs: booksByAuthor(books, "Margaret Atwood"),
			Description: "author mention in a longer sentence",
		},
		{
			UserID:      2,
			Text:        "Haruki Murakami",
			K:           n,
			ExpectedIDs: booksByAuthor(books, "Haruki Murakami"),
			Description: "bare author name as the whole query",
		},
		{
			UserID:      3,
			Text:        "octavia butler novels",
			K:           n,
			ExpectedIDs: booksByAuthor(books, "Octavia Butler"),
			Description: "case-insensitive author match",
		},
	}
	return &Corpus{Books: books, ReadList: readList, Cases: cases}
}

func booksByAuthor(books []*models.Book, author string) []int {
	var ids []int
	for _, b := range books {
		if b.Authors == author {
			ids = append(ids, b.ID)
		}
	}
	return ids
}
