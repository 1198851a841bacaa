// Package catalog holds the fixed, in-memory book catalog and user to-read
// lists that every ranking signal aligns to.
package catalog

import (
	"fmt"
	"sort"

	"github.com/hyperjump/osusume/internal/models"
)

// Catalog is the immutable catalog ordering. Position i holds the book with
// id i+1, so every ScoreVector computed over Books() is aligned by position.
// Loaded once at startup and read-only afterwards.
type Catalog struct {
	books     []*models.Book
	titles    []string
	readLists map[int][]int
}

// New builds a Catalog from books and read-list entries. Book ids must be
// exactly the contiguous range [1, len(books)]; anything else breaks the
// positional alignment the ranking pipeline depends on.
func New(books []*models.Book, readList []models.ReadListEntry) (*Catalog, error) {
	if len(books) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}
	ordered := make([]*models.Book, len(books))
	copy(ordered, books)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	titles := make([]string, len(ordered))
	for i, b := range ordered {
		if b.ID != i+1 {
			return nil, fmt.Errorf("book ids must be contiguous from 1: position %d has id %d", i, b.ID)
		}
		titles[i] = b.Title
	}

	lists := make(map[int][]int)
	for _, e := range readList {
		if e.BookID < 1 || e.BookID > len(ordered) {
			return nil, fmt.Errorf("read-list entry for user %d references book id %d outside catalog [1, %d]",
				e.UserID, e.BookID, len(ordered))
		}
		lists[e.UserID] = append(lists[e.UserID], e.BookID)
	}

	return &Catalog{books: ordered, titles: titles, readLists: lists}, nil
}

// Size returns the number of books N; valid ids are [1, N].
func (c *Catalog) Size() int {
	return len(c.books)
}

// Book returns the book with the given id.
func (c *Catalog) Book(id int) (*models.Book, bool) {
	if id < 1 || id > len(c.books) {
		return nil, false
	}
	return c.books[id-1], true
}

// Books returns all books in catalog order. Callers must not mutate.
func (c *Catalog) Books() []*models.Book {
	return c.books
}

// Titles returns all titles in catalog order, for similarity scoring.
func (c *Catalog) Titles() []string {
	return c.titles
}

// ReadList returns the book ids on the user's to-read list. An unknown
// user yields nil, which downstream treats as "no boost".
func (c *Catalog) ReadList(userID int) []int {
	return c.readLists[userID]
}

// AuthorFields returns the raw author fields and ids in catalog order,
// shaped for a batch author-index build.
func (c *Catalog) AuthorFields() ([]string, []int) {
	authors := make([]string, len(c.books))
	ids := make([]int, len(c.books))
	for i, b := range c.books {
		authors[i] = b.Authors
		ids[i] = b.ID
	}
	return authors, ids
}
