// Package models defines core data structures for books, users, queries, and ranked results.
package models

// Book represents one catalog item. Books are immutable once loaded; the
// descriptive fields are display-only and never feed into ranking.
type Book struct {
	ID            int     `json:"book_id" db:"book_id"`
	Title         string  `json:"title" db:"title"`
	Authors       string  `json:"authors" db:"authors"`
	AverageRating float64 `json:"average_rating,omitempty" db:"average_rating"`
	ISBN          string  `json:"isbn,omitempty" db:"isbn"`
	PublicationYear int   `json:"original_publication_year,omitempty" db:"original_publication_year"`
	LanguageCode  string  `json:"language_code,omitempty" db:"language_code"`
	ImageURL      string  `json:"image_url,omitempty" db:"image_url"`
}

// ReadListEntry marks one book on a user's to-read list.
type ReadListEntry struct {
	UserID int `json:"user_id" db:"user_id"`
	BookID int `json:"book_id" db:"book_id"`
}
