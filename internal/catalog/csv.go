package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/hyperjump/osusume/internal/models"
)

// LoadBooksCSV reads a catalog CSV with a header row. Required columns are
// book_id, title, and authors; the remaining display columns are optional.
func LoadBooksCSV(path string) ([]*models.Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open books csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read books csv header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, required := range []string{"book_id", "title", "authors"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("books csv missing required column %q", required)
		}
	}

	var books []*models.Book
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read books csv line %d: %w", line, err)
		}
		id, err := strconv.Atoi(field(record, col, "book_id"))
		if err != nil {
			return nil, fmt.Errorf("invalid book_id on line %d: %w", line, err)
		}
		book := &models.Book{
			ID:           id,
			Title:        field(record, col, "title"),
			Authors:      field(record, col, "authors"),
			ISBN:         field(record, col, "isbn"),
			LanguageCode: field(record, col, "language_code"),
			ImageURL:     field(record, col, "image_url"),
		}
		if v := field(record, col, "average_rating"); v != "" {
			book.AverageRating, _ = strconv.ParseFloat(v, 64)
		}
		if v := field(record, col, "original_publication_year"); v != "" {
			// Years arrive as floats in the source data ("1997.0").
			if y, err := strconv.ParseFloat(v, 64); err == nil {
				book.PublicationYear = int(y)
			}
		}
		books = append(books, book)
	}
	return books, nil
}

// LoadReadListCSV reads (user_id, book_id) pairs with a header row.
func LoadReadListCSV(path string) ([]models.ReadListEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open read-list csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read read-list csv header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, required := range []string{"user_id", "book_id"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("read-list csv missing required column %q", required)
		}
	}

	var entries []models.ReadListEntry
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read read-list csv line %d: %w", line, err)
		}
		userID, err := strconv.Atoi(record[col["user_id"]])
		if err != nil {
			return nil, fmt.Errorf("invalid user_id on line %d: %w", line, err)
		}
		bookID, err := strconv.Atoi(record[col["book_id"]])
		if err != nil {
			return nil, fmt.Errorf("invalid book_id on line %d: %w", line, err)
		}
		entries = append(entries, models.ReadListEntry{UserID: userID, BookID: bookID})
	}
	return entries, nil
}

func field(record []string, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}
