package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/osusume/internal/models"
)

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens or creates a SQLite database at dbPath and
// initializes the schema. Parent directories are created if missing.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &SQLiteStorage{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS books (
		book_id INTEGER PRIMARY KEY,
		title TEXT NOT NULL,
		authors TEXT NOT NULL,
		average_rating REAL,
		isbn TEXT,
		original_publication_year INTEGER,
		language_code TEXT,
		image_url TEXT
	);

	CREATE TABLE IF NOT EXISTS to_read (
		user_id INTEGER NOT NULL,
		book_id INTEGER NOT NULL,
		PRIMARY KEY (user_id, book_id)
	);

	CREATE INDEX IF NOT EXISTS idx_to_read_user ON to_read(user_id);

	CREATE TABLE IF NOT EXISTS result_sets (
		id TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL,
		query TEXT NOT NULL,
		results TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_result_sets_key ON result_sets(user_id, query);
	`
	_, err := db.Exec(schema)
	return err
}

// ReplaceBooks swaps the whole catalog in one transaction. The catalog is
// loaded wholesale, never patched row by row.
func (s *SQLiteStorage) ReplaceBooks(ctx context.Context, books []*models.Book) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM books`); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO books (book_id, title, authors, average_rating, isbn,
		 original_publication_year, language_code, image_url)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, b := range books {
		if _, err := stmt.ExecContext(ctx, b.ID, b.Title, b.Authors, b.AverageRating,
			b.ISBN, b.PublicationYear, b.LanguageCode, b.ImageURL); err != nil {
			return fmt.Errorf("failed to insert book %d: %w", b.ID, err)
		}
	}
	return tx.Commit()
}

// ListBooks returns all books ordered by id.
func (s *SQLiteStorage) ListBooks(ctx context.Context) ([]*models.Book, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT book_id, title, authors, average_rating, isbn,
		 original_publication_year, language_code, image_url
		 FROM books ORDER BY book_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []*models.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// GetBook returns the book with the given id.
func (s *SQLiteStorage) GetBook(ctx context.Context, id int) (*models.Book, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT book_id, title, authors, average_rating, isbn,
		 original_publication_year, language_code, image_url
		 FROM books WHERE book_id = ?`, id)
	b, err := scanBook(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("book not found: %d", id)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// CountBooks returns the catalog size.
func (s *SQLiteStorage) CountBooks(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`).Scan(&n)
	return n, err
}

// ReplaceReadList swaps all read-list entries in one transaction.
// Duplicate (user, book) pairs in the input collapse to one row.
func (s *SQLiteStorage) ReplaceReadList(ctx context.Context, entries []models.ReadListEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM to_read`); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO to_read (user_id, book_id) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.UserID, e.BookID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ListReadList returns all read-list entries.
func (s *SQLiteStorage) ListReadList(ctx context.Context) ([]models.ReadListEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, book_id FROM to_read ORDER BY user_id, book_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.ReadListEntry
	for rows.Next() {
		var e models.ReadListEntry
		if err := rows.Scan(&e.UserID, &e.BookID); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// SaveResultSet persists a ranked result set and returns its id. A later
// save for the same (user id, query) adds a new row; GetResultSet returns
// the most recent.
func (s *SQLiteStorage) SaveResultSet(ctx context.Context, resp *models.QueryResponse) (string, error) {
	payload, err := json.Marshal(resp.Results)
	if err != nil {
		return "", fmt.Errorf("failed to marshal result set: %w", err)
	}
	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO result_sets (id, user_id, query, results, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, resp.UserID, resp.Query, string(payload), time.Now())
	if err != nil {
		return "", fmt.Errorf("failed to save result set: %w", err)
	}
	return id, nil
}

// GetResultSet returns the most recently saved result set for the key.
func (s *SQLiteStorage) GetResultSet(ctx context.Context, userID int, query string) (*models.QueryResponse, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT results FROM result_sets WHERE user_id = ? AND query = ?
		 ORDER BY created_at DESC LIMIT 1`, userID, query).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no saved results for user %d, query %q", userID, query)
	}
	if err != nil {
		return nil, err
	}
	resp := &models.QueryResponse{UserID: userID, Query: query}
	if err := json.Unmarshal([]byte(payload), &resp.Results); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result set: %w", err)
	}
	return resp, nil
}

// Close closes the database.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBook(row rowScanner) (*models.Book, error) {
	var b models.Book
	var rating sql.NullFloat64
	var isbn, lang, image sql.NullString
	var year sql.NullInt64
	err := row.Scan(&b.ID, &b.Title, &b.Authors, &rating, &isbn, &year, &lang, &image)
	if err != nil {
		return nil, err
	}
	b.AverageRating = rating.Float64
	b.ISBN = isbn.String
	b.PublicationYear = int(year.Int64)
	b.LanguageCode = lang.String
	b.ImageURL = image.String
	return &b, nil
}
