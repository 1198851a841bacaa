// Package storage persists the catalog, user read-lists, and saved ranking
// results.
package storage

import (
	"context"

	"github.com/hyperjump/osusume/internal/models"
)

// Storage defines catalog and result persistence operations.
type Storage interface {
	// Catalog operations
	ReplaceBooks(ctx context.Context, books []*models.Book) error
	ListBooks(ctx context.Context) ([]*models.Book, error)
	GetBook(ctx context.Context, id int) (*models.Book, error)
	CountBooks(ctx context.Context) (int64, error)

	// Read-list operations
	ReplaceReadList(ctx context.Context, entries []models.ReadListEntry) error
	ListReadList(ctx context.Context) ([]models.ReadListEntry, error)

	// Saved ranked results, keyed by (user id, query text)
	SaveResultSet(ctx context.Context, resp *models.QueryResponse) (string, error)
	GetResultSet(ctx context.Context, userID int, query string) (*models.QueryResponse, error)

	Close() error
}
