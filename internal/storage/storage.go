package storage

import (
	"context"

	"bookstalk/internal/types"
)

// BookStore is the interface for all book record backends. Records are
// append-only; there is no update or delete path.
type BookStore interface {
	// Insert persists one crawled record.
	Insert(ctx context.Context, book *types.Book) error

	// FindByKeyword returns every record crawled for the keyword.
	FindByKeyword(ctx context.Context, keyword string) ([]types.Book, error)

	// FindByKeywordAndTitle returns the first record for the keyword whose
	// title matches under normalization, or nil when none does.
	FindByKeywordAndTitle(ctx context.Context, keyword, title string) (*types.Book, error)

	// Count returns how many records exist for the keyword.
	Count(ctx context.Context, keyword string) (int64, error)

	// Close releases backend resources.
	Close(ctx context.Context) error

	// Name returns the backend identifier.
	Name() string
}
