package storage

import (
	"context"
	"sync"

	"bookstalk/internal/parser"
	"bookstalk/internal/types"
)

// MemoryStore is an in-memory BookStore, used by tests and for local runs
// without a MongoDB instance.
type MemoryStore struct {
	mu    sync.RWMutex
	books []types.Book
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Name() string { return "memory" }

func (s *MemoryStore) Insert(ctx context.Context, book *types.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.books = append(s.books, *book)
	return nil
}

func (s *MemoryStore) FindByKeyword(ctx context.Context, keyword string) ([]types.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []types.Book
	for _, b := range s.books {
		if b.SearchKeyword == keyword {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *MemoryStore) FindByKeywordAndTitle(ctx context.Context, keyword, title string) (*types.Book, error) {
	books, err := s.FindByKeyword(ctx, keyword)
	if err != nil {
		return nil, err
	}

	want := parser.NormalizeForCompare(title)
	for i := range books {
		if parser.NormalizeForCompare(books[i].Title) == want {
			return &books[i], nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) Count(ctx context.Context, keyword string) (int64, error) {
	books, err := s.FindByKeyword(ctx, keyword)
	if err != nil {
		return 0, err
	}
	return int64(len(books)), nil
}

func (s *MemoryStore) Close(ctx context.Context) error { return nil }
