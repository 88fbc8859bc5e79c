package storage

import (
	"context"
	"testing"

	"bookstalk/internal/types"
)

func seedStore(t *testing.T) *MemoryStore {
	t.Helper()
	s := NewMemoryStore()
	books := []types.Book{
		{SearchKeyword: "파이썬", Title: "클린 코드", Author: "로버트 마틴", Publisher: "인사이트", SourceSite: types.SourceKyobo},
		{SearchKeyword: "파이썬", Title: "이펙티브 파이썬", Author: "브렛 슬라킨", Publisher: "길벗", SourceSite: types.SourceKyobo},
		{SearchKeyword: "go", Title: "The Go Programming Language", Author: "Donovan", Publisher: "Addison-Wesley", SourceSite: types.SourceKyobo},
	}
	for i := range books {
		if err := s.Insert(context.Background(), &books[i]); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	return s
}

func TestFindByKeyword(t *testing.T) {
	s := seedStore(t)

	books, err := s.FindByKeyword(context.Background(), "파이썬")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(books) != 2 {
		t.Fatalf("expected 2 records, got %d", len(books))
	}

	books, err = s.FindByKeyword(context.Background(), "없는키워드")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(books) != 0 {
		t.Errorf("expected no records, got %d", len(books))
	}
}

func TestFindByKeywordAndTitle(t *testing.T) {
	s := seedStore(t)

	tests := []struct {
		name  string
		title string
		found bool
	}{
		{"exact", "클린 코드", true},
		{"case insensitive", "the go programming language", false}, // wrong keyword partition
		{"surrounding whitespace", "  클린 코드  ", true},
		{"trailing newline", "클린 코드\r\n", true},
		{"absent", "없는 책", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			book, err := s.FindByKeywordAndTitle(context.Background(), "파이썬", tt.title)
			if err != nil {
				t.Fatalf("find: %v", err)
			}
			if tt.found && book == nil {
				t.Fatalf("expected a match for %q", tt.title)
			}
			if !tt.found && book != nil {
				t.Fatalf("unexpected match %q for %q", book.Title, tt.title)
			}
		})
	}

	// Same title under the other keyword still matches case-insensitively.
	book, err := s.FindByKeywordAndTitle(context.Background(), "go", "THE GO PROGRAMMING LANGUAGE")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if book == nil {
		t.Fatal("expected case-insensitive match")
	}
}

func TestCountAndAppendOnly(t *testing.T) {
	s := seedStore(t)

	n, err := s.Count(context.Background(), "파이썬")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected count 2, got %d", n)
	}

	// Re-inserting the same title appends a duplicate; nothing upserts.
	dup := types.Book{SearchKeyword: "파이썬", Title: "클린 코드"}
	if err := s.Insert(context.Background(), &dup); err != nil {
		t.Fatalf("insert: %v", err)
	}
	n, _ = s.Count(context.Background(), "파이썬")
	if n != 3 {
		t.Errorf("expected count 3 after duplicate insert, got %d", n)
	}
}
