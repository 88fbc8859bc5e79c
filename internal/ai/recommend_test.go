package ai

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	"bookstalk/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeChatter records the last prompt pair and returns a canned answer.
type fakeChatter struct {
	system string
	user   string
	answer string
	err    error
}

func (f *fakeChatter) Chat(ctx context.Context, system, user string) (string, error) {
	f.system = system
	f.user = user
	return f.answer, f.err
}

func TestRecommendPromptEmbedsRecord(t *testing.T) {
	chatter := &fakeChatter{answer: "추천 목록"}
	r := NewRecommender(chatter, testLogger)

	book := &types.Book{
		Title:     "클린 코드",
		Author:    "로버트 마틴",
		Publisher: "인사이트",
	}
	rec, err := r.Recommend(context.Background(), book)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}

	for _, want := range []string{"클린 코드", "로버트 마틴", "인사이트", "3권"} {
		if !strings.Contains(chatter.user, want) {
			t.Errorf("prompt missing %q: %q", want, chatter.user)
		}
	}
	if chatter.system == "" {
		t.Error("system persona must be set")
	}
	if rec.Text != "추천 목록" {
		t.Errorf("text = %q", rec.Text)
	}
}

func TestRecommendPassesImagePath(t *testing.T) {
	chatter := &fakeChatter{answer: "답변"}
	r := NewRecommender(chatter, testLogger)

	book := &types.Book{Title: "클린 코드", LocalImagePath: "images/kyobo/클린 코드.jpg"}
	rec, err := r.Recommend(context.Background(), book)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if rec.ImagePath != book.LocalImagePath {
		t.Errorf("image path = %q, want %q", rec.ImagePath, book.LocalImagePath)
	}

	// A record without a stored cover propagates an empty path.
	rec, err = r.Recommend(context.Background(), &types.Book{Title: "표지 없는 책"})
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if rec.ImagePath != "" {
		t.Errorf("image path = %q, want empty", rec.ImagePath)
	}
}

func TestRecommendSentinelFieldsStayVerbatim(t *testing.T) {
	chatter := &fakeChatter{answer: "답변"}
	r := NewRecommender(chatter, testLogger)

	book := &types.Book{Title: "외로운 책", Author: types.Sentinel, Publisher: types.Sentinel}
	if _, err := r.Recommend(context.Background(), book); err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if !strings.Contains(chatter.user, types.Sentinel) {
		t.Errorf("sentinel fields should appear verbatim in the prompt: %q", chatter.user)
	}
}

func TestRecommendModelError(t *testing.T) {
	chatter := &fakeChatter{err: errors.New("status 429: rate limited")}
	r := NewRecommender(chatter, testLogger)

	rec, err := r.Recommend(context.Background(), &types.Book{Title: "클린 코드"})
	if err == nil {
		t.Fatal("expected an error from the model")
	}
	if rec != nil {
		t.Errorf("expected nil recommendation, got %+v", rec)
	}
}
