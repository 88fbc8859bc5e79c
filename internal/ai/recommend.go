package ai

import (
	"context"
	"fmt"
	"log/slog"

	"bookstalk/internal/types"
)

// critic is the fixed system persona used for every recommendation.
const critic = "당신은 전문 서평가입니다. 독자의 취향에 맞는 책을 정확하고 간결하게 추천합니다."

// Chatter is the generative-model collaborator.
type Chatter interface {
	Chat(ctx context.Context, system, user string) (string, error)
}

// Recommendation is the result of a similar-books request.
type Recommendation struct {
	Text      string
	ImagePath string
}

// Recommender asks a generative model for books similar to a stored record.
type Recommender struct {
	llm    Chatter
	logger *slog.Logger
}

// NewRecommender creates a recommendation service over the given model client.
func NewRecommender(llm Chatter, logger *slog.Logger) *Recommender {
	return &Recommender{
		llm:    llm,
		logger: logger.With("component", "recommender"),
	}
}

// Recommend builds the similar-books prompt for one record and returns the
// model's free-text answer verbatim, alongside the record's stored cover
// path (possibly empty).
func (r *Recommender) Recommend(ctx context.Context, book *types.Book) (*Recommendation, error) {
	prompt := buildPrompt(book)

	text, err := r.llm.Chat(ctx, critic, prompt)
	if err != nil {
		return nil, fmt.Errorf("model call: %w", err)
	}

	r.logger.Debug("recommendation generated", "title", book.Title, "chars", len(text))
	return &Recommendation{
		Text:      text,
		ImagePath: book.LocalImagePath,
	}, nil
}

// buildPrompt embeds the record's title, author and publisher into the
// fixed request template.
func buildPrompt(book *types.Book) string {
	return fmt.Sprintf(
		"'%s'(저자: %s)와 비슷한 책 3권을 추천해 주세요. 이 책은 %s에서 출판되었습니다. 각 책마다 한두 문장으로 추천 이유를 함께 적어 주세요.",
		book.Title, book.Author, book.Publisher,
	)
}
