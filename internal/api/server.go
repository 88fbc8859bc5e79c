package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"bookstalk/internal/ai"
	"bookstalk/internal/storage"
	"bookstalk/internal/types"
)

// BookCrawler fills the store for a keyword. It is the cache-fill
// collaborator behind /books and /recommend.
type BookCrawler interface {
	Crawl(ctx context.Context, keyword string, maxPages int) ([]types.Book, error)
}

// RecommendService produces similar-book suggestions for one record.
type RecommendService interface {
	Recommend(ctx context.Context, book *types.Book) (*ai.Recommendation, error)
}

// Server exposes the book query and recommendation endpoints. All
// dependencies are injected at construction; a request runs the full
// cache-check/crawl/query/recommend sequence synchronously.
type Server struct {
	mux            *http.ServeMux
	addr           string
	store          storage.BookStore
	crawler        BookCrawler
	recommender    RecommendService
	defaultKeyword string
	pageBudget     int
	logger         *slog.Logger
}

// Options carries the server's request-handling parameters.
type Options struct {
	Addr           string
	DefaultKeyword string
	PageBudget     int
	ImageDir       string
}

// NewServer creates the API server.
func NewServer(opts Options, store storage.BookStore, crawler BookCrawler, recommender RecommendService, logger *slog.Logger) *Server {
	s := &Server{
		mux:            http.NewServeMux(),
		addr:           opts.Addr,
		store:          store,
		crawler:        crawler,
		recommender:    recommender,
		defaultKeyword: opts.DefaultKeyword,
		pageBudget:     opts.PageBudget,
		logger:         logger.With("component", "api_server"),
	}

	s.mux.HandleFunc("GET /books", s.handleBooks)
	s.mux.HandleFunc("GET /recommend", s.handleRecommend)
	s.mux.HandleFunc("GET /api/health", s.handleHealth)
	if opts.ImageDir != "" {
		s.mux.Handle("GET /images/", http.StripPrefix("/images/", http.FileServer(http.Dir(opts.ImageDir))))
	}

	return s
}

// Handler returns the root handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.mux }

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.mux,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("API server listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// handleBooks returns all records for a keyword, crawling first when the
// store holds none.
func (s *Server) handleBooks(w http.ResponseWriter, r *http.Request) {
	keyword := s.keywordParam(r)

	books, err := s.booksWithCacheFill(r.Context(), keyword)
	if err != nil {
		s.jsonResponse(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	s.jsonResponse(w, http.StatusOK, books)
}

// handleRecommend resolves a stored record by normalized title and asks the
// model for similar books. A missing record or a failed model call degrades
// to a structured payload, never a broken response.
func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if title == "" {
		s.jsonResponse(w, http.StatusBadRequest, map[string]string{"error": types.ErrMissingTitle.Error()})
		return
	}
	keyword := s.keywordParam(r)

	if _, err := s.booksWithCacheFill(r.Context(), keyword); err != nil {
		s.jsonResponse(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	book, err := s.store.FindByKeywordAndTitle(r.Context(), keyword, title)
	if err != nil {
		s.jsonResponse(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if book == nil {
		s.jsonResponse(w, http.StatusOK, map[string]string{
			"message": "해당 키워드에서 일치하는 책 제목을 찾지 못했습니다",
		})
		return
	}

	rec, err := s.recommender.Recommend(r.Context(), book)
	if err != nil {
		// Provider failures surface as a payload, not an HTTP error.
		s.logger.Warn("recommendation failed", "title", book.Title, "error", err)
		s.jsonResponse(w, http.StatusOK, map[string]string{"error": err.Error()})
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"recommendation": rec.Text,
		"image":          rec.ImagePath,
	})
}

// booksWithCacheFill implements the two-state cache flow: existing records
// are returned as-is; an empty keyword triggers exactly one crawl with the
// configured page budget, after which the store is re-read and whatever is
// present (possibly nothing) is the answer.
func (s *Server) booksWithCacheFill(ctx context.Context, keyword string) ([]types.Book, error) {
	n, err := s.store.Count(ctx, keyword)
	if err != nil {
		return nil, err
	}

	if n == 0 {
		s.logger.Info("cache miss, crawling", "keyword", keyword, "pages", s.pageBudget)
		if _, err := s.crawler.Crawl(ctx, keyword, s.pageBudget); err != nil {
			// Proceed with whatever the partial crawl managed to store.
			s.logger.Warn("cache-fill crawl failed", "keyword", keyword, "error", err)
		}
	}

	books, err := s.store.FindByKeyword(ctx, keyword)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []types.Book{}
	}
	return books, nil
}

func (s *Server) keywordParam(r *http.Request) string {
	if kw := r.URL.Query().Get("keyword"); kw != "" {
		return kw
	}
	return s.defaultKeyword
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}
