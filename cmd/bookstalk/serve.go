package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"bookstalk/internal/ai"
	"bookstalk/internal/api"
	"bookstalk/internal/config"
	"bookstalk/internal/crawler"
	"bookstalk/internal/fetcher"
	"bookstalk/internal/media"
	"bookstalk/internal/storage"
)

// serveCmd creates the "serve" subcommand.
func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long:  "Serve /books and /recommend, crawling on cache misses.",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	logger := setupLogger(cfg)

	store, err := newStore(cfg, logger)
	if err != nil {
		return fmt.Errorf("create store: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(ctx); err != nil {
			logger.Warn("store close failed", "error", err)
		}
	}()

	crawl := newCrawler(cfg, store, logger)
	llm := ai.NewLLMClient(cfg.AI, logger)
	recommender := ai.NewRecommender(llm, logger)

	server := api.NewServer(api.Options{
		Addr:           cfg.Server.Addr,
		DefaultKeyword: cfg.Crawler.DefaultKeyword,
		PageBudget:     cfg.Crawler.MaxPages,
		ImageDir:       cfg.Storage.ImageDir,
	}, store, crawl, recommender, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting bookstalk",
		"addr", cfg.Server.Addr,
		"store", store.Name(),
		"provider", cfg.AI.Provider,
	)

	if err := server.Run(ctx); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

// newStore builds the configured book store backend.
func newStore(cfg *config.Config, logger *slog.Logger) (storage.BookStore, error) {
	switch cfg.Storage.Backend {
	case "memory":
		return storage.NewMemoryStore(), nil
	default:
		return storage.NewMongoStore(cfg.Storage.MongoURI, cfg.Storage.Database, cfg.Storage.Collection, logger)
	}
}

// newCrawler wires a crawler whose every Crawl call owns a fresh browser
// session.
func newCrawler(cfg *config.Config, store storage.BookStore, logger *slog.Logger) *crawler.Crawler {
	covers := media.NewDownloader(cfg.Storage.ImageDir, logger)
	newSession := func() (crawler.Renderer, error) {
		opts := []fetcher.SessionOption{fetcher.WithTimeout(cfg.Crawler.RequestTimeout)}
		if cfg.Crawler.Stealth {
			opts = append(opts, fetcher.WithStealth())
		}
		return fetcher.NewSession(logger, opts...)
	}
	return crawler.New(cfg.Crawler, newSession, covers, store, logger)
}
