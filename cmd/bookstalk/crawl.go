package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"bookstalk/internal/config"
)

var crawlPages int

// crawlCmd creates the "crawl" subcommand.
func crawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl [keyword]",
		Short: "Crawl search results for a keyword into the store",
		Long: `Crawl bookstore search-result pages for the given keyword (or the
configured default), persisting one record per book card plus its cover
image. Records are append-only; re-crawling adds new records.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCrawl,
	}

	cmd.Flags().IntVarP(&crawlPages, "pages", "p", 0, "number of result pages to crawl (0 = config default)")

	return cmd
}

func runCrawl(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	logger := setupLogger(cfg)

	keyword := cfg.Crawler.DefaultKeyword
	if len(args) > 0 {
		keyword = args[0]
	}
	pages := cfg.Crawler.MaxPages
	if crawlPages > 0 {
		pages = crawlPages
	}

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

	start := time.Now()
	books, err := crawl.Crawl(cmd.Context(), keyword, pages)
	if err != nil {
		return fmt.Errorf("crawl: %w", err)
	}

	withImages := 0
	for i := range books {
		if books[i].HasImage() {
			withImages++
		}
	}

	fmt.Printf("Crawl complete in %s\n", time.Since(start).Round(time.Millisecond))
	fmt.Printf("  Keyword:  %s\n", keyword)
	fmt.Printf("  Pages:    %d\n", pages)
	fmt.Printf("  Records:  %d stored (%d with cover images)\n", len(books), withImages)
	return nil
}
