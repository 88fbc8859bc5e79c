package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"bookstalk/internal/config"
)

var (
	cfgFile string
	verbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bookstalk",
		Short: "bookstalk — bookstore search crawler with cached recommendations",
		Long: `bookstalk crawls Kyobo search results for a keyword, stores book
records and cover images, and serves an HTTP API that returns cached or
freshly-crawled records and model-generated similar-book recommendations.`,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(crawlCmd())
	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(configCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// versionCmd creates the "version" subcommand.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("bookstalk %s\n", config.Version)
		},
	}
}

// configCmd creates the "config" subcommand for inspecting configuration.
func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			fmt.Printf("Server:\n")
			fmt.Printf("  Addr:            %s\n", cfg.Server.Addr)
			fmt.Printf("\nCrawler:\n")
			fmt.Printf("  Search URL:      %s\n", cfg.Crawler.SearchURL)
			fmt.Printf("  Card Selector:   %s\n", cfg.Crawler.CardSelector)
			fmt.Printf("  Field Rules:     %d configured\n", len(cfg.Crawler.Fields))
			fmt.Printf("  Max Pages:       %d\n", cfg.Crawler.MaxPages)
			fmt.Printf("  Request Timeout: %s\n", cfg.Crawler.RequestTimeout)
			fmt.Printf("  Stealth:         %v\n", cfg.Crawler.Stealth)
			fmt.Printf("  Default Keyword: %s\n", cfg.Crawler.DefaultKeyword)
			fmt.Printf("\nStorage:\n")
			fmt.Printf("  Backend:         %s\n", cfg.Storage.Backend)
			fmt.Printf("  Database:        %s\n", cfg.Storage.Database)
			fmt.Printf("  Collection:      %s\n", cfg.Storage.Collection)
			fmt.Printf("  Image Dir:       %s\n", cfg.Storage.ImageDir)
			fmt.Printf("\nAI:\n")
			fmt.Printf("  Provider:        %s\n", cfg.AI.Provider)
			fmt.Printf("  Model:           %s\n", cfg.AI.Model)
			return nil
		},
	}
}

// setupLogger creates a structured logger.
func setupLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
