package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"bookstalk/internal/config"
	"bookstalk/internal/parser"
	"bookstalk/internal/storage"
	"bookstalk/internal/types"
)

// Renderer is the headless-browser collaborator: it turns a URL into
// rendered page HTML.
type Renderer interface {
	Render(ctx context.Context, url string) (string, error)
	Close() error
}

// CoverFetcher downloads a cover image and returns the stored local path.
type CoverFetcher interface {
	FetchCover(ctx context.Context, rawURL, title string) (string, error)
}

// Crawler walks bookstore search-result pages for a keyword and persists
// one record per book card.
type Crawler struct {
	cfg        config.CrawlerConfig
	newSession func() (Renderer, error)
	pages      *parser.PageParser
	covers     CoverFetcher
	store      storage.BookStore
	logger     *slog.Logger
}

// New creates a crawler. newSession is called once per Crawl so that each
// crawl owns a scoped browser session.
func New(cfg config.CrawlerConfig, newSession func() (Renderer, error), covers CoverFetcher, store storage.BookStore, logger *slog.Logger) *Crawler {
	return &Crawler{
		cfg:        cfg,
		newSession: newSession,
		pages:      parser.NewPageParser(cfg.CardSelector, logger),
		covers:     covers,
		store:      store,
		logger:     logger.With("component", "crawler"),
	}
}

// Crawl fetches pages 1..maxPages of search results for the keyword,
// persisting a record per card. Failures on a single card or page are
// logged and skipped; the returned slice is never nil.
func (c *Crawler) Crawl(ctx context.Context, keyword string, maxPages int) ([]types.Book, error) {
	books := make([]types.Book, 0)

	session, err := c.newSession()
	if err != nil {
		return books, fmt.Errorf("open browser session: %w", err)
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			c.logger.Warn("browser session close failed", "error", cerr)
		}
	}()

	start := time.Now()
	for page := 1; page <= maxPages; page++ {
		pageURL := c.searchURL(keyword, page)

		html, err := session.Render(ctx, pageURL)
		if err != nil {
			c.logger.Warn("page render failed, skipping page", "url", pageURL, "error", err)
			continue
		}

		cards, err := c.pages.Cards(html)
		if err != nil {
			c.logger.Warn("page parse failed, skipping page", "url", pageURL, "error", err)
			continue
		}

		for i, card := range cards {
			book, err := c.processCard(ctx, keyword, card)
			if err != nil {
				c.logger.Warn("card skipped",
					"page", page,
					"index", i,
					"title", book.Title,
					"error", err,
				)
				continue
			}
			books = append(books, book)
		}
	}

	c.logger.Info("crawl complete",
		"keyword", keyword,
		"pages", maxPages,
		"records", len(books),
		"elapsed", time.Since(start),
	)
	return books, nil
}

// searchURL builds the results URL for one page. The page parameter follows
// the loop variable, so every page of the budget is visited once.
func (c *Crawler) searchURL(keyword string, page int) string {
	return fmt.Sprintf("%s?keyword=%s&page=%d", c.cfg.SearchURL, url.QueryEscape(keyword), page)
}

// processCard extracts all fields from one card, downloads the cover when
// present, persists the record, and returns it. Returns the partially
// assembled book alongside any error so the caller can log its title.
func (c *Crawler) processCard(ctx context.Context, keyword string, card parser.Card) (book types.Book, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("card panic: %v", r)
		}
	}()

	title := types.TitlePlaceholder
	if rule, ok := c.fieldRule("title"); ok {
		title = c.pages.Title(card, rule)
	}

	book = types.Book{
		SearchKeyword:   keyword,
		Title:           title,
		Author:          c.extract(card, "author", title),
		Price:           c.extract(card, "price", title),
		Publisher:       c.extract(card, "publisher", title),
		PublicationDate: c.extract(card, "publication_date", title),
		SourceSite:      types.SourceKyobo,
		CrawledAt:       time.Now(),
	}

	// A failed or absent cover download is non-fatal: the record simply
	// carries no local image path.
	if rule, ok := c.fieldRule("image"); ok {
		if img := c.pages.Extract(card, rule, title); !img.Missing && img.Value != "" {
			path, err := c.covers.FetchCover(ctx, img.Value, title)
			if err != nil {
				c.logger.Warn("cover download failed", "title", title, "error", err)
			} else {
				book.LocalImagePath = path
			}
		}
	}

	if err := c.store.Insert(ctx, &book); err != nil {
		return book, fmt.Errorf("persist record: %w", err)
	}
	return book, nil
}

func (c *Crawler) extract(card parser.Card, field, title string) string {
	rule, ok := c.fieldRule(field)
	if !ok {
		return types.Sentinel
	}
	return c.pages.Extract(card, rule, title).String()
}

func (c *Crawler) fieldRule(name string) (config.FieldRule, bool) {
	for _, rule := range c.cfg.Fields {
		if rule.Name == name {
			return rule, true
		}
	}
	return config.FieldRule{}, false
}
