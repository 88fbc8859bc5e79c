package parser

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"bookstalk/internal/config"
	"bookstalk/internal/types"
)

// Card is one parsed fragment of a search-results page representing a
// single book listing.
type Card struct {
	sel *goquery.Selection
}

// PageParser locates book cards in rendered search-result HTML.
type PageParser struct {
	cardSelector string
	logger       *slog.Logger
}

// NewPageParser creates a parser for search-result pages.
func NewPageParser(cardSelector string, logger *slog.Logger) *PageParser {
	return &PageParser{
		cardSelector: cardSelector,
		logger:       logger.With("component", "page_parser"),
	}
}

// Cards parses the page HTML and returns all book-card fragments.
// A page with no cards is a valid (empty) result, not an error.
func (p *PageParser) Cards(pageHTML string) ([]Card, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, &types.ParseError{Selector: p.cardSelector, Err: err}
	}

	var cards []Card
	doc.Find(p.cardSelector).Each(func(i int, sel *goquery.Selection) {
		cards = append(cards, Card{sel: sel})
	})

	p.logger.Debug("cards located", "selector", p.cardSelector, "count", len(cards))
	return cards, nil
}

// Title extracts the card's title via the given rule, falling back to the
// standard placeholder when the card has no title element at all.
func (p *PageParser) Title(card Card, rule config.FieldRule) string {
	f := p.Extract(card, rule, "")
	return f.Or(types.TitlePlaceholder)
}

// Extract pulls a single field from a card. A selector that resolves to no
// element is expected, not exceptional: the result is marked missing and a
// diagnostic names the book and the absent field.
func (p *PageParser) Extract(card Card, rule config.FieldRule, title string) types.Field {
	var f types.Field
	switch rule.Type {
	case "xpath":
		f = extractXPath(card.sel, rule)
	default: // css
		f = extractCSS(card.sel, rule)
	}

	if f.Missing {
		p.logger.Info("field missing on card", "title", title, "field", rule.Name)
	}
	return f
}

// extractCSS applies a CSS rule within the card fragment.
func extractCSS(sel *goquery.Selection, rule config.FieldRule) types.Field {
	match := sel.Find(rule.Selector).First()
	if match.Length() == 0 {
		return types.Absent()
	}

	switch rule.Attribute {
	case "", "text":
		return types.Found(strings.TrimSpace(match.Text()))
	default:
		val, ok := match.Attr(rule.Attribute)
		if !ok {
			return types.Absent()
		}
		return types.Found(strings.TrimSpace(val))
	}
}
