package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"bookstalk/internal/config"
	"bookstalk/internal/types"
)

// extractXPath applies an XPath rule within the card fragment. XPath rules
// are the escape hatch for fields the site's markup makes awkward to reach
// with CSS selectors.
func extractXPath(sel *goquery.Selection, rule config.FieldRule) types.Field {
	for _, root := range sel.Nodes {
		node := queryNode(root, rule.Selector)
		if node == nil {
			continue
		}

		var val string
		switch rule.Attribute {
		case "", "text":
			val = strings.TrimSpace(htmlquery.InnerText(node))
		default:
			val = strings.TrimSpace(htmlquery.SelectAttr(node, rule.Attribute))
		}
		if val != "" {
			return types.Found(val)
		}
	}
	return types.Absent()
}

func queryNode(root *html.Node, selector string) *html.Node {
	node, err := htmlquery.Query(root, selector)
	if err != nil {
		// Invalid expression behaves like a non-matching one.
		return nil
	}
	return node
}
