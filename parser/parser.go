// Package parser extracts readable article text from raw HTML. Three
// extractors are tried in order until one yields usable text.
package parser

import (
	"errors"
	"strings"

	"github.com/advancedlogic/GoOse/pkg/goose"
	"github.com/go-shiori/go-readability"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// ErrNoText is returned when no extractor produced usable text.
var ErrNoText = errors.New("parser: no readable text extracted")

// main parser
func ParseHtmlWithReadability(htmlStr string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlStr))
	if err != nil {
		return "", err
	}

	article, err := readability.FromDocument(doc, nil)
	if err != nil {
		return "", err
	}
	return article.TextContent, nil
}

func ParseHtmlWithTrafilatura(htmlStr string) (string, error) {
	opts := trafilatura.Options{
		IncludeImages: true,
	}

	article, err := trafilatura.Extract(strings.NewReader(htmlStr), opts)
	if err != nil {
		return "", err
	}

	return article.ContentText, nil
}

func ParseHtmlWithGoose(htmlStr, pageURL string) (string, error) {
	g := goose.New()
	article, err := g.ExtractFromRawHTML(htmlStr, pageURL)
	if err != nil {
		return "", err
	}
	return article.CleanedText, nil
}

// ExtractText runs the extractor cascade: readability, then trafilatura,
// then goose. A result shorter than 200 characters is treated as a miss
// so boilerplate-only extractions fall through to the next stage.
func ExtractText(htmlStr, pageURL string) (string, error) {
	const minLen = 200

	if text, err := ParseHtmlWithReadability(htmlStr); err == nil {
		if t := strings.TrimSpace(text); len(t) >= minLen {
			return t, nil
		}
	}
	if text, err := ParseHtmlWithTrafilatura(htmlStr); err == nil {
		if t := strings.TrimSpace(text); len(t) >= minLen {
			return t, nil
		}
	}
	if text, err := ParseHtmlWithGoose(htmlStr, pageURL); err == nil {
		if t := strings.TrimSpace(text); t != "" {
			return t, nil
		}
	}

	// last resort: the longest of whatever the first two produced
	best := ""
	if text, err := ParseHtmlWithReadability(htmlStr); err == nil {
		best = strings.TrimSpace(text)
	}
	if text, err := ParseHtmlWithTrafilatura(htmlStr); err == nil {
		if t := strings.TrimSpace(text); len(t) > len(best) {
			best = t
		}
	}
	if best == "" {
		return "", ErrNoText
	}
	return best, nil
}
