// Package sources resolves a blog's reference URLs into readable article
// texts for the plagiarism check. Feed URLs are expanded into their entries
// first; every page then goes through fetch, render fallback, and text
// extraction.
package sources

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"blog-fusion/internal/logger"
	"blog-fusion/feeder"
	"blog-fusion/parser"
	"blog-fusion/renderer"
)

// Source is one resolved reference page.
type Source struct {
	URL   string
	Title string
	Text  string
}

// Gatherer fetches and extracts reference pages. The fetch and render
// functions are swappable for tests.
type Gatherer struct {
	MaxSources   int
	FeedExpandN  int
	FetchHTML    func(ctx context.Context, url string) (string, error)
	RenderHTML   func(ctx context.Context, url string) (string, error)
	ExtractText  func(htmlStr, pageURL string) (string, error)
	ExpandFeedFn func(feedURL string, limit int) ([]feeder.FeedItem, error)
}

// NewGatherer returns a Gatherer wired to the real fetch, render, and
// extraction implementations.
func NewGatherer(maxSources int) *Gatherer {
	if maxSources <= 0 {
		maxSources = 5
	}
	return &Gatherer{
		MaxSources:   maxSources,
		FeedExpandN:  3,
		FetchHTML:    fetchHTML,
		RenderHTML:   renderer.RenderHTML,
		ExtractText:  parser.ExtractText,
		ExpandFeedFn: feeder.ExpandFeed,
	}
}

// Gather resolves referenceURLs into extracted source texts. Unreachable
// or unreadable pages are skipped, not fatal; the analysis proceeds with
// whatever could be read. ctx bounds all network work.
func (g *Gatherer) Gather(ctx context.Context, referenceURLs []string) []Source {
	pages := g.expand(referenceURLs)
	if len(pages) > g.MaxSources {
		pages = pages[:g.MaxSources]
	}

	var out []Source
	for _, page := range pages {
		if ctx.Err() != nil {
			break
		}
		text, err := g.readPage(ctx, page.Link)
		if err != nil {
			logger.WarnWithFields("skipping unreadable source", logger.Fields{
				"url":   page.Link,
				"error": err.Error(),
			})
			continue
		}
		out = append(out, Source{URL: page.Link, Title: page.Title, Text: text})
	}
	return out
}

// expand replaces feed URLs with their newest entries and passes article
// URLs through unchanged.
func (g *Gatherer) expand(referenceURLs []string) []feeder.FeedItem {
	var pages []feeder.FeedItem
	for _, url := range referenceURLs {
		url = strings.TrimSpace(url)
		if url == "" {
			continue
		}
		if feeder.LooksLikeFeedURL(url) {
			items, err := g.ExpandFeedFn(url, g.FeedExpandN)
			if err != nil {
				logger.WarnWithFields("feed expansion failed, using url as-is", logger.Fields{
					"url":   url,
					"error": err.Error(),
				})
				pages = append(pages, feeder.FeedItem{Link: url})
				continue
			}
			pages = append(pages, items...)
			continue
		}
		pages = append(pages, feeder.FeedItem{Link: url})
	}
	return pages
}

// readPage fetches the page and extracts its article text. When the plain
// fetch yields nothing readable the page is rendered in headless Chrome
// and extraction runs again.
func (g *Gatherer) readPage(ctx context.Context, url string) (string, error) {
	htmlStr, err := g.FetchHTML(ctx, url)
	if err == nil {
		if text, exErr := g.ExtractText(htmlStr, url); exErr == nil {
			return text, nil
		}
	}

	rendered, rErr := g.RenderHTML(ctx, url)
	if rErr != nil {
		if err != nil {
			return "", err
		}
		return "", rErr
	}
	return g.ExtractText(rendered, url)
}

func fetchHTML(ctx context.Context, url string) (string, error) {
	client := &http.Client{Timeout: 15 * time.Second}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", renderer.USER_AGENT)

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", err
	}
	return string(body), nil
}
