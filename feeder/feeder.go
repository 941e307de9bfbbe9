package feeder

import (
	"crypto/tls"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// FeedItem is one article entry discovered in an RSS or Atom feed.
type FeedItem struct {
	Title       string
	Link        string
	PublishedAt time.Time
}

// LooksLikeFeedURL is a cheap test for reference URLs that point at a feed
// rather than a single article.
func LooksLikeFeedURL(url string) bool {
	lower := strings.ToLower(url)
	for _, marker := range []string{"/rss", "/feed", "/atom", ".rss", ".atom", ".xml"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// ExpandFeed fetches the feed at feedURL and returns its article entries,
// newest first as served. If limit is greater than 0, only the first limit
// items are returned.
func ExpandFeed(feedURL string, limit int) ([]FeedItem, error) {
	httpClient := &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, // 일부 블로그는 인증서 체인이 깨져 있음
		},
	}

	fp := gofeed.NewParser()
	fp.Client = httpClient

	feed, err := fp.ParseURL(feedURL)
	if err != nil {
		return nil, err
	}

	var items []FeedItem
	for _, item := range feed.Items {
		var published time.Time
		if item.PublishedParsed != nil {
			published = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			published = *item.UpdatedParsed
		}

		items = append(items, FeedItem{
			Title:       item.Title,
			Link:        item.Link,
			PublishedAt: published,
		})
	}

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	return items, nil
}
