package sources

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-fusion/feeder"
)

func stubGatherer() *Gatherer {
	g := NewGatherer(5)
	g.FetchHTML = func(ctx context.Context, url string) (string, error) {
		return "<html><body><p>content of " + url + "</p></body></html>", nil
	}
	g.RenderHTML = func(ctx context.Context, url string) (string, error) {
		return "", errors.New("renderer unavailable in test")
	}
	g.ExtractText = func(htmlStr, pageURL string) (string, error) {
		return "text from " + pageURL, nil
	}
	g.ExpandFeedFn = func(feedURL string, limit int) ([]feeder.FeedItem, error) {
		return []feeder.FeedItem{
			{Title: "entry one", Link: feedURL + "/1"},
			{Title: "entry two", Link: feedURL + "/2"},
		}, nil
	}
	return g
}

func TestGatherArticleURLs(t *testing.T) {
	g := stubGatherer()

	out := g.Gather(context.Background(), []string{
		"https://example.com/post-a",
		"  https://example.com/post-b  ",
		"",
	})
	require.Len(t, out, 2)
	assert.Equal(t, "https://example.com/post-a", out[0].URL)
	assert.Equal(t, "text from https://example.com/post-b", out[1].Text)
}

func TestGatherExpandsFeedURLs(t *testing.T) {
	g := stubGatherer()

	out := g.Gather(context.Background(), []string{"https://blog.example.com/rss"})
	require.Len(t, out, 2)
	assert.Equal(t, "entry one", out[0].Title)
	assert.True(t, strings.HasSuffix(out[0].URL, "/1"))
}

func TestGatherCapsAtMaxSources(t *testing.T) {
	g := stubGatherer()
	g.MaxSources = 3

	out := g.Gather(context.Background(), []string{
		"https://a.example.com", "https://b.example.com",
		"https://c.example.com", "https://d.example.com",
	})
	assert.Len(t, out, 3)
}

func TestGatherSkipsUnreadablePages(t *testing.T) {
	g := stubGatherer()
	g.FetchHTML = func(ctx context.Context, url string) (string, error) {
		if strings.Contains(url, "broken") {
			return "", errors.New("connection refused")
		}
		return "<html></html>", nil
	}

	out := g.Gather(context.Background(), []string{
		"https://broken.example.com",
		"https://ok.example.com",
	})
	require.Len(t, out, 1)
	assert.Equal(t, "https://ok.example.com", out[0].URL)
}

func TestGatherFallsBackToRenderer(t *testing.T) {
	g := stubGatherer()
	extractCalls := 0
	g.ExtractText = func(htmlStr, pageURL string) (string, error) {
		extractCalls++
		if strings.Contains(htmlStr, "rendered") {
			return "rendered text", nil
		}
		return "", errors.New("no readable text")
	}
	g.RenderHTML = func(ctx context.Context, url string) (string, error) {
		return "<html>rendered</html>", nil
	}

	out := g.Gather(context.Background(), []string{"https://spa.example.com"})
	require.Len(t, out, 1)
	assert.Equal(t, "rendered text", out[0].Text)
	assert.Equal(t, 2, extractCalls)
}

func TestGatherStopsOnCanceledContext(t *testing.T) {
	g := stubGatherer()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := g.Gather(ctx, []string{"https://a.example.com", "https://b.example.com"})
	assert.Empty(t, out)
}

func TestGatherFeedExpansionFailureUsesURLDirectly(t *testing.T) {
	g := stubGatherer()
	g.ExpandFeedFn = func(feedURL string, limit int) ([]feeder.FeedItem, error) {
		return nil, errors.New("not a feed")
	}

	out := g.Gather(context.Background(), []string{"https://blog.example.com/rss"})
	require.Len(t, out, 1)
	assert.Equal(t, "https://blog.example.com/rss", out[0].URL)
}
