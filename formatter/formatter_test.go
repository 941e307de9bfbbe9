package formatter_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-fusion/formatter"
)

func TestFormatHeadingsAndParagraphs(t *testing.T) {
	content := "## Intro\n\nVisit OpenAI for more."

	out, err := formatter.Format(content, []string{"OpenAI"}, []string{"https://openai.com"})
	require.NoError(t, err)

	assert.Contains(t, out, `<h2 class=`)
	assert.Contains(t, out, `>Intro</h2>`)
	assert.Equal(t, 1, strings.Count(out, "<a "))
	assert.Contains(t, out, `href="https://openai.com"`)
	assert.Contains(t, out, `>OpenAI</a>`)
}

func TestFormatWithoutKeywordsInsertsNoAnchors(t *testing.T) {
	content := "## Title\n\nFirst paragraph.\n\nSecond paragraph."

	out, err := formatter.Format(content, nil, nil)
	require.NoError(t, err)

	assert.NotContains(t, out, "<a ")
	assert.Contains(t, out, ">Title</h2>")
	assert.Equal(t, 2, strings.Count(out, "<p "))
}

func TestFormatMissingURLFallsBackToHash(t *testing.T) {
	content := "Go and Rust are both compiled."

	out, err := formatter.Format(content, []string{"Go", "Rust"}, []string{"https://go.dev"})
	require.NoError(t, err)

	assert.Contains(t, out, `href="https://go.dev"`)
	assert.Contains(t, out, `href="#"`)
}

func TestFormatLinksEveryOccurrence(t *testing.T) {
	content := "Kafka here. Kafka there. And kafka again."

	out, err := formatter.Format(content, []string{"Kafka"}, []string{"https://kafka.apache.org"})
	require.NoError(t, err)

	// case-insensitive whole-word matching links all three
	assert.Equal(t, 3, strings.Count(out, "<a "))
}

func TestFormatWholeWordBoundary(t *testing.T) {
	content := "The Going rate differs from Go itself."

	out, err := formatter.Format(content, []string{"Go"}, []string{"https://go.dev"})
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(out, "<a "))
	assert.Contains(t, out, "Going rate")
}

func TestFormatOverlappingKeywordsNeverNestAnchors(t *testing.T) {
	content := "A Go module is more than Go."

	out, err := formatter.Format(content,
		[]string{"Go", "Go module"},
		[]string{"https://go.dev", "https://go.dev/ref/mod"})
	require.NoError(t, err)

	assert.Contains(t, out, `href="https://go.dev/ref/mod"`)
	assert.Contains(t, out, `>Go module</a>`)
	assert.Contains(t, out, `href="https://go.dev"`)
	assert.NotContains(t, out, "<a <")
	// no anchor may contain another anchor
	inner := out[strings.Index(out, "<a "):]
	first := inner[:strings.Index(inner, "</a>")]
	assert.NotContains(t, first[3:], "<a ")
}

func TestFormatStripsExistingTopLevelHeading(t *testing.T) {
	content := "<h1>Stored Title</h1>\n\nBody text."

	out, err := formatter.Format(content, nil, nil)
	require.NoError(t, err)

	assert.NotContains(t, out, "<h1")
	assert.Contains(t, out, "Body text.")
}

func TestFormatDropsLeadingMarkerTitle(t *testing.T) {
	content := "# The Title\n\n## Section\n\nBody."

	out, err := formatter.Format(content, nil, nil)
	require.NoError(t, err)

	assert.NotContains(t, out, "The Title")
	assert.Contains(t, out, ">Section</h2>")
}

func TestFormatListAndBold(t *testing.T) {
	content := "Points to **remember**:\n\n- first\n- second"

	out, err := formatter.Format(content, nil, nil)
	require.NoError(t, err)

	assert.Contains(t, out, "<strong>remember</strong>")
	assert.Equal(t, 2, strings.Count(out, "<li "))
	assert.Contains(t, out, "<ul ")
}

func TestFormatSanitizesScripts(t *testing.T) {
	content := `Hello <script>alert("x")</script> world.\n\n<p onclick="evil()">para</p>`

	out, err := formatter.Format(content, nil, nil)
	require.NoError(t, err)

	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "onclick")
	assert.Contains(t, out, "Hello")
}

func TestFormatKeywordInsideAnchorIsLeftAlone(t *testing.T) {
	content := `See <a href="https://example.com">OpenAI docs</a> and OpenAI news.`

	out, err := formatter.Format(content, []string{"OpenAI"}, []string{"https://openai.com"})
	require.NoError(t, err)

	// the pre-existing anchor text is untouched; only the bare occurrence links
	assert.Equal(t, 1, strings.Count(out, `href="https://openai.com"`))
	assert.Contains(t, out, `https://example.com`)
}

func TestFormatEmptyContent(t *testing.T) {
	out, err := formatter.Format("   ", []string{"k"}, []string{"u"})
	require.NoError(t, err)
	assert.Empty(t, out)
}
