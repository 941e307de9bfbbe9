// Package formatter turns raw stored blog content (a mix of literal HTML and
// lightweight markdown-like markers) into sanitized HTML fragments with
// keyword hyperlinks embedded.
package formatter

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	h1Class   = "text-4xl font-bold text-gray-900 mt-8 mb-4"
	h2Class   = "text-3xl font-semibold text-gray-800 mt-8 mb-4"
	h3Class   = "text-2xl font-medium text-gray-700 mt-6 mb-3"
	pClass    = "mb-4 leading-relaxed"
	liClass   = "ml-6 mb-2"
	ulClass   = "list-disc"
	linkClass = "text-blue-600 font-medium hover:text-blue-800 transition-colors"
)

var (
	reExistingH1 = regexp.MustCompile(`(?is)<h1[^>]*>.*?</h1>`)
	reH3         = regexp.MustCompile(`^### (.*)$`)
	reH2         = regexp.MustCompile(`^## (.*)$`)
	reH1         = regexp.MustCompile(`^# (.*)$`)
	reListItem   = regexp.MustCompile(`^- (.*)$`)
	reBold       = regexp.MustCompile(`\*\*(.+?)\*\*`)
)

// Format renders rawContent into a sanitized HTML fragment. keywords and
// keywordURLs are positionally paired; a keyword missing its URL links to "#".
//
// The transform runs on the raw-content stage only; its output must never be
// fed back in as input.
func Format(rawContent string, keywords, keywordURLs []string) (string, error) {
	if strings.TrimSpace(rawContent) == "" {
		return "", nil
	}

	// The display title is rendered by the caller: drop any pre-existing
	// top-level heading, whether literal HTML or a leading "# " line.
	content := reExistingH1.ReplaceAllString(rawContent, "")
	content = dropLeadingTitleLine(content)

	blocks := toBlocks(content)

	linked, err := linkKeywords(strings.Join(blocks, "\n"), keywords, keywordURLs)
	if err != nil {
		return "", err
	}

	return sanitizer.Sanitize(linked), nil
}

// dropLeadingTitleLine removes the first non-empty line when it is a
// single-# heading. Deeper headings stay in the body.
func dropLeadingTitleLine(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if reH1.MatchString(line) {
			return strings.Join(lines[i+1:], "\n")
		}
		break
	}
	return content
}

// toBlocks converts marker lines to heading/list tags and wraps blank-line
// separated runs of plain text in paragraph tags. Runs that already start
// with a block-level tag are left alone so that literal HTML in the content
// is not double-wrapped.
func toBlocks(content string) []string {
	var blocks []string
	for _, chunk := range strings.Split(content, "\n\n") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}

		var out []string
		var listRun []string
		flushList := func() {
			if len(listRun) > 0 {
				out = append(out, fmt.Sprintf(`<ul class="%s">%s</ul>`, ulClass, strings.Join(listRun, "")))
				listRun = nil
			}
		}

		for _, line := range strings.Split(chunk, "\n") {
			line = strings.TrimRight(line, " \t")
			if strings.TrimSpace(line) == "" {
				continue
			}
			line = reBold.ReplaceAllString(line, "<strong>$1</strong>")

			switch {
			case reH3.MatchString(line):
				flushList()
				out = append(out, reH3.ReplaceAllString(line, fmt.Sprintf(`<h3 class="%s">$1</h3>`, h3Class)))
			case reH2.MatchString(line):
				flushList()
				out = append(out, reH2.ReplaceAllString(line, fmt.Sprintf(`<h2 class="%s">$1</h2>`, h2Class)))
			case reH1.MatchString(line):
				flushList()
				out = append(out, reH1.ReplaceAllString(line, fmt.Sprintf(`<h1 class="%s">$1</h1>`, h1Class)))
			case reListItem.MatchString(line):
				listRun = append(listRun, reListItem.ReplaceAllString(line, fmt.Sprintf(`<li class="%s">$1</li>`, liClass)))
			default:
				flushList()
				out = append(out, line)
			}
		}
		flushList()

		joined := strings.Join(out, "\n")
		if isBlockLevel(joined) {
			blocks = append(blocks, joined)
		} else {
			blocks = append(blocks, fmt.Sprintf(`<p class="%s">%s</p>`, pClass, joined))
		}
	}
	return blocks
}

func isBlockLevel(s string) bool {
	for _, prefix := range []string{"<h1", "<h2", "<h3", "<h4", "<ul", "<ol", "<li", "<p", "<blockquote", "<pre", "<div", "<table", "<img"} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

type keywordLink struct {
	re  *regexp.Regexp
	url string
}

// linkKeywords wraps every whole-word, case-insensitive occurrence of each
// keyword in an anchor to its paired URL. Longer keywords are applied first
// and text already inside an anchor is never touched, so overlapping
// keywords cannot produce nested anchors.
func linkKeywords(fragment string, keywords, keywordURLs []string) (string, error) {
	links := buildKeywordLinks(keywords, keywordURLs)
	if len(links) == 0 {
		return fragment, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", err
	}

	body := doc.Find("body")
	if body.Length() == 0 {
		return fragment, nil
	}
	for _, n := range body.Nodes {
		linkifyNode(n, links)
	}
	return body.Html()
}

func buildKeywordLinks(keywords, keywordURLs []string) []keywordLink {
	links := make([]keywordLink, 0, len(keywords))
	for i, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		url := "#"
		if i < len(keywordURLs) {
			if u := strings.TrimSpace(keywordURLs[i]); u != "" {
				url = u
			}
		}
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(kw) + `\b`)
		if err != nil {
			continue
		}
		links = append(links, keywordLink{re: re, url: url})
	}
	// Longest keyword wins any span it occupies.
	sort.SliceStable(links, func(i, j int) bool {
		return len(links[i].re.String()) > len(links[j].re.String())
	})
	return links
}

func linkifyNode(n *html.Node, links []keywordLink) {
	if n.Type == html.ElementNode && n.DataAtom == atom.A {
		return
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.TextNode {
			replaceTextNode(n, c, links)
		} else {
			linkifyNode(c, links)
		}
		c = next
	}
}

// replaceTextNode splits the text node around keyword matches, substituting
// anchor elements. Segments produced by one keyword are plain text and are
// re-examined only by the remaining (shorter) keywords.
func replaceTextNode(parent, textNode *html.Node, links []keywordLink) {
	nodes := linkifyText(textNode.Data, links)
	if len(nodes) == 1 && nodes[0].Type == html.TextNode && nodes[0].Data == textNode.Data {
		return
	}
	for _, nn := range nodes {
		parent.InsertBefore(nn, textNode)
	}
	parent.RemoveChild(textNode)
}

func linkifyText(text string, links []keywordLink) []*html.Node {
	if text == "" {
		return nil
	}
	if len(links) == 0 {
		return []*html.Node{{Type: html.TextNode, Data: text}}
	}
	link, rest := links[0], links[1:]

	loc := link.re.FindStringIndex(text)
	if loc == nil {
		return linkifyText(text, rest)
	}

	var out []*html.Node
	out = append(out, linkifyText(text[:loc[0]], rest)...)
	out = append(out, anchorNode(text[loc[0]:loc[1]], link.url))
	out = append(out, linkifyText(text[loc[1]:], links)...)
	return out
}

func anchorNode(text, url string) *html.Node {
	a := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.A,
		Data:     "a",
		Attr: []html.Attribute{
			{Key: "href", Val: url},
			{Key: "class", Val: linkClass},
			{Key: "target", Val: "_blank"},
			{Key: "rel", Val: "noopener noreferrer"},
		},
	}
	a.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return a
}

// sanitizer is the single trust boundary for blog HTML: whatever the
// formatter emits is safe to inject into a page as-is.
var sanitizer = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").OnElements("h1", "h2", "h3", "h4", "p", "ul", "ol", "li", "a", "span", "strong", "blockquote")
	p.AllowAttrs("target", "rel").OnElements("a")
	// keywords without a paired URL link to "#", which the UGC policy
	// would otherwise strip as a relative href
	p.AllowRelativeURLs(true)
	return p
}
