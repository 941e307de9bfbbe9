package analyzer

import (
	"strings"
)

var stopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {},
	"of": {}, "in": {}, "on": {}, "at": {}, "to": {}, "for": {},
	"with": {}, "by": {}, "from": {}, "as": {}, "that": {}, "this": {},
	"it": {}, "its": {}, "not": {}, "have": {}, "has": {}, "had": {},
}

// tokenSet lowercases text and returns its distinct non-stopword tokens.
func tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range reWord.FindAllString(strings.ToLower(text), -1) {
		if len(w) < 3 {
			continue
		}
		if _, ok := stopwords[w]; ok {
			continue
		}
		set[w] = struct{}{}
	}
	return set
}

// Similarity returns the token overlap ratio between the candidate text and
// a source text: the share of the candidate's distinct tokens that also
// appear in the source. Range 0..1.
func Similarity(candidate, source string) float64 {
	cand := tokenSet(candidate)
	if len(cand) == 0 {
		return 0
	}
	src := tokenSet(source)
	if len(src) == 0 {
		return 0
	}

	hits := 0
	for w := range cand {
		if _, ok := src[w]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(cand))
}
