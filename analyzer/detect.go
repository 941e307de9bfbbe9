// Package analyzer scores blog text for machine-written patterns and checks
// it against reference sources for overlapping content.
package analyzer

import (
	"math"
	"regexp"
	"strings"
)

var (
	reSentenceSplit = regexp.MustCompile(`[.!?]+\s+`)
	reWord          = regexp.MustCompile(`[A-Za-z][A-Za-z'-]*`)
)

// Weights of the three pattern signals. They must sum to 1.
const (
	weightParagraph = 0.4
	weightVocab     = 0.3
	weightSentence  = 0.3
)

// DetectScore rates how machine-like the text reads, from 10 (clearly
// human) to 100 (clearly generated). The score combines paragraph length
// uniformity, complex vocabulary density, and sentence structure
// regularity. Too-short inputs score the floor since the signals are
// meaningless there.
func DetectScore(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 10
	}
	words := reWord.FindAllString(text, -1)
	if len(words) < 30 {
		return 10
	}

	score := weightParagraph*paragraphConsistency(text) +
		weightVocab*complexVocabDensity(words) +
		weightSentence*sentenceRegularity(text)

	out := int(math.Round(score * 100))
	if out < 10 {
		out = 10
	}
	if out > 100 {
		out = 100
	}
	return out
}

// paragraphConsistency returns 0..1, higher when paragraphs are close to
// the same length. Generated text tends to emit evenly sized paragraphs.
func paragraphConsistency(text string) float64 {
	var lengths []float64
	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		lengths = append(lengths, float64(len(reWord.FindAllString(p, -1))))
	}
	if len(lengths) < 2 {
		return 0.5
	}

	mean := 0.0
	for _, l := range lengths {
		mean += l
	}
	mean /= float64(len(lengths))
	if mean == 0 {
		return 0.5
	}

	variance := 0.0
	for _, l := range lengths {
		variance += (l - mean) * (l - mean)
	}
	variance /= float64(len(lengths))

	// coefficient of variation: low spread means high consistency
	cv := math.Sqrt(variance) / mean
	consistency := 1 - cv
	if consistency < 0 {
		consistency = 0
	}
	if consistency > 1 {
		consistency = 1
	}
	return consistency
}

// complexVocabDensity returns 0..1 based on the share of long words.
// Scaled so that ~25% long words already reads as fully dense.
func complexVocabDensity(words []string) float64 {
	long := 0
	for _, w := range words {
		if len(w) >= 8 {
			long++
		}
	}
	density := float64(long) / float64(len(words)) * 4
	if density > 1 {
		density = 1
	}
	return density
}

// sentenceRegularity returns 0..1, higher when sentence lengths cluster
// tightly in the 12..25 word band typical of generated prose.
func sentenceRegularity(text string) float64 {
	sentences := reSentenceSplit.Split(text, -1)
	var lengths []float64
	for _, s := range sentences {
		n := len(reWord.FindAllString(s, -1))
		if n > 0 {
			lengths = append(lengths, float64(n))
		}
	}
	if len(lengths) < 3 {
		return 0.5
	}

	inBand := 0
	mean := 0.0
	for _, l := range lengths {
		mean += l
		if l >= 12 && l <= 25 {
			inBand++
		}
	}
	mean /= float64(len(lengths))

	variance := 0.0
	for _, l := range lengths {
		variance += (l - mean) * (l - mean)
	}
	variance /= float64(len(lengths))
	cv := 1.0
	if mean > 0 {
		cv = math.Sqrt(variance) / mean
	}

	bandShare := float64(inBand) / float64(len(lengths))
	uniformity := 1 - cv
	if uniformity < 0 {
		uniformity = 0
	}
	return 0.5*bandShare + 0.5*uniformity
}
