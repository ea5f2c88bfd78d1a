// Package notation parses the hand-typed pitch-accent notation into sections.
//
// A field is normalized, split into sentences, each sentence into
// whitespace-separated tokens, and each token into a word and its accent:
//
//	大物[おおもの]:2 が まで:p1 | おおさか:H;hlll
package notation

import (
	"html"
	"regexp"
	"strings"

	"github.com/f3rmion/pitchgraph/internal/kana"
)

// Words that break the pitch contour and are never colored.
var (
	hiddenWords = []string{"|", kana.GhostParticle}
	pitchBreaks = append(append([]string{}, hiddenWords...), ",", "、")
)

// IsPitchBreak reports whether word resets the contour to low.
func IsPitchBreak(word string) bool {
	for _, w := range pitchBreaks {
		if w == word {
			return true
		}
	}
	return false
}

// IsHidden reports whether word is drawn but never shown as text.
func IsHidden(word string) bool {
	for _, w := range hiddenWords {
		if w == word {
			return true
		}
	}
	return strings.Trim(word, kana.GhostParticle) == "" && word != ""
}

var (
	lineBreakRe     = regexp.MustCompile(`(?i)<br\s*/?>`)
	tagRe           = regexp.MustCompile(`<[^<>]+>`)
	sentenceEndRe   = regexp.MustCompile(`([。｡!?！？])`)
	clausePunctRe   = regexp.MustCompile(`([「」|、､])`)
	bareCommaRe     = regexp.MustCompile(`([^ ]), `)
	sentenceSepRe   = regexp.MustCompile(`[.\n]+`)
	sectionSepRe    = regexp.MustCompile(`[\t\s\x{3000}]+`)
	trailingGhostRe = regexp.MustCompile(`(-+)[\s.]*$`)
)

// Normalize strips markup and surrounds punctuation with spaces so that a
// whitespace split isolates it. Sentence ends are followed by a '.' clause
// marker.
func Normalize(expr string) string {
	expr = lineBreakRe.ReplaceAllString(expr, " . ")
	expr = tagRe.ReplaceAllString(expr, "")
	expr = html.UnescapeString(expr)
	expr = strings.ReplaceAll(expr, "\u00a0", " ")
	expr = sentenceEndRe.ReplaceAllString(expr, " $1 .")
	expr = clausePunctRe.ReplaceAllString(expr, " $1 ")
	expr = bareCommaRe.ReplaceAllString(expr, " $1 , ")
	return expr
}

// SplitSentences splits normalized text on clause markers and newlines.
func SplitSentences(expr string) []string {
	var out []string
	for _, s := range sentenceSepRe.Split(expr, -1) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// DetachGhostParticle makes a trailing ghost marker its own token.
func DetachGhostParticle(sentence string) string {
	return trailingGhostRe.ReplaceAllString(sentence, " $1")
}

// SplitSections splits a sentence into tokens.
func SplitSections(sentence string) []string {
	var out []string
	for _, s := range sectionSepRe.Split(sentence, -1) {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ExpandAlternatives duplicates a sentence once per comma-separated accent of
// its first token, so `じんせい;1,0 まで;1` renders two diagrams. Only the
// first token is expanded; the rest is shared.
func ExpandAlternatives(tokens []string) [][]string {
	if len(tokens) == 0 {
		return nil
	}
	first := SplitToken(tokens[0])
	if first.Sep == "" {
		return [][]string{tokens}
	}
	var out [][]string
	for _, accent := range strings.Split(first.Accent, ",") {
		seq := make([]string, 0, len(tokens))
		seq = append(seq, first.Word+first.Sep+strings.TrimSpace(accent))
		seq = append(seq, tokens[1:]...)
		out = append(out, seq)
	}
	return out
}

// Split runs the text stages of the pipeline: normalization, sentence and
// section splitting, and multi-notation expansion. Every returned token list
// is one diagram.
func Split(expr string) [][]string {
	var out [][]string
	for _, sentence := range SplitSentences(Normalize(expr)) {
		tokens := SplitSections(DetachGhostParticle(sentence))
		out = append(out, ExpandAlternatives(tokens)...)
	}
	return out
}
