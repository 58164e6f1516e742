// Package textnorm reduces free text to a canonical lowercase form shared
// by the FAQ matcher and the chunking pipeline.
package textnorm

import (
	"regexp"
	"strings"
)

var (
	nonAlnumRe   = regexp.MustCompile(`[^a-z0-9\s]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Normalize lowercases text, strips outer whitespace, replaces every
// character outside [a-z0-9\s] with a space and collapses whitespace runs
// into single spaces.
//
// The strip happens before the punctuation substitution, so a leading or
// trailing punctuation character turns into a leading or trailing space in
// the output. Re-normalizing removes it.
func Normalize(text string) string {
	text = strings.ToLower(text)
	text = strings.TrimSpace(text)
	text = nonAlnumRe.ReplaceAllString(text, " ")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return text
}

// Tokenize normalizes text and splits it on whitespace. Empty or
// whitespace-only input yields no tokens.
func Tokenize(text string) []string {
	return strings.Fields(Normalize(text))
}

// WordCount reports the number of tokens Tokenize would produce.
func WordCount(text string) int {
	return len(Tokenize(text))
}

// TokenSet returns the distinct tokens of text as a set.
func TokenSet(text string) map[string]struct{} {
	tokens := Tokenize(text)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}
