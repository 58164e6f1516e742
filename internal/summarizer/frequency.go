// Package summarizer produces short extractive summaries by ranking
// sentences on normalized token frequency.
package summarizer

import (
	"math"
	"sort"
	"strings"

	"ragkit/internal/chunker"
	"ragkit/internal/textnorm"
)

// Frequency scores each sentence by the normalized frequency of its
// non-stop-word tokens and keeps the top maxSentences in original order.
type Frequency struct {
	stopWords map[string]struct{}
}

// NewFrequency creates a frequency-based sentence-ranking summarizer with
// the given stop words excluded from scoring.
func NewFrequency(stopWords map[string]struct{}) *Frequency {
	return &Frequency{stopWords: stopWords}
}

// Summarize returns up to maxSentences sentences of text, chosen by token
// frequency and emitted in their original order.
func (s *Frequency) Summarize(text string, maxSentences int) (string, error) {
	if maxSentences <= 0 {
		maxSentences = 5
	}
	sentences := chunker.SplitIntoSentences(text)
	if len(sentences) == 0 {
		return strings.TrimSpace(text), nil
	}

	freq := map[string]float64{}
	for _, sent := range sentences {
		for _, tok := range s.tokens(sent) {
			freq[tok]++
		}
	}
	maxF := 0.0
	for _, v := range freq {
		if v > maxF {
			maxF = v
		}
	}
	if maxF > 0 {
		for k, v := range freq {
			freq[k] = v / maxF
		}
	}

	type scored struct {
		idx   int
		score float64
	}
	scores := make([]scored, len(sentences))
	for i, sent := range sentences {
		toks := s.tokens(sent)
		total := 0.0
		for _, tok := range toks {
			total += freq[tok]
		}
		// dampen long-sentence bias
		if n := float64(len(toks)); n > 0 {
			total /= math.Sqrt(n)
		}
		scores[i] = scored{i, total}
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })
	if maxSentences > len(scores) {
		maxSentences = len(scores)
	}
	selected := make([]int, maxSentences)
	for i := 0; i < maxSentences; i++ {
		selected[i] = scores[i].idx
	}
	sort.Ints(selected)

	out := make([]string, 0, len(selected))
	for _, idx := range selected {
		out = append(out, sentences[idx])
	}
	return strings.Join(out, " "), nil
}

func (s *Frequency) tokens(text string) []string {
	tokens := textnorm.Tokenize(text)
	out := tokens[:0]
	for _, t := range tokens {
		if _, stop := s.stopWords[t]; stop {
			continue
		}
		out = append(out, t)
	}
	return out
}

// DefaultStopWords is the stop-word set used when none is configured.
func DefaultStopWords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for",
		"to", "of", "in", "on", "at", "by", "with", "as", "is", "are",
		"was", "were", "be", "been", "being", "it", "this", "that", "these",
		"those", "from", "up", "down", "over", "under", "again", "further",
		"than", "so", "such", "into", "about", "between", "through",
		"during", "before", "after", "above", "below", "out", "off", "own",
		"same", "too", "very", "can", "will", "just", "don", "should", "now",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
