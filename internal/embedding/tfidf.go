// Package embedding provides domain.Embedder implementations: a local
// TF-IDF vectorizer and an OpenAI-compatible remote client.
package embedding

import (
	"errors"
	"math"
	"sort"

	"ragkit/internal/textnorm"
)

// TFIDF is a simple TF-IDF vectorizer. Prepare builds a vocabulary and
// IDF weights from the corpus; Embed then produces L2-normalized vectors
// in that vocabulary's dimension.
type TFIDF struct {
	vocabulary map[string]int
	idf        []float64
	dimension  int
	prepared   bool
	stopWords  map[string]struct{}
}

// NewTFIDF creates an unprepared TF-IDF embedder with the default
// stop-word set.
func NewTFIDF() *TFIDF {
	return &TFIDF{
		vocabulary: make(map[string]int),
		stopWords:  corpusStopWords(),
	}
}

// Name returns the identifier of this embedder implementation.
func (e *TFIDF) Name() string { return "tfidf" }

// Prepare builds the vocabulary and smoothed IDF values from the corpus.
// Terms are sorted so vector dimensions are stable across runs.
func (e *TFIDF) Prepare(corpus []string) error {
	if len(corpus) == 0 {
		return errors.New("empty corpus for tf-idf prepare")
	}
	df := make(map[string]int)
	for _, text := range corpus {
		seen := make(map[string]struct{})
		for _, tok := range e.tokenize(text) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	if len(df) == 0 {
		return errors.New("no tokens found in corpus")
	}
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	e.vocabulary = make(map[string]int, len(terms))
	e.idf = make([]float64, len(terms))
	n := float64(len(corpus))
	for i, term := range terms {
		e.vocabulary[term] = i
		e.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}
	e.dimension = len(terms)
	e.prepared = true
	return nil
}

// Dimension returns the dimensionality of the produced vectors.
func (e *TFIDF) Dimension() int { return e.dimension }

// Embed computes the L2-normalized TF-IDF vector for text. Text whose
// tokens all fall outside the vocabulary embeds to the zero vector.
func (e *TFIDF) Embed(text string) ([]float64, error) {
	if !e.prepared {
		return nil, errors.New("tf-idf embedder not prepared")
	}
	vec := make([]float64, e.dimension)
	tf := make(map[int]int)
	total := 0
	for _, tok := range e.tokenize(text) {
		if idx, ok := e.vocabulary[tok]; ok {
			tf[idx]++
			total++
		}
	}
	if total == 0 {
		return vec, nil
	}
	for idx, count := range tf {
		vec[idx] = float64(count) / float64(total) * e.idf[idx]
	}
	norm := 0.0
	for _, v := range vec {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec, nil
}

func (e *TFIDF) tokenize(text string) []string {
	tokens := textnorm.Tokenize(text)
	out := tokens[:0]
	for _, t := range tokens {
		if _, stop := e.stopWords[t]; stop {
			continue
		}
		out = append(out, t)
	}
	return out
}

// corpusStopWords is the broader stop-word list used for corpus-level
// statistics; the FAQ matcher keeps its own smaller set.
func corpusStopWords() map[string]struct{} {
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
