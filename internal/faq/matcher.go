// Package faq implements lexical FAQ matching: stop-word filtering,
// synonym expansion and Jaccard scoring over normalized question text.
package faq

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"ragkit/internal/domain"
	"ragkit/internal/textnorm"
)

// DefaultThreshold is the minimum Jaccard score for a match to be returned.
const DefaultThreshold = 0.15

const (
	noEntriesAnswer = "No FAQs loaded yet. Please add some FAQs first."
	noMatchAnswer   = "I couldn't find a good answer to that question. Could you rephrase it?"
)

// Matcher holds an ordered FAQ collection together with the stop-word set
// and synonym table used for scoring. Entries are append-only; concurrent
// Match calls against a stable entry list are safe, concurrent AddEntry
// calls are not.
type Matcher struct {
	entries   []domain.FAQEntry
	stopWords map[string]struct{}
	synonyms  map[string][]string
}

// Option configures a Matcher at construction time.
type Option func(*Matcher)

// WithStopWords replaces the default stop-word set.
func WithStopWords(words []string) Option {
	return func(m *Matcher) {
		m.stopWords = make(map[string]struct{}, len(words))
		for _, w := range words {
			m.stopWords[strings.ToLower(w)] = struct{}{}
		}
	}
}

// WithSynonyms replaces the default synonym table. The table is used as
// given: symmetry is the author's responsibility (see Symmetrize).
func WithSynonyms(table map[string][]string) Option {
	return func(m *Matcher) { m.synonyms = table }
}

// NewMatcher creates an empty matcher with the default stop-word and
// synonym tables unless options override them.
func NewMatcher(opts ...Option) *Matcher {
	m := &Matcher{
		stopWords: defaultStopWords(),
		synonyms:  DefaultSynonyms(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Len reports the number of stored entries.
func (m *Matcher) Len() int { return len(m.entries) }

// Entries returns a copy of the stored entries in insertion order.
func (m *Matcher) Entries() []domain.FAQEntry {
	return append([]domain.FAQEntry(nil), m.entries...)
}

// AddEntry normalizes the question and appends the pair. Duplicates are
// stored and matched like any other entry.
func (m *Matcher) AddEntry(question, answer string) {
	m.entries = append(m.entries, domain.FAQEntry{
		Question:           question,
		Answer:             answer,
		NormalizedQuestion: textnorm.Normalize(question),
	})
}

// Load reads question|answer lines from r, splitting on the first pipe so
// answers may themselves contain pipes. Blank lines and lines without a
// pipe are skipped. Entries read before a read failure are kept; the
// failure is returned so the caller can report it. Returns the number of
// entries added.
func (m *Matcher) Load(r io.Reader) (int, error) {
	added := 0
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || !strings.Contains(line, "|") {
			continue
		}
		parts := strings.SplitN(line, "|", 2)
		m.AddEntry(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]))
		added++
	}
	if err := scanner.Err(); err != nil {
		return added, fmt.Errorf("read faq source: %w", err)
	}
	return added, nil
}

// LoadFile loads question|answer pairs from a file. A missing file is a
// recoverable error; the matcher keeps whatever it already holds.
func (m *Matcher) LoadFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open faq file: %w", err)
	}
	defer f.Close()
	n, err := m.Load(f)
	if err != nil {
		return n, fmt.Errorf("load faq file %s: %w", path, err)
	}
	return n, nil
}

// ExpandSynonyms returns the union of words with the synonym values of
// every word present as a key in the table. The input set is not mutated.
func (m *Matcher) ExpandSynonyms(words map[string]struct{}) map[string]struct{} {
	expanded := make(map[string]struct{}, len(words))
	for w := range words {
		expanded[w] = struct{}{}
	}
	for w := range words {
		for _, syn := range m.synonyms[w] {
			expanded[syn] = struct{}{}
		}
	}
	return expanded
}

// Match scores query against every stored entry by Jaccard similarity
// over stop-word-filtered, synonym-expanded token sets. The best strictly
// higher score wins, so ties keep the first-seen entry. A best score below
// threshold yields an unmatched result that still carries the score.
func (m *Matcher) Match(query string, threshold float64) domain.MatchResult {
	if len(m.entries) == 0 {
		return domain.MatchResult{Answer: noEntriesAnswer, Confidence: 0}
	}

	queryWords := m.matchTokens(query)

	var best *domain.FAQEntry
	bestScore := 0.0
	for i := range m.entries {
		entryWords := m.matchTokens(m.entries[i].NormalizedQuestion)
		score := Jaccard(queryWords, entryWords)
		if score > bestScore {
			bestScore = score
			best = &m.entries[i]
		}
	}

	if best == nil || bestScore < threshold {
		return domain.MatchResult{Answer: noMatchAnswer, Confidence: bestScore}
	}
	return domain.MatchResult{
		Answer:          best.Answer,
		Confidence:      bestScore,
		MatchedQuestion: best.Question,
		Matched:         true,
	}
}

// matchTokens builds the comparable token set for one side of a match:
// normalize, drop stop words, expand synonyms. If filtering leaves nothing
// (the text was all stop words) the unfiltered token set is used instead.
func (m *Matcher) matchTokens(text string) map[string]struct{} {
	all := textnorm.TokenSet(text)
	filtered := make(map[string]struct{}, len(all))
	for w := range all {
		if _, stop := m.stopWords[w]; !stop {
			filtered[w] = struct{}{}
		}
	}
	expanded := m.ExpandSynonyms(filtered)
	if len(expanded) == 0 {
		return all
	}
	return expanded
}

// Jaccard is |A∩B| / |A∪B| over two token sets; 0 when both are empty.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := 0
	for w := range a {
		if _, ok := b[w]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// Symmetrize returns a copy of table where every synonym relation holds in
// both directions. Hand-authored tables are symmetric only by convention;
// configs loaded from disk go through this before reaching the matcher.
func Symmetrize(table map[string][]string) map[string][]string {
	sets := make(map[string]map[string]struct{}, len(table))
	add := func(key, value string) {
		if key == value {
			return
		}
		if sets[key] == nil {
			sets[key] = make(map[string]struct{})
		}
		sets[key][value] = struct{}{}
	}
	for key, values := range table {
		for _, v := range values {
			add(key, v)
			add(v, key)
		}
	}
	out := make(map[string][]string, len(sets))
	for key, values := range sets {
		list := make([]string, 0, len(values))
		for v := range values {
			list = append(list, v)
		}
		sort.Strings(list)
		out[key] = list
	}
	return out
}
