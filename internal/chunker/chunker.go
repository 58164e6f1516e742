// Package chunker splits documents into overlapping word- or
// sentence-based segments for retrieval indexing.
package chunker

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"ragkit/internal/domain"
)

// ErrNoChunks is returned by Stats for an empty chunk slice.
var ErrNoChunks = errors.New("no chunks to summarize")

// sentenceEndRe marks a sentence boundary: terminal punctuation followed
// by whitespace. Abbreviations like "Dr." or "U.S." mis-split under this
// heuristic; downstream overlap logic depends on that exact behavior, so
// it stays as is.
var sentenceEndRe = regexp.MustCompile(`[.!?]\s+`)

// TextChunker splits text into chunks of roughly chunkSize words, with
// overlap words shared between consecutive chunks.
type TextChunker struct {
	chunkSize int
	overlap   int
}

// New creates a chunker, clamping nonsensical settings: a non-positive
// chunk size falls back to 200 words and an overlap that is negative or
// not smaller than the chunk size is reduced to a quarter of it.
func New(chunkSize, overlap int) *TextChunker {
	if chunkSize <= 0 {
		chunkSize = 200
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= chunkSize {
		overlap = chunkSize / 4
	}
	return &TextChunker{chunkSize: chunkSize, overlap: overlap}
}

// ChunkSize reports the target words per chunk.
func (c *TextChunker) ChunkSize() int { return c.chunkSize }

// Overlap reports the words shared between consecutive chunks.
func (c *TextChunker) Overlap() int { return c.overlap }

// SplitIntoSentences cuts text after each sentence-ending punctuation mark
// that is followed by whitespace. Results are trimmed; empty pieces are
// dropped. Text without any boundary comes back as a single sentence.
func SplitIntoSentences(text string) []string {
	var sentences []string
	start := 0
	for _, loc := range sentenceEndRe.FindAllStringIndex(text, -1) {
		// Cut just past the punctuation mark, before the whitespace.
		piece := strings.TrimSpace(text[start : loc[0]+1])
		if piece != "" {
			sentences = append(sentences, piece)
		}
		start = loc[1]
	}
	if rest := strings.TrimSpace(text[start:]); rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}

// CountWords counts whitespace-delimited tokens.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// Chunk dispatches to the requested strategy. Unknown methods are a
// caller error.
func (c *TextChunker) Chunk(text string, method domain.ChunkMethod) ([]domain.Chunk, error) {
	switch method {
	case domain.ChunkByWords:
		return c.ChunkByWords(text), nil
	case domain.ChunkBySentences:
		return c.ChunkBySentences(text), nil
	default:
		return nil, fmt.Errorf("unknown chunk method %q: use %q or %q",
			method, domain.ChunkByWords, domain.ChunkBySentences)
	}
}

// ChunkByWords slides a fixed window over the word sequence. Each chunk
// takes up to chunkSize words; the next window starts overlap words before
// the previous one ended. The loop stops once a chunk reaches the final
// word, and a window that fails to advance terminates instead of spinning.
func (c *TextChunker) ChunkByWords(text string) []domain.Chunk {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var chunks []domain.Chunk
	start := 0
	for start < len(words) {
		end := start + c.chunkSize
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, domain.Chunk{
			ID:        len(chunks),
			Text:      strings.Join(words[start:end], " "),
			WordCount: end - start,
			Method:    domain.MethodWordBased,
			StartWord: start,
			EndWord:   end,
		})
		if end == len(words) {
			break
		}
		next := end - c.overlap
		if next <= start {
			break
		}
		start = next
	}
	return chunks
}

// ChunkBySentences accumulates whole sentences until adding the next one
// would push the chunk past chunkSize words, then flushes and seeds the
// next chunk with the last two sentences of the previous one. A single
// sentence longer than chunkSize is never split; it becomes an oversized
// chunk of its own.
func (c *TextChunker) ChunkBySentences(text string) []domain.Chunk {
	sentences := SplitIntoSentences(text)
	if len(sentences) == 0 {
		return nil
	}

	var chunks []domain.Chunk
	var current []string
	wordCount := 0

	flush := func() {
		chunks = append(chunks, domain.Chunk{
			ID:            len(chunks),
			Text:          strings.Join(current, " "),
			WordCount:     wordCount,
			Method:        domain.MethodSentenceBased,
			SentenceCount: len(current),
		})
	}

	for _, sentence := range sentences {
		n := CountWords(sentence)
		if wordCount+n > c.chunkSize && len(current) > 0 {
			flush()
			// Carry the tail of the flushed chunk forward for context.
			carry := current
			if len(carry) > 2 {
				carry = carry[len(carry)-2:]
			}
			current = append([]string(nil), carry...)
			wordCount = 0
			for _, s := range current {
				wordCount += CountWords(s)
			}
		}
		current = append(current, sentence)
		wordCount += n
	}
	if len(current) > 0 {
		flush()
	}
	return chunks
}

// Stats summarizes a chunking run.
type Stats struct {
	TotalChunks      int
	AvgWordsPerChunk float64
	MinWords         int
	MaxWords         int
	TotalWords       int
	Method           string
}

// ChunkStats computes size statistics over chunks. An empty slice is a
// caller error; check before calling.
func ChunkStats(chunks []domain.Chunk) (Stats, error) {
	if len(chunks) == 0 {
		return Stats{}, ErrNoChunks
	}
	s := Stats{
		TotalChunks: len(chunks),
		MinWords:    chunks[0].WordCount,
		MaxWords:    chunks[0].WordCount,
		Method:      chunks[0].Method,
	}
	for _, ch := range chunks {
		s.TotalWords += ch.WordCount
		if ch.WordCount < s.MinWords {
			s.MinWords = ch.WordCount
		}
		if ch.WordCount > s.MaxWords {
			s.MaxWords = ch.WordCount
		}
	}
	s.AvgWordsPerChunk = float64(s.TotalWords) / float64(len(chunks))
	return s, nil
}
