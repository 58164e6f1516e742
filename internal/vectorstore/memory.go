// Package vectorstore provides domain.VectorStore implementations: an
// in-memory brute-force store and a minimal Qdrant REST client.
package vectorstore

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"ragkit/internal/domain"
	"ragkit/internal/similarity"
)

// Memory is an in-memory vector store using brute-force cosine similarity.
// Safe for concurrent use.
type Memory struct {
	mu        sync.RWMutex
	dimension int
	vectors   [][]float64
	chunks    []domain.StoredChunk
}

// NewMemory creates an empty in-memory store. Init must be called with the
// embedding dimension before Upsert.
func NewMemory() *Memory { return &Memory{} }

// Init fixes the vector dimension and drops any existing contents.
func (s *Memory) Init(dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimension = dimension
	s.vectors = nil
	s.chunks = nil
	return nil
}

// Upsert appends chunks with their vectors. Every vector must match the
// dimension given to Init.
func (s *Memory) Upsert(chunks []domain.StoredChunk, vectors [][]float64) error {
	if len(chunks) != len(vectors) {
		return errors.New("chunks and vectors length mismatch")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range vectors {
		if len(v) != s.dimension {
			return fmt.Errorf("vector dimension %d does not match store dimension %d", len(v), s.dimension)
		}
	}
	s.chunks = append(s.chunks, chunks...)
	s.vectors = append(s.vectors, vectors...)
	return nil
}

// Search returns the topK stored chunks most similar to vector, ordered by
// score descending. Ties keep insertion order.
func (s *Memory) Search(vector []float64, topK int) ([]domain.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if topK <= 0 {
		topK = 5
	}
	results := make([]domain.SearchResult, len(s.vectors))
	for i := range s.vectors {
		score, err := similarity.CosineSimilarity(s.vectors[i], vector)
		if err != nil {
			return nil, err
		}
		results[i] = domain.SearchResult{Chunk: s.chunks[i], Score: score}
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if topK > len(results) {
		topK = len(results)
	}
	return results[:topK], nil
}

// Clear drops all stored chunks and vectors but keeps the dimension.
func (s *Memory) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vectors = nil
	s.chunks = nil
	return nil
}
