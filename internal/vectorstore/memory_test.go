package vectorstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ragkit/internal/domain"
)

func chunkN(id string) domain.StoredChunk {
	return domain.StoredChunk{ID: id, Text: "chunk " + id}
}

func TestMemoryInitInvalidDimension(t *testing.T) {
	s := NewMemory()
	assert.Error(t, s.Init(0))
	assert.Error(t, s.Init(-1))
}

func TestMemoryUpsertLengthMismatch(t *testing.T) {
	s := NewMemory()
	require.NoError(t, s.Init(2))
	err := s.Upsert([]domain.StoredChunk{chunkN("a")}, nil)
	assert.Error(t, err)
}

func TestMemoryUpsertDimensionMismatch(t *testing.T) {
	s := NewMemory()
	require.NoError(t, s.Init(2))
	err := s.Upsert([]domain.StoredChunk{chunkN("a")}, [][]float64{{1, 2, 3}})
	assert.Error(t, err)
}

func TestMemorySearchOrdering(t *testing.T) {
	s := NewMemory()
	require.NoError(t, s.Init(2))
	require.NoError(t, s.Upsert(
		[]domain.StoredChunk{chunkN("x"), chunkN("y"), chunkN("z")},
		[][]float64{{1, 0}, {0, 1}, {0.7, 0.7}},
	))

	results, err := s.Search([]float64{1, 0}, 3)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "x", results[0].Chunk.ID)
	assert.Equal(t, "z", results[1].Chunk.ID)
	assert.Equal(t, "y", results[2].Chunk.ID)
	assert.InDelta(t, 1.0, results[0].Score, 1e-9)
}

func TestMemorySearchTopK(t *testing.T) {
	s := NewMemory()
	require.NoError(t, s.Init(2))
	require.NoError(t, s.Upsert(
		[]domain.StoredChunk{chunkN("a"), chunkN("b"), chunkN("c")},
		[][]float64{{1, 0}, {0, 1}, {1, 1}},
	))

	results, err := s.Search([]float64{1, 0}, 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	// topK <= 0 falls back to the default of 5, capped by contents.
	results, err = s.Search([]float64{1, 0}, 0)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestMemorySearchTiesKeepInsertionOrder(t *testing.T) {
	s := NewMemory()
	require.NoError(t, s.Init(2))
	require.NoError(t, s.Upsert(
		[]domain.StoredChunk{chunkN("first"), chunkN("second")},
		[][]float64{{2, 0}, {4, 0}},
	))
	results, err := s.Search([]float64{1, 0}, 2)
	require.NoError(t, err)
	assert.Equal(t, "first", results[0].Chunk.ID)
	assert.Equal(t, "second", results[1].Chunk.ID)
}

func TestMemoryClear(t *testing.T) {
	s := NewMemory()
	require.NoError(t, s.Init(2))
	require.NoError(t, s.Upsert([]domain.StoredChunk{chunkN("a")}, [][]float64{{1, 0}}))
	require.NoError(t, s.Clear())

	results, err := s.Search([]float64{1, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestMemoryInitResetsContents(t *testing.T) {
	s := NewMemory()
	require.NoError(t, s.Init(2))
	require.NoError(t, s.Upsert([]domain.StoredChunk{chunkN("a")}, [][]float64{{1, 0}}))
	require.NoError(t, s.Init(3))

	results, err := s.Search([]float64{1, 0, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}
