package domain

import "context"

// Embedder converts free text into a numeric vector representation.
// Implementations may require a preparation phase over the corpus.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	Embed(text string) ([]float64, error)
}

// Chunker splits raw document text into chunks suitable for retrieval indexing.
type Chunker interface {
	Chunk(text string, method ChunkMethod) ([]Chunk, error)
}

// VectorStore persists vectors and supports similarity search.
type VectorStore interface {
	Init(dimension int) error
	Upsert(chunks []StoredChunk, vectors [][]float64) error
	Search(vector []float64, topK int) ([]SearchResult, error)
	Clear() error
}

// Summarizer produces a brief summary of the provided text.
type Summarizer interface {
	Summarize(text string, maxSentences int) (string, error)
}

// Generator produces free text from a prompt, optionally keeping a
// conversation history across Chat calls.
type Generator interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
	Chat(ctx context.Context, message string) (string, error)
	SetPersona(persona string)
	ClearHistory()
}

// KnowledgeBase is the retrieval side of the pipeline: documents go in,
// relevant chunks come out.
type KnowledgeBase interface {
	IngestDocuments(paths []string) (summary string, err error)
	AddDocument(text, source string) ([]string, error)
	Query(query string, topK int) ([]SearchResult, error)
	Stats() KnowledgeStats
	Clear() error
}
