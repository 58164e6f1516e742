package domain

// ChunkMethod selects a chunking strategy.
type ChunkMethod string

const (
	// ChunkByWords uses a fixed-size sliding window over whitespace tokens.
	ChunkByWords ChunkMethod = "words"
	// ChunkBySentences groups whole sentences up to the target word count.
	ChunkBySentences ChunkMethod = "sentences"
)

// Chunk is one segment of a chunked document. ID is sequential and
// zero-based within a single chunking call. StartWord/EndWord are only set
// for word-based chunks; SentenceCount only for sentence-based ones.
type Chunk struct {
	ID            int
	Text          string
	WordCount     int
	Method        string
	StartWord     int
	EndWord       int
	SentenceCount int
}

const (
	MethodWordBased     = "word-based"
	MethodSentenceBased = "sentence-based"
)

// StoredChunk is a chunk as held by a vector store, carrying provenance.
type StoredChunk struct {
	ID         string
	DocumentID string
	Source     string
	Index      int
	Text       string
	WordCount  int
	Method     string
}

// SearchResult is a matching stored chunk with a similarity score.
type SearchResult struct {
	Chunk StoredChunk
	Score float64
}

// FAQEntry is one stored question/answer pair. NormalizedQuestion is the
// question after text normalization; entries are immutable once added.
type FAQEntry struct {
	Question           string
	Answer             string
	NormalizedQuestion string
}

// MatchResult is the outcome of matching one query against the FAQ set.
// Matched is false when no entry cleared the threshold; Confidence then
// still carries the best score seen.
type MatchResult struct {
	Answer          string
	Confidence      float64
	MatchedQuestion string
	Matched         bool
}

// KnowledgeStats describes the current contents of a knowledge base.
type KnowledgeStats struct {
	Documents      int
	Chunks         int
	Dimension      int
	EmbedderName   string
	ChunkingMethod ChunkMethod
}

// AgentResult is a complete RAG answer with its supporting sources.
type AgentResult struct {
	Query      string
	Answer     string
	Sources    []SearchResult
	FromFAQ    bool
	Confidence float64
}
