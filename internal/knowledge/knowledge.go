// Package knowledge wires the chunker, embedder, vector store and
// summarizer into a queryable knowledge base.
package knowledge

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"ragkit/internal/domain"
	"ragkit/internal/faq"
	"ragkit/internal/textnorm"
)

// Base is the default domain.KnowledgeBase implementation. Retrieval is
// vector search with a lexical Jaccard fallback for queries the embedder
// cannot represent.
type Base struct {
	chunker             domain.Chunker
	embedder            domain.Embedder
	store               domain.VectorStore
	summarizer          domain.Summarizer
	method              domain.ChunkMethod
	summaryMaxSentences int
	logger              *log.Logger

	documents int
	chunks    []domain.StoredChunk
}

// New creates an empty knowledge base. Method selects the chunking
// strategy used at ingest time.
func New(chunker domain.Chunker, embedder domain.Embedder, store domain.VectorStore,
	summarizer domain.Summarizer, method domain.ChunkMethod, summaryMaxSentences int,
	logger *log.Logger) *Base {
	if logger == nil {
		logger = log.Default()
	}
	return &Base{
		chunker:             chunker,
		embedder:            embedder,
		store:               store,
		summarizer:          summarizer,
		method:              method,
		summaryMaxSentences: summaryMaxSentences,
		logger:              logger,
	}
}

// IngestDocuments loads the given .txt paths (globs allowed), chunks them,
// prepares the embedder on the chunk corpus, indexes everything and
// returns a corpus summary.
func (b *Base) IngestDocuments(paths []string) (string, error) {
	var documents []document
	for _, p := range paths {
		matches, _ := filepath.Glob(p)
		if matches == nil {
			matches = []string{p}
		}
		for _, m := range matches {
			if !strings.HasSuffix(strings.ToLower(m), ".txt") {
				continue
			}
			data, err := os.ReadFile(m)
			if err != nil {
				return "", fmt.Errorf("read document %s: %w", m, err)
			}
			documents = append(documents, document{id: hashString(m), source: m, content: string(data)})
		}
	}
	if len(documents) == 0 {
		return "", fmt.Errorf("no .txt documents found in %v", paths)
	}

	var allChunks []domain.StoredChunk
	var corpus strings.Builder
	for _, d := range documents {
		chunks, err := b.chunkDocument(d.content, d.id, d.source)
		if err != nil {
			return "", err
		}
		allChunks = append(allChunks, chunks...)
		corpus.WriteString("\n")
		corpus.WriteString(d.content)
	}
	b.logger.Info("chunked documents", "documents", len(documents), "chunks", len(allChunks), "method", b.method)

	if err := b.index(allChunks); err != nil {
		return "", err
	}
	b.documents = len(documents)

	summary, err := b.summarizer.Summarize(corpus.String(), b.summaryMaxSentences)
	if err != nil {
		return "", fmt.Errorf("summarize corpus: %w", err)
	}
	return summary, nil
}

// AddDocument chunks and indexes a raw document string, returning the ids
// of the chunks that were added. The embedder is re-prepared over the full
// chunk corpus so TF-IDF vocabularies stay consistent.
func (b *Base) AddDocument(text, source string) ([]string, error) {
	chunks, err := b.chunkDocument(text, hashString(source+text), source)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("document %q produced no chunks", source)
	}
	all := append(append([]domain.StoredChunk(nil), b.chunks...), chunks...)
	if err := b.index(all); err != nil {
		return nil, err
	}
	b.documents++

	ids := make([]string, len(chunks))
	for i, ch := range chunks {
		ids[i] = ch.ID
	}
	b.logger.Info("added document", "source", source, "chunks", len(chunks))
	return ids, nil
}

// Query embeds the query and searches the store. A query that embeds to
// the zero vector, or whose vector matches nothing, falls back to lexical
// Jaccard ranking over the chunk texts.
func (b *Base) Query(query string, topK int) ([]domain.SearchResult, error) {
	vec, err := b.embedder.Embed(query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if isZero(vec) {
		return b.lexicalSearch(query, topK), nil
	}
	results, err := b.store.Search(vec, topK)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	allZero := true
	for _, r := range results {
		if r.Score > 1e-9 {
			allZero = false
			break
		}
	}
	if allZero {
		return b.lexicalSearch(query, topK), nil
	}
	return results, nil
}

// Stats describes the current contents of the knowledge base.
func (b *Base) Stats() domain.KnowledgeStats {
	return domain.KnowledgeStats{
		Documents:      b.documents,
		Chunks:         len(b.chunks),
		Dimension:      b.embedder.Dimension(),
		EmbedderName:   b.embedder.Name(),
		ChunkingMethod: b.method,
	}
}

// Clear drops all indexed content.
func (b *Base) Clear() error {
	b.chunks = nil
	b.documents = 0
	return b.store.Clear()
}

type document struct {
	id      string
	source  string
	content string
}

func (b *Base) chunkDocument(text, docID, source string) ([]domain.StoredChunk, error) {
	chunks, err := b.chunker.Chunk(text, b.method)
	if err != nil {
		return nil, fmt.Errorf("chunk document %s: %w", source, err)
	}
	stored := make([]domain.StoredChunk, len(chunks))
	for i, ch := range chunks {
		stored[i] = domain.StoredChunk{
			ID:         uuid.NewString(),
			DocumentID: docID,
			Source:     source,
			Index:      ch.ID,
			Text:       ch.Text,
			WordCount:  ch.WordCount,
			Method:     ch.Method,
		}
	}
	return stored, nil
}

// index prepares the embedder on the chunk corpus, embeds every chunk and
// rebuilds the store from scratch.
func (b *Base) index(chunks []domain.StoredChunk) error {
	texts := make([]string, len(chunks))
	for i, ch := range chunks {
		texts[i] = ch.Text
	}
	if err := b.embedder.Prepare(texts); err != nil {
		return fmt.Errorf("prepare embedder: %w", err)
	}
	// Clear before Init: Init recreates the collection on remote stores.
	if err := b.store.Clear(); err != nil {
		return fmt.Errorf("clear vector store: %w", err)
	}
	if err := b.store.Init(b.embedder.Dimension()); err != nil {
		return fmt.Errorf("init vector store: %w", err)
	}
	vectors := make([][]float64, len(chunks))
	for i := range chunks {
		vec, err := b.embedder.Embed(chunks[i].Text)
		if err != nil {
			return fmt.Errorf("embed chunk %s: %w", chunks[i].ID, err)
		}
		vectors[i] = vec
	}
	if err := b.store.Upsert(chunks, vectors); err != nil {
		return fmt.Errorf("upsert chunks: %w", err)
	}
	b.chunks = chunks
	return nil
}

func (b *Base) lexicalSearch(query string, topK int) []domain.SearchResult {
	qset := textnorm.TokenSet(query)
	results := make([]domain.SearchResult, len(b.chunks))
	for i, ch := range b.chunks {
		results[i] = domain.SearchResult{
			Chunk: ch,
			Score: faq.Jaccard(qset, textnorm.TokenSet(ch.Text)),
		}
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if topK <= 0 {
		topK = 5
	}
	if topK > len(results) {
		topK = len(results)
	}
	return results[:topK]
}

func isZero(vec []float64) bool {
	for _, v := range vec {
		if v != 0 {
			return false
		}
	}
	return true
}

func hashString(s string) string {
	h := sha1.Sum([]byte(s))
	return hex.EncodeToString(h[:8])
}
