// Package agent orchestrates the RAG pipeline: FAQ short-circuit,
// context retrieval, prompt assembly and answer generation.
package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"ragkit/internal/domain"
	"ragkit/internal/faq"
)

// DefaultPersona instructs the generator to stay inside the retrieved
// context and attribute its sources.
const DefaultPersona = "You are a helpful assistant with access to a knowledge base. " +
	"Cite the sources you used, say so honestly when the knowledge base has no relevant " +
	"information, and never invent facts outside the provided context."

// sourcePreviewLimit bounds the excerpt length carried in results.
const sourcePreviewLimit = 300

// Agent answers questions by retrieving context from a knowledge base and
// handing it to a generator. An optional FAQ matcher answers simple
// questions instantly without touching the generator.
type Agent struct {
	kb        domain.KnowledgeBase
	generator domain.Generator
	matcher   *faq.Matcher
	threshold float64
	topK      int
	logger    *log.Logger
}

// Option configures an Agent.
type Option func(*Agent)

// WithFAQ enables the FAQ short-circuit with the given matcher and
// confidence threshold.
func WithFAQ(matcher *faq.Matcher, threshold float64) Option {
	return func(a *Agent) {
		a.matcher = matcher
		a.threshold = threshold
	}
}

// WithTopK sets how many chunks are retrieved per question.
func WithTopK(topK int) Option {
	return func(a *Agent) {
		if topK > 0 {
			a.topK = topK
		}
	}
}

// WithLogger sets the agent logger.
func WithLogger(logger *log.Logger) Option {
	return func(a *Agent) { a.logger = logger }
}

// New creates an agent and points the generator's persona at grounded,
// source-attributed answering.
func New(kb domain.KnowledgeBase, generator domain.Generator, opts ...Option) *Agent {
	a := &Agent{
		kb:        kb,
		generator: generator,
		threshold: faq.DefaultThreshold,
		topK:      3,
		logger:    log.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.generator.SetPersona(DefaultPersona)
	return a
}

// RetrieveContext fetches the topK most relevant chunks for query.
func (a *Agent) RetrieveContext(query string, topK int) ([]domain.SearchResult, error) {
	if a.kb == nil {
		return nil, nil
	}
	return a.kb.Query(query, topK)
}

// BuildPrompt assembles the generation prompt: numbered source sections,
// the question, and instructions to stay inside the given context. With no
// context it asks the generator to decline honestly.
func (a *Agent) BuildPrompt(query string, chunks []domain.SearchResult) string {
	if len(chunks) == 0 {
		return fmt.Sprintf("The user asked: %q\n\n"+
			"There is no relevant information in the knowledge base for this question. "+
			"Respond honestly that the information is not available and suggest providing "+
			"relevant documents or rephrasing.", query)
	}

	var b strings.Builder
	b.WriteString("Here are relevant excerpts from the knowledge base:\n\n")
	for i, chunk := range chunks {
		source := chunk.Chunk.Source
		if source == "" {
			source = "unknown source"
		}
		fmt.Fprintf(&b, "[Source %d: %s]\n%s\n\n", i+1, source, chunk.Chunk.Text)
	}
	fmt.Fprintf(&b, "Question: %s\n\n", query)
	b.WriteString("Answer the question using only the context above. " +
		"Cite the sources you used (e.g. \"According to Source 1...\"). " +
		"If the context does not fully answer the question, say what is missing. " +
		"Do not use knowledge outside the provided context.")
	return b.String()
}

// Answer runs the full pipeline for query: FAQ lookup first, then
// retrieval, prompt assembly and generation.
func (a *Agent) Answer(ctx context.Context, query string) (domain.AgentResult, error) {
	if a.matcher != nil {
		if res := a.matcher.Match(query, a.threshold); res.Matched {
			a.logger.Debug("faq hit", "question", res.MatchedQuestion, "confidence", res.Confidence)
			return domain.AgentResult{
				Query:      query,
				Answer:     res.Answer,
				FromFAQ:    true,
				Confidence: res.Confidence,
			}, nil
		}
	}

	chunks, err := a.RetrieveContext(query, a.topK)
	if err != nil {
		return domain.AgentResult{}, fmt.Errorf("retrieve context: %w", err)
	}
	a.logger.Debug("retrieved context", "chunks", len(chunks))

	answer, err := a.generator.Generate(ctx, a.BuildPrompt(query, chunks))
	if err != nil {
		return domain.AgentResult{}, fmt.Errorf("generate answer: %w", err)
	}

	sources := make([]domain.SearchResult, len(chunks))
	for i, chunk := range chunks {
		sources[i] = chunk
		if len(sources[i].Chunk.Text) > sourcePreviewLimit {
			sources[i].Chunk.Text = sources[i].Chunk.Text[:sourcePreviewLimit] + "..."
		}
	}
	result := domain.AgentResult{
		Query:   query,
		Answer:  answer,
		Sources: sources,
	}
	if len(chunks) > 0 {
		result.Confidence = chunks[0].Score
	}
	return result, nil
}
