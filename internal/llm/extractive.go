package llm

import (
	"context"

	"ragkit/internal/domain"
)

// Extractive is an offline generator that answers by summarizing the
// prompt it is given. With RAG prompts the prompt body is retrieved
// context, so the summary reads as an extractive answer. It keeps the
// workshop usable without any API key.
type Extractive struct {
	summarizer   domain.Summarizer
	maxSentences int
}

// NewExtractive creates an extractive generator backed by the given
// summarizer.
func NewExtractive(summarizer domain.Summarizer, maxSentences int) *Extractive {
	if maxSentences <= 0 {
		maxSentences = 3
	}
	return &Extractive{summarizer: summarizer, maxSentences: maxSentences}
}

// Name returns the identifier of this generator implementation.
func (e *Extractive) Name() string { return "extractive" }

// Generate summarizes the prompt.
func (e *Extractive) Generate(_ context.Context, prompt string) (string, error) {
	return e.summarizer.Summarize(prompt, e.maxSentences)
}

// Chat behaves like Generate; the extractive generator keeps no history.
func (e *Extractive) Chat(ctx context.Context, message string) (string, error) {
	return e.Generate(ctx, message)
}

// SetPersona is a no-op; extraction has no persona.
func (e *Extractive) SetPersona(string) {}

// ClearHistory is a no-op; nothing is retained between calls.
func (e *Extractive) ClearHistory() {}
