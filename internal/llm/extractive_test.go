package llm

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ragkit/internal/summarizer"
)

func TestExtractiveGenerate(t *testing.T) {
	gen := NewExtractive(summarizer.NewFrequency(summarizer.DefaultStopWords()), 1)

	prompt := "Solar panels convert sunlight into electricity. Solar output peaks at noon. " +
		"Clouds reduce generation."
	out, err := gen.Generate(context.Background(), prompt)
	require.NoError(t, err)
	assert.Contains(t, strings.ToLower(out), "solar")
}

func TestExtractiveChatIsStateless(t *testing.T) {
	gen := NewExtractive(summarizer.NewFrequency(nil), 2)
	gen.SetPersona("ignored")

	first, err := gen.Chat(context.Background(), "Rivers flow downhill. Rivers carve valleys.")
	require.NoError(t, err)
	gen.ClearHistory()
	second, err := gen.Chat(context.Background(), "Rivers flow downhill. Rivers carve valleys.")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestExtractiveDefaultsMaxSentences(t *testing.T) {
	gen := NewExtractive(summarizer.NewFrequency(nil), 0)
	assert.Equal(t, 3, gen.maxSentences)
	assert.Equal(t, "extractive", gen.Name())
}
