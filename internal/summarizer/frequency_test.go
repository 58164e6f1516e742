package summarizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizePicksFrequentTopic(t *testing.T) {
	s := NewFrequency(DefaultStopWords())
	text := "Cats purr softly. Cats nap often. Dogs bark loudly."
	summary, err := s.Summarize(text, 1)
	require.NoError(t, err)
	assert.Contains(t, summary, "Cats")
	assert.NotContains(t, summary, "Dogs")
}

func TestSummarizeKeepsOriginalOrder(t *testing.T) {
	s := NewFrequency(DefaultStopWords())
	text := "Alpha comes first. Beta comes second. Gamma comes third."
	summary, err := s.Summarize(text, 3)
	require.NoError(t, err)

	first := strings.Index(summary, "Alpha")
	second := strings.Index(summary, "Beta")
	third := strings.Index(summary, "Gamma")
	assert.Less(t, first, second)
	assert.Less(t, second, third)
}

func TestSummarizeMaxSentencesCapped(t *testing.T) {
	s := NewFrequency(DefaultStopWords())
	summary, err := s.Summarize("Only one sentence here.", 5)
	require.NoError(t, err)
	assert.Equal(t, "Only one sentence here.", summary)
}

func TestSummarizeEmptyText(t *testing.T) {
	s := NewFrequency(DefaultStopWords())
	summary, err := s.Summarize("   ", 3)
	require.NoError(t, err)
	assert.Equal(t, "", summary)
}

func TestSummarizeNonPositiveMaxDefaults(t *testing.T) {
	s := NewFrequency(DefaultStopWords())
	text := "One. Two. Three. Four. Five. Six. Seven."
	summary, err := s.Summarize(text, 0)
	require.NoError(t, err)
	// Default keeps five of the seven sentences.
	assert.Len(t, strings.Split(summary, ". "), 5)
}
