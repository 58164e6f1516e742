package embedding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTFIDFPrepareEmptyCorpus(t *testing.T) {
	e := NewTFIDF()
	assert.Error(t, e.Prepare(nil))
}

func TestTFIDFEmbedBeforePrepare(t *testing.T) {
	e := NewTFIDF()
	_, err := e.Embed("hello")
	assert.Error(t, err)
}

func TestTFIDFPrepareAndEmbed(t *testing.T) {
	e := NewTFIDF()
	require.NoError(t, e.Prepare([]string{
		"cats sit quietly",
		"dogs bark loudly",
	}))
	// cats, bark, dogs, loudly, quietly, sit: six distinct non-stop terms.
	assert.Equal(t, 6, e.Dimension())

	vec, err := e.Embed("cats sit")
	require.NoError(t, err)
	require.Len(t, vec, 6)

	nonzero := 0
	norm := 0.0
	for _, v := range vec {
		if v != 0 {
			nonzero++
		}
		norm += v * v
	}
	assert.Equal(t, 2, nonzero)
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-9)
}

func TestTFIDFUnknownTokensEmbedToZero(t *testing.T) {
	e := NewTFIDF()
	require.NoError(t, e.Prepare([]string{"cats sit quietly"}))

	vec, err := e.Embed("zebra xylophone")
	require.NoError(t, err)
	for _, v := range vec {
		assert.Zero(t, v)
	}
}

func TestTFIDFStopWordsExcluded(t *testing.T) {
	e := NewTFIDF()
	require.NoError(t, e.Prepare([]string{"the cat is on the mat"}))
	// "the", "is", "on" are stop words; only cat and mat survive.
	assert.Equal(t, 2, e.Dimension())
}

func TestTFIDFAllStopWordCorpus(t *testing.T) {
	e := NewTFIDF()
	assert.Error(t, e.Prepare([]string{"the and or but"}))
}

func TestTFIDFName(t *testing.T) {
	assert.Equal(t, "tfidf", NewTFIDF().Name())
}
