package embedding

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *OpenAI {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	t.Setenv("RAGKIT_TEST_KEY", "test-key")
	c, err := NewOpenAI(OpenAIConfig{BaseURL: srv.URL, APIKeyEnv: "RAGKIT_TEST_KEY"})
	require.NoError(t, err)
	return c
}

func TestOpenAIEmbedCompatibleShape(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"embedding": []float64{0.1, 0.2, 0.3}}},
		})
	})
	vec, err := c.Embed("hello")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, vec)
	assert.Equal(t, 3, c.Dimension())
}

func TestOpenAIEmbedOllamaShape(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"embedding": []float64{1, 2}})
	})
	vec, err := c.Embed("hello")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, vec)
	assert.Equal(t, 2, c.Dimension())
}

func TestOpenAIEmbedClientError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	})
	_, err := c.Embed("hello")
	assert.Error(t, err)
}

func TestOpenAIEmbedRetriesServerError(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"embedding": []float64{1}})
	})
	vec, err := c.Embed("hello")
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, vec)
	assert.Equal(t, 2, calls)
}

func TestOpenAIMissingKey(t *testing.T) {
	t.Setenv("RAGKIT_MISSING_KEY", "")
	_, err := NewOpenAI(OpenAIConfig{APIKeyEnv: "RAGKIT_MISSING_KEY"})
	assert.Error(t, err)
}
