package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

// chatServer replies with a canned completion and records every request body.
func chatServer(t *testing.T, reply func(n int) string) (*httptest.Server, *[]capturedRequest) {
	t.Helper()
	var requests []capturedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req capturedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		requests = append(requests, req)

		fmt.Fprintf(w, `{"choices":[{"message":{"role":"assistant","content":%q}}]}`,
			reply(len(requests)))
	}))
	t.Cleanup(srv.Close)
	return srv, &requests
}

func newTestChat(t *testing.T, baseURL string) *OpenAI {
	t.Helper()
	t.Setenv("RAGKIT_TEST_KEY", "test-key")
	c, err := NewOpenAI(OpenAIConfig{
		BaseURL:   baseURL,
		APIKeyEnv: "RAGKIT_TEST_KEY",
		Model:     "test-model",
	})
	require.NoError(t, err)
	return c
}

func TestNewOpenAIMissingKey(t *testing.T) {
	t.Setenv("RAGKIT_EMPTY_KEY", "")
	_, err := NewOpenAI(OpenAIConfig{APIKeyEnv: "RAGKIT_EMPTY_KEY"})
	assert.Error(t, err)
}

func TestGenerateOneShot(t *testing.T) {
	srv, requests := chatServer(t, func(int) string { return "hello there" })
	c := newTestChat(t, srv.URL)
	c.SetPersona("be brief")

	out, err := c.Generate(context.Background(), "say hello")
	require.NoError(t, err)
	assert.Equal(t, "hello there", out)
	assert.Equal(t, 1, c.Calls())

	require.Len(t, *requests, 1)
	msgs := (*requests)[0].Messages
	require.Len(t, msgs, 2)
	assert.Equal(t, chatMessage{Role: "system", Content: "be brief"}, msgs[0])
	assert.Equal(t, chatMessage{Role: "user", Content: "say hello"}, msgs[1])
	assert.Equal(t, "test-model", (*requests)[0].Model)
}

func TestGenerateDoesNotTouchHistory(t *testing.T) {
	srv, requests := chatServer(t, func(int) string { return "ok" })
	c := newTestChat(t, srv.URL)

	_, err := c.Generate(context.Background(), "first")
	require.NoError(t, err)
	_, err = c.Generate(context.Background(), "second")
	require.NoError(t, err)

	// Each one-shot request carries only its own prompt.
	require.Len(t, *requests, 2)
	assert.Len(t, (*requests)[1].Messages, 1)
}

func TestChatAccumulatesHistory(t *testing.T) {
	srv, requests := chatServer(t, func(n int) string { return fmt.Sprintf("reply %d", n) })
	c := newTestChat(t, srv.URL)
	c.SetPersona("persona")

	_, err := c.Chat(context.Background(), "one")
	require.NoError(t, err)
	out, err := c.Chat(context.Background(), "two")
	require.NoError(t, err)
	assert.Equal(t, "reply 2", out)

	require.Len(t, *requests, 2)
	msgs := (*requests)[1].Messages
	// system + first user turn + first reply + second user turn.
	require.Len(t, msgs, 4)
	assert.Equal(t, "system", msgs[0].Role)
	assert.Equal(t, chatMessage{Role: "user", Content: "one"}, msgs[1])
	assert.Equal(t, chatMessage{Role: "assistant", Content: "reply 1"}, msgs[2])
	assert.Equal(t, chatMessage{Role: "user", Content: "two"}, msgs[3])
}

func TestChatHistoryBounded(t *testing.T) {
	srv, requests := chatServer(t, func(int) string { return "ok" })
	c := newTestChat(t, srv.URL)

	for i := 0; i < historyLimit; i++ {
		_, err := c.Chat(context.Background(), fmt.Sprintf("turn %d", i))
		require.NoError(t, err)
	}

	last := (*requests)[len(*requests)-1].Messages
	// history is trimmed to the limit, plus the new user message.
	assert.LessOrEqual(t, len(last), historyLimit+1)
}

func TestClearHistory(t *testing.T) {
	srv, requests := chatServer(t, func(int) string { return "ok" })
	c := newTestChat(t, srv.URL)

	_, err := c.Chat(context.Background(), "one")
	require.NoError(t, err)
	c.ClearHistory()
	_, err = c.Chat(context.Background(), "two")
	require.NoError(t, err)

	msgs := (*requests)[1].Messages
	require.Len(t, msgs, 1)
	assert.Equal(t, "two", msgs[0].Content)
}

func TestCompleteServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	t.Cleanup(srv.Close)

	c := newTestChat(t, srv.URL)
	_, err := c.Generate(context.Background(), "hi")
	assert.ErrorContains(t, err, "chat completion failed")
	assert.Zero(t, c.Calls())
}

func TestCompleteEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	t.Cleanup(srv.Close)

	c := newTestChat(t, srv.URL)
	_, err := c.Generate(context.Background(), "hi")
	assert.ErrorContains(t, err, "no completion returned")
}
