package anthropic

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, reply string, status int) (*anthropicClient, *messageRequest) {
	t.Helper()
	got := &messageRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "key", r.Header.Get("x-api-key"))
		_ = json.NewDecoder(r.Body).Decode(got)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)
	return newClient("key", srv.URL), got
}

func TestTranslateToCommand(t *testing.T) {
	c, got := newTestClient(t, `{"content":[{"type":"text","text":"  /reserve 12\n"}]}`, http.StatusOK)

	cmd, err := c.TranslateToCommand(context.Background(), "put twelve aside for order 88")

	require.NoError(t, err)
	assert.Equal(t, "/reserve 12", cmd)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "put twelve aside for order 88", got.Messages[0].Content)
	assert.Equal(t, model, got.Model)
}

func TestTranslateToCommand_CodeFenced(t *testing.T) {
	c, _ := newTestClient(t, `{"content":[{"text":"`+"`/ship 3`"+`"}]}`, http.StatusOK)

	cmd, err := c.TranslateToCommand(context.Background(), "sent three out")

	require.NoError(t, err)
	assert.Equal(t, "/ship 3", cmd)
}

func TestTranslateToCommand_NotACommand(t *testing.T) {
	c, _ := newTestClient(t, `{"content":[{"text":"I am not sure"}]}`, http.StatusOK)

	_, err := c.TranslateToCommand(context.Background(), "??")

	assert.Error(t, err)
}

func TestTranslateToCommand_APIError(t *testing.T) {
	c, _ := newTestClient(t, `{"error":{"message":"overloaded"}}`, http.StatusServiceUnavailable)

	_, err := c.TranslateToCommand(context.Background(), "add 5")

	assert.Error(t, err)
}

func TestTranslateToCommand_EmptyContent(t *testing.T) {
	c, _ := newTestClient(t, `{"content":[]}`, http.StatusOK)

	_, err := c.TranslateToCommand(context.Background(), "add 5")

	assert.Error(t, err)
}
