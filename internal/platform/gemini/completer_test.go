package gemini_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/medcards/internal/generation"
	"github.com/phrazzld/medcards/internal/platform/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Path string
	Body map[string]any
}

func fakeGemini(t *testing.T, status int, body string) (*httptest.Server, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.Path = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &captured.Body)
		if !strings.HasSuffix(r.URL.Path, ":generateContent") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, captured
}

func newCompleter(t *testing.T, baseURL string) *gemini.Completer {
	t.Helper()
	c, err := gemini.NewCompleter(context.Background(), gemini.Options{
		APIKey:  "test-key",
		BaseURL: baseURL,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return c
}

func request() generation.CompletionRequest {
	return generation.CompletionRequest{
		Model:        "gemini-2.0-flash",
		SystemPrompt: "You are a medical education expert.",
		UserPrompt:   "Create detailed medical flashcards from this text segment:\n\nAsthma.",
		Temperature:  0.7,
		MaxTokens:    2500,
	}
}

func TestNewCompleter_Validation(t *testing.T) {
	_, err := gemini.NewCompleter(context.Background(), gemini.Options{APIKey: "k"}, nil)
	assert.Error(t, err)

	_, err = gemini.NewCompleter(context.Background(), gemini.Options{}, slog.Default())
	assert.ErrorIs(t, err, generation.ErrMissingAPIKey)
}

func TestCompleter_Complete_Success(t *testing.T) {
	srv, captured := fakeGemini(t, http.StatusOK, `{
		"candidates": [{
			"content": {"role": "model", "parts": [{"text": "[{\"question\":\"Q\","}, {"text": "\"answer\":\"A\"}]"}]},
			"finishReason": "STOP"
		}]
	}`)
	c := newCompleter(t, srv.URL)

	text, err := c.Complete(context.Background(), request())

	require.NoError(t, err)
	assert.Equal(t, `[{"question":"Q","answer":"A"}]`, text)
	assert.Contains(t, captured.Path, "models/gemini-2.0-flash:generateContent")

	genConfig, ok := captured.Body["generationConfig"].(map[string]any)
	require.True(t, ok, "generationConfig should be sent")
	assert.InDelta(t, 0.7, genConfig["temperature"], 1e-6)
	assert.EqualValues(t, 2500, genConfig["maxOutputTokens"])
	assert.Contains(t, captured.Body, "systemInstruction")
}

func TestCompleter_Complete_SafetyBlock(t *testing.T) {
	srv, _ := fakeGemini(t, http.StatusOK, `{"candidates": [{"finishReason": "SAFETY"}]}`)
	c := newCompleter(t, srv.URL)

	_, err := c.Complete(context.Background(), request())

	assert.ErrorIs(t, err, generation.ErrContentBlocked)
}

func TestCompleter_Complete_NoCandidates(t *testing.T) {
	srv, _ := fakeGemini(t, http.StatusOK, `{"candidates": []}`)
	c := newCompleter(t, srv.URL)

	_, err := c.Complete(context.Background(), request())

	assert.ErrorIs(t, err, generation.ErrEmptyResponse)
}

func TestCompleter_Complete_APIError(t *testing.T) {
	srv, _ := fakeGemini(t, http.StatusForbidden,
		`{"error": {"code": 403, "message": "API key not valid", "status": "PERMISSION_DENIED"}}`)
	c := newCompleter(t, srv.URL)

	_, err := c.Complete(context.Background(), request())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not valid")
}
