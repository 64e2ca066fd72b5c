package generation_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/phrazzld/medcards/internal/domain"
	"github.com/phrazzld/medcards/internal/generation"
	"github.com/phrazzld/medcards/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedChunk struct {
	outcome generation.Outcome
	cards   int
}

// captureRecorder collects every ChunkProcessed call.
type captureRecorder struct {
	mu    sync.Mutex
	calls []recordedChunk
}

func (r *captureRecorder) ChunkProcessed(outcome generation.Outcome, _ time.Duration, cards int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, recordedChunk{outcome: outcome, cards: cards})
}

func (r *captureRecorder) outcomes() []generation.Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]generation.Outcome, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.outcome
	}
	return out
}

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func newProcessor(t *testing.T, completer generation.Completer, rec generation.Recorder, buf *bytes.Buffer) *generation.Processor {
	t.Helper()
	p, err := generation.NewProcessor(completer, generation.DefaultSettings("gpt-3.5-turbo"), rec, newTestLogger(buf))
	require.NoError(t, err)
	return p
}

const chunkText = "Heart failure is a clinical syndrome caused by structural or functional cardiac abnormality."

func TestNewProcessor_Validation(t *testing.T) {
	completer := &mocks.MockCompleter{}

	tests := []struct {
		name      string
		completer generation.Completer
		settings  generation.Settings
	}{
		{"nil completer", nil, generation.DefaultSettings("m")},
		{"empty model", completer, generation.DefaultSettings(" ")},
		{"zero max tokens", completer, generation.Settings{Model: "m", Temperature: 0.7}},
		{"negative temperature", completer, generation.Settings{Model: "m", Temperature: -1, MaxTokens: 10}},
		{"negative timeout", completer, generation.Settings{Model: "m", MaxTokens: 10, RequestTimeout: -time.Second}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := generation.NewProcessor(tt.completer, tt.settings, nil, nil)
			assert.ErrorIs(t, err, generation.ErrInvalidConfig)
			assert.Nil(t, p)
		})
	}
}

func TestProcessor_Process_Request(t *testing.T) {
	completer := mocks.NewMockCompleterWithResponse(`[{"question":"Q","answer":"A"}]`)
	var buf bytes.Buffer
	p := newProcessor(t, completer, nil, &buf)

	p.Process(context.Background(), chunkText, 0)

	require.Equal(t, 1, completer.CallCount())
	req := completer.CompleteCalls.Requests[0]
	assert.Equal(t, "gpt-3.5-turbo", req.Model)
	assert.Equal(t, generation.SystemPrompt, req.SystemPrompt)
	assert.Equal(t, "Create detailed medical flashcards from this text segment:\n\n"+chunkText, req.UserPrompt)
	assert.InDelta(t, 0.7, req.Temperature, 1e-9)
	assert.Equal(t, 2500, req.MaxTokens)
}

func TestProcessor_Process_ComplexChunkUsesConfiguredModel(t *testing.T) {
	completer := mocks.NewMockCompleterWithResponse(`[]`)
	var buf bytes.Buffer
	p := newProcessor(t, completer, nil, &buf)

	p.Process(context.Background(), "Pathophysiology of the differential diagnosis of chest pain and its clinical reasoning.", 0)

	require.Equal(t, 1, completer.CallCount())
	assert.Equal(t, "gpt-3.5-turbo", completer.CompleteCalls.Requests[0].Model)
}

func TestProcessor_Process_LogsClassification(t *testing.T) {
	tests := []struct {
		name    string
		chunk   string
		complex bool
	}{
		{
			name:    "complex chunk",
			chunk:   "Pathophysiology of the differential diagnosis of chest pain and its clinical reasoning.",
			complex: true,
		},
		{
			name:    "plain chunk",
			chunk:   chunkText,
			complex: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			completer := mocks.NewMockCompleterWithResponse(`[{"question":"Q","answer":"A"}]`)
			var buf bytes.Buffer
			p := newProcessor(t, completer, nil, &buf)

			cards := p.Process(context.Background(), tc.chunk, 0)
			require.Len(t, cards, 1)

			var entry map[string]any
			for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
				var candidate map[string]any
				require.NoError(t, json.Unmarshal([]byte(line), &candidate))
				if candidate["msg"] == "chunk processed" {
					entry = candidate
				}
			}
			require.NotNil(t, entry, "expected a chunk processed log line")
			assert.Equal(t, tc.complex, entry["complex"])
			assert.Equal(t, string(generation.OutcomeParsed), entry["outcome"])
		})
	}
}

func TestProcessor_Process_Outcomes(t *testing.T) {
	tests := []struct {
		name      string
		response  string
		err       error
		want      []domain.Flashcard
		outcome   generation.Outcome
		logSubstr string
	}{
		{
			name:     "valid array",
			response: `[{"question":"What is HF?","answer":"A syndrome."},{"question":"NYHA classes?","answer":"I to IV."}]`,
			want: []domain.Flashcard{
				{Question: "What is HF?", Answer: "A syndrome."},
				{Question: "NYHA classes?", Answer: "I to IV."},
			},
			outcome: generation.OutcomeParsed,
		},
		{
			name:     "incomplete cards filtered",
			response: `[{"question":"Q1","answer":""},{"question":"Q2","answer":"A2"}]`,
			want:     []domain.Flashcard{{Question: "Q2", Answer: "A2"}},
			outcome:  generation.OutcomeParsed,
		},
		{
			name:      "salvaged from malformed json",
			response:  `[{"question": "Q1", "answer": "A1"}, {"question": "Q2", "answer": "A2"`,
			want:      []domain.Flashcard{{Question: "Q1", Answer: "A1"}, {Question: "Q2", Answer: "A2"}},
			outcome:   generation.OutcomeSalvaged,
			logSubstr: "salvaged flashcards from malformed response",
		},
		{
			name:      "unsalvageable prose",
			response:  "I'm sorry, I cannot help with that.",
			outcome:   generation.OutcomeUnparseable,
			logSubstr: "no flashcards could be salvaged from response",
		},
		{
			name:      "empty content",
			response:  "   ",
			outcome:   generation.OutcomeEmptyResponse,
			logSubstr: "language model returned no content",
		},
		{
			name:      "completer reports empty response",
			err:       generation.ErrEmptyResponse,
			outcome:   generation.OutcomeEmptyResponse,
			logSubstr: "language model returned no content",
		},
		{
			name:      "object instead of array",
			response:  `{"question":"Q","answer":"A"}`,
			outcome:   generation.OutcomeInvalidFormat,
			logSubstr: "not a JSON array",
		},
		{
			name:      "upstream failure",
			err:       errors.New("status 401: invalid key sk-test1234567890"),
			outcome:   generation.OutcomeUpstreamError,
			logSubstr: "chunk generation failed",
		},
		{
			name:      "content blocked",
			err:       generation.ErrContentBlocked,
			outcome:   generation.OutcomeUpstreamError,
			logSubstr: "chunk generation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer := &mocks.MockCompleter{Response: tt.response, Err: tt.err}
			rec := &captureRecorder{}
			var buf bytes.Buffer
			p := newProcessor(t, completer, rec, &buf)

			got := p.Process(context.Background(), chunkText, 4)

			if tt.want == nil {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, tt.want, got)
			}
			require.Len(t, rec.calls, 1)
			assert.Equal(t, tt.outcome, rec.calls[0].outcome)
			assert.Equal(t, len(got), rec.calls[0].cards)
			if tt.logSubstr != "" {
				assert.Contains(t, buf.String(), tt.logSubstr)
			}
			assert.Contains(t, buf.String(), `"chunk_index":4`)
		})
	}
}

func TestProcessor_Process_RedactsUpstreamErrors(t *testing.T) {
	completer := mocks.NewMockCompleterWithError(errors.New("Incorrect API key provided: sk-abcdef1234567890"))
	var buf bytes.Buffer
	p := newProcessor(t, completer, nil, &buf)

	p.Process(context.Background(), chunkText, 0)

	assert.NotContains(t, buf.String(), "sk-abcdef1234567890")
	assert.Contains(t, buf.String(), "[REDACTED_KEY]")
}

func TestProcessor_Process_RequestTimeout(t *testing.T) {
	completer := &mocks.MockCompleter{Delay: time.Second, Response: `[]`}
	settings := generation.DefaultSettings("m")
	settings.RequestTimeout = 20 * time.Millisecond
	rec := &captureRecorder{}
	var buf bytes.Buffer
	p, err := generation.NewProcessor(completer, settings, rec, newTestLogger(&buf))
	require.NoError(t, err)

	start := time.Now()
	got := p.Process(context.Background(), chunkText, 0)

	assert.Empty(t, got)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.Equal(t, []generation.Outcome{generation.OutcomeUpstreamError}, rec.outcomes())
	assert.True(t, strings.Contains(buf.String(), "deadline exceeded"))
}
