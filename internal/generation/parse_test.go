package generation

import (
	"testing"

	"github.com/phrazzld/medcards/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlashcards(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []domain.Flashcard
		wantErr error
	}{
		{
			name: "array of cards",
			raw:  `[{"question":"What is angina?","answer":"Chest pain from myocardial ischaemia."},{"question":"First-line for stable angina?","answer":"GTN spray and a beta blocker."}]`,
			want: []domain.Flashcard{
				{Question: "What is angina?", Answer: "Chest pain from myocardial ischaemia."},
				{Question: "First-line for stable angina?", Answer: "GTN spray and a beta blocker."},
			},
		},
		{
			name: "code fenced",
			raw:  "```json\n[{\"question\":\"Q1\",\"answer\":\"A1\"}]\n```",
			want: []domain.Flashcard{{Question: "Q1", Answer: "A1"}},
		},
		{
			name: "bare code fence with whitespace",
			raw:  "  ```\n[{\"question\":\"Q1\",\"answer\":\"A1\"}]\n```  ",
			want: []domain.Flashcard{{Question: "Q1", Answer: "A1"}},
		},
		{
			name: "empty array",
			raw:  `[]`,
			want: []domain.Flashcard{},
		},
		{
			name: "incomplete and malformed elements are skipped",
			raw:  `[{"question":"Q1","answer":""},{"question":"  ","answer":"A"},"text",42,{"question":"Q2","answer":"A2","extra":true}]`,
			want: []domain.Flashcard{{Question: "Q2", Answer: "A2"}},
		},
		{
			name:    "object instead of array",
			raw:     `{"question":"Q1","answer":"A1"}`,
			wantErr: ErrNotArray,
		},
		{
			name:    "string instead of array",
			raw:     `"no cards today"`,
			wantErr: ErrNotArray,
		},
		{
			name:    "not json",
			raw:     `Here are your flashcards: 1. What is angina?`,
			wantErr: ErrInvalidResponse,
		},
		{
			name:    "truncated array",
			raw:     `[{"question":"Q1","answer":"A1"},{"question":"Q2","ans`,
			wantErr: ErrInvalidResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFlashcards(tt.raw)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSalvage(t *testing.T) {
	t.Run("recovers pairs from truncated output", func(t *testing.T) {
		raw := `[{"question": "What is sepsis?", "answer": "Life-threatening organ dysfunction."},
{"question": "qSOFA criteria?", "answer": "RR>=22, altered mentation, SBP<=100."},
{"question": "Lactate thresh`
		got := Salvage(raw)
		assert.Equal(t, []domain.Flashcard{
			{Question: "What is sepsis?", Answer: "Life-threatening organ dysfunction."},
			{Question: "qSOFA criteria?", Answer: "RR>=22, altered mentation, SBP<=100."},
		}, got)
	})

	t.Run("surrounding prose is ignored", func(t *testing.T) {
		raw := `Sure! Here you go: "question": "Q1", "answer": "A1" and also "question":"Q2","answer":"A2". Hope that helps`
		got := Salvage(raw)
		assert.Equal(t, []domain.Flashcard{
			{Question: "Q1", Answer: "A1"},
			{Question: "Q2", Answer: "A2"},
		}, got)
	})

	t.Run("undecodable match is skipped", func(t *testing.T) {
		// an invalid escape inside the answer makes the match fail to decode
		raw := `"question": "Q1", "answer": "bad \q escape" "question": "Q2", "answer": "A2"`
		got := Salvage(raw)
		assert.Equal(t, []domain.Flashcard{{Question: "Q2", Answer: "A2"}}, got)
	})

	t.Run("no matches", func(t *testing.T) {
		assert.Empty(t, Salvage("I could not produce any flashcards for this text."))
		assert.Empty(t, Salvage(""))
	})

	t.Run("answer before question is not matched", func(t *testing.T) {
		assert.Empty(t, Salvage(`{"answer": "A1", "question": "Q1"}`))
	})
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, "[1]", stripCodeFence("```json\n[1]\n```"))
	assert.Equal(t, "[1]", stripCodeFence("```\n[1]```"))
	assert.Equal(t, "[1]", stripCodeFence("[1]"))
}
