package generation

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/phrazzld/medcards/internal/domain"
)

// salvagePattern matches a flat "question": "...", "answer": "..." pair.
// It cannot see through escaped quotes, so salvage is best effort only.
var salvagePattern = regexp.MustCompile(`"question":\s*"[^"]+"\s*,\s*"answer":\s*"[^"]+"`)

// cardSchema is one element of the JSON array the model is asked for.
type cardSchema struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ParseFlashcards decodes a model response holding a JSON array of
// {question, answer} objects. A surrounding markdown code fence is ignored.
// Elements that are not objects or lack either side are skipped.
//
// It returns an error wrapping ErrNotArray when the response is valid JSON
// of another shape, and ErrInvalidResponse when it is not JSON at all.
func ParseFlashcards(raw string) ([]domain.Flashcard, error) {
	body := stripCodeFence(strings.TrimSpace(raw))

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(body), &items); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("%w: got %s", ErrNotArray, typeErr.Value)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	cards := make([]domain.Flashcard, 0, len(items))
	for _, item := range items {
		var schema cardSchema
		if err := json.Unmarshal(item, &schema); err != nil {
			continue
		}
		if card, ok := toFlashcard(schema); ok {
			cards = append(cards, card)
		}
	}
	return cards, nil
}

// Salvage scans raw model output for quoted question/answer pairs and decodes
// each one on its own. Pairs that fail to decode are skipped.
func Salvage(raw string) []domain.Flashcard {
	var cards []domain.Flashcard
	for _, match := range salvagePattern.FindAllString(raw, -1) {
		var schema cardSchema
		if err := json.Unmarshal([]byte("{"+match+"}"), &schema); err != nil {
			continue
		}
		if card, ok := toFlashcard(schema); ok {
			cards = append(cards, card)
		}
	}
	return cards
}

func toFlashcard(schema cardSchema) (domain.Flashcard, bool) {
	card := domain.Flashcard{Question: schema.Question, Answer: schema.Answer}
	return card, card.Validate() == nil
}

// stripCodeFence removes a ```json ... ``` wrapper if present.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
