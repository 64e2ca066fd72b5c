package generation

import (
	"strings"

	"github.com/phrazzld/medcards/internal/domain"
)

// Dedupe removes cards whose question, lowercased, matches an earlier card's.
// The first occurrence wins and survivors keep their relative order.
func Dedupe(cards []domain.Flashcard) []domain.Flashcard {
	seen := make(map[string]struct{}, len(cards))
	unique := make([]domain.Flashcard, 0, len(cards))
	for _, card := range cards {
		key := strings.ToLower(card.Question)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, card)
	}
	return unique
}
