package domain

import "strings"

// Flashcard is a single generated question/answer pair. It has no identity
// beyond its question text.
type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Validate reports whether both sides of the card carry text.
func (f Flashcard) Validate() error {
	if strings.TrimSpace(f.Question) == "" {
		return ErrEmptyQuestion
	}
	if strings.TrimSpace(f.Answer) == "" {
		return ErrEmptyAnswer
	}
	return nil
}
