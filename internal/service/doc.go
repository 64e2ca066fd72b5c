// Package service holds the application services behind the HTTP API:
// FlashcardService turns submitted text into deduplicated flashcards and
// DeckService manages saved decks and their exports.
//
// Services return sentinel errors for expected conditions; the API layer
// maps them to status codes with errors.Is.
package service
