// Package domain contains the core entities of the flashcard generator:
// the generated Flashcard and the saved Deck. It is independent of any
// transport, storage or LLM provider.
package domain
