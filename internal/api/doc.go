// Package api exposes the HTTP surface: flashcard generation, export of
// unsaved cards and, when a database is configured, saved decks. Handlers
// decode and validate requests, call the service layer and translate its
// errors into status codes and client-safe messages.
package api
