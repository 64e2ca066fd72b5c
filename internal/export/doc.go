// Package export renders flashcards as downloadable files: a plain text
// Q/A listing and a tab-separated file importable by Anki.
package export
