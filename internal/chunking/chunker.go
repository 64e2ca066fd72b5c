package chunking

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultMaxChunkLength is the chunk length limit used when none is given.
	DefaultMaxChunkLength = 2000

	// MinChunkLength is the trimmed length a chunk must exceed to be kept.
	// Shorter fragments carry too little content to generate cards from.
	MinChunkLength = 50
)

const (
	paragraphSeparator = "\n\n"
	sentenceSeparator  = " "
)

var (
	// paragraphBreak matches a blank line: two newlines with optional
	// whitespace between them.
	paragraphBreak = regexp.MustCompile(`\n\s*\n`)

	// sentenceEnd matches a run of terminal punctuation.
	sentenceEnd = regexp.MustCompile(`[.!?]+`)
)

// Split breaks text into chunks of at most maxLen characters, preserving
// source order. Paragraphs are packed together while they fit. A paragraph
// longer than maxLen is packed sentence by sentence instead; a single sentence
// longer than maxLen is emitted whole as its own chunk. Chunks are trimmed and
// any chunk of MinChunkLength characters or fewer is dropped.
//
// If maxLen is not positive, DefaultMaxChunkLength is used. Lengths are
// counted in runes.
func Split(text string, maxLen int) []string {
	if maxLen <= 0 {
		maxLen = DefaultMaxChunkLength
	}

	b := &builder{maxLen: maxLen}
	for _, paragraph := range paragraphBreak.Split(text, -1) {
		if length(paragraph) > maxLen {
			for _, sentence := range splitSentences(paragraph) {
				b.add(sentence, sentenceSeparator)
			}
			continue
		}
		b.add(paragraph, paragraphSeparator)
	}
	b.flush()

	chunks := make([]string, 0, len(b.chunks))
	for _, chunk := range b.chunks {
		if length(chunk) > MinChunkLength {
			chunks = append(chunks, chunk)
		}
	}
	return chunks
}

// builder accumulates text into a running buffer and emits a chunk whenever
// the next piece would push the buffer past maxLen.
type builder struct {
	maxLen  int
	current string
	chunks  []string
}

func (b *builder) add(piece, separator string) {
	if b.current == "" {
		b.current = piece
		return
	}

	candidate := b.current + separator + piece
	if length(candidate) > b.maxLen {
		b.flush()
		b.current = piece
		return
	}
	b.current = candidate
}

func (b *builder) flush() {
	if chunk := strings.TrimSpace(b.current); chunk != "" {
		b.chunks = append(b.chunks, chunk)
	}
	b.current = ""
}

// splitSentences cuts a paragraph after every run of terminal punctuation.
// Text after the last terminator is kept as a final sentence, so a paragraph
// without any punctuation comes back as one sentence.
func splitSentences(paragraph string) []string {
	var sentences []string
	start := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(paragraph, -1) {
		if s := strings.TrimSpace(paragraph[start:loc[1]]); s != "" {
			sentences = append(sentences, s)
		}
		start = loc[1]
	}
	if s := strings.TrimSpace(paragraph[start:]); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func length(s string) int {
	return utf8.RuneCountInString(s)
}
