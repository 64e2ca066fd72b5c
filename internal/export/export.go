package export

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/phrazzld/medcards/internal/domain"
)

// Format identifies an export file format.
type Format string

// Supported formats.
const (
	FormatText Format = "text"
	FormatAnki Format = "anki"
)

// ErrUnknownFormat is returned by ParseFormat for unsupported names.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat resolves a format name. An empty name selects FormatText.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case "", FormatText:
		return FormatText, nil
	case FormatAnki:
		return FormatAnki, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// ContentType is the MIME type served for the format.
func (f Format) ContentType() string {
	if f == FormatAnki {
		return "text/tab-separated-values; charset=utf-8"
	}
	return "text/plain; charset=utf-8"
}

// Filename builds a download name from base, which is reduced to a safe slug.
func (f Format) Filename(base string) string {
	ext := ".txt"
	if f == FormatAnki {
		ext = ".tsv"
	}
	return slug(base) + ext
}

// Write renders cards to w in format f.
func Write(w io.Writer, f Format, cards []domain.Flashcard) error {
	switch f {
	case FormatText:
		return WriteText(w, cards)
	case FormatAnki:
		return WriteAnki(w, cards)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
}

// WriteText writes "Q: ...\nA: ...\n\n" for every card.
func WriteText(w io.Writer, cards []domain.Flashcard) error {
	bw := bufio.NewWriter(w)
	for _, card := range cards {
		if _, err := fmt.Fprintf(bw, "Q: %s\nA: %s\n\n", card.Question, card.Answer); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteAnki writes an Anki import file: header directives followed by one
// question<TAB>answer row per card. Fields holding tabs, quotes or newlines
// are quoted.
func WriteAnki(w io.Writer, cards []domain.Flashcard) error {
	if _, err := io.WriteString(w, "#separator:tab\n#html:false\n"); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	for _, card := range cards {
		if err := cw.Write([]string{card.Question, card.Answer}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "flashcards"
	}
	return out
}
