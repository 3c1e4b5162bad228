package display

import (
	"strings"
	"unicode/utf8"

	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const DefaultWidth = 80

var titleCaser = cases.Title(language.Und, cases.NoLower)

// Wrap word-wraps every line of text to width, preserving ANSI escape
// sequences. A non-positive width means DefaultWidth.
func Wrap(text string, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	return wordwrap.String(text, width)
}

// Capitalize returns s with its first letter in title case.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeRuneInString(s)
	var b strings.Builder
	b.WriteString(titleCaser.String(s[:size]))
	b.WriteString(s[size:])
	return b.String()
}
