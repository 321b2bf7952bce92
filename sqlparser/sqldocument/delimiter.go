package sqldocument

import (
	"errors"
	"strings"
	"unicode"
)

// ErrEmptyDelimiter is returned when a delimiter definition has no content.
var ErrEmptyDelimiter = errors.New("delimiter must not be empty")

// Delimiter is a statement terminator. The zero value is "no delimiter";
// nothing matches it.
type Delimiter struct {
	Literal string

	// SingleLine delimiters (/ and GO) are only recognised when they are
	// the only thing on their line.
	SingleLine bool
}

var (
	StandardDelimiter  = Delimiter{Literal: ";"}
	OracleDelimiter    = Delimiter{Literal: "/", SingleLine: true}
	SQLServerDelimiter = Delimiter{Literal: "GO", SingleLine: true}

	// BlankLineDelimiter marks commands that were ended by an empty line.
	// It is never tested against script text.
	BlankLineDelimiter = Delimiter{Literal: "\n\n", SingleLine: true}
)

// ParseDelimiter parses a user supplied definition. A trailing ";nl" or
// ":nl" forces the delimiter to be single-line; alphabetic delimiters and
// a lone "/" are single-line by default.
func ParseDelimiter(def string) (Delimiter, error) {
	literal := strings.TrimSpace(def)
	singleLine := false
	lower := strings.ToLower(literal)
	if strings.HasSuffix(lower, ";nl") || strings.HasSuffix(lower, ":nl") {
		literal = strings.TrimSpace(literal[:len(literal)-3])
		singleLine = true
	}
	if literal == "" {
		return Delimiter{}, ErrEmptyDelimiter
	}
	if strings.IndexFunc(literal, unicode.IsSpace) != -1 {
		return Delimiter{}, errors.New("delimiter must not contain whitespace: " + def)
	}
	if literal == "/" || isAlphabetic(literal) {
		singleLine = true
	}
	return Delimiter{Literal: literal, SingleLine: singleLine}, nil
}

// MustParseDelimiter is like ParseDelimiter but panics on error.
func MustParseDelimiter(def string) Delimiter {
	d, err := ParseDelimiter(def)
	if err != nil {
		panic(err)
	}
	return d
}

func isAlphabetic(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}

func (d Delimiter) IsEmpty() bool {
	return d.Literal == ""
}

func (d Delimiter) IsBlankLine() bool {
	return d == BlankLineDelimiter
}

func (d Delimiter) IsStandard() bool {
	return d.Literal == ";"
}

// hasLetters is true when comparisons should ignore case.
func (d Delimiter) hasLetters() bool {
	return strings.IndexFunc(d.Literal, unicode.IsLetter) != -1
}

// Key is the canonical form used for equality and as a map key.
func (d Delimiter) Key() string {
	if d.hasLetters() {
		return strings.ToUpper(d.Literal)
	}
	return d.Literal
}

// Equal compares literals; alphabetic literals compare case-insensitively.
func (d Delimiter) Equal(other Delimiter) bool {
	return d.Key() == other.Key() && d.SingleLine == other.SingleLine
}

// EqualText reports whether text is this delimiter's literal.
func (d Delimiter) EqualText(text string) bool {
	if d.IsEmpty() {
		return false
	}
	if d.hasLetters() {
		return strings.EqualFold(d.Literal, text)
	}
	return d.Literal == text
}

// HasPrefixOf reports whether text starts with the literal.
func (d Delimiter) HasPrefixOf(text string) bool {
	if d.IsEmpty() || len(text) < len(d.Literal) {
		return false
	}
	return d.EqualText(text[:len(d.Literal)])
}

// Matches tests a candidate: the text must equal the literal, and a
// single-line delimiter must be alone on its line.
func (d Delimiter) Matches(candidate string, atLineStart, atLineEnd bool) bool {
	if !d.EqualText(strings.TrimSpace(candidate)) {
		return false
	}
	if d.SingleLine {
		return atLineStart && atLineEnd
	}
	return true
}

// TrimFrom removes a trailing occurrence of the literal from sql, along
// with whitespace around it.
func (d Delimiter) TrimFrom(sql string) string {
	trimmed := strings.TrimRightFunc(sql, unicode.IsSpace)
	if d.IsEmpty() || len(trimmed) < len(d.Literal) {
		return trimmed
	}
	if d.EqualText(trimmed[len(trimmed)-len(d.Literal):]) {
		return strings.TrimRightFunc(trimmed[:len(trimmed)-len(d.Literal)], unicode.IsSpace)
	}
	return trimmed
}

func (d Delimiter) String() string {
	if d.IsBlankLine() {
		return "<blank line>"
	}
	if d.SingleLine {
		return d.Literal + ";nl"
	}
	return d.Literal
}
