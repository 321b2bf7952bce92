package pgsql

import (
	"github.com/vippsas/sqlscript/sqlparser/sqldocument"
)

// Keywords is the PostgreSQL 17 vocabulary: the shared words plus the
// words Postgres reserves (fully or as function/type names).
var Keywords = sqldocument.NewKeywordSet(reservedWords...)

// LexerOptions are the PostgreSQL lexical rules:
//   - String literals ('...' with '' escape, E'...' with backslash escapes)
//   - Dollar-quoted strings ($$...$$, $tag$...$tag$)
//   - Nested multi-line comments (/* /* */ */)
//   - Positional parameters ($1, $2, etc.) and :: casts
func LexerOptions() sqldocument.LexerOptions {
	return sqldocument.LexerOptions{
		DollarQuoting:  true,
		NestedComments: true,
		EscapeStrings:  true,
		Keywords:       Keywords,
	}
}

// NewScanner creates a new scanner for the given PostgreSQL source file and
// input string. The scanner is positioned before the first token; call
// NextToken() to advance.
func NewScanner(file sqldocument.FileRef, input string) *sqldocument.TokenScanner {
	return sqldocument.NewTokenScanner(file, input, LexerOptions())
}
