// Package mysql holds the MySQL and MariaDB rules for splitting scripts.
package mysql

import (
	"github.com/vippsas/sqlscript/sqlparser/sqldocument"
)

var Keywords = sqldocument.NewKeywordSet(
	"definer", "invoker", "security", "algorithm", "undefined", "temptable", "elseif",
	"repeat", "until", "leave", "iterate", "signal", "resignal", "handler", "schedule",
	"end repeat", "end while",
)

// LexerOptions are the MySQL lexical rules:
//   - `backtick` quoted identifiers
//   - # line comments next to -- and /* */
//   - \' escapes inside string literals (can be turned off for
//     NO_BACKSLASH_ESCAPES servers)
func LexerOptions() sqldocument.LexerOptions {
	return sqldocument.LexerOptions{
		BacktickIdentifiers: true,
		HashComments:        true,
		CheckEscapedQuotes:  true,
		Keywords:            Keywords,
	}
}

func NewScanner(file sqldocument.FileRef, input string) *sqldocument.TokenScanner {
	return sqldocument.NewTokenScanner(file, input, LexerOptions())
}
