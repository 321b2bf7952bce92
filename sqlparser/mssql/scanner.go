package mssql

import (
	"github.com/vippsas/sqlscript/sqlparser/sqldocument"
)

// Keywords is the T-SQL vocabulary: the shared words plus the T-SQL
// reserved list.
var Keywords = sqldocument.NewKeywordSet(reservedWords...)

// LexerOptions are the T-SQL lexical rules:
//   - Quoted identifiers ([...]) with ]] as escape
//   - Variables and temp tables (@name, @@rowcount, #tmp) as single identifiers
//   - String literals ('...' and N'...')
//   - Single-line (--) and multi-line (/* */) comments
func LexerOptions() sqldocument.LexerOptions {
	return sqldocument.LexerOptions{
		BracketIdentifiers: true,
		VariablePrefix:     true,
		Keywords:           Keywords,
	}
}

// NewScanner creates a T-SQL scanner positioned before the first token.
func NewScanner(file sqldocument.FileRef, input string) *sqldocument.TokenScanner {
	return sqldocument.NewTokenScanner(file, input, LexerOptions())
}
