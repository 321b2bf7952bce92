// Package oracle holds the Oracle and SQL*Plus rules for splitting scripts.
package oracle

import (
	"github.com/vippsas/sqlscript/sqlparser/sqldocument"
)

// Keywords is the Oracle vocabulary; PL/SQL words on top of the shared set.
var Keywords = sqldocument.NewKeywordSet(
	"editionable", "editioning", "noneditionable", "force", "noforce", "compile",
	"resolve", "pragma", "elsif", "raise", "rem", "remark", "define", "undefine", "host",
	"accept", "pause", "variable", "connect", "disconnect", "end case", "end if", "end loop",
)

// LexerOptions are the Oracle lexical rules. On top of the standard rules,
// q'[...]' alternative quoting is recognised so that quotes and
// semicolons inside such literals do not end a statement.
func LexerOptions() sqldocument.LexerOptions {
	return sqldocument.LexerOptions{
		AlternativeQuoting: true,
		Keywords:           Keywords,
	}
}

func NewScanner(file sqldocument.FileRef, input string) *sqldocument.TokenScanner {
	return sqldocument.NewTokenScanner(file, input, LexerOptions())
}
