package sqlparser

import (
	"errors"
	"fmt"

	"github.com/vippsas/sqlscript/sqlparser/sqldocument"
)

var (
	ErrNotStarted = errors.New("sqlscript: StartIterator has not been called")
	ErrNoSource   = errors.New("sqlscript: no script, file or reader set")
)

// ScriptError is an I/O or decoding failure of the script source. It stops
// the iteration; commands returned before it remain valid.
type ScriptError struct {
	Path   string
	Offset int
	Err    error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("sqlscript: %s at offset %d: %v", e.Path, e.Offset, e.Err)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}

var tokenDiagnostics = map[sqldocument.TokenType]string{
	sqldocument.UnclosedStringErrorToken:    "unterminated quoted string or identifier",
	sqldocument.UnclosedCommentErrorToken:   "unterminated block comment",
	sqldocument.UnclosedBitStringErrorToken: "unterminated bit string",
	sqldocument.BadBitStringErrorToken:      "bit string may only contain 0 and 1",
	sqldocument.GenericErrorToken:           "invalid input",
}

func diagnostic(tok sqldocument.Token) sqldocument.Error {
	msg, ok := tokenDiagnostics[tok.Type]
	if !ok {
		msg = "unexpected " + tok.Type.String()
	}
	return sqldocument.Error{Pos: tok.Pos, Message: msg}
}
