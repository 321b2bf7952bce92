package sqlparser

import (
	"sort"

	"github.com/vippsas/sqlscript/sqlparser/sqldocument"
)

// NotFound is returned by cursor lookups that hit no command.
const NotFound = -1

// Command is one statement of a script. Offsets are byte offsets into the
// (decoded) script text; [StartOffset, EndOffset) is the statement without
// its delimiter and without trailing whitespace.
type Command struct {
	Index int

	// WhitespaceStart is where scanning of the statement began: the end of
	// the previous command's delimiter, or 0.
	WhitespaceStart int
	StartOffset     int
	EndOffset       int
	// DelimiterEnd is the end of the delimiter that closed the command, or
	// EndOffset when there was none.
	DelimiterEnd int

	// SQL is the statement text; empty when text storage is turned off.
	SQL string

	// Delimiter is the delimiter that closed the command; nil for the
	// final fragment at end of input and for single-line commands ended
	// by their line break.
	Delimiter *sqldocument.Delimiter

	StartPos sqldocument.Pos

	// Errors are diagnostics for malformed tokens in the statement.
	Errors []sqldocument.Error
}

func (c *Command) HasText() bool {
	return c.SQL != ""
}

// Len is the length of the statement in bytes.
func (c *Command) Len() int {
	return c.EndOffset - c.StartOffset
}

// Contains reports whether a cursor at pos belongs to the command. A cursor
// right after the delimiter still belongs to it.
func (c *Command) Contains(pos int) bool {
	return c.WhitespaceStart <= pos && pos <= c.DelimiterEnd
}

// commandIndexAt finds the command containing pos. Commands are ordered and
// do not overlap except that one command's DelimiterEnd may equal the next
// one's WhitespaceStart, in which case the earlier command wins.
func commandIndexAt(commands []*Command, pos int) int {
	i := sort.Search(len(commands), func(i int) bool {
		return commands[i].DelimiterEnd >= pos
	})
	if i < len(commands) && commands[i].Contains(pos) {
		return i
	}
	return NotFound
}
