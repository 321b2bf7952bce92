package mysql

import (
	"strings"

	"github.com/vippsas/sqlscript/sqlparser/sqldocument"
)

// Triggers open a compound-statement body. MySQL has no block delimiter of
// its own; with an alternate configured these bodies switch to it.
var Triggers = sqldocument.BlockTriggers{
	CreateVerbs:          []string{"create"},
	CreateModifiers:      []string{"or", "replace", "aggregate"},
	CreateTypes:          []string{"procedure", "function", "trigger", "event"},
	UnknownModifierLimit: 8,
}

// Tester implements the mysql client's DELIMITER command. The command is a
// line of its own; it changes the primary delimiter for the rest of the
// script and is not sent to the server.
type Tester struct {
	*sqldocument.BlockTester

	delimiterCommand bool
	argument         strings.Builder
	argumentDone     bool
}

var _ sqldocument.DelimiterTester = (*Tester)(nil)

func NewTester() sqldocument.DelimiterTester {
	return &Tester{BlockTester: sqldocument.NewBlockTester(Triggers)}
}

func (t *Tester) OnToken(tok sqldocument.Token, isStartOfStatement bool) {
	if isStartOfStatement {
		t.resetCommand()
		t.delimiterCommand = sqldocument.TokenWord(tok) == "delimiter"
	}
	if !t.delimiterCommand {
		t.BlockTester.OnToken(tok, isStartOfStatement)
		return
	}
	if isStartOfStatement || t.argumentDone {
		return
	}
	if tok.IsWhitespace() {
		if t.argument.Len() > 0 {
			t.argumentDone = true
		}
		return
	}
	t.argument.WriteString(tok.Text)
}

// CurrentDelimiter is the zero Delimiter inside a DELIMITER command; its
// argument usually is a delimiter and must not end the command.
func (t *Tester) CurrentDelimiter() sqldocument.Delimiter {
	if t.delimiterCommand {
		return sqldocument.Delimiter{}
	}
	return t.BlockTester.CurrentDelimiter()
}

func (t *Tester) IsSingleLineStatement(tok sqldocument.Token, isStartOfLine bool) bool {
	return isStartOfLine && sqldocument.TokenWord(tok) == "delimiter"
}

func (t *Tester) StatementFinished() (sqldocument.Delimiter, bool) {
	t.BlockTester.StatementFinished()
	defer t.resetCommand()
	if !t.delimiterCommand || t.argument.Len() == 0 {
		return sqldocument.Delimiter{}, false
	}
	newPrimary := sqldocument.Delimiter{Literal: t.argument.String()}
	t.SetDelimiters(newPrimary, t.Alternate())
	return newPrimary, true
}

func (t *Tester) resetCommand() {
	t.delimiterCommand = false
	t.argument.Reset()
	t.argumentDone = false
}
