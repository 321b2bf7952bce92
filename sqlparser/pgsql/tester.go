package pgsql

import (
	"slices"

	"github.com/vippsas/sqlscript/sqlparser/sqldocument"
)

var routineTypes = []string{"function", "procedure"}

// Tester finds SQL-standard routine bodies (BEGIN ATOMIC ... END) inside
// CREATE FUNCTION and CREATE PROCEDURE. Dollar-quoted bodies need no help;
// the scanner returns them as one literal.
//
// With an alternate delimiter configured, a body switches to it until the
// statement is finished. Without one the tester counts BEGIN/CASE against
// END and holds back the primary delimiter until the body is closed.
type Tester struct {
	primary, alternate sqldocument.Delimiter
	state              sqldocument.BlockState

	significantTokens int
	createStatement   bool
	routine           bool
	depth             int
}

var _ sqldocument.DelimiterTester = (*Tester)(nil)

func NewTester() sqldocument.DelimiterTester {
	return &Tester{primary: sqldocument.StandardDelimiter}
}

func (t *Tester) SetDelimiters(primary, alternate sqldocument.Delimiter) {
	t.primary = primary
	t.alternate = alternate
}

func (t *Tester) OnToken(tok sqldocument.Token, isStartOfStatement bool) {
	if !tok.IsSignificant() {
		return
	}
	if isStartOfStatement {
		t.reset()
	}
	t.significantTokens++
	word := sqldocument.TokenWord(tok)

	switch t.significantTokens {
	case 1:
		t.createStatement = word == "create" || word == "create or replace"
		return
	case 2:
		t.routine = t.createStatement && slices.Contains(routineTypes, word)
		return
	}
	if !t.routine {
		return
	}
	if !t.state.IsOpen() {
		if word == "begin atomic" {
			t.state.Open()
			t.depth = 1
		}
		return
	}
	if !t.alternate.IsEmpty() {
		return
	}
	switch word {
	case "begin", "begin atomic", "case":
		t.depth++
	case "end", "end case":
		if t.depth > 0 {
			t.depth--
		}
	}
}

// Depth is the number of BEGIN/CASE constructs currently open.
func (t *Tester) Depth() int {
	return t.depth
}

func (t *Tester) CurrentDelimiter() sqldocument.Delimiter {
	if t.state.IsOpen() {
		if !t.alternate.IsEmpty() {
			return t.alternate
		}
		if t.depth > 0 {
			return sqldocument.Delimiter{}
		}
	}
	return t.primary
}

func (t *Tester) AlternateAlwaysTerminates() bool {
	return false
}

// IsSingleLineStatement is true for psql meta-commands (\i file, \set ...).
func (t *Tester) IsSingleLineStatement(tok sqldocument.Token, isStartOfLine bool) bool {
	return isStartOfLine && tok.Type == sqldocument.OperatorToken && tok.Text == `\`
}

func (t *Tester) StatementFinished() (sqldocument.Delimiter, bool) {
	t.reset()
	return sqldocument.Delimiter{}, false
}

func (t *Tester) reset() {
	t.state.Reset()
	t.significantTokens = 0
	t.createStatement = false
	t.routine = false
	t.depth = 0
}
