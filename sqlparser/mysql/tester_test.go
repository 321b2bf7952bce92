package mysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vippsas/sqlscript/sqlparser/sqldocument"
)

func feed(tester sqldocument.DelimiterTester, sql string) sqldocument.Delimiter {
	s := NewScanner("test.sql", sql)
	first := true
	for tt := s.NextToken(); tt != sqldocument.EOFToken; tt = s.NextToken() {
		tok := s.Current()
		tester.OnToken(tok, first && tok.IsSignificant())
		if tok.IsSignificant() {
			first = false
		}
	}
	return tester.CurrentDelimiter()
}

func TestTester_DelimiterCommand(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"DELIMITER $$", "$$"},
		{"delimiter //", "//"},
		{"DELIMITER ;", ";"},
		{"delimiter $$ trailing", "$$"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tester := NewTester()
			assert.True(t, feed(tester, tt.input).IsEmpty())

			newPrimary, changed := tester.StatementFinished()
			require.True(t, changed)
			assert.Equal(t, tt.expected, newPrimary.Literal)
			assert.False(t, newPrimary.SingleLine)
			assert.Equal(t, newPrimary, tester.CurrentDelimiter())
		})
	}
}

func TestTester_DelimiterWithoutArgument(t *testing.T) {
	tester := NewTester()
	feed(tester, "delimiter")
	_, changed := tester.StatementFinished()
	assert.False(t, changed)
	assert.Equal(t, sqldocument.StandardDelimiter, tester.CurrentDelimiter())
}

func TestTester_IsSingleLineStatement(t *testing.T) {
	s := NewScanner("test.sql", "DELIMITER $$")
	s.NextToken()
	tester := NewTester()
	assert.True(t, tester.IsSingleLineStatement(s.Current(), true))
	assert.False(t, tester.IsSingleLineStatement(s.Current(), false))
}

func TestTester_DefinerProcedureUsesAlternate(t *testing.T) {
	tester := NewTester()
	alt := sqldocument.Delimiter{Literal: "//"}
	tester.SetDelimiters(sqldocument.StandardDelimiter, alt)
	assert.Equal(t, alt, feed(tester, "CREATE DEFINER=`root`@`localhost` PROCEDURE p() BEGIN SELECT 1; END"))

	tester.StatementFinished()
	assert.Equal(t, sqldocument.StandardDelimiter, feed(tester, "create table t (a int)"))
}
