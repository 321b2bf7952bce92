package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vippsas/sqlscript/sqlparser/sqldocument"
)

func TestScanner_AlternativeQuoting(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected sqldocument.TokenType
	}{
		{"brackets", "q'[it's; here]'", sqldocument.StringLiteralToken},
		{"braces", "Q'{a}'", sqldocument.StringLiteralToken},
		{"angle", "q'<x'y>'", sqldocument.StringLiteralToken},
		{"same char", "q'!a;b!'", sqldocument.StringLiteralToken},
		{"national", "nq'[x]'", sqldocument.IdentifierToken},
		{"unterminated", "q'[abc", sqldocument.UnclosedStringErrorToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScanner("test.sql", tt.input)
			assert.Equal(t, tt.expected, s.NextToken())
		})
	}
}

func TestScanner_AlternativeQuotingWholeToken(t *testing.T) {
	s := NewScanner("test.sql", "select q'[a'b]' from dual")
	s.NextToken()
	s.NextNonWhitespaceToken()
	assert.Equal(t, "q'[a'b]'", s.Token())
	s.NextNonWhitespaceToken()
	assert.Equal(t, "from", s.ReservedWord())
}

func TestScanner_MultiWordKeywords(t *testing.T) {
	s := NewScanner("test.sql", "CREATE OR REPLACE PACKAGE\n  BODY pkg")
	assert.Equal(t, sqldocument.ReservedWordToken, s.NextToken())
	assert.Equal(t, "create or replace", s.ReservedWord())
	assert.Equal(t, sqldocument.ReservedWordToken, s.NextNonWhitespaceToken())
	assert.Equal(t, "package body", s.ReservedWord())
	assert.Equal(t, 2, s.Stop().Line)
}
