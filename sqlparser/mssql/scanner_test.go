package mssql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vippsas/sqlscript/sqlparser/sqldocument"
)

type tokenValue struct {
	Type  sqldocument.TokenType
	Value string
}

// Helper to collect all tokens from input
func collectTokens(input string) []tokenValue {
	s := NewScanner("test.sql", input)
	var tokens []tokenValue
	for {
		tt := s.NextToken()
		tokens = append(tokens, tokenValue{tt, s.Token()})
		if tt == sqldocument.EOFToken {
			break
		}
	}
	return tokens
}

func TestScanner_QuotedIdentifiers(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "[MyTable]", "[MyTable]"},
		{"with semicolon", "[Some;Table]", "[Some;Table]"},
		{"escaped bracket", "[a]]b]", "[a]]b]"},
		{"with spaces", "[My Table Name]", "[My Table Name]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := collectTokens(tt.input)
			require.Len(t, tokens, 2)
			assert.Equal(t, sqldocument.IdentifierToken, tokens[0].Type)
			assert.Equal(t, tt.expected, tokens[0].Value)
		})
	}
}

func TestScanner_UnterminatedBracket(t *testing.T) {
	tokens := collectTokens("select [abc")
	require.Len(t, tokens, 4)
	assert.Equal(t, sqldocument.UnclosedStringErrorToken, tokens[2].Type)
	assert.Equal(t, "[abc", tokens[2].Value)
}

func TestScanner_Variables(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"local variable", "@name"},
		{"global variable", "@@rowcount"},
		{"temp table", "#tmp"},
		{"global temp table", "##tmp"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := collectTokens(tt.input)
			require.Len(t, tokens, 2)
			assert.Equal(t, sqldocument.IdentifierToken, tokens[0].Type)
			assert.Equal(t, tt.input, tokens[0].Value)
		})
	}
}

func TestScanner_ReservedWords(t *testing.T) {
	s := NewScanner("test.sql", "RAISERROR proc WAITFOR begin tran")
	var words []string
	for tt := s.NextNonWhitespaceToken(); tt != sqldocument.EOFToken; tt = s.NextNonWhitespaceToken() {
		assert.Equal(t, sqldocument.ReservedWordToken, tt)
		words = append(words, s.ReservedWord())
	}
	assert.Equal(t, []string{"raiserror", "proc", "waitfor", "begin tran"}, words)
}

func TestScanner_NVarchar(t *testing.T) {
	tokens := collectTokens("N'it''s'")
	require.Len(t, tokens, 2)
	assert.Equal(t, sqldocument.StringLiteralToken, tokens[0].Type)
	assert.Equal(t, "N'it''s'", tokens[0].Value)
}

func TestScanner_Position(t *testing.T) {
	s := NewScanner("test.sql", "select\n  [x]")
	s.NextToken()
	s.NextNonWhitespaceToken()
	assert.Equal(t, "[x]", s.Token())
	assert.Equal(t, 2, s.Start().Line)
	assert.Equal(t, 3, s.Start().Col)
	assert.Equal(t, 9, s.StartOffset())
}
