package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"

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

func TestTester_Blocks(t *testing.T) {
	tests := []struct {
		name  string
		sql   string
		block bool
	}{
		{"create procedure", "create procedure p as begin null; end;", true},
		{"create or replace package body", "CREATE OR REPLACE PACKAGE BODY pkg AS END;", true},
		{"editionable function", "create or replace editionable function f return number is begin return 1; end;", true},
		{"and compile java", "create or replace and compile java source named x as class x {}", true},
		{"anonymous block", "begin dbms_output.put_line('x'); end;", true},
		{"declare", "declare x number; begin null; end;", true},
		{"with function", "with function f return number is begin return 1; end; select f from dual", true},
		{"create type body", "create type body t as member function f return number is begin return 1; end; end;", true},
		{"create table", "create table t (a number)", false},
		{"create public synonym", "create public synonym s for t", false},
		{"with subquery", "with q as (select 1 from dual) select * from q", false},
		{"insert with hint", "insert /*+ append */ into t values (1)", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tester := NewTester()
			tester.SetDelimiters(sqldocument.StandardDelimiter, sqldocument.OracleDelimiter)
			expected := sqldocument.StandardDelimiter
			if tt.block {
				expected = sqldocument.OracleDelimiter
			}
			assert.Equal(t, expected, feed(tester, tt.sql))
		})
	}
}

func TestTester_SingleLineCommands(t *testing.T) {
	tests := []struct {
		input       string
		startOfLine bool
		expected    bool
	}{
		{"set serveroutput on", true, true},
		{"prompt hello", true, true},
		{"desc t", true, true},
		{"REM a remark", true, true},
		{"@script.sql", true, true},
		{"@@nested.sql", false, true},
		{"set serveroutput on", false, false},
		{"select 1 from dual", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s := NewScanner("test.sql", tt.input)
			s.NextToken()
			assert.Equal(t, tt.expected, NewTester().IsSingleLineStatement(s.Current(), tt.startOfLine))
		})
	}
}

func TestTester_AlternateAlwaysTerminates(t *testing.T) {
	assert.True(t, NewTester().AlternateAlwaysTerminates())
}
