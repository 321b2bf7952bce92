package mssql

import (
	"github.com/vippsas/sqlscript/sqlparser/sqldocument"
)

// Triggers are the statements that turn on the GO batch separator in place
// of ";". BEGIN TRAN is scanned as its own keyword and never matches
// "begin".
var Triggers = sqldocument.BlockTriggers{
	FirstWords:      []string{"declare", "begin", "if", "while"},
	CreateVerbs:     []string{"create", "alter"},
	CreateModifiers: []string{"or", "alter"},
	CreateTypes:     []string{"procedure", "proc", "function", "trigger", "view"},
}

// NewTester returns the SQL Server delimiter tester. GO ends a batch
// wherever it stands alone on a line.
func NewTester() sqldocument.DelimiterTester {
	return sqldocument.NewBlockTester(Triggers, sqldocument.WithAlternateAlwaysTerminates())
}
