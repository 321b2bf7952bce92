package oracle

import (
	"github.com/vippsas/sqlscript/sqlparser/sqldocument"
)

// Triggers are the statements whose body is PL/SQL and therefore ends with
// "/" on a line of its own rather than at the first ";".
var Triggers = sqldocument.BlockTriggers{
	FirstWords:  []string{"declare", "begin"},
	CreateVerbs: []string{"create", "create or replace"},
	CreateModifiers: []string{
		"editionable", "noneditionable", "editioning", "force", "noforce",
		"and", "compile", "resolve", "public",
	},
	CreateTypes: []string{
		"procedure", "function", "package", "package body", "type", "type body",
		"trigger", "library", "java",
	},
	WithTypes: []string{"function", "procedure"},
	SingleLineCommands: []string{
		"desc", "describe", "set", "show", "prompt", "spool", "whenever", "exec",
		"execute", "column", "define", "undefine", "rem", "remark", "host", "pause",
		"accept", "variable", "connect", "disconnect",
	},
}

// NewTester returns the SQL*Plus delimiter tester. A "/" alone on a line
// ends any statement, and @file / @@file run another script.
func NewTester() sqldocument.DelimiterTester {
	return sqldocument.NewBlockTester(Triggers,
		sqldocument.WithIncludeShorthand(),
		sqldocument.WithAlternateAlwaysTerminates(),
	)
}
