package sqlparser

import (
	"fmt"
	"strings"

	"github.com/vippsas/sqlscript/sqlparser/mssql"
	"github.com/vippsas/sqlscript/sqlparser/mysql"
	"github.com/vippsas/sqlscript/sqlparser/oracle"
	"github.com/vippsas/sqlscript/sqlparser/pgsql"
	"github.com/vippsas/sqlscript/sqlparser/sqldocument"
)

// ParserType selects the lexer variant and delimiter tester for a script.
type ParserType int

const (
	Standard ParserType = iota
	Oracle
	Postgres
	SQLServer
	MySQL
	DB2
	H2
)

var parserTypeNames = map[ParserType]string{
	Standard:  "standard",
	Oracle:    "oracle",
	Postgres:  "postgres",
	SQLServer: "sqlserver",
	MySQL:     "mysql",
	DB2:       "db2",
	H2:        "h2",
}

func (t ParserType) String() string {
	if name, ok := parserTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ParserType(%d)", int(t))
}

// ParserTypes lists all parser types in declaration order.
func ParserTypes() []ParserType {
	return []ParserType{Standard, Oracle, Postgres, SQLServer, MySQL, DB2, H2}
}

// dbids maps database product identifiers to the parser type that splits
// their scripts.
var dbids = map[string]ParserType{
	"oracle":                     Oracle,
	"postgresql":                 Postgres,
	"postgres":                   Postgres,
	"greenplum":                  Postgres,
	"redshift":                   Postgres,
	"cockroachdb":                Postgres,
	"yugabytedb":                 Postgres,
	"microsoft_sql_server":       SQLServer,
	"sqlserver":                  SQLServer,
	"mssql":                      SQLServer,
	"jtds":                       SQLServer,
	"sybase":                     SQLServer,
	"adaptive_server_enterprise": SQLServer,
	"mysql":                      MySQL,
	"mariadb":                    MySQL,
	"db2":                        DB2,
	"db2i":                       DB2,
	"db2h":                       DB2,
	"db2_luw":                    DB2,
	"db2_zos":                    DB2,
	"h2":                         H2,
	"hsql_database_engine":       H2,
	"apache_derby_embedded_jdbc": Standard,
	"sqlite":                     Standard,
}

// ParserTypeForDBID maps a database product identifier to a parser type.
// Unknown identifiers get the Standard parser.
func ParserTypeForDBID(dbid string) ParserType {
	if t, ok := dbids[strings.ToLower(strings.TrimSpace(dbid))]; ok {
		return t
	}
	return Standard
}

// ParseParserType accepts a parser type name ("oracle") or a product
// identifier ("microsoft_sql_server").
func ParseParserType(name string) (ParserType, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for t, n := range parserTypeNames {
		if n == key {
			return t, nil
		}
	}
	if t, ok := dbids[key]; ok {
		return t, nil
	}
	return Standard, fmt.Errorf("unknown dialect %q", name)
}

// Profile is the static configuration of one parser type.
type Profile struct {
	Type               ParserType
	Lexer              sqldocument.LexerOptions
	AlternateDelimiter sqldocument.Delimiter

	// SupportsIncludeShorthand is true when "@file" and "@@file" run another
	// script. SQL Server lacks it since @ starts a variable there.
	SupportsIncludeShorthand bool

	NewTester func() sqldocument.DelimiterTester
}

// DB2 compound statements end with "@" in CLP scripts.
var db2Triggers = sqldocument.BlockTriggers{
	FirstWords:      []string{"begin"},
	CreateVerbs:     []string{"create", "create or replace"},
	CreateModifiers: []string{"specific"},
	CreateTypes:     []string{"procedure", "function", "trigger", "module"},
}

var profiles = map[ParserType]Profile{
	Standard: {
		Type:                     Standard,
		SupportsIncludeShorthand: true,
		NewTester:                newStandardTester,
	},
	Oracle: {
		Type:                     Oracle,
		Lexer:                    oracle.LexerOptions(),
		AlternateDelimiter:       sqldocument.OracleDelimiter,
		SupportsIncludeShorthand: true,
		NewTester:                oracle.NewTester,
	},
	Postgres: {
		Type:      Postgres,
		Lexer:     pgsql.LexerOptions(),
		NewTester: pgsql.NewTester,
	},
	SQLServer: {
		Type:               SQLServer,
		Lexer:              mssql.LexerOptions(),
		AlternateDelimiter: sqldocument.SQLServerDelimiter,
		NewTester:          mssql.NewTester,
	},
	MySQL: {
		Type:      MySQL,
		Lexer:     mysql.LexerOptions(),
		NewTester: mysql.NewTester,
	},
	DB2: {
		Type:                     DB2,
		AlternateDelimiter:       sqldocument.Delimiter{Literal: "@"},
		SupportsIncludeShorthand: true,
		NewTester: func() sqldocument.DelimiterTester {
			return sqldocument.NewBlockTester(db2Triggers, sqldocument.WithIncludeShorthand())
		},
	},
	H2: {
		Type:                     H2,
		SupportsIncludeShorthand: true,
		NewTester:                newStandardTester,
	},
}

func newStandardTester() sqldocument.DelimiterTester {
	return sqldocument.NewStandardTester()
}

// LookupProfile returns the profile of t; unknown types get Standard's.
func LookupProfile(t ParserType) Profile {
	if p, ok := profiles[t]; ok {
		return p
	}
	return profiles[Standard]
}
