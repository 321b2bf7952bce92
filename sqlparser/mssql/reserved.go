package mssql

// T-SQL reserved words not in the shared vocabulary.
// apparently 'within group' is also reserved but dropping that..
var reservedWords = []string{
	"backup", "break", "browse", "bulk", "checkpoint", "clustered", "compute", "contains",
	"containstable", "dbcc", "deny", "disk", "distributed", "dump", "errlvl", "exit", "file",
	"fillfactor", "freetext", "freetexttable", "holdlock", "identity_insert", "identitycol",
	"kill", "lineno", "load", "nocheck", "nonclustered", "off", "offsets", "opendatasource",
	"openquery", "openrowset", "openxml", "percent", "pivot", "plan", "precision", "print",
	"proc", "raiserror", "readtext", "reconfigure", "replication", "restore", "revert",
	"rowcount", "rowguidcol", "rule", "save", "securityaudit", "semantickeyphrasetable",
	"semanticsimilaritydetailstable", "semanticsimilaritytable", "setuser", "shutdown",
	"statistics", "tablesample", "textsize", "top", "tran", "try_convert", "tsequal",
	"unpivot", "updatetext", "waitfor", "writetext",
}
